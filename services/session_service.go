package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"fitcoach/models"
	"fitcoach/utils"
)

// ErrSessionBusy is returned while a coach message for the same user is still being handled.
var ErrSessionBusy = errors.New("session is busy: a message is already being processed")

// SessionService keeps per-user coach session state: the rolling window anchor, the selected day
// and the thinking flag. It replaces an ambient "current user".
type SessionService interface {
	Window(userID int64) models.WeekWindow
	SelectDay(userID int64, displayIndex int) (models.WeekWindow, error)
	BeginThinking(userID int64) error
	EndThinking(userID int64)
	IsThinking(userID int64) bool
	RollAll() []int64
	Reset(userID int64)
}

type coachSession struct {
	anchorKey     string
	selectedIndex int
	thinking      bool
}

type sessionService struct {
	mu       sync.Mutex
	sessions map[int64]*coachSession
	now      func() time.Time
}

// NewSessionService creates an in-memory session store. now defaults to time.Now.
func NewSessionService(now func() time.Time) SessionService {
	if now == nil {
		now = time.Now
	}
	return &sessionService{sessions: make(map[int64]*coachSession), now: now}
}

// session returns the user's session, creating it and re-anchoring it to today as needed.
// Callers hold s.mu.
func (s *sessionService) session(userID int64) (*coachSession, bool) {
	todayKey := utils.DayKey(s.now())
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &coachSession{anchorKey: todayKey}
		s.sessions[userID] = sess
		return sess, false
	}
	if sess.anchorKey != todayKey {
		log.Printf("INFO: [SessionService] Re-anchoring window for userID %d from %s to %s.", userID, sess.anchorKey, todayKey)
		sess.anchorKey = todayKey
		sess.selectedIndex = 0
		return sess, true
	}
	return sess, false
}

func (s *sessionService) windowOf(sess *coachSession) models.WeekWindow {
	anchor, err := time.ParseInLocation(models.DateLayout, sess.anchorKey, s.now().Location())
	if err != nil {
		anchor = s.now()
	}
	days := utils.RollingWeek(anchor)
	return models.WeekWindow{
		Days:          days,
		SelectedIndex: sess.selectedIndex,
		Selected:      days[sess.selectedIndex],
		AnchorKey:     sess.anchorKey,
	}
}

func (s *sessionService) Window(userID int64) models.WeekWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, _ := s.session(userID)
	return s.windowOf(sess)
}

func (s *sessionService) SelectDay(userID int64, displayIndex int) (models.WeekWindow, error) {
	if !utils.ValidDayIndex(displayIndex) {
		return models.WeekWindow{}, fmt.Errorf("%w: day index %d must be between 0 and 6", ErrInvalidInput, displayIndex)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, _ := s.session(userID)
	sess.selectedIndex = displayIndex
	return s.windowOf(sess), nil
}

func (s *sessionService) BeginThinking(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, _ := s.session(userID)
	if sess.thinking {
		return ErrSessionBusy
	}
	sess.thinking = true
	return nil
}

func (s *sessionService) EndThinking(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		sess.thinking = false
	}
}

func (s *sessionService) IsThinking(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return ok && sess.thinking
}

// RollAll re-anchors every session whose anchor is no longer today and returns those users.
func (s *sessionService) RollAll() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rolled []int64
	for userID := range s.sessions {
		if _, changed := s.session(userID); changed {
			rolled = append(rolled, userID)
		}
	}
	return rolled
}

func (s *sessionService) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
