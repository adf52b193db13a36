package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fitcoach/models"
	"fitcoach/repository"
	"fitcoach/utils"
)

const (
	WelcomeMessage     = "Hi! I'm your AI fitness planner! If you're feeling lost about your training plan, let me help you out! You can share your needs with me, or click:"
	NoPlanMessage      = "You don't have a weekly plan yet. Ask me to add a workout or generate a plan first."
	UnsupportedMessage = "Sorry, that action is not supported yet."
	ErrorMessage       = "Sorry, I encountered an error. Please try again."
)

// ErrEmptyMessage is returned when the user sends only whitespace.
var ErrEmptyMessage = errors.New("message cannot be empty")

// IntentService is the coach chat: it classifies each user message and applies plan actions.
type IntentService interface {
	SendMessage(ctx context.Context, userID int64, text string) (*models.ChatMessage, error)
	Transcript(userID int64) ([]models.ChatMessage, error)
	Reset(userID int64) error
}

type intentService struct {
	chatRepo    repository.ChatRepository
	sessions    SessionService
	planService PlanService
	classifier  IntentClassifier
	now         func() time.Time
}

// NewIntentService creates a new instance of IntentService.
func NewIntentService(chatRepo repository.ChatRepository, sessions SessionService, planService PlanService, classifier IntentClassifier) IntentService {
	return &intentService{
		chatRepo:    chatRepo,
		sessions:    sessions,
		planService: planService,
		classifier:  classifier,
		now:         time.Now,
	}
}

func (s *intentService) append(userID int64, msgType models.MessageType, content string) (*models.ChatMessage, error) {
	saved, err := s.chatRepo.SaveMessage(models.ChatMessage{
		UserID:    userID,
		Type:      msgType,
		Content:   content,
		Timestamp: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save %s message for userID %d: %w", msgType, userID, err)
	}
	return &saved, nil
}

// ensureWelcome seeds an empty transcript with the welcome message.
func (s *intentService) ensureWelcome(userID int64) error {
	messages, err := s.chatRepo.GetMessagesByUserID(userID)
	if err != nil {
		return err
	}
	if len(messages) > 0 {
		return nil
	}
	_, err = s.append(userID, models.MessageTypeAI, WelcomeMessage)
	return err
}

func (s *intentService) Transcript(userID int64) ([]models.ChatMessage, error) {
	if err := s.ensureWelcome(userID); err != nil {
		return nil, err
	}
	return s.chatRepo.GetMessagesByUserID(userID)
}

func (s *intentService) Reset(userID int64) error {
	if err := s.chatRepo.ClearMessages(userID); err != nil {
		return err
	}
	s.sessions.Reset(userID)
	if s.planService != nil {
		if err := s.planService.Forget(userID); err != nil {
			log.Printf("WARN: [IntentService] Could not drop cached plans for userID %d: %v", userID, err)
		}
	}
	return s.ensureWelcome(userID)
}

// SendMessage appends the user's message and the coach's reply, and returns the reply.
// Classifier and backend failures are not returned; they become the generic error reply.
func (s *intentService) SendMessage(ctx context.Context, userID int64, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if err := s.sessions.BeginThinking(userID); err != nil {
		return nil, err
	}
	defer s.sessions.EndThinking(userID)

	if err := s.ensureWelcome(userID); err != nil {
		return nil, err
	}
	if _, err := s.append(userID, models.MessageTypeUser, text); err != nil {
		return nil, err
	}

	window := s.sessions.Window(userID)
	reply, err := s.respond(ctx, userID, text, window)
	if err != nil {
		log.Printf("ERROR: [IntentService] Handling message for userID %d failed: %v", userID, err)
		reply = ErrorMessage
	}
	return s.append(userID, models.MessageTypeAI, reply)
}

func (s *intentService) respond(ctx context.Context, userID int64, text string, window models.WeekWindow) (string, error) {
	prompt := BuildIntentPrompt(text, window.Selected, window.Days)
	raw, err := s.classifier.Classify(ctx, userID, prompt)
	if err != nil {
		return "", err
	}
	intent := ParseIntent(raw)
	if !intent.IsAction {
		return intent.Response, nil
	}

	log.Printf("INFO: [IntentService] userID %d intent action '%s'.", userID, intent.Action)
	switch intent.Action {
	case models.ActionAddWorkout:
		return s.addWorkouts(ctx, userID, intent, window.Selected.DayIndex)
	case models.ActionClearDay:
		return s.clearDay(ctx, userID, intent, window.Selected.DayIndex)
	default:
		if intent.Response != "" {
			return intent.Response, nil
		}
		return UnsupportedMessage, nil
	}
}

func targetDay(params models.IntentParameters, selectedDay int) int {
	if params.DayIndex != nil && utils.ValidDayIndex(*params.DayIndex) {
		return *params.DayIndex
	}
	return selectedDay
}

// IntentWorkouts turns the intent's workouts into plan workouts for dayIndex. When the model named
// only a muscle group, the built-in library supplies Count exercises.
func IntentWorkouts(params models.IntentParameters, dayIndex int) []models.Workout {
	var workouts []models.Workout
	for _, w := range params.Workouts {
		if strings.TrimSpace(w.WorkoutName) == "" {
			continue
		}
		workouts = append(workouts, models.Workout{
			DayIndex:    dayIndex,
			WorkoutName: w.WorkoutName,
			Sets:        int(w.Sets),
			Reps:        int(w.Reps),
			Weight:      string(w.Weight),
			Duration:    string(w.Duration),
			Notes:       w.Notes,
			Completed:   w.Completed,
			MuscleGroup: params.MuscleGroup,
		})
	}
	if len(workouts) > 0 || params.MuscleGroup == "" {
		return workouts
	}

	notes := "AI generated " + params.MuscleGroup + " workout"
	if params.Intensity != "" {
		notes += " - " + params.Intensity
	}
	sets, reps := int(params.Sets), int(params.Reps)
	if sets <= 0 {
		sets = 3
	}
	if reps <= 0 {
		reps = 12
	}
	for _, name := range LibraryWorkouts(params.MuscleGroup, params.Count) {
		workouts = append(workouts, models.Workout{
			DayIndex:    dayIndex,
			WorkoutName: name,
			Sets:        sets,
			Reps:        reps,
			Weight:      string(params.Weight),
			Notes:       notes,
			MuscleGroup: params.MuscleGroup,
		})
	}
	return workouts
}

func (s *intentService) addWorkouts(ctx context.Context, userID int64, intent models.Intent, selectedDay int) (string, error) {
	dayIndex := targetDay(intent.Parameters, selectedDay)
	workouts := IntentWorkouts(intent.Parameters, dayIndex)
	if len(workouts) == 0 {
		if intent.Response != "" {
			return intent.Response, nil
		}
		return "", errors.New("add_workout intent carried no workouts")
	}

	added, err := s.planService.AddWorkouts(ctx, userID, workouts)
	if err != nil {
		return "", err
	}
	if intent.Response != "" {
		return intent.Response, nil
	}
	return fmt.Sprintf("Added %d workout(s) to %s.", added, utils.DayName(dayIndex)), nil
}

// clearDay always targets the selected day; the model's dayIndex only applies to add_workout.
func (s *intentService) clearDay(ctx context.Context, userID int64, intent models.Intent, selectedDay int) (string, error) {
	err := s.planService.ClearDay(ctx, userID, selectedDay)
	if errors.Is(err, ErrNoPlan) {
		return NoPlanMessage, nil
	}
	if err != nil {
		return "", err
	}
	if intent.Response != "" {
		return intent.Response, nil
	}
	return fmt.Sprintf("Cleared all workouts for %s.", utils.DayName(selectedDay)), nil
}
