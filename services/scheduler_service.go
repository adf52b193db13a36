package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron"
)

const DefaultRolloverSpec = "0 0 0 * * *"

// RolloverScheduler re-anchors every coach session's rolling window at midnight and refreshes
// the plan snapshots of the sessions that moved.
type RolloverScheduler interface {
	Start() error
	Stop()
	RunOnce(ctx context.Context) []int64
}

type rolloverScheduler struct {
	spec        string
	sessions    SessionService
	planService PlanService
	timeout     time.Duration
	cron        *cron.Cron
}

// NewRolloverScheduler creates a scheduler firing on spec, a six-field cron expression with seconds.
func NewRolloverScheduler(spec string, sessions SessionService, planService PlanService) RolloverScheduler {
	if spec == "" {
		spec = DefaultRolloverSpec
	}
	return &rolloverScheduler{
		spec:        spec,
		sessions:    sessions,
		planService: planService,
		timeout:     time.Minute,
	}
}

func (s *rolloverScheduler) Start() error {
	c := cron.New()
	err := c.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid rollover schedule %q: %w", s.spec, err)
	}
	c.Start()
	s.cron = c
	log.Printf("INFO: [RolloverScheduler] Started with schedule '%s'.", s.spec)
	return nil
}

func (s *rolloverScheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		log.Println("INFO: [RolloverScheduler] Stopped.")
	}
}

// RunOnce rolls all sessions now and returns the users whose window moved. Plans are refreshed for
// those users and for every user with a stored snapshot, so snapshots survive a restart fresh.
func (s *rolloverScheduler) RunOnce(ctx context.Context) []int64 {
	rolled := s.sessions.RollAll()
	log.Printf("INFO: [RolloverScheduler] Rolled %d sessions.", len(rolled))
	if s.planService == nil {
		return rolled
	}

	refresh := make(map[int64]struct{}, len(rolled))
	for _, userID := range rolled {
		refresh[userID] = struct{}{}
	}
	known, err := s.planService.KnownUsers()
	if err != nil {
		log.Printf("WARN: [RolloverScheduler] Could not list users with stored plans: %v", err)
	}
	for _, userID := range known {
		refresh[userID] = struct{}{}
	}

	for userID := range refresh {
		if _, err := s.planService.LoadAllPlans(ctx, userID); err != nil {
			log.Printf("WARN: [RolloverScheduler] Could not refresh plans for userID %d: %v", userID, err)
		}
	}
	return rolled
}
