package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fitcoach/client"
	"fitcoach/models"
	"fitcoach/repository"
	"fitcoach/utils"
)

var (
	// ErrNoPlan is returned when an operation needs a current plan and the user has none.
	ErrNoPlan = errors.New("no weekly plan available")
	// ErrPlanExists is returned by GeneratePlan when the current week already has a plan.
	ErrPlanExists = errors.New("a plan for the current week already exists")
	// ErrInvalidCopyAction is returned for copy actions other than merge, overwrite and cancel.
	ErrInvalidCopyAction = errors.New("copy action must be one of merge, overwrite, cancel")
	// ErrWorkoutNameRequired is returned before any backend call when a workout has no name.
	ErrWorkoutNameRequired = errors.New("workout name is required")
)

// PlanService manages a user's weekly plans. Every successful mutation reloads the plan list.
type PlanService interface {
	LoadAllPlans(ctx context.Context, userID int64) (*models.PlanOverview, error)
	Overview(userID int64) (*models.PlanOverview, error)
	CurrentPlan(userID int64) (*models.WeeklyPlan, error)
	SelectPlan(userID int64, index int) (*models.PlanOverview, error)
	GeneratePlan(ctx context.Context, userID int64) (*models.WeeklyPlan, error)
	AddWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error)
	AddWorkouts(ctx context.Context, userID int64, workouts []models.Workout) (int, error)
	UpdateWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error)
	ToggleWorkout(ctx context.Context, userID, workoutID int64) (*models.WorkoutResult, error)
	ClearDay(ctx context.Context, userID int64, dayIndex int) error
	DeletePlan(ctx context.Context, userID, planID int64) error
	PlanByID(ctx context.Context, userID, planID int64) (*models.WeeklyPlan, error)
	CheckNextWeek(ctx context.Context, userID int64) (bool, error)
	CopyToNextWeek(ctx context.Context, userID int64, action models.CopyAction) (*models.WeeklyPlan, error)
	KnownUsers() ([]int64, error)
	Forget(userID int64) error
}

type planService struct {
	plans    client.PlanClient
	planRepo repository.PlanRepository
	now      func() time.Time
}

// NewPlanService creates a new instance of PlanService.
func NewPlanService(plans client.PlanClient, planRepo repository.PlanRepository) PlanService {
	return &planService{plans: plans, planRepo: planRepo, now: time.Now}
}

// PlanLabel names the plan at index among total plans, e.g. "Week 2 of 3".
func PlanLabel(index, total int) string {
	if index < 0 || index >= total {
		return ""
	}
	return fmt.Sprintf("Week %d of %d", total-index, total)
}

func overviewOf(plans []models.WeeklyPlan, selected int, refreshedAt time.Time) *models.PlanOverview {
	if plans == nil {
		plans = []models.WeeklyPlan{}
	}
	return &models.PlanOverview{
		Plans:         plans,
		SelectedIndex: selected,
		Label:         PlanLabel(selected, len(plans)),
		RefreshedAt:   refreshedAt,
	}
}

func (s *planService) LoadAllPlans(ctx context.Context, userID int64) (*models.PlanOverview, error) {
	plans, err := s.plans.ListPlans(ctx, userID)
	if err != nil {
		log.Printf("ERROR: [PlanService] Failed to load plans for userID %d: %v", userID, err)
		return nil, fmt.Errorf("failed to load plans for userID %d: %w", userID, err)
	}

	_, previous, err := s.planRepo.GetPlans(userID)
	if err != nil {
		log.Printf("WARN: [PlanService] Could not read previous selection for userID %d: %v", userID, err)
		previous = -1
	}

	selected := -1
	switch {
	case len(plans) == 0:
	case previous >= 0 && previous < len(plans):
		selected = previous
	default:
		selected = len(plans) - 1
	}

	refreshedAt := s.now()
	if err := s.planRepo.SaveSnapshot(userID, plans, selected, refreshedAt); err != nil {
		return nil, err
	}
	log.Printf("INFO: [PlanService] Loaded %d plans for userID %d, selected index %d.", len(plans), userID, selected)
	return overviewOf(plans, selected, refreshedAt), nil
}

func (s *planService) Overview(userID int64) (*models.PlanOverview, error) {
	snapshot, err := s.planRepo.GetSnapshot(userID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return overviewOf(nil, -1, time.Time{}), nil
	}
	plans, selected, err := s.planRepo.GetPlans(userID)
	if err != nil {
		return nil, err
	}
	return overviewOf(plans, selected, snapshot.RefreshedAt), nil
}

// CurrentPlan returns the selected plan from the last snapshot, or nil when there is none.
// It never calls the backend.
func (s *planService) CurrentPlan(userID int64) (*models.WeeklyPlan, error) {
	plans, selected, err := s.planRepo.GetPlans(userID)
	if err != nil {
		return nil, err
	}
	if selected < 0 || selected >= len(plans) {
		return nil, nil
	}
	plan := plans[selected]
	return &plan, nil
}

func (s *planService) SelectPlan(userID int64, index int) (*models.PlanOverview, error) {
	plans, _, err := s.planRepo.GetPlans(userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(plans) {
		return nil, fmt.Errorf("%w: plan index %d out of range: user has %d plans", ErrInvalidInput, index, len(plans))
	}
	if err := s.planRepo.UpdateSelection(userID, index); err != nil {
		return nil, err
	}
	return s.Overview(userID)
}

// reload refreshes the snapshot after a mutation. A failed reload is logged; the mutation already happened.
func (s *planService) reload(ctx context.Context, userID int64) {
	if _, err := s.LoadAllPlans(ctx, userID); err != nil {
		log.Printf("WARN: [PlanService] Refresh after write failed for userID %d: %v", userID, err)
	}
}

// KnownUsers lists users with a stored plan snapshot.
func (s *planService) KnownUsers() ([]int64, error) {
	return s.planRepo.ListUserIDs()
}

// Forget drops the stored snapshot; the next LoadAllPlans starts from the backend's plan list.
func (s *planService) Forget(userID int64) error {
	if err := s.planRepo.DeleteSnapshot(userID); err != nil {
		return err
	}
	log.Printf("INFO: [PlanService] Dropped plan snapshot for userID %d.", userID)
	return nil
}

// selectPlanID points the selection at planID if it is in the snapshot.
func (s *planService) selectPlanID(userID, planID int64) {
	plans, _, err := s.planRepo.GetPlans(userID)
	if err != nil {
		return
	}
	for i, plan := range plans {
		if plan.ID == planID {
			if err := s.planRepo.UpdateSelection(userID, i); err != nil {
				log.Printf("WARN: [PlanService] Could not select plan %d for userID %d: %v", planID, userID, err)
			}
			return
		}
	}
}

func (s *planService) GeneratePlan(ctx context.Context, userID int64) (*models.WeeklyPlan, error) {
	log.Printf("INFO: [PlanService] Attempting to generate plan for userID: %d", userID)
	exists, err := s.plans.CheckCurrentWeek(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check current week for userID %d: %w", userID, err)
	}
	if exists {
		log.Printf("INFO: [PlanService] Current week already has a plan for userID %d.", userID)
		return nil, ErrPlanExists
	}

	plan, err := s.plans.GeneratePlan(ctx, userID)
	if err != nil {
		log.Printf("ERROR: [PlanService] Failed to generate plan for userID %d: %v", userID, err)
		return nil, fmt.Errorf("failed to generate plan for userID %d: %w", userID, err)
	}
	s.reload(ctx, userID)
	s.selectPlanID(userID, plan.ID)
	log.Printf("INFO: [PlanService] Generated plan %d for userID %d.", plan.ID, userID)
	return plan, nil
}

func validateWorkout(workout models.Workout) error {
	if strings.TrimSpace(workout.WorkoutName) == "" {
		return ErrWorkoutNameRequired
	}
	if !utils.ValidDayIndex(workout.DayIndex) {
		return fmt.Errorf("%w: day index %d must be between 0 and 6", ErrInvalidInput, workout.DayIndex)
	}
	return nil
}

// withCurrentPlanID sets PlanID from the current plan, leaving it nil when there is none.
func (s *planService) withCurrentPlanID(userID int64, workout models.Workout) models.Workout {
	if workout.PlanID != nil {
		return workout
	}
	if plan, err := s.CurrentPlan(userID); err == nil && plan != nil {
		id := plan.ID
		workout.PlanID = &id
	}
	return workout
}

func (s *planService) AddWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error) {
	if err := validateWorkout(workout); err != nil {
		return nil, err
	}
	result, err := s.plans.AddWorkout(ctx, userID, s.withCurrentPlanID(userID, workout))
	if err != nil {
		return nil, fmt.Errorf("failed to add workout '%s' for userID %d: %w", workout.WorkoutName, userID, err)
	}
	s.reload(ctx, userID)
	return result, nil
}

// AddWorkouts creates workouts one at a time in order and stops at the first failure.
// Plans are reloaded once afterwards if anything was created. It returns how many were created.
func (s *planService) AddWorkouts(ctx context.Context, userID int64, workouts []models.Workout) (int, error) {
	for _, workout := range workouts {
		if err := validateWorkout(workout); err != nil {
			return 0, err
		}
	}

	added := 0
	for _, workout := range workouts {
		if _, err := s.plans.AddWorkout(ctx, userID, s.withCurrentPlanID(userID, workout)); err != nil {
			log.Printf("ERROR: [PlanService] Adding workout '%s' failed for userID %d after %d of %d: %v",
				workout.WorkoutName, userID, added, len(workouts), err)
			if added > 0 {
				s.reload(ctx, userID)
			}
			return added, fmt.Errorf("failed to add workout '%s' for userID %d: %w", workout.WorkoutName, userID, err)
		}
		added++
	}
	if added > 0 {
		s.reload(ctx, userID)
	}
	return added, nil
}

func (s *planService) UpdateWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error) {
	if workout.ID == 0 {
		return nil, fmt.Errorf("%w: workout id is required", ErrInvalidInput)
	}
	if err := validateWorkout(workout); err != nil {
		return nil, err
	}
	result, err := s.plans.UpdateWorkout(ctx, userID, workout)
	if err != nil {
		return nil, fmt.Errorf("failed to update workout %d for userID %d: %w", workout.ID, userID, err)
	}
	s.reload(ctx, userID)
	return result, nil
}

func (s *planService) ToggleWorkout(ctx context.Context, userID, workoutID int64) (*models.WorkoutResult, error) {
	result, err := s.plans.ToggleWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle workout %d for userID %d: %w", workoutID, userID, err)
	}
	s.reload(ctx, userID)
	return result, nil
}

func (s *planService) ClearDay(ctx context.Context, userID int64, dayIndex int) error {
	if !utils.ValidDayIndex(dayIndex) {
		return fmt.Errorf("%w: day index %d must be between 0 and 6", ErrInvalidInput, dayIndex)
	}
	plan, err := s.CurrentPlan(userID)
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrNoPlan
	}
	if err := s.plans.ClearDay(ctx, userID, plan.ID, dayIndex); err != nil {
		return fmt.Errorf("failed to clear %s of plan %d: %w", utils.DayName(dayIndex), plan.ID, err)
	}
	log.Printf("INFO: [PlanService] Cleared %s of plan %d for userID %d.", utils.DayName(dayIndex), plan.ID, userID)
	s.reload(ctx, userID)
	return nil
}

// PlanByID fetches one plan straight from the backend without touching the snapshot.
func (s *planService) PlanByID(ctx context.Context, userID, planID int64) (*models.WeeklyPlan, error) {
	plan, err := s.plans.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %d for userID %d: %w", planID, userID, err)
	}
	return plan, nil
}

func (s *planService) DeletePlan(ctx context.Context, userID, planID int64) error {
	if err := s.plans.DeletePlan(ctx, userID, planID); err != nil {
		return fmt.Errorf("failed to delete plan %d for userID %d: %w", planID, userID, err)
	}
	log.Printf("INFO: [PlanService] Deleted plan %d for userID %d.", planID, userID)
	s.reload(ctx, userID)
	return nil
}

func (s *planService) CheckNextWeek(ctx context.Context, userID int64) (bool, error) {
	plan, err := s.CurrentPlan(userID)
	if err != nil {
		return false, err
	}
	if plan == nil {
		return false, ErrNoPlan
	}
	exists, err := s.plans.CheckNextWeek(ctx, userID, plan.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check next week for plan %d: %w", plan.ID, err)
	}
	return exists, nil
}

// CopyToNextWeek copies the current plan forward. Cancel makes no call and returns (nil, nil).
func (s *planService) CopyToNextWeek(ctx context.Context, userID int64, action models.CopyAction) (*models.WeeklyPlan, error) {
	if !action.Valid() {
		return nil, ErrInvalidCopyAction
	}
	if action == models.CopyActionCancel {
		log.Printf("INFO: [PlanService] Copy to next week cancelled by userID %d.", userID)
		return nil, nil
	}
	plan, err := s.CurrentPlan(userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoPlan
	}

	copied, err := s.plans.CopyToNextWeek(ctx, userID, plan.ID, action)
	if err != nil {
		return nil, fmt.Errorf("failed to copy plan %d to next week (%s): %w", plan.ID, action, err)
	}
	s.reload(ctx, userID)
	if copied != nil {
		s.selectPlanID(userID, copied.ID)
	}
	log.Printf("INFO: [PlanService] Copied plan %d to next week for userID %d (%s).", plan.ID, userID, action)
	return copied, nil
}

// DayBuckets pairs each window day with the plan's workouts for that day.
func DayBuckets(plan *models.WeeklyPlan, window []models.WeekDay) []models.PlanDay {
	days := make([]models.PlanDay, 0, len(window))
	for _, day := range window {
		workouts := plan.Workouts(day.DayIndex)
		if workouts == nil {
			workouts = []models.Workout{}
		}
		label := models.RestLabel
		if plan != nil {
			label = plan.MuscleGroup(day.DayIndex)
		}
		days = append(days, models.PlanDay{WeekDay: day, MuscleGroup: label, Workouts: workouts})
	}
	return days
}

// ExportPlanICS renders each workout of plan as an all-day event on its day of the plan week.
func ExportPlanICS(plan *models.WeeklyPlan, calName string, stamp time.Time) (string, error) {
	if plan == nil {
		return "", ErrNoPlan
	}
	if plan.StartDate.IsZero() {
		return "", fmt.Errorf("plan %d has no start date", plan.ID)
	}

	var events []utils.ICSEvent
	for dayIndex := 0; dayIndex < utils.WeekLength; dayIndex++ {
		date := utils.AddDays(plan.StartDate.Time, dayIndex)
		for i, workout := range plan.Workouts(dayIndex) {
			uid := fmt.Sprintf("plan-%d-day-%d-%d@fitcoach", plan.ID, dayIndex, i)
			if workout.ID != 0 {
				uid = fmt.Sprintf("plan-%d-workout-%d@fitcoach", plan.ID, workout.ID)
			}
			summary := workout.WorkoutName
			if workout.Sets > 0 && workout.Reps > 0 {
				summary = fmt.Sprintf("%s (%dx%d)", workout.WorkoutName, workout.Sets, workout.Reps)
			}
			events = append(events, utils.ICSEvent{
				UID:         uid,
				Summary:     summary,
				Description: workoutDescription(workout),
				Start:       date,
				AllDay:      true,
			})
		}
	}
	return utils.BuildICS(calName, events, stamp), nil
}

func workoutDescription(w models.Workout) string {
	var parts []string
	if w.MuscleGroup != "" {
		parts = append(parts, "Muscle group: "+w.MuscleGroup)
	}
	if w.Weight != "" {
		parts = append(parts, "Weight: "+w.Weight)
	}
	if w.Duration != "" {
		parts = append(parts, "Duration: "+w.Duration)
	}
	if w.Notes != "" {
		parts = append(parts, w.Notes)
	}
	return strings.Join(parts, "\n")
}
