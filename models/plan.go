package models

import "time"

// CopyAction tells the backend how to copy a plan into next week.
type CopyAction string

const (
	CopyActionMerge     CopyAction = "merge"
	CopyActionOverwrite CopyAction = "overwrite"
	CopyActionCancel    CopyAction = "cancel"
)

// CopyActions lists the choices offered when next week already has a plan. None is a default.
var CopyActions = []CopyAction{CopyActionMerge, CopyActionOverwrite, CopyActionCancel}

// Valid reports whether a is one of the three copy actions.
func (a CopyAction) Valid() bool {
	for _, known := range CopyActions {
		if a == known {
			return true
		}
	}
	return false
}

// RestLabel is shown for a day without workouts.
const RestLabel = "Rest"

// WeeklyPlan is a 7-day plan as returned by /api/weekly-plan.
type WeeklyPlan struct {
	ID                int64             `json:"id"`
	UserID            int64             `json:"userId,omitempty"`
	StartDate         Date              `json:"startDate"`
	EndDate           Date              `json:"endDate"`
	CreatedAt         *DateTime         `json:"createdAt,omitempty"`
	WorkoutsByDay     map[int][]Workout `json:"workoutsByDay"`
	WorkoutCount      map[int]int       `json:"workoutCount,omitempty"`
	MuscleGroupsByDay map[int]string    `json:"muscleGroupsByDay,omitempty"`
}

// Workouts returns the workouts of dayIndex, or nil.
func (p *WeeklyPlan) Workouts(dayIndex int) []Workout {
	if p == nil || p.WorkoutsByDay == nil {
		return nil
	}
	return p.WorkoutsByDay[dayIndex]
}

// MuscleGroup returns the muscle-group label of dayIndex, "Rest" when the day is empty.
func (p *WeeklyPlan) MuscleGroup(dayIndex int) string {
	if p == nil {
		return ""
	}
	if label, ok := p.MuscleGroupsByDay[dayIndex]; ok && label != "" {
		return label
	}
	if len(p.Workouts(dayIndex)) == 0 {
		return RestLabel
	}
	return ""
}

// TotalWorkouts counts workouts across all days.
func (p *WeeklyPlan) TotalWorkouts() int {
	if p == nil {
		return 0
	}
	total := 0
	for _, workouts := range p.WorkoutsByDay {
		total += len(workouts)
	}
	return total
}

// Workout is one exercise entry of a plan day.
type Workout struct {
	ID          int64  `json:"id,omitempty"`
	PlanID      *int64 `json:"planId,omitempty"`
	DayIndex    int    `json:"dayIndex"`
	WorkoutName string `json:"workoutName"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	Weight      string `json:"weight,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Completed   bool   `json:"completed"`
	MuscleGroup string `json:"muscleGroup,omitempty"`
}

// WorkoutResult is the backend reply to add/update/toggle/clear calls.
type WorkoutResult struct {
	Success   bool   `json:"success"`
	WorkoutID int64  `json:"workoutId,omitempty"`
	Message   string `json:"message,omitempty"`
}

// PlanCheck is the reply of the current-week and next-week checks.
type PlanCheck struct {
	HasPlan bool `json:"hasPlan"`
}

// PlanDay is one rendered day of the weekly plan view.
type PlanDay struct {
	WeekDay
	MuscleGroup string    `json:"muscleGroup"`
	Workouts    []Workout `json:"workouts"`
}

// PlanOverview is the state the weekly plan view renders.
type PlanOverview struct {
	Plans         []WeeklyPlan `json:"plans"`
	SelectedIndex int          `json:"selectedIndex"`
	Label         string       `json:"label,omitempty"`
	RefreshedAt   time.Time    `json:"refreshedAt"`
}
