package client

import (
	"context"
	"net/http"
	"strconv"

	"fitcoach/models"
)

const weeklyPlanPath = "/api/weekly-plan"

// PlanClient covers /api/weekly-plan.
type PlanClient interface {
	GeneratePlan(ctx context.Context, userID int64) (*models.WeeklyPlan, error)
	ListPlans(ctx context.Context, userID int64) ([]models.WeeklyPlan, error)
	GetPlan(ctx context.Context, userID, planID int64) (*models.WeeklyPlan, error)
	AddWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error)
	UpdateWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error)
	ToggleWorkout(ctx context.Context, userID, workoutID int64) (*models.WorkoutResult, error)
	ClearDay(ctx context.Context, userID, planID int64, dayIndex int) error
	DeletePlan(ctx context.Context, userID, planID int64) error
	CheckCurrentWeek(ctx context.Context, userID int64) (bool, error)
	CheckNextWeek(ctx context.Context, userID, currentPlanID int64) (bool, error)
	CopyToNextWeek(ctx context.Context, userID, currentPlanID int64, action models.CopyAction) (*models.WeeklyPlan, error)
}

func (c *Client) GeneratePlan(ctx context.Context, userID int64) (*models.WeeklyPlan, error) {
	var plan models.WeeklyPlan
	if err := c.do(ctx, http.MethodPost, weeklyPlanPath+"/generate", userQuery(userID), nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *Client) ListPlans(ctx context.Context, userID int64) ([]models.WeeklyPlan, error) {
	var plans []models.WeeklyPlan
	if err := c.do(ctx, http.MethodGet, weeklyPlanPath+"/all", userQuery(userID), nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *Client) GetPlan(ctx context.Context, userID, planID int64) (*models.WeeklyPlan, error) {
	var plan models.WeeklyPlan
	if err := c.do(ctx, http.MethodGet, weeklyPlanPath+"/"+strconv.FormatInt(planID, 10), userQuery(userID), nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// AddWorkout posts one workout. A nil PlanID is omitted so the backend may create the plan.
func (c *Client) AddWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error) {
	var result models.WorkoutResult
	if err := c.do(ctx, http.MethodPost, weeklyPlanPath+"/add-workout", userQuery(userID), workout, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateWorkout(ctx context.Context, userID int64, workout models.Workout) (*models.WorkoutResult, error) {
	var result models.WorkoutResult
	path := weeklyPlanPath + "/workout/" + strconv.FormatInt(workout.ID, 10)
	if err := c.do(ctx, http.MethodPut, path, userQuery(userID), workout, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ToggleWorkout(ctx context.Context, userID, workoutID int64) (*models.WorkoutResult, error) {
	var result models.WorkoutResult
	path := weeklyPlanPath + "/workout/" + strconv.FormatInt(workoutID, 10) + "/toggle"
	if err := c.do(ctx, http.MethodPut, path, userQuery(userID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ClearDay(ctx context.Context, userID, planID int64, dayIndex int) error {
	q := userQuery(userID)
	q.Set("planId", strconv.FormatInt(planID, 10))
	q.Set("dayIndex", strconv.Itoa(dayIndex))
	return c.do(ctx, http.MethodDelete, weeklyPlanPath+"/clear-day", q, nil, nil)
}

func (c *Client) DeletePlan(ctx context.Context, userID, planID int64) error {
	return c.do(ctx, http.MethodDelete, weeklyPlanPath+"/"+strconv.FormatInt(planID, 10), userQuery(userID), nil, nil)
}

func (c *Client) CheckCurrentWeek(ctx context.Context, userID int64) (bool, error) {
	var check models.PlanCheck
	if err := c.do(ctx, http.MethodGet, weeklyPlanPath+"/check-current-week", userQuery(userID), nil, &check); err != nil {
		return false, err
	}
	return check.HasPlan, nil
}

func (c *Client) CheckNextWeek(ctx context.Context, userID, currentPlanID int64) (bool, error) {
	q := userQuery(userID)
	q.Set("currentPlanId", strconv.FormatInt(currentPlanID, 10))
	var check models.PlanCheck
	if err := c.do(ctx, http.MethodGet, weeklyPlanPath+"/next-week/check", q, nil, &check); err != nil {
		return false, err
	}
	return check.HasPlan, nil
}

func (c *Client) CopyToNextWeek(ctx context.Context, userID, currentPlanID int64, action models.CopyAction) (*models.WeeklyPlan, error) {
	q := userQuery(userID)
	q.Set("currentPlanId", strconv.FormatInt(currentPlanID, 10))
	q.Set("action", string(action))
	var plan models.WeeklyPlan
	if err := c.do(ctx, http.MethodPost, weeklyPlanPath+"/copy-to-next-week", q, nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
