package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"fitcoach/models"
	"fitcoach/services"
	"fitcoach/utils"

	"github.com/gin-gonic/gin"
)

// SelectPlanRequest is the body of PUT /api/plans/selected.
type SelectPlanRequest struct {
	Index *int `json:"index" binding:"required"`
}

// CopyRequest is the body of POST /api/plans/copy-to-next-week. There is no default action.
type CopyRequest struct {
	Action models.CopyAction `json:"action" binding:"required"`
}

// PlanDaysResponse is the selected plan laid out over the user's rolling window.
type PlanDaysResponse struct {
	PlanID int64            `json:"planId,omitempty"`
	Label  string           `json:"label"`
	Days   []models.PlanDay `json:"days"`
}

// ListPlansHandler returns the cached plan list, reloading from the backend with ?refresh=true
// or when nothing has been loaded yet.
func (h *APIHandler) ListPlansHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))

	var overview *models.PlanOverview
	var err error
	if !refresh {
		overview, err = h.planService.Overview(userID)
		if err != nil {
			respondError(c, "Failed to load plans.", err)
			return
		}
		refresh = overview.RefreshedAt.IsZero()
	}
	if refresh {
		overview, err = h.planService.LoadAllPlans(c.Request.Context(), userID)
		if err != nil {
			respondError(c, "Failed to load plans.", err)
			return
		}
	}
	utils.SendJSONOK(c, "success", overview)
}

func (h *APIHandler) GeneratePlanHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	log.Printf("INFO: [GeneratePlanHandler] Generating weekly plan for userID %d.", userID)
	plan, err := h.planService.GeneratePlan(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to generate plan.", err)
		return
	}
	overview, err := h.planService.Overview(userID)
	if err != nil {
		respondError(c, "Failed to load plans.", err)
		return
	}
	utils.SendJSONOK(c, "Plan generated.", gin.H{"plan": plan, "plans": overview})
}

func (h *APIHandler) SelectPlanHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var req SelectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	overview, err := h.planService.SelectPlan(userID, *req.Index)
	if err != nil {
		respondError(c, "Failed to select plan.", err)
		return
	}
	utils.SendJSONOK(c, "success", overview)
}

func (h *APIHandler) PlanDaysHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	plan, err := h.planService.CurrentPlan(userID)
	if err != nil {
		respondError(c, "Failed to load the current plan.", err)
		return
	}
	overview, err := h.planService.Overview(userID)
	if err != nil {
		respondError(c, "Failed to load plans.", err)
		return
	}
	window := h.sessions.Window(userID)
	response := PlanDaysResponse{Label: overview.Label, Days: services.DayBuckets(plan, window.Days)}
	if plan != nil {
		response.PlanID = plan.ID
	}
	utils.SendJSONOK(c, "success", response)
}

// PlanICSHandler downloads the selected plan as all-day calendar events.
func (h *APIHandler) PlanICSHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	plan, err := h.planService.CurrentPlan(userID)
	if err != nil {
		respondError(c, "Failed to load the current plan.", err)
		return
	}
	if plan == nil {
		respondError(c, "No plan to export.", services.ErrNoPlan)
		return
	}
	ics, err := services.ExportPlanICS(plan, h.calendarName, time.Now())
	if err != nil {
		respondError(c, "Failed to export plan.", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="weekly-plan-%d.ics"`, plan.ID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

func (h *APIHandler) AddWorkoutHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var workout models.Workout
	if err := c.ShouldBindJSON(&workout); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	result, err := h.planService.AddWorkout(c.Request.Context(), userID, workout)
	if err != nil {
		respondError(c, "Failed to add workout.", err)
		return
	}
	utils.SendJSONOK(c, "Workout added.", result)
}

func (h *APIHandler) UpdateWorkoutHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var workout models.Workout
	if err := c.ShouldBindJSON(&workout); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	workout.ID = workoutID
	result, err := h.planService.UpdateWorkout(c.Request.Context(), userID, workout)
	if err != nil {
		respondError(c, "Failed to update workout.", err)
		return
	}
	utils.SendJSONOK(c, "Workout updated.", result)
}

func (h *APIHandler) ToggleWorkoutHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.planService.ToggleWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		respondError(c, "Failed to toggle workout.", err)
		return
	}
	utils.SendJSONOK(c, "success", result)
}

// ClearDayHandler removes every workout of a plan day-index (Monday 0) from the selected plan.
func (h *APIHandler) ClearDayHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	dayIndex, ok := parseIntParam(c, "dayIndex")
	if !ok {
		return
	}
	if err := h.planService.ClearDay(c.Request.Context(), userID, dayIndex); err != nil {
		respondError(c, "Failed to clear day.", err)
		return
	}
	utils.SendJSONOK(c, fmt.Sprintf("Cleared all workouts for %s.", utils.DayName(dayIndex)), nil)
}

func (h *APIHandler) GetPlanHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	plan, err := h.planService.PlanByID(c.Request.Context(), userID, planID)
	if err != nil {
		respondError(c, "Failed to load plan.", err)
		return
	}
	utils.SendJSONOK(c, "success", plan)
}

func (h *APIHandler) DeletePlanHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}
	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		respondError(c, "Failed to delete plan.", err)
		return
	}
	utils.SendJSONOK(c, "Plan deleted.", nil)
}

// CheckNextWeekHandler reports whether next week already has a plan, and the copy choices offered if so.
func (h *APIHandler) CheckNextWeekHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	exists, err := h.planService.CheckNextWeek(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to check next week.", err)
		return
	}
	response := gin.H{"hasPlan": exists}
	if exists {
		response["copyActions"] = models.CopyActions
	}
	utils.SendJSONOK(c, "success", response)
}

func (h *APIHandler) CopyToNextWeekHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var req CopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	plan, err := h.planService.CopyToNextWeek(c.Request.Context(), userID, req.Action)
	if err != nil {
		respondError(c, "Failed to copy plan to next week.", err)
		return
	}
	if plan == nil {
		utils.SendJSONOK(c, "Copy cancelled.", nil)
		return
	}
	utils.SendJSONOK(c, "Plan copied to next week.", plan)
}
