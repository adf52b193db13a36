package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"fitcoach/client"
	"fitcoach/models"
	"fitcoach/services"
	"fitcoach/utils"

	"github.com/gin-gonic/gin"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	sessions          services.SessionService
	assessmentService services.AssessmentService
	intentService     services.IntentService
	planService       services.PlanService
	eventService      services.EventService
	trainingLogs      services.TrainingLogService
	progressService   services.ProgressService
	profileService    services.ProfileService
	calendarName      string
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	sessions services.SessionService,
	assessmentService services.AssessmentService,
	intentService services.IntentService,
	planService services.PlanService,
	eventService services.EventService,
	trainingLogs services.TrainingLogService,
	progressService services.ProgressService,
	profileService services.ProfileService,
	calendarName string,
) *APIHandler {
	if calendarName == "" {
		calendarName = services.DefaultCalendarName
	}
	return &APIHandler{
		sessions:          sessions,
		assessmentService: assessmentService,
		intentService:     intentService,
		planService:       planService,
		eventService:      eventService,
		trainingLogs:      trainingLogs,
		progressService:   progressService,
		profileService:    profileService,
		calendarName:      calendarName,
	}
}

// parseUserID reads the required userId query parameter. On failure the response is already written.
func parseUserID(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.Query("userId"))
	if raw == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "userId is required.", nil)
		return 0, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		utils.SendJSONError(c, http.StatusBadRequest, "userId must be a positive integer.", err, fmt.Sprintf("userId=%q", raw))
		return 0, false
	}
	return userID, true
}

// parseIDParam reads a positive int64 path parameter.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		utils.SendJSONError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s format.", name), err, fmt.Sprintf("%s=%q", name, raw))
		return 0, false
	}
	return id, true
}

// parseIntParam reads an int path parameter; negative values are left to the services to reject.
func parseIntParam(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s format.", name), err, fmt.Sprintf("%s=%q", name, raw))
		return 0, false
	}
	return n, true
}

// respondError maps a service error onto a status code and writes it.
func respondError(c *gin.Context, publicMsg string, err error) {
	switch {
	case services.IsInvalidInput(err):
		utils.SendJSONError(c, http.StatusBadRequest, publicMsg, err, err.Error())
	case errors.Is(err, services.ErrNoPlan):
		utils.SendJSONError(c, http.StatusNotFound, services.ErrNoPlan.Error(), err)
	case errors.Is(err, services.ErrPlanExists):
		utils.SendJSONError(c, http.StatusConflict, services.ErrPlanExists.Error(), err)
	case errors.Is(err, services.ErrSessionBusy):
		utils.SendJSONError(c, http.StatusConflict, "A message is already being processed.", err)
	default:
		status := client.StatusCode(err)
		switch {
		case status == http.StatusNotFound:
			utils.SendJSONError(c, http.StatusNotFound, publicMsg, err)
		case status != 0:
			utils.SendJSONError(c, http.StatusBadGateway, publicMsg, err)
		default:
			utils.SendJSONError(c, http.StatusInternalServerError, publicMsg, err)
		}
	}
}

// InitHandler bootstraps a coach session: transcript, the rolling window, the user's plans and
// the option lists of the inline forms.
func (h *APIHandler) InitHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	transcript, err := h.intentService.Transcript(userID)
	if err != nil {
		respondError(c, "Failed to load the conversation.", err)
		return
	}
	window := h.sessions.Window(userID)

	overview, err := h.planService.LoadAllPlans(c.Request.Context(), userID)
	if err != nil {
		log.Printf("WARN: [InitHandler] Could not load plans for userID %d, falling back to the cached snapshot: %v", userID, err)
		overview, err = h.planService.Overview(userID)
		if err != nil {
			log.Printf("WARN: [InitHandler] No cached plans for userID %d: %v", userID, err)
			overview = nil
		}
	}

	response := models.InitResponse{
		UserID:        userID,
		Transcript:    transcript,
		Window:        window.Days,
		SelectedIndex: window.SelectedIndex,
		Plans:         overview,
		Intensity:     services.NewIntensityForm(),
		Objectives:    services.NewObjectivesForm(),
		CopyActions:   models.CopyActions,
	}
	utils.SendJSONOK(c, "success", response)
}

// RegisterRoutes mounts every endpoint under /api.
func (h *APIHandler) RegisterRoutes(r gin.IRouter) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/init", h.InitHandler)

		coachGroup := apiGroup.Group("/coach")
		{
			coachGroup.POST("/messages", h.SendMessageHandler)
			coachGroup.GET("/transcript", h.TranscriptHandler)
			coachGroup.DELETE("/transcript", h.ResetTranscriptHandler)
			coachGroup.POST("/intensity/prompt", h.IntensityPromptHandler)
			coachGroup.POST("/intensity", h.SubmitIntensityHandler)
			coachGroup.POST("/objectives/prompt", h.ObjectivesPromptHandler)
			coachGroup.POST("/objectives", h.SubmitObjectivesHandler)
			coachGroup.POST("/recommend", h.RecommendHandler)
		}

		calendarGroup := apiGroup.Group("/calendar")
		{
			calendarGroup.GET("/grid", h.MonthGridHandler)
			calendarGroup.GET("/week", h.WeekHandler)
			calendarGroup.GET("/day", h.DayViewHandler)
			calendarGroup.PUT("/week/selected", h.SelectDayHandler)
			calendarGroup.GET("/events", h.ListEventsHandler)
			calendarGroup.POST("/events", h.CreateEventHandler)
			calendarGroup.DELETE("/events/:id", h.DeleteEventHandler)
			calendarGroup.GET("/export", h.ExportCalendarHandler)
			calendarGroup.GET("/subscribe", h.SubscriptionHandler)
		}

		planGroup := apiGroup.Group("/plans")
		{
			planGroup.GET("", h.ListPlansHandler)
			planGroup.POST("/generate", h.GeneratePlanHandler)
			planGroup.PUT("/selected", h.SelectPlanHandler)
			planGroup.GET("/current/days", h.PlanDaysHandler)
			planGroup.GET("/current/ics", h.PlanICSHandler)
			planGroup.POST("/workouts", h.AddWorkoutHandler)
			planGroup.PUT("/workouts/:id", h.UpdateWorkoutHandler)
			planGroup.PUT("/workouts/:id/toggle", h.ToggleWorkoutHandler)
			planGroup.DELETE("/days/:dayIndex", h.ClearDayHandler)
			planGroup.GET("/:planId", h.GetPlanHandler)
			planGroup.DELETE("/:planId", h.DeletePlanHandler)
			planGroup.GET("/next-week", h.CheckNextWeekHandler)
			planGroup.POST("/copy-to-next-week", h.CopyToNextWeekHandler)
		}

		logGroup := apiGroup.Group("/training-log")
		{
			logGroup.GET("", h.ListLogsHandler)
			logGroup.POST("", h.CreateLogHandler)
			logGroup.GET("/by-date", h.LogsByDateHandler)
			logGroup.GET("/stats", h.LogStatsHandler)
			logGroup.GET("/export", h.ExportLogsHandler)
			logGroup.GET("/:id", h.GetLogHandler)
			logGroup.PUT("/:id", h.UpdateLogHandler)
			logGroup.DELETE("/:id", h.DeleteLogHandler)
		}

		reportGroup := apiGroup.Group("/reports")
		{
			reportGroup.GET("", h.ListReportsHandler)
			reportGroup.GET("/statistics", h.StatisticsHandler)
			reportGroup.GET("/:year/:month", h.MonthlyReportHandler)
			reportGroup.POST("/:year/:month/generate", h.GenerateReportHandler)
			reportGroup.POST("/:year/:month/insights", h.GenerateInsightsHandler)
			reportGroup.PUT("/by-id/:id/insights", h.UpdateInsightsHandler)
			reportGroup.DELETE("/by-id/:id", h.DeleteReportHandler)
		}

		apiGroup.GET("/profile", h.GetProfileHandler)
		apiGroup.POST("/profile", h.SaveProfileHandler)
		equipmentGroup := apiGroup.Group("/equipment")
		{
			equipmentGroup.GET("", h.ListEquipmentHandler)
			equipmentGroup.GET("/search", h.SearchEquipmentHandler)
			equipmentGroup.GET("/muscle/:muscle", h.EquipmentByMuscleHandler)
			equipmentGroup.GET("/:name", h.GetEquipmentHandler)
		}
		apiGroup.POST("/fitness/chat", h.FitnessChatHandler)
	}
}
