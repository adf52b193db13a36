package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fitcoach/models"
	"fitcoach/services"
	"fitcoach/utils"

	"github.com/gin-gonic/gin"
)

// SelectDayRequest is the body of PUT /api/calendar/week/selected.
type SelectDayRequest struct {
	DisplayIndex *int `json:"displayIndex" binding:"required"`
}

// MonthGridResponse is the 6x7 month grid, with the user's events keyed by day when a userId is given.
type MonthGridResponse struct {
	Month  string                            `json:"month"`
	Label  string                            `json:"label"`
	Days   []models.CalendarDay              `json:"days"`
	Events map[string][]models.CalendarEvent `json:"events,omitempty"`
}

// DayViewResponse is a single day: its events and logged training, under the week-of-month header.
type DayViewResponse struct {
	Date         models.Date               `json:"date"`
	Header       string                    `json:"header"`
	IsToday      bool                      `json:"isToday"`
	Events       []models.CalendarEvent    `json:"events"`
	TrainingLogs []models.TrainingLogEntry `json:"trainingLogs"`
}

// WeekResponse is the rolling window with the selected plan's workouts bucketed per day.
type WeekResponse struct {
	Window models.WeekWindow `json:"window"`
	Days   []models.PlanDay  `json:"days"`
}

// MonthGridHandler renders the month given as ?month=YYYY-MM, defaulting to the current month.
func (h *APIHandler) MonthGridHandler(c *gin.Context) {
	now := time.Now()
	ref := now
	if month := strings.TrimSpace(c.Query("month")); month != "" {
		parsed, err := utils.ParseMonth(month, time.Local)
		if err != nil {
			utils.SendJSONError(c, http.StatusBadRequest, "month must be YYYY-MM.", err)
			return
		}
		ref = parsed
	}
	var selected time.Time
	if raw := strings.TrimSpace(c.Query("selected")); raw != "" {
		day, err := models.ParseDate(raw)
		if err != nil {
			utils.SendJSONError(c, http.StatusBadRequest, "selected must be YYYY-MM-DD.", err)
			return
		}
		selected = day.Time
	}

	response := MonthGridResponse{
		Month: ref.Format("2006-01"),
		Label: ref.Format("January 2006"),
		Days:  utils.MonthGrid(ref, now, selected),
	}
	if c.Query("userId") != "" {
		userID, ok := parseUserID(c)
		if !ok {
			return
		}
		events, err := h.eventService.EventsByDay(c.Request.Context(), userID)
		if err != nil {
			respondError(c, "Failed to load events.", err)
			return
		}
		response.Events = events
	}
	utils.SendJSONOK(c, "success", response)
}

// WeekHandler returns the session's rolling window. ?layout=monday gives the legacy Monday-to-Sunday
// week instead; it has no session selection and starts on today's day-index.
func (h *APIHandler) WeekHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var window models.WeekWindow
	switch layout := c.DefaultQuery("layout", "rolling"); layout {
	case "rolling":
		window = h.sessions.Window(userID)
	case "monday":
		now := time.Now()
		days := utils.MondayWeek(now)
		selected := utils.PlanDayIndex(now)
		window = models.WeekWindow{Days: days, SelectedIndex: selected, Selected: days[selected], AnchorKey: days[0].Key}
	default:
		utils.SendJSONError(c, http.StatusBadRequest, "layout must be rolling or monday.", nil, fmt.Sprintf("layout=%q", layout))
		return
	}
	plan, err := h.planService.CurrentPlan(userID)
	if err != nil {
		respondError(c, "Failed to load the current plan.", err)
		return
	}
	utils.SendJSONOK(c, "success", WeekResponse{Window: window, Days: services.DayBuckets(plan, window.Days)})
}

// DayViewHandler renders ?date=YYYY-MM-DD, today by default.
func (h *APIHandler) DayViewHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	now := time.Now()
	day, ok := parseDateQuery(c, "date", models.NewDate(now))
	if !ok {
		return
	}
	ctx := c.Request.Context()
	events, err := h.eventService.EventsOn(ctx, userID, day.Time)
	if err != nil {
		respondError(c, "Failed to load events.", err)
		return
	}
	logs, err := h.trainingLogs.LogsByDate(ctx, userID, day)
	if err != nil {
		respondError(c, "Failed to load training logs.", err)
		return
	}
	if logs == nil {
		logs = []models.TrainingLogEntry{}
	}
	utils.SendJSONOK(c, "success", DayViewResponse{
		Date:         day,
		Header:       utils.WeekOfMonthLabel(day.Time),
		IsToday:      utils.SameDay(day.Time, now),
		Events:       events,
		TrainingLogs: logs,
	})
}

func (h *APIHandler) SelectDayHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var req SelectDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	window, err := h.sessions.SelectDay(userID, *req.DisplayIndex)
	if err != nil {
		respondError(c, "Failed to select day.", err)
		return
	}
	utils.SendJSONOK(c, "success", window)
}

// ListEventsHandler lists all events, or those of a single day with ?date=YYYY-MM-DD.
func (h *APIHandler) ListEventsHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		day, err := models.ParseDate(raw)
		if err != nil {
			utils.SendJSONError(c, http.StatusBadRequest, "date must be YYYY-MM-DD.", err)
			return
		}
		events, err := h.eventService.EventsOn(ctx, userID, day.Time)
		if err != nil {
			respondError(c, "Failed to load events.", err)
			return
		}
		utils.SendJSONOK(c, "success", events)
		return
	}
	events, err := h.eventService.ListEvents(ctx, userID)
	if err != nil {
		respondError(c, "Failed to load events.", err)
		return
	}
	utils.SendJSONOK(c, "success", events)
}

func (h *APIHandler) CreateEventHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var form models.EventForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	event, err := h.eventService.CreateEvent(c.Request.Context(), userID, form)
	if err != nil {
		respondError(c, "Failed to create event.", err)
		return
	}
	utils.SendJSONOK(c, "Event created.", event)
}

func (h *APIHandler) DeleteEventHandler(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.eventService.DeleteEvent(c.Request.Context(), eventID); err != nil {
		respondError(c, "Failed to delete event.", err)
		return
	}
	utils.SendJSONOK(c, "Event deleted.", nil)
}

// ExportCalendarHandler downloads the user's events as an .ics file. ?name overrides the calendar name.
func (h *APIHandler) ExportCalendarHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		name = h.calendarName
	}
	data, err := h.eventService.ExportCalendar(c.Request.Context(), userID, name)
	if err != nil {
		respondError(c, "Failed to export calendar.", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="fitness-calendar-%d.ics"`, userID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func (h *APIHandler) SubscriptionHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	url, err := h.eventService.SubscriptionURL(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to get the subscription link.", err)
		return
	}
	utils.SendJSONOK(c, "success", gin.H{"url": url})
}
