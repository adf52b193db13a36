package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fitcoach/models"
	"fitcoach/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// parseDateQuery reads a YYYY-MM-DD query parameter; an absent parameter yields fallback.
func parseDateQuery(c *gin.Context, name string, fallback models.Date) (models.Date, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, true
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, fmt.Sprintf("%s must be YYYY-MM-DD.", name), err)
		return models.Date{}, false
	}
	return date, true
}

// ListLogsHandler lists every entry, or only those between ?start and ?end when either is given.
func (h *APIHandler) ListLogsHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if c.Query("start") == "" && c.Query("end") == "" {
		entries, err := h.trainingLogs.ListLogs(ctx, userID)
		if err != nil {
			respondError(c, "Failed to load training logs.", err)
			return
		}
		utils.SendJSONOK(c, "success", entries)
		return
	}
	start, ok := parseDateQuery(c, "start", models.Date{})
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end", models.Date{})
	if !ok {
		return
	}
	entries, err := h.trainingLogs.LogsInRange(ctx, userID, start, end)
	if err != nil {
		respondError(c, "Failed to load training logs.", err)
		return
	}
	utils.SendJSONOK(c, "success", entries)
}

func (h *APIHandler) CreateLogHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	var entry models.TrainingLogEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	created, err := h.trainingLogs.CreateLog(c.Request.Context(), userID, entry)
	if err != nil {
		respondError(c, "Failed to save training log.", err)
		return
	}
	utils.SendJSONOK(c, "Training log saved.", created)
}

// LogsByDateHandler lists one day's entries, today by default.
func (h *APIHandler) LogsByDateHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	date, ok := parseDateQuery(c, "date", models.NewDate(time.Now()))
	if !ok {
		return
	}
	entries, err := h.trainingLogs.LogsByDate(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, "Failed to load training logs.", err)
		return
	}
	utils.SendJSONOK(c, "success", entries)
}

func (h *APIHandler) GetLogHandler(c *gin.Context) {
	logID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	entry, err := h.trainingLogs.GetLog(c.Request.Context(), logID)
	if err != nil {
		respondError(c, "Failed to load training log.", err)
		return
	}
	utils.SendJSONOK(c, "success", entry)
}

func (h *APIHandler) UpdateLogHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	logID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var entry models.TrainingLogEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	entry.ID = logID
	updated, err := h.trainingLogs.UpdateLog(c.Request.Context(), userID, entry)
	if err != nil {
		respondError(c, "Failed to update training log.", err)
		return
	}
	utils.SendJSONOK(c, "Training log updated.", updated)
}

func (h *APIHandler) DeleteLogHandler(c *gin.Context) {
	logID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.trainingLogs.DeleteLog(c.Request.Context(), logID); err != nil {
		respondError(c, "Failed to delete training log.", err)
		return
	}
	utils.SendJSONOK(c, "Training log deleted.", nil)
}

func (h *APIHandler) LogStatsHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	stats, err := h.trainingLogs.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to load training stats.", err)
		return
	}
	utils.SendJSONOK(c, "success", stats)
}

// ExportLogsHandler downloads a workbook of ?start..?end, defaulting to the current month.
func (h *APIHandler) ExportLogsHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	start, ok := parseDateQuery(c, "start", models.NewDate(monthStart))
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end", models.NewDate(monthStart.AddDate(0, 1, -1)))
	if !ok {
		return
	}

	data, err := h.trainingLogs.ExportWorkbook(c.Request.Context(), userID, start, end)
	if err != nil {
		respondError(c, "Failed to export training logs.", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="training-log-%s-%s.xlsx"`, start, end))
	c.Data(http.StatusOK, xlsxContentType, data)
}
