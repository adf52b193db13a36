package api

import (
	"net/http"
	"strconv"

	"fitcoach/models"
	"fitcoach/utils"

	"github.com/gin-gonic/gin"
)

// parseYearMonth reads the :year and :month path parameters. Range checks are left to the service.
func parseYearMonth(c *gin.Context) (int, int, bool) {
	year, ok := parseIntParam(c, "year")
	if !ok {
		return 0, 0, false
	}
	month, ok := parseIntParam(c, "month")
	if !ok {
		return 0, 0, false
	}
	return year, month, true
}

func (h *APIHandler) StatisticsHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	stats, err := h.progressService.Statistics(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to load statistics.", err)
		return
	}
	utils.SendJSONOK(c, "success", stats)
}

func (h *APIHandler) ListReportsHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	reports, err := h.progressService.ListReports(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to load reports.", err)
		return
	}
	utils.SendJSONOK(c, "success", reports)
}

// MonthlyReportHandler returns a month's report; ?refresh=true asks the backend to rebuild it.
func (h *APIHandler) MonthlyReportHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}
	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	view, err := h.progressService.MonthlyReport(c.Request.Context(), userID, year, month, refresh)
	if err != nil {
		respondError(c, "Failed to load report.", err)
		return
	}
	utils.SendJSONOK(c, "success", view)
}

func (h *APIHandler) GenerateReportHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}
	view, err := h.progressService.GenerateReport(c.Request.Context(), userID, year, month)
	if err != nil {
		respondError(c, "Failed to generate report.", err)
		return
	}
	utils.SendJSONOK(c, "Report generated.", view)
}

// GenerateInsightsHandler asks the analytical agent for the month's insights.
func (h *APIHandler) GenerateInsightsHandler(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}
	insights, err := h.progressService.GenerateInsights(c.Request.Context(), userID, year, month)
	if err != nil {
		respondError(c, "AI insights are temporarily unavailable.", err)
		return
	}
	utils.SendJSONOK(c, "success", gin.H{"aiInsights": insights})
}

func (h *APIHandler) UpdateInsightsHandler(c *gin.Context) {
	reportID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	report, err := h.progressService.UpdateInsights(c.Request.Context(), reportID, req.AIInsights)
	if err != nil {
		respondError(c, "Failed to save insights.", err)
		return
	}
	utils.SendJSONOK(c, "Insights saved.", report)
}

func (h *APIHandler) DeleteReportHandler(c *gin.Context) {
	reportID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.progressService.DeleteReport(c.Request.Context(), reportID); err != nil {
		respondError(c, "Failed to delete report.", err)
		return
	}
	utils.SendJSONOK(c, "Report deleted.", nil)
}
