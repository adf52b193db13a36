package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"fitcoach/client"
	"fitcoach/models"
)

const (
	insightsFallback = "Great consistency this month. Consider adding 2-3 cardio sessions and regular mobility work."
	placeholderWeeks = 4
)

// ProgressService serves monthly progress reports and their AI insights.
type ProgressService interface {
	Statistics(ctx context.Context, userID int64) (*models.MonthlyStatistics, error)
	ListReports(ctx context.Context, userID int64) ([]models.MonthlyReport, error)
	MonthlyReport(ctx context.Context, userID int64, year, month int, refresh bool) (*models.MonthlyReportView, error)
	GenerateReport(ctx context.Context, userID int64, year, month int) (*models.MonthlyReportView, error)
	GenerateInsights(ctx context.Context, userID int64, year, month int) (string, error)
	UpdateInsights(ctx context.Context, reportID int64, insights string) (*models.MonthlyReport, error)
	DeleteReport(ctx context.Context, reportID int64) error
}

type progressService struct {
	reports client.ReportClient
	chat    client.ChatClient
}

// NewProgressService creates a new instance of ProgressService.
func NewProgressService(reports client.ReportClient, chat client.ChatClient) ProgressService {
	return &progressService{reports: reports, chat: chat}
}

func validMonth(year, month int) error {
	if year < 1970 || month < 1 || month > 12 {
		return fmt.Errorf("%w: report month %d-%02d", ErrInvalidInput, year, month)
	}
	return nil
}

func (s *progressService) Statistics(ctx context.Context, userID int64) (*models.MonthlyStatistics, error) {
	stats, err := s.reports.Statistics(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly statistics for userID %d: %w", userID, err)
	}
	return stats, nil
}

func (s *progressService) ListReports(ctx context.Context, userID int64) ([]models.MonthlyReport, error) {
	reports, err := s.reports.ListReports(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly reports for userID %d: %w", userID, err)
	}
	return reports, nil
}

// placeholderActivity is shown for a month without weekly data.
func placeholderActivity() []models.WeeklyActivity {
	weeks := make([]models.WeeklyActivity, 0, placeholderWeeks)
	for i := 1; i <= placeholderWeeks; i++ {
		weeks = append(weeks, models.WeeklyActivity{Week: fmt.Sprintf("Week %d", i)})
	}
	return weeks
}

// BuildReportView decodes the report's JSON breakdowns. Undecodable breakdowns count as empty.
func BuildReportView(report *models.MonthlyReport, fallback models.MonthlyStatistics) *models.MonthlyReportView {
	view := &models.MonthlyReportView{
		Report:       report,
		Statistics:   fallback,
		TopExercises: []models.TopExercise{},
	}
	if report == nil {
		view.WeeklyActivity = placeholderActivity()
		return view
	}

	view.Statistics = models.MonthlyStatistics{
		TotalWorkouts:  report.TotalSessions,
		TotalMinutes:   report.TotalDurationMinutes,
		CaloriesBurned: report.TotalCaloriesBurned,
		CurrentStreak:  report.CurrentStreakDays,
		AdherenceRate:  report.GoalAchievementPercentage,
	}
	if strings.TrimSpace(report.WeeklyActivityData) != "" {
		if err := json.Unmarshal([]byte(report.WeeklyActivityData), &view.WeeklyActivity); err != nil {
			log.Printf("WARN: [ProgressService] Could not decode weekly activity of report %d: %v", report.ID, err)
			view.WeeklyActivity = nil
		}
	}
	if len(view.WeeklyActivity) == 0 {
		view.WeeklyActivity = placeholderActivity()
	}
	if strings.TrimSpace(report.TopExercises) != "" {
		if err := json.Unmarshal([]byte(report.TopExercises), &view.TopExercises); err != nil {
			log.Printf("WARN: [ProgressService] Could not decode top exercises of report %d: %v", report.ID, err)
			view.TopExercises = []models.TopExercise{}
		}
	}
	return view
}

// MonthlyReport returns the report for year/month. A month without a report yields a view with
// the current-month statistics and placeholder weeks.
func (s *progressService) MonthlyReport(ctx context.Context, userID int64, year, month int, refresh bool) (*models.MonthlyReportView, error) {
	if err := validMonth(year, month); err != nil {
		return nil, err
	}
	report, err := s.reports.ReportForMonth(ctx, userID, year, month, refresh)
	if err != nil {
		if client.StatusCode(err) != http.StatusNotFound {
			return nil, fmt.Errorf("failed to load report %d-%02d for userID %d: %w", year, month, userID, err)
		}
		log.Printf("INFO: [ProgressService] No report for %d-%02d, userID %d.", year, month, userID)
		report = nil
	}

	var fallback models.MonthlyStatistics
	if report == nil {
		if stats, err := s.reports.Statistics(ctx, userID); err != nil {
			log.Printf("WARN: [ProgressService] Could not load statistics for userID %d: %v", userID, err)
		} else if stats != nil {
			fallback = *stats
		}
	}
	return BuildReportView(report, fallback), nil
}

func (s *progressService) GenerateReport(ctx context.Context, userID int64, year, month int) (*models.MonthlyReportView, error) {
	if err := validMonth(year, month); err != nil {
		return nil, err
	}
	report, err := s.reports.GenerateReport(ctx, userID, year, month)
	if err != nil {
		log.Printf("ERROR: [ProgressService] Failed to generate report %d-%02d for userID %d: %v", year, month, userID, err)
		return nil, fmt.Errorf("failed to generate report %d-%02d for userID %d: %w", year, month, userID, err)
	}
	log.Printf("INFO: [ProgressService] Generated report %d for userID %d (%d-%02d).", report.ID, userID, year, month)
	return BuildReportView(report, models.MonthlyStatistics{}), nil
}

// InsightsPrompt asks the analytical agent to summarize a month.
func InsightsPrompt(view *models.MonthlyReportView) (string, error) {
	top, err := json.Marshal(view.TopExercises)
	if err != nil {
		return "", err
	}
	weekly, err := json.Marshal(view.WeeklyActivity)
	if err != nil {
		return "", err
	}
	st := view.Statistics
	return fmt.Sprintf("You are a fitness analyst. Based on this monthly data, provide concise, actionable insights. "+
		"Use encouraging tone and at most 120 words. Data: totalWorkouts=%d, totalMinutes=%d, caloriesBurned=%d, "+
		"currentStreak=%d, adherenceRate=%g. TopExercises=%s. WeeklyActivity=%s",
		st.TotalWorkouts, st.TotalMinutes, st.CaloriesBurned, st.CurrentStreak, st.AdherenceRate, top, weekly), nil
}

// GenerateInsights asks the analytical agent about the month and stores the answer on the report when one exists.
func (s *progressService) GenerateInsights(ctx context.Context, userID int64, year, month int) (string, error) {
	view, err := s.MonthlyReport(ctx, userID, year, month, false)
	if err != nil {
		return "", err
	}
	prompt, err := InsightsPrompt(view)
	if err != nil {
		return "", fmt.Errorf("failed to build insights prompt: %w", err)
	}

	resp, err := s.chat.Chat(ctx, client.AgentAnalytical, 0, models.ChatRequest{Message: prompt})
	if err != nil {
		log.Printf("ERROR: [ProgressService] Analytical agent failed for userID %d: %v", userID, err)
		return "", fmt.Errorf("analytical agent failed: %w", err)
	}
	insights := strings.TrimSpace(resp.Text())
	if insights == "" {
		insights = insightsFallback
	}

	if view.Report != nil && view.Report.ID != 0 {
		if _, err := s.UpdateInsights(ctx, view.Report.ID, insights); err != nil {
			return "", err
		}
	}
	return insights, nil
}

func (s *progressService) UpdateInsights(ctx context.Context, reportID int64, insights string) (*models.MonthlyReport, error) {
	if reportID == 0 {
		return nil, fmt.Errorf("%w: report id is required", ErrInvalidInput)
	}
	report, err := s.reports.UpdateInsights(ctx, reportID, insights)
	if err != nil {
		return nil, fmt.Errorf("failed to store insights on report %d: %w", reportID, err)
	}
	log.Printf("INFO: [ProgressService] Stored AI insights on report %d.", reportID)
	return report, nil
}

func (s *progressService) DeleteReport(ctx context.Context, reportID int64) error {
	if err := s.reports.DeleteReport(ctx, reportID); err != nil {
		return fmt.Errorf("failed to delete report %d: %w", reportID, err)
	}
	return nil
}
