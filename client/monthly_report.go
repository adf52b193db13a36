package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"fitcoach/models"
)

const reportPath = "/api/monthly-reports"

// ReportClient covers /api/monthly-reports.
type ReportClient interface {
	Statistics(ctx context.Context, userID int64) (*models.MonthlyStatistics, error)
	ListReports(ctx context.Context, userID int64) ([]models.MonthlyReport, error)
	ReportForMonth(ctx context.Context, userID int64, year, month int, refresh bool) (*models.MonthlyReport, error)
	GenerateReport(ctx context.Context, userID int64, year, month int) (*models.MonthlyReport, error)
	UpdateInsights(ctx context.Context, reportID int64, insights string) (*models.MonthlyReport, error)
	DeleteReport(ctx context.Context, reportID int64) error
}

func (c *Client) Statistics(ctx context.Context, userID int64) (*models.MonthlyStatistics, error) {
	var stats models.MonthlyStatistics
	if err := c.do(ctx, http.MethodGet, reportPath+"/statistics/user/"+strconv.FormatInt(userID, 10), nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ListReports(ctx context.Context, userID int64) ([]models.MonthlyReport, error) {
	var reports []models.MonthlyReport
	if err := c.do(ctx, http.MethodGet, reportPath+"/user/"+strconv.FormatInt(userID, 10), nil, nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) ReportForMonth(ctx context.Context, userID int64, year, month int, refresh bool) (*models.MonthlyReport, error) {
	path := fmt.Sprintf("%s/user/%d/month/%d/%d", reportPath, userID, year, month)
	var q url.Values
	if refresh {
		q = url.Values{"refresh": {"true"}}
	}
	var report models.MonthlyReport
	if err := c.do(ctx, http.MethodGet, path, q, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) GenerateReport(ctx context.Context, userID int64, year, month int) (*models.MonthlyReport, error) {
	path := fmt.Sprintf("%s/generate/user/%d/month/%d/%d", reportPath, userID, year, month)
	var report models.MonthlyReport
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) UpdateInsights(ctx context.Context, reportID int64, insights string) (*models.MonthlyReport, error) {
	path := reportPath + "/" + strconv.FormatInt(reportID, 10) + "/ai-insights"
	var report models.MonthlyReport
	if err := c.do(ctx, http.MethodPut, path, nil, models.InsightsRequest{AIInsights: insights}, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) DeleteReport(ctx context.Context, reportID int64) error {
	return c.do(ctx, http.MethodDelete, reportPath+"/"+strconv.FormatInt(reportID, 10), nil, nil, nil)
}
