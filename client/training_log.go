package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"fitcoach/models"
)

const trainingLogPath = "/api/training-log"

// TrainingLogClient covers /api/training-log.
type TrainingLogClient interface {
	CreateLog(ctx context.Context, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error)
	ListLogs(ctx context.Context, userID int64) ([]models.TrainingLogEntry, error)
	LogsByDate(ctx context.Context, userID int64, date models.Date) ([]models.TrainingLogEntry, error)
	LogsInRange(ctx context.Context, userID int64, start, end models.Date) ([]models.TrainingLogEntry, error)
	GetLog(ctx context.Context, logID int64) (*models.TrainingLogEntry, error)
	UpdateLog(ctx context.Context, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error)
	DeleteLog(ctx context.Context, logID int64) error
	LogStats(ctx context.Context, userID int64) (*models.TrainingStats, error)
}

func userPath(userID int64) string {
	return trainingLogPath + "/user/" + strconv.FormatInt(userID, 10)
}

func (c *Client) CreateLog(ctx context.Context, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error) {
	var created models.TrainingLogEntry
	if err := c.do(ctx, http.MethodPost, trainingLogPath, nil, entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListLogs(ctx context.Context, userID int64) ([]models.TrainingLogEntry, error) {
	var entries []models.TrainingLogEntry
	if err := c.do(ctx, http.MethodGet, userPath(userID), nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) LogsByDate(ctx context.Context, userID int64, date models.Date) ([]models.TrainingLogEntry, error) {
	var entries []models.TrainingLogEntry
	if err := c.do(ctx, http.MethodGet, userPath(userID)+"/date/"+date.String(), nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) LogsInRange(ctx context.Context, userID int64, start, end models.Date) ([]models.TrainingLogEntry, error) {
	q := url.Values{}
	q.Set("startDate", start.String())
	q.Set("endDate", end.String())
	var entries []models.TrainingLogEntry
	if err := c.do(ctx, http.MethodGet, userPath(userID)+"/range", q, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) GetLog(ctx context.Context, logID int64) (*models.TrainingLogEntry, error) {
	var entry models.TrainingLogEntry
	if err := c.do(ctx, http.MethodGet, trainingLogPath+"/"+strconv.FormatInt(logID, 10), nil, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) UpdateLog(ctx context.Context, entry models.TrainingLogEntry) (*models.TrainingLogEntry, error) {
	var updated models.TrainingLogEntry
	if err := c.do(ctx, http.MethodPut, trainingLogPath+"/"+strconv.FormatInt(entry.ID, 10), nil, entry, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteLog(ctx context.Context, logID int64) error {
	return c.do(ctx, http.MethodDelete, trainingLogPath+"/"+strconv.FormatInt(logID, 10), nil, nil, nil)
}

func (c *Client) LogStats(ctx context.Context, userID int64) (*models.TrainingStats, error) {
	var stats models.TrainingStats
	if err := c.do(ctx, http.MethodGet, userPath(userID)+"/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
