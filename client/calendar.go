package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fitcoach/models"
)

// EventClient covers /api/calendar.
type EventClient interface {
	ListEvents(ctx context.Context, userID int64) ([]models.CalendarEvent, error)
	CreateEvent(ctx context.Context, req models.CreateEventRequest) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, eventID int64) error
	ExportCalendar(ctx context.Context, userID int64, calendarName string) ([]byte, error)
	SubscriptionURL(ctx context.Context, userID int64) (string, error)
}

func (c *Client) ListEvents(ctx context.Context, userID int64) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	if err := c.do(ctx, http.MethodGet, "/api/calendar/events", userQuery(userID), nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, req models.CreateEventRequest) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := c.do(ctx, http.MethodPost, "/api/calendar/events", nil, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, eventID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/calendar/events/"+strconv.FormatInt(eventID, 10), nil, nil, nil)
}

// ExportCalendar returns the backend's text/calendar blob.
func (c *Client) ExportCalendar(ctx context.Context, userID int64, calendarName string) ([]byte, error) {
	q := url.Values{}
	if calendarName != "" {
		q.Set("calendarName", calendarName)
	}
	raw, _, err := c.send(ctx, http.MethodGet, "/api/calendar/export/"+strconv.FormatInt(userID, 10), q, nil)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// SubscriptionURL returns the webcal/https URL the backend generates. The reply may be plain text or a JSON string.
func (c *Client) SubscriptionURL(ctx context.Context, userID int64) (string, error) {
	raw, _, err := c.send(ctx, http.MethodGet, "/api/calendar/subscribe/"+strconv.FormatInt(userID, 10), nil, nil)
	if err != nil {
		return "", err
	}
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		return quoted, nil
	}
	return strings.TrimSpace(string(raw)), nil
}
