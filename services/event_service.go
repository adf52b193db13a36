package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"fitcoach/client"
	"fitcoach/models"
	"fitcoach/utils"
)

const (
	DefaultEventTime    = "09:00"
	DefaultCalendarName = "FitAI Calendar"
)

// ErrEventFieldsRequired is returned before any backend call when the form lacks a title or date.
var ErrEventFieldsRequired = errors.New("title and date required")

// EventService manages calendar events. Events are created and deleted, never edited.
type EventService interface {
	ListEvents(ctx context.Context, userID int64) ([]models.CalendarEvent, error)
	EventsByDay(ctx context.Context, userID int64) (map[string][]models.CalendarEvent, error)
	EventsOn(ctx context.Context, userID int64, day time.Time) ([]models.CalendarEvent, error)
	CreateEvent(ctx context.Context, userID int64, form models.EventForm) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, eventID int64) error
	ExportCalendar(ctx context.Context, userID int64, calendarName string) ([]byte, error)
	SubscriptionURL(ctx context.Context, userID int64) (string, error)
}

type eventService struct {
	events       client.EventClient
	calendarName string
}

// NewEventService creates a new instance of EventService. An empty calendarName uses "FitAI Calendar".
func NewEventService(events client.EventClient, calendarName string) EventService {
	if calendarName == "" {
		calendarName = DefaultCalendarName
	}
	return &eventService{events: events, calendarName: calendarName}
}

// BuildEventRequest validates form and resolves its start and end times in local time.
func BuildEventRequest(userID int64, form models.EventForm) (models.CreateEventRequest, error) {
	title := strings.TrimSpace(form.Title)
	date := strings.TrimSpace(form.Date)
	if title == "" || date == "" {
		return models.CreateEventRequest{}, ErrEventFieldsRequired
	}

	startClock := form.Time
	if startClock == "" {
		startClock = DefaultEventTime
	}
	start, err := time.ParseInLocation(models.DateLayout+" 15:04", date+" "+startClock, time.Local)
	if err != nil {
		return models.CreateEventRequest{}, fmt.Errorf("%w: event date or time %q %q: %w", ErrInvalidInput, date, startClock, err)
	}
	end := start
	if form.EndTime != "" {
		end, err = time.ParseInLocation(models.DateLayout+" 15:04", date+" "+form.EndTime, time.Local)
		if err != nil {
			return models.CreateEventRequest{}, fmt.Errorf("%w: event end time %q: %w", ErrInvalidInput, form.EndTime, err)
		}
		if end.Before(start) {
			return models.CreateEventRequest{}, fmt.Errorf("%w: event end time is before its start time", ErrInvalidInput)
		}
	}

	return models.CreateEventRequest{
		Title:       title,
		Description: form.Description,
		Location:    form.Location,
		StartTime:   models.DateTime{Time: start},
		EndTime:     models.DateTime{Time: end},
		User:        models.UserRef{ID: userID},
	}, nil
}

func (s *eventService) ListEvents(ctx context.Context, userID int64) ([]models.CalendarEvent, error) {
	events, err := s.events.ListEvents(ctx, userID)
	if err != nil {
		log.Printf("ERROR: [EventService] Failed to load events for userID %d: %v", userID, err)
		return nil, fmt.Errorf("failed to load events for userID %d: %w", userID, err)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime.Time)
	})
	return events, nil
}

// GroupEventsByDay buckets events by the day key of their start time.
func GroupEventsByDay(events []models.CalendarEvent) map[string][]models.CalendarEvent {
	byDay := make(map[string][]models.CalendarEvent)
	for _, event := range events {
		key := utils.DayKey(event.StartTime.Time)
		byDay[key] = append(byDay[key], event)
	}
	return byDay
}

func (s *eventService) EventsByDay(ctx context.Context, userID int64) (map[string][]models.CalendarEvent, error) {
	events, err := s.ListEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	return GroupEventsByDay(events), nil
}

func (s *eventService) EventsOn(ctx context.Context, userID int64, day time.Time) ([]models.CalendarEvent, error) {
	byDay, err := s.EventsByDay(ctx, userID)
	if err != nil {
		return nil, err
	}
	events := byDay[utils.DayKey(day)]
	if events == nil {
		events = []models.CalendarEvent{}
	}
	return events, nil
}

func (s *eventService) CreateEvent(ctx context.Context, userID int64, form models.EventForm) (*models.CalendarEvent, error) {
	req, err := BuildEventRequest(userID, form)
	if err != nil {
		return nil, err
	}
	event, err := s.events.CreateEvent(ctx, req)
	if err != nil {
		log.Printf("ERROR: [EventService] Failed to create event '%s' for userID %d: %v", req.Title, userID, err)
		return nil, fmt.Errorf("failed to create event for userID %d: %w", userID, err)
	}
	log.Printf("INFO: [EventService] Created event %d '%s' for userID %d.", event.ID, event.Title, userID)
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID int64) error {
	if err := s.events.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", eventID, err)
	}
	log.Printf("INFO: [EventService] Deleted event %d.", eventID)
	return nil
}

func (s *eventService) ExportCalendar(ctx context.Context, userID int64, calendarName string) ([]byte, error) {
	if calendarName == "" {
		calendarName = s.calendarName
	}
	data, err := s.events.ExportCalendar(ctx, userID, calendarName)
	if err != nil {
		return nil, fmt.Errorf("failed to export calendar for userID %d: %w", userID, err)
	}
	return data, nil
}

func (s *eventService) SubscriptionURL(ctx context.Context, userID int64) (string, error) {
	url, err := s.events.SubscriptionURL(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get subscription URL for userID %d: %w", userID, err)
	}
	return url, nil
}
