package models

import "time"

// UserRef is the nested owner reference the backend expects on writes.
type UserRef struct {
	ID int64 `json:"id"`
}

// CalendarEvent is a calendar entry owned by a user. Events are never edited in place.
type CalendarEvent struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	StartTime   DateTime `json:"startTime"`
	EndTime     DateTime `json:"endTime"`
	User        *UserRef `json:"user,omitempty"`
}

// EventForm is the create-event form as submitted by the front end.
type EventForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`              // YYYY-MM-DD
	Time        string `json:"time,omitempty"`    // HH:MM, defaults to 09:00
	EndTime     string `json:"endTime,omitempty"` // HH:MM, defaults to the start time
}

// CreateEventRequest is the body of POST /api/calendar/events.
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	StartTime   DateTime `json:"startTime"`
	EndTime     DateTime `json:"endTime"`
	User        UserRef  `json:"user"`
}

// CalendarDay is one cell of the 42-cell month grid.
type CalendarDay struct {
	Date           time.Time `json:"date"`
	Key            string    `json:"key"`
	Day            int       `json:"day"`
	IsToday        bool      `json:"isToday"`
	IsCurrentMonth bool      `json:"isCurrentMonth"`
	IsSelected     bool      `json:"isSelected"`
}

// WeekDay is one entry of a 7-day plan window.
type WeekDay struct {
	DisplayIndex int       `json:"displayIndex"` // position in the window, 0 is the anchor
	DayIndex     int       `json:"dayIndex"`     // plan day-index, Monday 0 ... Sunday 6
	Date         time.Time `json:"date"`
	Key          string    `json:"key"`
	Label        string    `json:"label"`
}

// WeekWindow is a session's visible 7-day window and its selected day.
type WeekWindow struct {
	Days          []WeekDay `json:"days"`
	SelectedIndex int       `json:"selectedIndex"`
	Selected      WeekDay   `json:"selected"`
	AnchorKey     string    `json:"anchorKey"`
}
