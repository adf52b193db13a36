package utils

import (
	"fmt"
	"time"

	"fitcoach/models"
)

// GridCells is the fixed size of a month grid: six weeks of seven days.
const GridCells = 42

// WeekLength is the number of days in a plan window.
const WeekLength = 7

var dayNames = [WeekLength]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the weekday name of a Monday-based plan day-index.
func DayName(dayIndex int) string {
	if dayIndex < 0 || dayIndex >= WeekLength {
		return ""
	}
	return dayNames[dayIndex]
}

// ValidDayIndex reports whether dayIndex is within [0,6].
func ValidDayIndex(dayIndex int) bool {
	return dayIndex >= 0 && dayIndex < WeekLength
}

// DayKey formats t's local calendar day as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(models.DateLayout)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves by calendar days, so DST changes never shift the wall-clock date.
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// PlanDayIndex maps t onto a Monday-based day-index (Monday 0 ... Sunday 6).
func PlanDayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// MonthGrid returns the 42 days shown for ref's month, starting on the Sunday on or before the 1st.
func MonthGrid(ref, today, selected time.Time) []models.CalendarDay {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))
	todayKey := DayKey(today)
	selectedKey := ""
	if !selected.IsZero() {
		selectedKey = DayKey(selected)
	}

	days := make([]models.CalendarDay, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		date := start.AddDate(0, 0, i)
		key := DayKey(date)
		days = append(days, models.CalendarDay{
			Date:           date,
			Key:            key,
			Day:            date.Day(),
			IsToday:        key == todayKey,
			IsCurrentMonth: date.Month() == first.Month() && date.Year() == first.Year(),
			IsSelected:     key == selectedKey,
		})
	}
	return days
}

// RollingWeek returns the seven days starting at anchor, anchor first.
func RollingWeek(anchor time.Time) []models.WeekDay {
	start := StartOfDay(anchor)
	week := make([]models.WeekDay, 0, WeekLength)
	for i := 0; i < WeekLength; i++ {
		date := start.AddDate(0, 0, i)
		week = append(week, models.WeekDay{
			DisplayIndex: i,
			DayIndex:     PlanDayIndex(date),
			Date:         date,
			Key:          DayKey(date),
			Label:        date.Weekday().String(),
		})
	}
	return week
}

// MondayWeek returns the legacy window: the Monday-to-Sunday week containing ref.
func MondayWeek(ref time.Time) []models.WeekDay {
	return RollingWeek(AddDays(ref, -PlanDayIndex(ref)))
}

// WeekOfMonth is ceil(day-of-month / 7). It is not an ISO week number.
func WeekOfMonth(t time.Time) int {
	return (t.Day() + 6) / 7
}

// WeekOfMonthLabel is the day-view header, e.g. "Week 3, 2025".
func WeekOfMonthLabel(t time.Time) string {
	return fmt.Sprintf("Week %d, %d", WeekOfMonth(t), t.Year())
}

// ParseMonth parses "YYYY-MM" into the first day of that month in loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t, nil
}
