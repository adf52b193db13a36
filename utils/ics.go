package utils

import (
	"fmt"
	"strings"
	"time"
)

// ICSEvent is one VEVENT. AllDay events only use the date part of Start.
type ICSEvent struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

// BuildICS renders events as an iCalendar document named calName.
func BuildICS(calName string, events []ICSEvent, stamp time.Time) string {
	var sb strings.Builder

	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//FitCoach//Weekly Plan//EN\r\n")
	sb.WriteString("CALSCALE:GREGORIAN\r\n")
	sb.WriteString("METHOD:PUBLISH\r\n")
	if calName != "" {
		sb.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(calName)))
	}

	for _, event := range events {
		sb.WriteString("BEGIN:VEVENT\r\n")
		sb.WriteString(fmt.Sprintf("UID:%s\r\n", event.UID))
		sb.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
		if event.AllDay {
			sb.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", event.Start.Format("20060102")))
			sb.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", AddDays(event.Start, 1).Format("20060102")))
		} else {
			sb.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(event.Start)))
			sb.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(event.End)))
		}
		sb.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(event.Summary)))
		if event.Description != "" {
			sb.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(event.Description)))
		}
		if event.Location != "" {
			sb.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(event.Location)))
		}
		sb.WriteString("END:VEVENT\r\n")
	}

	sb.WriteString("END:VCALENDAR\r\n")
	return sb.String()
}

func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
