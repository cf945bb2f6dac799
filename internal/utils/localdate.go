package utils

import (
	"strings"
	"time"
)

// Calendar dates are stored as plain "YYYY-MM-DD" strings with no time
// component. Parsing goes through the local location so a date never shifts
// across midnight when rendered in the user's timezone.

type DateFormat string

const (
	FormatISODate  DateFormat = "YYYY-MM-DD"
	FormatEuropean DateFormat = "DD/MM/YYYY"
	FormatUS       DateFormat = "MM/DD/YYYY"
)

const isoDateLayout = "2006-01-02"

var displayLayouts = map[DateFormat]string{
	FormatISODate:  "2006-01-02",
	FormatEuropean: "02/01/2006",
	FormatUS:       "01/02/2006",
}

// DisplayFormats lists the formats the preferences layer accepts.
func DisplayFormats() []DateFormat {
	return []DateFormat{FormatEuropean, FormatUS, FormatISODate}
}

func IsDisplayFormat(s string) bool {
	_, ok := displayLayouts[DateFormat(s)]
	return ok
}

// ParseLocalDate parses a stored calendar-date string. The boolean is false
// for empty or malformed input. Timestamps that carry a time component are
// truncated to their date part.
func ParseLocalDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if idx := strings.IndexByte(value, 'T'); idx > 0 {
		value = value[:idx]
	}

	t, err := time.ParseInLocation(isoDateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// Today returns the current local calendar date in storage form.
func Today() string {
	return time.Now().Format(isoDateLayout)
}

// StartOfToday returns local midnight, the cutoff for "today or later"
// checks against parsed calendar dates.
func StartOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// FormatDate renders a stored date in the given display format. Unparsable
// input is returned unchanged so bad legacy values stay visible rather than
// vanishing.
func FormatDate(value string, format DateFormat) string {
	t, ok := ParseLocalDate(value)
	if !ok {
		return value
	}

	layout, ok := displayLayouts[format]
	if !ok {
		layout = isoDateLayout
	}

	return t.Format(layout)
}
