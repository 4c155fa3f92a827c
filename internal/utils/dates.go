package utils

import (
	"errors"
	"time"
)

const dateOnlyLayout = "2006-01-02"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

var errInvalidDate = errors.New("invalid ISO 8601 date")

// ParseDate parses an ISO 8601 calendar date or timestamp. Values without a zone are read as UTC.
// dateOnly is true when no time of day was given.
func ParseDate(value string) (t time.Time, dateOnly bool, err error) {
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t, true, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, errInvalidDate
}

// ParseDateOrNow returns the parsed date, or the current time for an empty value.
func ParseDateOrNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	t, _, err := ParseDate(value)
	return t, err
}

// EndOfDay returns the last representable microsecond of the day of t.
func EndOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Microsecond)
}
