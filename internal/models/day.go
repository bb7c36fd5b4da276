// Package models defines the diary's persisted data types.
package models

import "time"

// DayLayout is the canonical calendar-day format used for diary keys.
const DayLayout = "2006-01-02"

// DayOf formats t as a diary day in t's location.
func DayOf(t time.Time) string {
	return t.Format(DayLayout)
}

// Today returns the current diary day.
func Today() string {
	return DayOf(time.Now())
}

// ParseDay validates a YYYY-MM-DD string and returns it normalized.
func ParseDay(s string) (string, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", err
	}
	return t.Format(DayLayout), nil
}
