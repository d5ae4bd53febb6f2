// ABOUTME: Time utilities for timestamp parsing, clocks, and date range calculations
// ABOUTME: Normalizes upstream timestamps to UTC and provides period cutoffs like today or week

package timeutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Clock returns the current time. Components take a Clock so tests can pin "now".
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// layouts are tried before falling back to dateparse.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// Parse converts an upstream timestamp into UTC.
// Accepts RFC3339, RFC1123 variants, ISO dates without zone (read as UTC),
// and unix seconds or milliseconds. Returns false for blank or unparseable input.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}

	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ParsePtr is Parse returning nil for unparseable input.
func ParsePtr(raw string) *time.Time {
	t, ok := Parse(raw)
	if !ok {
		return nil
	}
	return &t
}

// FromUnix converts a numeric epoch into UTC, treating values above 1e12 as milliseconds.
func FromUnix(v float64) (time.Time, bool) {
	if v <= 0 {
		return time.Time{}, false
	}
	if v > 1e12 {
		return time.UnixMilli(int64(v)).UTC(), true
	}
	return time.Unix(int64(v), 0).UTC(), true
}

// StartOfToday returns midnight (00:00:00) of the current day in local time
func StartOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// StartOfYesterday returns midnight (00:00:00) of yesterday in local time
func StartOfYesterday() time.Time {
	return StartOfToday().AddDate(0, 0, -1)
}

// StartOfWeek returns midnight of the most recent Sunday in local time
// Note: Week starts on Sunday
func StartOfWeek() time.Time {
	today := StartOfToday()
	weekday := int(today.Weekday())
	return today.AddDate(0, 0, -weekday)
}

// StartOfMonth returns midnight of the first day of the current month in local time
func StartOfMonth() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// ParsePeriod converts a period string to a time.Time representing the cutoff
// Supported values: "today", "yesterday", "week", "month"
func ParsePeriod(period string) (time.Time, bool) {
	switch period {
	case "today":
		return StartOfToday(), true
	case "yesterday":
		return StartOfYesterday(), true
	case "week":
		return StartOfWeek(), true
	case "month":
		return StartOfMonth(), true
	default:
		return time.Time{}, false
	}
}

// ParseSince accepts a period name or any timestamp Parse understands.
func ParseSince(s string) (time.Time, error) {
	if t, ok := ParsePeriod(s); ok {
		return t, nil
	}
	if t, ok := Parse(s); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q: use today, yesterday, week, month, or a date like 2006-01-02", s)
}
