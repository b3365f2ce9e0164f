package monitor

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// All display dates and the since-date guard operate in US/Eastern, the
// timezone the sheet's readers work in.
var eastern = mustLoadEastern()

func mustLoadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// Fall back to a fixed offset rather than crashing at init;
		// DST drift is acceptable for display dates.
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// ParseISODate parses a YYYY-MM-DD string as midnight US/Eastern.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), eastern)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date string: %s", s)
	}
	return t, nil
}

// ParseISOTimestamp parses an ISO 8601 timestamp such as NewsAPI's
// publishedAt or X's created_at ("2025-12-05T10:30:00Z"), returning UTC.
func ParseISOTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("unable to parse date string: %s", s)
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date string: %s", s)
}

// ParseRedditDate parses Reddit's created date, which arrives either as
// a Unix timestamp (possibly fractional) or an ISO string.
func ParseRedditDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("unable to parse date string: %s", value)
	}

	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Unix(int64(secs), 0).UTC(), nil
	}

	return ParseISOTimestamp(value)
}

// FormatDateMMDDYYYY formats a time as MM/DD/YYYY in US/Eastern.
func FormatDateMMDDYYYY(t time.Time) string {
	return t.In(eastern).Format("01/02/2006")
}

// IsAfterSinceDate reports whether t falls on or after the topic's
// since-date (midnight US/Eastern). An empty since-date disables the
// guard.
func IsAfterSinceDate(t time.Time, sinceDate string) bool {
	if sinceDate == "" {
		return true
	}
	since, err := ParseISODate(sinceDate)
	if err != nil {
		return true
	}
	return !t.In(eastern).Before(since)
}
