package monitor

import (
	"testing"
	"time"
)

func TestParseISODate(t *testing.T) {
	parsed, err := ParseISODate("2025-12-01")
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.December || parsed.Day() != 1 {
		t.Errorf("Expected 2025-12-01, got %v", parsed)
	}
	if parsed.Hour() != 0 {
		t.Errorf("Expected midnight, got hour %d", parsed.Hour())
	}

	if _, err := ParseISODate("12/01/2025"); err == nil {
		t.Error("Expected error for non-ISO format")
	}
	if _, err := ParseISODate(""); err == nil {
		t.Error("Expected error for empty string")
	}
}

func TestParseISOTimestamp(t *testing.T) {
	cases := []string{
		"2025-12-05T10:30:00Z",
		"2025-12-05T10:30:00.123Z",
		"2025-12-05T05:30:00-05:00",
		"2025-12-05T10:30:00",
	}

	for _, input := range cases {
		parsed, err := ParseISOTimestamp(input)
		if err != nil {
			t.Errorf("ParseISOTimestamp(%q): unexpected error %v", input, err)
			continue
		}
		if parsed.Location() != time.UTC {
			t.Errorf("ParseISOTimestamp(%q): expected UTC, got %v", input, parsed.Location())
		}
	}

	if _, err := ParseISOTimestamp("yesterday"); err == nil {
		t.Error("Expected error for unparseable timestamp")
	}
}

func TestParseRedditDate(t *testing.T) {
	// Unix seconds, possibly fractional
	parsed, err := ParseRedditDate("1764950400")
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Unix() != 1764950400 {
		t.Errorf("Expected unix 1764950400, got %d", parsed.Unix())
	}

	parsed, err = ParseRedditDate("1764950400.5")
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Unix() != 1764950400 {
		t.Errorf("Expected fractional seconds truncated, got %d", parsed.Unix())
	}

	// ISO fallback
	if _, err := ParseRedditDate("2025-12-05T10:30:00Z"); err != nil {
		t.Errorf("Expected ISO fallback to parse, got %v", err)
	}

	if _, err := ParseRedditDate(""); err == nil {
		t.Error("Expected error for empty string")
	}
}

func TestFormatDateMMDDYYYY(t *testing.T) {
	// Midnight UTC on Dec 5 is still Dec 4 in US/Eastern
	utc := time.Date(2025, 12, 5, 0, 30, 0, 0, time.UTC)
	if got := FormatDateMMDDYYYY(utc); got != "12/04/2025" {
		t.Errorf("Expected 12/04/2025, got %s", got)
	}

	noon := time.Date(2025, 12, 5, 17, 0, 0, 0, time.UTC)
	if got := FormatDateMMDDYYYY(noon); got != "12/05/2025" {
		t.Errorf("Expected 12/05/2025, got %s", got)
	}
}

func TestIsAfterSinceDate(t *testing.T) {
	before := time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC)
	after := time.Date(2025, 12, 2, 12, 0, 0, 0, time.UTC)

	if IsAfterSinceDate(before, "2025-12-01") {
		t.Error("Expected item before since-date to be rejected")
	}
	if !IsAfterSinceDate(after, "2025-12-01") {
		t.Error("Expected item after since-date to pass")
	}

	// Empty or invalid since-date disables the guard
	if !IsAfterSinceDate(before, "") {
		t.Error("Expected empty since-date to pass everything")
	}
	if !IsAfterSinceDate(before, "not-a-date") {
		t.Error("Expected invalid since-date to pass everything")
	}
}
