package sheet

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/lysyi3m/mention-comb/app/monitor"
)

// ColumnOrder is the canonical 17-column sheet layout.
var ColumnOrder = []string{
	"Date Posted",     // 1
	"Platform",        // 2
	"Profile Link",    // 3
	"N° of Followers", // 4
	"Post Link",       // 5
	"Topic title",     // 6
	"Summary",         // 7
	"Tone",            // 8
	"Category",        // 9
	"Views",           // 10
	"Likes",           // 11
	"Comments",        // 12
	"Shares",          // 13
	"Eng. Total",      // 14
	"Sentiment Score", // 15
	"Verified (Y/N)",  // 16
	"Notes",           // 17
}

// Metric columns must carry integers; "N/A" maps to "0" so downstream
// aggregation formulas stay numeric.
var metricColumns = map[int]string{
	9:  "Views",
	10: "Likes",
	11: "Comments",
	12: "Shares",
	13: "Eng. Total",
}

// BuildRow converts a normalized item to a row in canonical column order.
func BuildRow(item monitor.NormalizedItem) []string {
	return []string{
		item.DatePosted,
		string(item.Platform),
		defaultNA(item.ProfileLink),
		defaultNA(item.Followers),
		item.PostURL,
		item.Topic,
		item.Summary,
		defaultNA(item.Tone),
		item.Category,
		metricValue(item.Views),
		metricValue(item.Likes),
		metricValue(item.Comments),
		metricValue(item.Shares),
		metricValue(item.EngTotal),
		"N/A",
		defaultNA(item.Verified),
		item.Notes,
	}
}

// ValidateRow checks the 17-column schema requirements: column count,
// required fields, and integer metric columns. Logs and returns false
// rather than raising; callers skip invalid rows.
func ValidateRow(row []string) bool {
	if len(row) != len(ColumnOrder) {
		slog.Error("Row validation failed, wrong column count",
			"expected", len(ColumnOrder), "got", len(row))
		return false
	}

	required := map[int]string{
		0: "Date Posted",
		1: "Platform",
		4: "Post Link",
		5: "Topic title",
	}

	for idx, name := range required {
		if strings.TrimSpace(row[idx]) == "" {
			slog.Error("Row validation failed, missing required field", "field", name)
			return false
		}
	}

	for idx, name := range metricColumns {
		value := strings.ToUpper(strings.TrimSpace(row[idx]))
		if value == "N/A" || value == "NONE" || value == "NULL" {
			slog.Error("Row validation failed, non-numeric metric",
				"field", name, "value", row[idx])
			return false
		}
		if value != "" && value != "0" {
			if _, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64); err != nil {
				slog.Error("Row validation failed, non-numeric metric",
					"field", name, "value", row[idx])
				return false
			}
		}
	}

	return true
}

func defaultNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func metricValue(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "N/A") {
		return "0"
	}
	return s
}
