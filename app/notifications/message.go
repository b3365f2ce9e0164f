package notifications

import (
	"fmt"
	"html"
	"strings"

	"github.com/lysyi3m/mention-comb/app/monitor"
)

// RunReport carries everything the notifier renders for one run.
type RunReport struct {
	Topic        string
	SearchTerms  []string
	Appended     int
	DateFiltered int
	Blocked      int
	Stats        *monitor.BatchStats
}

// BuildSummaryMessage renders the HTML run summary for Telegram
// (parse_mode=HTML).
func BuildSummaryMessage(report RunReport) string {
	stats := report.Stats
	if stats == nil {
		stats = &monitor.BatchStats{}
	}

	byPlatform := func(p monitor.Platform) int {
		return stats.AcceptedByPlatform[p]
	}

	lines := []string{
		"📊 <b>Mention Comb — Intake Summary</b>",
		"",
		fmt.Sprintf("<b>New items added to sheet:</b> %d", report.Appended),
		"",
		"<b>Platform Breakdown:</b>",
		fmt.Sprintf("• 📰 News: %d", byPlatform(monitor.PlatformNews)),
		fmt.Sprintf("• 👔 LinkedIn: %d", byPlatform(monitor.PlatformLinkedIn)),
		fmt.Sprintf("• 🔴 Reddit: %d", byPlatform(monitor.PlatformReddit)),
		fmt.Sprintf("• 🐦 X/Twitter: %d", byPlatform(monitor.PlatformX)),
		"",
		"<b>Quality Enforcement:</b>",
		fmt.Sprintf("• 🛡️ Spam/Blocked: %d", report.Blocked),
		fmt.Sprintf("• 📅 Date Filtered: %d", report.DateFiltered),
		fmt.Sprintf("• ♻️ Duplicates Skipped: %d", stats.Duplicates),
		fmt.Sprintf("• 🔗 Invalid URLs: %d", stats.InvalidURL),
		fmt.Sprintf("• 🚫 Off-topic Discarded: %d", stats.Discarded()),
		"",
		"<b>Topic:</b>",
		escapeHTML(report.Topic),
		"",
		"<b>Search terms:</b>",
		escapeHTML(strings.Join(report.SearchTerms, ", ")),
	}

	return strings.Join(lines, "\n")
}

func escapeHTML(text string) string {
	return html.EscapeString(text)
}
