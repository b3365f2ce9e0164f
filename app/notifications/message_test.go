package notifications

import (
	"strings"
	"testing"

	"github.com/lysyi3m/mention-comb/app/monitor"
)

func TestBuildSummaryMessage(t *testing.T) {
	report := RunReport{
		Topic:        "SHRM Trial Verdict",
		SearchTerms:  []string{"SHRM verdict", "SHRM lawsuit"},
		Appended:     12,
		DateFiltered: 4,
		Blocked:      2,
		Stats: &monitor.BatchStats{
			InvalidURL: 1,
			Duplicates: 7,
			Borderline: 3,
			OffTopic:   5,
			AcceptedByPlatform: map[monitor.Platform]int{
				monitor.PlatformNews:   6,
				monitor.PlatformReddit: 4,
				monitor.PlatformX:      2,
			},
		},
	}

	message := BuildSummaryMessage(report)

	expected := []string{
		"<b>New items added to sheet:</b> 12",
		"📰 News: 6",
		"🔴 Reddit: 4",
		"🐦 X/Twitter: 2",
		"👔 LinkedIn: 0",
		"Spam/Blocked: 2",
		"Date Filtered: 4",
		"Duplicates Skipped: 7",
		"Invalid URLs: 1",
		"Off-topic Discarded: 8",
		"SHRM Trial Verdict",
		"SHRM verdict, SHRM lawsuit",
	}
	for _, want := range expected {
		if !strings.Contains(message, want) {
			t.Errorf("Expected message to contain %q\nGot:\n%s", want, message)
		}
	}
}

func TestBuildSummaryMessageEscapesHTML(t *testing.T) {
	report := RunReport{
		Topic:       "Topic <b>with</b> markup & entities",
		SearchTerms: []string{"a<b"},
	}

	message := BuildSummaryMessage(report)

	if strings.Contains(message, "Topic <b>with</b>") {
		t.Error("Expected topic HTML to be escaped")
	}
	if !strings.Contains(message, "Topic &lt;b&gt;with&lt;/b&gt; markup &amp; entities") {
		t.Errorf("Expected escaped topic in message, got:\n%s", message)
	}
	if !strings.Contains(message, "a&lt;b") {
		t.Error("Expected search terms to be escaped")
	}
}

func TestBuildSummaryMessageNilStats(t *testing.T) {
	message := BuildSummaryMessage(RunReport{Topic: "SHRM Trial Verdict"})

	if !strings.Contains(message, "<b>New items added to sheet:</b> 0") {
		t.Errorf("Expected zero counts with nil stats, got:\n%s", message)
	}
}
