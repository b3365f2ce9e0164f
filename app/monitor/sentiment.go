package monitor

import (
	"strings"
)

// Keyword lookup for the Tone column. Deliberately not part of the
// accept/reject pipeline; it only annotates rows.
var negativeKeywords = []string{
	"discrimination",
	"lawsuit",
	"racist",
	"racism",
	"toxic",
	"verdict",
	"guilty",
	"hostile",
	"bias",
	"biased",
	"unfair",
	"unlawful",
	"illegal",
	"violation",
	"violated",
	"sued",
	"suing",
	"settlement",
	"damages",
	"plaintiff",
	"defendant",
	"court",
	"judge",
	"jury",
	"trial",
	"convicted",
	"condemned",
	"criticized",
	"criticism",
	"scandal",
	"controversy",
	"outrage",
	"protest",
	"boycott",
}

// ClassifySentiment returns "Negative" when any negative keyword appears
// in the combined title and body, "Neutral" otherwise.
func ClassifySentiment(title, body string) string {
	text := strings.ToLower(strings.TrimSpace(title + " " + body))
	if text == "" {
		return "Neutral"
	}

	for _, keyword := range negativeKeywords {
		if strings.Contains(text, keyword) {
			return "Negative"
		}
	}
	return "Neutral"
}
