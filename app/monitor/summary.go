package monitor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxSummaryLength = 300

var whitespacePattern = regexp.MustCompile(`\s+`)

// BuildSummary merges title and body into a short display summary:
// skips the title when the body already starts with it, collapses
// whitespace, and truncates at a word boundary near 300 characters.
func BuildSummary(title, body string) string {
	var parts []string

	cleanTitle := strings.TrimSpace(title)
	if cleanTitle != "" {
		parts = append(parts, cleanTitle)
	}

	cleanBody := strings.TrimSpace(body)
	if cleanBody != "" {
		if cleanTitle != "" {
			// Compare and cut on rune boundaries; lowercasing can shift
			// byte offsets on non-ASCII titles.
			titleLen := utf8.RuneCountInString(cleanTitle)
			bodyRunes := []rune(cleanBody)
			if len(bodyRunes) >= titleLen && strings.EqualFold(string(bodyRunes[:titleLen]), cleanTitle) {
				cleanBody = strings.TrimLeft(string(bodyRunes[titleLen:]), " \t\n")
			}
		}
		if cleanBody != "" {
			parts = append(parts, cleanBody)
		}
	}

	if len(parts) == 0 {
		return ""
	}

	summary := whitespacePattern.ReplaceAllString(strings.Join(parts, " "), " ")
	return TruncateText(strings.TrimSpace(summary), maxSummaryLength)
}

// TruncateText cuts text to maxLength without breaking words when a
// space is available to cut at.
func TruncateText(text string, maxLength int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	cut := string(runes[:maxLength])
	if idx := strings.LastIndex(cut, " "); idx != -1 {
		return cut[:idx]
	}
	return cut
}
