package monitor

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Classifier scores an item's text against anchor term sets. All matches
// are case-insensitive substring matches over title + body text.
//
// Decision order, first rule wins:
//  1. any primary anchor           -> on_topic
//  2. individual + case context    -> on_topic
//  3. individual alone             -> borderline
//  4. case context alone           -> borderline
//  5. otherwise                    -> off_topic
type Classifier struct {
	primary     []string
	individuals []string
	caseContext []string
	// Noise terms are carried for reporting but do not demote a match.
	// The reference pipeline tracked them without consulting them; that
	// behavior is preserved until product intent says otherwise.
	noise []string

	lower cases.Caser
}

func NewClassifier(anchors AnchorConfig) *Classifier {
	c := &Classifier{
		primary:     lowerAll(anchors.Primary),
		individuals: lowerAll(anchors.Individuals),
		caseContext: lowerAll(anchors.CaseContext),
		noise:       lowerAll(anchors.Noise),
		lower:       cases.Lower(language.English),
	}
	return c
}

// Classify is a pure function over the item's title and body text.
func (c *Classifier) Classify(item NormalizedItem) Classification {
	text := c.normalize(item.Title + " " + item.BodyText)

	if matchesAny(text, c.primary) {
		return OnTopic
	}

	individual := matchesAny(text, c.individuals)
	context := matchesAny(text, c.caseContext)

	switch {
	case individual && context:
		return OnTopic
	case individual:
		return Borderline
	case context:
		return Borderline
	default:
		return OffTopic
	}
}

// NoiseTerms returns the configured noise set. Exposed for reporting.
func (c *Classifier) NoiseTerms() []string {
	return c.noise
}

func (c *Classifier) normalize(text string) string {
	return c.lower.String(norm.NFC.String(text))
}

func matchesAny(text string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func lowerAll(terms []string) []string {
	lowered := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			lowered = append(lowered, term)
		}
	}
	return lowered
}
