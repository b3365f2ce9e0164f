package monitor

import (
	"testing"
)

func testAnchors() AnchorConfig {
	return AnchorConfig{
		Primary:     []string{"shrm", "society for human resource management"},
		Individuals: []string{"johnny c. taylor"},
		CaseContext: []string{"verdict", "lawsuit", "harassment", "discrimination"},
		Noise:       []string{"webinar", "certification"},
	}
}

func TestClassifyOnTopicPrimary(t *testing.T) {
	classifier := NewClassifier(testAnchors())

	item := NormalizedItem{Title: "SHRM hit with verdict"}
	if got := classifier.Classify(item); got != OnTopic {
		t.Errorf("Expected on_topic, got %s", got)
	}
}

func TestClassifyOnTopicIndividualWithContext(t *testing.T) {
	classifier := NewClassifier(testAnchors())

	item := NormalizedItem{Title: "Johnny C. Taylor faces harassment lawsuit"}
	if got := classifier.Classify(item); got != OnTopic {
		t.Errorf("Expected on_topic, got %s", got)
	}
}

func TestClassifyBorderlineIndividualOnly(t *testing.T) {
	classifier := NewClassifier(testAnchors())

	item := NormalizedItem{Title: "Johnny C. Taylor speaks at conference"}
	if got := classifier.Classify(item); got != Borderline {
		t.Errorf("Expected borderline, got %s", got)
	}
}

func TestClassifyBorderlineContextOnly(t *testing.T) {
	classifier := NewClassifier(testAnchors())

	item := NormalizedItem{Title: "Major discrimination lawsuit filed against tech firm"}
	if got := classifier.Classify(item); got != Borderline {
		t.Errorf("Expected borderline, got %s", got)
	}
}

func TestClassifyOffTopic(t *testing.T) {
	classifier := NewClassifier(testAnchors())

	item := NormalizedItem{Title: "General HR best practices"}
	if got := classifier.Classify(item); got != OffTopic {
		t.Errorf("Expected off_topic, got %s", got)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	classifier := NewClassifier(testAnchors())

	item := NormalizedItem{Title: "SOCIETY FOR HUMAN RESOURCE MANAGEMENT in the news"}
	if got := classifier.Classify(item); got != OnTopic {
		t.Errorf("Expected on_topic for uppercase text, got %s", got)
	}
}

func TestClassifyUsesBodyText(t *testing.T) {
	classifier := NewClassifier(testAnchors())

	item := NormalizedItem{
		Title:    "Industry news roundup",
		BodyText: "The jury found SHRM liable this week.",
	}
	if got := classifier.Classify(item); got != OnTopic {
		t.Errorf("Expected on_topic from body text, got %s", got)
	}
}

func TestClassifyNoiseTermsDoNotDemote(t *testing.T) {
	classifier := NewClassifier(testAnchors())

	// A primary anchor stays on_topic even when noise terms appear.
	item := NormalizedItem{Title: "SHRM certification webinar announcement"}
	if got := classifier.Classify(item); got != OnTopic {
		t.Errorf("Expected noise terms not to demote, got %s", got)
	}

	if len(classifier.NoiseTerms()) != 2 {
		t.Errorf("Expected 2 noise terms, got %d", len(classifier.NoiseTerms()))
	}
}

func TestClassifyEmptyText(t *testing.T) {
	classifier := NewClassifier(testAnchors())

	if got := classifier.Classify(NormalizedItem{}); got != OffTopic {
		t.Errorf("Expected off_topic for empty item, got %s", got)
	}
}
