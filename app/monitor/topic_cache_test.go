package monitor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTopicCacheLoadValidConfig(t *testing.T) {
	// Create temp directory
	tempDir := t.TempDir()

	// Create test YAML file
	content := `
topic: "SHRM Trial Verdict"

settings:
  enabled: true
  refresh_interval: 1800
  max_results: 50
  since_date: "2025-12-01"
  timeout: 15

search_terms:
  - "SHRM verdict"
  - "SHRM lawsuit"

anchors:
  primary:
    - "shrm"
  individuals:
    - "johnny c. taylor"
  case_context:
    - "verdict"
    - "lawsuit"

sources:
  news: true
  reddit: true
`

	err := os.WriteFile(filepath.Join(tempDir, "test.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	// Load topicConfig
	topicCache := NewTopicCache(tempDir)
	err = topicCache.Run()
	if err != nil {
		t.Fatal(err)
	}

	if topicCache.GetConfigCount() != 1 {
		t.Errorf("Expected 1 topicConfig, got %d", topicCache.GetConfigCount())
	}

	// Get the topicConfig by name
	topicConfig, err := topicCache.GetConfig("test")
	if err != nil {
		t.Fatal(err)
	}

	// Validate loaded values
	if topicConfig.Name != "test" {
		t.Errorf("Expected name 'test', got '%s'", topicConfig.Name)
	}
	if topicConfig.Topic != "SHRM Trial Verdict" {
		t.Errorf("Expected topic 'SHRM Trial Verdict', got '%s'", topicConfig.Topic)
	}
	if topicConfig.Settings.RefreshInterval != 1800 {
		t.Errorf("Expected refresh interval 1800, got %d", topicConfig.Settings.RefreshInterval)
	}
	if topicConfig.Settings.SinceDate != "2025-12-01" {
		t.Errorf("Expected since_date '2025-12-01', got '%s'", topicConfig.Settings.SinceDate)
	}
	if len(topicConfig.SearchTerms) != 2 {
		t.Errorf("Expected 2 search terms, got %d", len(topicConfig.SearchTerms))
	}
	if len(topicConfig.Anchors.CaseContext) != 2 {
		t.Errorf("Expected 2 case context anchors, got %d", len(topicConfig.Anchors.CaseContext))
	}
	if !topicConfig.Sources.News || !topicConfig.Sources.Reddit {
		t.Error("Expected news and reddit sources enabled")
	}
	if topicConfig.Sources.X {
		t.Error("Expected x source disabled by default")
	}
}

func TestTopicCacheLoadConfigWithDefaults(t *testing.T) {
	tempDir := t.TempDir()

	// Create minimal test YAML file
	content := `
topic: "SHRM Trial Verdict"

settings:
  enabled: true

search_terms:
  - "SHRM verdict"

anchors:
  primary:
    - "shrm"
`

	err := os.WriteFile(filepath.Join(tempDir, "test.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	topicCache := NewTopicCache(tempDir)
	err = topicCache.Run()
	if err != nil {
		t.Fatal(err)
	}

	topicConfig, err := topicCache.GetConfig("test")
	if err != nil {
		t.Fatal(err)
	}

	// Defaults applied when unset
	if topicConfig.Settings.RefreshInterval != 3600 {
		t.Errorf("Expected default refresh interval 3600, got %d", topicConfig.Settings.RefreshInterval)
	}
	if topicConfig.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", topicConfig.Settings.Timeout)
	}
}

func TestTopicCacheValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing topic label",
			content: `
search_terms:
  - "SHRM verdict"
anchors:
  primary:
    - "shrm"
`,
			wantErr: "topic label is required",
		},
		{
			name: "missing search terms",
			content: `
topic: "SHRM Trial Verdict"
anchors:
  primary:
    - "shrm"
`,
			wantErr: "at least one search term is required",
		},
		{
			name: "missing primary anchors",
			content: `
topic: "SHRM Trial Verdict"
search_terms:
  - "SHRM verdict"
`,
			wantErr: "at least one primary anchor is required",
		},
		{
			name: "invalid since_date",
			content: `
topic: "SHRM Trial Verdict"
settings:
  since_date: "December 1st"
search_terms:
  - "SHRM verdict"
anchors:
  primary:
    - "shrm"
`,
			wantErr: "invalid since_date",
		},
		{
			name: "negative refresh interval",
			content: `
topic: "SHRM Trial Verdict"
settings:
  refresh_interval: -60
search_terms:
  - "SHRM verdict"
anchors:
  primary:
    - "shrm"
`,
			wantErr: "must be non-negative",
		},
	}

	for _, tc := range cases {
		tempDir := t.TempDir()
		err := os.WriteFile(filepath.Join(tempDir, "test.yml"), []byte(tc.content), 0644)
		if err != nil {
			t.Fatal(err)
		}

		topicCache := NewTopicCache(tempDir)
		err = topicCache.Run()
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%s: expected error containing %q, got %q", tc.name, tc.wantErr, err.Error())
		}
	}
}

func TestShippedTopicConfigAnchors(t *testing.T) {
	topicCache := NewTopicCache(filepath.Join("..", "..", "topics"))
	if err := topicCache.Run(); err != nil {
		t.Fatal(err)
	}

	topicConfig, err := topicCache.GetConfig("shrm-trial-verdict")
	if err != nil {
		t.Fatal(err)
	}

	if topicConfig.Topic != "SHRM Trial Verdict" {
		t.Errorf("Expected topic 'SHRM Trial Verdict', got '%s'", topicConfig.Topic)
	}

	haveContext := make(map[string]bool, len(topicConfig.Anchors.CaseContext))
	for _, term := range topicConfig.Anchors.CaseContext {
		haveContext[term] = true
	}

	// Legal and controversy framing terms for the monitored case
	required := []string{
		"verdict", "jury", "trial", "lawsuit", "damages",
		"liable", "allegation", "harassment", "discrimination",
		"scandal", "controversy", "misconduct", "appeal",
		"11.5 million",
	}
	for _, term := range required {
		if !haveContext[term] {
			t.Errorf("Expected case context anchor %q in shipped topic config", term)
		}
	}
}

func TestTopicCacheMissingDirectory(t *testing.T) {
	topicCache := NewTopicCache("/nonexistent/path")
	if err := topicCache.Run(); err != nil {
		t.Errorf("Expected missing directory to be tolerated, got %v", err)
	}
	if topicCache.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configs, got %d", topicCache.GetConfigCount())
	}
}

func TestTopicCacheGetEnabledConfigs(t *testing.T) {
	tempDir := t.TempDir()

	enabled := `
topic: "Enabled Topic"
settings:
  enabled: true
search_terms:
  - "term"
anchors:
  primary:
    - "anchor"
`
	disabled := `
topic: "Disabled Topic"
settings:
  enabled: false
search_terms:
  - "term"
anchors:
  primary:
    - "anchor"
`

	if err := os.WriteFile(filepath.Join(tempDir, "on.yml"), []byte(enabled), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "off.yml"), []byte(disabled), 0644); err != nil {
		t.Fatal(err)
	}

	topicCache := NewTopicCache(tempDir)
	if err := topicCache.Run(); err != nil {
		t.Fatal(err)
	}

	if topicCache.GetConfigCount() != 2 {
		t.Errorf("Expected 2 configs, got %d", topicCache.GetConfigCount())
	}

	enabledConfigs := topicCache.GetEnabledConfigs()
	if len(enabledConfigs) != 1 {
		t.Fatalf("Expected 1 enabled config, got %d", len(enabledConfigs))
	}
	if _, ok := enabledConfigs["on"]; !ok {
		t.Error("Expected 'on' config to be enabled")
	}
}
