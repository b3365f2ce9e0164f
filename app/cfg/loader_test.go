package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	// Test that version is at least "dev" or "unknown"
	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	// Create a config instance to test field access
	cfg := &Cfg{
		DBPath:            "test.db",
		TopicsDir:         "./topics",
		Port:              "8080",
		WorkerCount:       3,
		SchedulerInterval: 60,
		APIAccessKey:      "test-key",
		DryRun:            true,
		NewsAPIKey:        "news-key",
		XBearerToken:      "x-token",
		GoogleAPIKey:      "google-key",
		GoogleCSEID:       "cse-id",
		SheetWebhookURL:   "https://script.example.com/exec",
		TelegramBotToken:  "bot-token",
		TelegramChatID:    "12345",
		UserAgent:         "Test Agent",
		Timezone:          "UTC",
		Debug:             true,
		Version:           "test-version",
	}

	// Test direct field access
	if cfg.DBPath != "test.db" {
		t.Errorf("Expected DB path 'test.db', got '%s'", cfg.DBPath)
	}
	if cfg.TopicsDir != "./topics" {
		t.Errorf("Expected topics dir './topics', got '%s'", cfg.TopicsDir)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.WorkerCount != 3 {
		t.Errorf("Expected worker count 3, got %d", cfg.WorkerCount)
	}
	if cfg.SchedulerInterval != 60 {
		t.Errorf("Expected scheduler interval 60, got %d", cfg.SchedulerInterval)
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if !cfg.DryRun {
		t.Error("Expected dry run enabled")
	}
	if cfg.SheetWebhookURL != "https://script.example.com/exec" {
		t.Errorf("Expected webhook URL, got '%s'", cfg.SheetWebhookURL)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}
