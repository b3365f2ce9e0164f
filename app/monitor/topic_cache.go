package monitor

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// TopicConfig describes one monitored controversy: the label written to
// the sheet, the search terms handed to collectors, and the anchor sets
// driving the classifier.
type TopicConfig struct {
	Name        string        // derived from filename (without .yml extension)
	Topic       string        `yaml:"topic"`
	Settings    TopicSettings `yaml:"settings"`
	SearchTerms []string      `yaml:"search_terms"`
	Anchors     AnchorConfig  `yaml:"anchors"`
	Sources     SourceToggles `yaml:"sources"`
}

type TopicSettings struct {
	Enabled         bool   `yaml:"enabled"`
	RefreshInterval int    `yaml:"refresh_interval"` // seconds
	MaxResults      int    `yaml:"max_results"`      // 0 = unlimited
	SinceDate       string `yaml:"since_date"`       // YYYY-MM-DD, items before are dropped
	Timeout         int    `yaml:"timeout"`          // seconds, per upstream request
}

type AnchorConfig struct {
	Primary     []string `yaml:"primary"`
	Individuals []string `yaml:"individuals"`
	CaseContext []string `yaml:"case_context"`
	Noise       []string `yaml:"noise"`
}

type SourceToggles struct {
	News       bool `yaml:"news"`
	GoogleNews bool `yaml:"google_news"`
	Reddit     bool `yaml:"reddit"`
	X          bool `yaml:"x"`
	LinkedIn   bool `yaml:"linkedin"`
}

// TopicCache loads topic configuration files from a directory and keeps
// them available for the scheduler and API.
type TopicCache struct {
	topicsDir string
	cache     map[string]*TopicConfig
	mu        sync.RWMutex
}

func NewTopicCache(topicsDir string) *TopicCache {
	return &TopicCache{
		topicsDir: topicsDir,
		cache:     make(map[string]*TopicConfig),
	}
}

func (tc *TopicCache) Run() error {
	if _, err := os.Stat(tc.topicsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(tc.topicsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yml")

		config, err := tc.LoadConfig(name)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Topic configuration loaded", "topic", name,
			"enabled", config.Settings.Enabled,
			"search_terms", len(config.SearchTerms))
	}

	return nil
}

func (tc *TopicCache) LoadConfig(name string) (*TopicConfig, error) {
	configFile := filepath.Join(tc.topicsDir, name+".yml")
	config, err := tc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	config.Name = name

	if err := tc.validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.cache[config.Name] = config

	return config, nil
}

func (tc *TopicCache) GetConfig(name string) (*TopicConfig, error) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	config, ok := tc.cache[name]
	if !ok {
		return nil, fmt.Errorf("topic config with name '%s' not found", name)
	}
	return config, nil
}

func (tc *TopicCache) GetConfigs() map[string]*TopicConfig {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	configsCopy := make(map[string]*TopicConfig, len(tc.cache))
	for k, v := range tc.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (tc *TopicCache) GetEnabledConfigs() map[string]*TopicConfig {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	enabled := make(map[string]*TopicConfig)
	for k, v := range tc.cache {
		if v.Settings.Enabled {
			enabled[k] = v
		}
	}
	return enabled
}

func (tc *TopicCache) GetConfigCount() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.cache)
}

func (tc *TopicCache) parseConfig(configFile string) (*TopicConfig, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config TopicConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if config.Settings.RefreshInterval == 0 {
		config.Settings.RefreshInterval = 3600
	}
	if config.Settings.Timeout == 0 {
		config.Settings.Timeout = 30
	}

	return &config, nil
}

func (tc *TopicCache) validateConfig(config *TopicConfig) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}

	if config.Topic == "" {
		return fmt.Errorf("topic label is required")
	}
	if len(config.SearchTerms) == 0 {
		return fmt.Errorf("at least one search term is required")
	}
	if len(config.Anchors.Primary) == 0 {
		return fmt.Errorf("at least one primary anchor is required")
	}

	nonNegativeFields := map[string]int{
		"refresh interval": config.Settings.RefreshInterval,
		"max results":      config.Settings.MaxResults,
		"timeout":          config.Settings.Timeout,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	if config.Settings.SinceDate != "" {
		if _, err := ParseISODate(config.Settings.SinceDate); err != nil {
			return fmt.Errorf("invalid since_date: %w", err)
		}
	}

	return nil
}
