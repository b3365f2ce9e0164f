package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"mention_comb.db" description:"Path to the SQLite database file"`

	// Application configuration
	TopicsDir         string `long:"topics-dir" env:"TOPICS_DIR" default:"./topics" description:"Directory containing topic configuration files"`
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for collection tasks"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds"`
	APIAccessKey      string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	DryRun            bool   `long:"dry-run" env:"DRY_RUN" description:"Compute runs without appending to the sheet or committing the dedupe store"`

	// Upstream credentials
	NewsAPIKey      string `long:"newsapi-key" env:"NEWS_API_KEY" description:"NewsAPI.org API key (news collector disabled when empty)"`
	XBearerToken    string `long:"x-bearer-token" env:"X_BEARER_TOKEN" description:"X API v2 bearer token (X collector disabled when empty)"`
	GoogleAPIKey    string `long:"google-api-key" env:"GOOGLE_API_KEY" description:"Google Custom Search API key (LinkedIn collector disabled when empty)"`
	GoogleCSEID     string `long:"google-cse-id" env:"GOOGLE_CSE_ID" description:"Google Custom Search engine ID"`
	SheetWebhookURL string `long:"sheet-webhook-url" env:"SHEET_WEBHOOK_URL" description:"Webhook endpoint that appends rows to the sheet"`

	// Notifications
	TelegramBotToken string `long:"telegram-bot-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token for run summaries (optional)"`
	TelegramChatID   string `long:"telegram-chat-id" env:"TELEGRAM_CHAT_ID" description:"Telegram chat ID for run summaries"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mention Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:            raw.DBPath,
		TopicsDir:         raw.TopicsDir,
		Port:              raw.Port,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		APIAccessKey:      raw.APIAccessKey,
		DryRun:            raw.DryRun,
		NewsAPIKey:        raw.NewsAPIKey,
		XBearerToken:      raw.XBearerToken,
		GoogleAPIKey:      raw.GoogleAPIKey,
		GoogleCSEID:       raw.GoogleCSEID,
		SheetWebhookURL:   raw.SheetWebhookURL,
		TelegramBotToken:  raw.TelegramBotToken,
		TelegramChatID:    raw.TelegramChatID,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
