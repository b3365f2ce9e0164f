package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	TopicsDir         string
	Port              string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string
	DryRun            bool

	// Upstream credentials
	NewsAPIKey      string
	XBearerToken    string
	GoogleAPIKey    string
	GoogleCSEID     string
	SheetWebhookURL string

	// Notifications
	TelegramBotToken string
	TelegramChatID   string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
