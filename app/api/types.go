package api

import (
	"github.com/lysyi3m/mention-comb/app/collectors"
	"github.com/lysyi3m/mention-comb/app/database"
	"github.com/lysyi3m/mention-comb/app/monitor"
	"github.com/lysyi3m/mention-comb/app/notifications"
	"github.com/lysyi3m/mention-comb/app/sheet"
	"github.com/lysyi3m/mention-comb/app/tasks"
)

type Handler struct {
	seenRepo   database.SeenRepository
	runRepo    database.RunRepository
	topicCache *monitor.TopicCache
	collectors []collectors.Collector
	writer     sheet.Writer
	notifier   notifications.Notifier
	scheduler  tasks.TaskSchedulerInterface
	dryRun     bool
}
