package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/mention-comb/app/collectors"
	"github.com/lysyi3m/mention-comb/app/database"
	"github.com/lysyi3m/mention-comb/app/monitor"
	"github.com/lysyi3m/mention-comb/app/notifications"
	"github.com/lysyi3m/mention-comb/app/sheet"
	"github.com/lysyi3m/mention-comb/app/tasks"
)

func NewHandler(seenRepo database.SeenRepository, runRepo database.RunRepository,
	topicCache *monitor.TopicCache, collectorList []collectors.Collector,
	writer sheet.Writer, notifier notifications.Notifier,
	scheduler tasks.TaskSchedulerInterface, dryRun bool) *Handler {
	return &Handler{
		seenRepo:   seenRepo,
		runRepo:    runRepo,
		topicCache: topicCache,
		collectors: collectorList,
		writer:     writer,
		notifier:   notifier,
		scheduler:  scheduler,
		dryRun:     dryRun,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if runCount, err := h.runRepo.GetRunCount(); err == nil {
		health["runs"] = runCount
	}

	health["loaded_configurations"] = h.topicCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{}

	if seenURLs, err := h.seenRepo.GetSeenCount(); err == nil {
		stats["seen_urls"] = seenURLs
	}

	if seenItems, err := h.seenRepo.GetSeenItemCount(); err == nil {
		stats["seen_items"] = seenItems
	}

	if runCount, err := h.runRepo.GetRunCount(); err == nil {
		stats["runs"] = runCount
	}

	stats["topics"] = h.topicCache.GetConfigCount()

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIListTopics(c *gin.Context) {
	configs := h.topicCache.GetConfigs()

	topics := make([]map[string]interface{}, 0, len(configs))

	for _, topicConfig := range configs {
		topicInfo := map[string]interface{}{
			"name":             topicConfig.Name,
			"topic":            topicConfig.Topic,
			"enabled":          topicConfig.Settings.Enabled,
			"refresh_interval": (time.Duration(topicConfig.Settings.RefreshInterval) * time.Second).String(),
			"search_terms":     len(topicConfig.SearchTerms),
			"sources": map[string]bool{
				"news":        topicConfig.Sources.News,
				"google_news": topicConfig.Sources.GoogleNews,
				"reddit":      topicConfig.Sources.Reddit,
				"x":           topicConfig.Sources.X,
				"linkedin":    topicConfig.Sources.LinkedIn,
			},
		}

		topics = append(topics, topicInfo)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"topics": topics,
		"total":  len(topics),
	})
}

func (h *Handler) APIGetRuns(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	runs, err := h.runRepo.GetRecentRuns(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	results := make([]map[string]interface{}, 0, len(runs))
	for _, run := range runs {
		results = append(results, map[string]interface{}{
			"id":            run.ID,
			"topic":         run.Topic,
			"started_at":    run.StartedAt.Format(time.RFC3339),
			"duration":      run.Duration.String(),
			"raw_total":     run.RawTotal,
			"invalid_url":   run.InvalidURL,
			"date_filtered": run.DateFiltered,
			"blocked":       run.Blocked,
			"duplicates":    run.Duplicates,
			"reposts":       run.Reposts,
			"borderline":    run.Borderline,
			"off_topic":     run.OffTopic,
			"accepted":      run.Accepted,
			"appended":      run.Appended,
			"status":        run.Status,
			"error":         run.Error,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"runs":  results,
		"total": len(results),
	})
}

func (h *Handler) APITriggerCollect(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing topic name parameter"})
		return
	}

	_, err := h.topicCache.GetConfig(name)
	if err != nil {
		slog.Error("Topic configuration not found", "topic", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Topic configuration not found"})
		return
	}

	topicConfig, err := h.topicCache.LoadConfig(name)
	if err != nil {
		slog.Error("Error reloading configuration", "topic", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reload configuration",
			"details": err.Error(),
		})
		return
	}

	collectTask := tasks.NewCollectRunTask(name, topicConfig, h.collectors, h.seenRepo, h.runRepo, h.writer, h.notifier, h.dryRun)
	err = h.scheduler.EnqueueTask(collectTask)
	if err != nil {
		slog.Error("Error enqueueing collect task", "topic", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue collect task",
			"details": err.Error(),
		})
		return
	}

	response := gin.H{
		"success": true,
		"message": "Configuration reloaded and collection task enqueued successfully",
		"topic": gin.H{
			"name":  name,
			"topic": topicConfig.Topic,
		},
		"tasks": []gin.H{
			{
				"id":   collectTask.ID,
				"type": collectTask.Type,
			},
		},
	}

	c.JSON(http.StatusOK, response)
}
