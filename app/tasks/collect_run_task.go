package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/mention-comb/app/collectors"
	"github.com/lysyi3m/mention-comb/app/database"
	"github.com/lysyi3m/mention-comb/app/monitor"
	"github.com/lysyi3m/mention-comb/app/notifications"
	"github.com/lysyi3m/mention-comb/app/sheet"
)

// CollectRunTask executes one full collection run for a topic: every
// enabled collector is queried, the batch is deduplicated and
// classified, accepted rows are appended to the sheet, and only then is
// the seen store committed. A failed append leaves the store untouched
// so the next run retries the same items.
type CollectRunTask struct {
	Task
	TopicConfig *monitor.TopicConfig
	collectors  []collectors.Collector
	store       monitor.SeenStore
	runRepo     database.RunRepository
	writer      sheet.Writer
	notifier    notifications.Notifier
	dryRun      bool
}

func NewCollectRunTask(topicName string, topicConfig *monitor.TopicConfig, collectorList []collectors.Collector,
	store monitor.SeenStore, runRepo database.RunRepository, writer sheet.Writer,
	notifier notifications.Notifier, dryRun bool) *CollectRunTask {
	return &CollectRunTask{
		Task:        NewTask(TaskTypeCollectRun, topicName),
		TopicConfig: topicConfig,
		collectors:  collectorList,
		store:       store,
		runRepo:     runRepo,
		writer:      writer,
		notifier:    notifier,
		dryRun:      dryRun,
	}
}

func (t *CollectRunTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.TopicConfig.Settings.Enabled {
		slog.Debug("Topic disabled, skipping", "topic", t.TopicName)
		return nil
	}

	startedAt := time.Now().UTC()

	// Anchors are topic-scoped, so each run gets its own classifier.
	classifier := monitor.NewClassifier(t.TopicConfig.Anchors)
	processor := monitor.NewProcessor(t.store, classifier)

	batches, sourceStats := t.collect(ctx)

	accepted, tokens, stats, err := processor.ComputeAcceptedBatch(batches)
	if err != nil {
		t.recordRun(startedAt, stats, sourceStats, 0, "error", err)
		return fmt.Errorf("failed to compute accepted batch: %w", err)
	}

	if max := t.TopicConfig.Settings.MaxResults; max > 0 && len(accepted) > max {
		slog.Debug("Capping accepted items",
			"topic", t.TopicName,
			"accepted", len(accepted),
			"max_results", max)
		accepted = accepted[:max]
		tokens = tokens[:max]
	}

	rows, commitTokens := t.buildRows(accepted, tokens)

	if t.dryRun {
		slog.Info("Dry run, skipping sheet append and commit",
			"topic", t.TopicName,
			"accepted", len(rows))
		t.recordRun(startedAt, stats, sourceStats, 0, "dry_run", nil)
		return nil
	}

	if len(rows) > 0 {
		if err := t.writer.Append(ctx, rows); err != nil {
			t.recordRun(startedAt, stats, sourceStats, 0, "error", err)
			return fmt.Errorf("failed to append rows to sheet: %w", err)
		}
	}

	if err := processor.Commit(commitTokens); err != nil {
		// Rows are already on the sheet; a commit failure means the next
		// run may re-append them. Record it but do not retry the task.
		t.recordRun(startedAt, stats, sourceStats, len(rows), "commit_error", err)
		slog.Error("Failed to commit seen entries", "topic", t.TopicName, "error", err)
		return nil
	}

	t.recordRun(startedAt, stats, sourceStats, len(rows), "success", nil)

	t.notify(ctx, len(rows), sourceStats, stats)

	slog.Info("Task completed",
		"type", "CollectRun",
		"topic", t.TopicName,
		"duration", t.GetDuration(),
		"raw", stats.Raw,
		"duplicates", stats.Duplicates,
		"reposts", stats.Reposts,
		"discarded", stats.Discarded(),
		"appended", len(rows))

	return nil
}

// collect queries every enabled collector. A collector failure is
// logged and its source skipped; the run proceeds with the rest.
func (t *CollectRunTask) collect(ctx context.Context) ([]monitor.SourceBatch, monitor.SourceStats) {
	var batches []monitor.SourceBatch
	var totals monitor.SourceStats

	for _, c := range t.collectors {
		if !c.Enabled(t.TopicConfig) {
			slog.Debug("Collector disabled for topic", "collector", c.Name(), "topic", t.TopicName)
			continue
		}

		select {
		case <-ctx.Done():
			return batches, totals
		default:
		}

		items, stats, err := c.Collect(ctx, t.TopicConfig)
		if err != nil {
			slog.Error("Collector failed, skipping source", "collector", c.Name(), "topic", t.TopicName, "error", err)
			continue
		}

		totals.Raw += stats.Raw
		totals.DateFiltered += stats.DateFiltered
		totals.Blocked += stats.Blocked
		totals.Invalid += stats.Invalid

		batches = append(batches, monitor.SourceBatch{Source: c.Name(), Items: items})

		slog.Debug("Collector finished", "collector", c.Name(), "topic", t.TopicName, "items", len(items), "raw", stats.Raw)
	}

	return batches, totals
}

// buildRows converts accepted items to sheet rows, dropping any row
// that fails schema validation together with its commit token.
func (t *CollectRunTask) buildRows(accepted []monitor.NormalizedItem, tokens []monitor.CommitToken) ([][]string, []monitor.CommitToken) {
	rows := make([][]string, 0, len(accepted))
	kept := make([]monitor.CommitToken, 0, len(tokens))

	for i, item := range accepted {
		row := sheet.BuildRow(item)
		if !sheet.ValidateRow(row) {
			slog.Warn("Dropping row that failed schema validation", "topic", t.TopicName, "url", item.PostURL)
			continue
		}
		rows = append(rows, row)
		kept = append(kept, tokens[i])
	}

	return rows, kept
}

func (t *CollectRunTask) recordRun(startedAt time.Time, stats *monitor.BatchStats, sourceStats monitor.SourceStats, appended int, status string, runErr error) {
	if stats == nil {
		stats = &monitor.BatchStats{}
	}

	run := database.Run{
		Topic:        t.TopicName,
		StartedAt:    startedAt,
		Duration:     time.Since(startedAt),
		RawTotal:     stats.Raw,
		InvalidURL:   stats.InvalidURL,
		DateFiltered: sourceStats.DateFiltered,
		Blocked:      sourceStats.Blocked,
		Duplicates:   stats.Duplicates,
		Reposts:      stats.Reposts,
		Borderline:   stats.Borderline,
		OffTopic:     stats.OffTopic,
		Accepted:     stats.Accepted,
		Appended:     appended,
		Status:       status,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if _, err := t.runRepo.InsertRun(run); err != nil {
		slog.Error("Failed to record run", "topic", t.TopicName, "error", err)
	}
}

func (t *CollectRunTask) notify(ctx context.Context, appended int, sourceStats monitor.SourceStats, stats *monitor.BatchStats) {
	if t.notifier == nil {
		return
	}

	message := notifications.BuildSummaryMessage(notifications.RunReport{
		Topic:        t.TopicConfig.Topic,
		SearchTerms:  t.TopicConfig.SearchTerms,
		Appended:     appended,
		DateFiltered: sourceStats.DateFiltered,
		Blocked:      sourceStats.Blocked,
		Stats:        stats,
	})

	if err := t.notifier.Notify(ctx, message); err != nil {
		slog.Error("Failed to send run summary", "topic", t.TopicName, "error", err)
	}
}
