package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/mention-comb/app/cfg"
	"github.com/lysyi3m/mention-comb/app/collectors"
	"github.com/lysyi3m/mention-comb/app/database"
	"github.com/lysyi3m/mention-comb/app/monitor"
	"github.com/lysyi3m/mention-comb/app/notifications"
	"github.com/lysyi3m/mention-comb/app/sheet"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	topicCache  *monitor.TopicCache
	collectors  []collectors.Collector
	store       monitor.SeenStore
	runRepo     database.RunRepository
	writer      sheet.Writer
	notifier    notifications.Notifier
	dryRun      bool
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface

	mu      sync.Mutex
	nextRun map[string]time.Time
}

func NewScheduler(topicCache *monitor.TopicCache, collectorList []collectors.Collector,
	store monitor.SeenStore, runRepo database.RunRepository, writer sheet.Writer,
	notifier notifications.Notifier) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		topicCache:  topicCache,
		collectors:  collectorList,
		store:       store,
		runRepo:     runRepo,
		writer:      writer,
		notifier:    notifier,
		dryRun:      cfg.DryRun,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 100),
		nextRun:     make(map[string]time.Time),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueTasks() {
	topicConfigs := s.topicCache.GetEnabledConfigs()
	if len(topicConfigs) == 0 {
		slog.Debug("No enabled topic configurations found")
		return
	}

	slog.Debug("Processing enabled topic configurations for task scheduling", "count", len(topicConfigs))

	now := time.Now().UTC()

	for _, topicConfig := range topicConfigs {
		if !s.isDue(topicConfig.Name, now) {
			slog.Debug("Topic not due for collection yet", "topic", topicConfig.Name)
			continue
		}

		task := NewCollectRunTask(topicConfig.Name, topicConfig, s.collectors, s.store, s.runRepo, s.writer, s.notifier, s.dryRun)
		if err := s.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue CollectRunTask", "topic", topicConfig.Name, "error", err)
			continue
		}

		s.markScheduled(topicConfig, now)
	}
}

// isDue reports whether the topic's refresh interval has elapsed since
// it was last scheduled. A topic never scheduled before is always due.
func (s *Scheduler) isDue(topicName string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.nextRun[topicName]
	return !ok || !next.After(now)
}

func (s *Scheduler) markScheduled(topicConfig *monitor.TopicConfig, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRun[topicConfig.Name] = now.Add(time.Duration(topicConfig.Settings.RefreshInterval) * time.Second)
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 10*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "topic", task.GetTopicName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
