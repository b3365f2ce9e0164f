package database

import (
	"time"

	"github.com/lysyi3m/mention-comb/app/monitor"
)

// Run is one persisted collection run with its statistics.
type Run struct {
	ID           int64
	Topic        string
	StartedAt    time.Time
	Duration     time.Duration
	RawTotal     int
	InvalidURL   int
	DateFiltered int
	Blocked      int
	Duplicates   int
	Reposts      int
	Borderline   int
	OffTopic     int
	Accepted     int
	Appended     int
	Status       string
	Error        string
	CreatedAt    time.Time
}

type SeenRepository interface {
	monitor.SeenStore

	HasSeenURL(rawURL string) (bool, error)
	GetSeenCount() (int, error)
	GetSeenItemCount() (int, error)
}

type RunRepository interface {
	InsertRun(run Run) (int64, error)
	GetRecentRuns(limit int) ([]Run, error)
	GetRunCount() (int, error)
}
