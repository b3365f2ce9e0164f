package database

import (
	"fmt"
	"time"
)

var _ RunRepository = (*CollectionRunRepository)(nil)

// CollectionRunRepository persists per-run statistics.
type CollectionRunRepository struct {
	db *DB
}

func NewCollectionRunRepository(db *DB) *CollectionRunRepository {
	return &CollectionRunRepository{db: db}
}

func (r *CollectionRunRepository) InsertRun(run Run) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO runs (
			topic, started_at, duration_ms, raw_total, invalid_url,
			date_filtered, blocked, duplicates, reposts, borderline,
			off_topic, accepted, appended, status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.Topic, run.StartedAt.UTC(), run.Duration.Milliseconds(),
		run.RawTotal, run.InvalidURL, run.DateFiltered, run.Blocked,
		run.Duplicates, run.Reposts, run.Borderline, run.OffTopic,
		run.Accepted, run.Appended, run.Status, run.Error)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	return id, nil
}

func (r *CollectionRunRepository) GetRecentRuns(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, topic, started_at, duration_ms, raw_total, invalid_url,
		       date_filtered, blocked, duplicates, reposts, borderline,
		       off_topic, accepted, appended, status, error, created_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMs int64
		err := rows.Scan(
			&run.ID, &run.Topic, &run.StartedAt, &durationMs,
			&run.RawTotal, &run.InvalidURL, &run.DateFiltered, &run.Blocked,
			&run.Duplicates, &run.Reposts, &run.Borderline, &run.OffTopic,
			&run.Accepted, &run.Appended, &run.Status, &run.Error,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return runs, nil
}

func (r *CollectionRunRepository) GetRunCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get run count: %w", err)
	}
	return count, nil
}
