package database

import (
	"context"
	"fmt"
	"time"
)

// ManifestRun is one recorded manifest generator run.
type ManifestRun struct {
	ID          int64
	StartedAt   time.Time
	Duration    time.Duration
	Directories int
	Written     int
	Unchanged   int
	Failed      int
	// Snapshot is the write outcome of the snapshot file.
	Snapshot string
	// Error is the run error, "" for a successful run.
	Error string
}

// RecordRun stores a run and returns its ID.
func (d *Database) RecordRun(ctx context.Context, run *ManifestRun) (id int64, err error) {
	start := time.Now()
	defer func() { recordQuery("record_run", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, `
		INSERT INTO manifest_runs (started_at, duration_ms, directories, written, unchanged, failed, snapshot, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.StartedAt.Unix(),
		run.Duration.Milliseconds(),
		run.Directories,
		run.Written,
		run.Unchanged,
		run.Failed,
		run.Snapshot,
		run.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record manifest run: %w", err)
	}
	return result.LastInsertId()
}

// ListRuns returns up to limit runs, newest first.
func (d *Database) ListRuns(ctx context.Context, limit int) (runs []ManifestRun, err error) {
	start := time.Now()
	defer func() { recordQuery("list_runs", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, directories, written, unchanged, failed, snapshot, error
		FROM manifest_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list manifest runs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var run ManifestRun
		var startedAt, durationMs int64
		if err := rows.Scan(&run.ID, &startedAt, &durationMs, &run.Directories,
			&run.Written, &run.Unchanged, &run.Failed, &run.Snapshot, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan manifest run: %w", err)
		}
		run.StartedAt = time.Unix(startedAt, 0)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
