package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Metadata keys
const lastManifestRunKey = "last_manifest_run"

// GetMetadata retrieves a metadata value by key.
// Returns sql.ErrNoRows if the key doesn't exist.
func (d *Database) GetMetadata(ctx context.Context, key string) (value string, err error) {
	start := time.Now()
	defer func() {
		if !errors.Is(err, sql.ErrNoRows) {
			recordQuery("get_metadata", start, err)
		}
	}()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err = d.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetMetadata sets a metadata key-value pair.
func (d *Database) SetMetadata(ctx context.Context, key, value string) (err error) {
	start := time.Now()
	defer func() { recordQuery("set_metadata", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// GetLastManifestRun returns the timestamp of the last manifest run.
// Returns zero time if never run.
func (d *Database) GetLastManifestRun(ctx context.Context) (time.Time, error) {
	value, err := d.GetMetadata(ctx, lastManifestRunKey)
	if errors.Is(err, sql.ErrNoRows) {
		// Key doesn't exist, never run
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	if value == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.RFC3339, value)
}

// SetLastManifestRun stores the timestamp of the last manifest run.
func (d *Database) SetLastManifestRun(ctx context.Context, t time.Time) error {
	if t.IsZero() {
		// Clear the value
		return d.SetMetadata(ctx, lastManifestRunKey, "")
	}
	return d.SetMetadata(ctx, lastManifestRunKey, t.UTC().Format(time.RFC3339))
}
