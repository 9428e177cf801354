package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LegacyRoutineBlocksKey is the key under which browser exports carry the
// routine catalog. Migrate moves it into routine_blocks.
const LegacyRoutineBlocksKey = "fluxion-routine-blocks"

// Migrate runs all schema migrations. Safe to call repeatedly.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := MigrateLegacyRoutineBlocks(context.Background(), db); err != nil {
		return fmt.Errorf("migrating legacy routine blocks: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS routine_blocks (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		category       TEXT NOT NULL,
		day            INTEGER NOT NULL CHECK(day BETWEEN 0 AND 6),
		start_hour     INTEGER NOT NULL CHECK(start_hour BETWEEN 0 AND 23),
		start_minute   INTEGER NOT NULL DEFAULT 0 CHECK(start_minute BETWEEN 0 AND 59),
		duration_hours REAL NOT NULL CHECK(duration_hours > 0),
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_routine_blocks_day ON routine_blocks(day)`,
}

// legacyBlock mirrors the browser app's routine block JSON.
type legacyBlock struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Day         int     `json:"day"`
	StartHour   int     `json:"startHour"`
	StartMinute int     `json:"startMinute"`
	Duration    float64 `json:"duration"`
}

// MigrateLegacyRoutineBlocks copies a browser-exported routine catalog from
// kv_entries into routine_blocks, then drops the kv entry. Rows already
// present (same id) are left alone; out-of-range blocks are skipped.
func MigrateLegacyRoutineBlocks(ctx context.Context, db *sql.DB) error {
	var raw string
	err := db.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, LegacyRoutineBlocksKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading legacy routine blocks: %w", err)
	}

	var blocks []legacyBlock
	if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
		// Unreadable export: drop it rather than fail every startup.
		blocks = nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting legacy migration: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, b := range blocks {
		if b.ID == "" || b.Title == "" || b.Day < 0 || b.Day > 6 ||
			b.StartHour < 0 || b.StartHour > 23 || b.StartMinute < 0 || b.StartMinute > 59 || b.Duration <= 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO routine_blocks
			(id, title, category, day, start_hour, start_minute, duration_hours, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.Title, b.Category, b.Day, b.StartHour, b.StartMinute, b.Duration, now, now); err != nil {
			return fmt.Errorf("inserting legacy block %s: %w", b.ID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, LegacyRoutineBlocksKey); err != nil {
		return fmt.Errorf("clearing legacy routine blocks: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing legacy migration: %w", err)
	}
	committed = true
	return nil
}
