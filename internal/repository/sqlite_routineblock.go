package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/fluxion/internal/db"
	"github.com/alexanderramin/fluxion/internal/domain"
)

// SQLiteRoutineBlockRepo implements RoutineBlockRepo using a SQLite database.
type SQLiteRoutineBlockRepo struct {
	db db.DBTX
}

func NewSQLiteRoutineBlockRepo(conn db.DBTX) *SQLiteRoutineBlockRepo {
	return &SQLiteRoutineBlockRepo{db: conn}
}

const routineBlockColumns = `id, title, category, day, start_hour, start_minute, duration_hours, created_at, updated_at`

func (r *SQLiteRoutineBlockRepo) Create(ctx context.Context, b *domain.RoutineBlock) error {
	query := `INSERT INTO routine_blocks (` + routineBlockColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.Title,
		string(b.Category),
		b.Day,
		b.StartHour,
		b.StartMinute,
		b.DurationHours,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting routine block: %w", err)
	}
	return nil
}

func (r *SQLiteRoutineBlockRepo) GetByID(ctx context.Context, id string) (*domain.RoutineBlock, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+routineBlockColumns+` FROM routine_blocks WHERE id = ?`, id)
	b, err := scanRoutineBlock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("routine block %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning routine block: %w", err)
	}
	return b, nil
}

func (r *SQLiteRoutineBlockRepo) List(ctx context.Context) ([]*domain.RoutineBlock, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+routineBlockColumns+` FROM routine_blocks
		ORDER BY day, start_hour, start_minute, title`)
	if err != nil {
		return nil, fmt.Errorf("listing routine blocks: %w", err)
	}
	defer rows.Close()
	return scanRoutineBlocks(rows)
}

func (r *SQLiteRoutineBlockRepo) ListByDay(ctx context.Context, day time.Weekday) ([]*domain.RoutineBlock, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+routineBlockColumns+` FROM routine_blocks
		WHERE day = ? ORDER BY start_hour, start_minute, title`, int(day))
	if err != nil {
		return nil, fmt.Errorf("listing routine blocks by day: %w", err)
	}
	defer rows.Close()
	return scanRoutineBlocks(rows)
}

func (r *SQLiteRoutineBlockRepo) Update(ctx context.Context, b *domain.RoutineBlock) error {
	query := `UPDATE routine_blocks SET title = ?, category = ?, day = ?, start_hour = ?,
		start_minute = ?, duration_hours = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		b.Title,
		string(b.Category),
		b.Day,
		b.StartHour,
		b.StartMinute,
		b.DurationHours,
		formatTime(b.UpdatedAt),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating routine block: %w", err)
	}
	return requireOneRow(res, "routine block "+b.ID)
}

func (r *SQLiteRoutineBlockRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM routine_blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting routine block: %w", err)
	}
	return requireOneRow(res, "routine block "+id)
}

func (r *SQLiteRoutineBlockRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM routine_blocks`); err != nil {
		return fmt.Errorf("clearing routine blocks: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoutineBlock(row rowScanner) (*domain.RoutineBlock, error) {
	var b domain.RoutineBlock
	var category, createdAt, updatedAt string
	if err := row.Scan(
		&b.ID, &b.Title, &category, &b.Day, &b.StartHour, &b.StartMinute,
		&b.DurationHours, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	b.Category = domain.Category(category)
	b.CreatedAt = parseTimeOrZero(createdAt)
	b.UpdatedAt = parseTimeOrZero(updatedAt)
	return &b, nil
}

func scanRoutineBlocks(rows *sql.Rows) ([]*domain.RoutineBlock, error) {
	var blocks []*domain.RoutineBlock
	for rows.Next() {
		b, err := scanRoutineBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning routine block row: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating routine blocks: %w", err)
	}
	return blocks, nil
}

func requireOneRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
