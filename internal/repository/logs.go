package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sbrlabs/lookup-dashboard/api/internal/entity"
)

// LogsRepository describes the read-only queries over the worker logs table.
type LogsRepository interface {
	List(ctx context.Context, logType string, limit int) ([]entity.LogEntry, error)
	LastLogAt(ctx context.Context) (*time.Time, error)
}

// PGXLogsRepository implements LogsRepository using pgx.
type PGXLogsRepository struct {
	pool pgxPool
}

// NewPGXLogsRepository wires a pgx backed logs repository.
func NewPGXLogsRepository(pool *pgxpool.Pool) *PGXLogsRepository {
	return &PGXLogsRepository{pool: pool}
}

// List returns the most recent log entries, optionally restricted to one type
// (e.g. "error").
func (r *PGXLogsRepository) List(ctx context.Context, logType string, limit int) ([]entity.LogEntry, error) {
	var (
		whereClause string
		args        []any
	)
	if logType != "" {
		whereClause = " WHERE type = $1"
		args = append(args, logType)
	}

	args = append(args, limit)
	query := fmt.Sprintf(`
        SELECT job_id, type, message, created_at
        FROM logs%s
        ORDER BY created_at DESC
        LIMIT $%d
    `, whereClause, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var entries []entity.LogEntry
	for rows.Next() {
		var entry entity.LogEntry
		if err := rows.Scan(&entry.JobID, &entry.Type, &entry.Message, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logs: %w", err)
	}
	return entries, nil
}

// LastLogAt returns the timestamp of the most recent log line, or nil when
// the table is empty.
func (r *PGXLogsRepository) LastLogAt(ctx context.Context) (*time.Time, error) {
	var last sql.NullTime
	if err := r.pool.QueryRow(ctx, `SELECT MAX(created_at) FROM logs`).Scan(&last); err != nil {
		return nil, fmt.Errorf("query last log timestamp: %w", err)
	}
	if !last.Valid {
		return nil, nil
	}
	ts := last.Time
	return &ts, nil
}
