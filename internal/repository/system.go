package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SystemRepository exposes the table-wide reads behind the overview and
// health endpoints.
type SystemRepository interface {
	Now(ctx context.Context) (time.Time, error)
	CountJobs(ctx context.Context) (int64, error)
}

// PGXSystemRepository implements SystemRepository using pgx.
type PGXSystemRepository struct {
	pool pgxPool
}

// NewPGXSystemRepository wires a pgx backed system repository.
func NewPGXSystemRepository(pool *pgxpool.Pool) *PGXSystemRepository {
	return &PGXSystemRepository{pool: pool}
}

// Now returns the database clock. Round-tripping through the pool also proves
// the read-only session is usable, which is what the health check cares about.
func (r *PGXSystemRepository) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := r.pool.QueryRow(ctx, `SELECT NOW()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("query database clock: %w", err)
	}
	return now, nil
}

// CountJobs returns the total number of job rows.
func (r *PGXSystemRepository) CountJobs(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return total, nil
}
