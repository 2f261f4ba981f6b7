package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sbrlabs/lookup-dashboard/api/internal/dto"
	"github.com/sbrlabs/lookup-dashboard/api/internal/entity"
)

// maxNumberProfiles bounds the per-phone aggregate listing.
const maxNumberProfiles = 20

// statusGroupCase collapses the "nothing found" statuses into one bucket for
// the distribution chart; every other status passes through unchanged.
const statusGroupCase = `CASE WHEN status IN ('not_found', 'number_off', 'unknown') THEN 'no_data' ELSE status END`

const jobColumns = `id, username, phone, status, result, created_at, updated_at`

// JobsRepository describes the read-only queries over the jobs table.
type JobsRepository interface {
	StatsTotals(ctx context.Context, filter dto.StatsFilter) (dto.StatsTotals, error)
	StatusGroupCounts(ctx context.Context, filter dto.StatsFilter) ([]dto.StatusCount, error)
	RecentJobs(ctx context.Context, filter dto.StatsFilter, limit int) ([]entity.Job, error)
	LocationRows(ctx context.Context, filter dto.StatsFilter) ([]dto.LocationRow, error)
	DistinctUsernames(ctx context.Context) ([]string, error)
	NumberProfiles(ctx context.Context, username string) ([]dto.NumberProfile, error)
	JobsByPhone(ctx context.Context, phone string) ([]entity.Job, error)
	ListJobs(ctx context.Context, phone string, limit int) ([]entity.Job, error)
}

// pgxPool is the slice of pgxpool.Pool the repositories depend on.
type pgxPool interface {
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// PGXJobsRepository implements JobsRepository using pgx.
type PGXJobsRepository struct {
	pool pgxPool
	now  func() time.Time
}

// NewPGXJobsRepository wires a pgx backed jobs repository.
func NewPGXJobsRepository(pool *pgxpool.Pool) *PGXJobsRepository {
	return &PGXJobsRepository{pool: pool, now: time.Now}
}

// buildJobFilter translates the dashboard filter into a WHERE clause with
// positional args. The start bound is inclusive; the end bound is exclusive at
// the start of the following day, so a job stamped anywhere on EndDate still
// matches.
func buildJobFilter(filter dto.StatsFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if filter.HasUsername() {
		args = append(args, filter.Username)
		clauses = append(clauses, fmt.Sprintf("username = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, filter.EndDate.AddDate(0, 0, 1))
		clauses = append(clauses, fmt.Sprintf("created_at < $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// StatsTotals computes the scalar aggregates in a single pass over the
// filtered set. The "today" boundary is midnight UTC, passed as a parameter so
// the database session's time zone cannot shift it.
func (r *PGXJobsRepository) StatsTotals(ctx context.Context, filter dto.StatsFilter) (dto.StatsTotals, error) {
	whereClause, args := buildJobFilter(filter)

	todayStart := r.now().UTC().Truncate(24 * time.Hour)
	args = append(args, todayStart)

	query := fmt.Sprintf(`
        SELECT
            COUNT(*) AS total_req,
            COUNT(*) FILTER (WHERE created_at >= $%d) AS today_req,
            COUNT(DISTINCT phone) AS total_numbers,
            COALESCE(AVG(EXTRACT(EPOCH FROM (updated_at - created_at))) FILTER (WHERE status IN ('success', 'completed')), 0)::float8 AS avg_time
        FROM jobs%s
    `, len(args), whereClause)

	var (
		totals   dto.StatsTotals
		total    int64
		today    int64
		distinct int64
	)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total, &today, &distinct, &totals.AvgSeconds); err != nil {
		return dto.StatsTotals{}, fmt.Errorf("query stats totals: %w", err)
	}

	totals.TotalRequests = int(total)
	totals.TodayRequests = int(today)
	totals.DistinctPhones = int(distinct)
	return totals, nil
}

// StatusGroupCounts returns the status distribution over the filtered set.
// Jobs without a status land in the "Unknown" bucket.
func (r *PGXJobsRepository) StatusGroupCounts(ctx context.Context, filter dto.StatsFilter) ([]dto.StatusCount, error) {
	whereClause, args := buildJobFilter(filter)

	query := fmt.Sprintf(`
        SELECT %s AS status_group, COUNT(*) AS count
        FROM jobs%s
        GROUP BY status_group
    `, statusGroupCase, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query status groups: %w", err)
	}
	defer rows.Close()

	var counts []dto.StatusCount
	for rows.Next() {
		var (
			group sql.NullString
			count int64
		)
		if err := rows.Scan(&group, &count); err != nil {
			return nil, fmt.Errorf("scan status group: %w", err)
		}

		label := "Unknown"
		if group.Valid && group.String != "" {
			label = group.String
		}
		counts = append(counts, dto.StatusCount{Status: label, Count: int(count)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status groups: %w", err)
	}
	return counts, nil
}

// RecentJobs returns the most recent matching jobs, newest first.
func (r *PGXJobsRepository) RecentJobs(ctx context.Context, filter dto.StatsFilter, limit int) ([]entity.Job, error) {
	whereClause, args := buildJobFilter(filter)
	args = append(args, limit)

	query := fmt.Sprintf(`
        SELECT %s
        FROM jobs%s
        ORDER BY created_at DESC
        LIMIT $%d
    `, jobColumns, whereClause, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// LocationRows fetches the raw result payloads that might carry coordinates:
// successful jobs whose result mentions both a latitude and a longitude key.
// The LIKE pre-filter keeps payloads that cannot match away from the JSON
// decoder; actual extraction happens in the service layer.
func (r *PGXJobsRepository) LocationRows(ctx context.Context, filter dto.StatsFilter) ([]dto.LocationRow, error) {
	whereClause, args := buildJobFilter(filter)

	conditions := `(status = 'success' OR status = 'completed')
          AND result LIKE '%"latitude":%'
          AND result LIKE '%"longitude":%'`
	if whereClause == "" {
		whereClause = " WHERE " + conditions
	} else {
		whereClause += " AND " + conditions
	}

	query := fmt.Sprintf(`
        SELECT result, phone, created_at
        FROM jobs%s
        ORDER BY created_at DESC
    `, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query location rows: %w", err)
	}
	defer rows.Close()

	var locations []dto.LocationRow
	for rows.Next() {
		var (
			row    dto.LocationRow
			result sql.NullString
		)
		if err := rows.Scan(&result, &row.Phone, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location row: %w", err)
		}
		row.Result = result.String
		locations = append(locations, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate location rows: %w", err)
	}
	return locations, nil
}

// DistinctUsernames lists every known user, unfiltered on purpose: the result
// populates the user selector regardless of the active filter.
func (r *PGXJobsRepository) DistinctUsernames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT username FROM jobs WHERE username IS NOT NULL ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("query usernames: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("scan username: %w", err)
		}
		users = append(users, username)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usernames: %w", err)
	}
	return users, nil
}

// NumberProfiles groups the jobs by phone and returns the busiest numbers
// first, capped to keep the response bounded.
func (r *PGXJobsRepository) NumberProfiles(ctx context.Context, username string) ([]dto.NumberProfile, error) {
	var (
		whereClause string
		args        []any
	)
	if username != "" && username != "all" {
		whereClause = " WHERE username = $1"
		args = append(args, username)
	}

	args = append(args, maxNumberProfiles)
	query := fmt.Sprintf(`
        SELECT phone,
               COUNT(*)::int AS total,
               MAX(created_at) AS last_seen
        FROM jobs%s
        GROUP BY phone
        ORDER BY total DESC
        LIMIT $%d
    `, whereClause, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query number profiles: %w", err)
	}
	defer rows.Close()

	var profiles []dto.NumberProfile
	for rows.Next() {
		var profile dto.NumberProfile
		if err := rows.Scan(&profile.Phone, &profile.Total, &profile.LastSeen); err != nil {
			return nil, fmt.Errorf("scan number profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate number profiles: %w", err)
	}
	return profiles, nil
}

// JobsByPhone returns the complete history for one number, newest first. The
// result is deliberately uncapped; the drill-down derives its aggregates from
// the full set.
func (r *PGXJobsRepository) JobsByPhone(ctx context.Context, phone string) ([]entity.Job, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM jobs
        WHERE phone = $1
        ORDER BY created_at DESC
    `, jobColumns)

	rows, err := r.pool.Query(ctx, query, phone)
	if err != nil {
		return nil, fmt.Errorf("query jobs by phone: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// ListJobs returns the most recent jobs, optionally restricted to one phone.
func (r *PGXJobsRepository) ListJobs(ctx context.Context, phone string, limit int) ([]entity.Job, error) {
	var (
		whereClause string
		args        []any
	)
	if phone != "" {
		whereClause = " WHERE phone = $1"
		args = append(args, phone)
	}

	args = append(args, limit)
	query := fmt.Sprintf(`
        SELECT %s
        FROM jobs%s
        ORDER BY created_at DESC
        LIMIT $%d
    `, jobColumns, whereClause, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

func scanJobs(rows pgx.Rows) ([]entity.Job, error) {
	var jobs []entity.Job
	for rows.Next() {
		var (
			job      entity.Job
			username sql.NullString
			status   sql.NullString
			result   sql.NullString
		)

		err := rows.Scan(
			&job.ID,
			&username,
			&job.Phone,
			&status,
			&result,
			&job.CreatedAt,
			&job.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}

		job.Username = nullStringToPtr(username)
		job.Status = nullStringToPtr(status)
		job.Result = nullStringToPtr(result)

		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid {
		val := value.String
		return &val
	}
	return nil
}
