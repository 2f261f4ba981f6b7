package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sbrlabs/lookup-dashboard/api/internal/dto"
)

type stubPool struct {
	queryRowFunc func(ctx context.Context, query string, args ...any) pgx.Row
	queryFunc    func(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

func (s *stubPool) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	if s.queryRowFunc != nil {
		return s.queryRowFunc(ctx, query, args...)
	}
	return &stubRow{}
}

func (s *stubPool) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if s.queryFunc != nil {
		return s.queryFunc(ctx, query, args...)
	}
	return nil, errors.New("query not implemented")
}

type stubRow struct {
	scan func(dest ...any) error
}

func (s *stubRow) Scan(dest ...any) error {
	if s.scan != nil {
		return s.scan(dest...)
	}
	return nil
}

// stubRows feeds pre-canned scan callbacks to rows.Next/Scan loops.
type stubRows struct {
	scans []func(dest ...any) error
	index int
}

func (s *stubRows) Close()                                       {}
func (s *stubRows) Err() error                                   { return nil }
func (s *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (s *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (s *stubRows) Next() bool {
	return s.index < len(s.scans)
}

func (s *stubRows) Scan(dest ...any) error {
	if s.index >= len(s.scans) {
		return errors.New("scan called past the end")
	}
	scan := s.scans[s.index]
	s.index++
	return scan(dest...)
}

func (s *stubRows) Values() ([]any, error) { return nil, nil }
func (s *stubRows) RawValues() [][]byte    { return nil }
func (s *stubRows) Conn() *pgx.Conn        { return nil }

func dateUTC(year int, month time.Month, day int) *time.Time {
	ts := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &ts
}

func TestBuildJobFilter_Empty(t *testing.T) {
	where, args := buildJobFilter(dto.StatsFilter{})
	if where != "" || len(args) != 0 {
		t.Fatalf("expected no clause for empty filter, got %q %v", where, args)
	}
}

func TestBuildJobFilter_AllSentinel(t *testing.T) {
	where, args := buildJobFilter(dto.StatsFilter{Username: "all"})
	if where != "" || len(args) != 0 {
		t.Fatalf("expected 'all' to mean no user filter, got %q %v", where, args)
	}
}

func TestBuildJobFilter_Full(t *testing.T) {
	filter := dto.StatsFilter{
		Username:  "trg_user",
		StartDate: dateUTC(2024, time.March, 1),
		EndDate:   dateUTC(2024, time.March, 31),
	}

	where, args := buildJobFilter(filter)
	if where != " WHERE username = $1 AND created_at >= $2 AND created_at < $3" {
		t.Fatalf("unexpected clause: %q", where)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0] != "trg_user" {
		t.Fatalf("expected username arg, got %v", args[0])
	}
	if !args[1].(time.Time).Equal(*dateUTC(2024, time.March, 1)) {
		t.Fatalf("expected inclusive start bound, got %v", args[1])
	}
	// The end bound is exclusive at the start of the following day.
	if !args[2].(time.Time).Equal(*dateUTC(2024, time.April, 1)) {
		t.Fatalf("expected end bound pushed to the next day, got %v", args[2])
	}
}

func TestStatsTotals(t *testing.T) {
	fixedNow := time.Date(2024, time.March, 15, 17, 30, 0, 0, time.UTC)

	var gotQuery string
	var gotArgs []any
	repo := &PGXJobsRepository{
		pool: &stubPool{
			queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
				gotQuery = query
				gotArgs = args
				return &stubRow{scan: func(dest ...any) error {
					*dest[0].(*int64) = 42
					*dest[1].(*int64) = 7
					*dest[2].(*int64) = 12
					*dest[3].(*float64) = 3.5
					return nil
				}}
			},
		},
		now: func() time.Time { return fixedNow },
	}

	totals, err := repo.StatsTotals(context.Background(), dto.StatsFilter{Username: "trg_user"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.TotalRequests != 42 || totals.TodayRequests != 7 || totals.DistinctPhones != 12 || totals.AvgSeconds != 3.5 {
		t.Fatalf("unexpected totals: %+v", totals)
	}

	if !strings.Contains(gotQuery, "COUNT(DISTINCT phone)") {
		t.Fatalf("expected distinct phone count in query: %s", gotQuery)
	}
	if !strings.Contains(gotQuery, "status IN ('success', 'completed')") {
		t.Fatalf("expected completion filter in query: %s", gotQuery)
	}
	if len(gotArgs) != 2 {
		t.Fatalf("expected username + today args, got %v", gotArgs)
	}
	today := gotArgs[1].(time.Time)
	if !today.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected midnight UTC today bound, got %v", today)
	}
}

func TestStatusGroupCounts_NullStatusIsUnknown(t *testing.T) {
	repo := &PGXJobsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			if !strings.Contains(query, "'no_data'") {
				t.Fatalf("expected status grouping case in query: %s", query)
			}
			return &stubRows{scans: []func(dest ...any) error{
				func(dest ...any) error {
					*dest[0].(*sql.NullString) = sql.NullString{String: "success", Valid: true}
					*dest[1].(*int64) = 3
					return nil
				},
				func(dest ...any) error {
					*dest[0].(*sql.NullString) = sql.NullString{}
					*dest[1].(*int64) = 2
					return nil
				},
			}}, nil
		},
	}}

	counts, err := repo.StatusGroupCounts(context.Background(), dto.StatsFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(counts))
	}
	if counts[0].Status != "success" || counts[0].Count != 3 {
		t.Fatalf("unexpected first group: %+v", counts[0])
	}
	if counts[1].Status != "Unknown" || counts[1].Count != 2 {
		t.Fatalf("expected null status to map to Unknown, got %+v", counts[1])
	}
}

func TestLocationRows_MergesFilterWithCandidateConditions(t *testing.T) {
	var gotQuery string
	var gotArgs []any
	repo := &PGXJobsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			gotQuery = query
			gotArgs = args
			return &stubRows{}, nil
		},
	}}

	if _, err := repo.LocationRows(context.Background(), dto.StatsFilter{Username: "trg_user"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotQuery, "WHERE username = $1 AND (status = 'success' OR status = 'completed')") {
		t.Fatalf("expected merged where clause: %s", gotQuery)
	}
	if !strings.Contains(gotQuery, `result LIKE '%"latitude":%'`) {
		t.Fatalf("expected latitude pre-filter: %s", gotQuery)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "trg_user" {
		t.Fatalf("unexpected args: %v", gotArgs)
	}

	// Without a filter the candidate conditions form the whole clause.
	if _, err := repo.LocationRows(context.Background(), dto.StatsFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotQuery, "WHERE (status = 'success' OR status = 'completed')") {
		t.Fatalf("expected standalone where clause: %s", gotQuery)
	}
}

func TestNumberProfiles(t *testing.T) {
	lastSeen := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	var gotQuery string
	var gotArgs []any
	repo := &PGXJobsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			gotQuery = query
			gotArgs = args
			return &stubRows{scans: []func(dest ...any) error{
				func(dest ...any) error {
					*dest[0].(*string) = "+628123456789"
					*dest[1].(*int) = 14
					*dest[2].(*time.Time) = lastSeen
					return nil
				},
			}}, nil
		},
	}}

	profiles, err := repo.NumberProfiles(context.Background(), "trg_user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].Phone != "+628123456789" || profiles[0].Total != 14 || !profiles[0].LastSeen.Equal(lastSeen) {
		t.Fatalf("unexpected profile: %+v", profiles[0])
	}

	if !strings.Contains(gotQuery, "GROUP BY phone") || !strings.Contains(gotQuery, "ORDER BY total DESC") {
		t.Fatalf("expected group-by query: %s", gotQuery)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "trg_user" || gotArgs[1] != maxNumberProfiles {
		t.Fatalf("expected username + cap args, got %v", gotArgs)
	}

	// The "all" sentinel drops the user clause but keeps the cap.
	if _, err := repo.NumberProfiles(context.Background(), "all"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(gotQuery, "username") {
		t.Fatalf("expected no username clause: %s", gotQuery)
	}
	if len(gotArgs) != 1 || gotArgs[0] != maxNumberProfiles {
		t.Fatalf("expected cap arg only, got %v", gotArgs)
	}
}

func TestListJobs_PhoneClauseAndLimit(t *testing.T) {
	var gotQuery string
	var gotArgs []any
	repo := &PGXJobsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			gotQuery = query
			gotArgs = args
			return &stubRows{}, nil
		},
	}}

	if _, err := repo.ListJobs(context.Background(), "+628123456789", 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotQuery, "WHERE phone = $1") || !strings.Contains(gotQuery, "LIMIT $2") {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "+628123456789" || gotArgs[1] != 50 {
		t.Fatalf("unexpected args: %v", gotArgs)
	}
}

func TestScanJobs(t *testing.T) {
	id := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	created := time.Now()

	rows := &stubRows{scans: []func(dest ...any) error{
		func(dest ...any) error {
			*dest[0].(*uuid.UUID) = id
			*dest[1].(*sql.NullString) = sql.NullString{String: "trg_user", Valid: true}
			*dest[2].(*string) = "+628123456789"
			*dest[3].(*sql.NullString) = sql.NullString{String: "success", Valid: true}
			*dest[4].(*sql.NullString) = sql.NullString{String: `{"data":{}}`, Valid: true}
			*dest[5].(*time.Time) = created
			*dest[6].(*time.Time) = created
			return nil
		},
		func(dest ...any) error {
			*dest[0].(*uuid.UUID) = id
			*dest[1].(*sql.NullString) = sql.NullString{}
			*dest[2].(*string) = "+628123456789"
			*dest[3].(*sql.NullString) = sql.NullString{}
			*dest[4].(*sql.NullString) = sql.NullString{}
			*dest[5].(*time.Time) = created
			*dest[6].(*time.Time) = created
			return nil
		},
	}}

	jobs, err := scanJobs(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Username == nil || *jobs[0].Username != "trg_user" {
		t.Fatalf("expected username set, got %+v", jobs[0])
	}
	if jobs[0].Status == nil || *jobs[0].Status != "success" {
		t.Fatalf("expected status set, got %+v", jobs[0])
	}
	if jobs[1].Username != nil || jobs[1].Status != nil || jobs[1].Result != nil {
		t.Fatalf("expected null columns to stay nil, got %+v", jobs[1])
	}
}

func TestStatsTotals_QueryError(t *testing.T) {
	repo := &PGXJobsRepository{
		pool: &stubPool{
			queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
				return &stubRow{scan: func(dest ...any) error { return errors.New("boom") }}
			},
		},
		now: time.Now,
	}

	if _, err := repo.StatsTotals(context.Background(), dto.StatsFilter{}); err == nil {
		t.Fatalf("expected error to propagate")
	}
}
