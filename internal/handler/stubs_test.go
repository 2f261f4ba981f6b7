package handler

import (
	"context"
	"errors"
	"time"

	"github.com/sbrlabs/lookup-dashboard/api/internal/dto"
	"github.com/sbrlabs/lookup-dashboard/api/internal/entity"
)

var errTest = errors.New("store failure")

// stubJobsRepo satisfies repository.JobsRepository so handlers can be tested
// through real services.
type stubJobsRepo struct {
	totals       dto.StatsTotals
	totalsErr    error
	statusCounts []dto.StatusCount
	recent       []entity.Job
	locationRows []dto.LocationRow
	users        []string
	profiles     []dto.NumberProfile
	profilesErr  error
	byPhone      []entity.Job
	byPhoneErr   error
	listed       []entity.Job
	listErr      error

	lastFilter   dto.StatsFilter
	lastUsername string
	lastPhone    string
	lastLimit    int
}

func (s *stubJobsRepo) StatsTotals(ctx context.Context, filter dto.StatsFilter) (dto.StatsTotals, error) {
	s.lastFilter = filter
	return s.totals, s.totalsErr
}

func (s *stubJobsRepo) StatusGroupCounts(ctx context.Context, filter dto.StatsFilter) ([]dto.StatusCount, error) {
	return s.statusCounts, nil
}

func (s *stubJobsRepo) RecentJobs(ctx context.Context, filter dto.StatsFilter, limit int) ([]entity.Job, error) {
	return s.recent, nil
}

func (s *stubJobsRepo) LocationRows(ctx context.Context, filter dto.StatsFilter) ([]dto.LocationRow, error) {
	return s.locationRows, nil
}

func (s *stubJobsRepo) DistinctUsernames(ctx context.Context) ([]string, error) {
	return s.users, nil
}

func (s *stubJobsRepo) NumberProfiles(ctx context.Context, username string) ([]dto.NumberProfile, error) {
	s.lastUsername = username
	return s.profiles, s.profilesErr
}

func (s *stubJobsRepo) JobsByPhone(ctx context.Context, phone string) ([]entity.Job, error) {
	s.lastPhone = phone
	return s.byPhone, s.byPhoneErr
}

func (s *stubJobsRepo) ListJobs(ctx context.Context, phone string, limit int) ([]entity.Job, error) {
	s.lastPhone = phone
	s.lastLimit = limit
	return s.listed, s.listErr
}

type stubSystemRepo struct {
	now     time.Time
	nowErr  error
	jobs    int64
	jobsErr error
}

func (s *stubSystemRepo) Now(ctx context.Context) (time.Time, error) {
	return s.now, s.nowErr
}

func (s *stubSystemRepo) CountJobs(ctx context.Context) (int64, error) {
	return s.jobs, s.jobsErr
}

type stubLogsRepo struct {
	entries []entity.LogEntry
	listErr error
	last    *time.Time
	lastErr error

	lastType  string
	lastLimit int
}

func (s *stubLogsRepo) List(ctx context.Context, logType string, limit int) ([]entity.LogEntry, error) {
	s.lastType = logType
	s.lastLimit = limit
	return s.entries, s.listErr
}

func (s *stubLogsRepo) LastLogAt(ctx context.Context) (*time.Time, error) {
	return s.last, s.lastErr
}
