package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sbrlabs/lookup-dashboard/api/internal/dto"
	"github.com/sbrlabs/lookup-dashboard/api/internal/entity"
	"github.com/sbrlabs/lookup-dashboard/api/internal/repository"
	"github.com/sbrlabs/lookup-dashboard/api/internal/service/locate"
)

// recentJobsLimit bounds the recent-activity table on the dashboard.
const recentJobsLimit = 10

// StatsService assembles the dashboard snapshot from the aggregate queries.
type StatsService struct {
	jobs repository.JobsRepository
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(jobs repository.JobsRepository) *StatsService {
	return &StatsService{jobs: jobs}
}

// Snapshot runs the five dashboard reads and composes the response. The reads
// are independent, so they run concurrently; if any of them fails the whole
// snapshot fails rather than returning partial numbers. Nothing is cached:
// every call recomputes from the store.
func (s *StatsService) Snapshot(ctx context.Context, filter dto.StatsFilter) (*dto.StatsSnapshot, error) {
	var (
		totals       dto.StatsTotals
		statusCounts []dto.StatusCount
		recent       []entity.Job
		locationRows []dto.LocationRow
		users        []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.jobs.StatsTotals(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		statusCounts, err = s.jobs.StatusGroupCounts(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.jobs.RecentJobs(gctx, filter, recentJobsLimit)
		return err
	})
	g.Go(func() error {
		var err error
		locationRows, err = s.jobs.LocationRows(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.jobs.DistinctUsernames(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &dto.StatsSnapshot{
		TotalRequests:  totals.TotalRequests,
		TodayRequests:  totals.TodayRequests,
		DistinctPhones: totals.DistinctPhones,
		AvgSeconds:     totals.AvgSeconds,
		StatusCounts:   statusCounts,
		RecentJobs:     recent,
		Locations:      extractLocations(locationRows),
		Users:          users,
	}

	if snapshot.StatusCounts == nil {
		snapshot.StatusCounts = []dto.StatusCount{}
	}
	if snapshot.RecentJobs == nil {
		snapshot.RecentJobs = []entity.Job{}
	}
	if snapshot.Users == nil {
		snapshot.Users = []string{}
	}

	return snapshot, nil
}

// extractLocations applies the strict extractor to the candidate payloads.
// Rows whose payload does not match the canonical shape are silently dropped.
func extractLocations(rows []dto.LocationRow) []dto.Location {
	locations := make([]dto.Location, 0, len(rows))
	for _, row := range rows {
		point, ok := locate.ExtractStrict(row.Result)
		if !ok {
			continue
		}
		locations = append(locations, dto.Location{
			Lat:       point.Lat,
			Lng:       point.Lng,
			Phone:     row.Phone,
			CreatedAt: row.CreatedAt,
		})
	}
	return locations
}
