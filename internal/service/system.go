package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sbrlabs/lookup-dashboard/api/internal/dto"
	"github.com/sbrlabs/lookup-dashboard/api/internal/entity"
	"github.com/sbrlabs/lookup-dashboard/api/internal/repository"
)

const (
	defaultLogsLimit = 200
	maxLogsLimit     = 1000
)

// SystemService backs the overview, logs and health endpoints.
type SystemService struct {
	system repository.SystemRepository
	logs   repository.LogsRepository
}

// NewSystemService creates a new instance of SystemService.
func NewSystemService(system repository.SystemRepository, logs repository.LogsRepository) *SystemService {
	return &SystemService{system: system, logs: logs}
}

// Overview returns the landing-page summary. The two reads are independent
// and run concurrently; either failing fails the overview.
func (s *SystemService) Overview(ctx context.Context) (*dto.Overview, error) {
	var overview dto.Overview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.system.CountJobs(gctx)
		if err != nil {
			return err
		}
		overview.TotalJobs = total
		return nil
	})
	g.Go(func() error {
		last, err := s.logs.LastLogAt(gctx)
		if err != nil {
			return err
		}
		overview.LastLogAt = last
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &overview, nil
}

// Logs returns recent worker log lines, optionally restricted to one type.
func (s *SystemService) Logs(ctx context.Context, logType string, limit int) ([]entity.LogEntry, error) {
	if limit <= 0 {
		limit = defaultLogsLimit
	}
	if limit > maxLogsLimit {
		limit = maxLogsLimit
	}

	entries, err := s.logs.List(ctx, logType, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []entity.LogEntry{}
	}
	return entries, nil
}

// Health verifies the store is reachable and returns its clock.
func (s *SystemService) Health(ctx context.Context) (time.Time, error) {
	return s.system.Now(ctx)
}
