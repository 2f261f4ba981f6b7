package service

import (
	"context"
	"strings"

	"github.com/sbrlabs/lookup-dashboard/api/internal/entity"
	"github.com/sbrlabs/lookup-dashboard/api/internal/repository"
)

const (
	defaultJobsLimit = 100
	maxJobsLimit     = 1000
)

// JobsService lists recent jobs for the activity table.
type JobsService struct {
	jobs repository.JobsRepository
}

// NewJobsService creates a new instance of JobsService.
func NewJobsService(jobs repository.JobsRepository) *JobsService {
	return &JobsService{jobs: jobs}
}

// Recent returns the most recent jobs, optionally filtered by exact phone,
// applying the default and maximum limits. The phone is matched verbatim:
// stored numbers are not guaranteed to be in any canonical format.
func (s *JobsService) Recent(ctx context.Context, phone string, limit int) ([]entity.Job, error) {
	if limit <= 0 {
		limit = defaultJobsLimit
	}
	if limit > maxJobsLimit {
		limit = maxJobsLimit
	}

	jobs, err := s.jobs.ListJobs(ctx, strings.TrimSpace(phone), limit)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []entity.Job{}
	}
	return jobs, nil
}
