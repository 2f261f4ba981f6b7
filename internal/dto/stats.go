package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/sbrlabs/lookup-dashboard/api/internal/entity"
)

// StatsFilter narrows the job set used by the dashboard aggregates.
// An empty or "all" username means no user restriction. StartDate is an
// inclusive calendar date; EndDate is exclusive at end-of-day (a job stamped
// anywhere on EndDate still matches, one at EndDate+1 day does not).
type StatsFilter struct {
	Username  string
	StartDate *time.Time
	EndDate   *time.Time
}

// HasUsername reports whether the filter restricts by user.
func (f StatsFilter) HasUsername() bool {
	return f.Username != "" && f.Username != "all"
}

// StatsTotals carries the scalar aggregates of the stats endpoint.
type StatsTotals struct {
	TotalRequests  int
	TodayRequests  int
	DistinctPhones int
	AvgSeconds     float64
}

// StatusCount is one bucket of the status distribution.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Location is a map point extracted from a job result payload.
type Location struct {
	Lat       float64    `json:"lat"`
	Lng       float64    `json:"lng"`
	Phone     string     `json:"phone"`
	CreatedAt time.Time  `json:"created_at"`
	JobID     *uuid.UUID `json:"jobId,omitempty"`
}

// LocationRow is the raw material for location extraction: the result payload
// plus the identifying columns carried through to the map point.
type LocationRow struct {
	Result    string
	Phone     string
	CreatedAt time.Time
}

// StatsSnapshot is the assembled dashboard response. It is recomputed on every
// request and never cached.
type StatsSnapshot struct {
	TotalRequests  int           `json:"total_req"`
	TodayRequests  int           `json:"today_req"`
	DistinctPhones int           `json:"total_numbers"`
	AvgSeconds     float64       `json:"avg_time"`
	StatusCounts   []StatusCount `json:"status_counts"`
	RecentJobs     []entity.Job  `json:"recent_jobs"`
	Locations      []Location    `json:"locations"`
	Users          []string      `json:"users"`
}
