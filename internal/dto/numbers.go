package dto

import (
	"time"

	"github.com/sbrlabs/lookup-dashboard/api/internal/entity"
)

// NumberProfile is the per-phone aggregate row shown on the numbers page.
// E164 and Region are display metadata filled in when the stored phone parses
// as a valid number; matching always uses the verbatim Phone value.
type NumberProfile struct {
	Phone    string    `json:"phone"`
	Total    int       `json:"total"`
	LastSeen time.Time `json:"last_seen"`
	E164     string    `json:"e164,omitempty"`
	Region   string    `json:"region,omitempty"`
}

// PhoneSummary counts outcomes across one number's history. Success covers
// both the "success" and "completed" statuses.
type PhoneSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Other   int `json:"other"`
}

// ChartSlice is one categorical bucket for the per-number outcome chart.
// Buckets with a zero value are omitted from the breakdown.
type ChartSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PhoneProfile is the drill-down view for a single number: its full history
// plus the aggregates derived from it.
type PhoneProfile struct {
	Phone     string       `json:"phone"`
	Jobs      []entity.Job `json:"jobs"`
	Summary   PhoneSummary `json:"summary"`
	Breakdown []ChartSlice `json:"breakdown"`
	Locations []Location   `json:"locations"`
}

// Overview is the landing-page summary: table size and last worker activity.
type Overview struct {
	TotalJobs int64      `json:"total_jobs"`
	LastLogAt *time.Time `json:"last_log_at"`
}
