package entity

import (
	"time"

	"github.com/google/uuid"
)

// Job represents a single phone-lookup request recorded by the worker fleet.
// Rows are produced elsewhere; this service only reads them.
type Job struct {
	ID        uuid.UUID `json:"id"`
	Username  *string   `json:"username"`
	Phone     string    `json:"phone"`
	Status    *string   `json:"status"`
	Result    *string   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LogEntry is a single worker log line attached to a job.
type LogEntry struct {
	JobID     uuid.UUID `json:"job_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
