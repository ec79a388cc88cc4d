package models

import "time"

// RefreshRun records one forwarded ingestion call.
type RefreshRun struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	Websites   []string  `gorm:"serializer:json;not null" json:"websites"`
	StatusCode int       `json:"status_code"`
	Succeeded  bool      `gorm:"not null" json:"succeeded"`
	Error      string    `json:"error,omitempty"`
	EventCount int       `json:"event_count"`
	StartedAt  time.Time `gorm:"not null;index" json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
