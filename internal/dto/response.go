package dto

import (
	"time"

	"github.com/Eursukkul/events-dashboard/internal/models"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RefreshRunResponse struct {
	ID         string    `json:"id"`
	Websites   []string  `json:"websites"`
	StatusCode int       `json:"status_code"`
	Succeeded  bool      `json:"succeeded"`
	Error      string    `json:"error,omitempty"`
	EventCount int       `json:"event_count"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func ToRefreshRunResponse(r *models.RefreshRun) RefreshRunResponse {
	return RefreshRunResponse{
		ID:         r.ID,
		Websites:   r.Websites,
		StatusCode: r.StatusCode,
		Succeeded:  r.Succeeded,
		Error:      r.Error,
		EventCount: r.EventCount,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}
