package dto

import "encoding/json"

// RefreshRequest asks the backend to re-scrape the listed source sites.
type RefreshRequest struct {
	Websites []string `json:"websites" validate:"required,min=1,dive,required"`
}

type DeleteEventRequest struct {
	ID json.RawMessage `json:"id"`
}
