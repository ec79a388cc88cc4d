package models

import (
	"fmt"
	"strings"
	"time"
)

// Event mirrors the backend's event record. Timestamps stay in the backend's
// textual form so the proxy and the edit form can round-trip them untouched.
type Event struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	EventLink     string  `json:"event_link"`
	StartDatetime string  `json:"start_datetime"`
	EndDatetime   string  `json:"end_datetime"`
	Note          *string `json:"note"`
	Valid         bool    `json:"valid"`
	Color         *string `json:"color"`
	Organizer     string  `json:"organizer"`
	Market        string  `json:"market"`
	Industry      string  `json:"industry"`
	Attending     *string `json:"attending"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func (e Event) Start() (time.Time, bool)   { return parseOptional(e.StartDatetime) }
func (e Event) End() (time.Time, bool)     { return parseOptional(e.EndDatetime) }
func (e Event) Created() (time.Time, bool) { return parseOptional(e.CreatedAt) }

// NewEvent is the payload of the create form. The backend assigns id and
// timestamps.
type NewEvent struct {
	Title         string  `json:"title" validate:"required"`
	EventLink     string  `json:"event_link" validate:"required"`
	StartDatetime string  `json:"start_datetime" validate:"required"`
	EndDatetime   string  `json:"end_datetime" validate:"required"`
	Valid         bool    `json:"valid"`
	Color         *string `json:"color" validate:"omitempty,palette"`
	Note          string  `json:"note"`
	Organizer     string  `json:"organizer" validate:"required"`
	Market        string  `json:"market" validate:"required"`
	Industry      string  `json:"industry" validate:"required"`
	Attending     string  `json:"attending"`
}

// Fields the client may never send on update.
var ImmutableFields = []string{"id", "created_at", "updated_at"}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseTimestamp accepts RFC 3339 as well as the naive ISO-8601 forms the
// backend emits. Naive values are read as local time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func parseOptional(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
