package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Eursukkul/events-dashboard/internal/models"
)

// ParseEventID accepts a positive decimal identifier.
func ParseEventID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingEventID
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEventID, s)
	}
	return id, nil
}

// EventIDFromJSON reads an identifier that may arrive as a number or a string.
func EventIDFromJSON(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, ErrMissingEventID
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return ParseEventID(n.String())
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseEventID(s)
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidEventID, raw)
}

// StripImmutable splits an update body into its identifier and the fields
// that may be forwarded. id, created_at and updated_at never survive.
func StripImmutable(body []byte) (int64, []byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return 0, nil, ErrInvalidPayload
	}

	id, err := EventIDFromJSON(fields["id"])
	if err != nil {
		return 0, nil, err
	}

	for _, k := range models.ImmutableFields {
		delete(fields, k)
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal update: %w", err)
	}
	return id, out, nil
}
