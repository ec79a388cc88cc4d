package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Eursukkul/events-dashboard/pkg/backend"
)

var (
	ErrNoEventSelected = errors.New("no event selected")
	ErrUnknownField    = errors.New("unknown field")
	ErrReadOnlyField   = errors.New("field is read-only")
	ErrUnknownColor    = errors.New("color is not in the palette")
)

// APIError is a non-2xx reply from the proxy.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// messageKeys are tried in order when pulling a readable message out of an
// error body.
var messageKeys = []string{"detail", "message", "error"}

func newAPIError(res *backend.Response) *APIError {
	msg := res.Text()

	var body map[string]json.RawMessage
	if err := json.Unmarshal(res.Body, &body); err == nil {
		for _, key := range messageKeys {
			raw, ok := body[key]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				if s != "" {
					msg = s
				}
			} else {
				msg = string(raw)
			}
			break
		}
	}

	return &APIError{StatusCode: res.StatusCode, Message: msg}
}

// ValidationError is returned by the create form before any request is made.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "please fill in all required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}
