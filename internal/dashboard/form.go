package dashboard

import (
	"fmt"
	"strconv"

	"github.com/Eursukkul/events-dashboard/internal/models"
)

// parseColor maps a form value to a colour token. Blank means no colour.
func parseColor(value string) (*string, error) {
	if value == "" {
		return nil, nil
	}
	if !models.IsPaletteColor(value) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, value)
	}
	return &value, nil
}

func parseValid(value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("valid must be true or false, got %q", value)
	}
	return b, nil
}

func isImmutable(name string) bool {
	for _, f := range models.ImmutableFields {
		if f == name {
			return true
		}
	}
	return false
}

func unknownField(name string) error {
	if isImmutable(name) {
		return fmt.Errorf("%w: %s", ErrReadOnlyField, name)
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, name)
}
