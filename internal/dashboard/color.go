package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Eursukkul/events-dashboard/internal/models"
)

const (
	SelectedColor = "#BEE3F8"
	ExpiredColor  = "#777777"
	NewColor      = "#FFA500"
	NoColor       = "transparent"

	rowAlpha  = 0.66
	newWindow = 30 * time.Minute
)

// RowColor picks a row background. In order: the selected row, events that
// have already ended, the event's own colour, events created in the 30
// minutes up to latestCreated. latestCreated is the newest created_at in the
// current result, not the wall clock; zero disables the "new" highlight.
func RowColor(e models.Event, selectedID *int64, latestCreated, now time.Time) string {
	if selectedID != nil && e.ID == *selectedID {
		return withAlpha(SelectedColor, rowAlpha)
	}

	if end, ok := e.End(); ok && end.Before(now) {
		return withAlpha(ExpiredColor, rowAlpha)
	}

	if e.Color != nil && *e.Color != "" {
		return withAlpha(*e.Color, rowAlpha)
	}

	if !latestCreated.IsZero() {
		if created, ok := e.Created(); ok {
			if !created.Before(latestCreated.Add(-newWindow)) && !created.After(latestCreated) {
				return withAlpha(NewColor, rowAlpha)
			}
		}
	}

	return NoColor
}

// withAlpha turns #RRGGBB into an rgba() value. Anything else is returned
// unchanged.
func withAlpha(color string, alpha float64) string {
	if !strings.HasPrefix(color, "#") || len(color) < 7 {
		return color
	}

	var rgb [3]uint64
	for i := range rgb {
		v, err := strconv.ParseUint(color[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return color
		}
		rgb[i] = v
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", rgb[0], rgb[1], rgb[2], strconv.FormatFloat(alpha, 'f', -1, 64))
}
