package service

import (
	"strings"
	"testing"
	"time"

	"github.com/Eursukkul/events-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCalendar(t *testing.T) {
	note := "Bring cards"
	events := []models.Event{
		{
			ID:            3,
			Title:         "Spring Expo",
			EventLink:     "https://example.org/expo",
			StartDatetime: "2026-04-02T18:00:00Z",
			EndDatetime:   "2026-04-02T20:00:00Z",
			Note:          &note,
			Organizer:     "NAIOP",
			Market:        "Tampa",
			Industry:      "Commercial Real Estate",
		},
		{ID: 4, Title: "No start"},
	}

	out, err := EncodeCalendar(events, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	ics := string(out)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "PRODID:-//events-dashboard//EN")
	assert.Contains(t, ics, "UID:event-3@events-dashboard")
	assert.Contains(t, ics, "SUMMARY:Spring Expo")
	assert.Contains(t, ics, "DTSTART:20260402T180000Z")
	assert.Contains(t, ics, "DTEND:20260402T200000Z")
	assert.Contains(t, ics, "URL:https://example.org/expo")
	assert.Contains(t, ics, "DESCRIPTION:Bring cards")
	assert.Contains(t, ics, "X-ORGANIZER-NAME")
	assert.Contains(t, ics, "NAIOP")
	assert.Equal(t, 1, strings.Count(ics, "BEGIN:VEVENT"))
	assert.NotContains(t, ics, "event-4@")
}

func TestEncodeCalendar_NothingToExport(t *testing.T) {
	stamp := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for name, events := range map[string][]models.Event{
		"empty list":    {},
		"no start time": {{ID: 4, Title: "No start"}},
	} {
		t.Run(name, func(t *testing.T) {
			out, err := EncodeCalendar(events, stamp)
			require.NoError(t, err)

			ics := string(out)
			assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
			assert.Contains(t, ics, "VERSION:2.0")
			assert.Contains(t, ics, "PRODID:-//events-dashboard//EN")
			assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
			assert.NotContains(t, ics, "BEGIN:VEVENT")
		})
	}
}
