package dashboard

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/Eursukkul/events-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// store is a tiny in-memory backend behind the fake API.
type store struct {
	mu     sync.Mutex
	events []models.Event
}

func (s *store) list(ctx context.Context, q url.Values) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Event(nil), s.events...), nil
}

func (s *store) remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ev := range s.events {
		if ev.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return &APIError{StatusCode: 404, Message: "Event not found"}
}

func newDashboard(events ...models.Event) (*Dashboard, *fakeAPI) {
	s := &store{events: events}
	api := &fakeAPI{listFn: s.list, deleteFn: s.remove}
	return New(api), api
}

func TestDashboard_StartSelectsFirstAndFillsDetail(t *testing.T) {
	d, _ := newDashboard(models.Event{ID: 1, Title: "A"}, models.Event{ID: 2, Title: "B"})
	defer d.Close()

	require.NoError(t, d.Start(context.Background()))

	require.NotNil(t, d.Selected())
	assert.Equal(t, int64(1), d.Selected().ID)
	form, ok := d.Detail.Form()
	require.True(t, ok)
	assert.Equal(t, "A", form.Title)
}

func TestDashboard_SelectEventResetsDetail(t *testing.T) {
	d, _ := newDashboard(models.Event{ID: 1, Title: "A"}, models.Event{ID: 2, Title: "B"})
	defer d.Close()
	require.NoError(t, d.Start(context.Background()))
	require.NoError(t, d.Detail.SetField("title", "unsaved"))

	require.True(t, d.SelectEvent(2))

	form, _ := d.Detail.Form()
	assert.Equal(t, "B", form.Title)
}

func TestDashboard_DeleteReloadsAndReselects(t *testing.T) {
	d, api := newDashboard(models.Event{ID: 1, Title: "A"}, models.Event{ID: 2, Title: "B"})
	defer d.Close()
	ctx := context.Background()
	require.NoError(t, d.Start(ctx))
	require.True(t, d.SelectEvent(2))

	require.NoError(t, d.Detail.Delete(ctx))

	assert.Equal(t, []int64{2}, api.deleted)
	assert.Equal(t, 1, d.RefreshTrigger())
	assert.Len(t, api.listCalls(), 2)
	require.NotNil(t, d.Selected())
	assert.Equal(t, int64(1), d.Selected().ID)
}

func TestDashboard_DeleteLastEventClearsSelection(t *testing.T) {
	d, _ := newDashboard(models.Event{ID: 1, Title: "A"})
	defer d.Close()
	ctx := context.Background()
	require.NoError(t, d.Start(ctx))

	require.NoError(t, d.Detail.Delete(ctx))

	assert.Nil(t, d.Selected())
	_, ok := d.Detail.Form()
	assert.False(t, ok)
}

func TestDashboard_UpdateAndCreateBumpTrigger(t *testing.T) {
	d, api := newDashboard(models.Event{ID: 1, Title: "A"})
	defer d.Close()
	ctx := context.Background()
	require.NoError(t, d.Start(ctx))

	_, err := d.Detail.Submit(ctx)
	require.NoError(t, err)
	fillRequired(t, d.Create)
	_, err = d.Create.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, d.RefreshTrigger())
	assert.Len(t, api.listCalls(), 3)
}

func TestDashboard_RefreshSitesReloadsPerSite(t *testing.T) {
	d, api := newDashboard(models.Event{ID: 1})
	defer d.Close()
	api.refreshFn = func(ctx context.Context, site string) error {
		if site == "gcbx" {
			return errors.New("timeout")
		}
		return nil
	}

	var done []string
	report := d.RefreshSites(context.Background(), AllValues, func(site string) { done = append(done, site) })

	// Sites is alphabetical; gcbx is the 18th entry.
	assert.Equal(t, "gcbx", report.FailedSite)
	assert.Len(t, report.Refreshed, 17)
	assert.Equal(t, report.Refreshed, done)
	assert.Equal(t, 17, d.RefreshTrigger())
}
