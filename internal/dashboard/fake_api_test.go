package dashboard

import (
	"context"
	"net/url"
	"sync"

	"github.com/Eursukkul/events-dashboard/internal/models"
)

// --- Fake EventAPI ---

type fakeAPI struct {
	mu sync.Mutex

	listFn    func(ctx context.Context, query url.Values) ([]models.Event, error)
	createFn  func(ctx context.Context, ev models.NewEvent) (*models.Event, error)
	updateFn  func(ctx context.Context, ev models.Event) (*models.Event, error)
	deleteFn  func(ctx context.Context, id int64) error
	refreshFn func(ctx context.Context, site string) error

	listQueries []url.Values
	created     []models.NewEvent
	updated     []models.Event
	deleted     []int64
	refreshed   []string
}

func (f *fakeAPI) ListEvents(ctx context.Context, query url.Values) ([]models.Event, error) {
	f.mu.Lock()
	f.listQueries = append(f.listQueries, query)
	f.mu.Unlock()
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, query)
}

func (f *fakeAPI) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	return &models.Event{ID: id}, nil
}

func (f *fakeAPI) CreateEvent(ctx context.Context, ev models.NewEvent) (*models.Event, error) {
	f.mu.Lock()
	f.created = append(f.created, ev)
	f.mu.Unlock()
	if f.createFn == nil {
		return &models.Event{ID: 100, Title: ev.Title}, nil
	}
	return f.createFn(ctx, ev)
}

func (f *fakeAPI) UpdateEvent(ctx context.Context, ev models.Event) (*models.Event, error) {
	f.mu.Lock()
	f.updated = append(f.updated, ev)
	f.mu.Unlock()
	if f.updateFn == nil {
		return &ev, nil
	}
	return f.updateFn(ctx, ev)
}

func (f *fakeAPI) DeleteEvent(ctx context.Context, id int64) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, id)
	f.mu.Unlock()
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeAPI) RefreshSite(ctx context.Context, site string) error {
	f.mu.Lock()
	f.refreshed = append(f.refreshed, site)
	f.mu.Unlock()
	if f.refreshFn == nil {
		return nil
	}
	return f.refreshFn(ctx, site)
}

func (f *fakeAPI) listCalls() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.listQueries...)
}

func strPtr(s string) *string { return &s }

func idPtr(id int64) *int64 { return &id }
