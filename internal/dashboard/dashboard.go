package dashboard

import (
	"context"
	"log"
	"sync"

	"github.com/Eursukkul/events-dashboard/internal/models"
)

// Dashboard wires the list, detail and create views together. It owns the
// refresh trigger and the current selection; views talk to each other only
// through the callbacks set up here.
type Dashboard struct {
	api EventAPI

	List   *ListView
	Detail *DetailView
	Create *CreateView

	mu             sync.Mutex
	refreshTrigger int
	selected       *models.Event
}

func New(api EventAPI, opts ...ListOption) *Dashboard {
	d := &Dashboard{api: api}
	d.List = NewListView(api, d.handleSelect, opts...)
	d.Detail = NewDetailView(api, d.handleUpdate, d.handleDelete)
	d.Create = NewCreateView(api, d.handleAdd)
	return d
}

// Start does the first load.
func (d *Dashboard) Start(ctx context.Context) error {
	return d.List.Load(ctx)
}

func (d *Dashboard) Close() {
	d.List.Close()
}

func (d *Dashboard) Search(term string) {
	d.List.SetSearchTerm(term)
}

// SelectEvent selects a row of the current list.
func (d *Dashboard) SelectEvent(id int64) bool {
	return d.List.Select(id)
}

func (d *Dashboard) Selected() *models.Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.selected == nil {
		return nil
	}
	cp := *d.selected
	return &cp
}

func (d *Dashboard) RefreshTrigger() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refreshTrigger
}

// Refresh bumps the trigger so the list reloads with unchanged filters.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.refreshTrigger++
	n := d.refreshTrigger
	d.mu.Unlock()

	return d.List.SetRefreshTrigger(ctx, n)
}

// RefreshSites re-scrapes the chosen site, or every site for "all", and
// reloads the list after each one that succeeds.
func (d *Dashboard) RefreshSites(ctx context.Context, choice string, onRefreshed func(site string)) RefreshReport {
	return RefreshSites(ctx, d.api, SitesFor(choice), func(site string) {
		d.reload(ctx)
		if onRefreshed != nil {
			onRefreshed(site)
		}
	})
}

func (d *Dashboard) handleSelect(ev *models.Event) {
	d.mu.Lock()
	d.selected = ev
	d.mu.Unlock()

	d.Detail.Reset(ev)
}

func (d *Dashboard) handleUpdate(ctx context.Context, _ *models.Event) {
	d.reload(ctx)
}

func (d *Dashboard) handleDelete(ctx context.Context, _ int64) {
	d.mu.Lock()
	d.selected = nil
	d.mu.Unlock()

	d.List.SetSelectedID(nil)
	d.reload(ctx)
}

func (d *Dashboard) handleAdd(ctx context.Context, _ *models.Event) {
	d.reload(ctx)
}

func (d *Dashboard) reload(ctx context.Context) {
	if err := d.Refresh(ctx); err != nil {
		log.Printf("[Dashboard] reload: %v", err)
	}
}
