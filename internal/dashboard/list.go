package dashboard

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/Eursukkul/events-dashboard/internal/models"
)

type TimeFilter string

const (
	AllEvents      TimeFilter = "all-events"
	UpcomingEvents TimeFilter = "upcoming-events"
	PastEvents     TimeFilter = "past-events"
)

// queryTimeLayout matches what a browser's Date.toISOString produces.
const queryTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Filters struct {
	SortBy    string
	SortOrder string
	Market    string
	Industry  string
	Organizer string
	Time      TimeFilter
}

func DefaultFilters() Filters {
	return Filters{
		SortBy:    "start_datetime",
		SortOrder: "asc",
		Market:    AllValues,
		Industry:  AllValues,
		Organizer: AllValues,
		Time:      AllEvents,
	}
}

// Validate rejects sort keys and time modes the list does not offer. Market,
// industry and organizer are free text.
func (f Filters) Validate() error {
	if !hasOption(SortFields, f.SortBy) {
		return fmt.Errorf("unknown sort field %q", f.SortBy)
	}
	if !hasOption(SortOrders, f.SortOrder) {
		return fmt.Errorf("unknown sort order %q", f.SortOrder)
	}
	if !hasOption(TimeFilters, string(f.Time)) {
		return fmt.Errorf("unknown time filter %q", f.Time)
	}
	return nil
}

type Row struct {
	Event    models.Event
	Color    string
	Selected bool
}

type ListOption func(*ListView)

func WithClock(now func() time.Time) ListOption {
	return func(l *ListView) { l.now = now }
}

func WithDebounce(d time.Duration) ListOption {
	return func(l *ListView) { l.debounceDelay = d }
}

// WithFilters and WithSearch set the state used by the first load.
func WithFilters(f Filters) ListOption {
	return func(l *ListView) { l.filters = f }
}

func WithSearch(term string) ListOption {
	return func(l *ListView) {
		l.search = term
		l.pendingSearch = term
	}
}

// ListView holds the event table state. Any change to the filters, the
// debounced search term or the refresh trigger reloads the list.
type ListView struct {
	api      EventAPI
	onSelect func(*models.Event)
	now      func() time.Time

	debounceDelay time.Duration
	debouncer     *Debouncer

	mu             sync.Mutex
	filters        Filters
	pendingSearch  string
	search         string
	refreshTrigger int
	selectedID     *int64
	events         []models.Event
	latestCreated  time.Time
	generation     uint64
	loading        bool
	err            error
}

// NewListView builds a list over api. onSelect receives every selection the
// list makes, including the automatic one after each load; nil means the
// result set is empty.
func NewListView(api EventAPI, onSelect func(*models.Event), opts ...ListOption) *ListView {
	l := &ListView{
		api:           api,
		onSelect:      onSelect,
		now:           time.Now,
		debounceDelay: DefaultDebounce,
		filters:       DefaultFilters(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.debouncer = NewDebouncer(l.debounceDelay, l.applySearch)
	return l
}

// SetSearchTerm lets a search box outside the list push a term in. The list
// reloads once typing pauses.
func (l *ListView) SetSearchTerm(term string) {
	l.mu.Lock()
	l.pendingSearch = term
	l.mu.Unlock()

	l.debouncer.Trigger()
}

func (l *ListView) applySearch() {
	l.mu.Lock()
	if l.pendingSearch == l.search {
		l.mu.Unlock()
		return
	}
	l.search = l.pendingSearch
	l.mu.Unlock()

	if err := l.Load(context.Background()); err != nil {
		log.Printf("[ListView] reload after search: %v", err)
	}
}

func (l *ListView) SetFilters(ctx context.Context, f Filters) error {
	return l.update(ctx, func(cur *Filters) { *cur = f })
}

func (l *ListView) SetSort(ctx context.Context, field, order string) error {
	return l.update(ctx, func(f *Filters) {
		f.SortBy = field
		f.SortOrder = order
	})
}

func (l *ListView) SetMarket(ctx context.Context, market string) error {
	return l.update(ctx, func(f *Filters) { f.Market = market })
}

func (l *ListView) SetIndustry(ctx context.Context, industry string) error {
	return l.update(ctx, func(f *Filters) { f.Industry = industry })
}

func (l *ListView) SetOrganizer(ctx context.Context, organizer string) error {
	return l.update(ctx, func(f *Filters) { f.Organizer = organizer })
}

func (l *ListView) SetTimeFilter(ctx context.Context, mode TimeFilter) error {
	return l.update(ctx, func(f *Filters) { f.Time = mode })
}

// SetRefreshTrigger reloads when n differs from the last value seen.
func (l *ListView) SetRefreshTrigger(ctx context.Context, n int) error {
	l.mu.Lock()
	if n == l.refreshTrigger {
		l.mu.Unlock()
		return nil
	}
	l.refreshTrigger = n
	l.mu.Unlock()

	return l.Load(ctx)
}

// SetSelectedID moves the highlight without reloading.
func (l *ListView) SetSelectedID(id *int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selectedID = copyID(id)
}

// Select marks the loaded event with the given id as selected and reports it
// through onSelect. It returns false if the id is not in the current list.
func (l *ListView) Select(id int64) bool {
	l.mu.Lock()
	var picked *models.Event
	for i := range l.events {
		if l.events[i].ID == id {
			ev := l.events[i]
			picked = &ev
			break
		}
	}
	if picked != nil {
		l.selectedID = &picked.ID
	}
	l.mu.Unlock()

	if picked == nil {
		return false
	}
	l.notify(picked)
	return true
}

func (l *ListView) update(ctx context.Context, change func(*Filters)) error {
	l.mu.Lock()
	next := l.filters
	change(&next)
	if next == l.filters {
		l.mu.Unlock()
		return nil
	}
	l.filters = next
	l.mu.Unlock()

	return l.Load(ctx)
}

// Load fetches the list for the current state. A response that arrives after
// a newer Load has started is dropped.
func (l *ListView) Load(ctx context.Context) error {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	query := l.queryLocked()
	l.loading = true
	l.mu.Unlock()

	events, err := l.api.ListEvents(ctx, query)

	l.mu.Lock()
	if gen != l.generation {
		l.mu.Unlock()
		return nil
	}
	l.loading = false
	if err != nil {
		l.err = fmt.Errorf("load events: %w", err)
		l.mu.Unlock()
		return l.err
	}

	l.err = nil
	l.events = events
	l.latestCreated = latestCreatedAt(events)

	var picked *models.Event
	if len(events) > 0 {
		picked = &events[0]
		if l.selectedID != nil {
			for i := range events {
				if events[i].ID == *l.selectedID {
					picked = &events[i]
					break
				}
			}
		}
		ev := *picked
		picked = &ev
		l.selectedID = &picked.ID
	} else {
		l.selectedID = nil
	}
	l.mu.Unlock()

	l.notify(picked)
	return nil
}

func (l *ListView) notify(ev *models.Event) {
	if l.onSelect != nil {
		l.onSelect(ev)
	}
}

func (l *ListView) queryLocked() url.Values {
	q := url.Values{}
	if l.search != "" {
		q.Set("search", l.search)
	}
	q.Set("sort_by", l.filters.SortBy)
	q.Set("sort_order", l.filters.SortOrder)
	q.Set("valid", "true")

	if v := l.filters.Market; v != "" && v != AllValues {
		q.Set("market", v)
	}
	if v := l.filters.Industry; v != "" && v != AllValues {
		q.Set("industry", v)
	}
	if v := l.filters.Organizer; v != "" && v != AllValues {
		q.Set("organizer", v)
	}

	switch l.filters.Time {
	case UpcomingEvents:
		q.Set("start_after", l.now().UTC().Format(queryTimeLayout))
	case PastEvents:
		q.Set("start_before", l.now().UTC().Format(queryTimeLayout))
	}
	return q
}

// Rows returns the loaded events in backend order with their colours.
func (l *ListView) Rows() []Row {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rows := make([]Row, len(l.events))
	for i, ev := range l.events {
		rows[i] = Row{
			Event:    ev,
			Color:    RowColor(ev, l.selectedID, l.latestCreated, now),
			Selected: l.selectedID != nil && ev.ID == *l.selectedID,
		}
	}
	return rows
}

func (l *ListView) Events() []models.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Event(nil), l.events...)
}

func (l *ListView) SelectedID() *int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return copyID(l.selectedID)
}

// LatestCreatedAt is the newest created_at in the last successful load.
func (l *ListView) LatestCreatedAt() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latestCreated, !l.latestCreated.IsZero()
}

func (l *ListView) Filters() Filters {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filters
}

// SearchTerm is the debounced term used by the last query.
func (l *ListView) SearchTerm() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.search
}

func (l *ListView) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err is the error from the last load, or nil if it succeeded.
func (l *ListView) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *ListView) Close() {
	l.debouncer.Stop()
}

func latestCreatedAt(events []models.Event) time.Time {
	var latest time.Time
	for _, ev := range events {
		if t, ok := ev.Created(); ok && t.After(latest) {
			latest = t
		}
	}
	return latest
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
