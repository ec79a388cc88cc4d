package dashboard

import (
	"context"
	"sync"

	"github.com/Eursukkul/events-dashboard/internal/models"
)

// DetailView is the edit form for one event. It holds a copy of the record,
// never the list's own value. Blank fields are sent as blank; the backend
// does the required-field checks on update.
type DetailView struct {
	api      EventAPI
	onUpdate func(ctx context.Context, ev *models.Event)
	onDelete func(ctx context.Context, id int64)

	mu   sync.Mutex
	form *models.Event
}

func NewDetailView(api EventAPI, onUpdate func(context.Context, *models.Event), onDelete func(context.Context, int64)) *DetailView {
	return &DetailView{api: api, onUpdate: onUpdate, onDelete: onDelete}
}

// Reset loads ev into the form, discarding unsaved edits. nil empties it.
func (d *DetailView) Reset(ev *models.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ev == nil {
		d.form = nil
		return
	}
	cp := *ev
	d.form = &cp
}

func (d *DetailView) Form() (models.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.form == nil {
		return models.Event{}, false
	}
	return *d.form, true
}

// SetField edits one field, addressed by its JSON name.
func (d *DetailView) SetField(name, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.form == nil {
		return ErrNoEventSelected
	}

	f := d.form
	switch name {
	case "title":
		f.Title = value
	case "event_link":
		f.EventLink = value
	case "start_datetime":
		f.StartDatetime = value
	case "end_datetime":
		f.EndDatetime = value
	case "organizer":
		f.Organizer = value
	case "market":
		f.Market = value
	case "industry":
		f.Industry = value
	case "note":
		f.Note = &value
	case "attending":
		f.Attending = &value
	case "color":
		c, err := parseColor(value)
		if err != nil {
			return err
		}
		f.Color = c
	case "valid":
		b, err := parseValid(value)
		if err != nil {
			return err
		}
		f.Valid = b
	default:
		return unknownField(name)
	}
	return nil
}

// Submit sends the whole form as a full update.
func (d *DetailView) Submit(ctx context.Context) (*models.Event, error) {
	form, ok := d.Form()
	if !ok {
		return nil, ErrNoEventSelected
	}

	updated, err := d.api.UpdateEvent(ctx, form)
	if err != nil {
		return nil, err
	}

	if d.onUpdate != nil {
		d.onUpdate(ctx, updated)
	}
	return updated, nil
}

// Delete removes the event and clears the form.
func (d *DetailView) Delete(ctx context.Context) error {
	form, ok := d.Form()
	if !ok {
		return ErrNoEventSelected
	}

	if err := d.api.DeleteEvent(ctx, form.ID); err != nil {
		return err
	}

	d.Reset(nil)
	if d.onDelete != nil {
		d.onDelete(ctx, form.ID)
	}
	return nil
}
