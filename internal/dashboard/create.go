package dashboard

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/Eursukkul/events-dashboard/internal/models"
	"github.com/go-playground/validator"
)

// CreateView is the new-event form. Required fields are checked locally and
// nothing is sent until they are all filled in.
type CreateView struct {
	api      EventAPI
	onAdd    func(ctx context.Context, ev *models.Event)
	validate *validator.Validate

	mu   sync.Mutex
	form models.NewEvent
}

func NewCreateView(api EventAPI, onAdd func(context.Context, *models.Event)) *CreateView {
	return &CreateView{
		api:      api,
		onAdd:    onAdd,
		validate: newFormValidator(),
		form:     blankNewEvent(),
	}
}

func blankNewEvent() models.NewEvent {
	return models.NewEvent{Valid: true}
}

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("palette", func(fl validator.FieldLevel) bool {
		return models.IsPaletteColor(fl.Field().String())
	})
	return v
}

func (v *CreateView) Form() models.NewEvent {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *CreateView) SetField(name, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	f := &v.form
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
		f.Note = value
	case "attending":
		f.Attending = value
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

// Check reports the fields that block submission.
func (v *CreateView) Check() error {
	return v.check(v.Form())
}

func (v *CreateView) check(form models.NewEvent) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			verr.Missing = append(verr.Missing, fe.Field())
		} else {
			verr.Invalid = append(verr.Invalid, fe.Field())
		}
	}
	return verr
}

// Submit creates the event. On success the form goes back to blank defaults
// and onAdd is called.
func (v *CreateView) Submit(ctx context.Context) (*models.Event, error) {
	form := v.Form()
	if err := v.check(form); err != nil {
		return nil, err
	}

	created, err := v.api.CreateEvent(ctx, form)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.form = blankNewEvent()
	v.mu.Unlock()

	if v.onAdd != nil {
		v.onAdd(ctx, created)
	}
	return created, nil
}
