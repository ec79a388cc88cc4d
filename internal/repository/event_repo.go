package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Eursukkul/events-dashboard/pkg/backend"
)

// EventRepository is the backend events resource. Responses are returned
// raw; a non-nil error means the backend was unreachable.
type EventRepository interface {
	List(ctx context.Context, query url.Values) (*backend.Response, error)
	FindByID(ctx context.Context, id int64) (*backend.Response, error)
	Create(ctx context.Context, body []byte) (*backend.Response, error)
	Update(ctx context.Context, id int64, body []byte) (*backend.Response, error)
	Delete(ctx context.Context, id int64) (*backend.Response, error)
	Ingest(ctx context.Context, body []byte) (*backend.Response, error)
}

type eventRepository struct {
	client *backend.Client
}

func NewEventRepository(client *backend.Client) EventRepository {
	return &eventRepository{client: client}
}

func (r *eventRepository) List(ctx context.Context, query url.Values) (*backend.Response, error) {
	return r.client.Do(ctx, http.MethodGet, "/events", query, nil)
}

func (r *eventRepository) FindByID(ctx context.Context, id int64) (*backend.Response, error) {
	return r.client.Do(ctx, http.MethodGet, eventPath(id), nil, nil)
}

func (r *eventRepository) Create(ctx context.Context, body []byte) (*backend.Response, error) {
	return r.client.Do(ctx, http.MethodPost, "/events/new", nil, body)
}

func (r *eventRepository) Update(ctx context.Context, id int64, body []byte) (*backend.Response, error) {
	return r.client.Do(ctx, http.MethodPut, eventPath(id), nil, body)
}

func (r *eventRepository) Delete(ctx context.Context, id int64) (*backend.Response, error) {
	return r.client.Do(ctx, http.MethodDelete, eventPath(id), nil, nil)
}

// Ingest asks the backend to re-scrape the given sites.
func (r *eventRepository) Ingest(ctx context.Context, body []byte) (*backend.Response, error) {
	return r.client.Do(ctx, http.MethodPost, "/events", nil, body)
}

func eventPath(id int64) string {
	return fmt.Sprintf("/events/%d", id)
}
