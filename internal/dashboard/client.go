package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Eursukkul/events-dashboard/internal/dto"
	"github.com/Eursukkul/events-dashboard/internal/models"
	"github.com/Eursukkul/events-dashboard/pkg/backend"
)

// EventAPI is the proxy surface the views depend on.
type EventAPI interface {
	ListEvents(ctx context.Context, query url.Values) ([]models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	CreateEvent(ctx context.Context, ev models.NewEvent) (*models.Event, error)
	UpdateEvent(ctx context.Context, ev models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	RefreshSite(ctx context.Context, site string) error
}

// Client calls the dashboard proxy over HTTP.
type Client struct {
	http *backend.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{http: backend.NewClient(baseURL, timeout)}
}

func (c *Client) ListEvents(ctx context.Context, query url.Values) ([]models.Event, error) {
	res, err := c.http.Do(ctx, http.MethodGet, "/api/events", query, nil)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	if err := decode(res, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	res, err := c.http.Do(ctx, http.MethodGet, "/api/events/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return nil, err
	}

	var ev models.Event
	if err := decode(res, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *Client) CreateEvent(ctx context.Context, ev models.NewEvent) (*models.Event, error) {
	return c.send(ctx, http.MethodPost, "/api/events/new", ev)
}

// UpdateEvent sends the whole record. The proxy drops the immutable fields.
func (c *Client) UpdateEvent(ctx context.Context, ev models.Event) (*models.Event, error) {
	return c.send(ctx, http.MethodPut, "/api/events", ev)
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	query := url.Values{"id": {strconv.FormatInt(id, 10)}}
	res, err := c.http.Do(ctx, http.MethodDelete, "/api/delete", query, nil)
	if err != nil {
		return err
	}
	return decode(res, nil)
}

func (c *Client) RefreshSite(ctx context.Context, site string) error {
	body, err := json.Marshal(dto.RefreshRequest{Websites: []string{site}})
	if err != nil {
		return err
	}
	res, err := c.http.Do(ctx, http.MethodPost, "/api/events", nil, body)
	if err != nil {
		return err
	}
	return decode(res, nil)
}

func (c *Client) send(ctx context.Context, method, path string, payload any) (*models.Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}

	res, err := c.http.Do(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}

	var ev models.Event
	if err := decode(res, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func decode(res *backend.Response, out any) error {
	if !res.OK() {
		return newAPIError(res)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
