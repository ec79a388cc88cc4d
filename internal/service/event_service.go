package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/Eursukkul/events-dashboard/internal/models"
	"github.com/Eursukkul/events-dashboard/internal/repository"
	"github.com/Eursukkul/events-dashboard/pkg/backend"
	"github.com/Eursukkul/events-dashboard/pkg/rabbitmq"
	"github.com/google/uuid"
)

var (
	ErrMissingEventID     = errors.New("event id is required")
	ErrInvalidEventID     = errors.New("invalid event id")
	ErrInvalidPayload     = errors.New("invalid request body")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// EventService forwards dashboard requests to the backend. Backend replies
// come back raw so handlers can relay status and body unchanged; an error
// is returned only when the request never got an answer.
type EventService interface {
	ListEvents(ctx context.Context, params url.Values) (*backend.Response, error)
	GetEvent(ctx context.Context, id int64) (*backend.Response, error)
	CreateEvent(ctx context.Context, body []byte) (*backend.Response, error)
	UpdateEvent(ctx context.Context, body []byte) (*backend.Response, error)
	DeleteEvent(ctx context.Context, id int64) (*backend.Response, error)
	RefreshSites(ctx context.Context, websites []string) (*backend.Response, error)
	ListRefreshRuns(ctx context.Context, limit int) ([]models.RefreshRun, error)
}

// Notifier is satisfied by *rabbitmq.Publisher.
type Notifier interface {
	Publish(routingKey string, payload any) error
}

type eventService struct {
	repo      repository.EventRepository
	runs      repository.RefreshRunRepository
	publisher Notifier
	now       func() time.Time
}

// NewEventService wires the backend repository. runs and publisher are
// optional; pass nil to skip refresh history or change notifications.
func NewEventService(repo repository.EventRepository, runs repository.RefreshRunRepository, publisher Notifier) EventService {
	return &eventService{repo: repo, runs: runs, publisher: publisher, now: time.Now}
}

func (s *eventService) ListEvents(ctx context.Context, params url.Values) (*backend.Response, error) {
	res, err := s.repo.List(ctx, BackendQuery(params))
	if err != nil {
		return nil, unavailable(err)
	}
	return res, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*backend.Response, error) {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, unavailable(err)
	}
	return res, nil
}

func (s *eventService) CreateEvent(ctx context.Context, body []byte) (*backend.Response, error) {
	if !json.Valid(body) {
		return nil, ErrInvalidPayload
	}

	res, err := s.repo.Create(ctx, body)
	if err != nil {
		return nil, unavailable(err)
	}

	if res.OK() {
		s.publish(rabbitmq.RoutingEventCreated, rawOrNil(res.Body))
	}
	return res, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, body []byte) (*backend.Response, error) {
	id, payload, err := StripImmutable(body)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, unavailable(err)
	}

	if res.OK() {
		s.publish(rabbitmq.RoutingEventUpdated, rawOrNil(res.Body))
	}
	return res, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) (*backend.Response, error) {
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, unavailable(err)
	}

	if res.OK() {
		s.publish(rabbitmq.RoutingEventDeleted, map[string]int64{"id": id})
	}
	return res, nil
}

func (s *eventService) RefreshSites(ctx context.Context, websites []string) (*backend.Response, error) {
	body, err := json.Marshal(map[string][]string{"websites": websites})
	if err != nil {
		return nil, fmt.Errorf("marshal refresh request: %w", err)
	}

	run := &models.RefreshRun{
		ID:        uuid.NewString(),
		Websites:  websites,
		StartedAt: s.now(),
	}

	res, err := s.repo.Ingest(ctx, body)
	run.FinishedAt = s.now()
	if err != nil {
		run.Error = err.Error()
		s.record(ctx, run)
		return nil, unavailable(err)
	}

	run.StatusCode = res.StatusCode
	run.Succeeded = res.OK()
	if res.OK() {
		var events []json.RawMessage
		if json.Unmarshal(res.Body, &events) == nil {
			run.EventCount = len(events)
		}
	} else {
		run.Error = res.Text()
	}
	s.record(ctx, run)

	if res.OK() {
		s.publish(rabbitmq.RoutingEventsRefreshed, map[string]any{
			"run_id":      run.ID,
			"websites":    websites,
			"event_count": run.EventCount,
		})
	}
	return res, nil
}

func (s *eventService) ListRefreshRuns(ctx context.Context, limit int) ([]models.RefreshRun, error) {
	if s.runs == nil {
		return []models.RefreshRun{}, nil
	}
	runs, err := s.runs.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list refresh runs: %w", err)
	}
	return runs, nil
}

func (s *eventService) record(ctx context.Context, run *models.RefreshRun) {
	if s.runs == nil {
		return
	}
	// The refresh already happened; a history write must not fail it.
	if err := s.runs.Create(context.WithoutCancel(ctx), run); err != nil {
		log.Printf("[EventService] failed to record refresh run %s: %v", run.ID, err)
	}
}

func (s *eventService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		log.Printf("[EventService] failed to publish %s: %v", routingKey, err)
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
}

func rawOrNil(body []byte) any {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return nil
}
