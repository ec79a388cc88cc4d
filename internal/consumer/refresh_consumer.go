package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Eursukkul/events-dashboard/internal/dashboard"
	"github.com/Eursukkul/events-dashboard/internal/dto"
	"github.com/Eursukkul/events-dashboard/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

var errMalformed = errors.New("malformed refresh request")

// RefreshConsumer runs queued refresh requests through the same sequential,
// stop-at-first-failure driver the dashboard uses.
type RefreshConsumer struct {
	refresher dashboard.SiteRefresher
}

func NewRefreshConsumer(svc service.EventService) *RefreshConsumer {
	return &RefreshConsumer{refresher: serviceRefresher{svc: svc}}
}

// Start handles deliveries until msgs is closed.
func (rc *RefreshConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			rc.handleMessage(ctx, msg)
		}
		log.Println("[RefreshConsumer] channel closed, stopping consumer")
	}()
}

func (rc *RefreshConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	report, err := rc.process(ctx, msg.Body)
	if err != nil {
		log.Printf("[RefreshConsumer] dropping message %s: %v", msg.MessageId, err)
		msg.Nack(false, false)
		return
	}

	if !report.OK() {
		log.Printf("[RefreshConsumer] refreshed %v, failed on %s: %v", report.Refreshed, report.FailedSite, report.Err)
	} else {
		log.Printf("[RefreshConsumer] refreshed %v", report.Refreshed)
	}
	// A failed run is not requeued; the next request starts over.
	msg.Ack(false)
}

func (rc *RefreshConsumer) process(ctx context.Context, body []byte) (dashboard.RefreshReport, error) {
	var req dto.RefreshRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return dashboard.RefreshReport{}, fmt.Errorf("%w: %v", errMalformed, err)
	}
	sites := expandSites(req.Websites)
	if len(sites) == 0 {
		return dashboard.RefreshReport{}, fmt.Errorf("%w: no websites", errMalformed)
	}

	return dashboard.RefreshSites(ctx, rc.refresher, sites, func(site string) {
		log.Printf("[RefreshConsumer] refreshed %s", site)
	}), nil
}

// expandSites drops blanks and turns "all" into every known site.
func expandSites(websites []string) []string {
	var out []string
	for _, w := range websites {
		switch w {
		case "":
		case dashboard.AllValues:
			out = append(out, dashboard.Sites...)
		default:
			out = append(out, w)
		}
	}
	return out
}

type serviceRefresher struct {
	svc service.EventService
}

func (r serviceRefresher) RefreshSite(ctx context.Context, site string) error {
	res, err := r.svc.RefreshSites(ctx, []string{site})
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("refresh %s: backend responded %d: %s", site, res.StatusCode, res.Text())
	}
	return nil
}
