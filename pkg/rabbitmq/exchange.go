package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "events-dashboard"
	ExchangeKind = "topic"

	// RefreshQueue holds refresh.requested commands for the proxy to run.
	RefreshQueue = "events-dashboard.refresh"

	RoutingEventCreated     = "event.created"
	RoutingEventUpdated     = "event.updated"
	RoutingEventDeleted     = "event.deleted"
	RoutingEventsRefreshed  = "events.refreshed"
	RoutingRefreshRequested = "refresh.requested"
)

// session is one connection and channel with the dashboard exchange
// declared on it.
type session struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func openSession(url string) (*session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	s := &session{conn: conn, channel: ch}
	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		s.close()
		return nil, fmt.Errorf("rabbitmq exchange declare %s: %w", ExchangeName, err)
	}
	return s, nil
}

func (s *session) close() {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
}
