package rabbitmq

import (
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Binding describes a durable queue on the dashboard exchange.
type Binding struct {
	Queue       string
	RoutingKeys []string
	// Prefetch caps unacknowledged deliveries; 1 processes messages strictly
	// one after another.
	Prefetch int
}

// RefreshBinding is the queue the proxy reads refresh commands from.
var RefreshBinding = Binding{
	Queue:       RefreshQueue,
	RoutingKeys: []string{RoutingRefreshRequested},
	Prefetch:    1,
}

type Consumer struct {
	*session
	binding Binding
}

func NewConsumer(url string, b Binding) (*Consumer, error) {
	s, err := openSession(url)
	if err != nil {
		return nil, err
	}

	if err := declare(s.channel, b); err != nil {
		s.close()
		return nil, err
	}
	return &Consumer{session: s, binding: b}, nil
}

func declare(ch *amqp.Channel, b Binding) error {
	q, err := ch.QueueDeclare(b.Queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq queue declare %s: %w", b.Queue, err)
	}
	for _, key := range b.RoutingKeys {
		if err := ch.QueueBind(q.Name, key, ExchangeName, false, nil); err != nil {
			return fmt.Errorf("rabbitmq queue bind %s <- %s: %w", q.Name, key, err)
		}
	}
	if b.Prefetch > 0 {
		if err := ch.Qos(b.Prefetch, 0, false); err != nil {
			return fmt.Errorf("rabbitmq qos: %w", err)
		}
	}
	return nil
}

// Consume starts delivery with manual acknowledgement.
func (c *Consumer) Consume() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(c.binding.Queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq consume %s: %w", c.binding.Queue, err)
	}

	log.Printf("[RabbitMQ] consuming from queue: %s %v", c.binding.Queue, c.binding.RoutingKeys)
	return msgs, nil
}

func (c *Consumer) Close() {
	c.close()
}
