package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Publisher sends JSON notifications to the dashboard exchange.
type Publisher struct {
	*session
}

func NewPublisher(url string) (*Publisher, error) {
	s, err := openSession(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{session: s}, nil
}

func (p *Publisher) Publish(routingKey string, payload any) error {
	msg, err := NewMessage(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.channel.PublishWithContext(ctx, ExchangeName, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	log.Printf("[RabbitMQ] published %s to %s/%s", msg.MessageId, ExchangeName, routingKey)
	return nil
}

// NewMessage wraps a JSON payload in a persistent publishing with a fresh id.
func NewMessage(payload any) (amqp.Publishing, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal payload: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}

func (p *Publisher) Close() {
	p.close()
}
