// Package events publishes reservation state changes to RabbitMQ.
// Delivery is best-effort: callers log a failed publish and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dineslot/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Queues lists every queue an event can be routed to.
var Queues = []string{models.EventReservationConfirmed, models.EventReservationCancelled}

// RabbitPublisher opens a short-lived connection per event. It blocks for up
// to twice Timeout, so request handlers reach it through an AsyncPublisher.
type RabbitPublisher struct {
	URL     string
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewRabbitPublisher(url string, logger *zap.Logger) *RabbitPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RabbitPublisher{URL: url, Timeout: 3 * time.Second, Logger: logger}
}

// Publish sends the event to the durable queue named after its type.
func (p *RabbitPublisher) Publish(ctx context.Context, event models.ReservationEvent) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}

	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.timeout()),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: dial failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := declare(ch, event.Type); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	// Default exchange: the routing key is the queue name.
	if err := ch.PublishWithContext(ctx, "", event.Type, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish failed: %w", err)
	}
	p.Logger.Debug("reservation event published",
		zap.String("type", event.Type), zap.String("reservationID", event.ReservationID))
	return nil
}

func (p *RabbitPublisher) timeout() time.Duration {
	if p.Timeout <= 0 {
		return 3 * time.Second
	}
	return p.Timeout
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.ReservationEvent) error { return nil }

func encode(event models.ReservationEvent) (amqp.Publishing, error) {
	if event.Type == "" {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq: event for reservation %s has no type", event.ReservationID)
	}
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq: marshal event failed: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		MessageId:    event.ReservationID + ":" + event.Type,
		Type:         event.Type,
		Body:         body,
	}, nil
}

func declare(ch *amqp.Channel, queue string) error {
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("rabbitmq: queue declare %s failed: %w", queue, err)
	}
	return nil
}
