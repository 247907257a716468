package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dineslot/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Handler processes one decoded event. A returned error rejects the message
// without requeueing it.
type Handler func(ctx context.Context, event models.ReservationEvent) error

// Consume reads every queue in Queues and hands each event to handle until ctx
// is cancelled, reconnecting with exponential backoff when the broker drops.
func Consume(ctx context.Context, url string, handle Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn("event consumer: dial failed", zap.Duration("retryIn", backoff), zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, handle, logger)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("event consumer: loop ended, reconnecting", zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, handle Handler, logger *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logger.Warn("event consumer: set QoS failed", zap.Error(err))
	}

	done := make(chan struct{})
	defer close(done)

	deliveries := make(chan amqp.Delivery)
	for _, queue := range Queues {
		if err := declare(ch, queue); err != nil {
			return err
		}
		msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", queue, err)
		}
		go func(msgs <-chan amqp.Delivery) {
			for d := range msgs {
				select {
				case deliveries <- d:
				case <-done:
					return
				}
			}
		}(msgs)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr := <-closed:
			if amqpErr != nil {
				return amqpErr
			}
			return errors.New("connection closed")
		case d := <-deliveries:
			if err := dispatch(ctx, d.Body, handle); err != nil {
				logger.Warn("event consumer: handle message failed", zap.String("queue", d.RoutingKey), zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func dispatch(ctx context.Context, body []byte, handle Handler) error {
	var event models.ReservationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return handle(ctx, event)
}

// AuditLog returns a Handler that writes each event to the logger.
func AuditLog(logger *zap.Logger) Handler {
	return func(_ context.Context, event models.ReservationEvent) error {
		logger.Info("reservation event",
			zap.String("type", event.Type),
			zap.String("reservationID", event.ReservationID),
			zap.String("spaceID", event.SpaceID),
			zap.String("date", event.Date),
			zap.String("startTime", event.StartTime),
			zap.Int("partySize", event.PartySize),
			zap.Time("occurredAt", event.OccurredAt))
		return nil
	}
}
