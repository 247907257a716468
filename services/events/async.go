package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"dineslot/models"

	"go.uber.org/zap"
)

var (
	ErrQueueFull       = errors.New("events: publish queue is full")
	ErrPublisherClosed = errors.New("events: publisher is closed")
)

// Publisher is anything that can deliver a reservation event.
type Publisher interface {
	Publish(ctx context.Context, event models.ReservationEvent) error
}

// AsyncPublisher queues events and delivers them from a single goroutine, so
// Publish never waits on the broker. Events are delivered in the order they
// were queued. Each delivery gets its own timeout, detached from the caller's
// context.
type AsyncPublisher struct {
	next    Publisher
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan models.ReservationEvent
	done   chan struct{}
}

func NewAsyncPublisher(next Publisher, buffer int, timeout time.Duration, logger *zap.Logger) *AsyncPublisher {
	if buffer <= 0 {
		buffer = 256
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &AsyncPublisher{
		next:    next,
		timeout: timeout,
		logger:  logger,
		queue:   make(chan models.ReservationEvent, buffer),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish queues the event. It fails immediately when the queue is full or
// the publisher has been closed.
func (p *AsyncPublisher) Publish(_ context.Context, event models.ReservationEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for event := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err := p.next.Publish(ctx, event)
		cancel()
		if err != nil {
			p.logger.Warn("failed to publish reservation event",
				zap.String("type", event.Type),
				zap.String("reservationID", event.ReservationID),
				zap.Error(err))
		}
	}
}

// Close stops accepting events and waits until the queued ones are delivered
// or ctx is done.
func (p *AsyncPublisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
