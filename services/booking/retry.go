package booking

import (
	"context"
	"time"

	"dineslot/models"
)

// attemptKind tags the outcome of one create attempt so that only
// conflicts can ever reach the retry branch.
type attemptKind int

const (
	attemptBooked attemptKind = iota
	attemptRejected
	attemptConflict
	attemptFailed
)

type attemptResult struct {
	kind        attemptKind
	reservation *models.Reservation
	err         error
}

// backoff returns BaseDelay * 2^(attempt-1).
func (s *DefaultReservationService) backoff(attempt int) time.Duration {
	base := s.Policy.BaseDelay
	if base <= 0 {
		base = 50 * time.Millisecond
	}
	return base << uint(attempt-1)
}

// wait sleeps for the backoff of the given attempt unless ctx ends first.
func (s *DefaultReservationService) wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(s.backoff(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
