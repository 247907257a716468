package booking

import (
	"context"
	"errors"
	"fmt"

	"dineslot/database/repository"
	"dineslot/models"
	"dineslot/services/apperrors"

	"go.uber.org/zap"
)

func (s *DefaultReservationService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	r, err := s.Reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("reservation", id)
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}
	return r, nil
}

// CancelReservation releases the reservation's seats and then marks it CANCELLED.
// The seats are released at most once per call. When a concurrent writer wins
// the status update the released seats are reacquired before reporting.
func (s *DefaultReservationService) CancelReservation(ctx context.Context, id, reason string) (*models.CancellationConfirmation, error) {
	logger := s.logger()
	var held *models.Reservation
	var lastConflict error

	attempts := s.maxAttempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		r, err := s.GetReservation(ctx, id)
		if err != nil {
			if held != nil {
				s.reacquire(ctx, held)
			}
			return nil, err
		}

		switch r.Status {
		case models.StatusConfirmed:
		case models.StatusCancelled:
			if held != nil {
				s.reacquire(ctx, held)
			}
			return nil, &apperrors.AlreadyCancelledError{ReservationID: id}
		default:
			if held != nil {
				s.reacquire(ctx, held)
			}
			return nil, &apperrors.InvalidStateError{ReservationID: id, Status: string(r.Status), Operation: "cancel"}
		}

		if held == nil {
			if err := s.Capacity.Release(ctx, r.SpaceID, r.ReservationDate, r.StartTime, r.PartySize); err != nil {
				return nil, fmt.Errorf("failed to release capacity: %w", err)
			}
			snapshot := *r
			held = &snapshot
		}

		cancelledAt := s.now().UTC()
		r.Status = models.StatusCancelled
		r.CancelledAt = &cancelledAt
		r.CancellationReason = reason

		err = s.Reservations.Update(ctx, r)
		if err == nil {
			logger.Info("reservation cancelled",
				zap.String("reservationID", r.ID),
				zap.String("slot", r.SlotKey),
				zap.Int("partySize", r.PartySize))
			s.afterChange(ctx, models.EventReservationCancelled, r)
			return &models.CancellationConfirmation{
				ReservationID: r.ID,
				CancelledAt:   cancelledAt,
				Reason:        reason,
			}, nil
		}
		if !errors.Is(err, repository.ErrWriteConflict) {
			// The write may or may not have landed. Holding the seats again
			// can only cause rejections, never an overbooking.
			s.reacquire(ctx, held)
			return nil, fmt.Errorf("failed to cancel reservation: %w", err)
		}

		lastConflict = err
		logger.Warn("cancel write conflict, reloading", zap.String("reservationID", id), zap.Int("attempt", attempt))
		if attempt < attempts {
			if err := s.wait(ctx, attempt); err != nil {
				s.reacquire(ctx, held)
				return nil, fmt.Errorf("cancel retry interrupted: %w", err)
			}
		}
	}

	s.reacquire(ctx, held)
	return nil, &apperrors.ConcurrencyConflictError{Attempts: attempts, Cause: lastConflict}
}

// DeleteReservation removes a reservation, releasing its seats first when it is
// still CONFIRMED. An absent id reports false. The delete is guarded by the
// document version so that a concurrent cancellation cannot release twice.
func (s *DefaultReservationService) DeleteReservation(ctx context.Context, id string) (bool, error) {
	logger := s.logger()
	var held *models.Reservation
	var lastConflict error

	attempts := s.maxAttempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		r, err := s.Reservations.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				if held != nil {
					s.reacquire(ctx, held)
				}
				return false, nil
			}
			return false, fmt.Errorf("failed to load reservation: %w", err)
		}

		switch {
		case r.Status == models.StatusConfirmed && held == nil:
			if err := s.Capacity.Release(ctx, r.SpaceID, r.ReservationDate, r.StartTime, r.PartySize); err != nil {
				return false, fmt.Errorf("failed to release capacity: %w", err)
			}
			held = r
		case r.Status != models.StatusConfirmed && held != nil:
			// Someone else released these seats when leaving CONFIRMED.
			s.reacquire(ctx, held)
			held = nil
		}

		deleted, err := s.Reservations.DeleteVersion(ctx, r)
		if err != nil {
			if held != nil {
				s.reacquire(ctx, held)
			}
			return false, fmt.Errorf("failed to delete reservation: %w", err)
		}
		if deleted {
			logger.Info("reservation deleted",
				zap.String("reservationID", r.ID),
				zap.String("status", string(r.Status)),
				zap.Bool("capacityReleased", held != nil))
			if held != nil {
				s.afterChange(ctx, models.EventReservationCancelled, r)
			}
			return true, nil
		}

		lastConflict = repository.ErrWriteConflict
		logger.Warn("delete raced with another writer, reloading", zap.String("reservationID", id), zap.Int("attempt", attempt))
		if attempt < attempts {
			if err := s.wait(ctx, attempt); err != nil {
				if held != nil {
					s.reacquire(ctx, held)
				}
				return false, fmt.Errorf("delete retry interrupted: %w", err)
			}
		}
	}

	if held != nil {
		s.reacquire(ctx, held)
	}
	return false, &apperrors.ConcurrencyConflictError{Attempts: attempts, Cause: lastConflict}
}
