package booking

import (
	"context"
	"errors"
	"fmt"

	"dineslot/database/repository"
	"dineslot/models"
	"dineslot/services/apperrors"
	"dineslot/services/capacity"
	"dineslot/services/validation"
	"dineslot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// slotRequest is a create request resolved against its space and restaurant.
type slotRequest struct {
	req       models.CreateReservationRequest
	space     *models.Space
	date      string
	startTime string
	endTime   string
}

// CreateReservation validates the request, secures capacity and persists a
// CONFIRMED reservation. Capacity is always secured before the reservation
// document exists; a failed save releases it again before returning.
func (s *DefaultReservationService) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
	logger := s.logger()

	sr, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	var lastConflict error
	attempts := s.maxAttempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		res := s.attempt(ctx, sr)
		switch res.kind {
		case attemptBooked:
			logger.Info("reservation confirmed",
				zap.String("reservationID", res.reservation.ID),
				zap.String("slot", res.reservation.SlotKey),
				zap.Int("partySize", res.reservation.PartySize),
				zap.Int("attempt", attempt))
			s.afterChange(ctx, models.EventReservationConfirmed, res.reservation)
			return res.reservation, nil
		case attemptRejected:
			return nil, s.capacityExceeded(ctx, sr)
		case attemptFailed:
			return nil, res.err
		case attemptConflict:
			lastConflict = res.err
			logger.Warn("reservation write conflict, retrying",
				zap.String("slot", capacity.SlotKey(sr.space.ID, sr.date, sr.startTime)),
				zap.Int("attempt", attempt),
				zap.Error(res.err))
			if attempt < attempts {
				if err := s.wait(ctx, attempt); err != nil {
					return nil, fmt.Errorf("reservation retry interrupted: %w", err)
				}
			}
		}
	}

	logger.Error("reservation retries exhausted",
		zap.String("spaceID", sr.space.ID),
		zap.String("date", sr.date),
		zap.String("startTime", sr.startTime),
		zap.Int("attempts", attempts))
	return nil, &apperrors.ConcurrencyConflictError{Attempts: attempts, Cause: lastConflict}
}

// resolve loads the space and restaurant and runs every validation rule.
// Nothing here touches capacity.
func (s *DefaultReservationService) resolve(ctx context.Context, req models.CreateReservationRequest) (*slotRequest, error) {
	space, err := s.Spaces.FindSpaceByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("space", req.SpaceID)
		}
		return nil, fmt.Errorf("failed to load space: %w", err)
	}
	if !space.IsActive {
		return nil, &apperrors.NotFoundError{Resource: "space", ID: req.SpaceID, Reason: "space is not active"}
	}

	restaurant, err := s.Restaurants.FindRestaurantByID(ctx, space.RestaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("restaurant", space.RestaurantID)
		}
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}

	loc := restaurant.Location(s.location())
	day, err := utils.ParseDate(req.ReservationDate, loc)
	if err != nil {
		return nil, &validation.Error{Rule: validation.RuleInvalidDate, Message: err.Error()}
	}
	start, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return nil, &validation.Error{Rule: validation.RuleInvalidTime, Message: err.Error()}
	}
	end := start + space.SlotDurationMinutes

	hours := restaurant.HoursFor(day.Weekday())
	today := utils.StartOfDay(s.now(), loc)

	if err := validation.ValidateOperatingHours(hours, start, end); err != nil {
		return nil, err
	}
	if err := validation.ValidateTimeSlotAlignment(hours, start, space.SlotDurationMinutes); err != nil {
		return nil, err
	}
	if err := validation.ValidatePartySize(req.PartySize, *space); err != nil {
		return nil, err
	}
	if err := validation.ValidateReservationDate(day, today); err != nil {
		return nil, err
	}
	if err := validation.ValidateAdvanceBookingLimit(day, today, s.Policy.AdvanceBookingDays); err != nil {
		return nil, err
	}

	return &slotRequest{
		req:       req,
		space:     space,
		date:      day.Format(utils.DateLayout),
		startTime: utils.FormatClock(start),
		endTime:   utils.FormatClock(end),
	}, nil
}

// attempt runs one reserve-then-persist pass.
func (s *DefaultReservationService) attempt(ctx context.Context, sr *slotRequest) attemptResult {
	space := sr.space
	ok, err := s.Capacity.TryReserve(ctx, space.ID, sr.date, sr.startTime, sr.endTime, space.MaxCapacity, sr.req.PartySize)
	if err != nil {
		return attemptResult{kind: attemptFailed, err: fmt.Errorf("failed to reserve capacity: %w", err)}
	}
	if !ok {
		return attemptResult{kind: attemptRejected}
	}

	now := s.now().UTC()
	r := &models.Reservation{
		ID:              uuid.New().String(),
		RestaurantID:    space.RestaurantID,
		SpaceID:         space.ID,
		SlotKey:         capacity.SlotKey(space.ID, sr.date, sr.startTime),
		ReservationDate: sr.date,
		StartTime:       sr.startTime,
		EndTime:         sr.endTime,
		PartySize:       sr.req.PartySize,
		CustomerName:    sr.req.CustomerName,
		CustomerEmail:   sr.req.CustomerEmail,
		CustomerPhone:   sr.req.CustomerPhone,
		SpecialRequests: sr.req.SpecialRequests,
		Status:          models.StatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	saveErr := s.Reservations.Save(ctx, r)
	if saveErr == nil {
		return attemptResult{kind: attemptBooked, reservation: r}
	}

	if relErr := s.Capacity.Release(ctx, space.ID, sr.date, sr.startTime, sr.req.PartySize); relErr != nil {
		s.logger().Error("failed to compensate capacity after save failure, counter is over-counted",
			zap.String("slot", r.SlotKey),
			zap.Int("partySize", r.PartySize),
			zap.NamedError("saveError", saveErr),
			zap.Error(relErr))
		return attemptResult{kind: attemptFailed, err: fmt.Errorf("failed to save reservation: %w (compensation failed: %v)", saveErr, relErr)}
	}
	s.logger().Warn("reservation save failed, capacity released",
		zap.String("slot", r.SlotKey), zap.Int("partySize", r.PartySize), zap.Error(saveErr))

	if errors.Is(saveErr, repository.ErrWriteConflict) {
		return attemptResult{kind: attemptConflict, err: saveErr}
	}
	return attemptResult{kind: attemptFailed, err: fmt.Errorf("failed to save reservation: %w", saveErr)}
}

// capacityExceeded builds the rejection with the current counter for client feedback.
func (s *DefaultReservationService) capacityExceeded(ctx context.Context, sr *slotRequest) error {
	space := sr.space
	e := &apperrors.CapacityExceededError{
		SpaceName:          space.Name,
		MaxCapacity:        space.MaxCapacity,
		RequestedPartySize: sr.req.PartySize,
	}
	if booked, err := s.Capacity.GetBooked(ctx, space.ID, sr.date, sr.startTime); err == nil {
		e.CurrentlyBooked = booked
	} else {
		s.logger().Warn("failed to read booked capacity for rejection", zap.Error(err))
	}
	if available, err := s.Capacity.GetAvailable(ctx, space.ID, sr.date, sr.startTime, space.MaxCapacity); err == nil {
		e.AvailableCapacity = available
	} else {
		s.logger().Warn("failed to read available capacity for rejection", zap.Error(err))
	}
	return e
}
