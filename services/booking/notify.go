package booking

import (
	"context"

	"dineslot/models"

	"go.uber.org/zap"
)

// afterChange invalidates cached availability and publishes the event.
// Neither step can change the outcome of the operation that triggered it.
func (s *DefaultReservationService) afterChange(ctx context.Context, eventType string, r *models.Reservation) {
	if s.Availability != nil {
		s.Availability.Invalidate(ctx, r.SpaceID, r.ReservationDate)
	}
	if s.Events == nil {
		return
	}
	event := models.NewReservationEvent(eventType, r, s.now().UTC())
	if err := s.Events.Publish(ctx, event); err != nil {
		s.logger().Warn("failed to publish reservation event",
			zap.String("type", eventType),
			zap.String("reservationID", r.ID),
			zap.Error(err))
	}
}

// reacquire takes back seats this call released when a concurrent writer
// turned out to have released them as well.
func (s *DefaultReservationService) reacquire(ctx context.Context, r *models.Reservation) {
	ceiling := r.PartySize
	if space, err := s.Spaces.FindSpaceByID(ctx, r.SpaceID); err == nil {
		ceiling = space.MaxCapacity
	}
	ok, err := s.Capacity.TryReserve(ctx, r.SpaceID, r.ReservationDate, r.StartTime, r.EndTime, ceiling, r.PartySize)
	if err != nil || !ok {
		s.logger().Error("failed to reacquire released capacity, counter is under-counted",
			zap.String("reservationID", r.ID),
			zap.String("slot", r.SlotKey),
			zap.Int("partySize", r.PartySize),
			zap.Bool("admitted", ok),
			zap.Error(err))
		return
	}
	s.logger().Warn("reacquired capacity after concurrent release",
		zap.String("reservationID", r.ID), zap.String("slot", r.SlotKey), zap.Int("partySize", r.PartySize))
}
