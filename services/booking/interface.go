package booking

import (
	"context"
	"time"

	"dineslot/config"
	venueRepo "dineslot/database/repository/venue"
	"dineslot/models"

	"go.uber.org/zap"
)

// ReservationService orchestrates the reservation lifecycle.
type ReservationService interface {
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error)
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id, reason string) (*models.CancellationConfirmation, error)
	DeleteReservation(ctx context.Context, id string) (bool, error)
}

// ReservationStore is the persistence surface the coordinator needs.
type ReservationStore interface {
	Save(ctx context.Context, r *models.Reservation) error
	Update(ctx context.Context, r *models.Reservation) error
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	DeleteVersion(ctx context.Context, r *models.Reservation) (bool, error)
}

// CapacityManager is implemented by capacity.Manager.
type CapacityManager interface {
	TryReserve(ctx context.Context, spaceID, date, startTime, endTime string, maxCapacity, partySize int) (bool, error)
	Release(ctx context.Context, spaceID, date, startTime string, partySize int) error
	GetBooked(ctx context.Context, spaceID, date, startTime string) (int, error)
	GetAvailable(ctx context.Context, spaceID, date, startTime string, maxCapacity int) (int, error)
}

// EventPublisher delivers reservation events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event models.ReservationEvent) error
}

// AvailabilityInvalidator drops cached availability after a capacity change.
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, spaceID, date string)
}

// DefaultReservationService implements ReservationService.
// Events and Availability are optional.
type DefaultReservationService struct {
	Spaces       venueRepo.SpaceRepository
	Restaurants  venueRepo.RestaurantRepository
	Reservations ReservationStore
	Capacity     CapacityManager
	Events       EventPublisher
	Availability AvailabilityInvalidator
	Policy       config.Policy
	Now          func() time.Time
	Location     *time.Location
	Logger       *zap.Logger
}

func (s *DefaultReservationService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultReservationService) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

func (s *DefaultReservationService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultReservationService) maxAttempts() int {
	if s.Policy.MaxAttempts <= 0 {
		return 3
	}
	return s.Policy.MaxAttempts
}
