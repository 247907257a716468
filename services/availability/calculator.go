// Package availability turns operating hours and confirmed reservations into
// displayable time slots with live capacity numbers.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dineslot/database/repository"
	venueRepo "dineslot/database/repository/venue"
	"dineslot/models"
	"dineslot/services/apperrors"
	"dineslot/services/validation"
	"dineslot/utils"

	"go.uber.org/zap"
)

// ReservationReader is the read side of the reservation store used here.
type ReservationReader interface {
	FindConfirmedBySpaceAndDate(ctx context.Context, spaceID, date string) ([]models.Reservation, error)
}

// Calculator computes availability. Booked headcount is derived from the
// reservation collection by interval overlap, independently of the slot
// counters; capacity.Housekeeper.Reconcile cross-checks the two.
type Calculator struct {
	Spaces       venueRepo.SpaceRepository
	Restaurants  venueRepo.RestaurantRepository
	Reservations ReservationReader
	Cache        Cache
	CacheTTL     time.Duration
	Location     *time.Location
	Logger       *zap.Logger
}

func (c *Calculator) GetAvailability(ctx context.Context, spaceID, date string) (*models.AvailabilityResponse, error) {
	logger := c.logger()

	day, err := utils.ParseDate(date, c.Location)
	if err != nil {
		return nil, &validation.Error{Rule: validation.RuleInvalidDate, Message: err.Error()}
	}
	date = day.Format(utils.DateLayout)

	key := cacheKey(spaceID, date)
	if c.Cache != nil {
		if cached, ok := c.Cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	space, err := c.Spaces.FindSpaceByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("space", spaceID)
		}
		return nil, fmt.Errorf("failed to load space: %w", err)
	}
	if !space.IsActive {
		return nil, &apperrors.NotFoundError{Resource: "space", ID: spaceID, Reason: "space is not active"}
	}
	restaurant, err := c.Restaurants.FindRestaurantByID(ctx, space.RestaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("restaurant", space.RestaurantID)
		}
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}

	hours := restaurant.HoursFor(day.Weekday())
	resp := &models.AvailabilityResponse{
		SpaceID:                   space.ID,
		SpaceName:                 space.Name,
		Date:                      date,
		MaxCapacity:               space.MaxCapacity,
		OperatingHoursDescription: validation.Describe(hours),
		Slots:                     []models.AvailabilitySlot{},
	}

	open, close, err := validation.Window(hours)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) && verr.Rule == validation.RuleInvalidHours {
			logger.Warn("restaurant has invalid operating hours, reporting closed",
				zap.String("restaurantID", restaurant.ID), zap.Error(err))
		}
		c.store(ctx, key, resp)
		return resp, nil
	}
	resp.IsOpen = true

	reservations, err := c.Reservations.FindConfirmedBySpaceAndDate(ctx, space.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}
	intervals := toIntervals(reservations, logger)

	for _, start := range validation.AlignedStarts(open, close, space.SlotDurationMinutes) {
		end := start + space.SlotDurationMinutes
		booked, count := bookedBetween(intervals, start, end)
		resp.Slots = append(resp.Slots, buildSlot(start, end, booked, count, space.MaxCapacity))
	}

	c.store(ctx, key, resp)
	return resp, nil
}

// Invalidate drops the cached availability of a space/date after a capacity change.
func (c *Calculator) Invalidate(ctx context.Context, spaceID, date string) {
	if c.Cache == nil {
		return
	}
	c.Cache.Delete(ctx, cacheKey(spaceID, date))
}

func (c *Calculator) store(ctx context.Context, key string, resp *models.AvailabilityResponse) {
	if c.Cache == nil || c.CacheTTL <= 0 {
		return
	}
	c.Cache.Set(ctx, key, resp, c.CacheTTL)
}

func (c *Calculator) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

type interval struct {
	start, end int
	partySize  int
}

func toIntervals(reservations []models.Reservation, logger *zap.Logger) []interval {
	out := make([]interval, 0, len(reservations))
	for _, r := range reservations {
		start, err := utils.ParseClock(r.StartTime)
		if err != nil {
			logger.Warn("skipping reservation with bad start time", zap.String("reservationID", r.ID), zap.Error(err))
			continue
		}
		end, err := utils.ParseClock(r.EndTime)
		if err != nil {
			logger.Warn("skipping reservation with bad end time", zap.String("reservationID", r.ID), zap.Error(err))
			continue
		}
		out = append(out, interval{start: start, end: end, partySize: r.PartySize})
	}
	return out
}

// bookedBetween sums party sizes of reservations whose [start, end) overlaps [from, to).
func bookedBetween(intervals []interval, from, to int) (booked, count int) {
	for _, iv := range intervals {
		if iv.start < to && iv.end > from {
			booked += iv.partySize
			count++
		}
	}
	return booked, count
}

func buildSlot(start, end, booked, count, maxCapacity int) models.AvailabilitySlot {
	available := maxCapacity - booked
	if available < 0 {
		available = 0
	}
	return models.AvailabilitySlot{
		StartTime:                utils.FormatClock(start),
		EndTime:                  utils.FormatClock(end),
		AvailableCapacity:        available,
		BookedCapacity:           booked,
		Status:                   classify(available, maxCapacity),
		ExistingReservationCount: count,
	}
}

func classify(available, maxCapacity int) models.SlotStatus {
	switch {
	case available <= 0:
		return models.SlotFull
	case available < maxCapacity:
		return models.SlotLimited
	default:
		return models.SlotAvailable
	}
}
