// Package capacity implements atomic seat accounting per slot.
//
// All cross-request coordination is delegated to the store's conditional
// update. Nothing here holds an in-process lock.
package capacity

import (
	"context"
	"errors"
	"fmt"

	"dineslot/database/repository"
	capacityRepo "dineslot/database/repository/capacity"
	"dineslot/models"

	"go.uber.org/zap"
)

var ErrInvalidPartySize = errors.New("party size must be positive")

// Manager exposes TryReserve and Release as the only ways to move a slot counter.
type Manager struct {
	Repo   capacityRepo.SlotCapacityRepository
	Logger *zap.Logger
}

func NewManager(repo capacityRepo.SlotCapacityRepository, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{Repo: repo, Logger: logger}
}

// TryReserve admits partySize seats into the slot if and only if they fit.
// The record is created lazily with an insert-only upsert; maxCapacity is
// captured at that moment and later space edits do not touch existing records.
func (m *Manager) TryReserve(ctx context.Context, spaceID, date, startTime, endTime string, maxCapacity, partySize int) (bool, error) {
	if partySize <= 0 {
		return false, ErrInvalidPartySize
	}
	key := SlotKey(spaceID, date, startTime)

	err := m.Repo.EnsureRecord(ctx, models.SlotCapacityRecord{
		Key:         key,
		SpaceID:     spaceID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		MaxCapacity: maxCapacity,
	})
	if err != nil {
		return false, err
	}

	ok, err := m.Repo.IncrementIfFits(ctx, key, partySize)
	if err != nil {
		return false, err
	}
	if ok {
		m.Logger.Debug("capacity reserved", zap.String("slot", key), zap.Int("partySize", partySize))
	} else {
		m.Logger.Debug("capacity rejected", zap.String("slot", key), zap.Int("partySize", partySize))
	}
	return ok, nil
}

// Release gives back partySize seats. It never checks a precondition: every
// release pairs with an earlier successful TryReserve. A counter that ends up
// negative means a double release and is clamped back to zero immediately.
func (m *Manager) Release(ctx context.Context, spaceID, date, startTime string, partySize int) error {
	if partySize <= 0 {
		return ErrInvalidPartySize
	}
	key := SlotKey(spaceID, date, startTime)

	rec, err := m.Repo.Decrement(ctx, key, partySize)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			m.Logger.Error("release on missing capacity record", zap.String("slot", key), zap.Int("partySize", partySize))
			return nil
		}
		return fmt.Errorf("failed to release %d seats on %s: %w", partySize, key, err)
	}

	if rec.BookedCapacity < 0 {
		m.Logger.Error("capacity counter went negative, clamping to zero (double release?)",
			zap.String("slot", key),
			zap.Int("bookedCapacity", rec.BookedCapacity),
			zap.Int("partySize", partySize))
		if _, err := m.Repo.ClampNegative(ctx, key); err != nil {
			return fmt.Errorf("failed to clamp negative counter on %s: %w", key, err)
		}
	}
	return nil
}

// GetBooked returns the current counter for display or error reporting only.
func (m *Manager) GetBooked(ctx context.Context, spaceID, date, startTime string) (int, error) {
	rec, err := m.Repo.Find(ctx, SlotKey(spaceID, date, startTime))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if rec.BookedCapacity < 0 {
		return 0, nil
	}
	return rec.BookedCapacity, nil
}

// GetAvailable returns the remaining seats for display. The record's own
// ceiling wins over maxCapacity once the record exists.
func (m *Manager) GetAvailable(ctx context.Context, spaceID, date, startTime string, maxCapacity int) (int, error) {
	rec, err := m.Repo.Find(ctx, SlotKey(spaceID, date, startTime))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return maxCapacity, nil
		}
		return 0, err
	}
	return rec.Available(), nil
}
