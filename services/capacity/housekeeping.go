package capacity

import (
	"context"
	"fmt"
	"sort"
	"time"

	capacityRepo "dineslot/database/repository/capacity"
	"dineslot/models"
	"dineslot/utils"

	"go.uber.org/zap"
)

// ConfirmedSums is the read side reconciliation compares counters against.
type ConfirmedSums interface {
	SumConfirmedBySlotKey(ctx context.Context, spaceID, date string) (map[string]int, error)
}

// Housekeeper runs maintenance over the counters: reconciliation against
// confirmed reservations and reaping of records for past dates.
type Housekeeper struct {
	Repo          capacityRepo.SlotCapacityRepository
	Reservations  ConfirmedSums
	RetentionDays int
	Location      *time.Location
	Now           func() time.Time
	Logger        *zap.Logger
}

// Reconcile compares every counter of a space/date with the sum of CONFIRMED
// party sizes on the same slot key. With repair set, a counter below the
// confirmed sum is raised by compare-and-set on the observed value. A counter
// above it is only lowered for dates before today: on a bookable date the
// surplus may belong to a reservation whose seats are taken but whose record
// is not saved yet. If the counter moved in the meantime the slot is left
// alone and reported unrepaired.
func (h *Housekeeper) Reconcile(ctx context.Context, spaceID, date string, repair bool) ([]models.Drift, error) {
	logger := h.logger()

	day, err := utils.ParseDate(date, h.Location)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	past := day.Before(utils.StartOfDay(h.now(), h.Location))

	records, err := h.Repo.FindBySpaceAndDate(ctx, spaceID, date)
	if err != nil {
		return nil, err
	}
	sums, err := h.Reservations.SumConfirmedBySlotKey(ctx, spaceID, date)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	var drifts []models.Drift
	for _, rec := range records {
		seen[rec.Key] = true
		confirmed := sums[rec.Key]
		if rec.BookedCapacity == confirmed {
			continue
		}
		d := models.Drift{SlotKey: rec.Key, Counter: rec.BookedCapacity, Confirmed: confirmed}
		if repair && (confirmed > rec.BookedCapacity || past) {
			ok, err := h.Repo.CompareAndSetBooked(ctx, rec.Key, rec.BookedCapacity, confirmed)
			if err != nil {
				return drifts, err
			}
			d.Repaired = ok
		}
		logger.Warn("capacity drift detected",
			zap.String("slot", d.SlotKey),
			zap.Int("counter", d.Counter),
			zap.Int("confirmed", d.Confirmed),
			zap.Bool("repaired", d.Repaired))
		drifts = append(drifts, d)
	}

	// Confirmed reservations without any counter cannot be repaired here; there
	// is no snapshot of the ceiling to create the record with.
	var orphaned []string
	for key, total := range sums {
		if !seen[key] && total > 0 {
			orphaned = append(orphaned, key)
		}
	}
	sort.Strings(orphaned)
	for _, key := range orphaned {
		logger.Error("confirmed reservations without capacity record", zap.String("slot", key), zap.Int("confirmed", sums[key]))
		drifts = append(drifts, models.Drift{SlotKey: key, Counter: 0, Confirmed: sums[key]})
	}
	return drifts, nil
}

// Reap deletes counters dated before the given date, or before today minus the
// retention period when before is empty.
func (h *Housekeeper) Reap(ctx context.Context, before string) (int64, error) {
	if before == "" {
		before = h.ReapCutoff()
	} else if _, err := utils.ParseDate(before, h.Location); err != nil {
		return 0, fmt.Errorf("reap: %w", err)
	}

	n, err := h.Repo.DeleteBefore(ctx, before)
	if err != nil {
		return 0, err
	}
	h.logger().Info("reaped stale capacity records", zap.String("before", before), zap.Int64("deleted", n))
	return n, nil
}

// ReapCutoff is the first date whose records are kept.
func (h *Housekeeper) ReapCutoff() string {
	retention := h.RetentionDays
	if retention <= 0 {
		retention = 30
	}
	return utils.StartOfDay(h.now(), h.Location).AddDate(0, 0, -retention).Format(utils.DateLayout)
}

func (h *Housekeeper) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *Housekeeper) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}
