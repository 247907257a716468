// Package validation decides whether a requested slot is bookable at all.
// Every function is pure and returns a *Error naming the violated rule.
package validation

import (
	"time"

	"dineslot/models"
	"dineslot/utils"
)

// DefaultAdvanceBookingDays is the booking horizon used when none is configured.
const DefaultAdvanceBookingDays = 90

// Window parses the opening window of a day into minutes from midnight.
// An open day must have both times, with open before close.
func Window(hours models.OperatingHours) (open, close int, err error) {
	if hours.IsClosed {
		return 0, 0, newError(RuleRestaurantClosed, "restaurant is closed on %s", time.Weekday(hours.DayOfWeek))
	}
	if hours.OpenTime == "" || hours.CloseTime == "" {
		return 0, 0, newError(RuleInvalidHours, "operating hours for %s are incomplete", time.Weekday(hours.DayOfWeek))
	}
	open, err = utils.ParseClock(hours.OpenTime)
	if err != nil {
		return 0, 0, newError(RuleInvalidHours, "opening time: %v", err)
	}
	close, err = utils.ParseClock(hours.CloseTime)
	if err != nil {
		return 0, 0, newError(RuleInvalidHours, "closing time: %v", err)
	}
	if open >= close {
		return 0, 0, newError(RuleInvalidHours, "opening time %s is not before closing time %s", hours.OpenTime, hours.CloseTime)
	}
	return open, close, nil
}

// ValidateOperatingHours rejects closed days and slots whose start or end falls
// outside [open, close]. Both boundaries are inclusive.
func ValidateOperatingHours(hours models.OperatingHours, start, end int) error {
	open, close, err := Window(hours)
	if err != nil {
		return err
	}
	if start < open || start > close {
		return newError(RuleOutsideHours, "start time %s is outside operating hours %s-%s",
			utils.FormatClock(start), hours.OpenTime, hours.CloseTime)
	}
	if end < open || end > close {
		return newError(RuleOutsideHours, "end time %s is outside operating hours %s-%s",
			utils.FormatClock(end), hours.OpenTime, hours.CloseTime)
	}
	return nil
}

// ValidateTimeSlotAlignment requires the start time to sit on a slot boundary counted from opening time.
func ValidateTimeSlotAlignment(hours models.OperatingHours, start, slotDurationMinutes int) error {
	if slotDurationMinutes <= 0 {
		return newError(RuleInvalidSlotDuration, "slot duration must be positive, got %d", slotDurationMinutes)
	}
	open, _, err := Window(hours)
	if err != nil {
		return err
	}
	if start < open {
		return newError(RuleOutsideHours, "start time %s is before opening time %s", utils.FormatClock(start), hours.OpenTime)
	}
	if (start-open)%slotDurationMinutes != 0 {
		return newError(RuleSlotMisaligned, "start time %s is not on a %d-minute boundary from %s",
			utils.FormatClock(start), slotDurationMinutes, hours.OpenTime)
	}
	return nil
}

func ValidatePartySize(partySize int, space models.Space) error {
	if partySize < 1 {
		return newError(RuleInvalidPartySize, "party size must be at least 1, got %d", partySize)
	}
	if partySize > space.MaxCapacity {
		return newError(RuleInvalidPartySize, "party size %d exceeds the maximum capacity %d of %s",
			partySize, space.MaxCapacity, space.Name)
	}
	return nil
}

// ValidateAdvanceBookingLimit rejects dates more than horizonDays after today.
// Both times are expected at midnight in the same location.
func ValidateAdvanceBookingLimit(date, today time.Time, horizonDays int) error {
	if horizonDays <= 0 {
		horizonDays = DefaultAdvanceBookingDays
	}
	limit := today.AddDate(0, 0, horizonDays)
	if date.After(limit) {
		return newError(RuleAdvanceLimit, "reservations can be made at most %d days in advance (until %s)",
			horizonDays, limit.Format(utils.DateLayout))
	}
	return nil
}

func ValidateReservationDate(date, today time.Time) error {
	if date.Before(today) {
		return newError(RulePastDate, "reservation date %s is in the past", date.Format(utils.DateLayout))
	}
	return nil
}

// AlignedStarts lists every slot start between open and close-duration, stepping by duration.
// It is the same grid ValidateTimeSlotAlignment accepts.
func AlignedStarts(open, close, slotDurationMinutes int) []int {
	if slotDurationMinutes <= 0 {
		return nil
	}
	var starts []int
	for s := open; s+slotDurationMinutes <= close; s += slotDurationMinutes {
		starts = append(starts, s)
	}
	return starts
}

// Describe renders the operating hours for display, e.g. "09:00 - 22:00" or "Closed".
func Describe(hours models.OperatingHours) string {
	if _, _, err := Window(hours); err != nil {
		return "Closed"
	}
	return hours.OpenTime + " - " + hours.CloseTime
}
