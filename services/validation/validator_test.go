package validation

import (
	"errors"
	"testing"
	"time"

	"dineslot/models"
)

var (
	open9to22      = models.OperatingHours{DayOfWeek: int(time.Friday), OpenTime: "09:00", CloseTime: "22:00"}
	openToMidnight = models.OperatingHours{DayOfWeek: int(time.Saturday), OpenTime: "18:00", CloseTime: "24:00"}
)

func ruleOf(t *testing.T, err error) Rule {
	t.Helper()
	if err == nil {
		return ""
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a *validation.Error", err)
	}
	return verr.Rule
}

func TestValidateOperatingHours(t *testing.T) {
	tests := []struct {
		name       string
		hours      models.OperatingHours
		start, end int
		want       Rule
	}{
		{"inside", open9to22, 18 * 60, 19 * 60, ""},
		{"starts at opening", open9to22, 9 * 60, 10 * 60, ""},
		{"ends at closing", open9to22, 21 * 60, 22 * 60, ""},
		{"before opening", open9to22, 8 * 60, 9 * 60, RuleOutsideHours},
		{"ends after closing", open9to22, 21*60 + 30, 22*60 + 30, RuleOutsideHours},
		{"closed day", models.OperatingHours{IsClosed: true}, 18 * 60, 19 * 60, RuleRestaurantClosed},
		{"missing times", models.OperatingHours{OpenTime: "09:00"}, 18 * 60, 19 * 60, RuleInvalidHours},
		{"inverted hours", models.OperatingHours{OpenTime: "22:00", CloseTime: "09:00"}, 18 * 60, 19 * 60, RuleInvalidHours},
		{"closes at midnight", openToMidnight, 22 * 60, 23 * 60, ""},
		{"ends at midnight", openToMidnight, 23 * 60, 24 * 60, ""},
		{"opens at midnight", models.OperatingHours{OpenTime: "24:00", CloseTime: "24:00"}, 18 * 60, 19 * 60, RuleInvalidHours},
		{"past midnight", models.OperatingHours{OpenTime: "18:00", CloseTime: "24:30"}, 18 * 60, 19 * 60, RuleInvalidHours},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ruleOf(t, ValidateOperatingHours(tt.hours, tt.start, tt.end)); got != tt.want {
				t.Fatalf("rule = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateTimeSlotAlignment(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		duration int
		want     Rule
	}{
		{"on boundary", 18 * 60, 60, ""},
		{"opening time", 9 * 60, 90, ""},
		{"90 minute grid", 10*60 + 30, 90, ""},
		{"off by 15", 18*60 + 15, 60, RuleSlotMisaligned},
		{"off the 90 minute grid", 10 * 60, 90, RuleSlotMisaligned},
		{"before open", 8 * 60, 60, RuleOutsideHours},
		{"zero duration", 18 * 60, 0, RuleInvalidSlotDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ruleOf(t, ValidateTimeSlotAlignment(open9to22, tt.start, tt.duration)); got != tt.want {
				t.Fatalf("rule = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePartySize(t *testing.T) {
	space := models.Space{Name: "Cellar", MaxCapacity: 12}
	for size, want := range map[int]Rule{1: "", 12: "", 0: RuleInvalidPartySize, -1: RuleInvalidPartySize, 13: RuleInvalidPartySize} {
		if got := ruleOf(t, ValidatePartySize(size, space)); got != want {
			t.Errorf("party %d: rule = %q, want %q", size, got, want)
		}
	}
}

func TestValidateDates(t *testing.T) {
	today := time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := ValidateReservationDate(today, today); err != nil {
		t.Fatalf("today rejected: %v", err)
	}
	if got := ruleOf(t, ValidateReservationDate(today.AddDate(0, 0, -1), today)); got != RulePastDate {
		t.Fatalf("yesterday: rule = %q", got)
	}

	if err := ValidateAdvanceBookingLimit(today.AddDate(0, 0, 90), today, 90); err != nil {
		t.Fatalf("day 90 rejected: %v", err)
	}
	if got := ruleOf(t, ValidateAdvanceBookingLimit(today.AddDate(0, 0, 91), today, 90)); got != RuleAdvanceLimit {
		t.Fatalf("day 91: rule = %q", got)
	}
	// Zero horizon falls back to the default.
	if got := ruleOf(t, ValidateAdvanceBookingLimit(today.AddDate(0, 0, DefaultAdvanceBookingDays+1), today, 0)); got != RuleAdvanceLimit {
		t.Fatalf("default horizon: rule = %q", got)
	}
	if err := ValidateAdvanceBookingLimit(today.AddDate(0, 0, 30), today, 0); err != nil {
		t.Fatalf("day 30 with default horizon rejected: %v", err)
	}
}

func TestAlignedStarts(t *testing.T) {
	starts := AlignedStarts(9*60, 22*60, 60)
	if len(starts) != 13 {
		t.Fatalf("len = %d, want 13", len(starts))
	}
	if starts[0] != 9*60 || starts[len(starts)-1] != 21*60 {
		t.Fatalf("first/last = %d/%d", starts[0], starts[len(starts)-1])
	}
	for _, s := range starts {
		if err := ValidateTimeSlotAlignment(open9to22, s, 60); err != nil {
			t.Fatalf("generated start %d fails alignment: %v", s, err)
		}
	}

	if got := AlignedStarts(18*60, 24*60, 120); len(got) != 3 || got[2] != 22*60 {
		t.Fatalf("starts up to midnight = %v", got)
	}
	if err := ValidateTimeSlotAlignment(openToMidnight, 22*60, 120); err != nil {
		t.Fatalf("22:00 two-hour slot before midnight rejected: %v", err)
	}

	if got := AlignedStarts(9*60, 10*60+30, 60); len(got) != 1 {
		t.Fatalf("partial last slot generated: %v", got)
	}
	if got := AlignedStarts(9*60, 22*60, 0); got != nil {
		t.Fatalf("zero duration generated %v", got)
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(open9to22); got != "09:00 - 22:00" {
		t.Fatalf("Describe = %q", got)
	}
	if got := Describe(openToMidnight); got != "18:00 - 24:00" {
		t.Fatalf("Describe midnight close = %q", got)
	}
	if got := Describe(models.OperatingHours{IsClosed: true}); got != "Closed" {
		t.Fatalf("Describe closed = %q", got)
	}
}
