package validation

import "fmt"

// Rule names the specific booking rule a request violated.
type Rule string

const (
	RuleInvalidDate         Rule = "INVALID_DATE_FORMAT"
	RuleInvalidTime         Rule = "INVALID_TIME_FORMAT"
	RuleRestaurantClosed    Rule = "RESTAURANT_CLOSED"
	RuleOutsideHours        Rule = "OUTSIDE_OPERATING_HOURS"
	RuleSlotMisaligned      Rule = "SLOT_MISALIGNED"
	RuleInvalidPartySize    Rule = "INVALID_PARTY_SIZE"
	RuleAdvanceLimit        Rule = "ADVANCE_BOOKING_LIMIT_EXCEEDED"
	RulePastDate            Rule = "PAST_DATE"
	RuleInvalidHours        Rule = "INVALID_OPERATING_HOURS"
	RuleInvalidSlotDuration Rule = "INVALID_SLOT_DURATION"
)

// Error is a validation failure naming the violated rule.
type Error struct {
	Rule    Rule
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

func newError(rule Rule, format string, args ...interface{}) error {
	return &Error{Rule: rule, Message: fmt.Sprintf(format, args...)}
}
