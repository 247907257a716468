// Package apperrors holds the typed failures of the booking engine. Each type
// maps to one client-facing error code at the HTTP boundary.
package apperrors

import "fmt"

// NotFoundError is returned when a space, restaurant or reservation is absent.
type NotFoundError struct {
	Resource string
	ID       string
	Reason   string
}

func (e *NotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %s not found: %s", e.Resource, e.ID, e.Reason)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// CapacityExceededError is returned when the atomic admission check rejects a booking.
// It carries enough detail for a client to retry with a smaller party or another slot.
type CapacityExceededError struct {
	SpaceName          string `json:"spaceName"`
	MaxCapacity        int    `json:"maxCapacity"`
	CurrentlyBooked    int    `json:"currentlyBooked"`
	AvailableCapacity  int    `json:"availableCapacity"`
	RequestedPartySize int    `json:"requestedPartySize"`
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded for %s: requested %d, available %d of %d",
		e.SpaceName, e.RequestedPartySize, e.AvailableCapacity, e.MaxCapacity)
}

// ConcurrencyConflictError is returned after all retries of a conflicting write are used up.
// Unlike CapacityExceededError, repeating the same request may still succeed.
type ConcurrencyConflictError struct {
	Attempts int
	Cause    error
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("reservation write conflicted %d times, giving up: %v", e.Attempts, e.Cause)
}

func (e *ConcurrencyConflictError) Unwrap() error { return e.Cause }

// AlreadyCancelledError is returned when cancelling a reservation twice.
type AlreadyCancelledError struct {
	ReservationID string
}

func (e *AlreadyCancelledError) Error() string {
	return fmt.Sprintf("reservation %s is already cancelled", e.ReservationID)
}

// InvalidStateError is returned when a lifecycle operation does not apply to the current status.
type InvalidStateError struct {
	ReservationID string
	Status        string
	Operation     string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s reservation %s in status %s", e.Operation, e.ReservationID, e.Status)
}
