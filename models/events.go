package models

import "time"

const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published to the broker after a reservation changes state.
// The event type doubles as the destination queue name.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservationId"`
	RestaurantID  string    `json:"restaurantId"`
	SpaceID       string    `json:"spaceId"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	PartySize     int       `json:"partySize"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewReservationEvent builds an event of the given type from a reservation.
func NewReservationEvent(eventType string, r *Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		RestaurantID:  r.RestaurantID,
		SpaceID:       r.SpaceID,
		Date:          r.ReservationDate,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		PartySize:     r.PartySize,
		Reason:        r.CancellationReason,
		OccurredAt:    at,
	}
}
