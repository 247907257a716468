package models

import "time"

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusCompleted ReservationStatus = "COMPLETED"
	StatusNoShow    ReservationStatus = "NO_SHOW"
)

// Reservation is a booking of a space for one slot. A CONFIRMED reservation
// always corresponds to partySize seats held on its slot capacity record.
type Reservation struct {
	ID                 string            `bson:"id" json:"id"`
	RestaurantID       string            `bson:"restaurantId" json:"restaurantId"`
	SpaceID            string            `bson:"spaceId" json:"spaceId"`
	SlotKey            string            `bson:"slotKey" json:"-"`
	ReservationDate    string            `bson:"reservationDate" json:"reservationDate"` // "2006-01-02"
	StartTime          string            `bson:"startTime" json:"startTime"`             // "HH:mm"
	EndTime            string            `bson:"endTime" json:"endTime"`                 // startTime + slot duration
	PartySize          int               `bson:"partySize" json:"partySize"`
	CustomerName       string            `bson:"customerName" json:"customerName"`
	CustomerEmail      string            `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone      string            `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	SpecialRequests    string            `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	Status             ReservationStatus `bson:"status" json:"status"`
	CancellationReason string            `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time        `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	Version            int64             `bson:"version" json:"-"`
	CreatedAt          time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// CreateReservationRequest is the booking request accepted from the boundary layer.
type CreateReservationRequest struct {
	SpaceID         string `json:"spaceId" binding:"required"`
	ReservationDate string `json:"reservationDate" binding:"required"`
	StartTime       string `json:"startTime" binding:"required"`
	PartySize       int    `json:"partySize" binding:"required"`
	CustomerName    string `json:"customerName" binding:"required"`
	CustomerEmail   string `json:"customerEmail" binding:"required"`
	CustomerPhone   string `json:"customerPhone,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancellationConfirmation is returned after a successful cancellation.
type CancellationConfirmation struct {
	ReservationID string    `json:"reservationId"`
	CancelledAt   time.Time `json:"cancelledAt"`
	Reason        string    `json:"reason,omitempty"`
}
