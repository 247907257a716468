// File: dineslot/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Reservation endpoints
	CreateReservationHandler gin.HandlerFunc
	GetReservationHandler    gin.HandlerFunc
	CancelReservationHandler gin.HandlerFunc
	DeleteReservationHandler gin.HandlerFunc

	// Availability endpoints
	GetAvailabilityHandler gin.HandlerFunc

	// Admin endpoints
	ReconcileHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires the handler structs into a bundle.
func NewHandlerBundle(res *ReservationHandler, avail *AvailabilityHandler, admin *AdminHandler) *HandlerBundle {
	return &HandlerBundle{
		CreateReservationHandler: res.CreateReservationHandler,
		GetReservationHandler:    res.GetReservationHandler,
		CancelReservationHandler: res.CancelReservationHandler,
		DeleteReservationHandler: res.DeleteReservationHandler,
		GetAvailabilityHandler:   avail.GetAvailabilityHandler,
		ReconcileHandler:         admin.ReconcileHandler,
		HealthHandler:            HealthHandler,
	}
}
