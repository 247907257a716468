package handlers

import (
	"net/http"

	"dineslot/models"
	"dineslot/services/apperrors"
	"dineslot/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler exposes the reservation lifecycle over HTTP.
type ReservationHandler struct {
	Service booking.ReservationService
}

// CreateReservationHandler books a slot. POST /api/reservations
func (h *ReservationHandler) CreateReservationHandler(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}

	reservation, err := h.Service.CreateReservation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Reservation created", zap.String("reservationID", reservation.ID))
	c.JSON(http.StatusCreated, reservation)
}

// GetReservationHandler returns one reservation. GET /api/reservations/:id
func (h *ReservationHandler) GetReservationHandler(c *gin.Context) {
	reservation, err := h.Service.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// CancelReservationHandler cancels a reservation. POST /api/reservations/:id/cancel
// The body is optional.
func (h *ReservationHandler) CancelReservationHandler(c *gin.Context) {
	var req models.CancelReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request: "+err.Error())
			return
		}
	}

	confirmation, err := h.Service.CancelReservation(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// DeleteReservationHandler removes a reservation. DELETE /api/reservations/:id
func (h *ReservationHandler) DeleteReservationHandler(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.Service.DeleteReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondError(c, apperrors.NotFound("reservation", id))
		return
	}
	c.Status(http.StatusNoContent)
}
