package handlers

import (
	"context"
	"net/http"

	"dineslot/models"

	"github.com/gin-gonic/gin"
)

// AvailabilityReader is implemented by availability.Calculator.
type AvailabilityReader interface {
	GetAvailability(ctx context.Context, spaceID, date string) (*models.AvailabilityResponse, error)
}

type AvailabilityHandler struct {
	Calculator AvailabilityReader
}

// GetAvailabilityHandler lists the slots of a space. GET /api/spaces/:spaceId/availability?date=YYYY-MM-DD
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		badRequest(c, "query parameter 'date' is required")
		return
	}

	resp, err := h.Calculator.GetAvailability(c.Request.Context(), c.Param("spaceId"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
