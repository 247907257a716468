package handlers

import (
	"errors"
	"net/http"

	"dineslot/services/apperrors"
	"dineslot/services/validation"
	"dineslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error onto its HTTP status and client-facing code.
// Anything unrecognised is logged with the correlation id and reported generically.
func respondError(c *gin.Context, err error) {
	var (
		notFound  *apperrors.NotFoundError
		invalid   *validation.Error
		exceeded  *apperrors.CapacityExceededError
		conflict  *apperrors.ConcurrencyConflictError
		cancelled *apperrors.AlreadyCancelledError
		state     *apperrors.InvalidStateError
	)

	switch {
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, utils.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: notFound.Error(),
		})
	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusBadRequest, utils.ErrorResponse{
			Code:    string(invalid.Rule),
			Message: invalid.Message,
		})
	case errors.As(err, &exceeded):
		utils.JSONError(c, http.StatusConflict, utils.ErrorResponse{
			Code:    "CAPACITY_EXCEEDED",
			Message: exceeded.Error(),
			Details: exceeded,
		})
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, utils.ErrorResponse{
			Code:      "CONCURRENCY_CONFLICT",
			Message:   "The reservation could not be written because of concurrent updates. Retrying the same request may succeed.",
			Retryable: true,
		})
	case errors.As(err, &cancelled):
		utils.JSONError(c, http.StatusConflict, utils.ErrorResponse{
			Code:    "ALREADY_CANCELLED",
			Message: cancelled.Error(),
		})
	case errors.As(err, &state):
		utils.JSONError(c, http.StatusConflict, utils.ErrorResponse{
			Code:    "INVALID_STATE",
			Message: state.Error(),
		})
	default:
		getLogger(c).Error("Unexpected error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, utils.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred. Please try again later.",
		})
	}
}

// badRequest reports a malformed request body or query.
func badRequest(c *gin.Context, message string) {
	utils.JSONError(c, http.StatusBadRequest, utils.ErrorResponse{
		Code:    "INVALID_REQUEST",
		Message: message,
	})
}
