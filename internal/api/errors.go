package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/persistorai/graphkernel/internal/httputil"
	"github.com/persistorai/graphkernel/internal/metrics"
	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/pathfind"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeConflict        = "conflict"
	ErrCodeInternalError   = "internal_error"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeValidationError = "validation_error"
	ErrCodeTimeout         = "timeout"
	ErrCodeUnavailable     = "unavailable"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// validationErrors are the sentinels reported to clients as 400s.
var validationErrors = []error{
	models.ErrMissingID, models.ErrMissingType, models.ErrMissingSource, models.ErrMissingTarget,
	models.ErrInvalidID, models.ErrEmptyLabel, models.ErrTooManyLabels,
	models.ErrInvalidDepth, models.ErrDepthTooDeep, models.ErrInvalidBound, models.ErrInvalidLimit,
	pathfind.ErrUnknownDirection, pathfind.ErrNegativeDepth,
}

// classifySearchError maps a path search error to a status, code and
// client-safe message. Unexpected errors get a generic message.
func classifySearchError(err error) (status int, code, message string) {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return http.StatusBadRequest, ErrCodeValidationError, err.Error()
		}
	}

	switch {
	case errors.Is(err, models.ErrNodeNotFound):
		return http.StatusNotFound, ErrCodeNotFound, err.Error()
	case errors.Is(err, models.ErrNoPath):
		return http.StatusNotFound, ErrCodeNotFound, "no path of the requested depth"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout, "path search timed out"
	default:
		return http.StatusInternalServerError, ErrCodeInternalError, "internal server error"
	}
}
