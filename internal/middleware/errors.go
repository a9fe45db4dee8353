// Package middleware provides HTTP middleware for the graph kernel.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/persistorai/graphkernel/internal/httputil"
	"github.com/persistorai/graphkernel/internal/metrics"
)

// respondError writes the shared error body and counts it.
func respondError(c *gin.Context, code int, errCode, message string) {
	metrics.ErrorsTotal.WithLabelValues(errCode).Inc()
	httputil.RespondError(c, code, errCode, message)
}
