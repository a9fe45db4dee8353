// Package api provides HTTP handlers for the graph kernel.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	storage   Pinger
	streams   func() int
	log       *logrus.Logger
	version   string
	backend   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. storage and streams may be nil.
func NewHealthHandler(storage Pinger, streams func() int, log *logrus.Logger, version, backend string) *HealthHandler {
	return &HealthHandler{
		storage:   storage,
		streams:   streams,
		log:       log,
		version:   version,
		backend:   backend,
		startTime: time.Now(),
	}
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Backend       string  `json:"backend"`
	Storage       string  `json:"storage"`
	ActiveStreams int     `json:"active_streams"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/v1/health. The storage ping is informational;
// liveness never fails on it.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		Backend:       h.backend,
		Storage:       "connected",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.storage.Ping(ctx); err != nil {
			resp.Storage = "disconnected"
		}
	} else {
		resp.Storage = "not_configured"
	}

	if h.streams != nil {
		resp.ActiveStreams = h.streams()
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready and answers 503 until storage responds.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{"storage": "ok"}
	status := "ready"
	statusCode := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	switch {
	case h.storage == nil:
		checks["storage"] = "not_configured"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	default:
		if err := h.storage.Ping(ctx); err != nil {
			h.log.WithError(err).Error("readiness: storage ping failed")
			checks["storage"] = "error"
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.JSON(statusCode, readinessResponse{
		Status: status,
		Checks: checks,
	})
}
