package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/middleware"
	"github.com/persistorai/graphkernel/internal/ws"
)

// StreamHandler serves path search results over a WebSocket.
type StreamHandler struct {
	repo        GraphService
	hub         *ws.Hub
	corsOrigins []string
	log         *logrus.Logger
}

// NewStreamHandler creates a StreamHandler.
func NewStreamHandler(repo GraphService, hub *ws.Hub, corsOrigins []string, log *logrus.Logger) *StreamHandler {
	return &StreamHandler{repo: repo, hub: hub, corsOrigins: corsOrigins, log: log}
}

// Stream handles GET /api/v1/graph/paths/:from/:to/stream. The query is
// checked before the upgrade; afterwards every path is one "path" message
// and the stream ends with a "done" or "error" message.
func (h *StreamHandler) Stream(c *gin.Context) {
	q, err := parsePathQuery(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	// gin's writer only hijacks through its Unwrap.
	var w http.ResponseWriter = c.Writer
	if u, ok := w.(interface{ Unwrap() http.ResponseWriter }); ok {
		w = u.Unwrap()
	}

	// CORS origins are reused as WebSocket origin patterns.
	conn, err := websocket.Accept(w, c.Request, &websocket.AcceptOptions{
		OriginPatterns:       h.corsOrigins,
		CompressionMode:      websocket.CompressionContextTakeover,
		CompressionThreshold: 128,
	})
	if err != nil {
		h.log.WithError(err).Error("websocket accept failed")

		return
	}

	session, err := h.hub.Open(c.Request.Context(), conn, c.GetString(middleware.RequestIDKey))
	if err != nil {
		h.log.WithError(err).Warn("rejecting path stream")

		return
	}
	defer session.Close()

	stats, err := h.repo.StreamPaths(session.Context(), q, session.SendPath)
	if err != nil {
		if errors.Is(err, ws.ErrSessionClosed) || errors.Is(err, context.Canceled) {
			h.log.WithField("sent", session.Sent()).Debug("path stream ended by client")

			return
		}

		status, code, message := classifySearchError(err)
		if status == http.StatusInternalServerError {
			h.log.WithError(err).Error("streaming paths")
		}

		session.SendError(code, message) //nolint:errcheck // peer may be gone.

		return
	}

	session.SendDone(stats) //nolint:errcheck // peer may be gone.
}
