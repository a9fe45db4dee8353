// Package ws streams path search results over WebSocket connections.
package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/metrics"
)

// ErrTooManyStreams is returned by Open when the hub is at capacity.
var ErrTooManyStreams = errors.New("too many concurrent path streams")

// Hub tracks open path streams and caps how many may run at once.
type Hub struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
	max      int
	closed   bool
	log      *logrus.Logger
}

// NewHub creates a Hub that allows at most maxStreams concurrent streams.
func NewHub(maxStreams int, log *logrus.Logger) *Hub {
	return &Hub{
		sessions: make(map[*Session]struct{}),
		max:      maxStreams,
		log:      log,
	}
}

// Open registers a stream on conn. When the hub is full or shutting down
// the connection is closed with StatusTryAgainLater and ErrTooManyStreams
// is returned without waiting for the client to answer the close.
func (h *Hub) Open(ctx context.Context, conn *websocket.Conn, requestID string) (*Session, error) {
	h.mu.Lock()
	if h.closed || (h.max > 0 && len(h.sessions) >= h.max) {
		h.mu.Unlock()
		go conn.Close(websocket.StatusTryAgainLater, "too many streams") //nolint:errcheck // best-effort

		return nil, ErrTooManyStreams
	}

	s := newSession(ctx, h, conn, h.log.WithField("request_id", requestID))
	h.sessions[s] = struct{}{}
	h.mu.Unlock()

	metrics.ActiveStreams.Inc()

	return s, nil
}

func (h *Hub) unregister(s *Session) {
	h.mu.Lock()
	_, ok := h.sessions[s]
	delete(h.sessions, s)
	h.mu.Unlock()

	if ok {
		metrics.ActiveStreams.Dec()
	}
}

// Count returns the number of open streams.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.sessions)
}

// Shutdown refuses new streams and cancels the running ones. Their
// handlers finish by closing the sessions.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.closed = true

	sessions := make([]*Session, 0, len(h.sessions))
	for s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.cancel()
	}

	h.log.WithField("streams", len(sessions)).Info("path stream hub shut down")
}
