package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/models"
)

const (
	writeTimeout      = 10 * time.Second
	sessionSendBuffer = 64
	maxStreamLifetime = 10 * time.Minute
	pingInterval      = 30 * time.Second
	pingTimeout       = 10 * time.Second
	maxMissedPongs    = int32(2)
)

// ErrSessionClosed is returned by the Send methods once the peer has gone
// away or the session has been closed.
var ErrSessionClosed = errors.New("path stream closed")

// Session streams the results of one search over one connection. Messages
// are queued by the searching goroutine and written by a write pump, which
// also keeps the connection alive with pings.
type Session struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	log  *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce   sync.Once
	writerDone  chan struct{}
	status      websocket.StatusCode
	reason      string
	sent        int
	connectedAt time.Time
}

func newSession(ctx context.Context, hub *Hub, conn *websocket.Conn, log *logrus.Entry) *Session {
	// CloseRead cancels the context when the peer closes the connection.
	ctx = conn.CloseRead(ctx)
	ctx, cancel := context.WithTimeout(ctx, maxStreamLifetime)

	s := &Session{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sessionSendBuffer),
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
		writerDone:  make(chan struct{}),
		status:      websocket.StatusNormalClosure,
		connectedAt: time.Now(),
	}

	go s.writePump()

	return s
}

// Context is done when the peer disconnects, the stream outlives its
// maximum lifetime, or the hub shuts down. Searches should run under it.
func (s *Session) Context() context.Context { return s.ctx }

// Sent reports how many paths have been queued.
func (s *Session) Sent() int { return s.sent }

// SendPath queues one path. It blocks while the send buffer is full.
func (s *Session) SendPath(p models.Path) error {
	s.sent++

	return s.enqueue(PathMsg{Type: TypePath, Seq: s.sent, Path: p})
}

// SendDone queues the final message of a successful stream.
func (s *Session) SendDone(stats *models.PathStats) error {
	return s.enqueue(DoneMsg{Type: TypeDone, Count: s.sent, Stats: stats})
}

// SendError queues the final message of a failed stream.
func (s *Session) SendError(code, message string) error {
	return s.enqueue(ErrorMsg{Type: TypeError, Code: code, Message: message})
}

func (s *Session) enqueue(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding stream message: %w", err)
	}

	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionClosed, err)
	}

	select {
	case s.send <- msg:
		return nil
	case <-s.ctx.Done():
		return fmt.Errorf("%w: %w", ErrSessionClosed, s.ctx.Err())
	}
}

// Close flushes queued messages, closes the connection with a normal
// closure and unregisters the session. It is safe to call more than once.
func (s *Session) Close() {
	s.closeWith(websocket.StatusNormalClosure, "")
}

func (s *Session) closeWith(status websocket.StatusCode, reason string) {
	s.closeOnce.Do(func() {
		s.status, s.reason = status, reason
		close(s.send)
		<-s.writerDone
		s.cancel()
		s.hub.unregister(s)
	})
}

// writePump writes queued messages until the send channel is closed or a
// write fails.
func (s *Session) writePump() {
	defer close(s.writerDone)

	pingTicker := time.NewTicker(pingInterval)
	defer pingTicker.Stop()

	var missedPongs atomic.Int32

	for {
		select {
		case <-pingTicker.C:
			if s.sendPing(&missedPongs) {
				s.abort()

				return
			}
		case msg, ok := <-s.send:
			if !ok {
				s.conn.Close(s.status, s.reason) //nolint:errcheck // best-effort close handshake.

				return
			}

			writeCtx, cancel := context.WithTimeout(s.ctx, writeTimeout)
			err := s.conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()

			if err != nil {
				s.log.WithError(err).Debug("stream write failed")
				s.abort()

				return
			}
		}
	}
}

// abort stops the producer and drops the connection. Messages still
// queued are discarded.
func (s *Session) abort() {
	s.cancel()
	s.conn.CloseNow() //nolint:errcheck // best-effort close on teardown
}

// sendPing sends a WebSocket ping and tracks missed pongs.
// Returns true if the connection should be closed.
func (s *Session) sendPing(missedPongs *atomic.Int32) bool {
	pingCtx, cancel := context.WithTimeout(s.ctx, pingTimeout)
	err := s.conn.Ping(pingCtx)
	cancel()

	if err != nil {
		if missedPongs.Add(1) >= maxMissedPongs {
			s.log.Debug("closing stream: 2 consecutive missed pongs")

			return true
		}

		return false
	}

	missedPongs.Store(0)

	return false
}
