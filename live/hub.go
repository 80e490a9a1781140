// Package live runs one page session per connected browser over a
// websocket. The browser reports geometry, scroll offsets and input; the
// session answers with style and state patches.
package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Zachkp/storyfolio/page"
)

const writeWait = 10 * time.Second

// Hub tracks the open sessions.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*Session)}
}

// Count returns the number of connected sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close drops every connection. Their event loops exit on the next read.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

func (h *Hub) add(conn *websocket.Conn, logger *slog.Logger) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		conn:   conn,
		logger: logger,
	}
	s.logger = logger.With("session", s.ID)

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	return s
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if ok {
		s.close()
	}
}

// Session is one browser connection. Send may be called from any
// goroutine; writes are serialized.
type Session struct {
	ID     string
	conn   *websocket.Conn
	logger *slog.Logger

	mu     sync.Mutex
	closed atomic.Bool
}

type helloMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Send implements page.Sink.
func (s *Session) Send(p page.Patch) {
	s.writeJSON(p)
}

func (s *Session) writeJSON(v any) bool {
	if s.closed.Load() {
		return false
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to marshal message", "error", err)
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Debug("write failed", "error", err)
		return false
	}
	return true
}

func (s *Session) close() {
	if s.closed.Swap(true) {
		return
	}
	s.mu.Lock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.mu.Unlock()
	s.conn.Close()
}
