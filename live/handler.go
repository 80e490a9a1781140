package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Zachkp/storyfolio/frame"
	"github.com/Zachkp/storyfolio/page"
)

const (
	DefaultFrameRate = 60
	eventBuffer      = 256
)

// PageFactory builds the page a new session drives.
type PageFactory func(sink page.Sink) *page.Page

type HandlerConfig struct {
	Logger    *slog.Logger
	FrameRate int
	NewPage   PageFactory
}

type Handler struct {
	hub      *Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
	newPage  PageFactory
	interval time.Duration
}

func NewHandler(hub *Hub, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rate := cfg.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return &Handler{
		hub:      hub,
		logger:   logger,
		upgrader: upgrader,
		newPage:  cfg.NewPage,
		interval: time.Second / time.Duration(rate),
	}
}

// Handle upgrades the request and runs the session until the browser
// disconnects. Events are read on a separate goroutine and applied by the
// frame loop, so the page only ever sees one goroutine.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess := h.hub.add(conn, h.logger)
	defer h.hub.remove(sess.ID)
	sess.logger.Info("live session opened", "remote", r.RemoteAddr)

	if !sess.writeJSON(helloMessage{Type: "hello", ID: sess.ID}) {
		return
	}

	pg := h.newPage(sess)
	defer pg.Close()

	events := make(chan page.Event, eventBuffer)
	done := make(chan struct{})
	go h.read(sess, events, done)

	ctx := context.WithoutCancel(r.Context())
	frame.Run(h.interval, done, func(now time.Time) {
	drain:
		for {
			select {
			case ev := <-events:
				if err := pg.Handle(ctx, ev); err != nil {
					sess.logger.Debug("event rejected", "type", ev.Type, "error", err)
				}
			default:
				break drain
			}
		}
		pg.Tick(now)
	})
	sess.logger.Info("live session closed")
}

func (h *Handler) read(sess *Session, events chan<- page.Event, done chan<- struct{}) {
	defer close(done)
	for {
		_, payload, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}

		var ev page.Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			sess.logger.Warn("discarding malformed message", "error", err)
			continue
		}
		events <- ev
	}
}
