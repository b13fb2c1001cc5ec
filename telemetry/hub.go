// Package telemetry streams controller state to websocket clients and
// accepts remote commands for the controlled body.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait          = 2 * time.Second
	maxPendingCommands = 256
)

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans snapshots out to every connected client and queues the
// commands they send until the simulation drains them.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	pending     []Command
	dropped     int

	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: log,
	}
}

// Handler upgrades the request and serves one client until it disconnects.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(h.handle)
}

func (h *Hub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()
	h.log.Info("telemetry client connected", zap.String("remote", r.RemoteAddr))

	defer h.drop(sub)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(payload, &cmd); err != nil {
			h.log.Debug("discarding malformed command", zap.String("remote", r.RemoteAddr), zap.Error(err))
			continue
		}
		h.enqueue(cmd)
	}
}

func (h *Hub) enqueue(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.pending) >= maxPendingCommands {
		h.dropped++
		return
	}
	h.pending = append(h.pending, cmd)
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	_, ok := h.subscribers[sub]
	delete(h.subscribers, sub)
	h.mu.Unlock()
	if ok {
		_ = sub.conn.Close()
		h.log.Info("telemetry client disconnected", zap.String("remote", sub.conn.RemoteAddr().String()))
	}
}

// Drain returns the queued commands in arrival order and clears the queue.
func (h *Hub) Drain() []Command {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dropped > 0 {
		h.log.Warn("telemetry command queue overflowed", zap.Int("dropped", h.dropped))
		h.dropped = 0
	}
	out := h.pending
	h.pending = nil
	return out
}

// Publish sends snap to every client. Clients whose write fails are
// disconnected.
func (h *Hub) Publish(snap Snapshot) error {
	h.mu.Lock()
	if len(h.subscribers) == 0 {
		h.mu.Unlock()
		return nil
	}
	subs := make([]*subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		if err := sub.write(data); err != nil {
			h.drop(sub)
		}
	}
	return nil
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// ListenAndServe serves /ws on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	h.log.Info("telemetry listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		h.closeAll()
		return nil
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	subs := h.subscribers
	h.subscribers = make(map[*subscriber]struct{})
	h.mu.Unlock()
	for sub := range subs {
		sub.mu.Lock()
		_ = sub.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(writeWait))
		sub.mu.Unlock()
		_ = sub.conn.Close()
	}
}
