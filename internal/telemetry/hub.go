// Package telemetry streams every cycle's command to debug viewers over a
// websocket.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zeusync/soccerbrain/internal/core/behavior"
	"github.com/zeusync/soccerbrain/internal/core/events/bus"
	"github.com/zeusync/soccerbrain/internal/core/observability/log"
)

const (
	// StreamPath is where viewers connect.
	StreamPath   = "/ws"
	sendBuffer   = 64
	writeTimeout = time.Second
)

// Hub fans cycle reports out to connected viewers. A viewer that cannot
// keep up is disconnected rather than slowing the control loop down.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]chan []byte
	upgrader websocket.Upgrader
	logger   log.Log
	sub      bus.Subscription
}

func NewHub(logger log.Log) *Hub {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With(log.String("component", "telemetry")),
	}
}

// Attach subscribes the hub to cycle reports on eb.
func (h *Hub) Attach(eb bus.EventBus) error {
	sub, err := eb.Subscribe(behavior.CycleReportEvent, func(e bus.Event) error {
		msg, err := json.Marshal(e.Data())
		if err != nil {
			return err
		}
		h.Broadcast(msg)
		return nil
	})
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.sub = sub
	h.mu.Unlock()
	return nil
}

// Handler returns the HTTP handler serving the stream at StreamPath.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(StreamPath, h.handleStream)
	return mux
}

func (h *Hub) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	ch := make(chan []byte, sendBuffer)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	h.logger.Info("viewer connected", log.String("remote", conn.RemoteAddr().String()))

	go h.writeLoop(conn, ch)
	// viewers never talk; reading only notices when they go away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(conn)
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, ch <-chan []byte) {
	for msg := range ch {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.drop(conn)
			return
		}
	}
}

// Broadcast queues msg for every viewer.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		select {
		case ch <- msg:
		default:
			h.logger.Warn("dropping slow viewer", log.String("remote", conn.RemoteAddr().String()))
			h.removeLocked(conn)
		}
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	h.removeLocked(conn)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(conn *websocket.Conn) {
	ch, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	close(ch)
	_ = conn.Close()
}

// Close detaches from the bus and disconnects every viewer.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	var err error
	if h.sub != nil {
		err = h.sub.Cancel()
		h.sub = nil
	}
	for conn := range h.clients {
		h.removeLocked(conn)
	}
	return err
}

// Serve runs an HTTP server for handler on addr until ctx is done.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
