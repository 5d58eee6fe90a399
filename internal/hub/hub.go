// Package hub fans viewer events out to Server-Sent Events clients.
//
// Frames carry increasing ids. A client that falls behind loses lossy frames
// (see Lossy); if it cannot take a state frame it is disconnected, and the
// page reconnects and reads a fresh snapshot.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"glossgraph/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Lossy is implemented by events that a newer event of the same kind
// supersedes, like per-tick positions
type Lossy interface {
	Lossy() bool
}

// reconnect is the retry hint sent to browsers, in milliseconds
const reconnect = 2000

// queueGrace bounds how long Broadcast waits on a full queue for a state
// event
const queueGrace = 100 * time.Millisecond

type client struct {
	id     string
	frames chan []byte
	kick   chan struct{}
}

// Hub manages SSE client connections
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	join     chan *client
	leave    chan *client
	outbound chan interface{}
	resync   chan struct{}

	seq       uint64
	keepAlive time.Duration
	onCount   func(int)
	logger    *zap.Logger
}

// New creates a hub; call Run to start it
func New(log *zap.Logger) *Hub {
	return &Hub{
		clients:   make(map[*client]struct{}),
		join:      make(chan *client),
		leave:     make(chan *client),
		outbound:  make(chan interface{}, 256),
		resync:    make(chan struct{}, 1),
		keepAlive: 30 * time.Second,
		logger:    logger.OrNop(log),
	}
}

// OnClientCount registers fn to be called with the client count whenever a
// client connects or disconnects
func (h *Hub) OnClientCount(fn func(int)) {
	h.onCount = fn
}

// Run delivers broadcasts until ctx is done, then disconnects every client
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.join:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("SSE client connected", zap.String("client", c.id), zap.Int("total", n))
			h.notifyCount(n)

		case c := <-h.leave:
			h.drop(c, "disconnected")

		case event := <-h.outbound:
			h.deliver(event)

		case <-h.resync:
			h.mu.RLock()
			all := make([]*client, 0, len(h.clients))
			for c := range h.clients {
				all = append(all, c)
			}
			h.mu.RUnlock()
			for _, c := range all {
				h.drop(c, "missed state event")
			}

		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.kick)
			}
			h.mu.Unlock()
			h.notifyCount(0)
			return
		}
	}
}

func (h *Hub) deliver(event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal event", zap.Error(err))
		return
	}
	h.seq++
	frame := []byte(fmt.Sprintf("id: %d\ndata: %s\n\n", h.seq, data))

	lossy := isLossy(event)

	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.frames <- frame:
		default:
			if !lossy {
				slow = append(slow, c)
			}
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.drop(c, "too slow for state frame")
	}
}

// drop removes c once; later calls for the same client are no-ops
func (h *Hub) drop(c *client, reason string) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.kick)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Debug("SSE client removed", zap.String("client", c.id), zap.String("reason", reason), zap.Int("total", n))
		h.notifyCount(n)
	}
}

func (h *Hub) notifyCount(n int) {
	if h.onCount != nil {
		h.onCount(n)
	}
}

// Broadcast queues an event for every client. A lossy event is dropped when
// the queue is full. A state event waits up to queueGrace; if it still
// cannot be queued every client is disconnected so it reconnects and reads a
// fresh snapshot.
func (h *Hub) Broadcast(event interface{}) {
	select {
	case h.outbound <- event:
		return
	default:
	}
	if isLossy(event) {
		return
	}

	timer := time.NewTimer(queueGrace)
	defer timer.Stop()
	select {
	case h.outbound <- event:
	case <-timer.C:
		h.logger.Warn("Broadcast queue full, resyncing clients")
		select {
		case h.resync <- struct{}{}:
		default:
		}
	}
}

func isLossy(event interface{}) bool {
	l, ok := event.(Lossy)
	return ok && l.Lossy()
}

// Forward broadcasts every value received on events until it is closed or
// ctx is done
func Forward[T any](ctx context.Context, h *Hub, events <-chan T) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			h.Broadcast(ev)
		case <-ctx.Done():
			return
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP streams events to one client
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	c := &client{
		id:     uuid.NewString(),
		frames: make(chan []byte, 64),
		kick:   make(chan struct{}),
	}

	select {
	case h.join <- c:
	case <-r.Context().Done():
		return
	}
	defer func() {
		select {
		case h.leave <- c:
		case <-c.kick:
		case <-time.After(time.Second):
		}
	}()

	fmt.Fprintf(w, "retry: %d\n: connected %s\n\n", reconnect, c.id)
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case frame := <-c.frames:
			if _, err := w.Write(frame); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-c.kick:
			return

		case <-r.Context().Done():
			return
		}
	}
}
