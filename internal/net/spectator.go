package net

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/l1jgo/townsfolk/internal/world"
)

const allRegions = -1

type watcher struct {
	region int // allRegions for the whole world
	out    chan string
}

// Hub is the read-only spectator feed. It receives every narrated line and
// fans it out to watchers, optionally filtered to one region. Slow watchers
// lose lines rather than stall the narrators.
type Hub struct {
	mu       sync.RWMutex
	watchers map[*watcher]struct{}
	dropped  atomic.Uint64
	queue    int
	timeout  time.Duration
	log      *zap.Logger
}

func NewHub(queue int, writeTimeout time.Duration, log *zap.Logger) *Hub {
	return &Hub{
		watchers: make(map[*watcher]struct{}),
		queue:    max(queue, 1),
		timeout:  writeTimeout,
		log:      log,
	}
}

// Narrate implements world.Narrator.
func (h *Hub) Narrate(at world.Coordinates, text string) {
	line := fmt.Sprintf("[%s] %s", at, text)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for w := range h.watchers {
		if w.region != allRegions && w.region != at.Region {
			continue
		}
		select {
		case w.out <- line:
		default:
			h.dropped.Add(1)
		}
	}
}

// Watchers is the number of connected spectators.
func (h *Hub) Watchers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers)
}

// Dropped counts lines lost to full watcher queues.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

func (h *Hub) add(region int) *watcher {
	w := &watcher{region: region, out: make(chan string, h.queue)}
	h.mu.Lock()
	h.watchers[w] = struct{}{}
	h.mu.Unlock()
	return w
}

func (h *Hub) remove(w *watcher) {
	h.mu.Lock()
	delete(h.watchers, w)
	h.mu.Unlock()
}

// serve streams narration to one upgraded connection until it goes away.
// "?region=N" restricts the feed to one region.
func (h *Hub) serve(conn *websocket.Conn, r *http.Request) {
	defer conn.Close()

	region := allRegions
	if v := r.URL.Query().Get("region"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "bad region"),
				time.Now().Add(time.Second))
			return
		}
		region = n
	}

	w := h.add(region)
	defer h.remove(w)
	h.log.Info("spectator connected", zap.String("ip", r.RemoteAddr), zap.Int("region", region))

	// Reader only notices the close; spectators never send anything useful.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			h.log.Info("spectator disconnected", zap.String("ip", r.RemoteAddr))
			return
		case line := <-w.out:
			if err := WriteFrame(conn, line, h.timeout); err != nil {
				return
			}
		}
	}
}
