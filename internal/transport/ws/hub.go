// Package ws streams fog-of-war patches to browser or tool clients over
// WebSocket. A Hub is a fog render target: every engine upload becomes one
// JSON patch broadcast to all connected clients.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-fog/internal/fog"
)

// Message types.
const (
	TypeFrame = "frame" // full grid, sent on connect and after a client fell behind
	TypePatch = "patch" // one dirty span
)

// DefaultQueueSize bounds the per-client outgoing queue.
const DefaultQueueSize = 16

const writeTimeout = 5 * time.Second

// Message is the wire form of a frame or patch. Byte fields are base64
// encoded by encoding/json. Explored is omitted from a patch when the
// exploration field did not change.
type Message struct {
	Type       string `json:"type"`
	Seq        uint64 `json:"seq"`
	Cols       int    `json:"cols"`
	Rows       int    `json:"rows"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	W          int    `json:"w"`
	H          int    `json:"h"`
	Visibility []byte `json:"vis"`
	Explored   []byte `json:"explored,omitempty"`
}

// Status summarises hub activity.
type Status struct {
	Clients int    `json:"clients"`
	Uploads uint64 `json:"uploads"`
	Dropped uint64 `json:"dropped"`
	Cols    int    `json:"cols"`
	Rows    int    `json:"rows"`
}

type client struct {
	conn   *websocket.Conn
	out    chan []byte
	resync bool // a message was dropped; next send must be a full frame
}

// Hub keeps a copy of the encoded fog and fans patches out to clients.
type Hub struct {
	log       *log.Logger
	queueSize int
	upgrader  websocket.Upgrader

	mu       sync.Mutex
	cols     int
	rows     int
	vis      []uint8
	explored []uint8
	seq      uint64
	clients  map[*client]struct{}
	closed   bool

	dropped atomic.Uint64
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger used for connection events.
func WithLogger(l *log.Logger) Option {
	return func(h *Hub) { h.log = l }
}

// WithQueueSize sets the per-client queue bound.
func WithQueueSize(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.queueSize = n
		}
	}
}

// NewHub creates an empty hub. It is sized by the first upload.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		log:       log.Default(),
		queueSize: DefaultQueueSize,
		clients:   make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Upload implements fog.RenderTarget.
func (h *Hub) Upload(m *fog.Mirror, span fog.Region) {
	h.mu.Lock()
	defer h.mu.Unlock()

	full := false
	if m.Cols != h.cols || m.Rows != h.rows {
		h.cols, h.rows = m.Cols, m.Rows
		h.vis = make([]uint8, m.Cols*m.Rows)
		h.explored = make([]uint8, m.Cols*m.Rows)
		span = fog.FullRegion(m.Cols, m.Rows)
		full = true
	}
	span = span.Clamp(h.cols, h.rows)
	if !span.Valid {
		return
	}

	withExplored := m.ExploredChanged || full
	w, hgt := span.Width(), span.Height()
	msg := Message{
		Type: TypePatch,
		Cols: h.cols,
		Rows: h.rows,
		X:    span.MinX,
		Y:    span.MinY,
		W:    w,
		H:    hgt,
	}
	msg.Visibility = make([]byte, 0, w*hgt)
	if withExplored {
		msg.Explored = make([]byte, 0, w*hgt)
	}
	for y := span.MinY; y <= span.MaxY; y++ {
		start := y*h.cols + span.MinX
		end := start + w
		copy(h.vis[start:end], m.Visibility[start:end])
		msg.Visibility = append(msg.Visibility, m.Visibility[start:end]...)
		if withExplored {
			copy(h.explored[start:end], m.Explored[start:end])
			msg.Explored = append(msg.Explored, m.Explored[start:end]...)
		}
	}

	h.seq++
	msg.Seq = h.seq
	if len(h.clients) == 0 {
		return
	}

	b, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("ws: cannot encode patch", "err", err)
		return
	}
	var frame []byte
	for c := range h.clients {
		if c.resync {
			if frame == nil {
				frame = h.frameLocked()
			}
			if h.trySend(c, frame) {
				c.resync = false
			}
			continue
		}
		h.trySend(c, b)
	}
}

// trySend queues b without blocking. A full queue drops the message and marks
// the client for a full frame.
func (h *Hub) trySend(c *client, b []byte) bool {
	select {
	case c.out <- b:
		return true
	default:
		c.resync = true
		h.dropped.Add(1)
		return false
	}
}

// frameLocked encodes the whole grid. Returns nil before the first upload.
func (h *Hub) frameLocked() []byte {
	if h.cols == 0 || h.rows == 0 {
		return nil
	}
	b, err := json.Marshal(Message{
		Type:       TypeFrame,
		Seq:        h.seq,
		Cols:       h.cols,
		Rows:       h.rows,
		W:          h.cols,
		H:          h.rows,
		Visibility: h.vis,
		Explored:   h.explored,
	})
	if err != nil {
		h.log.Error("ws: cannot encode frame", "err", err)
		return nil
	}
	return b
}

func (h *Hub) register(conn *websocket.Conn) *client {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	c := &client{conn: conn, out: make(chan []byte, h.queueSize)}
	if frame := h.frameLocked(); frame != nil {
		c.out <- frame
	}
	h.clients[c] = struct{}{}
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.out)
}

// Handler upgrades requests to WebSocket and streams fog to the client until
// it disconnects. Incoming messages are ignored.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			h.log.Warn("ws: upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}
		defer conn.Close()

		c := h.register(conn)
		if c == nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(time.Second))
			return
		}
		h.log.Info("ws: client connected", "remote", r.RemoteAddr)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for b := range c.out {
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					_ = conn.Close()
					return
				}
			}
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		h.unregister(c)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
			time.Now().Add(time.Second))
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
		}
		h.log.Info("ws: client disconnected", "remote", r.RemoteAddr)
	}
}

// StatusHandler serves Status as JSON.
func (h *Hub) StatusHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(h.Status())
	}
}

// Status returns a snapshot of hub counters.
func (h *Hub) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Status{
		Clients: len(h.clients),
		Uploads: h.seq,
		Dropped: h.dropped.Load(),
		Cols:    h.cols,
		Rows:    h.rows,
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns how many messages were dropped for slow clients.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.out)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

var _ fog.RenderTarget = (*Hub)(nil)
