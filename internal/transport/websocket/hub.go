// Package websocket streams board frames to spectators over WebSocket.
// A Hub is fed from the game loop through Publish, which never blocks, and
// fans every frame out to the connected clients.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Spectators only send control frames.
	maxMessageSize = 512

	// Frames queued per client before it is dropped as too slow.
	sendBuffer = 256
)

// Event names carried by Message.
const (
	EventFrame  = "frame"
	EventResult = "result"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is one JSON document sent to spectators.
type Message struct {
	Event  string       `json:"event"`
	Frame  *t2048.Frame `json:"frame,omitempty"`
	Result *Result      `json:"result,omitempty"`
}

// Result summarizes a finished move.
type Result struct {
	Direction string `json:"direction"`
	Outcome   string `json:"outcome"`
	Changed   bool   `json:"changed"`
	Merges    int    `json:"merges"`
	Frames    int    `json:"frames"`
	MaxTile   int    `json:"max_tile"`
}

// Client is one connected spectator.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active spectators and broadcasts frames to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// last is replayed to clients as they join, so they see the board at once.
	last []byte

	count   atomic.Int64
	dropped atomic.Int64
	logger  *log.Logger
}

// NewHub creates a new spectator hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "t2048-watch",
		}),
	}
}

// SetLogger replaces the hub's logger.
func (h *Hub) SetLogger(l *log.Logger) {
	h.logger = l
}

// Run starts the hub's event loop and returns when ctx is done.
// A hub runs at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.unregisterClient(client)
			}
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case data := <-h.broadcast:
			h.last = data
			for client := range h.clients {
				h.deliver(client, data)
			}
		}
	}
}

// ServeHTTP upgrades the request and registers the connection as a spectator.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Publish queues a frame for every spectator. It is a t2048.RenderFunc and
// never blocks the game loop: when the queue is full the frame is dropped.
func (h *Hub) Publish(f t2048.Frame) {
	h.send(Message{Event: EventFrame, Frame: &f})
}

// PublishResult queues the summary of a finished move.
func (h *Hub) PublishResult(r t2048.Result, maxTile int) {
	h.send(Message{Event: EventResult, Result: &Result{
		Direction: r.Direction.String(),
		Outcome:   r.Outcome.String(),
		Changed:   r.Changed,
		Merges:    r.Merges,
		Frames:    r.Frames,
		MaxTile:   maxTile,
	}})
}

func (h *Hub) send(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		h.logger.Error("cannot encode message", "event", m.Event, "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.dropped.Add(1)
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Dropped returns how many messages were discarded because the queue was full.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
	h.count.Store(int64(len(h.clients)))
	if h.last != nil {
		h.deliver(client, h.last)
	}
	h.logger.Info("spectator joined", "clients", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.count.Store(int64(len(h.clients)))
	h.logger.Info("spectator left", "clients", len(h.clients))
}

// deliver hands data to a client, dropping the client when it cannot keep up.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.unregisterClient(client)
	}
}

// readPump keeps the connection alive and notices when the peer goes away.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // Deadline errors surface on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket error", "error", err)
			}
			return
		}
	}
}

// writePump sends one message per WebSocket frame and keeps the peer pinged.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			//nolint:errcheck // A failed deadline makes the write below fail
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // Peer may already be gone
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // A failed deadline makes the write below fail
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ListenAndServe serves the hub at /ws on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown
		srv.Shutdown(shutdownCtx)
	}()

	h.logger.Info("spectator stream listening", "address", addr, "path", "/ws")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
