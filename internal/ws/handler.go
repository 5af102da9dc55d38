package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/airpong/backend/internal/game"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origins are checked by middleware.WebSocketCORSCheck
	},
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	sendBufferSize = 256
	maxMessageSize = 4096
)

// InputSink receives player input decoded from client messages.
type InputSink interface {
	SubmitPaddle(u game.PaddleUpdate) error
	RequestServe() error
}

// Client represents a connected WebSocket client
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	id   int
	send chan []byte
}

// Hub fans frame snapshots out to every connected renderer and forwards
// their input to the match.
type Hub struct {
	input      InputSink
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	nextID     int
}

// NewHub creates a new Hub. input may be nil for a spectator-only feed.
func NewHub(input InputSink) *Hub {
	return &Hub{
		input:      input,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] Client %d connected (%d total)", c.id, n)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] Client %d disconnected (%d total)", c.id, n)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Message is the envelope for everything sent over the socket.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// BroadcastSnapshot sends a frame snapshot to every client. Slow clients
// miss frames rather than stall the runner.
func (h *Hub) BroadcastSnapshot(s game.Snapshot) {
	h.broadcast("snapshot", s)
}

// BroadcastEvent sends a match event to every client.
func (h *Hub) BroadcastEvent(ev game.MatchEvent) {
	h.broadcast("event", ev)
}

func (h *Hub) broadcast(kind string, v interface{}) {
	data, err := encode(kind, v)
	if err != nil {
		log.Printf("[WS] Error marshaling %s: %v", kind, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

func encode(kind string, v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: kind, Data: raw})
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.mu.Unlock()

	c := &Client{hub: h, conn: conn, id: id, send: make(chan []byte, sendBufferSize)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] Write error for client %d: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error for client %d: %v", c.id, err)
				return
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Unexpected close for client %d: %v", c.id, err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("invalid message")
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg Message) {
	if c.hub.input == nil {
		c.sendError("input is disabled on this feed")
		return
	}

	switch msg.Type {
	case "paddle":
		var u game.PaddleUpdate
		if err := json.Unmarshal(msg.Data, &u); err != nil {
			c.sendError("invalid paddle update")
			return
		}
		if err := c.hub.input.SubmitPaddle(u); err != nil {
			c.sendError(err.Error())
		}

	case "serve":
		if err := c.hub.input.RequestServe(); err != nil {
			c.sendError(err.Error())
		}

	default:
		c.sendError("unknown message type: " + msg.Type)
	}
}

// sendError sends an error message to the client. c.send is closed once the
// client leaves the hub, so membership is checked under the lock.
func (c *Client) sendError(message string) {
	data, err := encode("error", map[string]string{"message": message})
	if err != nil {
		return
	}
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
