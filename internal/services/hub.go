package services

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/courtsim/internal/sim"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now (should be restricted in production)
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// LiveClient is one websocket subscriber to the live match feed.
type LiveClient struct {
	conn *websocket.Conn
	send chan []byte
	hub  *LiveHub
}

// LiveMessage wraps a sim update for the wire.
type LiveMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// LiveHub fans simulation updates out to websocket subscribers.
type LiveHub struct {
	clients    map[*LiveClient]bool
	broadcast  chan LiveMessage
	register   chan *LiveClient
	unregister chan *LiveClient
	logger     *logrus.Logger
	mutex      sync.RWMutex
}

func NewLiveHub(logger *logrus.Logger) *LiveHub {
	return &LiveHub{
		clients:    make(map[*LiveClient]bool),
		broadcast:  make(chan LiveMessage, 256),
		register:   make(chan *LiveClient),
		unregister: make(chan *LiveClient),
		logger:     logger,
	}
}

// Run handles registration and broadcasting; call it once in a goroutine.
// The hub never writes to a connection itself; each client's writePump is
// the only writer on its conn.
func (h *LiveHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.logger.Debugf("live feed client connected (%d total)", len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg)
			if err != nil {
				h.logger.Errorf("failed to marshal live message: %v", err)
				continue
			}
			var slow []*LiveClient
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					slow = append(slow, client)
				}
			}
			h.mutex.RUnlock()
			// Slow consumers get dropped rather than blocking the feed.
			h.mutex.Lock()
			for _, client := range slow {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastUpdate publishes one sim update to every subscriber.
func (h *LiveHub) BroadcastUpdate(u sim.Update) {
	select {
	case h.broadcast <- LiveMessage{Type: u.Type, Data: u.Payload, Timestamp: time.Now().UTC()}:
	default:
		h.logger.Warn("live feed broadcast buffer full, dropping update")
	}
}

// ServeWS upgrades an HTTP request into a live feed subscription.
func (h *LiveHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("websocket upgrade failed: %v", err)
		return
	}
	client := &LiveClient{
		conn: conn,
		send: make(chan []byte, 64),
		hub:  h,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second // must be under pongWait
)

// writePump is the sole writer on the connection; pings go through it too.
func (c *LiveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *LiveClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
