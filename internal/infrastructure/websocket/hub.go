package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"boardshelf/pkg/logger"
)

// Client is one connected record-feed subscriber.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans the latest record collection out to every connected client. Each
// broadcast carries the full list; clients replace their local state
// wholesale instead of reconciling deltas.
type Hub struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte

	mutex sync.RWMutex
	last  []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Start runs the hub's main loop in a goroutine until ctx is cancelled.
func (h *Hub) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-h.Register:
				h.mutex.Lock()
				h.clients[client.ID] = client
				last := h.last
				h.mutex.Unlock()
				// New clients get the latest snapshot immediately.
				if last != nil {
					client.Send <- last
				}
				logger.Debug("Record feed client registered: %s", client.ID)

			case client := <-h.Unregister:
				h.mutex.Lock()
				if _, ok := h.clients[client.ID]; ok {
					delete(h.clients, client.ID)
					close(client.Send)
				}
				h.mutex.Unlock()
				logger.Debug("Record feed client unregistered: %s", client.ID)

			case message := <-h.broadcast:
				h.mutex.Lock()
				h.last = message
				for id, client := range h.clients {
					select {
					case client.Send <- message:
					default:
						close(client.Send)
						delete(h.clients, id)
					}
				}
				h.mutex.Unlock()

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Broadcast queues a message for every connected client.
func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

// ReadPump drains the connection until the client disconnects.
func (c *Client) ReadPump(h *Hub) {
	defer func() {
		h.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Record feed read error: %v", err)
			}
			break
		}
	}
}

// WritePump sends queued messages to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("Record feed write error: %v", err)
			return
		}
	}
}
