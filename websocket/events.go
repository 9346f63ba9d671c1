package websocket

import (
	"log"
	"net/http"
	"sync"

	"fightdeck/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// EventClient represents one client connected for live event updates.
type EventClient struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON serializes writes to the client's connection.
func (ec *EventClient) SafeWriteJSON(v interface{}) error {
	ec.writeMu.Lock()
	defer ec.writeMu.Unlock()
	return ec.Conn.WriteJSON(v)
}

// Hub fans match and achievement events out to connected clients. Events
// addressed to specific user ids are delivered only to their connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[*EventClient]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*EventClient]bool)}
}

func (h *Hub) Register(client *EventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	log.Printf("Event client registered. Total clients: %d", len(h.clients))
}

func (h *Hub) Unregister(client *EventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
	client.Conn.Close()
	log.Printf("Event client unregistered. Total clients: %d", len(h.clients))
}

// Publish implements services.EventSink. Delivery is best-effort: a failed
// write drops the client, never the event's source operation.
func (h *Hub) Publish(event models.Event) {
	recipients := make(map[string]bool, len(event.UserIDs))
	for _, id := range event.UserIDs {
		recipients[id] = true
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if len(recipients) > 0 && !recipients[client.UserID] {
			continue
		}
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting event to client: %v", err)
			go h.Unregister(client)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades an authenticated request to a websocket and keeps the
// connection registered until the peer goes away.
func (h *Hub) Handler(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	client := &EventClient{Conn: conn, UserID: userID}
	h.Register(client)

	go func() {
		defer h.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
