// internal/notification/hub.go

package notification

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/linkme-app/linkme-backend/internal/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Configure origin checking in production
		return true
	},
}

// Hub pushes notification events to connected clients over websockets.
type Hub struct {
	clients    map[int64]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
	userID int64
}

// Event is one push message delivered to a single user.
type Event struct {
	Type   Type        `json:"type"`
	UserID int64       `json:"user_id"`
	Data   interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]*Client),
		broadcast:  make(chan Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.userID] = client
			log.Printf("User %d connected to notification stream", client.userID)

		case client := <-h.unregister:
			if _, ok := h.clients[client.userID]; ok {
				delete(h.clients, client.userID)
				close(client.send)
				log.Printf("User %d disconnected from notification stream", client.userID)
			}

		case event := <-h.broadcast:
			if client, ok := h.clients[event.UserID]; ok {
				select {
				case client.send <- event:
				default:
					close(client.send)
					delete(h.clients, client.userID)
				}
			}
		}
	}
}

// Push delivers an event to the user if they are connected. It never blocks
// on a missing or slow client.
func (h *Hub) Push(userID int64, eventType Type, data interface{}) {
	h.broadcast <- Event{
		Type:   eventType,
		UserID: userID,
		Data:   data,
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan Event, 256),
		userID: userID,
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
