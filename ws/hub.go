// Package ws provides a websocket hub for pushing notification events
// (friend requests, post activity) to connected clients. Delivery is
// best-effort: a slow or dead client is dropped, never waited on.
package ws

import (
	"encoding/json"
	"log"
)

// Event is a notification pushed to a connected user.
type Event struct {
	Type    string      `json:"type"`
	From    string      `json:"from"`
	Payload interface{} `json:"payload,omitempty"`
}

// Event types emitted by the controllers.
const (
	EventFriendRequest  = "friend-request"
	EventFriendAccepted = "friend-accepted"
	EventPostLiked      = "post-liked"
	EventPostCommented  = "post-commented"
)

// Hub tracks connected clients and routes events to them by username. All
// registry mutation happens on the Run goroutine.
type Hub struct {
	clients     map[*Client]bool
	userClients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	direct     chan directMessage
}

type directMessage struct {
	username string
	message  []byte
}

// NewHub creates a Hub. Callers must start Run in a goroutine.
func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[string][]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		direct:      make(chan directMessage),
	}
}

// Run processes registration and delivery until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.userClients[client.Username] = append(h.userClients[client.Username], client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}

		case msg := <-h.direct:
			for _, client := range h.userClients[msg.username] {
				select {
				case client.Send <- msg.message:
				default:
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.Send)

	clients := h.userClients[client.Username]
	for i, c := range clients {
		if c == client {
			h.userClients[client.Username] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.userClients[client.Username]) == 0 {
		delete(h.userClients, client.Username)
	}
}

// Notify sends an event to every connection the user currently holds. A
// marshalling failure is logged and dropped; notifications never fail the
// request that triggered them.
func (h *Hub) Notify(username string, event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal ws event: %v", err)
		return
	}
	h.direct <- directMessage{username: username, message: message}
}
