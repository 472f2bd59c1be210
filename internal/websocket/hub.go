package websocket

import (
	"sync"
	"time"

	"gogrind/pkg/logger"
)

// Hub tracks connected clients and routes push events to them. It
// implements the notifier the services publish through.
type Hub struct {
	// All registered connections
	clients map[*Client]bool

	// Connections grouped by user ID
	userClients map[string]map[*Client]bool

	// Connections subscribed to each space
	spaceClients map[string]map[*Client]bool

	Register   chan *Client
	Unregister chan *Client

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		userClients:  make(map[string]map[*Client]bool),
		spaceClients: make(map[string]map[*Client]bool),
		Register:     make(chan *Client),
		Unregister:   make(chan *Client),
	}
}

// Run processes client registration until the process exits
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	if h.userClients[client.UserID] == nil {
		h.userClients[client.UserID] = make(map[*Client]bool)
	}
	h.userClients[client.UserID][client] = true

	logger.WithFields(map[string]interface{}{
		"user_id":       client.UserID,
		"total_clients": len(h.clients),
	}).Info("Client connected")

	client.Push(NewEvent(EventConnected, map[string]interface{}{
		"user_id":     client.UserID,
		"server_time": time.Now(),
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)

	if conns := h.userClients[client.UserID]; conns != nil {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.userClients, client.UserID)
		}
	}

	for spaceID := range client.spaces {
		h.dropFromSpace(client, spaceID)
	}

	close(client.send)

	logger.WithFields(map[string]interface{}{
		"user_id":       client.UserID,
		"total_clients": len(h.clients),
	}).Info("Client disconnected")
}

// Subscribe adds the connection to a space's event feed
func (h *Hub) Subscribe(client *Client, spaceID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.spaceClients[spaceID] == nil {
		h.spaceClients[spaceID] = make(map[*Client]bool)
	}
	h.spaceClients[spaceID][client] = true
	client.spaces[spaceID] = true
}

// Unsubscribe removes the connection from a space's event feed
func (h *Hub) Unsubscribe(client *Client, spaceID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropFromSpace(client, spaceID)
}

// dropFromSpace expects h.mu held
func (h *Hub) dropFromSpace(client *Client, spaceID string) {
	if subscribers, exists := h.spaceClients[spaceID]; exists {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.spaceClients, spaceID)
		}
	}
	delete(client.spaces, spaceID)
}

// NotifyUser pushes an event to every connection a user holds
func (h *Hub) NotifyUser(userID, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := h.userClients[userID]
	if len(conns) == 0 {
		return
	}

	e := NewEvent(event, payload)
	for client := range conns {
		client.Push(e)
	}
}

// NotifySpace pushes an event to every subscriber of a space, except
// the excluded user (usually the actor who caused the event).
func (h *Hub) NotifySpace(spaceID, excludeUserID, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subscribers := h.spaceClients[spaceID]
	if len(subscribers) == 0 {
		return
	}

	e := NewEvent(event, payload)
	e.SpaceID = spaceID
	for client := range subscribers {
		if client.UserID == excludeUserID {
			continue
		}
		client.Push(e)
	}
}

// OnlineUsers reports how many distinct users are connected
func (h *Hub) OnlineUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userClients)
}
