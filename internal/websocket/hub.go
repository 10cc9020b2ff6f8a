package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/thereayou/crocnet/internal/events"
)

type MessageType string

const (
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"

	TypeUserOnline     MessageType = "user_online"
	TypeUserOffline    MessageType = "user_offline"
	TypeUserRegistered MessageType = MessageType(events.TypeUserRegistered)
)

const pingInterval = 30 * time.Second

type Message struct {
	Type      MessageType     `json:"type"`
	UserID    string          `json:"user_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub tracks connected clients and fans directory events out to them.
type Hub struct {
	clients map[uuid.UUID]*Client

	// one user may hold several connections
	userClients map[string]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu  sync.RWMutex
	log zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(log zerolog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[string]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (h *Hub) Run() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop ends Run and closes every connection.
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
		delete(h.clients, id)
	}
	h.userClients = make(map[string]map[uuid.UUID]*Client)
}

func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.ctx.Done():
		return ErrHubStopped
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Stop may already have swept the maps
	if h.ctx.Err() != nil {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
		return
	}

	h.clients[client.ID] = client

	first := false
	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
		first = true
	}
	h.userClients[client.UserID][client.ID] = client

	h.log.Debug().Str("client_id", client.ID.String()).Str("user_id", client.UserID).Msg("client registered")

	if first {
		h.notifyUserStatus(client.UserID, TypeUserOnline)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)
			h.notifyUserStatus(client.UserID, TypeUserOffline)
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	h.log.Debug().Str("client_id", client.ID.String()).Str("user_id", client.UserID).Msg("client unregistered")
}

// Publish delivers a user event to every connected client.
func (h *Hub) Publish(_ context.Context, event events.UserEvent) error {
	data, err := json.Marshal(event.User)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(Message{
		Type:      MessageType(event.Type),
		UserID:    event.User.ID,
		Data:      data,
		Timestamp: event.Timestamp,
	})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	h.broadcast(msg)
	return nil
}

// caller holds h.mu
func (h *Hub) broadcast(data []byte) {
	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			h.log.Warn().Str("client_id", client.ID.String()).Msg("client send channel full")
		}
	}
}

// caller holds h.mu
func (h *Hub) notifyUserStatus(userID string, status MessageType) {
	msg := Message{
		Type:      status,
		UserID:    userID,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		h.broadcast(data)
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		h.broadcast(data)
	}
}

// OnlineUsers returns the ids of users with at least one open connection.
func (h *Hub) OnlineUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]string, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}
