package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"rag-symptom-be/internal/dto"
	"rag-symptom-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "consultation_events"

// Hub tracks websocket clients per consultation session and fans turn
// results out to them, across instances when Redis is configured.
type Hub struct {
	// Session ID -> clients watching that session
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance delivery, may be nil
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

type clusterPayload struct {
	Origin    string          `json:"origin"`
	SessionID string          `json:"session_id"`
	Message   json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run processes registrations until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("HUB", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.SessionID]
			for i, c := range clients {
				if c == client {
					h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
					close(client.Send)
					break
				}
			}
			if len(h.clients[client.SessionID]) == 0 {
				delete(h.clients, client.SessionID)
			}
			h.mu.Unlock()
			h.logger.Info("HUB", "Client unregistered", map[string]interface{}{"session_id": client.SessionID})
		}
	}
}

// TurnCompleted delivers a turn result to every watcher of the session
func (h *Hub) TurnCompleted(sessionID string, turn *dto.TurnResponse) {
	data, err := json.Marshal(Envelope{Type: MessageTypeTurn, Data: turn})
	if err != nil {
		h.logger.Error("HUB", "Failed to encode turn", map[string]interface{}{"error": err.Error()})
		return
	}
	h.deliverLocal(sessionID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterPayload{Origin: h.instanceID, SessionID: sessionID, Message: data})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("HUB", "Redis publish failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// Watchers returns how many local clients watch a session
func (h *Hub) Watchers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// deliverLocal sends without blocking while holding the read lock, so the
// unregister branch of Run cannot close a Send channel mid-delivery.
func (h *Hub) deliverLocal(sessionID string, data []byte) {
	dropped := 0
	h.mu.RLock()
	for _, client := range h.clients[sessionID] {
		select {
		case client.Send <- data:
		default:
			dropped++
		}
	}
	h.mu.RUnlock()

	if dropped > 0 {
		h.logger.Warn("HUB", "Client send buffer full, dropping message", map[string]interface{}{
			"session_id": sessionID,
			"dropped":    dropped,
		})
	}
}

// deliverTo sends to one client if it is still registered
func (h *Hub) deliverTo(client *Client, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients[client.SessionID] {
		if c != client {
			continue
		}
		select {
		case client.Send <- data:
			return true
		default:
			return false
		}
	}
	return false
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("HUB", "Redis message parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		// Already delivered locally by the publishing instance
		if payload.Origin == h.instanceID {
			continue
		}
		h.deliverLocal(payload.SessionID, payload.Message)
	}
}
