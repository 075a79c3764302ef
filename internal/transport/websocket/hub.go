package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/metrics"
)

// Hub - routes game events to the clients subscribed to that game on this instance.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	topics  map[string]map[*client]struct{}
	clients map[*client]map[string]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "websocket_hub"),
		topics:  make(map[string]map[*client]struct{}),
		clients: make(map[*client]map[string]struct{}),
	}
}

// Publish - delivers the event to local subscribers.
func (that *Hub) Publish(_ context.Context, event *entity.GameEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal game event: %w", err)
	}

	that.Deliver(event.GameID, payload)

	return nil
}

// Deliver - queues the payload for every subscriber of the game and returns how many got it.
// A subscriber whose queue is full misses the message.
func (that *Hub) Deliver(gameID string, payload []byte) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	delivered := 0
	for c := range that.topics[gameID] {
		if c.enqueue(payload) {
			delivered++
			continue
		}

		metrics.EventsDropped.Inc()
		that.logger.Warn("client queue full, message dropped", "method", "Deliver", "client", c.id, "gameID", gameID)
	}

	return delivered
}

// Subscribers - number of local clients subscribed to the game.
func (that *Hub) Subscribers(gameID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.topics[gameID])
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c] = make(map[string]struct{})
	metrics.WebSocketConnections.Inc()
}

func (that *Hub) subscribe(c *client, gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	topics, ok := that.clients[c]
	if !ok {
		return
	}

	if that.topics[gameID] == nil {
		that.topics[gameID] = make(map[*client]struct{})
	}

	that.topics[gameID][c] = struct{}{}
	topics[gameID] = struct{}{}
}

func (that *Hub) unsubscribe(c *client, gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.detach(c, gameID)
	delete(that.clients[c], gameID)
}

// unregister - drops the client from every topic. After it returns no Deliver touches the client.
func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	topics, ok := that.clients[c]
	if !ok {
		return
	}

	for gameID := range topics {
		that.detach(c, gameID)
	}

	delete(that.clients, c)
	metrics.WebSocketConnections.Dec()
}

// Close - closes every open connection, their read loops then unregister them.
func (that *Hub) Close() {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for c := range that.clients {
		c.close()
	}
}

func (that *Hub) detach(c *client, gameID string) {
	subscribers := that.topics[gameID]
	delete(subscribers, c)

	if len(subscribers) == 0 {
		delete(that.topics, gameID)
	}
}
