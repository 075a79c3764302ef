package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const DefaultChannel = "battleship:events"

type deliverer interface {
	Deliver(gameID string, payload []byte) int
}

// Client - fans game events out to every instance through Redis Pub/Sub.
type Client struct {
	logger  *slog.Logger
	client  *redis.Client
	channel string
	local   deliverer
}

func New(logger *slog.Logger, client *redis.Client, channel string, local deliverer) *Client {
	return &Client{
		logger:  logger.With("component", "redis_relay"),
		client:  client,
		channel: channel,
		local:   local,
	}
}

// Publish - sends the event to all instances, this one included.
func (that *Client) Publish(ctx context.Context, event *entity.GameEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal game event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish game event in Redis: %w", err)
	}

	return nil
}

// Run - relays events received on the channel to local subscribers until ctx is done.
func (that *Client) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run", "channel", that.channel)

	pubsub := that.client.Subscribe(ctx, that.channel)
	defer func() {
		if err := pubsub.Close(); err != nil {
			log.Error("could not close subscription", "error", err)
		}
	}()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to Redis channel: %w", err)
	}

	log.Info("relay subscribed")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			that.relay(log, msg.Payload)
		}
	}
}

func (that *Client) relay(log *slog.Logger, payload string) {
	var event struct {
		GameID string `json:"gameId"`
	}

	if err := json.Unmarshal([]byte(payload), &event); err != nil || event.GameID == "" {
		log.Warn("skipping malformed game event", "error", err)
		return
	}

	that.local.Deliver(event.GameID, []byte(payload))
}
