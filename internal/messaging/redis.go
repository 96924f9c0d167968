package messaging

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/salesgo/backend/domain"
)

// envelope is the wire format published to the Redis channel.
type envelope struct {
	Name       string          `json:"name"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// RedisPublisher publishes domain events to a Redis Pub/Sub channel.
type RedisPublisher struct {
	client  *redislib.Client
	channel string
	logger  *zap.Logger
}

func NewRedisPublisher(client *redislib.Client, channel string, logger *zap.Logger) *RedisPublisher {
	if channel == "" {
		channel = "sales.events"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Publish marshals the event and hands it to Redis. Delivery to subscribers is
// not acknowledged; a nil return only means the transport accepted it.
func (p *RedisPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	body, err := json.Marshal(envelope{
		Name:       event.EventName(),
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return err
	}
	p.logger.Debug("event published", zap.String("event", event.EventName()), zap.String("channel", p.channel))
	return nil
}
