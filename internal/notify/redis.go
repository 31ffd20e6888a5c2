package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecomputeChannel is the Redis pub/sub channel carrying recompute events.
const RecomputeChannel = "scheduler:recompute"

// RedisPublisher publishes recompute events to a Redis pub/sub channel.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher wraps an existing Redis client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(event Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal recompute event: %w", err)
	}

	if err := p.client.Publish(ctx, RecomputeChannel, data).Err(); err != nil {
		return fmt.Errorf("publish to redis: %w", err)
	}
	return nil
}

// Subscribe blocks, delivering decoded events to handler until ctx is done.
func (p *RedisPublisher) Subscribe(ctx context.Context, handler func(Event) error) error {
	pubsub := p.client.Subscribe(ctx, RecomputeChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to redis channel: %w", err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-ch:
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			if err := handler(event); err != nil {
				continue
			}
		}
	}
}
