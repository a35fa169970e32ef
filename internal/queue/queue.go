package queue

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// Broker wraps the Redis connection reserved for the background task
// queue. No tasks are enqueued yet; the broker only answers liveness
// checks.
type Broker struct {
	client *redis.Client
}

func New(redisURL string) (*Broker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	log.Println("Task queue broker configured")
	return &Broker{client: redis.NewClient(opts)}, nil
}

func (b *Broker) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *Broker) Close() error {
	return b.client.Close()
}
