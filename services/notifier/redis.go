package notifier

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier implements Notifier using a Redis stream
type RedisNotifier struct {
	client    *redis.Client
	ctx       context.Context
	stream    string
	maxLength int64
}

// NewRedisNotifier creates a new Redis stream notifier
func NewRedisNotifier(ctx context.Context, addr string, db int, stream string, maxLength int64) *RedisNotifier {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisNotifier{
		client:    client,
		ctx:       ctx,
		stream:    stream,
		maxLength: maxLength,
	}
}

// Notify appends the message to the Redis stream, trimming it to the
// configured maximum length
func (n *RedisNotifier) Notify(message string) error {
	return n.client.XAdd(n.ctx, &redis.XAddArgs{
		Stream: n.stream,
		MaxLen: n.maxLength,
		Approx: true,
		Values: map[string]interface{}{
			"message": message,
		},
	}).Err()
}

// Close closes the Redis connection
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
