package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// New connects to Redis and verifies the connection.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	const op = "platform.cache.New"

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: ping %s: %w", op, addr, err)
	}
	return client, nil
}
