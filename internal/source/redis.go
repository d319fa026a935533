package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"dwh-dashboard/internal/table"
)

const (
	redisVersionKey = "dashboard:feeds:version"
	redisKeyPrefix  = "dashboard:feed"
)

// RedisStore shares fetched rows between service instances. Keys carry a
// global version; Invalidate bumps it so every instance misses at once.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Version(ctx context.Context) (int64, error) {
	const op = "source.RedisStore.Version"

	ver, err := s.client.Get(ctx, redisVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ver, nil
}

func feedKey(d Domain, version int64) string {
	return strings.Join([]string{redisKeyPrefix, string(d), fmt.Sprint(version)}, ":")
}

func (s *RedisStore) Load(ctx context.Context, d Domain) ([]table.Row, bool, error) {
	const op = "source.RedisStore.Load"

	ver, err := s.Version(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	key := feedKey(d, ver)

	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: get %s: %w", op, key, err)
	}

	var rows []table.Row
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("%s: decode %s: %w", op, key, err)
	}
	return rows, true, nil
}

// Save writes rows under the key of version. Rows saved under an outdated
// version land on a key no Load reads and expire with ttl.
func (s *RedisStore) Save(ctx context.Context, d Domain, version int64, rows []table.Row, ttl time.Duration) error {
	const op = "source.RedisStore.Save"

	key := feedKey(d, version)

	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}

	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%s: set %s: %w", op, key, err)
	}
	return nil
}

func (s *RedisStore) Invalidate(ctx context.Context) error {
	const op = "source.RedisStore.Invalidate"

	if err := s.client.Incr(ctx, redisVersionKey).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
