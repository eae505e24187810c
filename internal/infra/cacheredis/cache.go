package cacheredis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"docvault/internal/domain"
)

const keyPrefix = "docvault:report:"

// Cache keeps validation reports in Redis so repeated audits of an
// unchanged version can be served across processes within the TTL.
type Cache struct {
	client *redis.Client
}

func New(addr, password string, db int) (*Cache, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{client: client}, nil
}

func (c *Cache) Get(ctx context.Context, key string) (*domain.ValidationReport, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var report domain.ValidationReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, err
	}
	return &report, true, nil
}

func (c *Cache) Put(ctx context.Context, key string, value domain.ValidationReport, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, payload, ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, keyPrefix+key)
	}
	return c.client.Del(ctx, prefixed...).Err()
}
