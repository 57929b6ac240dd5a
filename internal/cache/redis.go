package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aquabot_telemetry/internal/models"

	"github.com/go-redis/redis/v8"
)

// WindowCache holds the last computed recency window so polling dashboards do not hit
// SQLite on every tick. Any Append must Invalidate it.
type WindowCache interface {
	Get(ctx context.Context, limit int) ([]models.StoredReading, bool, error)
	Set(ctx context.Context, limit int, readings []models.StoredReading) error
	Invalidate(ctx context.Context) error
	Close() error
}

// Options configures the Redis-backed cache.
type Options struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

const (
	keyPrefix  = "aquabot:window:"
	defaultTTL = 30 * time.Second
	pingWait   = 5 * time.Second
)

// windowKey is per limit so a differently sized window never serves the wrong length.
func windowKey(limit int) string {
	return fmt.Sprintf("%s%d", keyPrefix, limit)
}

// RedisWindow implements WindowCache on Redis.
type RedisWindow struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a Redis-backed cache, or a no-op cache when disabled.
func New(opts Options) (WindowCache, error) {
	if !opts.Enabled {
		return Noop{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingWait)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisWindow{client: client, ttl: ttl}, nil
}

func (c *RedisWindow) Get(ctx context.Context, limit int) ([]models.StoredReading, bool, error) {
	raw, err := c.client.Get(ctx, windowKey(limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var out []models.StoredReading
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, fmt.Errorf("decode cached window: %w", err)
	}
	return out, true, nil
}

func (c *RedisWindow) Set(ctx context.Context, limit int, readings []models.StoredReading) error {
	raw, err := json.Marshal(readings)
	if err != nil {
		return fmt.Errorf("encode window: %w", err)
	}
	return c.client.Set(ctx, windowKey(limit), raw, c.ttl).Err()
}

// Invalidate drops every cached window size.
func (c *RedisWindow) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisWindow) Close() error { return c.client.Close() }

// Noop is the cache used when Redis is disabled: every Get misses.
type Noop struct{}

func (Noop) Get(context.Context, int) ([]models.StoredReading, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, int, []models.StoredReading) error         { return nil }
func (Noop) Invalidate(context.Context) error                               { return nil }
func (Noop) Close() error                                                   { return nil }
