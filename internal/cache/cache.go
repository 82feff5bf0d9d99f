// Package cache stores solve results in Redis, keyed by a digest of the
// solve inputs. The engine is deterministic, so equal inputs always produce
// equal installations.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stanrw/enerwiseuk-sub000/internal/config"
	"github.com/stanrw/enerwiseuk-sub000/pkg/cost"
	"github.com/stanrw/enerwiseuk-sub000/pkg/insights"
	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
	"github.com/stanrw/enerwiseuk-sub000/pkg/project"
)

// Entry is a cached solve result.
type Entry struct {
	ID           string                     `json:"id"`
	Installation *installation.Installation `json:"installation"`
	Cost         *cost.Report               `json:"cost"`
}

// Cache is a Redis-backed result cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// New connects to the Redis server named by cfg.URL.
func New(ctx context.Context, cfg config.RedisConfig) (*Cache, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck // best effort on error path
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return NewWithClient(client, time.Duration(cfg.TTL)*time.Second, cfg.Prefix), nil
}

// NewWithClient wraps an existing client. A zero ttl keeps entries forever.
func NewWithClient(client *redis.Client, ttl time.Duration, prefix string) *Cache {
	return &Cache{client: client, ttl: ttl, prefix: prefix}
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Key returns the cache key for a solve: a SHA-256 digest of the insights,
// constraints and panel.
func Key(bi *insights.BuildingInsights, cons project.Constraints, panel project.PanelSpec) (string, error) {
	data, err := json.Marshal(struct {
		Insights    *insights.BuildingInsights `json:"insights"`
		Constraints project.Constraints        `json:"constraints"`
		Panel       project.PanelSpec          `json:"panel"`
	}{bi, cons, panel})
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Get returns the entry stored under key, or ErrMiss.
func (c *Cache) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}
	return &e, nil
}

// Set stores an entry under key.
func (c *Cache) Set(ctx context.Context, key string, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}
