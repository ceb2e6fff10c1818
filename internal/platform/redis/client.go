package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/chiboi241-boop/EduScience/internal/platform/config"
)

// Client wraps the go-redis client with the key prefix registry caches use.
type Client struct {
	*redis.Client
	prefix string
}

// New connects to Redis and verifies the connection with a ping.
// Returns nil, nil when no URL is configured.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client, prefix: cfg.KeyPrefix}, nil
}

// Wrap adopts an existing go-redis client, e.g. one built by a test container.
func Wrap(client *redis.Client, prefix string) *Client {
	return &Client{Client: client, prefix: prefix}
}

// Key namespaces k under the configured prefix.
func (c *Client) Key(k string) string {
	return c.prefix + k
}

// Health checks if the Redis connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
