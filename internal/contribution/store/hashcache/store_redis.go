// Package hashcache is a Redis-backed cache of data hashes known to be
// registered. Hashes are never removed from the registry, so a positive
// entry never goes stale and entries carry no TTL.
package hashcache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	platformredis "github.com/chiboi241-boop/EduScience/internal/platform/redis"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
)

var (
	lookupDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "registry_hash_cache_lookup_duration_ms",
		Help:    "Latency of hash cache lookups in milliseconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	})
	lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_hash_cache_lookups_total",
		Help: "Hash cache lookups by result",
	}, []string{"result"})
)

// RedisCache implements ports.ExistenceCache.
type RedisCache struct {
	client *platformredis.Client
}

func NewRedisCache(client *platformredis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Known reports whether hash was previously remembered. A miss does not mean
// the hash is absent from the registry.
func (c *RedisCache) Known(ctx context.Context, hash domain.DataHash) (bool, error) {
	start := time.Now()
	defer func() {
		lookupDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	n, err := c.client.Exists(ctx, c.client.Key(hash.String())).Result()
	if err != nil {
		lookups.WithLabelValues("error").Inc()
		return false, err
	}
	if n > 0 {
		lookups.WithLabelValues("hit").Inc()
		return true, nil
	}
	lookups.WithLabelValues("miss").Inc()
	return false, nil
}

// Remember records hash as registered.
func (c *RedisCache) Remember(ctx context.Context, hash domain.DataHash) error {
	return c.client.Set(ctx, c.client.Key(hash.String()), "1", 0).Err()
}

// Forget drops a cached hash the registry no longer holds.
func (c *RedisCache) Forget(ctx context.Context, hash domain.DataHash) error {
	return c.client.Del(ctx, c.client.Key(hash.String())).Err()
}
