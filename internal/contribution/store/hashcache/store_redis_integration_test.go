//go:build integration

package hashcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/chiboi241-boop/EduScience/internal/contribution/store/hashcache"
	platformredis "github.com/chiboi241-boop/EduScience/internal/platform/redis"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *hashcache.RedisCache
	ctx   context.Context
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = hashcache.NewRedisCache(platformredis.Wrap(s.redis.Client, "test:hash:"))
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *RedisCacheSuite) TestRememberThenKnown() {
	var h domain.DataHash
	h[0] = 0x42

	known, err := s.cache.Known(s.ctx, h)
	s.Require().NoError(err)
	s.False(known)

	s.Require().NoError(s.cache.Remember(s.ctx, h))

	known, err = s.cache.Known(s.ctx, h)
	s.Require().NoError(err)
	s.True(known)

	ttl, err := s.redis.Client.TTL(s.ctx, "test:hash:"+h.String()).Result()
	s.Require().NoError(err)
	s.Equal(time.Duration(-1), ttl, "entries carry no expiry")
}

func (s *RedisCacheSuite) TestForget() {
	var h domain.DataHash
	h[0] = 0x07
	s.Require().NoError(s.cache.Remember(s.ctx, h))
	s.Require().NoError(s.cache.Forget(s.ctx, h))

	known, err := s.cache.Known(s.ctx, h)
	s.Require().NoError(err)
	s.False(known)

	s.NoError(s.cache.Forget(s.ctx, h), "forgetting an absent hash is a no-op")
}

func (s *RedisCacheSuite) TestClientHealth() {
	s.NoError(platformredis.Wrap(s.redis.Client, "test:hash:").Health(s.ctx))
}

func (s *RedisCacheSuite) TestKeysArePrefixed() {
	var h domain.DataHash
	h[31] = 0x01
	s.Require().NoError(s.cache.Remember(s.ctx, h))

	n, err := s.redis.Client.Exists(s.ctx, "test:hash:"+h.String()).Result()
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}
