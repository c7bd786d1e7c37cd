package bin

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"vpos-orchestrator/internal/domain/terminal"
)

// binTTL is how long a resolved BIN is considered valid. BIN->bank/brand
// mappings are immutable once inserted (spec.md §5), so this is generous;
// it exists only to bound memory growth, not to model staleness.
const binTTL = 24 * time.Hour

// CachingResolver memoizes an underlying Resolver, first in an in-process
// TTL cache (grounded on internal/cache/memory's shape), then — if a redis
// client is configured — in a shared cache so multiple orchestrator
// replicas don't each cold-call the upstream lookup service for the same
// BIN (grounded on internal/cache/redis, adapted).
type CachingResolver struct {
	next  Resolver
	local *gocache.Cache
	redis *redis.Client
}

// NewCachingResolver wraps next with a local cache and, if redisClient is
// non-nil, a shared tier in front of it.
func NewCachingResolver(next Resolver, redisClient *redis.Client) *CachingResolver {
	return &CachingResolver{
		next:  next,
		local: gocache.New(binTTL, binTTL/2),
		redis: redisClient,
	}
}

func (c *CachingResolver) Resolve(ctx context.Context, binDigits string) (terminal.BinInfo, error) {
	if v, ok := c.local.Get(binDigits); ok {
		return v.(terminal.BinInfo), nil
	}

	if c.redis != nil {
		if raw, err := c.redis.Get(ctx, redisKey(binDigits)).Result(); err == nil {
			var info terminal.BinInfo
			if jsonErr := json.Unmarshal([]byte(raw), &info); jsonErr == nil {
				c.local.SetDefault(binDigits, info)
				return info, nil
			}
		}
	}

	info, err := c.next.Resolve(ctx, binDigits)
	if err != nil {
		return terminal.BinInfo{}, err
	}

	c.local.SetDefault(binDigits, info)
	if c.redis != nil {
		if raw, err := json.Marshal(info); err == nil {
			c.redis.Set(ctx, redisKey(binDigits), raw, binTTL)
		}
	}
	return info, nil
}

func redisKey(binDigits string) string { return "bin:" + binDigits }
