package db

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/xvxsamuel/aram-pig-sub000/internal/aggregate"
)

// BaselineSource is the read surface the scoring side needs.
type BaselineSource interface {
	Load(ctx context.Context, champion, patch string) (*aggregate.ChampionPatchAggregate, error)
	LoadLatestBefore(ctx context.Context, champion, patch string) (*aggregate.ChampionPatchAggregate, error)
}

// CachedBaselines is a read-through TTL cache in front of a BaselineSource.
// Baselines only grow through flush cycles, so serving a snapshot a few
// minutes old is fine for scoring, and champion/patch keys are hot: every
// scored game for the same champion reads the same blob.
//
// Negative results are cached too, so champions without data do not hammer
// the store.
type CachedBaselines struct {
	source BaselineSource
	cache  *ttlcache.Cache[string, *aggregate.ChampionPatchAggregate]
	prior  *ttlcache.Cache[string, *aggregate.ChampionPatchAggregate]
}

// NewCachedBaselines wraps source with a TTL cache.
func NewCachedBaselines(source BaselineSource, ttl time.Duration) *CachedBaselines {
	c := &CachedBaselines{
		source: source,
		cache: ttlcache.New[string, *aggregate.ChampionPatchAggregate](
			ttlcache.WithTTL[string, *aggregate.ChampionPatchAggregate](ttl),
		),
		prior: ttlcache.New[string, *aggregate.ChampionPatchAggregate](
			ttlcache.WithTTL[string, *aggregate.ChampionPatchAggregate](ttl),
		),
	}
	go c.cache.Start()
	go c.prior.Start()
	return c
}

// Load returns the cached aggregate for a key, reading through on miss.
func (c *CachedBaselines) Load(ctx context.Context, champion, patch string) (*aggregate.ChampionPatchAggregate, error) {
	key := champion + "\x00" + patch
	if item := c.cache.Get(key); item != nil {
		return item.Value(), nil
	}
	agg, err := c.source.Load(ctx, champion, patch)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, agg, ttlcache.DefaultTTL)
	return agg, nil
}

// LoadLatestBefore mirrors Load for the prior-patch fallback lookup.
func (c *CachedBaselines) LoadLatestBefore(ctx context.Context, champion, patch string) (*aggregate.ChampionPatchAggregate, error) {
	key := champion + "\x00" + patch
	if item := c.prior.Get(key); item != nil {
		return item.Value(), nil
	}
	agg, err := c.source.LoadLatestBefore(ctx, champion, patch)
	if err != nil {
		return nil, err
	}
	c.prior.Set(key, agg, ttlcache.DefaultTTL)
	return agg, nil
}

// Stop shuts down the cache janitors.
func (c *CachedBaselines) Stop() {
	c.cache.Stop()
	c.prior.Stop()
}
