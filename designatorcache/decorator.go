// Package designatorcache decorates a designator.Store with a read-through
// cache, adapted from the teacher's repositorycache.CachedRepository: the
// original wraps a go-repository-bun CRUD repository behind a reflection-
// validated any-typed FetchFn because cache.CacheService serves many
// unrelated callers with many unrelated shapes. CachedReader only ever
// caches two concrete shapes — a single designator.Designator (FindByID,
// FindLatestBefore) and a designator.Designator slice (List) — so, like
// internal/backfillcache, it takes sturdyc's generic parameter directly and
// skips the reflection dispatch entirely. designator.Store has no write
// operations at all (spec §6.2 names it a read-only auxiliary
// collaborator), so this decorator keeps only the caching half of the
// teacher's shape and drops the invalidation-on-write machinery the
// original needed.
package designatorcache

import (
	"context"
	"strconv"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/frametree/tfcache/designator"
	"github.com/frametree/tfcache/internal/sturdycconfig"
	"github.com/frametree/tfcache/repositorycache"
)

// CachedReader decorates a designator.Store with caching on every method.
// FindByID and FindLatestBefore share a client (both resolve to a single
// Designator, distinguished by key prefix); List gets its own client since
// it caches a slice.
type CachedReader struct {
	base    designator.Store
	single  *sturdyc.Client[designator.Designator]
	listing *sturdyc.Client[[]designator.Designator]
	cfg     Config
}

var _ designator.Store = (*CachedReader)(nil)

// New wraps base in a CachedReader configured by cfg.
func New(base designator.Store, cfg Config) (*CachedReader, error) {
	cfg = withDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	single := sturdyc.New[designator.Designator](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)
	listing := sturdyc.New[[]designator.Designator](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)
	return &CachedReader{base: base, single: single, listing: listing, cfg: cfg}, nil
}

// FindByID caches lookups under a per-ID key, prefixed so it can't collide
// with a FindLatestBefore key on the same client.
func (c *CachedReader) FindByID(ctx context.Context, id string) (designator.Designator, error) {
	key := repositorycache.ToSnake("FindByID") + ":" + id
	return c.single.GetOrFetch(ctx, key, func(ctx context.Context) (designator.Designator, error) {
		return c.base.FindByID(ctx, id)
	})
}

// FindLatestBefore caches latest-before-cutoff lookups. The cutoff is
// bucketed before it enters the key so repeated calls a few milliseconds
// apart (the common case for a tight lookup loop) share one entry instead
// of each missing.
func (c *CachedReader) FindLatestBefore(ctx context.Context, before time.Time) (designator.Designator, error) {
	bucketed := sturdycconfig.RoundDown(before.UnixNano(), int64(c.cfg.Bucket))
	key := repositorycache.ToSnake("FindLatestBefore") + ":" + strconv.FormatInt(bucketed, 10)
	return c.single.GetOrFetch(ctx, key, func(ctx context.Context) (designator.Designator, error) {
		return c.base.FindLatestBefore(ctx, before)
	})
}

// List caches per-object listings.
func (c *CachedReader) List(ctx context.Context, objectID string) ([]designator.Designator, error) {
	key := repositorycache.ToSnake("List") + ":" + objectID
	return c.listing.GetOrFetch(ctx, key, func(ctx context.Context) ([]designator.Designator, error) {
		return c.base.List(ctx, objectID)
	})
}
