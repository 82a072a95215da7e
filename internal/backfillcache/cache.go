package backfillcache

import (
	"context"
	"log/slog"

	"github.com/viccon/sturdyc"

	"github.com/frametree/tfcache/store"
)

// CachedStore decorates an inner store.Store with a sturdyc cache keyed on
// (child frame, bucketed window). Unlike the teacher's sturdycService,
// which caches arbitrary repository rows behind a reflection-validated
// any-typed FetchFn because cache.CacheService serves many unrelated
// callers, CachedStore only ever caches one concrete shape — a backfill
// query's matching document batch — so it takes sturdyc's generic
// parameter directly as []store.TFDocument and skips the reflection
// dispatch entirely.
type CachedStore struct {
	inner  store.Store
	client *sturdyc.Client[[]store.TFDocument]
	cfg    Config
	logger *slog.Logger
}

// NewCachedStore wraps inner in a query-batch cache configured by cfg.
func NewCachedStore(inner store.Store, cfg Config, logger *slog.Logger) (*CachedStore, error) {
	cfg = withDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := sturdyc.New[[]store.TFDocument](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)
	return &CachedStore{inner: inner, client: client, cfg: cfg, logger: logger}, nil
}

// FindTF implements store.Store. A cache miss drains the inner store's
// cursor into a slice once, on the first caller to miss for that bucket;
// every caller (hit or miss) gets back a fresh store.SliceCursor over the
// cached slice, so cursors never share iteration state.
func (c *CachedStore) FindTF(ctx context.Context, filter store.Filter) (store.Cursor, error) {
	key, err := cacheKey(filter, int64(c.cfg.Bucket))
	if err != nil {
		c.logger.Warn("tf_cache_key_failed: falling back to an uncached query", "error", err)
		return c.inner.FindTF(ctx, filter)
	}

	docs, err := c.client.GetOrFetch(ctx, key, func(ctx context.Context) ([]store.TFDocument, error) {
		return c.drain(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return store.NewSliceCursor(docs), nil
}

func (c *CachedStore) drain(ctx context.Context, filter store.Filter) ([]store.TFDocument, error) {
	cur, err := c.inner.FindTF(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []store.TFDocument
	for cur.Next(ctx) {
		doc, err := cur.Decode()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
