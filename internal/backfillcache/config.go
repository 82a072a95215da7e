// Package backfillcache wraps a store.Store with a sturdyc-backed cache
// of query batches, adapted from the teacher's internal/cacheinfra
// sturdyc adapter onto this module's domain: rather than caching
// arbitrary repository rows, it caches the document batch a given
// (child frame, time window) backfill query returned, so repeated
// lookups against the same hot window don't re-hit the store.
package backfillcache

import (
	"time"

	"github.com/frametree/tfcache/internal/sturdycconfig"
)

// Config is sturdycconfig.Config; backfillcache only supplies its own
// domain-tuned defaults below.
type Config = sturdycconfig.Config

// ConfigError reports an invalid Config field.
type ConfigError = sturdycconfig.ConfigError

// DefaultConfig returns defaults sized for a frame-count-bounded key
// space rather than the teacher's general-purpose repository cache: a
// window cache entry outlives its usefulness once the tf buffer's own
// Δ has elapsed, so TTL tracks frame.DefaultMaxStorage.
func DefaultConfig() Config {
	return Config{
		Capacity:           1024,
		NumShards:          32,
		TTL:                10 * time.Second,
		EvictionPercentage: 10,
		Bucket:             500 * time.Millisecond,
	}
}

func withDefaults(c Config) Config {
	return c.WithDefaults(DefaultConfig())
}
