package designatorcache

import (
	"time"

	"github.com/frametree/tfcache/internal/sturdycconfig"
)

// Config is sturdycconfig.Config; designatorcache only supplies its own
// domain-tuned defaults below.
type Config = sturdycconfig.Config

// DefaultConfig sizes the cache for a small, slowly-changing collection —
// designators don't get rewritten the way tf edges do, so the TTL is
// longer than internal/backfillcache's and the bucket granularity is
// coarser.
func DefaultConfig() Config {
	return Config{
		Capacity:           512,
		NumShards:          16,
		TTL:                30 * time.Second,
		EvictionPercentage: 10,
		Bucket:             time.Second,
	}
}

func withDefaults(c Config) Config {
	return c.WithDefaults(DefaultConfig())
}
