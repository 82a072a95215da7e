// Package sturdycconfig holds the sturdyc.Option plumbing shared by every
// concrete sturdyc-backed cache in this module (internal/backfillcache,
// designatorcache). Each of those packages owns its own type parameter,
// key derivation, and domain-tuned DefaultConfig; this package only
// supplies the Capacity/TTL/eviction knobs and the sturdyc.Option
// conversion both of them would otherwise duplicate.
package sturdycconfig

import (
	"time"

	"github.com/viccon/sturdyc"
)

// Config tunes a sturdyc.Client, independent of what it caches.
type Config struct {
	Capacity             int
	NumShards            int
	TTL                  time.Duration
	EvictionPercentage   int
	EarlyRefresh         *EarlyRefreshConfig
	MissingRecordStorage bool
	EvictionInterval     time.Duration
	// Bucket rounds a cache key's time component to this granularity, so
	// lookups a few milliseconds apart share an entry instead of each
	// missing. WithDefaults replaces a zero value with the default bucket,
	// and Validate rejects a non-positive one.
	Bucket time.Duration
}

// EarlyRefreshConfig configures sturdyc's early-refresh behavior.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration
	MaxAsyncRefreshTime time.Duration
	SyncRefreshTime     time.Duration
	RetryBaseDelay      time.Duration
}

// ToSturdycOptions converts Config into sturdyc.Option values.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option
	if c.EarlyRefresh != nil {
		options = append(options, sturdyc.WithEarlyRefreshes(
			c.EarlyRefresh.MinAsyncRefreshTime,
			c.EarlyRefresh.MaxAsyncRefreshTime,
			c.EarlyRefresh.SyncRefreshTime,
			c.EarlyRefresh.RetryBaseDelay,
		))
	}
	if c.MissingRecordStorage {
		options = append(options, sturdyc.WithMissingRecordStorage())
	}
	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}
	return options
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "sturdycconfig: config error in field " + e.Field + ": " + e.Message
}

// Validate checks Config for sturdyc.New's preconditions.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	if c.Bucket <= 0 {
		return &ConfigError{Field: "Bucket", Message: "must be greater than 0"}
	}
	return nil
}

// WithDefaults fills any zero-valued field of c from defaults.
func (c Config) WithDefaults(defaults Config) Config {
	if c.Capacity <= 0 {
		c.Capacity = defaults.Capacity
	}
	if c.NumShards <= 0 {
		c.NumShards = defaults.NumShards
	}
	if c.TTL <= 0 {
		c.TTL = defaults.TTL
	}
	if c.EvictionPercentage <= 0 {
		c.EvictionPercentage = defaults.EvictionPercentage
	}
	if c.Bucket <= 0 {
		c.Bucket = defaults.Bucket
	}
	return c
}

// RoundDown truncates nanos to the nearest lower multiple of bucket,
// shared by every cache key derivation in this module that wants nearby
// timestamps to collapse onto the same key. A non-positive bucket is a
// no-op.
func RoundDown(nanos, bucket int64) int64 {
	if bucket <= 0 {
		return nanos
	}
	return nanos - (nanos % bucket)
}
