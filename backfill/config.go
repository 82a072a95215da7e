package backfill

import (
	"fmt"
	"log/slog"
	"time"
)

// DefaultWindow matches the original TFMemory.BUFFER_SIZE: five seconds of
// lookback from the query time.
const DefaultWindow = 5 * time.Second

// DefaultLookahead is the "+1s" half of spec §4.6's [t-W, t+1s] window.
const DefaultLookahead = 1 * time.Second

// Config tunes Policy, following the teacher's Config/DefaultConfig/Validate
// shape (cache.Config in the teacher repo).
type Config struct {
	// Window is how far back of t the store query reaches. Zero uses
	// DefaultWindow.
	Window time.Duration
	// Lookahead is how far ahead of t the store query reaches. Zero uses
	// DefaultLookahead.
	Lookahead time.Duration
	// FramePrefix is applied to frame IDs decoded from store records that
	// arrive without a leading "/" (spec §9's open question: default
	// empty, never guess a non-empty default).
	FramePrefix string
	// Logger receives diagnostics for skipped/rejected records. Defaults
	// to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the spec's defaults.
func DefaultConfig() Config {
	return Config{
		Window:    DefaultWindow,
		Lookahead: DefaultLookahead,
		Logger:    slog.Default(),
	}
}

// Validate rejects a negative window or lookahead.
func (c Config) Validate() error {
	if c.Window < 0 {
		return fmt.Errorf("backfill: window must be non-negative, got %s", c.Window)
	}
	if c.Lookahead < 0 {
		return fmt.Errorf("backfill: lookahead must be non-negative, got %s", c.Lookahead)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.Lookahead <= 0 {
		c.Lookahead = DefaultLookahead
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
