// Package di wires this module's components the way the teacher's own
// Container wires a cache service and a key serializer, scaled up to the
// full dependency graph a deployed tf cache needs: a frame registry, a
// document store, the backfill policy that bridges them, the query
// façade over all of it, and a cached reader over the auxiliary
// designator store.
package di

import (
	"log/slog"
	"time"

	"github.com/frametree/tfcache/backfill"
	"github.com/frametree/tfcache/designator"
	"github.com/frametree/tfcache/designatorcache"
	"github.com/frametree/tfcache/frame"
	"github.com/frametree/tfcache/internal/backfillcache"
	"github.com/frametree/tfcache/store"
	"github.com/frametree/tfcache/tfcore"
)

// Config collects every tunable the container needs to assemble a Core.
// Store/DesignatorStore are supplied by the caller (sqlstore.Store in
// production, store.MemStore/designator.MemStore in tests) rather than
// opened here, so the container stays storage-backend agnostic.
type Config struct {
	MaxStorage      time.Duration
	FramePrefix     string
	Backfill        backfill.Config
	BackfillCache   backfillcache.Config
	DesignatorCache designatorcache.Config
	Logger          *slog.Logger
}

// DefaultConfig mirrors each wrapped component's own DefaultConfig().
func DefaultConfig() Config {
	return Config{
		MaxStorage:      frame.DefaultMaxStorage,
		Backfill:        backfill.DefaultConfig(),
		BackfillCache:   backfillcache.DefaultConfig(),
		DesignatorCache: designatorcache.DefaultConfig(),
	}
}

// Container holds the singleton instances wired for one process.
type Container struct {
	registry        *frame.Registry
	core            *tfcore.Core
	designatorCache *designatorcache.CachedReader
	cfg             Config
}

// New wires a Container over docStore (the §6.1 document store) and
// designatorStore (the §6.2 auxiliary store, optional — pass nil if the
// deployment has no designator collection to serve).
func New(cfg Config, docStore store.Store, designatorStore designator.Store) (*Container, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxStorage <= 0 {
		cfg.MaxStorage = frame.DefaultMaxStorage
	}

	cachedDocStore, err := backfillcache.NewCachedStore(docStore, cfg.BackfillCache, cfg.Logger)
	if err != nil {
		return nil, err
	}

	registry := frame.NewRegistry(cfg.MaxStorage)
	policy := backfill.NewPolicy(registry, cachedDocStore, cfg.Backfill)
	core := tfcore.New(registry, policy, cfg.FramePrefix, cfg.Logger)

	c := &Container{registry: registry, core: core, cfg: cfg}

	if designatorStore != nil {
		cachedReader, err := designatorcache.New(designatorStore, cfg.DesignatorCache)
		if err != nil {
			return nil, err
		}
		c.designatorCache = cachedReader
	}

	return c, nil
}

// NewWithDefaults wires a Container using DefaultConfig and no designator
// store, the common case for an embedded tf cache with no object-lookup
// collaborator.
func NewWithDefaults(docStore store.Store) (*Container, error) {
	return New(DefaultConfig(), docStore, nil)
}

// Core returns the query façade: LookupTransform, TransformPoint, etc.
func (c *Container) Core() *tfcore.Core {
	return c.core
}

// Registry returns the underlying frame registry, for callers that need
// to inspect or directly seed frames (tests, diagnostics).
func (c *Container) Registry() *frame.Registry {
	return c.registry
}

// DesignatorReader returns the cached designator reader, or nil if the
// container was built without a designator store.
func (c *Container) DesignatorReader() *designatorcache.CachedReader {
	return c.designatorCache
}
