// Package frame implements the data model of spec.md §3–§4.3: canonical
// frame IDs, the per-edge TimeCache, the Frame graph node, and the
// process-wide Registry that owns them.
package frame

import (
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// Registry is the arena that owns every Frame ever referenced. Per spec
// §9's design note, Frame and TransformStorage never hold owning
// references to each other or to the Registry — only canonical ID
// handles — so the Registry can be the sole owner without reference
// cycles. Lookups take no lock (xsync.MapOf is internally sharded and
// lock-free on the read path); the only serialized section is the first
// insertion of a previously-unseen frame, which is exactly spec §5's
// "short exclusive critical section."
type Registry struct {
	frames     *xsync.MapOf[ID, *Frame]
	maxStorage time.Duration
}

// NewRegistry creates an empty registry. Every Frame it creates retains
// maxStorage of history per edge (spec §3's Δ).
func NewRegistry(maxStorage time.Duration) *Registry {
	if maxStorage <= 0 {
		maxStorage = DefaultMaxStorage
	}
	return &Registry{
		frames:     xsync.NewMapOf[ID, *Frame](),
		maxStorage: maxStorage,
	}
}

// ResolveOrInsert returns the Frame for id, creating it on first
// reference. Race-safe: if two callers race to create the same frame, the
// loser's proposed *Frame is discarded and both callers observe the
// winner (spec §4.3).
//
// Every lookup after the first hits the Load fast path and allocates
// nothing; NewFrame only runs on an actual miss, right before LoadOrStore.
func (r *Registry) ResolveOrInsert(id ID) *Frame {
	if f, ok := r.frames.Load(id); ok {
		return f
	}
	candidate := NewFrame(id, r.maxStorage)
	actual, _ := r.frames.LoadOrStore(id, candidate)
	return actual
}

// Get returns the Frame for id if it has been referenced before.
func (r *Registry) Get(id ID) (*Frame, bool) {
	return r.frames.Load(id)
}

// Range calls fn for every known frame; iteration order is unspecified.
func (r *Registry) Range(fn func(id ID, f *Frame) bool) {
	r.frames.Range(func(id ID, f *Frame) bool {
		return fn(id, f)
	})
}

// Size returns the number of frames the registry has ever resolved.
func (r *Registry) Size() int {
	return r.frames.Size()
}
