package frame

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultMaxStorage matches the original TFMemory.MAX_STORAGE_TIME: ten
// seconds of history per edge.
const DefaultMaxStorage = 10 * time.Second

// Frame is a named node in the transform graph. It owns a TimeCache per
// parent it has ever been observed under — spec §4.2/§9 "multi-parent
// graph": logged history need not form a tree.
type Frame struct {
	id         ID
	maxStorage time.Duration

	mu      sync.RWMutex
	parents map[ID]*TimeCache
}

// NewFrame creates a Frame with no parents yet.
func NewFrame(id ID, maxStorage time.Duration) *Frame {
	return &Frame{id: id, maxStorage: maxStorage, parents: make(map[ID]*TimeCache)}
}

// ID returns the frame's canonical ID.
func (f *Frame) ID() ID { return f.id }

// GetOrCreateCache returns the TimeCache for the edge from parent to f,
// creating it on first reference. Mutation (map insert) takes the
// exclusive per-frame guard; once present, callers only need the cache's
// own guard.
func (f *Frame) GetOrCreateCache(parent ID) *TimeCache {
	f.mu.RLock()
	tc, ok := f.parents[parent]
	f.mu.RUnlock()
	if ok {
		return tc
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if tc, ok := f.parents[parent]; ok {
		return tc
	}
	tc = NewTimeCache(f.maxStorage)
	f.parents[parent] = tc
	return tc
}

// ParentFrames enumerates the parents this frame currently has data for.
func (f *Frame) ParentFrames() []ID {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]ID, 0, len(f.parents))
	for p := range f.parents {
		out = append(out, p)
	}
	return out
}

// TimeCacheFor returns the TimeCache for the given parent, or nil if this
// frame has never seen data from it.
func (f *Frame) TimeCacheFor(parent ID) *TimeCache {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.parents[parent]
}

// Insert stores sample on the edge from sample.Parent to f, creating the
// TimeCache on demand. Returns false if the sample was rejected as stale
// (spec §4.1's TF_OLD_DATA case).
func (f *Frame) Insert(sample Transform) bool {
	tc := f.GetOrCreateCache(sample.Parent)
	ok := tc.Insert(sample)
	if !ok {
		slog.Warn("tf_old_data: ignoring sample older than the buffer window",
			"child_frame", f.id, "parent_frame", sample.Parent, "stamp_ns", int64(sample.Stamp))
	}
	return ok
}

// AnyTimeInBufferRange reports whether at least one of f's edges has data
// covering t — the check backfill.Policy uses before deciding to hit the
// store (spec §4.6).
func (f *Frame) AnyTimeInBufferRange(t Stamp) bool {
	f.mu.RLock()
	parents := make([]*TimeCache, 0, len(f.parents))
	for _, tc := range f.parents {
		parents = append(parents, tc)
	}
	f.mu.RUnlock()

	for _, tc := range parents {
		if tc.TimeInBufferRange(t) {
			return true
		}
	}
	return false
}
