package frame

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrNoData is returned by TimeCache.GetData when the cache holds nothing.
var ErrNoData = errors.New("tf: no data in time cache")

// TimeCache is the bounded, time-ordered buffer of samples for a single
// directed edge (one parent seen by one child frame), per spec §4.1.
// Samples are kept ascending by Stamp; eviction keeps every remaining
// sample within [newest-maxStorage, newest].
type TimeCache struct {
	mu         sync.RWMutex
	samples    []Transform
	maxStorage time.Duration
}

// NewTimeCache creates an empty cache retaining maxStorage of history.
func NewTimeCache(maxStorage time.Duration) *TimeCache {
	return &TimeCache{maxStorage: maxStorage}
}

// Insert adds sample, rejecting it if its Stamp is older than
// newest-maxStorage (spec §4.1). On acceptance, anything now older than
// new_newest-maxStorage is evicted. Returns false on rejection.
func (c *TimeCache) Insert(sample Transform) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n := len(c.samples); n > 0 {
		newest := c.samples[n-1].Stamp
		oldestAllowed := newest - Stamp(c.maxStorage)
		if sample.Stamp < oldestAllowed {
			return false
		}
	}

	idx := sort.Search(len(c.samples), func(i int) bool {
		return c.samples[i].Stamp >= sample.Stamp
	})
	c.samples = append(c.samples, Transform{})
	copy(c.samples[idx+1:], c.samples[idx:])
	c.samples[idx] = sample

	c.evictLocked()
	return true
}

func (c *TimeCache) evictLocked() {
	if len(c.samples) == 0 {
		return
	}
	newest := c.samples[len(c.samples)-1].Stamp
	oldestAllowed := newest - Stamp(c.maxStorage)

	cut := 0
	for cut < len(c.samples) && c.samples[cut].Stamp < oldestAllowed {
		cut++
	}
	if cut > 0 {
		c.samples = append(c.samples[:0], c.samples[cut:]...)
	}
}

// GetData returns the sample at time t, per spec §4.1:
//   - empty cache: ErrNoData
//   - single sample: returned unchanged
//   - t between two samples: lerp translation, slerp rotation
//   - t before oldest / after newest: nearest boundary sample, unchanged
//     (no extrapolation)
//
// childHint, if non-empty, overrides the Child field of the result (used by
// PathSearch when walking the graph in the direction opposite to storage).
func (c *TimeCache) GetData(t Stamp, childHint ID) (Transform, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := len(c.samples)
	if n == 0 {
		return Transform{}, ErrNoData
	}
	if n == 1 {
		return withChildHint(c.samples[0], childHint), nil
	}

	oldest, newest := c.samples[0], c.samples[n-1]
	if t <= oldest.Stamp {
		return withChildHint(oldest, childHint), nil
	}
	if t >= newest.Stamp {
		return withChildHint(newest, childHint), nil
	}

	// Find the first sample with Stamp >= t; samples[idx-1] < t <= samples[idx].
	idx := sort.Search(n, func(i int) bool { return c.samples[i].Stamp >= t })
	before, after := c.samples[idx-1], c.samples[idx]
	if before.Stamp == t {
		return withChildHint(before, childHint), nil
	}

	span := float64(after.Stamp - before.Stamp)
	u := float64(t-before.Stamp) / span

	out := Transform{
		Translation: before.Translation.Lerp(after.Translation, u),
		Rotation:    before.Rotation.Slerp(after.Rotation, u),
		Stamp:       t,
		Parent:      before.Parent,
		Child:       before.Child,
	}
	return withChildHint(out, childHint), nil
}

func withChildHint(t Transform, hint ID) Transform {
	if hint != "" {
		t.Child = hint
	}
	return t
}

// TimeInBufferRange reports whether t falls within [oldest, newest], i.e.
// whether GetData(t, ...) would interpolate/return exactly rather than
// clamp to a boundary that may be arbitrarily far from t.
func (c *TimeCache) TimeInBufferRange(t Stamp) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.samples) == 0 {
		return false
	}
	return t >= c.samples[0].Stamp && t <= c.samples[len(c.samples)-1].Stamp
}

// TimeToNearest returns the absolute ns distance from t to the closest
// sample; used as the PathSearch edge cost (spec §4.1, §4.4).
func (c *TimeCache) TimeToNearest(t Stamp) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := len(c.samples)
	if n == 0 {
		return 1<<63 - 1
	}
	idx := sort.Search(n, func(i int) bool { return c.samples[i].Stamp >= t })
	if idx == 0 {
		return t.Sub(c.samples[0].Stamp)
	}
	if idx == n {
		return t.Sub(c.samples[n-1].Stamp)
	}
	before := t.Sub(c.samples[idx-1].Stamp)
	after := t.Sub(c.samples[idx].Stamp)
	if before < after {
		return before
	}
	return after
}

// Len reports the number of buffered samples (test/diagnostic helper).
func (c *TimeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.samples)
}
