package backfillcache

import (
	"context"
	"testing"
	"time"

	"github.com/frametree/tfcache/geom"
	"github.com/frametree/tfcache/store"
)

type countingStore struct {
	inner *store.MemStore
	calls int
}

func (c *countingStore) FindTF(ctx context.Context, filter store.Filter) (store.Cursor, error) {
	c.calls++
	return c.inner.FindTF(ctx, filter)
}

func TestCachedStore_SecondLookupHitsCache(t *testing.T) {
	mem := store.NewMemStore()
	at := time.Unix(1000, 0)
	mem.Seed(store.TFDocument{
		ID:       "doc",
		Recorded: at,
		Transforms: []store.TFRecord{
			{ParentFrame: "/map", ChildFrame: "/base", Stamp: at, Rotation: &geom.Quaternion{W: 1}},
		},
	})
	counting := &countingStore{inner: mem}

	cached, err := NewCachedStore(counting, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	filter := store.Filter{
		ChildFrame:   "/base",
		RecordedFrom: at.Add(-time.Second),
		RecordedTo:   at.Add(time.Second),
	}

	for i := 0; i < 2; i++ {
		cur, err := cached.FindTF(context.Background(), filter)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cur.Next(context.Background()) {
			t.Fatalf("expected at least one document on iteration %d", i)
		}
		cur.Close(context.Background())
	}

	if counting.calls != 1 {
		t.Fatalf("expected exactly one inner store call, got %d", counting.calls)
	}
}

func TestCachedStore_DifferentChildFramesDoNotShareEntries(t *testing.T) {
	mem := store.NewMemStore()
	at := time.Unix(2000, 0)
	mem.Seed(
		store.TFDocument{ID: "a", Recorded: at, Transforms: []store.TFRecord{
			{ParentFrame: "/map", ChildFrame: "/base", Stamp: at, Rotation: &geom.Quaternion{W: 1}},
		}},
		store.TFDocument{ID: "b", Recorded: at, Transforms: []store.TFRecord{
			{ParentFrame: "/map", ChildFrame: "/arm", Stamp: at, Rotation: &geom.Quaternion{W: 1}},
		}},
	)
	counting := &countingStore{inner: mem}
	cached, err := NewCachedStore(counting, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	window := func(child string) store.Filter {
		return store.Filter{ChildFrame: child, RecordedFrom: at.Add(-time.Second), RecordedTo: at.Add(time.Second)}
	}

	curBase, err := cached.FindTF(context.Background(), window("/base"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !curBase.Next(context.Background()) {
		t.Fatalf("expected a document for /base")
	}
	docBase, _ := curBase.Decode()
	if docBase.ID != "a" {
		t.Fatalf("expected doc a for /base, got %s", docBase.ID)
	}

	curArm, err := cached.FindTF(context.Background(), window("/arm"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !curArm.Next(context.Background()) {
		t.Fatalf("expected a document for /arm")
	}
	docArm, _ := curArm.Decode()
	if docArm.ID != "b" {
		t.Fatalf("expected doc b for /arm, got %s", docArm.ID)
	}

	if counting.calls != 2 {
		t.Fatalf("expected two inner store calls for two distinct frames, got %d", counting.calls)
	}
}

func TestCachedStore_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Capacity = 0
	if _, err := NewCachedStore(store.NewMemStore(), cfg, nil); err == nil {
		t.Fatalf("expected an error for zero Capacity")
	}
}

func TestCacheKey_StableAndDistinguishesFrames(t *testing.T) {
	at := time.Unix(3000, 0)
	f1 := store.Filter{ChildFrame: "/base", RecordedFrom: at, RecordedTo: at.Add(time.Second)}
	f2 := store.Filter{ChildFrame: "/arm", RecordedFrom: at, RecordedTo: at.Add(time.Second)}

	k1a, err := cacheKey(f1, int64(500*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k1b, err := cacheKey(f1, int64(500*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1a != k1b {
		t.Fatalf("expected identical filters to produce the same key, got %q and %q", k1a, k1b)
	}

	k2, err := cacheKey(f2, int64(500*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1a == k2 {
		t.Fatalf("expected distinct child frames to produce distinct keys")
	}
}
