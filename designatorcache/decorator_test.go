package designatorcache

import (
	"context"
	"testing"
	"time"

	"github.com/frametree/tfcache/designator"
)

func newTestReader(t *testing.T, base designator.Store) *CachedReader {
	t.Helper()
	reader, err := New(base, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return reader
}

type countingStore struct {
	inner *designator.MemStore
	calls int
}

func (c *countingStore) FindByID(ctx context.Context, id string) (designator.Designator, error) {
	c.calls++
	return c.inner.FindByID(ctx, id)
}

func (c *countingStore) FindLatestBefore(ctx context.Context, before time.Time) (designator.Designator, error) {
	c.calls++
	return c.inner.FindLatestBefore(ctx, before)
}

func (c *countingStore) List(ctx context.Context, objectID string) ([]designator.Designator, error) {
	c.calls++
	return c.inner.List(ctx, objectID)
}

func TestCachedReader_FindByIDHitsCacheOnSecondCall(t *testing.T) {
	mem := designator.NewMemStore()
	mem.Seed(designator.Designator{ID: "designator_a", ObjectID: "mug1", Recorded: time.Unix(10, 0)})
	counting := &countingStore{inner: mem}
	reader := newTestReader(t, counting)

	for i := 0; i < 2; i++ {
		got, err := reader.FindByID(context.Background(), "designator_a")
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
		if got.ObjectID != "mug1" {
			t.Fatalf("expected mug1, got %s", got.ObjectID)
		}
	}
	if counting.calls != 1 {
		t.Fatalf("expected exactly one base store call, got %d", counting.calls)
	}
}

func TestCachedReader_ListHitsCacheOnSecondCall(t *testing.T) {
	mem := designator.NewMemStore()
	mem.Seed(
		designator.Designator{ID: "a", ObjectID: "mug1", Recorded: time.Unix(10, 0)},
		designator.Designator{ID: "b", ObjectID: "mug1", Recorded: time.Unix(20, 0)},
	)
	counting := &countingStore{inner: mem}
	reader := newTestReader(t, counting)

	for i := 0; i < 2; i++ {
		got, err := reader.List(context.Background(), "mug1")
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 designators, got %d", len(got))
		}
	}
	if counting.calls != 1 {
		t.Fatalf("expected exactly one base store call, got %d", counting.calls)
	}
}

func TestCachedReader_DistinctObjectIDsDoNotShareEntries(t *testing.T) {
	mem := designator.NewMemStore()
	mem.Seed(
		designator.Designator{ID: "a", ObjectID: "mug1", Recorded: time.Unix(10, 0)},
		designator.Designator{ID: "b", ObjectID: "cup2", Recorded: time.Unix(20, 0)},
	)
	counting := &countingStore{inner: mem}
	reader := newTestReader(t, counting)

	if _, err := reader.List(context.Background(), "mug1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reader.List(context.Background(), "cup2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counting.calls != 2 {
		t.Fatalf("expected two base store calls for two distinct object IDs, got %d", counting.calls)
	}
}
