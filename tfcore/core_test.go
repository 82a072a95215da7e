package tfcore

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/frametree/tfcache/backfill"
	"github.com/frametree/tfcache/frame"
	"github.com/frametree/tfcache/geom"
	"github.com/frametree/tfcache/store"
)

func newTestCore(t *testing.T, st store.Store) (*Core, *frame.Registry) {
	t.Helper()
	reg := frame.NewRegistry(10 * time.Second)
	policy := backfill.NewPolicy(reg, st, backfill.DefaultConfig())
	return New(reg, policy, "", nil), reg
}

func insert(reg *frame.Registry, parent, child frame.ID, sec int64, x, y, z float64) {
	reg.ResolveOrInsert(child).Insert(frame.Transform{
		Translation: geom.Vector3{X: x, Y: y, Z: z},
		Rotation:    geom.Identity(),
		Stamp:       frame.StampFromSeconds(sec),
		Parent:      parent,
		Child:       child,
	})
}

func TestLookupTransform_SingleEdgeExactHit(t *testing.T) {
	core, reg := newTestCore(t, store.NewMemStore())
	insert(reg, "/map", "/base", 1, 1, 2, 3)

	got, err := core.LookupTransform(context.Background(), "/map", "/base", frame.StampFromSeconds(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Translation != (geom.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("expected (1,2,3), got %+v", got.Translation)
	}
}

func TestLookupTransform_Interpolation(t *testing.T) {
	core, reg := newTestCore(t, store.NewMemStore())
	insert(reg, "/map", "/base", 0, 0, 0, 0)
	insert(reg, "/map", "/base", 2, 2, 0, 0)

	mid, err := core.LookupTransform(context.Background(), "/map", "/base", frame.StampFromSeconds(1))
	if err != nil || mid.Translation.X != 1 {
		t.Fatalf("expected midpoint x=1, got %+v err=%v", mid.Translation, err)
	}

	clamped, err := core.LookupTransform(context.Background(), "/map", "/base", frame.StampFromSeconds(3))
	if err != nil || clamped.Translation.X != 2 {
		t.Fatalf("expected clamped x=2 (no extrapolation), got %+v err=%v", clamped.Translation, err)
	}
}

func TestLookupTransform_ChainCompose(t *testing.T) {
	core, reg := newTestCore(t, store.NewMemStore())
	insert(reg, "/map", "/odom", 0, 1, 0, 0)
	insert(reg, "/odom", "/base", 0, 0, 1, 0)

	got, err := core.LookupTransform(context.Background(), "/map", "/base", frame.StampFromSeconds(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Translation != (geom.Vector3{X: 1, Y: 1, Z: 0}) {
		t.Fatalf("expected (1,1,0), got %+v", got.Translation)
	}
}

func TestLookupTransform_IdentityShortCircuit(t *testing.T) {
	core, _ := newTestCore(t, store.NewMemStore())

	got, err := core.LookupTransform(context.Background(), "/map", "/map", frame.StampFromSeconds(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Translation != (geom.Vector3{}) || got.Rotation.W != 1 {
		t.Fatalf("expected identity, got %+v", got)
	}
}

func TestLookupTransform_InverseRoundTrips(t *testing.T) {
	core, reg := newTestCore(t, store.NewMemStore())
	insert(reg, "/map", "/odom", 0, 1, 0, 0)
	insert(reg, "/odom", "/base", 0, 0, 1, 0)

	fwd, err := core.LookupTransform(context.Background(), "/map", "/base", frame.StampFromSeconds(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := core.LookupTransform(context.Background(), "/base", "/map", frame.StampFromSeconds(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id := fwd.Mul(back)
	if math.Abs(id.Translation.X) > 1e-9 || math.Abs(id.Translation.Y) > 1e-9 || math.Abs(id.Translation.Z) > 1e-9 {
		t.Fatalf("expected zero translation, got %+v", id.Translation)
	}
}

func TestLookupTransform_Disconnected(t *testing.T) {
	core, reg := newTestCore(t, store.NewMemStore())
	insert(reg, "/map", "/a", 0, 0, 0, 0)
	reg.ResolveOrInsert("/island")

	_, err := core.LookupTransform(context.Background(), "/a", "/island", frame.StampFromSeconds(0))
	var tfErr *Error
	if !errors.As(err, &tfErr) || tfErr.Kind != NotConnected {
		t.Fatalf("expected NotConnected error, got %v", err)
	}
}

func TestLookupTransform_BackfillTrigger(t *testing.T) {
	st := store.NewMemStore()
	at := time.Unix(500, 0)
	st.Seed(store.TFDocument{
		ID:       "doc",
		Recorded: at,
		Transforms: []store.TFRecord{
			{ParentFrame: "/map", ChildFrame: "/base", Stamp: at, Translation: geom.Vector3{X: 5}, Rotation: &geom.Quaternion{W: 1}},
		},
	})
	core, _ := newTestCore(t, st)

	got, err := core.LookupTransform(context.Background(), "/map", "/base", frame.StampFromTime(at.Add(500*time.Millisecond)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Translation.X != 5 {
		t.Fatalf("expected backfilled x=5, got %+v", got.Translation)
	}
}

func TestLookupTransform_StoreUnavailable(t *testing.T) {
	st := store.NewMemStore()
	st.SetUnavailable(true)
	core, _ := newTestCore(t, st)

	_, err := core.LookupTransform(context.Background(), "/map", "/base", frame.StampFromSeconds(0))
	var tfErr *Error
	if !errors.As(err, &tfErr) || tfErr.Kind != StoreUnavailable {
		t.Fatalf("expected StoreUnavailable error, got %v", err)
	}
}

func TestLookupTransformAt_DualTime(t *testing.T) {
	core, reg := newTestCore(t, store.NewMemStore())
	insert(reg, "/map", "/robot", 0, 0, 0, 0)
	insert(reg, "/map", "/robot", 10, 10, 0, 0)
	insert(reg, "/map", "/object", 5, 3, 4, 0)

	got, err := core.LookupTransformAt(context.Background(),
		"/robot", frame.StampFromSeconds(0),
		"/object", frame.StampFromSeconds(5),
		"/map")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// /robot at t=0 is at map-origin; /object at t=5 is at (3,4,0) in map.
	// Expressing /object (t=5) in /robot's frame (t=0) is just that offset.
	if got.Translation != (geom.Vector3{X: 3, Y: 4, Z: 0}) {
		t.Fatalf("expected (3,4,0), got %+v", got.Translation)
	}
}
