package tfcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frametree/tfcache/frame"
	"github.com/frametree/tfcache/geom"
	"github.com/frametree/tfcache/pkg/di"
	"github.com/frametree/tfcache/store"
)

func TestLookupTransform_WithoutDefaultReturnsError(t *testing.T) {
	defaultCore.Store(nil)
	_, err := LookupTransform(context.Background(), "/map", "/base", frame.StampFromSeconds(0))
	if !errors.Is(err, ErrNoDefaultCore) {
		t.Fatalf("expected ErrNoDefaultCore, got %v", err)
	}
}

func TestSetDefault_RoutesThroughPackageFunctions(t *testing.T) {
	docStore := store.NewMemStore()
	at := time.Unix(42, 0)
	docStore.Seed(store.TFDocument{
		ID:       "doc",
		Recorded: at,
		Transforms: []store.TFRecord{
			{ParentFrame: "/map", ChildFrame: "/base", Stamp: at, Translation: geom.Vector3{X: 1, Y: 2, Z: 3}, Rotation: &geom.Quaternion{W: 1}},
		},
	})
	container, err := di.NewWithDefaults(docStore)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	SetDefault(container.Core())
	t.Cleanup(func() { defaultCore.Store(nil) })

	got, err := LookupTransform(context.Background(), "/map", "/base", frame.StampFromTime(at))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Translation != (geom.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("expected (1,2,3), got %+v", got.Translation)
	}
}
