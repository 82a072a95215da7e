package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/frametree/tfcache/geom"
	"github.com/frametree/tfcache/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenSQLite(context.Background(), "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("unexpected error opening sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_InsertAndFindTF(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.Unix(1000, 0)

	err := s.InsertDocument(ctx, store.TFDocument{
		ID:       "doc-1",
		Recorded: at,
		Transforms: []store.TFRecord{
			{ParentFrame: "/map", ChildFrame: "/base", Stamp: at, Translation: geom.Vector3{X: 1}, Rotation: &geom.Quaternion{W: 1}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error inserting: %v", err)
	}

	cur, err := s.FindTF(ctx, store.Filter{
		ChildFrame:   "/base",
		RecordedFrom: at.Add(-time.Second),
		RecordedTo:   at.Add(time.Second),
	})
	if err != nil {
		t.Fatalf("unexpected error querying: %v", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		t.Fatalf("expected at least one matching document")
	}
	doc, err := cur.Decode()
	if err != nil {
		t.Fatalf("unexpected error decoding: %v", err)
	}
	if doc.ID != "doc-1" || len(doc.Transforms) != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestStore_FindTF_FiltersByChildFrame(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.Unix(2000, 0)

	err := s.InsertDocument(ctx, store.TFDocument{
		ID:       "doc-2",
		Recorded: at,
		Transforms: []store.TFRecord{
			{ParentFrame: "/map", ChildFrame: "/arm", Stamp: at, Rotation: &geom.Quaternion{W: 1}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error inserting: %v", err)
	}

	cur, err := s.FindTF(ctx, store.Filter{
		ChildFrame:   "/base",
		RecordedFrom: at.Add(-time.Second),
		RecordedTo:   at.Add(time.Second),
	})
	if err != nil {
		t.Fatalf("unexpected error querying: %v", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		t.Fatalf("expected no matching document for /base, got one")
	}
}
