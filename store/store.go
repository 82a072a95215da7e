// Package store defines the document-store contract Backfill consumes
// (spec §6.1). Decoding the store's wire format into these Go-native
// types is the concrete store implementation's job (internal/sqlstore
// for the SQL-backed one); this package only names the shape and the
// find/sort/cursor contract, never a JSON or BSON representation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/frametree/tfcache/geom"
)

// ErrUnavailable is returned by Store.FindTF when the backing store cannot
// be reached. Backfill returns it unchanged; tfcore wraps it in its
// StoreUnavailable kind.
var ErrUnavailable = errors.New("tf: document store unavailable")

// TFRecord is one entry of a document's transforms array (spec §6.1).
// Rotation is a pointer so "quaternion absent" (a malformed record) is
// distinguishable from "quaternion is the zero value".
type TFRecord struct {
	ParentFrame string
	ChildFrame  string
	Stamp       time.Time
	Translation geom.Vector3
	Rotation    *geom.Quaternion
}

// TFDocument is one row of the tf collection: a recording instant plus
// the batch of transforms captured at that instant.
type TFDocument struct {
	ID         string
	Recorded   time.Time
	Transforms []TFRecord
}

// Filter selects documents whose Transforms contains an element with
// ChildFrame == ChildFrame and whose Recorded falls in
// [RecordedFrom, RecordedTo) — the exact predicate spec §6.1 names.
type Filter struct {
	ChildFrame   string
	RecordedFrom time.Time
	RecordedTo   time.Time
}

// Cursor iterates matching documents, sorted by Recorded descending
// (newest first) per spec §4.6's "take the first batch" policy. Callers
// must call Close once done, even after an iteration error.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode() (TFDocument, error)
	Err() error
	Close(ctx context.Context) error
}

// Store is the external document-store contract Backfill depends on.
type Store interface {
	FindTF(ctx context.Context, filter Filter) (Cursor, error)
}

// SliceCursor adapts an already-materialized document slice to the Cursor
// interface. Both MemStore and internal/backfillcache's CachedStore build
// their cursors from a slice — the store's own matching happens eagerly
// and a cache entry is itself just a slice — so this is the one cursor
// implementation both need.
type SliceCursor struct {
	docs []TFDocument
	idx  int
}

// NewSliceCursor returns a Cursor over the given (already filtered and
// sorted) documents.
func NewSliceCursor(docs []TFDocument) *SliceCursor {
	return &SliceCursor{docs: docs, idx: -1}
}

func (c *SliceCursor) Next(context.Context) bool {
	c.idx++
	return c.idx < len(c.docs)
}

func (c *SliceCursor) Decode() (TFDocument, error) {
	return c.docs[c.idx], nil
}

func (c *SliceCursor) Err() error { return nil }

func (c *SliceCursor) Close(context.Context) error { return nil }
