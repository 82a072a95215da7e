// Package sqlstore is the concrete store.Store/designator.Store backed by
// SQL, selectable between sqlite (tests, single-node dev) and postgres
// (production) dialects the way the teacher's go.mod already depends on
// both (mattn/go-sqlite3 + lib/pq, through uptrace/bun's dialect
// packages). It talks to bun directly rather than through the teacher's
// go-repository-bun abstraction: that package's Repository[T] models
// full CRUD over a single table, but this module only ever needs two
// read paths (FindTF, the designator lookups) with shapes specific
// enough that the generic repository interface would add indirection
// without saving code (see DESIGN.md).
package sqlstore

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/frametree/tfcache/store"
)

// Store is a bun-backed store.Store over the tf_documents table.
type Store struct {
	db *bun.DB
}

var _ store.Store = (*Store)(nil)

// OpenSQLite opens (or creates) a sqlite-backed Store at dsn, e.g.
// "file:tf.db?cache=shared" or "file::memory:?cache=shared" for tests.
func OpenSQLite(ctx context.Context, dsn string) (*Store, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenPostgres opens a postgres-backed Store at dsn.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqldb, pgdialect.New())
	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*documentModel)(nil)).
		ModelTableExpr(tableName("tf_document")).
		IfNotExists().
		Exec(ctx)
	return err
}

// InsertDocument stores doc, upserting by ID. It exists for test seeding
// and for the (out-of-scope per spec §1) ingestion path a future
// publisher component would use; Backfill itself is strictly read-only.
func (s *Store) InsertDocument(ctx context.Context, doc store.TFDocument) error {
	row := &documentModel{ID: doc.ID, Recorded: doc.Recorded, Transforms: doc.Transforms}
	_, err := s.db.NewInsert().
		Model(row).
		ModelTableExpr(tableName("tf_document") + " AS td").
		On("CONFLICT (id) DO UPDATE").
		Set("recorded = EXCLUDED.recorded").
		Set("transforms = EXCLUDED.transforms").
		Exec(ctx)
	return err
}

// FindTF implements store.Store per spec §6.1: documents whose Transforms
// contains an entry for filter.ChildFrame, recorded within the half-open
// [RecordedFrom, RecordedTo) window, newest first.
func (s *Store) FindTF(ctx context.Context, filter store.Filter) (store.Cursor, error) {
	var rows []documentModel
	err := s.db.NewSelect().
		Model(&rows).
		ModelTableExpr(tableName("tf_document") + " AS td").
		Where("recorded >= ?", filter.RecordedFrom).
		Where("recorded < ?", filter.RecordedTo).
		OrderExpr("recorded DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]store.TFDocument, 0, len(rows))
	for _, r := range rows {
		if !containsChild(r.Transforms, filter.ChildFrame) {
			continue
		}
		docs = append(docs, store.TFDocument{ID: r.ID, Recorded: r.Recorded, Transforms: r.Transforms})
	}
	return store.NewSliceCursor(docs), nil
}

// Close releases the underlying *sql.DB.
func (s *Store) Close() error {
	return s.db.Close()
}

func containsChild(records []store.TFRecord, childFrame string) bool {
	for _, r := range records {
		if r.ChildFrame == childFrame {
			return true
		}
	}
	return false
}
