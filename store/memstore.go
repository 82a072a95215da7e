package store

import (
	"context"
	"sort"
	"sync"
)

// MemStore is an in-memory Store fake for tests, mirroring the teacher's
// preference for hand-written fakes over mocking libraries
// (cache/service_test.go's fakeFetcher, examples/simple's fakeUserRepository).
type MemStore struct {
	mu          sync.RWMutex
	docs        []TFDocument
	unavailable bool
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Seed appends documents to the store's backing slice.
func (m *MemStore) Seed(docs ...TFDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, docs...)
}

// SetUnavailable flips whether FindTF reports ErrUnavailable, simulating
// a degraded store for StoreUnavailable tests.
func (m *MemStore) SetUnavailable(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable = v
}

func (m *MemStore) FindTF(_ context.Context, filter Filter) (Cursor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.unavailable {
		return nil, ErrUnavailable
	}

	var matches []TFDocument
	for _, doc := range m.docs {
		if !doc.Recorded.Before(filter.RecordedTo) || doc.Recorded.Before(filter.RecordedFrom) {
			continue
		}
		if !containsChild(doc, filter.ChildFrame) {
			continue
		}
		matches = append(matches, doc)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Recorded.After(matches[j].Recorded)
	})

	return NewSliceCursor(matches), nil
}

func containsChild(doc TFDocument, childFrame string) bool {
	for _, r := range doc.Transforms {
		if r.ChildFrame == childFrame {
			return true
		}
	}
	return false
}
