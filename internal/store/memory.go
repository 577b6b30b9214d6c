package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// MemoryStore keeps documents in process memory. It backs unit tests and the
// memory store backend; nothing survives a restart.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	clock       clockwork.Clock
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Document),
		clock:       clock,
	}
}

func (s *MemoryStore) Create(_ context.Context, collection string, data Document) (Document, error) {
	doc := stampCreate(data, uuid.NewString(), s.clock.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.collections[collection]
	if items == nil {
		items = make(map[string]Document)
		s.collections[collection] = items
	}
	items[doc["id"].(string)] = doc
	return clone(doc), nil
}

func (s *MemoryStore) GetAll(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.collections[collection]
	docs := make([]Document, 0, len(items))
	for _, doc := range items {
		docs = append(docs, clone(doc))
	}
	return docs, nil
}

func (s *MemoryStore) GetByID(_ context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(doc), nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, data Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.collections[collection]
	if items == nil {
		items = make(map[string]Document)
		s.collections[collection] = items
	}

	merged := stampUpdate(items[id], data, id, s.clock.Now())
	items[id] = merged
	return clone(merged), nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

// clone shields stored documents from mutation by callers.
func clone(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
