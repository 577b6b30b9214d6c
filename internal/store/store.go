// Package store provides generic CRUD over named collections of JSON
// documents, addressed by a collection name and an item id. Concrete
// adapters exist for Postgres, Redis, and an in-memory map; callers depend
// only on the RecordStore interface.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetByID when no item with that id exists.
var ErrNotFound = errors.New("not found")

// Document is a schemaless JSON object as stored in a collection.
type Document map[string]any

// RecordStore defines uniform persistence operations over named collections.
//
// Create assigns a fresh id and stamps createdAt/updatedAt. Update stamps
// updatedAt and merges the given fields into the stored document; it does not
// verify prior existence, and neither does Delete — existence checks are the
// caller's responsibility.
type RecordStore interface {
	Create(ctx context.Context, collection string, data Document) (Document, error)
	GetAll(ctx context.Context, collection string) ([]Document, error)
	GetByID(ctx context.Context, collection, id string) (Document, error)
	Update(ctx context.Context, collection, id string, data Document) (Document, error)
	Delete(ctx context.Context, collection, id string) error
}
