package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// PostgresStore persists documents in a single jsonb table keyed by
// (collection, id).
type PostgresStore struct {
	db    *sql.DB
	clock clockwork.Clock
}

// NewPostgresStore constructs a PostgresStore over an open connection pool.
func NewPostgresStore(db *sql.DB, clock clockwork.Clock) *PostgresStore {
	return &PostgresStore{db: db, clock: clock}
}

func (s *PostgresStore) Create(ctx context.Context, collection string, data Document) (Document, error) {
	doc := stampCreate(data, uuid.NewString(), s.clock.Now())

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO records (collection, id, data)
		VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, collection, doc["id"], payload); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *PostgresStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	const query = `SELECT data FROM records WHERE collection = $1`
	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var doc Document
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *PostgresStore) GetByID(ctx context.Context, collection, id string) (Document, error) {
	const query = `SELECT data FROM records WHERE collection = $1 AND id = $2`
	var payload []byte
	err := s.db.QueryRowContext(ctx, query, collection, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, data Document) (Document, error) {
	doc := stampUpdate(nil, data, id, s.clock.Now())

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	// Merge at the jsonb level so fields absent from this update survive.
	// Upsert on purpose: existence checks belong to the caller.
	const query = `
		INSERT INTO records (collection, id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE
		SET data = records.data || EXCLUDED.data
		RETURNING data`
	var stored []byte
	if err := s.db.QueryRowContext(ctx, query, collection, id, payload).Scan(&stored); err != nil {
		return nil, err
	}

	var merged Document
	if err := json.Unmarshal(stored, &merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	const query = `DELETE FROM records WHERE collection = $1 AND id = $2`
	_, err := s.db.ExecContext(ctx, query, collection, id)
	return err
}
