package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// RedisStore persists each collection as a Redis hash: the hash key is the
// collection name and each field holds one document as JSON.
type RedisStore struct {
	client *redis.Client
	clock  clockwork.Clock
}

// NewRedisStore constructs a RedisStore over a connected client.
func NewRedisStore(client *redis.Client, clock clockwork.Clock) *RedisStore {
	return &RedisStore{client: client, clock: clock}
}

func (s *RedisStore) Create(ctx context.Context, collection string, data Document) (Document, error) {
	doc := stampCreate(data, uuid.NewString(), s.clock.Now())

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := s.client.HSet(ctx, collection, doc["id"].(string), payload).Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *RedisStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	fields, err := s.client.HGetAll(ctx, collection).Result()
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(fields))
	for _, payload := range fields {
		var doc Document
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *RedisStore) GetByID(ctx context.Context, collection, id string) (Document, error) {
	payload, err := s.client.HGet(ctx, collection, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *RedisStore) Update(ctx context.Context, collection, id string, data Document) (Document, error) {
	existing := Document{}
	payload, err := s.client.HGet(ctx, collection, id).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal([]byte(payload), &existing); err != nil {
			return nil, err
		}
	}

	merged := stampUpdate(existing, data, id, s.clock.Now())
	out, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	if err := s.client.HSet(ctx, collection, id, out).Err(); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	return s.client.HDel(ctx, collection, id).Err()
}
