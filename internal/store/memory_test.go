package store

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateStampsIdentityAndTimestamps(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewMemoryStore(clock)

	doc, err := s.Create(context.Background(), "users", Document{"name": "Ada"})
	require.NoError(t, err)

	assert.NotEmpty(t, doc["id"])
	assert.Equal(t, "Ada", doc["name"])
	assert.Equal(t, doc["createdAt"], doc["updatedAt"])
	assert.Equal(t, formatTime(clock.Now()), doc["createdAt"])
}

func TestMemoryStore_CreateGeneratesUniqueIDs(t *testing.T) {
	s := NewMemoryStore(clockwork.NewFakeClock())

	seen := map[any]bool{}
	for i := 0; i < 50; i++ {
		doc, err := s.Create(context.Background(), "users", Document{"name": "x"})
		require.NoError(t, err)
		require.False(t, seen[doc["id"]], "duplicate id %v", doc["id"])
		seen[doc["id"]] = true
	}
}

func TestMemoryStore_GetAllEmptyCollection(t *testing.T) {
	s := NewMemoryStore(clockwork.NewFakeClock())

	docs, err := s.GetAll(context.Background(), "users")
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NotNil(t, docs)
}

func TestMemoryStore_GetByIDAbsent(t *testing.T) {
	s := NewMemoryStore(clockwork.NewFakeClock())

	_, err := s.GetByID(context.Background(), "users", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpdateMergesAndAdvancesUpdatedAt(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewMemoryStore(clock)

	created, err := s.Create(context.Background(), "users", Document{"name": "Ada", "zipCode": "10001"})
	require.NoError(t, err)
	id := created["id"].(string)

	clock.Advance(time.Minute)

	merged, err := s.Update(context.Background(), "users", id, Document{"name": "Grace"})
	require.NoError(t, err)

	assert.Equal(t, id, merged["id"])
	assert.Equal(t, "Grace", merged["name"])
	assert.Equal(t, "10001", merged["zipCode"], "untouched fields survive the merge")
	assert.Equal(t, created["createdAt"], merged["createdAt"])

	createdUpdatedAt, err := time.Parse(time.RFC3339Nano, created["updatedAt"].(string))
	require.NoError(t, err)
	mergedUpdatedAt, err := time.Parse(time.RFC3339Nano, merged["updatedAt"].(string))
	require.NoError(t, err)
	assert.True(t, mergedUpdatedAt.After(createdUpdatedAt))
}

func TestMemoryStore_DeleteThenGetAbsent(t *testing.T) {
	s := NewMemoryStore(clockwork.NewFakeClock())

	created, err := s.Create(context.Background(), "users", Document{"name": "Ada"})
	require.NoError(t, err)
	id := created["id"].(string)

	require.NoError(t, s.Delete(context.Background(), "users", id))

	_, err = s.GetByID(context.Background(), "users", id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteAbsentIsNoError(t *testing.T) {
	s := NewMemoryStore(clockwork.NewFakeClock())
	assert.NoError(t, s.Delete(context.Background(), "users", "missing"))
}

func TestMemoryStore_CollectionsAreIndependent(t *testing.T) {
	s := NewMemoryStore(clockwork.NewFakeClock())

	_, err := s.Create(context.Background(), "users", Document{"name": "Ada"})
	require.NoError(t, err)

	docs, err := s.GetAll(context.Background(), "sessions")
	require.NoError(t, err)
	assert.Empty(t, docs)
}
