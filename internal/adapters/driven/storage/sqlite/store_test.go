package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
	"github.com/ragscholar/scholar-cli/internal/core/ports/driven"
)

// newTestStore creates a store in a temp directory, closed on cleanup.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store := newTestStore(t)
	assert.NotEmpty(t, store.Path())

	// Migrations are idempotent: opening the same directory again
	// must not fail.
	again, err := NewStore(store.Path()[:len(store.Path())-len("/local.db")])
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestClassStore_SaveGetDelete(t *testing.T) {
	store := newTestStore(t)
	classes := store.ClassStore()
	ctx := context.Background()

	class := domain.Class{
		ID:          "cls-1",
		Name:        "Biology 101",
		Subject:     domain.SubjectScience,
		Description: "Intro biology",
		Documents:   []string{"doc-1", "doc-2"},
		CreatedAt:   time.Now().UTC(),
	}

	require.NoError(t, classes.Save(ctx, class))

	got, err := classes.Get(ctx, "cls-1")
	require.NoError(t, err)
	assert.Equal(t, "Biology 101", got.Name)
	assert.Equal(t, domain.SubjectScience, got.Subject)
	assert.Equal(t, []string{"doc-1", "doc-2"}, got.Documents)

	require.NoError(t, classes.Delete(ctx, "cls-1"))
	_, err = classes.Get(ctx, "cls-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClassStore_Save_Upsert(t *testing.T) {
	store := newTestStore(t)
	classes := store.ClassStore()
	ctx := context.Background()

	require.NoError(t, classes.Save(ctx, domain.Class{ID: "cls-1", Name: "Old"}))
	require.NoError(t, classes.Save(ctx, domain.Class{ID: "cls-1", Name: "New", Subject: domain.SubjectMath}))

	got, err := classes.Get(ctx, "cls-1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, domain.SubjectMath, got.Subject)
}

func TestClassStore_List_Ordered(t *testing.T) {
	store := newTestStore(t)
	classes := store.ClassStore()
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, classes.Save(ctx, domain.Class{ID: "b", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, classes.Save(ctx, domain.Class{ID: "a", CreatedAt: base}))

	list, err := classes.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}

func TestTranscriptCache_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	cache := store.TranscriptCache()
	ctx := context.Background()

	tr := domain.Transcript{
		{ID: "m1", Role: domain.RoleUser, Content: "What is mitosis?"},
		{ID: "m2", Role: domain.RoleAssistant, Content: "Cell division.",
			Citations: []domain.Citation{{Source: "notes.pdf", Preview: "mitosis...", Score: 0.93}}},
	}

	require.NoError(t, cache.Put(ctx, driven.ScopeSession, "sess-1", tr))

	got, err := cache.Get(ctx, driven.ScopeSession, "sess-1")
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "What is mitosis?", got[0].Content)
	require.Len(t, got[1].Citations, 1)
	assert.Equal(t, "notes.pdf", got[1].Citations[0].Source)
}

func TestTranscriptCache_Miss_IsEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.TranscriptCache().Get(context.Background(), driven.ScopeClass, "missing")
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestTranscriptCache_Delete(t *testing.T) {
	store := newTestStore(t)
	cache := store.TranscriptCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, driven.ScopeSession, "sess-1",
		domain.Transcript{{ID: "m1"}}))
	require.NoError(t, cache.Delete(ctx, driven.ScopeSession, "sess-1"))

	got, err := cache.Get(ctx, driven.ScopeSession, "sess-1")
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestKVStore_PutGetDelete(t *testing.T) {
	store := newTestStore(t)
	kv := store.KVStore()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, driven.KeyLastSessionID, "sess-42"))

	val, err := kv.Get(ctx, driven.KeyLastSessionID)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", val)

	// Overwrite
	require.NoError(t, kv.Put(ctx, driven.KeyLastSessionID, "sess-43"))
	val, err = kv.Get(ctx, driven.KeyLastSessionID)
	require.NoError(t, err)
	assert.Equal(t, "sess-43", val)

	require.NoError(t, kv.Delete(ctx, driven.KeyLastSessionID))
	val, err = kv.Get(ctx, driven.KeyLastSessionID)
	require.NoError(t, err)
	assert.Empty(t, val)
}
