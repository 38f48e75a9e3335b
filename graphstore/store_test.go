package graphstore

import (
	"context"
	"testing"

	"github.com/poiesic/kgraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDocumentLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := &core.Document{
		Id:       "doc-1",
		Content:  "some document text",
		ChunkIds: []string{"chunk-a", "chunk-b"},
	}
	require.NoError(t, store.PutDocument(ctx, doc))
	assert.False(t, doc.InsertedAt.IsZero())

	loaded, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Content, loaded.Content)
	assert.Equal(t, doc.ChunkIds, loaded.ChunkIds)

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	_, err = store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetDocument_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetDocument(context.Background(), "doc-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDocument_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.DeleteDocument(context.Background(), "doc-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMergeEntity_New(t *testing.T) {
	store := newTestStore(t)

	merged, err := store.MergeEntity(context.Background(), &core.Entity{
		Name:        "Alice",
		Type:        "person",
		Description: "a researcher",
	})
	require.NoError(t, err)

	assert.Equal(t, core.EntityID("Alice"), merged.Id)
	assert.Equal(t, "a researcher", merged.Description)
	assert.False(t, merged.InsertedAt.IsZero())
	assert.False(t, merged.UpdatedAt.IsZero())
}

func TestMergeEntity_AccumulatesDescriptions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.MergeEntity(ctx, &core.Entity{Name: "Alice", Type: "person", Description: "a researcher"})
	require.NoError(t, err)

	merged, err := store.MergeEntity(ctx, &core.Entity{Name: "alice", Description: "works at acme"})
	require.NoError(t, err)

	assert.Equal(t, "a researcher works at acme", merged.Description)
	assert.Equal(t, "person", merged.Type)

	// Repeating a known description does not duplicate it.
	merged, err = store.MergeEntity(ctx, &core.Entity{Name: "Alice", Description: "a researcher"})
	require.NoError(t, err)
	assert.Equal(t, "a researcher works at acme", merged.Description)
}

func TestGetEntity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	merged, err := store.MergeEntity(ctx, &core.Entity{Name: "Acme", Type: "organization"})
	require.NoError(t, err)

	loaded, err := store.GetEntity(ctx, merged.Id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", loaded.Name)

	_, err = store.GetEntity(ctx, "ent-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMergeRelation_KeepsHigherStrength(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.MergeRelation(ctx, &core.Relation{
		Source: "alice", Target: "acme", Description: "works at", Strength: 7,
	})
	require.NoError(t, err)

	merged, err := store.MergeRelation(ctx, &core.Relation{
		Source: "alice", Target: "acme", Description: "employed by", Strength: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, merged.Strength)
	assert.Equal(t, "works at employed by", merged.Description)
}

func TestRelationsForEntity_BothDirections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.MergeRelation(ctx, &core.Relation{Source: "alice", Target: "acme", Description: "works at", Strength: 5})
	require.NoError(t, err)
	_, err = store.MergeRelation(ctx, &core.Relation{Source: "bob", Target: "alice", Description: "manages", Strength: 6})
	require.NoError(t, err)
	_, err = store.MergeRelation(ctx, &core.Relation{Source: "bob", Target: "acme", Description: "works at", Strength: 5})
	require.NoError(t, err)

	relations, err := store.RelationsForEntity(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, relations, 2)

	tuples := map[string]bool{}
	for _, rel := range relations {
		tuples[rel.Tuple()] = true
	}
	assert.True(t, tuples["(alice->acme)"])
	assert.True(t, tuples["(bob->alice)"])
}

func TestRelationsForEntity_None(t *testing.T) {
	store := newTestStore(t)

	relations, err := store.RelationsForEntity(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, relations)
}

func TestStoreClosed(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Close())
	assert.True(t, store.IsClosed())

	_, err := store.GetDocument(context.Background(), "doc-1")
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestMergeDescriptions(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		incoming string
		want     string
	}{
		{name: "both empty", existing: "", incoming: "", want: ""},
		{name: "empty existing", existing: "", incoming: "new", want: "new"},
		{name: "empty incoming", existing: "old", incoming: "", want: "old"},
		{name: "whitespace incoming", existing: "old", incoming: "   ", want: "old"},
		{name: "appends", existing: "old", incoming: "new", want: "old new"},
		{name: "skips contained", existing: "old and more", incoming: "and", want: "old and more"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeDescriptions(tt.existing, tt.incoming))
		})
	}
}
