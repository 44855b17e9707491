package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

func TestDocumentStore_SaveDocument_AssignsID(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{Key: "octo/hello", Owner: "octo", Repo: "hello", Content: "# hello", GeneratedAt: time.Now()}
	id, err := store.SaveDocument(ctx, doc)

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, doc.ID)

	saved, err := store.LoadDocument(ctx, "octo/hello")
	require.NoError(t, err)
	assert.Equal(t, id, saved.ID)
	assert.Equal(t, "# hello", saved.Content)
}

func TestDocumentStore_SaveDocument_UpsertKeepsID(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	first, err := store.SaveDocument(ctx, &domain.Document{Key: "octo/hello", Content: "v1"})
	require.NoError(t, err)
	second, err := store.SaveDocument(ctx, &domain.Document{Key: "octo/hello", Content: "v2", FromCache: true})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	saved, err := store.LoadDocument(ctx, "octo/hello")
	require.NoError(t, err)
	assert.Equal(t, "v2", saved.Content)
	assert.True(t, saved.FromCache)
}

func TestDocumentStore_SaveDocument_Invalid(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.SaveDocument(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.SaveDocument(context.Background(), &domain.Document{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStore_LoadDocument_NotFound(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.LoadDocument(context.Background(), "octo/missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_DeleteDocument(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	_, err := store.SaveDocument(ctx, &domain.Document{Key: "octo/hello"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteDocument(ctx, "octo/hello"))
	require.NoError(t, store.DeleteDocument(ctx, "octo/hello"))

	_, err = store.LoadDocument(ctx, "octo/hello")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
