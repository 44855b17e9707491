package driven

import (
	"context"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

// DocumentStore persists generated READMEs, one per repository key.
type DocumentStore interface {
	// SaveDocument stores or replaces the document for doc.Key and returns its ID.
	SaveDocument(ctx context.Context, doc *domain.Document) (string, error)

	// LoadDocument returns the document for key, or domain.ErrNotFound.
	LoadDocument(ctx context.Context, key string) (*domain.Document, error)

	// DeleteDocument removes the document for key.
	DeleteDocument(ctx context.Context, key string) error
}
