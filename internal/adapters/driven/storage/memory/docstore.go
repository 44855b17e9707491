package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
	}
}

// SaveDocument stores or replaces the document for doc.Key.
// The ID of an existing document is kept.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) (string, error) {
	if doc == nil || doc.Key == "" {
		return "", domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *doc
	if existing, ok := s.documents[doc.Key]; ok {
		stored.ID = existing.ID
	}
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	s.documents[doc.Key] = stored
	doc.ID = stored.ID
	return stored.ID, nil
}

// LoadDocument retrieves the document for key.
func (s *DocumentStore) LoadDocument(_ context.Context, key string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// DeleteDocument removes the document for key.
func (s *DocumentStore) DeleteDocument(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, key)
	return nil
}
