package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument upserts the document for doc.Key. The stored ID survives updates.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil || doc.Key == "" {
		return "", domain.ErrInvalidInput
	}

	id := doc.ID
	if id == "" {
		id = uuid.New().String()
	}
	generatedAt := doc.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = s.store.now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, key, owner, repo, content, chunk_count, processing_ms, from_cache, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			owner = excluded.owner,
			repo = excluded.repo,
			content = excluded.content,
			chunk_count = excluded.chunk_count,
			processing_ms = excluded.processing_ms,
			from_cache = excluded.from_cache,
			generated_at = excluded.generated_at
	`, id, doc.Key, doc.Owner, doc.Repo, doc.Content, doc.ChunkCount,
		doc.ProcessingTime.Milliseconds(), doc.FromCache, toMillis(generatedAt))
	if err != nil {
		return "", fmt.Errorf("saving document: %w", err)
	}

	if err := s.store.db.QueryRowContext(ctx, "SELECT id FROM documents WHERE key = ?", doc.Key).Scan(&id); err != nil {
		return "", fmt.Errorf("reading document id: %w", err)
	}
	doc.ID = id
	return id, nil
}

// LoadDocument retrieves the document for key.
func (s *documentStore) LoadDocument(ctx context.Context, key string) (*domain.Document, error) {
	var doc domain.Document
	var processingMs, generatedAt int64

	err := s.store.db.QueryRowContext(ctx, `
		SELECT id, key, owner, repo, content, chunk_count, processing_ms, from_cache, generated_at
		FROM documents WHERE key = ?
	`, key).Scan(&doc.ID, &doc.Key, &doc.Owner, &doc.Repo, &doc.Content, &doc.ChunkCount,
		&processingMs, &doc.FromCache, &generatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.ProcessingTime = time.Duration(processingMs) * time.Millisecond
	doc.GeneratedAt = fromMillis(generatedAt)
	return &doc, nil
}

// DeleteDocument removes the document for key.
func (s *documentStore) DeleteDocument(ctx context.Context, key string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}
