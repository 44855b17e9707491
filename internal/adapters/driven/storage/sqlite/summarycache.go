package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

// summaryCache implements driven.SummaryCache.
type summaryCache struct {
	store *Store
}

var _ driven.SummaryCache = (*summaryCache)(nil)

// SaveSummaries replaces the record for key inside one transaction.
func (c *summaryCache) SaveSummaries(ctx context.Context, key string, chunks []domain.Chunk, stats domain.SummaryStats) error {
	owner, repo, _ := strings.Cut(key, "/")
	now := toMillis(c.store.now())

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO summary_cache (key, owner, repo, total, successful, skipped, failed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			total = excluded.total,
			successful = excluded.successful,
			skipped = excluded.skipped,
			failed = excluded.failed,
			updated_at = excluded.updated_at
	`, key, owner, repo, stats.Total, stats.Successful, stats.Skipped, stats.Failed, now, now)
	if err != nil {
		return fmt.Errorf("saving summary record: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM summary_chunks WHERE cache_key = ?", key); err != nil {
		return fmt.Errorf("clearing summary chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO summary_chunks (cache_key, position, file, idx, content, summary)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, key, i, chunk.File, chunk.Index, chunk.Content, chunk.Summary); err != nil {
			return fmt.Errorf("saving chunk %s#%d: %w", chunk.File, chunk.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing summaries: %w", err)
	}
	return nil
}

// LoadSummaries returns the record for key with its chunks in saved order.
func (c *summaryCache) LoadSummaries(ctx context.Context, key string) (*domain.CacheRecord, error) {
	row := c.store.db.QueryRowContext(ctx, `
		SELECT key, owner, repo, total, successful, skipped, failed, created_at, updated_at
		FROM summary_cache WHERE key = ?
	`, key)
	record, err := scanRecord(row)
	if err != nil {
		return nil, err
	}

	rows, err := c.store.db.QueryContext(ctx, `
		SELECT file, idx, content, summary FROM summary_chunks
		WHERE cache_key = ? ORDER BY position
	`, key)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var chunk domain.Chunk
		if err := rows.Scan(&chunk.File, &chunk.Index, &chunk.Content, &chunk.Summary); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		record.Chunks = append(record.Chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return record, nil
}

// ClearSummaries removes the record for key. Chunks cascade.
func (c *summaryCache) ClearSummaries(ctx context.Context, key string) error {
	if _, err := c.store.db.ExecContext(ctx, "DELETE FROM summary_cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("clearing summaries: %w", err)
	}
	return nil
}

// ListSummaries returns all records without chunks, most recently updated first.
func (c *summaryCache) ListSummaries(ctx context.Context) ([]domain.CacheRecord, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT key, owner, repo, total, successful, skipped, failed, created_at, updated_at
		FROM summary_cache ORDER BY updated_at DESC, key
	`)
	if err != nil {
		return nil, fmt.Errorf("querying summaries: %w", err)
	}
	defer rows.Close()

	var records []domain.CacheRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating summaries: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*domain.CacheRecord, error) {
	var record domain.CacheRecord
	var createdAt, updatedAt int64
	err := row.Scan(&record.Key, &record.Owner, &record.Repo,
		&record.Stats.Total, &record.Stats.Successful, &record.Stats.Skipped, &record.Stats.Failed,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning summary record: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return &record, nil
}
