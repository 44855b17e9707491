package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

// Ensure SummaryCache implements the interface.
var _ driven.SummaryCache = (*SummaryCache)(nil)

// SummaryCache is an in-memory implementation of driven.SummaryCache.
type SummaryCache struct {
	mu      sync.RWMutex
	records map[string]domain.CacheRecord
	now     func() time.Time
}

// NewSummaryCache creates a new in-memory summary cache.
func NewSummaryCache() *SummaryCache {
	return &SummaryCache{
		records: make(map[string]domain.CacheRecord),
		now:     time.Now,
	}
}

// SaveSummaries replaces the record for key, keeping its creation time.
func (c *SummaryCache) SaveSummaries(_ context.Context, key string, chunks []domain.Chunk, stats domain.SummaryStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	owner, repo := splitKey(key)
	record := domain.CacheRecord{
		Key:       key,
		Owner:     owner,
		Repo:      repo,
		Chunks:    append([]domain.Chunk(nil), chunks...),
		Stats:     stats,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, ok := c.records[key]; ok {
		record.CreatedAt = existing.CreatedAt
	}
	c.records[key] = record
	return nil
}

// LoadSummaries returns a copy of the record for key.
func (c *SummaryCache) LoadSummaries(_ context.Context, key string) (*domain.CacheRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.records[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	record.Chunks = append([]domain.Chunk(nil), record.Chunks...)
	return &record, nil
}

// ClearSummaries removes the record for key.
func (c *SummaryCache) ClearSummaries(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, key)
	return nil
}

// ListSummaries returns all records without chunks, most recently updated first.
func (c *SummaryCache) ListSummaries(_ context.Context) ([]domain.CacheRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]domain.CacheRecord, 0, len(c.records))
	for _, record := range c.records {
		record.Chunks = nil
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].Key < result[j].Key
		}
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func splitKey(key string) (owner, repo string) {
	owner, repo, _ = strings.Cut(key, "/")
	return owner, repo
}
