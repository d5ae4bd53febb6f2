// ABOUTME: Per-source cache stores holding the last good payload for each descriptor
// ABOUTME: Defines the Store interface and the default in-memory implementation

package cache

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/harper/matchday/internal/models"
)

// ErrNotFound is returned by Get when no entry exists for a key.
var ErrNotFound = errors.New("cache entry not found")

// Store holds one CacheEntry per source key. Put replaces the whole entry atomically.
type Store interface {
	Get(ctx context.Context, key string) (*models.CacheEntry, error)
	Put(ctx context.Context, entry *models.CacheEntry) error
	List(ctx context.Context) ([]*models.CacheEntry, error)
}

// MemoryStore is a process-lifetime Store guarded by a mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]models.CacheEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]models.CacheEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*models.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &entry, nil
}

func (s *MemoryStore) Put(_ context.Context, entry *models.CacheEntry) error {
	if entry == nil || entry.SourceKey == "" {
		return errors.New("cache entry requires a source key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.SourceKey] = *entry
	return nil
}

// List returns every entry ordered by source key.
func (s *MemoryStore) List(_ context.Context) ([]*models.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.CacheEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		e := entry
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceKey < out[j].SourceKey })
	return out, nil
}
