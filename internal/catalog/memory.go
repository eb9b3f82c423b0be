package catalog

import (
	"context"
	"sync"

	"github.com/diversicloud/cloudcompare/internal/domain"
)

// MemoryStore keeps catalog entries in a process-lifetime map. No TTL, no
// invalidation; concurrent writers for the same region resolve to the last
// writer.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*domain.InstanceCatalogEntry
}

// NewMemoryStore creates an empty in-memory catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*domain.InstanceCatalogEntry),
	}
}

// Get returns the stored entry for a region.
func (s *MemoryStore) Get(_ context.Context, region string) (*domain.InstanceCatalogEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[region]
	return entry, ok
}

// Set stores the entry for a region.
func (s *MemoryStore) Set(_ context.Context, region string, entry *domain.InstanceCatalogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[region] = entry
	return nil
}
