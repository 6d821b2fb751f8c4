package store

import (
	"context"
	"sort"
	"sync"

	"github.com/ivantsev/liftlog"
)

// MemoryStore implements liftlog.EntryStore using in-memory storage (for testing)
type MemoryStore struct {
	entries map[string][]*liftlog.WorkoutEntry // tenantID -> entries, sorted by entry id
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory entry store
func NewMemoryStore() liftlog.EntryStore {
	return &MemoryStore{
		entries: make(map[string][]*liftlog.WorkoutEntry),
	}
}

func (s *MemoryStore) PutEntry(ctx context.Context, entry *liftlog.WorkoutEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Deep copy
	entryCopy := *entry
	tenant := s.entries[entry.TenantID]
	tenant = append(tenant, &entryCopy)
	sort.Slice(tenant, func(i, j int) bool {
		return tenant[i].EntryID < tenant[j].EntryID
	})
	s.entries[entry.TenantID] = tenant

	return nil
}

func (s *MemoryStore) ListEntries(ctx context.Context, tenantID string) ([]*liftlog.WorkoutEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenant := s.entries[tenantID]
	entries := make([]*liftlog.WorkoutEntry, 0, len(tenant))
	for _, entry := range tenant {
		// Deep copy
		entryCopy := *entry
		entries = append(entries, &entryCopy)
	}

	return entries, nil
}

func (s *MemoryStore) ListRecent(ctx context.Context, tenantID string, limit int) ([]*liftlog.WorkoutEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenant := s.entries[tenantID]
	entries := make([]*liftlog.WorkoutEntry, 0, limit)
	for i := len(tenant) - 1; i >= 0 && len(entries) < limit; i-- {
		// Deep copy
		entryCopy := *tenant[i]
		entries = append(entries, &entryCopy)
	}

	return entries, nil
}

func (s *MemoryStore) DeleteEntries(ctx context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, tenantID)
	return nil
}
