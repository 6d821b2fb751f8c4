package liftlog

import "context"

// EntryStore defines the persistence interface for workout entries.
// Implementations live in the store package; the interface is declared here
// so the Tracker does not depend on a concrete backend.
type EntryStore interface {
	// PutEntry persists a single entry. Entries are append-only, so a put
	// never overwrites an existing entry under normal operation.
	PutEntry(ctx context.Context, entry *WorkoutEntry) error

	// ListEntries returns a tenant's full history ordered by entry id
	// ascending (which is chronological).
	ListEntries(ctx context.Context, tenantID string) ([]*WorkoutEntry, error)

	// ListRecent returns up to limit entries ordered most-recent-first.
	ListRecent(ctx context.Context, tenantID string, limit int) ([]*WorkoutEntry, error)

	// DeleteEntries removes every entry owned by the tenant.
	DeleteEntries(ctx context.Context, tenantID string) error
}
