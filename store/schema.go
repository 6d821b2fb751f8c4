package store

import "fmt"

// DynamoDB schema constants for the single-table entry layout
const (
	// Table attributes
	AttrPK         = "PK"
	AttrSK         = "SK"
	AttrEntityType = "entity_type"

	// Entity types
	EntityTypeWorkoutEntry = "WorkoutEntry"
)

// Key builders

// WorkoutEntry keys: PK=TENANT#{tenantID}, SK=ENTRY#{entryID}
// Entry ids embed a zero-padded millisecond timestamp, so the sort key range
// for a tenant is in chronological order.
func tenantPK(tenantID string) string {
	return fmt.Sprintf("TENANT#%s", tenantID)
}

func entrySK(entryID string) string {
	return fmt.Sprintf("ENTRY#%s", entryID)
}

// Prefix for range queries
func entryPrefix() string {
	return "ENTRY#"
}
