// Package store provides persistence implementations for workout entries.
// The EntryStore interface is defined in the parent liftlog package
// (../store_interface.go) to avoid import cycles between the domain and
// store packages.
//
// This package contains concrete implementations:
//   - DynamoDBStore: Production AWS DynamoDB backend
//   - MemoryStore: In-memory backend for testing
//
// Key layout follows the single-table patterns defined in schema.go.
package store
