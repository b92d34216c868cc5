package store

// CommitmentStore defines the interface for persisting root commitment
// records across restarts. All implementations must be thread-safe.
//
// Only the exported commitment record is ever persisted; trees and proofs
// are rebuilt from the item set on demand and never stored.
type CommitmentStore interface {
	// SaveCommitment persists a record keyed by its storage id, overwriting
	// any existing record with the same id.
	SaveCommitment(record *Record) error

	// LoadCommitment retrieves a record by storage id.
	// Returns nil if the record doesn't exist, error only on storage failure.
	LoadCommitment(storageID uint32) (*Record, error)

	// ListCommitments returns all persisted records sorted by storage id
	// (ascending). Returns an empty slice if none exist.
	ListCommitments() ([]*Record, error)

	// DeleteCommitment removes a record by storage id.
	// Idempotent - returns nil if the record doesn't exist.
	DeleteCommitment(storageID uint32) error

	// Close cleanly shuts down the store. Idempotent.
	// After Close(), all other operations return errors.
	Close() error

	// HealthCheck verifies the store is operational.
	// Returns nil if healthy, an error describing the problem if not.
	HealthCheck() error
}
