package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Layr-Labs/merkle-accumulator-go/pkg/store"
)

// MemoryStore is an in-memory implementation of CommitmentStore.
// This implementation is intended for TESTING ONLY.
//
// All data is lost when the process exits. Thread-safe using sync.RWMutex;
// records are copied on the way in and out to prevent external mutation.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uint32]*store.Record
	closed  bool
}

var _ store.CommitmentStore = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory commitment store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uint32]*store.Record),
	}
}

// SaveCommitment persists a commitment record.
func (m *MemoryStore) SaveCommitment(record *store.Record) error {
	if record == nil {
		return fmt.Errorf("cannot save nil record")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("store is closed")
	}

	m.records[record.StorageID] = copyRecord(record)
	return nil
}

// LoadCommitment retrieves a commitment record by storage id.
func (m *MemoryStore) LoadCommitment(storageID uint32) (*store.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("store is closed")
	}

	record, exists := m.records[storageID]
	if !exists {
		return nil, nil
	}
	return copyRecord(record), nil
}

// ListCommitments returns all records sorted by storage id.
func (m *MemoryStore) ListCommitments() ([]*store.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("store is closed")
	}

	records := make([]*store.Record, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, copyRecord(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].StorageID < records[j].StorageID
	})
	return records, nil
}

// DeleteCommitment removes a record. Idempotent.
func (m *MemoryStore) DeleteCommitment(storageID uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("store is closed")
	}

	delete(m.records, storageID)
	return nil
}

// Close shuts down the store. Idempotent.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// HealthCheck reports whether the store is usable.
func (m *MemoryStore) HealthCheck() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return fmt.Errorf("store is closed")
	}
	return nil
}

// copyRecord deep-copies a record so callers can't mutate stored state.
func copyRecord(r *store.Record) *store.Record {
	cp := *r
	cp.Raw = append([]byte(nil), r.Raw...)
	return &cp
}
