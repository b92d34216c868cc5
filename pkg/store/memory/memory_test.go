package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/merkle-accumulator-go/pkg/hasher"
	"github.com/Layr-Labs/merkle-accumulator-go/pkg/merkle"
	"github.com/Layr-Labs/merkle-accumulator-go/pkg/store"
)

func testRecord(t *testing.T, storageID uint32) *store.Record {
	t.Helper()

	tree, err := merkle.New(hasher.Keccak256{}, [][]byte{
		[]byte("alpha"), []byte("beta"), []byte("gamma"),
	})
	require.NoError(t, err)

	return &store.Record{
		StorageID:   storageID,
		Raw:         tree.Serialize(storageID),
		SubmittedAt: time.Now().Unix(),
	}
}

// TestSaveLoadRoundTrip checks a record survives storage byte-exact
func TestSaveLoadRoundTrip(t *testing.T) {
	m := NewMemoryStore()
	defer func() { _ = m.Close() }()

	record := testRecord(t, 7)
	require.NoError(t, m.SaveCommitment(record))

	loaded, err := m.LoadCommitment(7)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, record.StorageID, loaded.StorageID)
	require.Equal(t, record.Raw, loaded.Raw)
	require.Equal(t, record.SubmittedAt, loaded.SubmittedAt)
}

// TestLoadMissing checks a missing record returns nil without error
func TestLoadMissing(t *testing.T) {
	m := NewMemoryStore()
	defer func() { _ = m.Close() }()

	loaded, err := m.LoadCommitment(42)
	require.NoError(t, err)
	require.Nil(t, loaded)
}

// TestSaveNil checks nil records are rejected
func TestSaveNil(t *testing.T) {
	m := NewMemoryStore()
	defer func() { _ = m.Close() }()

	require.Error(t, m.SaveCommitment(nil))
}

// TestListSorted checks listing returns records in ascending storage id order
func TestListSorted(t *testing.T) {
	m := NewMemoryStore()
	defer func() { _ = m.Close() }()

	for _, id := range []uint32{9, 1, 5} {
		require.NoError(t, m.SaveCommitment(testRecord(t, id)))
	}

	records, err := m.ListCommitments()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, uint32(1), records[0].StorageID)
	require.Equal(t, uint32(5), records[1].StorageID)
	require.Equal(t, uint32(9), records[2].StorageID)
}

// TestDeleteIdempotent checks deleting twice is not an error
func TestDeleteIdempotent(t *testing.T) {
	m := NewMemoryStore()
	defer func() { _ = m.Close() }()

	require.NoError(t, m.SaveCommitment(testRecord(t, 3)))
	require.NoError(t, m.DeleteCommitment(3))
	require.NoError(t, m.DeleteCommitment(3))

	loaded, err := m.LoadCommitment(3)
	require.NoError(t, err)
	require.Nil(t, loaded)
}

// TestExternalMutation checks stored records can't be mutated from outside
func TestExternalMutation(t *testing.T) {
	m := NewMemoryStore()
	defer func() { _ = m.Close() }()

	record := testRecord(t, 1)
	require.NoError(t, m.SaveCommitment(record))

	// Mutate the caller's copy after saving
	record.Raw[0] ^= 0xFF

	loaded, err := m.LoadCommitment(1)
	require.NoError(t, err)
	require.NotEqual(t, record.Raw[0], loaded.Raw[0])

	// Mutate the loaded copy; the stored record stays intact
	loaded.Raw[1] ^= 0xFF
	again, err := m.LoadCommitment(1)
	require.NoError(t, err)
	require.NotEqual(t, loaded.Raw[1], again.Raw[1])
}

// TestClosedStore checks all operations fail after Close
func TestClosedStore(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.SaveCommitment(testRecord(t, 1)))
	require.NoError(t, m.Close())
	require.NoError(t, m.Close()) // Idempotent

	require.Error(t, m.SaveCommitment(testRecord(t, 2)))
	_, err := m.LoadCommitment(1)
	require.Error(t, err)
	_, err = m.ListCommitments()
	require.Error(t, err)
	require.Error(t, m.DeleteCommitment(1))
	require.Error(t, m.HealthCheck())
}
