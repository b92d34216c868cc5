package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRecordRoundTrip checks records survive the storage serialization
func TestRecordRoundTrip(t *testing.T) {
	record := &Record{
		StorageID:   7,
		Raw:         []byte{0x41, 0x55, 0x57, 0x56, 0x00, 0x00, 0x00, 0x00, 0x07},
		SubmittedAt: 1724544000,
	}

	data, err := MarshalRecord(record)
	require.NoError(t, err)

	decoded, err := UnmarshalRecord(data)
	require.NoError(t, err)
	require.Equal(t, record, decoded)
}

// TestMarshalNil checks nil records are rejected
func TestMarshalNil(t *testing.T) {
	_, err := MarshalRecord(nil)
	require.Error(t, err)
}

// TestUnmarshalGarbage checks corrupt storage data surfaces as an error
func TestUnmarshalGarbage(t *testing.T) {
	_, err := UnmarshalRecord([]byte("not json"))
	require.Error(t, err)
}
