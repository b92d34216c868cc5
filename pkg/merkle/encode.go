package merkle

import (
	"encoding/binary"

	"github.com/Layr-Labs/merkle-accumulator-go/pkg/hasher"
)

// Serialized commitment record layout, big-endian, no padding:
//
//	4 bytes   magic number
//	1 byte    update type
//	4 bytes   storage id
//	32 bytes  root hash
const (
	// RecordMagic marks a serialized root commitment record ("AUWV").
	RecordMagic uint32 = 0x41555756

	// recordUpdateType tags the only record layout emitted today.
	recordUpdateType byte = 0x00

	// RecordSize is the fixed size of a serialized commitment record.
	RecordSize = 4 + 1 + 4 + hasher.Size
)

// Serialize encodes the tree root together with a caller-supplied storage id
// into the fixed commitment record layout. Only encoding is provided here;
// downstream systems that need to parse the record own that logic.
func (t *Tree) Serialize(storageID uint32) []byte {
	out := make([]byte, 0, RecordSize)
	out = binary.BigEndian.AppendUint32(out, RecordMagic)
	out = append(out, recordUpdateType)
	out = binary.BigEndian.AppendUint32(out, storageID)
	out = append(out, t.Root[:]...)
	return out
}
