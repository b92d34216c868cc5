package hasher

import (
	"bytes"
	"encoding/hex"
)

// Size is the width in bytes of every hash value produced by this package.
const Size = 32

// Hash is a fixed-width hash value. Hashes compare equal with == and order
// lexicographically over their raw bytes via Compare.
type Hash [Size]byte

// Compare orders two hashes lexicographically over their raw bytes.
// Returns -1 if h < other, 0 if equal, 1 if h > other.
func (h Hash) Compare(other Hash) int {
	return bytes.Compare(h[:], other[:])
}

// String returns the hash as a hex string.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Hasher is the hash primitive the accumulator is built over. Hashv hashes
// the concatenation of chunks into a single fixed-width value.
//
// Implementations must be collision resistant; everything above this
// interface (domain separation, tree construction, proofs) assumes nothing
// else about the primitive.
type Hasher interface {
	Hashv(chunks ...[]byte) Hash
}
