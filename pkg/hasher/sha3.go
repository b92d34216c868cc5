package hasher

import "golang.org/x/crypto/sha3"

// SHA3256 hashes with standard SHA3-256. It exists to demonstrate that the
// tree logic is independent of the concrete primitive; roots built with it
// are not compatible with Keccak256 roots.
type SHA3256 struct{}

var _ Hasher = SHA3256{}

// Hashv hashes the concatenation of chunks with SHA3-256.
func (SHA3256) Hashv(chunks ...[]byte) Hash {
	d := sha3.New256()
	for _, chunk := range chunks {
		d.Write(chunk)
	}
	var h Hash
	d.Sum(h[:0])
	return h
}
