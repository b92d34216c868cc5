package hasher

import "github.com/ethereum/go-ethereum/crypto"

// Keccak256 hashes with legacy Keccak-256, matching the Solidity keccak256
// builtin. This is the default primitive for trees whose roots are consumed
// on-chain.
type Keccak256 struct{}

var _ Hasher = Keccak256{}

// Hashv hashes the concatenation of chunks with Keccak-256.
func (Keccak256) Hashv(chunks ...[]byte) Hash {
	return Hash(crypto.Keccak256Hash(chunks...))
}
