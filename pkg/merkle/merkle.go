package merkle

import (
	"errors"
	"math/bits"

	"github.com/Layr-Labs/merkle-accumulator-go/pkg/hasher"
)

// Inputs are tagged by role before hashing so that leaf, internal-node and
// padding values live in disjoint hash spaces. Without the tags an attacker
// could present the concatenation of two sibling hashes as a "leaf" whose
// hash equals a real internal node, forging a membership proof (a second
// preimage attack).
//
// See https://en.wikipedia.org/wiki/Merkle_tree#Second_preimage_attack
const (
	leafPrefix = 0x00
	nodePrefix = 0x01
	nullPrefix = 0x02
)

var (
	// ErrEmptyInput is returned by New when the item set is empty.
	ErrEmptyInput = errors.New("cannot build merkle tree from an empty item set")

	// ErrNotAMember is returned by Prove when the queried item is not a leaf
	// of the tree.
	ErrNotAMember = errors.New("item is not a member of the tree")
)

// hashLeaf hashes an input item into leaf space.
func hashLeaf(h hasher.Hasher, item []byte) hasher.Hash {
	return h.Hashv([]byte{leafPrefix}, item)
}

// hashNode combines two child hashes into their parent. The operands are
// ordered by raw byte value before hashing, so the result is independent of
// which child sat left and which sat right. This is what lets Check replay a
// proof without positional metadata, and it must not change.
func hashNode(h hasher.Hasher, l, r hasher.Hash) hasher.Hash {
	if r.Compare(l) < 0 {
		l, r = r, l
	}
	return h.Hashv([]byte{nodePrefix}, l[:], r[:])
}

// hashNull is the padding value for leaf slots past the end of the item set.
func hashNull(h hasher.Hasher) hasher.Hash {
	return h.Hashv([]byte{nullPrefix})
}

// New builds a complete binary merkle tree over items using the given hash
// primitive and returns it with its root computed. The full node array is
// retained so the tree can answer Prove queries without recomputation.
//
// Construction is deterministic in the ordered items sequence. Items are not
// deduplicated or reordered here: callers that want a content-addressed,
// caller-independent commitment must canonicalize the ordering themselves
// (e.g. sort) before calling.
func New(h hasher.Hasher, items [][]byte) (*Tree, error) {
	if len(items) == 0 {
		return nil, ErrEmptyInput
	}

	depth := depthFor(len(items))
	leafCount := 1 << depth

	// One contiguous allocation for the whole tree; index 0 is unused.
	nodes := make([]hasher.Hash, 2*leafCount)

	// Fill the leaf level, padding unused slots with the null hash.
	null := hashNull(h)
	for i := 0; i < leafCount; i++ {
		if i < len(items) {
			nodes[leafCount+i] = hashLeaf(h, items[i])
		} else {
			nodes[leafCount+i] = null
		}
	}

	// Fill the internal levels bottom-up. For a single-item tree depth is 0
	// and the lone leaf at index 1 already is the root.
	for level := depth - 1; level >= 0; level-- {
		for i := 0; i < 1<<level; i++ {
			id := 1<<level + i
			nodes[id] = hashNode(h, nodes[2*id], nodes[2*id+1])
		}
	}

	return &Tree{
		Root:      nodes[1],
		nodes:     nodes,
		leafCount: leafCount,
		h:         h,
	}, nil
}

// depthFor returns ceil(log2(n)), with 0 for n = 1.
func depthFor(n int) int {
	return bits.Len(uint(n - 1))
}

// Prove returns the sibling path for item, in leaf-to-root order.
//
// Only the leaf index range of the node array is searched for the item's
// hash: an internal node whose hash happens to equal the queried leaf hash
// is never treated as a match.
func (t *Tree) Prove(item []byte) (Proof, error) {
	target := hashLeaf(t.h, item)

	index := -1
	for i := t.leafCount; i < 2*t.leafCount; i++ {
		if t.nodes[i] == target {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, ErrNotAMember
	}

	// Walk up to the root collecting siblings; the sibling of index is
	// always index^1 in the 1-indexed layout.
	proof := make(Proof, 0, t.Depth())
	for index > 1 {
		proof = append(proof, t.nodes[index^1])
		index /= 2
	}
	return proof, nil
}

// Check reports whether proof demonstrates that item is a member of this
// tree. It is shorthand for Verify against the tree's own root.
func (t *Tree) Check(proof Proof, item []byte) bool {
	return Verify(t.h, t.Root, proof, item)
}

// Verify reports whether proof replays item to root under the given hash
// primitive. It is stateless and total: a truncated, corrupted or entirely
// fabricated proof simply fails to reproduce root and yields false, never an
// error.
func Verify(h hasher.Hasher, root hasher.Hash, proof Proof, item []byte) bool {
	current := hashLeaf(h, item)
	for _, sibling := range proof {
		current = hashNode(h, current, sibling)
	}
	return current == root
}
