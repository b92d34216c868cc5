package merkle

import "github.com/Layr-Labs/merkle-accumulator-go/pkg/hasher"

// Tree is a merkle accumulator over a set of byte strings. It commits the
// set into a single fixed-size root and answers membership queries with
// compact sibling-path proofs.
//
// A Tree is built once, in full, and is immutable afterwards. Any change to
// the underlying set requires building a brand-new Tree. Because it never
// mutates, any number of goroutines may call Prove and Check against the
// same Tree without synchronization.
type Tree struct {
	// Root is the merkle root committing the full item set.
	Root hasher.Hash

	// nodes is a 1-indexed complete-binary-tree array: nodes[1] is the root,
	// the children of nodes[i] are nodes[2i] and nodes[2i+1], and the leaves
	// occupy [leafCount, 2*leafCount). Index 0 is unused.
	nodes []hasher.Hash

	// leafCount is the padded leaf capacity, always a power of two.
	leafCount int

	h hasher.Hasher
}

// Proof is the ordered list of sibling hashes collected walking from a leaf
// up to the root, in leaf-to-root order. Its length equals the tree depth;
// for a single-item tree it is empty.
//
// A proof carries no positional metadata: node hashing orders its operands
// canonically, so replay is unambiguous without knowing which side of the
// tree the member was on.
type Proof []hasher.Hash

// Depth returns the tree depth: 0 for a single-item tree, otherwise
// ceil(log2(n)) for n input items.
func (t *Tree) Depth() int {
	depth := 0
	for 1<<depth < t.leafCount {
		depth++
	}
	return depth
}

// LeafCount returns the padded leaf capacity of the tree.
func (t *Tree) LeafCount() int {
	return t.leafCount
}
