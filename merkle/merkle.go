// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle implements merkle-root computation and SPV proof
// reconstruction (MerkleBlock/MerkleTree) for the legacy Bitcoin merkle
// tree: parent = hash256(left || right), duplicating the final node of an
// odd-length level.
package merkle

import (
	"errors"
	"math"

	"github.com/btcprim/btcprim/chainhash"
	"github.com/jrick/bitset"
)

// ErrMalformedProof reports an SPV proof that didn't consume every pushed
// hash, left a set flag bit unconsumed, or ran out of hashes or flag bits
// before the tree was fully populated.
var ErrMalformedProof = errors.New("malformed merkle proof")

// ParentLevel returns the parent hashes for one level of a merkle tree,
// duplicating the last hash if the level has an odd number of nodes.
func ParentLevel(hashes []chainhash.Hash) []chainhash.Hash {
	if len(hashes) == 1 {
		panic("merkle: cannot take a parent level with only one item")
	}
	if len(hashes)%2 == 1 {
		hashes = append(append([]chainhash.Hash{}, hashes...), hashes[len(hashes)-1])
	}

	parents := make([]chainhash.Hash, 0, len(hashes)/2)
	for i := 0; i < len(hashes); i += 2 {
		parents = append(parents, Parent(hashes[i], hashes[i+1]))
	}
	return parents
}

// Parent returns hash256(left || right).
func Parent(left, right chainhash.Hash) chainhash.Hash {
	buf := make([]byte, 0, 2*chainhash.HashSize)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return chainhash.HashH(buf)
}

// Root reduces hashes to a single merkle root, repeatedly taking parent
// levels. It panics if hashes is empty, matching the reference
// implementation's unchecked recursion on an empty input.
func Root(hashes []chainhash.Hash) chainhash.Hash {
	level := hashes
	for len(level) > 1 {
		level = ParentLevel(level)
	}
	return level[0]
}

// Tree is an SPV merkle tree under reconstruction from a partial hash set
// and a flag-bit stream describing which subtrees were pruned.
type Tree struct {
	total       int
	maxDepth    int
	nodes       [][]*chainhash.Hash
	currentRow  int
	currentCol  int
}

// NewTree allocates an empty Tree sized for total leaves.
func NewTree(total int) *Tree {
	maxDepth := int(math.Ceil(math.Log2(float64(total))))
	nodes := make([][]*chainhash.Hash, maxDepth+1)
	for depth := 0; depth <= maxDepth; depth++ {
		numItems := int(math.Ceil(float64(total) / math.Pow(2, float64(maxDepth-depth))))
		nodes[depth] = make([]*chainhash.Hash, numItems)
	}
	return &Tree{total: total, maxDepth: maxDepth, nodes: nodes}
}

func (t *Tree) root() *chainhash.Hash { return t.nodes[0][0] }
func (t *Tree) isLeaf() bool          { return t.currentRow == t.maxDepth }
func (t *Tree) rightExists() bool {
	return len(t.nodes[t.currentRow+1]) > t.currentCol*2+1
}
func (t *Tree) setCurrent(h chainhash.Hash) { t.nodes[t.currentRow][t.currentCol] = &h }
func (t *Tree) left()                       { t.currentRow++; t.currentCol *= 2 }
func (t *Tree) right()                      { t.currentRow++; t.currentCol = t.currentCol*2 + 1 }
func (t *Tree) up()                         { t.currentRow--; t.currentCol /= 2 }
func (t *Tree) leftNode() *chainhash.Hash   { return t.nodes[t.currentRow+1][t.currentCol*2] }
func (t *Tree) rightNode() *chainhash.Hash  { return t.nodes[t.currentRow+1][t.currentCol*2+1] }

// BytesToBitField expands a flag-byte run into one bool per bit, in the
// same least-significant-bit-first-per-byte order the reference
// implementation's bytes_to_bit_field walks them — the same addressing
// bitset.Bytes.Get already uses, so this is a thin wrapper rather than a
// hand-rolled bit-unpacking loop.
func BytesToBitField(flags []byte) []bool {
	bits := bitset.Bytes(flags)
	out := make([]bool, len(flags)*8)
	for i := range out {
		out[i] = bits.Get(i)
	}
	return out
}

// Populate reconstructs the tree's root from a pruned hash list and flag
// bits, following the reference algorithm's leaf-then-parent walk. It
// returns ErrMalformedProof if hashes or flagBits are exhausted early, if
// any hash is left unconsumed once the root is found, or if any flag bit
// left unconsumed at that point is set. Unconsumed zero bits (the padding
// of the last flag byte) are accepted.
func (t *Tree) Populate(flagBits []bool, hashes []chainhash.Hash) error {
	hi, fi := 0, 0

	for t.root() == nil {
		if t.isLeaf() {
			if fi >= len(flagBits) {
				return ErrMalformedProof
			}
			fi++
			if hi >= len(hashes) {
				return ErrMalformedProof
			}
			t.setCurrent(hashes[hi])
			hi++
			t.up()
			continue
		}

		left := t.leftNode()
		if left == nil {
			if fi >= len(flagBits) {
				return ErrMalformedProof
			}
			bit := flagBits[fi]
			fi++
			if !bit {
				if hi >= len(hashes) {
					return ErrMalformedProof
				}
				t.setCurrent(hashes[hi])
				hi++
				t.up()
			} else {
				t.left()
			}
			continue
		}

		if t.rightExists() {
			right := t.rightNode()
			if right == nil {
				t.right()
				continue
			}
			t.setCurrent(Parent(*left, *right))
			t.up()
			continue
		}

		t.setCurrent(Parent(*left, *left))
		t.up()
	}

	if hi != len(hashes) {
		log.Debugf("populate: %d of %d hashes left unconsumed", len(hashes)-hi, len(hashes))
		return ErrMalformedProof
	}
	for _, bit := range flagBits[fi:] {
		if bit {
			log.Debugf("populate: unconsumed flag bit set after root was filled")
			return ErrMalformedProof
		}
	}
	log.Debugf("populate: reconstructed root %s from %d hashes", t.root(), len(hashes))
	return nil
}

// Root returns the tree's reconstructed root, or nil if Populate hasn't
// completed.
func (t *Tree) Root() *chainhash.Hash { return t.root() }
