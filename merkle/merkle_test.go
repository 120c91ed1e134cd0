// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"testing"

	"github.com/btcprim/btcprim/blockheader"
	"github.com/btcprim/btcprim/chainhash"
)

func TestRootOfSingleLeafIsItself(t *testing.T) {
	h := chainhash.HashH([]byte("lonely leaf"))
	root := Root([]chainhash.Hash{h})
	if root != h {
		t.Fatal("expected the root of a single-leaf tree to equal the leaf")
	}
}

func TestParentLevelDuplicatesOddTail(t *testing.T) {
	a := chainhash.HashH([]byte("a"))
	b := chainhash.HashH([]byte("b"))
	c := chainhash.HashH([]byte("c"))

	level := ParentLevel([]chainhash.Hash{a, b, c})
	if len(level) != 2 {
		t.Fatalf("expected 2 parents from 3 leaves, got %d", len(level))
	}
	if level[1] != Parent(c, c) {
		t.Fatal("expected the duplicated last leaf to pair with itself")
	}
}

func TestRootMatchesIterativeParentLevels(t *testing.T) {
	leaves := []chainhash.Hash{
		chainhash.HashH([]byte("1")),
		chainhash.HashH([]byte("2")),
		chainhash.HashH([]byte("3")),
		chainhash.HashH([]byte("4")),
	}
	level1 := ParentLevel(leaves)
	want := Parent(level1[0], level1[1])
	if got := Root(leaves); got != want {
		t.Fatalf("root mismatch: got %x, want %x", got, want)
	}
}

func TestTreePopulateReconstructsRoot(t *testing.T) {
	leaves := make([]chainhash.Hash, 5)
	for i := range leaves {
		leaves[i] = chainhash.HashH([]byte{byte(i)})
	}
	want := Root(leaves)

	// A fully-disclosed proof: every internal node recurses (flag bit 1)
	// down to every leaf, whose own flag bit is consumed but unchecked. A
	// full walk visits exactly one node per (depth, index) pair.
	tree := NewTree(len(leaves))
	nodeCount := 0
	for _, row := range tree.nodes {
		nodeCount += len(row)
	}
	flagBits := make([]bool, nodeCount)
	for i := range flagBits {
		flagBits[i] = true
	}
	if err := tree.Populate(flagBits, leaves); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := tree.Root()
	if got == nil || *got != want {
		t.Fatalf("root mismatch: got %v, want %x", got, want)
	}
}

func TestTreePopulateRejectsLeftoverHashes(t *testing.T) {
	leaves := make([]chainhash.Hash, 2)
	for i := range leaves {
		leaves[i] = chainhash.HashH([]byte{byte(i)})
	}
	tree := NewTree(len(leaves))
	flagBits := make([]bool, 8)
	extra := append(append([]chainhash.Hash{}, leaves...), chainhash.HashH([]byte("extra")))
	if err := tree.Populate(flagBits, extra); err == nil {
		t.Fatal("expected an error when extra hashes are left over")
	}
}

func TestBytesToBitFieldIsLSBFirst(t *testing.T) {
	got := BytesToBitField([]byte{0b00000101})
	want := []bool{true, false, true, false, false, false, false, false}
	if !boolSliceEqual(got, want) {
		t.Fatalf("bit field mismatch: got %v, want %v", got, want)
	}
}

func boolSliceEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMerkleBlockIsValidAgainstASyntheticProof(t *testing.T) {
	leaves := make([]chainhash.Hash, 4)
	for i := range leaves {
		leaves[i] = chainhash.HashH([]byte{byte('a' + i)})
	}
	root := Root(leaves)

	// Block holds Hashes and the header's MerkleRoot in display
	// (byte-reversed) order, the way Parse and blockheader.Parse store them.
	displayLeaves := make([]chainhash.Hash, len(leaves))
	for i, h := range leaves {
		displayLeaves[i] = reverseHash(h)
	}
	header := blockheader.Header{MerkleRoot: reverseHash(root)}
	block := &Block{
		Header: header,
		Total:  uint32(len(leaves)),
		Hashes: displayLeaves,
		Flags:  []byte{0x7f}, // 7 trues (one per tree node) then a trailing pad bit
	}

	valid, err := block.IsValid()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valid {
		t.Fatal("expected a fully-disclosed proof over its own root to validate")
	}
}

func TestMerkleBlockIsValidRejectsWrongRoot(t *testing.T) {
	leaves := make([]chainhash.Hash, 4)
	for i := range leaves {
		leaves[i] = chainhash.HashH([]byte{byte('a' + i)})
	}

	header := blockheader.Header{MerkleRoot: chainhash.HashH([]byte("not the root"))}
	block := &Block{
		Header: header,
		Total:  uint32(len(leaves)),
		Hashes: leaves,
		Flags:  []byte{0x7f}, // 7 trues (one per tree node) then a trailing pad bit
	}

	valid, err := block.IsValid()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid {
		t.Fatal("expected a proof against a mismatched merkle root to fail")
	}
}
