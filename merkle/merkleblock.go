// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcprim/btcprim/blockheader"
	"github.com/btcprim/btcprim/chainhash"
	"github.com/btcprim/btcprim/varint"
)

// Block is a merkleblock message: a block header plus a partial merkle
// tree an SPV client can use to confirm a transaction's inclusion without
// downloading the whole block.
type Block struct {
	Header blockheader.Header
	Total  uint32
	Hashes []chainhash.Hash
	Flags  []byte
}

// Parse reads a merkleblock message body from r.
func Parse(r *bytes.Reader) (*Block, error) {
	header, err := blockheader.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("merkle block header: %w", err)
	}

	var totalBuf [4]byte
	if _, err := io.ReadFull(r, totalBuf[:]); err != nil {
		return nil, fmt.Errorf("merkle block total: %w", err)
	}
	total := binary.LittleEndian.Uint32(totalBuf[:])

	numHashes, err := varint.Read(r)
	if err != nil {
		return nil, fmt.Errorf("merkle block hash count: %w", err)
	}
	hashes := make([]chainhash.Hash, numHashes)
	for i := range hashes {
		var rev [chainhash.HashSize]byte
		if _, err := io.ReadFull(r, rev[:]); err != nil {
			return nil, fmt.Errorf("merkle block hash %d: %w", i, err)
		}
		for j := 0; j < chainhash.HashSize; j++ {
			hashes[i][j] = rev[chainhash.HashSize-1-j]
		}
	}

	flagsLength, err := varint.Read(r)
	if err != nil {
		return nil, fmt.Errorf("merkle block flags length: %w", err)
	}
	flags := make([]byte, flagsLength)
	if _, err := io.ReadFull(r, flags); err != nil {
		return nil, fmt.Errorf("merkle block flags: %w", err)
	}

	return &Block{Header: *header, Total: total, Hashes: hashes, Flags: flags}, nil
}

// IsValid reconstructs the merkle tree implied by Hashes and Flags and
// reports whether the reconstructed root matches the header's MerkleRoot.
//
// Hashes is stored in display (reversed) order by Parse, matching the
// convention tx.Tx.ID uses, but Parent/Populate hash raw concatenated
// bytes and therefore need their leaves in wire order. IsValid reverses
// each hash back to wire order before populating, and reverses the
// reconstructed root the same way before comparing it against
// MerkleRoot, which Header.Parse already stores in display order.
// Skipping either reversal silently reconstructs a root unrelated to the
// real block's merkle root, since hash256(l||r) is not invariant under
// byte-reversal of its inputs.
func (b *Block) IsValid() (bool, error) {
	flagBits := BytesToBitField(b.Flags)

	wireHashes := make([]chainhash.Hash, len(b.Hashes))
	for i, h := range b.Hashes {
		wireHashes[i] = reverseHash(h)
	}

	tree := NewTree(int(b.Total))
	if err := tree.Populate(flagBits, wireHashes); err != nil {
		return false, err
	}

	root := tree.Root()
	if root == nil {
		return false, ErrMalformedProof
	}
	displayRoot := reverseHash(*root)
	ok := displayRoot == b.Header.MerkleRoot
	if !ok {
		log.Debugf("merkle block root mismatch: reconstructed=%s header=%s", displayRoot, b.Header.MerkleRoot)
	}
	return ok, nil
}

// reverseHash returns h with its bytes in reverse order, converting
// between wire order and the package's display (reversed) storage
// convention for transaction and merkle hashes.
func reverseHash(h chainhash.Hash) chainhash.Hash {
	var out chainhash.Hash
	for i, b := range h {
		out[len(h)-1-i] = b
	}
	return out
}
