// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the double-SHA256 and HASH160 digests used
// throughout the consensus primitives, along with a fixed-size Hash type
// that displays itself in the network's conventional reversed byte order.
package chainhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/ripemd160"
)

// HashSize is the number of bytes in a double-SHA256 hash.
const HashSize = 32

// Hash is a 32-byte double-SHA256 digest. It is stored in internal
// (natural, little-endian) byte order; String and the wire encodings
// reverse it to the network's conventional display order.
type Hash [HashSize]byte

// String returns the Hash as a hexadecimal string in display (reversed)
// byte order, matching how block and transaction hashes are printed.
func (h Hash) String() string {
	var reversed Hash
	for i, b := range h[:] {
		reversed[HashSize-1-i] = b
	}
	return hex.EncodeToString(reversed[:])
}

// CloneBytes returns a newly allocated copy of the hash's bytes.
func (h Hash) CloneBytes() []byte {
	out := make([]byte, HashSize)
	copy(out, h[:])
	return out
}

// IsEqual reports whether h and target represent the same hash. A nil
// target is never equal.
func (h *Hash) IsEqual(target *Hash) bool {
	if target == nil {
		return false
	}
	return *h == *target
}

// NewHash constructs a Hash from a 32-byte slice given in internal byte
// order. It returns an error if the slice isn't exactly HashSize bytes.
func NewHash(b []byte) (*Hash, error) {
	if len(b) != HashSize {
		return nil, fmt.Errorf("invalid hash length of %v, want %v", len(b), HashSize)
	}
	var h Hash
	copy(h[:], b)
	return &h, nil
}

// HashB returns the double-SHA256 digest of b: sha256(sha256(b)).
func HashB(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// HashH returns the double-SHA256 digest of b as a Hash.
func HashH(b []byte) Hash {
	first := sha256.Sum256(b)
	return Hash(sha256.Sum256(first[:]))
}

// DoubleHashB is an alias of HashB kept for parity with the teacher
// package's naming; both compute sha256(sha256(b)).
func DoubleHashB(b []byte) []byte {
	return HashB(b)
}

// Hash160 computes RIPEMD160(SHA256(b)), the digest Bitcoin addresses are
// derived from. SHA-256 and RIPEMD-160 are treated as externally supplied
// primitives per the spec; this simply composes Go's standard library
// sha256 with golang.org/x/crypto/ripemd160.
func Hash160(b []byte) []byte {
	sha := sha256.Sum256(b)
	ripe := ripemd160.New()
	ripe.Write(sha[:])
	return ripe.Sum(nil)
}
