// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockheader implements the 80-byte Bitcoin block header: its
// legacy serialization, proof-of-work check, compact-bits/target
// conversion, difficulty retargeting, and the BIP9/91/141 version-bit
// signaling checks.
package blockheader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/btcprim/btcprim/chainhash"
)

// HeaderSize is the fixed byte length of a serialized Header.
const HeaderSize = 80

// TwoWeeksSeconds is the target retarget interval, matching Bitcoin's
// 2016-block, 10-minutes-per-block assumption.
const TwoWeeksSeconds = 60 * 60 * 24 * 14

// ErrHeaderParse reports a malformed 80-byte header encoding.
var ErrHeaderParse = errors.New("block header parse error")

// Header is a Bitcoin block header. PrevBlock and MerkleRoot are stored in
// display order, byte-reversed relative to the wire encoding; Parse and
// Serialize reverse those two fields on the way in and out.
type Header struct {
	Version    uint32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       [4]byte
	Nonce      [4]byte
}

// Parse reads an 80-byte header from r.
func Parse(r *bytes.Reader) (*Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderParse, err)
	}

	h := &Header{
		Version:   binary.LittleEndian.Uint32(buf[0:4]),
		Timestamp: binary.LittleEndian.Uint32(buf[68:72]),
	}
	for i := 0; i < chainhash.HashSize; i++ {
		h.PrevBlock[i] = buf[4+chainhash.HashSize-1-i]
		h.MerkleRoot[i] = buf[36+chainhash.HashSize-1-i]
	}
	copy(h.Bits[:], buf[72:76])
	copy(h.Nonce[:], buf[76:80])
	return h, nil
}

// Serialize returns the 80-byte wire encoding of h.
func (h *Header) Serialize() []byte {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], h.Version)
	for i := 0; i < chainhash.HashSize; i++ {
		buf[4+chainhash.HashSize-1-i] = h.PrevBlock[i]
		buf[36+chainhash.HashSize-1-i] = h.MerkleRoot[i]
	}
	binary.LittleEndian.PutUint32(buf[68:72], h.Timestamp)
	copy(buf[72:76], h.Bits[:])
	copy(buf[76:80], h.Nonce[:])
	return buf[:]
}

// Hash returns hash256(Serialize()) in chainhash's internal byte order.
func (h *Header) Hash() chainhash.Hash {
	return chainhash.HashH(h.Serialize())
}

// BIP9 reports whether the header signals readiness to soft-fork via the
// top three version bits (version >> 29 == 0b001).
func (h *Header) BIP9() bool {
	return h.Version>>29 == 0b001
}

// BIP91 reports whether the header signals BIP0091 (bit 4 set).
func (h *Header) BIP91() bool {
	return h.Version>>4&1 == 1
}

// BIP141 reports whether the header signals BIP0141/SegWit (bit 1 set).
func (h *Header) BIP141() bool {
	return h.Version>>1&1 == 1
}

// Target returns the proof-of-work target implied by Bits.
func (h *Header) Target() *big.Int {
	return BitsToTarget(h.Bits)
}

// Difficulty returns the block difficulty relative to the lowest possible
// target, 0xffff * 256**(0x1d-3).
func (h *Header) Difficulty() *big.Float {
	lowest := new(big.Int).Mul(
		big.NewInt(0xffff),
		new(big.Int).Exp(big.NewInt(256), big.NewInt(0x1d-3), nil),
	)
	target := h.Target()
	return new(big.Float).Quo(new(big.Float).SetInt(lowest), new(big.Float).SetInt(target))
}

// CheckProofOfWork reports whether hash256(Serialize()), interpreted as a
// little-endian integer, is below the header's target.
func (h *Header) CheckProofOfWork() bool {
	digest := chainhash.HashB(h.Serialize())
	le := make([]byte, len(digest))
	for i, b := range digest {
		le[len(digest)-1-i] = b
	}
	proof := new(big.Int).SetBytes(le)
	ok := proof.Cmp(h.Target()) < 0
	log.Debugf("proof of work check for %s: proof=%x target=%x ok=%v", h.Hash(), proof, h.Target(), ok)
	return ok
}

// BitsToTarget decodes the compact bits encoding into a target integer:
// coefficient * 256**(exponent-3), where exponent is the last byte and
// coefficient is the little-endian integer of the first three.
func BitsToTarget(bits [4]byte) *big.Int {
	exponent := int(bits[3])
	coefficient := new(big.Int).SetBytes(reverseBytes(bits[:3]))
	return new(big.Int).Mul(coefficient, new(big.Int).Exp(big.NewInt(256), big.NewInt(int64(exponent-3)), nil))
}

// TargetToBits encodes a target integer back into the compact bits form,
// normalizing the coefficient's sign bit the way the reference encoder
// does: if the most significant coefficient byte would be read as
// negative (>= 0x80), an extra leading zero byte is folded in and the
// exponent bumped by one.
func TargetToBits(target *big.Int) [4]byte {
	rawBytes := target.Bytes() // big-endian, no leading zeros
	var exponent int
	var coefficient []byte

	if len(rawBytes) == 0 {
		return [4]byte{}
	}

	if rawBytes[0] > 0x7f {
		exponent = len(rawBytes) + 1
		coefficient = append([]byte{0x00}, rawBytes[:min(2, len(rawBytes))]...)
	} else {
		exponent = len(rawBytes)
		coefficient = rawBytes[:min(3, len(rawBytes))]
	}

	var out [4]byte
	rev := reverseBytes(coefficient)
	copy(out[:3], rev)
	out[3] = byte(exponent)
	return out
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// CalculateNewBits computes the retargeted bits for the next 2016-block
// window given the previous window's starting bits and the elapsed time
// in seconds, clamping the elapsed time to [TwoWeeksSeconds/4,
// TwoWeeksSeconds*4] before scaling the target linearly.
func CalculateNewBits(previousBits [4]byte, timeDifferentialSeconds int64) [4]byte {
	if timeDifferentialSeconds > TwoWeeksSeconds*4 {
		timeDifferentialSeconds = TwoWeeksSeconds * 4
	}
	if timeDifferentialSeconds < TwoWeeksSeconds/4 {
		timeDifferentialSeconds = TwoWeeksSeconds / 4
	}

	oldTarget := BitsToTarget(previousBits)
	newTarget := new(big.Int).Mul(oldTarget, big.NewInt(timeDifferentialSeconds))
	newTarget.Div(newTarget, big.NewInt(TwoWeeksSeconds))
	newBits := TargetToBits(newTarget)
	log.Debugf("retarget: elapsed=%ds old=%x new=%x", timeDifferentialSeconds, previousBits, newBits)
	return newBits
}
