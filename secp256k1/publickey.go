// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"math/big"

	"github.com/btcprim/btcprim/chainhash"
)

// PublicKey wraps a curve Point with the SEC encodings used on the wire
// and in scripts.
type PublicKey struct {
	Point Point
}

// NewPublicKey wraps a point already known to be on secp256k1.
func NewPublicKey(p Point) PublicKey {
	return PublicKey{Point: p}
}

// SEC returns the Standards for Efficient Cryptography encoding of the
// public key: the compressed 33-byte form (0x02/0x03 prefix by the parity
// of y) unless uncompressed is requested, which yields the 65-byte
// 0x04-prefixed form with both coordinates.
func (k PublicKey) SEC(compressed bool) []byte {
	xBytes := leftPad32(k.Point.x.num)
	if !compressed {
		yBytes := leftPad32(k.Point.y.num)
		out := make([]byte, 0, 65)
		out = append(out, 0x04)
		out = append(out, xBytes...)
		out = append(out, yBytes...)
		return out
	}

	prefix := byte(0x02)
	if k.Point.y.num.Bit(0) == 1 {
		prefix = 0x03
	}
	out := make([]byte, 0, 33)
	out = append(out, prefix)
	out = append(out, xBytes...)
	return out
}

func leftPad32(n *big.Int) []byte {
	raw := n.Bytes()
	if len(raw) >= 32 {
		return raw[len(raw)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(raw):], raw)
	return out
}

// ParseSEC parses a compressed or uncompressed SEC-encoded public key.
// For the compressed form it recovers y via a field square root, picking
// the root whose parity matches the 0x02/0x03 prefix.
func ParseSEC(sec []byte) (PublicKey, error) {
	if len(sec) == 0 {
		return PublicKey{}, newError(ErrBadSEC, "empty SEC encoding")
	}

	if sec[0] == 0x04 {
		if len(sec) != 65 {
			return PublicKey{}, newError(ErrBadSEC, "uncompressed SEC encoding must be 65 bytes")
		}
		x := new(big.Int).SetBytes(sec[1:33])
		y := new(big.Int).SetBytes(sec[33:65])
		p, err := NewS256Point(x, y)
		if err != nil {
			return PublicKey{}, err
		}
		return PublicKey{Point: p}, nil
	}

	if sec[0] != 0x02 && sec[0] != 0x03 {
		return PublicKey{}, newError(ErrBadSEC, "unrecognized SEC prefix")
	}
	if len(sec) != 33 {
		return PublicKey{}, newError(ErrBadSEC, "compressed SEC encoding must be 33 bytes")
	}
	isEven := sec[0] == 0x02

	x := s256Field(new(big.Int).SetBytes(sec[1:]))
	alpha, err := x.Mul(x)
	if err != nil {
		return PublicKey{}, err
	}
	alpha, err = alpha.Mul(x)
	if err != nil {
		return PublicKey{}, err
	}
	alpha, err = alpha.Add(s256Field(curveB))
	if err != nil {
		return PublicKey{}, err
	}
	beta := alpha.Sqrt()

	var evenBeta, oddBeta FieldElement
	if beta.num.Bit(0) == 0 {
		evenBeta = beta
		oddBeta = s256Field(new(big.Int).Sub(P, beta.num))
	} else {
		evenBeta = s256Field(new(big.Int).Sub(P, beta.num))
		oddBeta = beta
	}

	y := oddBeta
	if isEven {
		y = evenBeta
	}

	a := s256Field(curveA)
	b := s256Field(curveB)
	p, err := NewPoint(x, y, a, b)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKey{Point: p}, nil
}

// Hash160 returns RIPEMD160(SHA256(SEC(pubkey))), the digest Bitcoin
// addresses are built from.
func (k PublicKey) Hash160(compressed bool) []byte {
	return chainhash.Hash160(k.SEC(compressed))
}
