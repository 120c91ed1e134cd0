// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"
	"math/big"
)

// Signature is an ECDSA signature (r, s), both in [1, n).
type Signature struct {
	R *big.Int
	S *big.Int
}

// NewSignature validates that r and s are both in [1, n) and returns the
// Signature. Bitcoin script execution treats a malformed signature as a
// script failure rather than a fatal error, so callers that need that
// behavior should check the returned error themselves and fail the op
// rather than panicking.
func NewSignature(r, s *big.Int) (Signature, error) {
	one := big.NewInt(1)
	if r.Cmp(one) < 0 || r.Cmp(N) >= 0 {
		return Signature{}, newError(ErrInvalidScalar, "r out of range [1, n)")
	}
	if s.Cmp(one) < 0 || s.Cmp(N) >= 0 {
		return Signature{}, newError(ErrInvalidScalar, "s out of range [1, n)")
	}
	return Signature{R: r, S: s}, nil
}

func (s Signature) String() string {
	return fmt.Sprintf("Signature(%x, %x)", s.R, s.S)
}

// derEncodeInt encodes n as a DER integer: big-endian, stripped of
// leading zero bytes, with a single 0x00 prepended iff the high bit of
// the leading byte would otherwise be set (so it can't be misread as
// negative).
func derEncodeInt(n *big.Int) []byte {
	raw := n.Bytes()
	if len(raw) == 0 {
		raw = []byte{0}
	}
	if raw[0]&0x80 != 0 {
		raw = append([]byte{0x00}, raw...)
	}
	return append([]byte{0x02, byte(len(raw))}, raw...)
}

// DER returns the canonical DER encoding of the signature: a SEQUENCE of
// two INTEGERs, r then s.
func (s Signature) DER() []byte {
	rEnc := derEncodeInt(s.R)
	sEnc := derEncodeInt(s.S)
	body := append(append([]byte{}, rEnc...), sEnc...)
	return append([]byte{0x30, byte(len(body))}, body...)
}

// ParseDER parses a canonical DER-encoded ECDSA signature.
func ParseDER(der []byte) (Signature, error) {
	if len(der) < 6 {
		return Signature{}, newError(ErrBadDER, "signature too short")
	}
	if der[0] != 0x30 {
		return Signature{}, newError(ErrBadDER, "missing SEQUENCE tag")
	}
	totalLen := int(der[1])
	if totalLen+2 != len(der) {
		return Signature{}, newError(ErrBadDER, "length mismatch")
	}

	if der[2] != 0x02 {
		return Signature{}, newError(ErrBadDER, "missing r INTEGER tag")
	}
	rLen := int(der[3])
	if 4+rLen > len(der) {
		return Signature{}, newError(ErrBadDER, "r length overruns buffer")
	}
	r := new(big.Int).SetBytes(der[4 : 4+rLen])

	rest := der[4+rLen:]
	if len(rest) < 2 || rest[0] != 0x02 {
		return Signature{}, newError(ErrBadDER, "missing s INTEGER tag")
	}
	sLen := int(rest[1])
	if 2+sLen != len(rest) {
		return Signature{}, newError(ErrBadDER, "s length mismatch")
	}
	s := new(big.Int).SetBytes(rest[2 : 2+sLen])

	return Signature{R: r, S: s}, nil
}
