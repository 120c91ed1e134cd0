// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
)

// PrivKeyBytesLen is the fixed byte length of a serialized secp256k1
// private key scalar.
const PrivKeyBytesLen = 32

// PrivateKey is a secp256k1 scalar in [1, n) with its public point cached
// on construction, since every signing operation needs it and it is
// expensive to recompute.
type PrivateKey struct {
	Secret *big.Int
	pub    PublicKey
}

// NewPrivateKey validates that secret is in [1, n) and derives the
// corresponding public point secret*G.
func NewPrivateKey(secret *big.Int) (*PrivateKey, error) {
	if secret.Sign() <= 0 || secret.Cmp(N) >= 0 {
		return nil, newError(ErrInvalidScalar, "secret out of range [1, n)")
	}
	pub := NewPublicKey(ScalarBaseMul(secret))
	return &PrivateKey{Secret: secret, pub: pub}, nil
}

// PrivKeyFromBytes interprets b as a big-endian 32-byte secret and
// derives its key pair. It panics if the bytes do not encode a value in
// [1, n) — callers parsing untrusted input should validate length and
// range themselves first (e.g. via WIF decoding, which already does).
func PrivKeyFromBytes(b []byte) *PrivateKey {
	secret := new(big.Int).SetBytes(b)
	priv, err := NewPrivateKey(secret)
	if err != nil {
		panic(err)
	}
	return priv
}

// PubKey returns the cached public key.
func (p *PrivateKey) PubKey() PublicKey {
	return p.pub
}

// Bytes returns the 32-byte big-endian encoding of the secret.
func (p *PrivateKey) Bytes() []byte {
	return leftPad32(p.Secret)
}

// deterministicK implements RFC 6979 deterministic nonce generation using
// HMAC-SHA256, seeded from the private key and the message hash z.
func (p *PrivateKey) deterministicK(z *big.Int) *big.Int {
	k := make([]byte, 32)
	v := make([]byte, 32)
	for i := range v {
		v[i] = 0x01
	}

	zCopy := new(big.Int).Set(z)
	if zCopy.Cmp(N) > 0 {
		zCopy.Sub(zCopy, N)
	}
	zBytes := leftPad32(zCopy)
	secretBytes := leftPad32(p.Secret)

	hmacSHA256 := func(key, data []byte) []byte {
		mac := hmac.New(sha256.New, key)
		mac.Write(data)
		return mac.Sum(nil)
	}

	k = hmacSHA256(k, concat(v, []byte{0x00}, secretBytes, zBytes))
	v = hmacSHA256(k, v)
	k = hmacSHA256(k, concat(v, []byte{0x01}, secretBytes, zBytes))
	v = hmacSHA256(k, v)

	for {
		v = hmacSHA256(k, v)
		candidate := new(big.Int).SetBytes(v)
		if candidate.Sign() > 0 && candidate.Cmp(N) < 0 {
			return candidate
		}
		k = hmacSHA256(k, concat(v, []byte{0x00}))
		v = hmacSHA256(k, v)
	}
}

func concat(parts ...[]byte) []byte {
	var total int
	for _, p := range parts {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Sign produces a deterministic, low-S-normalized ECDSA signature over
// the message hash z. It retries with a fresh deterministic k in the
// unreachable-in-practice case r turns out to be zero.
func (p *PrivateKey) Sign(z *big.Int) (Signature, error) {
	for attempt := 0; ; attempt++ {
		seed := z
		if attempt > 0 {
			// Perturb the seed so a repeated r=0 doesn't loop forever;
			// this branch is not reachable for any real secp256k1
			// input but keeps Sign total rather than partial.
			seed = new(big.Int).Xor(z, big.NewInt(int64(attempt)))
		}
		k := p.deterministicK(seed)
		rPoint := ScalarBaseMul(k)
		r := new(big.Int).Mod(rPoint.x.num, N)
		if r.Sign() == 0 {
			continue
		}

		kInv := new(big.Int).ModInverse(k, N)
		s := new(big.Int).Mul(r, p.Secret)
		s.Add(s, z)
		s.Mul(s, kInv)
		s.Mod(s, N)

		halfN := new(big.Int).Rsh(N, 1)
		if s.Cmp(halfN) > 0 {
			s.Sub(N, s)
		}
		if s.Sign() == 0 {
			continue
		}
		return NewSignature(r, s)
	}
}

// Verify checks sig against message hash z and pub's point,
// per spec.md §4.2: reject out-of-range r/s, compute u, v, and R = u*G +
// v*P, and accept iff R is not the point at infinity and R.x mod n == r.
func Verify(pub PublicKey, z *big.Int, sig Signature) bool {
	one := big.NewInt(1)
	if sig.R.Cmp(one) < 0 || sig.R.Cmp(N) >= 0 {
		return false
	}
	if sig.S.Cmp(one) < 0 || sig.S.Cmp(N) >= 0 {
		return false
	}

	sInv := new(big.Int).ModInverse(sig.S, N)
	if sInv == nil {
		return false
	}
	u := new(big.Int).Mul(z, sInv)
	u.Mod(u, N)
	v := new(big.Int).Mul(sig.R, sInv)
	v.Mod(v, N)

	uG := ScalarBaseMul(u)
	vP := pub.Point.ScalarMul(v)
	total, err := uG.Add(vP)
	if err != nil {
		return false
	}
	if total.IsInfinity() {
		return false
	}
	return new(big.Int).Mod(total.x.num, N).Cmp(sig.R) == 0
}
