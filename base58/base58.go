// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package base58 implements Base58 and Base58Check encoding, the textual
// encoding used by Bitcoin addresses and WIF-encoded private keys.
//
// This is hand-rolled rather than delegated to a library on purpose: it is
// explicitly part of the consensus-critical codec core, not an ambient
// concern, so byte-for-byte correctness has to live in this module.
package base58

import (
	"errors"
	"math/big"

	"github.com/btcprim/btcprim/chainhash"
)

// alphabet is the Base58 alphabet Bitcoin uses: the 0-9a-zA-Z range with
// the visually ambiguous characters 0, O, I, and l removed.
const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	bigRadix  = big.NewInt(58)
	bigZero   = big.NewInt(0)
	decodeMap [256]int8
)

func init() {
	for i := range decodeMap {
		decodeMap[i] = -1
	}
	for i, c := range alphabet {
		decodeMap[c] = int8(i)
	}
}

// ErrInvalidChar is returned by Decode when the input contains a byte
// outside the Base58 alphabet.
var ErrInvalidChar = errors.New("base58: invalid character")

// ErrChecksumMismatch is returned by CheckDecode when the trailing 4-byte
// checksum doesn't match the double-SHA256 of the payload.
var ErrChecksumMismatch = errors.New("base58: checksum mismatch")

// ErrTooShort is returned by CheckDecode when the input is too short to
// contain a 4-byte checksum.
var ErrTooShort = errors.New("base58: input too short for checksum")

// Encode converts b to its Base58 string representation. Leading zero
// bytes are preserved as leading '1' characters, since '1' encodes 0 in
// the alphabet above and a naive big-integer conversion would otherwise
// drop them.
func Encode(b []byte) string {
	leadingZeros := 0
	for _, c := range b {
		if c != 0 {
			break
		}
		leadingZeros++
	}

	num := new(big.Int).SetBytes(b)
	mod := new(big.Int)
	var encoded []byte
	for num.Cmp(bigZero) > 0 {
		num.DivMod(num, bigRadix, mod)
		encoded = append(encoded, alphabet[mod.Int64()])
	}

	result := make([]byte, leadingZeros, leadingZeros+len(encoded))
	for i := range result {
		result[i] = '1'
	}
	for i := len(encoded) - 1; i >= 0; i-- {
		result = append(result, encoded[i])
	}
	return string(result)
}

// Decode converts a Base58 string back into the bytes it encodes. Leading
// '1' characters decode back to leading zero bytes. An invalid character
// returns ErrInvalidChar.
func Decode(s string) ([]byte, error) {
	leadingOnes := 0
	for _, c := range s {
		if c != '1' {
			break
		}
		leadingOnes++
	}

	num := new(big.Int)
	for _, c := range []byte(s) {
		digit := decodeMap[c]
		if digit < 0 {
			return nil, ErrInvalidChar
		}
		num.Mul(num, bigRadix)
		num.Add(num, big.NewInt(int64(digit)))
	}

	decoded := num.Bytes()
	out := make([]byte, leadingOnes+len(decoded))
	copy(out[leadingOnes:], decoded)
	return out, nil
}

// CheckEncode returns the Base58Check encoding of payload: payload with a
// 4-byte double-SHA256 checksum appended, then Base58-encoded.
func CheckEncode(payload []byte) string {
	checksum := chainhash.HashB(payload)[:4]
	return Encode(append(append([]byte{}, payload...), checksum...))
}

// CheckDecode reverses CheckEncode, returning the original payload. It
// returns ErrChecksumMismatch if the trailing 4 bytes don't match the
// double-SHA256 of the payload that precedes them.
func CheckDecode(s string) ([]byte, error) {
	decoded, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(decoded) < 4 {
		return nil, ErrTooShort
	}

	payload := decoded[:len(decoded)-4]
	checksum := decoded[len(decoded)-4:]
	want := chainhash.HashB(payload)[:4]
	for i := range want {
		if want[i] != checksum[i] {
			return nil, ErrChecksumMismatch
		}
	}
	return payload, nil
}
