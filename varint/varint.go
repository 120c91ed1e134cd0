// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package varint implements Bitcoin's compact-size unsigned integer
// encoding, shared by txscript, tx, and wire: every multi-byte prefix
// encodes the actual value that follows (unlike the source's
// encode_varint, which collapses every multi-byte branch to the literal
// integer 1 — fixed here, not replicated).
package varint

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Encode returns the compact-size encoding of n: a bare byte for n < 0xfd,
// else a marker byte (0xfd/0xfe/0xff) followed by the value in 2/4/8
// little-endian bytes.
func Encode(n uint64) []byte {
	switch {
	case n < 0xfd:
		return []byte{byte(n)}
	case n <= 0xffff:
		buf := make([]byte, 3)
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(n))
		return buf
	case n <= 0xffffffff:
		buf := make([]byte, 5)
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(n))
		return buf
	default:
		buf := make([]byte, 9)
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], n)
		return buf
	}
}

// Read decodes a compact-size integer from r.
func Read(r io.Reader) (uint64, error) {
	var marker [1]byte
	if _, err := io.ReadFull(r, marker[:]); err != nil {
		return 0, fmt.Errorf("varint: reading marker: %w", err)
	}

	switch marker[0] {
	case 0xfd:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("varint: reading 2-byte value: %w", err)
		}
		return uint64(binary.LittleEndian.Uint16(buf[:])), nil
	case 0xfe:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("varint: reading 4-byte value: %w", err)
		}
		return uint64(binary.LittleEndian.Uint32(buf[:])), nil
	case 0xff:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("varint: reading 8-byte value: %w", err)
		}
		return binary.LittleEndian.Uint64(buf[:]), nil
	default:
		return uint64(marker[0]), nil
	}
}
