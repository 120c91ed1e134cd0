// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package base58

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := [][]byte{
		{},
		{0x00},
		{0x00, 0x00, 0x01},
		[]byte("hello world"),
		{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe},
	}
	for _, in := range tests {
		encoded := Encode(in)
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%q) returned error: %v", encoded, err)
		}
		if !bytes.Equal(decoded, in) {
			t.Fatalf("round trip mismatch: %s", spew.Sdump(in, decoded))
		}
	}
}

func TestDecodeInvalidChar(t *testing.T) {
	if _, err := Decode("0OIl"); err != ErrInvalidChar {
		t.Fatalf("got error %v, want ErrInvalidChar", err)
	}
}

func TestCheckEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte{0x00, 0xde, 0xad, 0xbe, 0xef}
	encoded := CheckEncode(payload)
	decoded, err := CheckDecode(encoded)
	if err != nil {
		t.Fatalf("CheckDecode returned error: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatalf("payload mismatch: got %x want %x", decoded, payload)
	}
}

func TestCheckDecodeFlippedBitFails(t *testing.T) {
	payload := []byte{0x00, 0xde, 0xad, 0xbe, 0xef}
	encoded := CheckEncode(payload)

	// Flip a character deep enough in the string to perturb the decoded
	// bytes without just hitting the same digit again.
	flipped := []byte(encoded)
	for i := len(flipped) - 1; i >= 0; i-- {
		if flipped[i] != 'z' {
			flipped[i] = 'z'
			break
		}
	}

	if _, err := CheckDecode(string(flipped)); err == nil {
		t.Fatal("expected error decoding corrupted checksum")
	}
}

func TestCheckDecodeTooShort(t *testing.T) {
	if _, err := CheckDecode(Encode([]byte{0x01, 0x02})); err != ErrTooShort {
		t.Fatalf("got error %v, want ErrTooShort", err)
	}
}
