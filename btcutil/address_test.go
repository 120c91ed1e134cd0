// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcutil

import (
	"math/big"
	"testing"

	"github.com/btcprim/btcprim/chaincfg"
	"github.com/btcprim/btcprim/secp256k1"
)

func TestAddressRoundTrip(t *testing.T) {
	net := chaincfg.MainNetParams()
	priv, err := secp256k1.NewPrivateKey(big.NewInt(5002))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	addr, err := PubKeyAddress(priv.PubKey(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded := addr.EncodeAddress(net)

	decoded, err := DecodeAddress(encoded, net)
	if err != nil {
		t.Fatalf("DecodeAddress failed: %v", err)
	}
	if decoded.Kind != AddressKindP2PKH {
		t.Fatal("decoded address should be classified as P2PKH")
	}
	if decoded.Hash160 != addr.Hash160 {
		t.Fatal("decoded hash160 does not match the original")
	}
}

func TestDecodeAddressRejectsWrongNetwork(t *testing.T) {
	main := chaincfg.MainNetParams()
	test := chaincfg.TestNetParams()

	priv, err := secp256k1.NewPrivateKey(big.NewInt(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	addr, err := PubKeyAddress(priv.PubKey(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded := addr.EncodeAddress(main)

	if _, err := DecodeAddress(encoded, test); err != ErrWrongNetwork {
		t.Fatalf("expected ErrWrongNetwork, got %v", err)
	}
}

func TestScriptHashAddressUsesScriptVersionByte(t *testing.T) {
	net := chaincfg.MainNetParams()
	hash := make([]byte, 20)
	for i := range hash {
		hash[i] = byte(i)
	}
	addr, err := NewAddressScriptHash(hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := DecodeAddress(addr.EncodeAddress(net), net)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Kind != AddressKindP2SH {
		t.Fatal("expected P2SH classification")
	}
}
