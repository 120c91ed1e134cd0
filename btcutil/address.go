// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcutil

import (
	"errors"

	"github.com/btcprim/btcprim/base58"
	"github.com/btcprim/btcprim/chaincfg"
	"github.com/btcprim/btcprim/secp256k1"
)

// ErrWrongNetwork is returned when a decoded address's version byte doesn't
// match any known address kind for the given network.
var ErrWrongNetwork = errors.New("address is not for the requested network")

// AddressKind distinguishes a pay-to-pubkey-hash address from a
// pay-to-script-hash one; both share the Base58Check(version || hash160)
// layout and differ only in the version byte and the script template a
// sender builds from them.
type AddressKind int

const (
	// AddressKindP2PKH marks a pay-to-pubkey-hash address.
	AddressKindP2PKH AddressKind = iota
	// AddressKindP2SH marks a pay-to-script-hash address.
	AddressKindP2SH
)

// Address is a Base58Check-encoded hash160 with a network-specific version
// byte identifying whether it names a pubkey hash or a script hash.
type Address struct {
	Kind    AddressKind
	Hash160 [20]byte
}

// NewAddressPubKeyHash builds a P2PKH address from a 20-byte hash160.
func NewAddressPubKeyHash(hash160 []byte) (*Address, error) {
	return newAddress(hash160, AddressKindP2PKH)
}

// NewAddressScriptHash builds a P2SH address from a 20-byte hash160 of a
// redeem script.
func NewAddressScriptHash(hash160 []byte) (*Address, error) {
	return newAddress(hash160, AddressKindP2SH)
}

func newAddress(hash160 []byte, kind AddressKind) (*Address, error) {
	if len(hash160) != 20 {
		return nil, errors.New("hash160 must be 20 bytes")
	}
	a := &Address{Kind: kind}
	copy(a.Hash160[:], hash160)
	return a, nil
}

// EncodeAddress returns the Base58Check string for addr on the given
// network.
func (a *Address) EncodeAddress(net *chaincfg.Params) string {
	version := net.PubKeyHashAddrID
	if a.Kind == AddressKindP2SH {
		version = net.ScriptHashAddrID
	}
	payload := make([]byte, 0, 21)
	payload = append(payload, version)
	payload = append(payload, a.Hash160[:]...)
	return base58.CheckEncode(payload)
}

// DecodeAddress parses a Base58Check address string, classifying it as
// P2PKH or P2SH by comparing its version byte against net's configured
// prefixes.
func DecodeAddress(addr string, net *chaincfg.Params) (*Address, error) {
	decoded, err := base58.CheckDecode(addr)
	if err != nil {
		return nil, err
	}
	if len(decoded) != 21 {
		return nil, errors.New("decoded address has the wrong length")
	}

	version := decoded[0]
	var kind AddressKind
	switch version {
	case net.PubKeyHashAddrID:
		kind = AddressKindP2PKH
	case net.ScriptHashAddrID:
		kind = AddressKindP2SH
	default:
		return nil, ErrWrongNetwork
	}

	a := &Address{Kind: kind}
	copy(a.Hash160[:], decoded[1:])
	return a, nil
}

// PubKeyAddress derives the P2PKH address for a secp256k1 public key.
func PubKeyAddress(pub secp256k1.PublicKey, compressed bool) (*Address, error) {
	return NewAddressPubKeyHash(pub.Hash160(compressed))
}
