// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package btcutil implements the Wallet Import Format and the P2PKH/P2SH
// address encodings built on top of base58, chainhash, and secp256k1.
package btcutil

import (
	"errors"
	"math/big"

	"github.com/btcprim/btcprim/base58"
	"github.com/btcprim/btcprim/chaincfg"
	"github.com/btcprim/btcprim/chainhash"
	"github.com/btcprim/btcprim/secp256k1"
)

// ErrMalformedPrivateKey describes an error where a WIF-encoded private key
// cannot be decoded due to being improperly formatted.
var ErrMalformedPrivateKey = errors.New("malformed private key")

const (
	privKeyBytesLen = secp256k1.PrivKeyBytesLen
	compressFlag    = 0x01
)

// WIF contains the individual components of a Wallet Import Format string:
// the private key it wraps, whether the corresponding address was derived
// from a compressed public key, and the network byte it was encoded for.
//
// Unlike the source system's scheme-tagged extension byte (which also
// carries a signature-type discriminant for alternative curves), WIF here
// only ever wraps a secp256k1 ECDSA key, so the optional trailing byte is
// simply the fixed compression flag 0x01 — this is the vanilla Bitcoin WIF
// layout, not EXCCoin's ecTypeOffset-shifted variant.
type WIF struct {
	PrivKey        *secp256k1.PrivateKey
	CompressPubKey bool
	netID          byte
}

// NewWIF builds a WIF wrapper for priv, to be encoded for the network
// identified by net.
func NewWIF(priv *secp256k1.PrivateKey, net *chaincfg.Params, compress bool) *WIF {
	return &WIF{PrivKey: priv, CompressPubKey: compress, netID: net.PrivateKeyID}
}

// IsForNet reports whether w was encoded for the given network.
func (w *WIF) IsForNet(net *chaincfg.Params) bool {
	return w.netID == net.PrivateKeyID
}

// String returns the Base58Check-encoded WIF string: netID || 32-byte
// secret || optional compression flag, checksummed.
func (w *WIF) String() string {
	payload := make([]byte, 0, 1+privKeyBytesLen+1)
	payload = append(payload, w.netID)
	payload = append(payload, w.PrivKey.Bytes()...)
	if w.CompressPubKey {
		payload = append(payload, compressFlag)
	}
	return base58.CheckEncode(payload)
}

// DecodeWIF decodes a Base58Check WIF string. The trailing compression flag
// is optional; its presence (and value, always 0x01 for a plain secp256k1
// key) determines whether the original public key was serialized
// compressed.
func DecodeWIF(wif string) (*WIF, error) {
	decoded, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, err
	}

	var compress bool
	switch len(decoded) {
	case 1 + privKeyBytesLen + 1:
		if decoded[1+privKeyBytesLen] != compressFlag {
			return nil, ErrMalformedPrivateKey
		}
		compress = true
	case 1 + privKeyBytesLen:
		compress = false
	default:
		return nil, ErrMalformedPrivateKey
	}

	netID := decoded[0]
	secret := new(big.Int).SetBytes(decoded[1 : 1+privKeyBytesLen])
	priv, err := secp256k1.NewPrivateKey(secret)
	if err != nil {
		return nil, ErrMalformedPrivateKey
	}
	return &WIF{PrivKey: priv, CompressPubKey: compress, netID: netID}, nil
}

// Hash160 returns the RIPEMD160(SHA256(pubkey)) digest backing both the WIF's
// address and the chainhash-level Hash160 helper.
func (w *WIF) Hash160() []byte {
	return chainhash.Hash160(w.PrivKey.PubKey().SEC(w.CompressPubKey))
}
