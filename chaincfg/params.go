// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg holds the parameters that distinguish one Bitcoin
// network from another: the magic bytes that open a NetworkEnvelope, the
// address and WIF version bytes, and the proof-of-work retarget
// constants.
package chaincfg

import "math/big"

var bigOne = big.NewInt(1)

// Params groups the network-specific constants a node needs: the wire
// protocol magic, address/WIF version bytes, and difficulty-retarget
// parameters. Exactly one of MainNetParams, TestNetParams, or
// RegressionNetParams should be used for a given process.
type Params struct {
	// Name is the human-readable network name.
	Name string

	// Net is the four-byte magic that opens every NetworkEnvelope on
	// this network. A node must reject any envelope whose magic
	// doesn't match.
	Net uint32

	// DefaultPort is the TCP port nodes on this network listen on.
	DefaultPort string

	// PubKeyHashAddrID is the version byte prepended to a Hash160
	// before Base58Check-encoding a P2PKH address.
	PubKeyHashAddrID byte

	// ScriptHashAddrID is the version byte prepended to a Hash160
	// before Base58Check-encoding a P2SH address.
	ScriptHashAddrID byte

	// PrivateKeyID is the version byte prepended to a 32-byte secret
	// before Base58Check-encoding it as WIF.
	PrivateKeyID byte

	// PowLimit is the highest (easiest) proof-of-work target permitted
	// on this network.
	PowLimit *big.Int

	// PowLimitBits is PowLimit in the compact "bits" encoding.
	PowLimitBits uint32

	// TargetTimePerBlockSeconds is the intended average spacing between
	// blocks, in seconds.
	TargetTimePerBlockSeconds int64

	// RetargetInterval is the number of blocks between difficulty
	// retargets.
	RetargetInterval int64

	// MaxRetargetFactor bounds how much the difficulty may change in a
	// single retarget: the actual timespan is clamped to
	// [TargetTimespan/MaxRetargetFactor, TargetTimespan*MaxRetargetFactor].
	MaxRetargetFactor int64

	// TargetTimespanSeconds is the intended duration of a full
	// RetargetInterval, i.e. TargetTimePerBlockSeconds*RetargetInterval.
	TargetTimespanSeconds int64
}

// MainNetParams returns the parameters for the Bitcoin main network.
func MainNetParams() *Params {
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)
	return &Params{
		Name:                      "mainnet",
		Net:                       0xd9b4bef9,
		DefaultPort:               "8333",
		PubKeyHashAddrID:          0x00,
		ScriptHashAddrID:          0x05,
		PrivateKeyID:              0x80,
		PowLimit:                  powLimit,
		PowLimitBits:              0x1d00ffff,
		TargetTimePerBlockSeconds: 10 * 60,
		RetargetInterval:          2016,
		MaxRetargetFactor:         4,
		TargetTimespanSeconds:     2016 * 10 * 60,
	}
}

// TestNetParams returns the parameters for the Bitcoin test network
// (testnet3).
func TestNetParams() *Params {
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)
	return &Params{
		Name:                      "testnet3",
		Net:                       0x0709110b,
		DefaultPort:               "18333",
		PubKeyHashAddrID:          0x6f,
		ScriptHashAddrID:          0xc4,
		PrivateKeyID:              0xef,
		PowLimit:                  powLimit,
		PowLimitBits:              0x1d00ffff,
		TargetTimePerBlockSeconds: 10 * 60,
		RetargetInterval:          2016,
		MaxRetargetFactor:         4,
		TargetTimespanSeconds:     2016 * 10 * 60,
	}
}

// RegressionNetParams returns the parameters for a local regtest network,
// where proof of work is trivial. Its retarget constants are the same as
// mainnet's.
func RegressionNetParams() *Params {
	powLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
	return &Params{
		Name:                      "regtest",
		Net:                       0xdab5bffa,
		DefaultPort:               "18444",
		PubKeyHashAddrID:          0x6f,
		ScriptHashAddrID:          0xc4,
		PrivateKeyID:              0xef,
		PowLimit:                  powLimit,
		PowLimitBits:              0x207fffff,
		TargetTimePerBlockSeconds: 10 * 60,
		RetargetInterval:          2016,
		MaxRetargetFactor:         4,
		TargetTimespanSeconds:     2016 * 10 * 60,
	}
}
