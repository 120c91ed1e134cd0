// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tx

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/btcprim/btcprim/chainhash"
	"github.com/btcprim/btcprim/secp256k1"
	"github.com/btcprim/btcprim/txscript"
)

// buildP2PKH returns a standard OP_DUP OP_HASH160 <h160> OP_EQUALVERIFY
// OP_CHECKSIG scriptPubKey without relying on unexported opcode helpers.
func buildP2PKH(h160 []byte) txscript.Script {
	raw := append([]byte{0x76, 0xa9, byte(len(h160))}, h160...)
	raw = append(raw, 0x88, 0xac)
	parsed, err := txscript.ParseBytes(raw)
	if err != nil {
		panic(err)
	}
	return parsed
}

func newFundingTx(t *testing.T, out TxOut) *Tx {
	t.Helper()
	return &Tx{
		Version: 1,
		TxIns: []TxIn{{
			PrevTx:    chainhash.Hash{0x01},
			PrevIndex: 0,
			ScriptSig: txscript.NewScript(),
			Sequence:  0xffffffff,
		}},
		TxOuts:   []TxOut{out},
		LockTime: 0,
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	priv, err := secp256k1.NewPrivateKey(big.NewInt(99))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h160 := priv.PubKey().Hash160(true)

	txn := newFundingTx(t, TxOut{Amount: 5000, ScriptPubKey: buildP2PKH(h160)})
	raw, err := txn.Serialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := Parse(bytes.NewReader(raw), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Version != txn.Version || parsed.LockTime != txn.LockTime {
		t.Fatalf("round trip mismatch: got %+v, want %+v", parsed, txn)
	}
	if len(parsed.TxIns) != 1 || len(parsed.TxOuts) != 1 {
		t.Fatalf("round trip mismatch in input/output counts")
	}
	if parsed.TxOuts[0].Amount != 5000 {
		t.Fatalf("amount mismatch: got %d", parsed.TxOuts[0].Amount)
	}
}

func TestSignAndVerifyInput(t *testing.T) {
	priv, err := secp256k1.NewPrivateKey(big.NewInt(12345))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h160 := priv.PubKey().Hash160(true)

	prevTx := newFundingTx(t, TxOut{Amount: 10000, ScriptPubKey: buildP2PKH(h160)})
	prevRaw, err := prevTx.Serialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prevParsed, err := Parse(bytes.NewReader(prevRaw), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prevID := prevParsed.ID()

	source := MapTxSource{Txs: map[string]*Tx{prevID: prevParsed}}

	spendingTx := &Tx{
		Version: 1,
		TxIns: []TxIn{{
			PrevTx:    prevParsed.Hash(),
			PrevIndex: 0,
			ScriptSig: txscript.NewScript(),
			Sequence:  0xffffffff,
		}},
		TxOuts:   []TxOut{{Amount: 9000, ScriptPubKey: buildP2PKH(h160)}},
		LockTime: 0,
	}

	ok, err := spendingTx.SignInput(0, priv, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected SignInput to produce a verifying scriptSig")
	}

	verified, err := spendingTx.Verify(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verified {
		t.Fatal("expected the fully signed transaction to verify")
	}
}

func TestVerifyRejectsNegativeFee(t *testing.T) {
	priv, err := secp256k1.NewPrivateKey(big.NewInt(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h160 := priv.PubKey().Hash160(true)

	prevTx := newFundingTx(t, TxOut{Amount: 1000, ScriptPubKey: buildP2PKH(h160)})
	prevRaw, _ := prevTx.Serialize()
	prevParsed, _ := Parse(bytes.NewReader(prevRaw), false)
	source := MapTxSource{Txs: map[string]*Tx{prevParsed.ID(): prevParsed}}

	spendingTx := &Tx{
		Version: 1,
		TxIns: []TxIn{{
			PrevTx:    prevParsed.Hash(),
			PrevIndex: 0,
			ScriptSig: txscript.NewScript(),
			Sequence:  0xffffffff,
		}},
		TxOuts:   []TxOut{{Amount: 2000, ScriptPubKey: buildP2PKH(h160)}},
		LockTime: 0,
	}
	if _, err := spendingTx.SignInput(0, priv, source); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	verified, err := spendingTx.Verify(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verified {
		t.Fatal("expected verification to fail when outputs exceed inputs")
	}
}

func TestFeeComputation(t *testing.T) {
	priv, _ := secp256k1.NewPrivateKey(big.NewInt(55))
	h160 := priv.PubKey().Hash160(true)

	prevTx := newFundingTx(t, TxOut{Amount: 10000, ScriptPubKey: buildP2PKH(h160)})
	prevRaw, _ := prevTx.Serialize()
	prevParsed, _ := Parse(bytes.NewReader(prevRaw), false)
	source := MapTxSource{Txs: map[string]*Tx{prevParsed.ID(): prevParsed}}

	spendingTx := &Tx{
		Version: 1,
		TxIns: []TxIn{{
			PrevTx:    prevParsed.Hash(),
			PrevIndex: 0,
			ScriptSig: txscript.NewScript(),
			Sequence:  0xffffffff,
		}},
		TxOuts:   []TxOut{{Amount: 9500, ScriptPubKey: buildP2PKH(h160)}},
		LockTime: 0,
	}

	fee, err := spendingTx.Fee(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fee != 500 {
		t.Fatalf("expected fee of 500, got %d", fee)
	}
}
