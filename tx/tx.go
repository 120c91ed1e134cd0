// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tx implements legacy Bitcoin transaction parsing, the legacy
// signature hash, and per-input signing/verification against a pluggable
// TxSource.
package tx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/btcprim/btcprim/chainhash"
	"github.com/btcprim/btcprim/secp256k1"
	"github.com/btcprim/btcprim/txscript"
	"github.com/btcprim/btcprim/varint"
)

// SighashAll is the only signature hash type this package implements.
const SighashAll uint32 = 1

// ErrTxParse reports a malformed transaction encoding.
var ErrTxParse = errors.New("tx parse error")

// TxIn is one transaction input: a reference to a previous output, the
// script that satisfies it, and a sequence number.
type TxIn struct {
	PrevTx    chainhash.Hash
	PrevIndex uint32
	ScriptSig txscript.Script
	Sequence  uint32
}

// TxOut is one transaction output: an amount in satoshis and the script
// that must be satisfied to spend it.
type TxOut struct {
	Amount       int64
	ScriptPubKey txscript.Script
}

// Tx is a legacy-serialized Bitcoin transaction.
type Tx struct {
	Version  uint32
	TxIns    []TxIn
	TxOuts   []TxOut
	LockTime uint32
	Testnet  bool
}

// ID returns the transaction's display-order (reversed) hash as a lowercase
// hex string.
func (t *Tx) ID() string {
	h := t.Hash()
	return h.String()
}

// Hash returns hash256(serialize()) in internal byte order; its String
// method (and therefore ID) renders it in the network's conventional
// reversed display order.
func (t *Tx) Hash() chainhash.Hash {
	raw, _ := t.Serialize()
	return chainhash.HashH(raw)
}

// Parse reads a legacy-serialized transaction from r.
func Parse(r *bytes.Reader, testnet bool) (*Tx, error) {
	var versionBuf [4]byte
	if _, err := io.ReadFull(r, versionBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: version: %v", ErrTxParse, err)
	}
	version := binary.LittleEndian.Uint32(versionBuf[:])

	numIn, err := varint.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: input count: %v", ErrTxParse, err)
	}
	ins := make([]TxIn, numIn)
	for i := range ins {
		in, err := parseTxIn(r)
		if err != nil {
			return nil, err
		}
		ins[i] = in
	}

	numOut, err := varint.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: output count: %v", ErrTxParse, err)
	}
	outs := make([]TxOut, numOut)
	for i := range outs {
		out, err := parseTxOut(r)
		if err != nil {
			return nil, err
		}
		outs[i] = out
	}

	var lockTimeBuf [4]byte
	if _, err := io.ReadFull(r, lockTimeBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: locktime: %v", ErrTxParse, err)
	}
	lockTime := binary.LittleEndian.Uint32(lockTimeBuf[:])

	return &Tx{
		Version:  version,
		TxIns:    ins,
		TxOuts:   outs,
		LockTime: lockTime,
		Testnet:  testnet,
	}, nil
}

func parseTxIn(r *bytes.Reader) (TxIn, error) {
	var prevTxRev [32]byte
	if _, err := io.ReadFull(r, prevTxRev[:]); err != nil {
		return TxIn{}, fmt.Errorf("%w: prev_tx: %v", ErrTxParse, err)
	}
	var prevTx chainhash.Hash
	for i := range prevTxRev {
		prevTx[i] = prevTxRev[31-i]
	}

	var idxBuf [4]byte
	if _, err := io.ReadFull(r, idxBuf[:]); err != nil {
		return TxIn{}, fmt.Errorf("%w: prev_index: %v", ErrTxParse, err)
	}
	prevIndex := binary.LittleEndian.Uint32(idxBuf[:])

	script, err := txscript.Parse(r)
	if err != nil {
		return TxIn{}, fmt.Errorf("%w: script_sig: %v", ErrTxParse, err)
	}

	var seqBuf [4]byte
	if _, err := io.ReadFull(r, seqBuf[:]); err != nil {
		return TxIn{}, fmt.Errorf("%w: sequence: %v", ErrTxParse, err)
	}
	sequence := binary.LittleEndian.Uint32(seqBuf[:])

	return TxIn{PrevTx: prevTx, PrevIndex: prevIndex, ScriptSig: script, Sequence: sequence}, nil
}

func parseTxOut(r *bytes.Reader) (TxOut, error) {
	var amountBuf [8]byte
	if _, err := io.ReadFull(r, amountBuf[:]); err != nil {
		return TxOut{}, fmt.Errorf("%w: amount: %v", ErrTxParse, err)
	}
	amount := int64(binary.LittleEndian.Uint64(amountBuf[:]))

	script, err := txscript.Parse(r)
	if err != nil {
		return TxOut{}, fmt.Errorf("%w: script_pubkey: %v", ErrTxParse, err)
	}
	return TxOut{Amount: amount, ScriptPubKey: script}, nil
}

// Serialize returns the legacy byte serialization of t.
func (t *Tx) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	var versionBuf [4]byte
	binary.LittleEndian.PutUint32(versionBuf[:], t.Version)
	buf.Write(versionBuf[:])

	buf.Write(varint.Encode(uint64(len(t.TxIns))))
	for _, in := range t.TxIns {
		raw, err := serializeTxIn(in)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}

	buf.Write(varint.Encode(uint64(len(t.TxOuts))))
	for _, out := range t.TxOuts {
		raw, err := serializeTxOut(out)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}

	var lockTimeBuf [4]byte
	binary.LittleEndian.PutUint32(lockTimeBuf[:], t.LockTime)
	buf.Write(lockTimeBuf[:])
	return buf.Bytes(), nil
}

func serializeTxIn(in TxIn) ([]byte, error) {
	var buf bytes.Buffer
	for i := 31; i >= 0; i-- {
		buf.WriteByte(in.PrevTx[i])
	}
	var idxBuf [4]byte
	binary.LittleEndian.PutUint32(idxBuf[:], in.PrevIndex)
	buf.Write(idxBuf[:])

	scriptRaw, err := in.ScriptSig.Serialize()
	if err != nil {
		return nil, err
	}
	buf.Write(scriptRaw)

	var seqBuf [4]byte
	binary.LittleEndian.PutUint32(seqBuf[:], in.Sequence)
	buf.Write(seqBuf[:])
	return buf.Bytes(), nil
}

func serializeTxOut(out TxOut) ([]byte, error) {
	var buf bytes.Buffer
	var amountBuf [8]byte
	binary.LittleEndian.PutUint64(amountBuf[:], uint64(out.Amount))
	buf.Write(amountBuf[:])

	scriptRaw, err := out.ScriptPubKey.Serialize()
	if err != nil {
		return nil, err
	}
	buf.Write(scriptRaw)
	return buf.Bytes(), nil
}

// Fee returns the sum of input amounts minus the sum of output amounts,
// looking up each input's previous output through source.
func (t *Tx) Fee(source TxSource) (int64, error) {
	var inputSum, outputSum int64
	for _, in := range t.TxIns {
		amount, _, err := in.prevOutput(source, t.Testnet)
		if err != nil {
			return 0, err
		}
		inputSum += amount
	}
	for _, out := range t.TxOuts {
		outputSum += out.Amount
	}
	return inputSum - outputSum, nil
}

func (in TxIn) prevOutput(source TxSource, testnet bool) (int64, txscript.Script, error) {
	prevTx, err := source.Fetch(in.PrevTx.String(), testnet)
	if err != nil {
		return 0, txscript.Script{}, err
	}
	if int(in.PrevIndex) >= len(prevTx.TxOuts) {
		return 0, txscript.Script{}, fmt.Errorf("prev_index %d out of range for tx %s", in.PrevIndex, in.PrevTx)
	}
	out := prevTx.TxOuts[in.PrevIndex]
	return out.Amount, out.ScriptPubKey, nil
}

// SigHash computes the legacy signature hash for input i: the target
// input's script is replaced with its previous output's scriptPubKey,
// every other input's script is cleared, SIGHASH_ALL is appended, and the
// result is the big-endian integer of hash256 of that buffer.
//
// The source's equivalent method references tx_in.sequqnce, a typo for
// sequence; this implementation uses the correctly spelled field.
func (t *Tx) SigHash(i int, source TxSource) (*big.Int, error) {
	if i < 0 || i >= len(t.TxIns) {
		return nil, fmt.Errorf("input index %d out of range", i)
	}

	var buf bytes.Buffer
	var versionBuf [4]byte
	binary.LittleEndian.PutUint32(versionBuf[:], t.Version)
	buf.Write(versionBuf[:])

	buf.Write(varint.Encode(uint64(len(t.TxIns))))
	for idx, in := range t.TxIns {
		script := txscript.Script{}
		if idx == i {
			_, scriptPubKey, err := in.prevOutput(source, t.Testnet)
			if err != nil {
				return nil, err
			}
			script = scriptPubKey
		}
		raw, err := serializeTxIn(TxIn{
			PrevTx:    in.PrevTx,
			PrevIndex: in.PrevIndex,
			ScriptSig: script,
			Sequence:  in.Sequence,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}

	buf.Write(varint.Encode(uint64(len(t.TxOuts))))
	for _, out := range t.TxOuts {
		raw, err := serializeTxOut(out)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}

	var lockTimeBuf [4]byte
	binary.LittleEndian.PutUint32(lockTimeBuf[:], t.LockTime)
	buf.Write(lockTimeBuf[:])

	var sighashBuf [4]byte
	binary.LittleEndian.PutUint32(sighashBuf[:], SighashAll)
	buf.Write(sighashBuf[:])

	h256 := chainhash.HashB(buf.Bytes())
	return new(big.Int).SetBytes(h256), nil
}

// VerifyInput evaluates scriptSig ++ scriptPubKey for input i against its
// signature hash.
func (t *Tx) VerifyInput(i int, source TxSource) (bool, error) {
	if i < 0 || i >= len(t.TxIns) {
		return false, fmt.Errorf("input index %d out of range", i)
	}
	in := t.TxIns[i]
	_, scriptPubKey, err := in.prevOutput(source, t.Testnet)
	if err != nil {
		return false, err
	}
	z, err := t.SigHash(i, source)
	if err != nil {
		return false, err
	}
	combined := in.ScriptSig.Add(scriptPubKey)
	return combined.Evaluate(z), nil
}

// Verify checks that the fee is non-negative and every input verifies.
func (t *Tx) Verify(source TxSource) (bool, error) {
	fee, err := t.Fee(source)
	if err != nil {
		return false, err
	}
	if fee < 0 {
		log.Debugf("tx %s rejected: negative fee %d", t.ID(), fee)
		return false, nil
	}
	for i := range t.TxIns {
		ok, err := t.VerifyInput(i, source)
		if err != nil {
			return false, err
		}
		if !ok {
			log.Debugf("tx %s rejected: input %d failed script evaluation", t.ID(), i)
			return false, nil
		}
	}
	return true, nil
}

// SignInput computes the signature hash for input i, signs it with priv,
// and installs Script([sig||sighash_all, sec]) as the input's scriptSig.
// It returns whether the newly signed input verifies.
func (t *Tx) SignInput(i int, priv *secp256k1.PrivateKey, source TxSource) (bool, error) {
	if i < 0 || i >= len(t.TxIns) {
		return false, fmt.Errorf("input index %d out of range", i)
	}
	z, err := t.SigHash(i, source)
	if err != nil {
		return false, err
	}
	sig, err := priv.Sign(z)
	if err != nil {
		return false, err
	}
	der := sig.DER()
	sigWithType := append(der, byte(SighashAll))
	sec := priv.PubKey().SEC(true)

	t.TxIns[i].ScriptSig = txscript.NewScript(txscript.PushCmd(sigWithType), txscript.PushCmd(sec))

	return t.VerifyInput(i, source)
}
