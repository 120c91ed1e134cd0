// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txscript implements the Bitcoin Script interpreter: the
// mixed opcode/data command stream, canonical push-length serialization,
// the main/alt stack execution engine, and P2SH redemption.
package txscript

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/btcprim/btcprim/varint"
)

// ErrScriptParse reports a malformed script encoding.
var ErrScriptParse = errors.New("script parse error")

// Cmd is a single Script command: either an opcode or a run of pushed
// data. Rather than the source's untyped mix of ints and byte strings in
// one list, this is an explicit tagged union so the interpreter never has
// to guess which kind of value it's looking at.
type Cmd struct {
	// Op holds the opcode byte when Data is nil.
	Op byte
	// Data holds the pushed bytes when this Cmd is a data push. A
	// non-nil Data (including an empty, zero-length push) means this
	// Cmd is a push, not an opcode.
	Data []byte
}

// IsData reports whether cmd pushes data rather than naming an opcode.
func (c Cmd) IsData() bool { return c.Data != nil }

func opCmd(op byte) Cmd { return Cmd{Op: op} }
func dataCmd(data []byte) Cmd {
	if data == nil {
		data = []byte{}
	}
	return Cmd{Data: data}
}

// PushCmd builds a data-push Cmd from outside the package, e.g. for
// assembling a scriptSig from a signature and a public key.
func PushCmd(data []byte) Cmd { return dataCmd(data) }

// Script is an ordered list of commands, e.g. a scriptSig or scriptPubKey.
type Script struct {
	Cmds []Cmd
}

// NewScript wraps cmds as a Script.
func NewScript(cmds ...Cmd) Script {
	return Script{Cmds: cmds}
}

// Parse reads a varint-prefixed script from r: the varint gives the exact
// byte length of the payload that follows, which is then decoded into
// Cmds by ParseBytes.
func Parse(r *bytes.Reader) (Script, error) {
	length, err := varint.Read(r)
	if err != nil {
		return Script{}, fmt.Errorf("%w: script length: %v", ErrScriptParse, err)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Script{}, fmt.Errorf("%w: script body: %v", ErrScriptParse, err)
	}
	return ParseBytes(payload)
}

// ParseBytes decodes a raw (unprefixed) script payload into Cmds.
func ParseBytes(payload []byte) (Script, error) {
	var cmds []Cmd
	i := 0
	for i < len(payload) {
		b := payload[i]
		i++
		switch {
		case b >= 1 && b <= 75:
			n := int(b)
			if i+n > len(payload) {
				return Script{}, fmt.Errorf("%w: push of %d bytes overruns script", ErrScriptParse, n)
			}
			cmds = append(cmds, dataCmd(payload[i:i+n]))
			i += n
		case b == 76: // OP_PUSHDATA1
			if i+1 > len(payload) {
				return Script{}, fmt.Errorf("%w: truncated PUSHDATA1 length", ErrScriptParse)
			}
			n := int(payload[i])
			i++
			if i+n > len(payload) {
				return Script{}, fmt.Errorf("%w: PUSHDATA1 of %d bytes overruns script", ErrScriptParse, n)
			}
			cmds = append(cmds, dataCmd(payload[i:i+n]))
			i += n
		case b == 77: // OP_PUSHDATA2
			if i+2 > len(payload) {
				return Script{}, fmt.Errorf("%w: truncated PUSHDATA2 length", ErrScriptParse)
			}
			n := int(payload[i]) | int(payload[i+1])<<8
			i += 2
			if i+n > len(payload) {
				return Script{}, fmt.Errorf("%w: PUSHDATA2 of %d bytes overruns script", ErrScriptParse, n)
			}
			cmds = append(cmds, dataCmd(payload[i:i+n]))
			i += n
		case b == 78: // OP_PUSHDATA4
			if i+4 > len(payload) {
				return Script{}, fmt.Errorf("%w: truncated PUSHDATA4 length", ErrScriptParse)
			}
			n := int(payload[i]) | int(payload[i+1])<<8 | int(payload[i+2])<<16 | int(payload[i+3])<<24
			i += 4
			if i+n > len(payload) {
				return Script{}, fmt.Errorf("%w: PUSHDATA4 of %d bytes overruns script", ErrScriptParse, n)
			}
			cmds = append(cmds, dataCmd(payload[i:i+n]))
			i += n
		default:
			cmds = append(cmds, opCmd(b))
		}
	}
	return Script{Cmds: cmds}, nil
}

// RawBytes serializes the Cmds to an unprefixed script payload, selecting
// the canonical push opcode for each data command's length.
func (s Script) RawBytes() ([]byte, error) {
	var buf bytes.Buffer
	for _, cmd := range s.Cmds {
		if !cmd.IsData() {
			buf.WriteByte(cmd.Op)
			continue
		}
		n := len(cmd.Data)
		switch {
		case n < 76:
			buf.WriteByte(byte(n))
		case n < 256:
			buf.WriteByte(76)
			buf.WriteByte(byte(n))
		case n <= 520:
			buf.WriteByte(77)
			buf.WriteByte(byte(n))
			buf.WriteByte(byte(n >> 8))
		default:
			return nil, fmt.Errorf("%w: push of %d bytes exceeds the 520-byte limit", ErrScriptParse, n)
		}
		buf.Write(cmd.Data)
	}
	return buf.Bytes(), nil
}

// Serialize returns the varint-length-prefixed encoding Parse reverses.
func (s Script) Serialize() ([]byte, error) {
	raw, err := s.RawBytes()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(varint.Encode(uint64(len(raw))))
	buf.Write(raw)
	return buf.Bytes(), nil
}

// Add returns a new Script whose Cmds are s's followed by other's — the
// splicing operation P2SH redemption and scriptSig+scriptPubKey
// concatenation both need.
func (s Script) Add(other Script) Script {
	cmds := make([]Cmd, 0, len(s.Cmds)+len(other.Cmds))
	cmds = append(cmds, s.Cmds...)
	cmds = append(cmds, other.Cmds...)
	return Script{Cmds: cmds}
}
