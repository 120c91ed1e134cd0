// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the P2P network envelope that frames every
// Bitcoin protocol message, plus the handful of messages a handshake and
// header sync need, and a socket-free auto-reply state machine for the
// messages a peer is expected to answer without application input.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/btcprim/btcprim/chainhash"
	"github.com/btcprim/btcprim/chaincfg"
)

// commandSize is the fixed, null-padded width of the command field.
const commandSize = 12

// ErrEnvelopeParse reports a malformed network envelope.
var ErrEnvelopeParse = errors.New("wire envelope parse error")

// ErrChecksumMismatch reports an envelope whose payload doesn't hash to
// its claimed checksum.
var ErrChecksumMismatch = errors.New("wire: checksum does not match")

// ErrMagicMismatch reports an envelope whose magic doesn't match the
// network it was parsed against.
var ErrMagicMismatch = errors.New("wire: magic does not match expected network")

// ErrConnectionReset reports a peer socket that returned zero bytes on
// the magic read, i.e. the other side closed the connection. A peer
// loop should treat this as retriable and attempt to reconnect rather
// than treating it as a malformed envelope.
var ErrConnectionReset = errors.New("wire: connection reset")

// Envelope is the fixed network-message frame every Bitcoin protocol
// message travels in: a 4-byte network magic, a 12-byte null-padded
// command name, a 4-byte little-endian payload length, a 4-byte
// checksum, and the payload itself.
//
// The source's equivalent constructor swaps its TESTNET_NETWORK_MAGIC and
// NETWORK_MAGIC constants (the "testnet" constant holds the mainnet
// bytes and vice versa) and its parse() method swaps them again when
// picking expected_magic, which happens to cancel out for a peer only
// ever talking to itself but breaks the moment it talks to a real
// Bitcoin node. Envelope takes the magic directly from *chaincfg.Params,
// so there is only one place the magic can be wrong.
type Envelope struct {
	Net     uint32
	Command string
	Payload []byte
}

// NewEnvelope builds an Envelope for command/payload on the given network.
func NewEnvelope(params *chaincfg.Params, command string, payload []byte) *Envelope {
	return &Envelope{Net: params.Net, Command: command, Payload: payload}
}

// Parse reads one Envelope from r, verifying its magic against params and
// its checksum against the payload actually read (the source computes
// the checksum from payload_length instead of payload — fixed here).
func Parse(r io.Reader, params *chaincfg.Params) (*Envelope, error) {
	var magicBuf [4]byte
	if n, err := io.ReadFull(r, magicBuf[:]); err != nil {
		if n == 0 && (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) {
			return nil, ErrConnectionReset
		}
		return nil, fmt.Errorf("%w: magic: %v", ErrEnvelopeParse, err)
	}
	magic := binary.LittleEndian.Uint32(magicBuf[:])
	if magic != params.Net {
		return nil, fmt.Errorf("%w: got %#08x, want %#08x", ErrMagicMismatch, magic, params.Net)
	}

	var commandBuf [commandSize]byte
	if _, err := io.ReadFull(r, commandBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: command: %v", ErrEnvelopeParse, err)
	}
	command := string(bytes.TrimRight(commandBuf[:], "\x00"))

	var lengthBuf [4]byte
	if _, err := io.ReadFull(r, lengthBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: payload length: %v", ErrEnvelopeParse, err)
	}
	payloadLength := binary.LittleEndian.Uint32(lengthBuf[:])

	var checksum [4]byte
	if _, err := io.ReadFull(r, checksum[:]); err != nil {
		return nil, fmt.Errorf("%w: checksum: %v", ErrEnvelopeParse, err)
	}

	payload := make([]byte, payloadLength)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrEnvelopeParse, err)
	}

	calculated := chainhash.HashB(payload)[:4]
	if !bytes.Equal(calculated, checksum[:]) {
		log.Debugf("envelope %q: checksum mismatch: got %x, want %x", command, checksum, calculated)
		return nil, ErrChecksumMismatch
	}

	log.Tracef("parsed envelope %q (%d byte payload)", command, len(payload))
	return &Envelope{Net: magic, Command: command, Payload: payload}, nil
}

// Serialize returns the wire encoding of e.
func (e *Envelope) Serialize() []byte {
	var buf bytes.Buffer

	var magicBuf [4]byte
	binary.LittleEndian.PutUint32(magicBuf[:], e.Net)
	buf.Write(magicBuf[:])

	var commandBuf [commandSize]byte
	copy(commandBuf[:], e.Command)
	buf.Write(commandBuf[:])

	var lengthBuf [4]byte
	binary.LittleEndian.PutUint32(lengthBuf[:], uint32(len(e.Payload)))
	buf.Write(lengthBuf[:])

	buf.Write(chainhash.HashB(e.Payload)[:4])
	buf.Write(e.Payload)

	return buf.Bytes()
}
