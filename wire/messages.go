// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcprim/btcprim/blockheader"
	"github.com/btcprim/btcprim/chainhash"
	"github.com/btcprim/btcprim/varint"
)

// ProtocolVersion is the default version number sent in a VersionMessage,
// matching the value the reference handshake uses.
const ProtocolVersion = 70015

// ErrMessageParse reports a malformed message payload.
var ErrMessageParse = errors.New("wire message parse error")

// VersionMessage is the payload of a "version" message: the first
// message each side of a handshake sends.
//
// The source's serialize() forwards sender_port to int_to_little_endian
// without the required length argument (a TypeError at runtime) and
// silently drops the relay byte on the truthy branch by assigning to an
// undefined local (relay += b'\x01' instead of result += b'\x01').
// VersionMessage.Serialize always writes a 2-byte port and a 1-byte
// relay flag.
type VersionMessage struct {
	Version         int32
	Services        uint64
	Timestamp       int64
	ReceiverServices uint64
	ReceiverIP      [4]byte
	ReceiverPort    uint16
	SenderServices  uint64
	SenderIP        [4]byte
	SenderPort      uint16
	Nonce           uint64
	UserAgent       string
	LatestBlock     int32
	Relay           bool
}

// Command returns "version".
func (*VersionMessage) Command() string { return "version" }

// Serialize returns the version message payload.
func (m *VersionMessage) Serialize() []byte {
	var buf bytes.Buffer

	writeInt32(&buf, m.Version)
	writeUint64(&buf, m.Services)
	writeInt64(&buf, m.Timestamp)
	writeUint64(&buf, m.ReceiverServices)
	buf.Write(make([]byte, 10))
	buf.Write([]byte{0xff, 0xff})
	buf.Write(m.ReceiverIP[:])
	writeUint16(&buf, m.ReceiverPort)
	writeUint64(&buf, m.SenderServices)
	buf.Write(make([]byte, 10))
	buf.Write([]byte{0xff, 0xff})
	buf.Write(m.SenderIP[:])
	writeUint16(&buf, m.SenderPort)
	writeUint64(&buf, m.Nonce)
	buf.Write(varint.Encode(uint64(len(m.UserAgent))))
	buf.WriteString(m.UserAgent)
	writeInt32(&buf, m.LatestBlock)
	if m.Relay {
		buf.WriteByte(0x01)
	} else {
		buf.WriteByte(0x00)
	}

	return buf.Bytes()
}

func writeInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func writeInt64(buf *bytes.Buffer, v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

// VerAckMessage is the empty-payload acknowledgement of a VersionMessage.
type VerAckMessage struct{}

// Command returns "verack".
func (VerAckMessage) Command() string { return "verack" }

// Serialize returns an empty payload.
func (VerAckMessage) Serialize() []byte { return nil }

// PingMessage carries a nonce a peer must echo back in a pong.
type PingMessage struct {
	Nonce uint64
}

// Command returns "ping".
func (PingMessage) Command() string { return "ping" }

// Serialize returns the 8-byte little-endian nonce.
func (m PingMessage) Serialize() []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], m.Nonce)
	return b[:]
}

// ParsePing reads a PingMessage payload.
func ParsePing(payload []byte) (PingMessage, error) {
	if len(payload) != 8 {
		return PingMessage{}, fmt.Errorf("%w: ping payload must be 8 bytes, got %d", ErrMessageParse, len(payload))
	}
	return PingMessage{Nonce: binary.LittleEndian.Uint64(payload)}, nil
}

// PongMessage echoes the nonce from a PingMessage.
type PongMessage struct {
	Nonce uint64
}

// Command returns "pong".
func (PongMessage) Command() string { return "pong" }

// Serialize returns the 8-byte little-endian nonce.
func (m PongMessage) Serialize() []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], m.Nonce)
	return b[:]
}

// GetHeadersMessage requests block headers starting after StartBlock, up
// to (and including) EndBlock, or as many as the peer has if EndBlock is
// the zero hash.
type GetHeadersMessage struct {
	Version    int32
	NumHashes  uint64
	StartBlock chainhash.Hash
	EndBlock   chainhash.Hash
}

// Command returns "getheaders".
func (*GetHeadersMessage) Command() string { return "getheaders" }

// Serialize returns the getheaders payload.
func (m *GetHeadersMessage) Serialize() []byte {
	var buf bytes.Buffer
	writeInt32(&buf, m.Version)
	buf.Write(varint.Encode(m.NumHashes))
	buf.Write(reverseHash(m.StartBlock))
	buf.Write(reverseHash(m.EndBlock))
	return buf.Bytes()
}

func reverseHash(h chainhash.Hash) []byte {
	out := make([]byte, len(h))
	for i, b := range h {
		out[len(h)-1-i] = b
	}
	return out
}

// HeadersMessage is a batch of block headers returned in response to a
// GetHeadersMessage. Each header's transaction count (present in the
// wire encoding) is required to be zero, since a headers-only response
// carries no bodies.
type HeadersMessage struct {
	Headers []*blockheader.Header
}

// Command returns "headers".
func (*HeadersMessage) Command() string { return "headers" }

// ParseHeaders reads a HeadersMessage payload.
func ParseHeaders(payload []byte) (*HeadersMessage, error) {
	r := bytes.NewReader(payload)
	numHeaders, err := varint.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: header count: %v", ErrMessageParse, err)
	}

	headers := make([]*blockheader.Header, numHeaders)
	for i := range headers {
		h, err := blockheader.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("%w: header %d: %v", ErrMessageParse, i, err)
		}
		numTxs, err := varint.Read(r)
		if err != nil {
			return nil, fmt.Errorf("%w: header %d tx count: %v", ErrMessageParse, i, err)
		}
		if numTxs != 0 {
			return nil, fmt.Errorf("%w: header %d: number of txs not 0", ErrMessageParse, i)
		}
		headers[i] = h
	}
	return &HeadersMessage{Headers: headers}, nil
}

// InventoryType names the kind of item a GetDataMessage entry identifies.
type InventoryType uint32

// Inventory type constants, matching the Bitcoin protocol's inv vector types.
const (
	InvErrorType InventoryType = 0
	InvTx        InventoryType = 1
	InvBlock     InventoryType = 2
	InvFilteredBlock InventoryType = 3
)

// GetDataMessage requests full transactions or blocks by identifier.
type GetDataMessage struct {
	items []getDataItem
}

type getDataItem struct {
	dataType   InventoryType
	identifier chainhash.Hash
}

// AddData appends one inventory entry to the request.
func (m *GetDataMessage) AddData(dataType InventoryType, identifier chainhash.Hash) {
	m.items = append(m.items, getDataItem{dataType: dataType, identifier: identifier})
}

// Command returns "getdata".
func (*GetDataMessage) Command() string { return "getdata" }

// Serialize returns the getdata payload.
func (m *GetDataMessage) Serialize() []byte {
	var buf bytes.Buffer
	buf.Write(varint.Encode(uint64(len(m.items))))
	for _, item := range m.items {
		var typeBuf [4]byte
		binary.LittleEndian.PutUint32(typeBuf[:], uint32(item.dataType))
		buf.Write(typeBuf[:])
		buf.Write(reverseHash(item.identifier))
	}
	return buf.Bytes()
}
