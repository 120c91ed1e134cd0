// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcprim/btcprim/chaincfg"
	"github.com/btcprim/btcprim/chainhash"
)

func TestEnvelopeMagicMatchesDocumentedBytes(t *testing.T) {
	cases := []struct {
		name   string
		params *chaincfg.Params
		want   string
	}{
		{"mainnet", chaincfg.MainNetParams(), "f9beb4d9"},
		{"testnet", chaincfg.TestNetParams(), "0b110907"},
	}

	for _, tc := range cases {
		env := NewEnvelope(tc.params, "verack", nil)
		raw := env.Serialize()
		if len(raw) < 4 {
			t.Fatalf("%s: serialized envelope too short", tc.name)
		}
		got := hex.EncodeToString(raw[:4])
		if got != tc.want {
			t.Fatalf("%s: magic bytes = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestEnvelopeParseSerializeRoundTrip(t *testing.T) {
	params := chaincfg.MainNetParams()
	payload := []byte("hello")
	env := NewEnvelope(params, "ping", payload)
	raw := env.Serialize()

	parsed, err := Parse(bytes.NewReader(raw), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Command != "ping" {
		t.Fatalf("command = %q, want %q", parsed.Command, "ping")
	}
	if !bytes.Equal(parsed.Payload, payload) {
		t.Fatalf("payload mismatch: got %x, want %x", parsed.Payload, payload)
	}
}

func TestEnvelopeParseRejectsWrongMagic(t *testing.T) {
	raw := NewEnvelope(chaincfg.MainNetParams(), "verack", nil).Serialize()
	_, err := Parse(bytes.NewReader(raw), chaincfg.TestNetParams())
	if err == nil {
		t.Fatal("expected an error parsing a mainnet envelope against testnet params")
	}
}

func TestEnvelopeParseRejectsBadChecksum(t *testing.T) {
	raw := NewEnvelope(chaincfg.MainNetParams(), "ping", []byte("hello")).Serialize()
	// corrupt the checksum field (bytes 20-23, after 4 magic + 12 command + 4 length)
	raw[20] ^= 0xff
	_, err := Parse(bytes.NewReader(raw), chaincfg.MainNetParams())
	if err == nil {
		t.Fatal("expected a checksum mismatch error")
	}
}

func TestEnvelopeParseZeroLengthReadIsConnectionReset(t *testing.T) {
	_, err := Parse(bytes.NewReader(nil), chaincfg.MainNetParams())
	if !errors.Is(err, ErrConnectionReset) {
		t.Fatalf("expected ErrConnectionReset on an empty read, got %v", err)
	}
}

func TestVersionMessageSerializeFixedWidths(t *testing.T) {
	m := &VersionMessage{
		Version:      ProtocolVersion,
		Services:     0,
		Timestamp:    1231006505,
		ReceiverPort: 8333,
		SenderPort:   8333,
		Nonce:        0,
		UserAgent:    "/btcprim:0.1/",
		LatestBlock:  0,
		Relay:        true,
	}
	payload := m.Serialize()

	// version(4) + services(8) + timestamp(8) + recv_services(8) +
	// recv_ip(16) + recv_port(2) + send_services(8) + send_ip(16) +
	// send_port(2) + nonce(8) = 80 bytes before the varint user agent.
	const fixedPrefix = 4 + 8 + 8 + 8 + 16 + 2 + 8 + 16 + 2 + 8
	if len(payload) < fixedPrefix {
		t.Fatalf("payload too short: %d bytes", len(payload))
	}

	tail := payload[fixedPrefix:]
	if len(tail) != 1+len(m.UserAgent)+4+1 {
		t.Fatalf("unexpected tail length %d", len(tail))
	}
	if tail[0] != byte(len(m.UserAgent)) {
		t.Fatalf("user agent length prefix = %d, want %d", tail[0], len(m.UserAgent))
	}
	relayByte := tail[len(tail)-1]
	if relayByte != 0x01 {
		t.Fatalf("relay byte = %#x, want 0x01", relayByte)
	}
}

func TestPingPongRoundTrip(t *testing.T) {
	ping := PingMessage{Nonce: 0xdeadbeefcafef00d}
	parsed, err := ParsePing(ping.Serialize())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Nonce != ping.Nonce {
		t.Fatalf("nonce = %d, want %d", parsed.Nonce, ping.Nonce)
	}

	pong := PongMessage{Nonce: parsed.Nonce}
	if pong.Command() != "pong" {
		t.Fatalf("command = %q, want pong", pong.Command())
	}
}

func TestGetHeadersMessageSerialize(t *testing.T) {
	m := &GetHeadersMessage{
		Version:    ProtocolVersion,
		NumHashes:  1,
		StartBlock: chainhash.HashH([]byte("start")),
		EndBlock:   chainhash.Hash{},
	}
	raw := m.Serialize()
	want := 4 + 1 + chainhash.HashSize + chainhash.HashSize
	if len(raw) != want {
		t.Fatalf("serialized length = %d, want %d", len(raw), want)
	}
}

func TestHeadersMessageParseRejectsNonZeroTxCount(t *testing.T) {
	raw, err := hex.DecodeString("020000208ec39428b17323fa0ddec8e887b4a7c53b8c0a0a220cfd0000000000000000005b0750fce0a889502d40508d39576821155e9c9e3f5c3157f961db38fd8b25be1e77a759e93c0118a4ffd71d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload := append([]byte{0x01}, raw...)
	payload = append(payload, 0x01) // non-zero tx count

	_, err = ParseHeaders(payload)
	if err == nil {
		t.Fatal("expected an error for a header with a non-zero tx count")
	}
}

func TestHeadersMessageParseAcceptsZeroTxCount(t *testing.T) {
	raw, err := hex.DecodeString("020000208ec39428b17323fa0ddec8e887b4a7c53b8c0a0a220cfd0000000000000000005b0750fce0a889502d40508d39576821155e9c9e3f5c3157f961db38fd8b25be1e77a759e93c0118a4ffd71d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	payload := append([]byte{0x01}, raw...)
	payload = append(payload, 0x00)

	headers, err := ParseHeaders(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headers.Headers) != 1 {
		t.Fatalf("got %d headers, want 1", len(headers.Headers))
	}
}

func TestGetDataMessageSerialize(t *testing.T) {
	m := &GetDataMessage{}
	m.AddData(InvTx, chainhash.HashH([]byte("tx1")))
	m.AddData(InvBlock, chainhash.HashH([]byte("block1")))

	raw := m.Serialize()
	want := 1 + 2*(4+chainhash.HashSize)
	if len(raw) != want {
		t.Fatalf("serialized length = %d, want %d", len(raw), want)
	}
	if raw[0] != 2 {
		t.Fatalf("item count prefix = %d, want 2", raw[0])
	}
}

func TestAutoReplyVersionYieldsVerAck(t *testing.T) {
	cmd, payload, ok := AutoReply("version", nil)
	if !ok {
		t.Fatal("expected AutoReply to handle version")
	}
	if cmd != "verack" {
		t.Fatalf("reply command = %q, want verack", cmd)
	}
	if len(payload) != 0 {
		t.Fatalf("expected empty verack payload, got %d bytes", len(payload))
	}
}

func TestAutoReplyPingYieldsPong(t *testing.T) {
	ping := PingMessage{Nonce: 42}
	cmd, payload, ok := AutoReply("ping", ping.Serialize())
	if !ok {
		t.Fatal("expected AutoReply to handle ping")
	}
	if cmd != "pong" {
		t.Fatalf("reply command = %q, want pong", cmd)
	}
	pong, err := ParsePing(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pong.Nonce != ping.Nonce {
		t.Fatalf("echoed nonce = %d, want %d", pong.Nonce, ping.Nonce)
	}
}

func TestAutoReplyUnknownCommandNotOK(t *testing.T) {
	_, _, ok := AutoReply("getaddr", nil)
	if ok {
		t.Fatal("expected AutoReply to have no automatic reply for getaddr")
	}
}
