// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// AutoReply inspects a received message and returns the reply a
// socket-free peer is expected to send back without any application
// input, mirroring SimpleNode.wait_for's inline handling of version and
// ping: a "version" gets an empty "verack", and a "ping" echoes its
// nonce back in a "pong". Any other command has no automatic reply.
func AutoReply(command string, payload []byte) (replyCommand string, replyPayload []byte, ok bool) {
	switch command {
	case "version":
		return VerAckMessage{}.Command(), VerAckMessage{}.Serialize(), true
	case "ping":
		ping, err := ParsePing(payload)
		if err != nil {
			return "", nil, false
		}
		pong := PongMessage{Nonce: ping.Nonce}
		return pong.Command(), pong.Serialize(), true
	default:
		return "", nil, false
	}
}
