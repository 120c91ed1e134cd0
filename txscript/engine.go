// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"math/big"
)

// Evaluate runs the combined script (scriptSig ++ scriptPubKey, or
// whatever Cmds the caller assembled) against signature hash z, returning
// true iff execution finished with a non-empty, non-false top stack
// element. A handler returning false aborts evaluation immediately.
func (s Script) Evaluate(z *big.Int) bool {
	cmds := append([]Cmd{}, s.Cmds...)
	var main, alt stack

	for len(cmds) > 0 {
		cmd := cmds[0]
		cmds = cmds[1:]

		if cmd.IsData() {
			main.push(cmd.Data)

			if isP2SHTail(cmds) {
				redeemBytes := cmd.Data
				expectedHash := cmds[1].Data

				// Consume the redeem-script push HASH160 would otherwise
				// pop, then run the hash160+equal+verify it stands for.
				mustPop(&main)
				if !bytesEqual(hash160(redeemBytes), expectedHash) {
					return false
				}

				redeemScript, err := ParseBytes(redeemBytes)
				if err != nil {
					return false
				}
				cmds = cmds[3:]
				cmds = append(append([]Cmd{}, redeemScript.Cmds...), cmds...)
			}
			continue
		}

		handler, ok := opHandlers[cmd.Op]
		if !ok {
			log.Debugf("script evaluation aborted: unknown opcode %d", cmd.Op)
			return false
		}

		var ran bool
		switch handler.class {
		case classUnary:
			ran = handler.unary(&main)
		case classAltstack:
			ran = handler.alt(&main, &alt)
		case classWithZ:
			ran = handler.withZ(&main, z)
		case classFlow:
			ran = handler.flow(&main, &cmds)
		}
		if !ran {
			log.Debugf("script evaluation aborted: opcode %d handler returned false", cmd.Op)
			return false
		}
	}

	if len(main) == 0 {
		return false
	}
	top, _ := main.top()
	return isTrue(top)
}

// isP2SHTail reports whether the remaining instruction stream is exactly
// [OP_HASH160, <20-byte push>, OP_EQUAL] — the pattern that marks a P2SH
// scriptPubKey immediately after the redeem script has been pushed by the
// scriptSig.
func isP2SHTail(cmds []Cmd) bool {
	if len(cmds) != 3 {
		return false
	}
	if cmds[0].IsData() || cmds[0].Op != OP_HASH160 {
		return false
	}
	if !cmds[1].IsData() || len(cmds[1].Data) != 20 {
		return false
	}
	if cmds[2].IsData() || cmds[2].Op != OP_EQUAL {
		return false
	}
	return true
}
