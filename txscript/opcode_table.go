// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// Opcode constants. Unlike the source's handful of OP_CODE_FUNCTIONS
// entries (op_dup/op_hash256/op_hash160/op_checksig only), this names the
// full set the engine dispatches on, plus some it has no handler for:
// OP_RESERVED, OP_NOP, OP_2DROP, OP_3DUP, OP_2ROT, OP_PICK, OP_ROLL,
// OP_ROT, and OP_CODESEPARATOR make Evaluate return false. OP_ELSE and
// OP_ENDIF are consumed only as part of an OP_IF/OP_NOTIF block.
const (
	OP_0         = 0
	OP_PUSHDATA1 = 76
	OP_PUSHDATA2 = 77
	OP_PUSHDATA4 = 78
	OP_1NEGATE   = 79
	OP_RESERVED  = 80
	OP_1         = 81
	OP_2         = 82
	OP_3         = 83
	OP_4         = 84
	OP_5         = 85
	OP_6         = 86
	OP_7         = 87
	OP_8         = 88
	OP_9         = 89
	OP_10        = 90
	OP_11        = 91
	OP_12        = 92
	OP_13        = 93
	OP_14        = 94
	OP_15        = 95
	OP_16        = 96

	OP_NOP      = 97
	OP_IF       = 99
	OP_NOTIF    = 100
	OP_ELSE     = 103
	OP_ENDIF    = 104
	OP_VERIFY   = 105
	OP_RETURN   = 106

	OP_TOALTSTACK   = 107
	OP_FROMALTSTACK = 108
	OP_2DROP        = 109
	OP_2DUP         = 110
	OP_3DUP         = 111
	OP_2OVER        = 112
	OP_2ROT         = 113
	OP_2SWAP        = 114
	OP_IFDUP        = 115
	OP_DEPTH        = 116
	OP_DROP         = 117
	OP_DUP          = 118
	OP_NIP          = 119
	OP_OVER         = 120
	OP_PICK         = 121
	OP_ROLL         = 122
	OP_ROT          = 123
	OP_SWAP         = 124
	OP_TUCK         = 125

	OP_SIZE = 130

	OP_EQUAL       = 135
	OP_EQUALVERIFY = 136

	OP_1ADD      = 139
	OP_1SUB      = 140
	OP_NEGATE    = 143
	OP_ABS       = 144
	OP_NOT       = 145
	OP_0NOTEQUAL = 146

	OP_ADD                = 147
	OP_SUB                = 148
	OP_BOOLAND            = 154
	OP_BOOLOR             = 155
	OP_NUMEQUAL           = 156
	OP_NUMEQUALVERIFY     = 157
	OP_NUMNOTEQUAL        = 158
	OP_LESSTHAN           = 159
	OP_GREATERTHAN        = 160
	OP_LESSTHANOREQUAL    = 161
	OP_GREATERTHANOREQUAL = 162
	OP_MIN                = 163
	OP_MAX                = 164
	OP_WITHIN             = 165

	OP_RIPEMD160 = 166
	OP_SHA1      = 167
	OP_SHA256    = 168
	OP_HASH160   = 169
	OP_HASH256   = 170

	OP_CODESEPARATOR      = 171
	OP_CHECKSIG           = 172
	OP_CHECKSIGVERIFY     = 173
	OP_CHECKMULTISIG      = 174
	OP_CHECKMULTISIGVERIFY = 175
)

// OpCodeNames maps opcode bytes to their mnemonic, mirroring the source's
// OP_CODE_NAMES table but covering the complete set the engine dispatches.
var OpCodeNames = map[byte]string{
	OP_0:         "OP_0",
	OP_PUSHDATA1: "OP_PUSHDATA1",
	OP_PUSHDATA2: "OP_PUSHDATA2",
	OP_PUSHDATA4: "OP_PUSHDATA4",
	OP_1NEGATE:   "OP_1NEGATE",
	OP_1:         "OP_1",
	OP_2:         "OP_2",
	OP_3:         "OP_3",
	OP_4:         "OP_4",
	OP_5:         "OP_5",
	OP_6:         "OP_6",
	OP_7:         "OP_7",
	OP_8:         "OP_8",
	OP_9:         "OP_9",
	OP_10:        "OP_10",
	OP_11:        "OP_11",
	OP_12:        "OP_12",
	OP_13:        "OP_13",
	OP_14:        "OP_14",
	OP_15:        "OP_15",
	OP_16:        "OP_16",
	OP_NOP:       "OP_NOP",
	OP_IF:        "OP_IF",
	OP_NOTIF:     "OP_NOTIF",
	OP_ELSE:      "OP_ELSE",
	OP_ENDIF:     "OP_ENDIF",
	OP_VERIFY:    "OP_VERIFY",
	OP_RETURN:    "OP_RETURN",

	OP_TOALTSTACK:   "OP_TOALTSTACK",
	OP_FROMALTSTACK: "OP_FROMALTSTACK",
	OP_2DROP:        "OP_2DROP",
	OP_2DUP:         "OP_2DUP",
	OP_3DUP:         "OP_3DUP",
	OP_2OVER:        "OP_2OVER",
	OP_2ROT:         "OP_2ROT",
	OP_2SWAP:        "OP_2SWAP",
	OP_IFDUP:        "OP_IFDUP",
	OP_DEPTH:        "OP_DEPTH",
	OP_DROP:         "OP_DROP",
	OP_DUP:          "OP_DUP",
	OP_NIP:          "OP_NIP",
	OP_OVER:         "OP_OVER",
	OP_PICK:         "OP_PICK",
	OP_ROLL:         "OP_ROLL",
	OP_ROT:          "OP_ROT",
	OP_SWAP:         "OP_SWAP",
	OP_TUCK:         "OP_TUCK",

	OP_SIZE: "OP_SIZE",

	OP_EQUAL:       "OP_EQUAL",
	OP_EQUALVERIFY: "OP_EQUALVERIFY",

	OP_1ADD:      "OP_1ADD",
	OP_1SUB:      "OP_1SUB",
	OP_NEGATE:    "OP_NEGATE",
	OP_ABS:       "OP_ABS",
	OP_NOT:       "OP_NOT",
	OP_0NOTEQUAL: "OP_0NOTEQUAL",

	OP_ADD:                "OP_ADD",
	OP_SUB:                "OP_SUB",
	OP_BOOLAND:            "OP_BOOLAND",
	OP_BOOLOR:             "OP_BOOLOR",
	OP_NUMEQUAL:           "OP_NUMEQUAL",
	OP_NUMEQUALVERIFY:     "OP_NUMEQUALVERIFY",
	OP_NUMNOTEQUAL:        "OP_NUMNOTEQUAL",
	OP_LESSTHAN:           "OP_LESSTHAN",
	OP_GREATERTHAN:        "OP_GREATERTHAN",
	OP_LESSTHANOREQUAL:    "OP_LESSTHANOREQUAL",
	OP_GREATERTHANOREQUAL: "OP_GREATERTHANOREQUAL",
	OP_MIN:                "OP_MIN",
	OP_MAX:                "OP_MAX",
	OP_WITHIN:             "OP_WITHIN",

	OP_RIPEMD160: "OP_RIPEMD160",
	OP_SHA1:      "OP_SHA1",
	OP_SHA256:    "OP_SHA256",
	OP_HASH160:   "OP_HASH160",
	OP_HASH256:   "OP_HASH256",

	OP_CODESEPARATOR:       "OP_CODESEPARATOR",
	OP_CHECKSIG:            "OP_CHECKSIG",
	OP_CHECKSIGVERIFY:      "OP_CHECKSIGVERIFY",
	OP_CHECKMULTISIG:       "OP_CHECKMULTISIG",
	OP_CHECKMULTISIGVERIFY: "OP_CHECKMULTISIGVERIFY",
}
