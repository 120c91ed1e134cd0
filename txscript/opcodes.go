// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"crypto/sha1"
	"crypto/sha256"
	"math/big"

	"golang.org/x/crypto/ripemd160"

	"github.com/btcprim/btcprim/secp256k1"
)

// stack is the byte-string stack both the main stack and the altstack
// use.
type stack [][]byte

func (s *stack) push(v []byte) { *s = append(*s, v) }

func (s *stack) pop() ([]byte, bool) {
	if len(*s) == 0 {
		return nil, false
	}
	v := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return v, true
}

func (s *stack) top() ([]byte, bool) {
	if len(*s) == 0 {
		return nil, false
	}
	return (*s)[len(*s)-1], true
}

// encodeNum returns the minimal signed little-endian encoding of n, with a
// dedicated sign bit (0x80 on the top byte) rather than two's complement.
// Zero encodes as the empty byte string.
func encodeNum(n int64) []byte {
	if n == 0 {
		return []byte{}
	}
	negative := n < 0
	abs := n
	if negative {
		abs = -n
	}
	var result []byte
	for abs > 0 {
		result = append(result, byte(abs&0xff))
		abs >>= 8
	}
	if result[len(result)-1]&0x80 != 0 {
		if negative {
			result = append(result, 0x80)
		} else {
			result = append(result, 0x00)
		}
	} else if negative {
		result[len(result)-1] |= 0x80
	}
	return result
}

// decodeNum is the inverse of encodeNum.
func decodeNum(element []byte) int64 {
	if len(element) == 0 {
		return 0
	}
	be := make([]byte, len(element))
	copy(be, element)

	negative := be[len(be)-1]&0x80 != 0
	be[len(be)-1] &= 0x7f

	var result int64
	for i := len(be) - 1; i >= 0; i-- {
		result <<= 8
		result |= int64(be[i])
	}
	if negative {
		result = -result
	}
	return result
}

func bytesToBigNum(element []byte) *big.Int {
	return big.NewInt(decodeNum(element))
}

func isTrue(element []byte) bool {
	if len(element) == 0 {
		return false
	}
	for i, b := range element {
		if b == 0 {
			if i == len(element)-1 && b == 0x80 {
				continue
			}
			continue
		}
		return true
	}
	return false
}

// opHandler holds one entry of the opcode dispatch table below: a class
// tag plus the function field for that handler shape. The interpreter
// picks which of unary, alt, withZ, or flow to call based on the class,
// rather than branching on the handler's dynamic type.
type opHandler struct {
	class handlerClass
	unary func(s *stack) bool
	alt   func(s, alt *stack) bool
	withZ func(s *stack, z *big.Int) bool
	flow  func(s *stack, cmds *[]Cmd) bool
}

type handlerClass int

const (
	classUnary handlerClass = iota
	classAltstack
	classWithZ
	classFlow
)

var opHandlers map[byte]opHandler

func init() {
	opHandlers = map[byte]opHandler{
		OP_0:       {class: classUnary, unary: opFalse},
		OP_1NEGATE: {class: classUnary, unary: opNum(-1)},
		OP_1:       {class: classUnary, unary: opNum(1)},
		OP_2:       {class: classUnary, unary: opNum(2)},
		OP_3:       {class: classUnary, unary: opNum(3)},
		OP_4:       {class: classUnary, unary: opNum(4)},
		OP_5:       {class: classUnary, unary: opNum(5)},
		OP_6:       {class: classUnary, unary: opNum(6)},
		OP_7:       {class: classUnary, unary: opNum(7)},
		OP_8:       {class: classUnary, unary: opNum(8)},
		OP_9:       {class: classUnary, unary: opNum(9)},
		OP_10:      {class: classUnary, unary: opNum(10)},
		OP_11:      {class: classUnary, unary: opNum(11)},
		OP_12:      {class: classUnary, unary: opNum(12)},
		OP_13:      {class: classUnary, unary: opNum(13)},
		OP_14:      {class: classUnary, unary: opNum(14)},
		OP_15:      {class: classUnary, unary: opNum(15)},
		OP_16:      {class: classUnary, unary: opNum(16)},

		OP_VERIFY: {class: classUnary, unary: opVerify},
		OP_RETURN: {class: classUnary, unary: func(s *stack) bool { return false }},

		OP_TOALTSTACK:   {class: classAltstack, alt: opToAltStack},
		OP_FROMALTSTACK: {class: classAltstack, alt: opFromAltStack},

		OP_IFDUP:    {class: classUnary, unary: opIfDup},
		OP_DEPTH:    {class: classUnary, unary: opDepth},
		OP_DROP:     {class: classUnary, unary: opDrop},
		OP_DUP:      {class: classUnary, unary: opDup},
		OP_NIP:      {class: classUnary, unary: opNip},
		OP_OVER:     {class: classUnary, unary: opOver},
		OP_SWAP:     {class: classUnary, unary: opSwap},
		OP_TUCK:     {class: classUnary, unary: opTuck},
		OP_2DUP:     {class: classUnary, unary: op2Dup},
		OP_2SWAP:    {class: classUnary, unary: op2Swap},
		OP_2OVER:    {class: classUnary, unary: op2Over},

		OP_SIZE: {class: classUnary, unary: opSize},

		OP_EQUAL:       {class: classUnary, unary: opEqual},
		OP_EQUALVERIFY: {class: classUnary, unary: opEqualVerify},

		OP_1ADD:      {class: classUnary, unary: opUnaryNum(func(a int64) int64 { return a + 1 })},
		OP_1SUB:      {class: classUnary, unary: opUnaryNum(func(a int64) int64 { return a - 1 })},
		OP_NEGATE:    {class: classUnary, unary: opUnaryNum(func(a int64) int64 { return -a })},
		OP_ABS:       {class: classUnary, unary: opUnaryNum(func(a int64) int64 { if a < 0 { return -a }; return a })},
		OP_NOT:       {class: classUnary, unary: opUnaryBool(func(a int64) bool { return a == 0 })},
		OP_0NOTEQUAL: {class: classUnary, unary: opUnaryBool(func(a int64) bool { return a != 0 })},

		OP_ADD:                {class: classUnary, unary: opBinaryNum(func(a, b int64) int64 { return a + b })},
		OP_SUB:                {class: classUnary, unary: opBinaryNum(func(a, b int64) int64 { return a - b })},
		OP_BOOLAND:            {class: classUnary, unary: opBinaryBool(func(a, b int64) bool { return a != 0 && b != 0 })},
		OP_BOOLOR:             {class: classUnary, unary: opBinaryBool(func(a, b int64) bool { return a != 0 || b != 0 })},
		OP_NUMEQUAL:           {class: classUnary, unary: opBinaryBool(func(a, b int64) bool { return a == b })},
		OP_NUMEQUALVERIFY:     {class: classUnary, unary: opNumEqualVerify},
		OP_NUMNOTEQUAL:        {class: classUnary, unary: opBinaryBool(func(a, b int64) bool { return a != b })},
		OP_LESSTHAN:           {class: classUnary, unary: opBinaryBool(func(a, b int64) bool { return a < b })},
		OP_GREATERTHAN:        {class: classUnary, unary: opBinaryBool(func(a, b int64) bool { return a > b })},
		OP_LESSTHANOREQUAL:    {class: classUnary, unary: opBinaryBool(func(a, b int64) bool { return a <= b })},
		OP_GREATERTHANOREQUAL: {class: classUnary, unary: opBinaryBool(func(a, b int64) bool { return a >= b })},
		OP_MIN:                {class: classUnary, unary: opBinaryNum(func(a, b int64) int64 { if a < b { return a }; return b })},
		OP_MAX:                {class: classUnary, unary: opBinaryNum(func(a, b int64) int64 { if a > b { return a }; return b })},
		OP_WITHIN:             {class: classUnary, unary: opWithin},

		OP_RIPEMD160: {class: classUnary, unary: opHash(func(b []byte) []byte { h := ripemd160.New(); h.Write(b); return h.Sum(nil) })},
		OP_SHA1:      {class: classUnary, unary: opHash(func(b []byte) []byte { h := sha1.Sum(b); return h[:] })},
		OP_SHA256:    {class: classUnary, unary: opHash(func(b []byte) []byte { h := sha256.Sum256(b); return h[:] })},
		OP_HASH160:   {class: classUnary, unary: opHash(hash160)},
		OP_HASH256:   {class: classUnary, unary: opHash(hash256)},

		OP_CHECKSIG:             {class: classWithZ, withZ: opCheckSig},
		OP_CHECKSIGVERIFY:       {class: classWithZ, withZ: opCheckSigVerify},
		OP_CHECKMULTISIG:        {class: classWithZ, withZ: opCheckMultiSig},
		OP_CHECKMULTISIGVERIFY:  {class: classWithZ, withZ: opCheckMultiSigVerify},

		OP_IF:    {class: classFlow, flow: opIf},
		OP_NOTIF: {class: classFlow, flow: opNotIf},
	}
}

func hash160(b []byte) []byte {
	sum := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}

func hash256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

func opFalse(s *stack) bool {
	s.push(encodeNum(0))
	return true
}

func opNum(n int64) func(s *stack) bool {
	return func(s *stack) bool {
		s.push(encodeNum(n))
		return true
	}
}

func opVerify(s *stack) bool {
	v, ok := s.pop()
	if !ok {
		return false
	}
	return isTrue(v)
}

func opToAltStack(s, alt *stack) bool {
	v, ok := s.pop()
	if !ok {
		return false
	}
	alt.push(v)
	return true
}

func opFromAltStack(s, alt *stack) bool {
	v, ok := alt.pop()
	if !ok {
		return false
	}
	s.push(v)
	return true
}

func opIfDup(s *stack) bool {
	v, ok := s.top()
	if !ok {
		return false
	}
	if isTrue(v) {
		s.push(v)
	}
	return true
}

func opDepth(s *stack) bool {
	s.push(encodeNum(int64(len(*s))))
	return true
}

func opDrop(s *stack) bool {
	_, ok := s.pop()
	return ok
}

func opDup(s *stack) bool {
	v, ok := s.top()
	if !ok {
		return false
	}
	s.push(v)
	return true
}

func opNip(s *stack) bool {
	if len(*s) < 2 {
		return false
	}
	top, _ := s.pop()
	_, _ = s.pop()
	s.push(top)
	return true
}

func opOver(s *stack) bool {
	if len(*s) < 2 {
		return false
	}
	s.push((*s)[len(*s)-2])
	return true
}

func opSwap(s *stack) bool {
	if len(*s) < 2 {
		return false
	}
	n := len(*s)
	(*s)[n-1], (*s)[n-2] = (*s)[n-2], (*s)[n-1]
	return true
}

func opTuck(s *stack) bool {
	if len(*s) < 2 {
		return false
	}
	top, _ := s.pop()
	under, _ := s.pop()
	s.push(top)
	s.push(under)
	s.push(top)
	return true
}

func op2Dup(s *stack) bool {
	if len(*s) < 2 {
		return false
	}
	n := len(*s)
	s.push((*s)[n-2])
	s.push((*s)[n-1])
	return true
}

func op2Swap(s *stack) bool {
	if len(*s) < 4 {
		return false
	}
	n := len(*s)
	(*s)[n-1], (*s)[n-3] = (*s)[n-3], (*s)[n-1]
	(*s)[n-2], (*s)[n-4] = (*s)[n-4], (*s)[n-2]
	return true
}

func op2Over(s *stack) bool {
	if len(*s) < 4 {
		return false
	}
	n := len(*s)
	s.push((*s)[n-4])
	s.push((*s)[n-3])
	return true
}

func opSize(s *stack) bool {
	v, ok := s.top()
	if !ok {
		return false
	}
	s.push(encodeNum(int64(len(v))))
	return true
}

func opEqual(s *stack) bool {
	a, ok := s.pop()
	if !ok {
		return false
	}
	b, ok := s.pop()
	if !ok {
		return false
	}
	if bytesEqual(a, b) {
		s.push(encodeNum(1))
	} else {
		s.push(encodeNum(0))
	}
	return true
}

func opEqualVerify(s *stack) bool {
	if !opEqual(s) {
		return false
	}
	return opVerify(s)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func opUnaryNum(f func(int64) int64) func(s *stack) bool {
	return func(s *stack) bool {
		v, ok := s.pop()
		if !ok {
			return false
		}
		s.push(encodeNum(f(decodeNum(v))))
		return true
	}
}

func opUnaryBool(f func(int64) bool) func(s *stack) bool {
	return func(s *stack) bool {
		v, ok := s.pop()
		if !ok {
			return false
		}
		if f(decodeNum(v)) {
			s.push(encodeNum(1))
		} else {
			s.push(encodeNum(0))
		}
		return true
	}
}

func opBinaryNum(f func(a, b int64) int64) func(s *stack) bool {
	return func(s *stack) bool {
		b, ok := s.pop()
		if !ok {
			return false
		}
		a, ok := s.pop()
		if !ok {
			return false
		}
		s.push(encodeNum(f(decodeNum(a), decodeNum(b))))
		return true
	}
}

func opBinaryBool(f func(a, b int64) bool) func(s *stack) bool {
	return func(s *stack) bool {
		b, ok := s.pop()
		if !ok {
			return false
		}
		a, ok := s.pop()
		if !ok {
			return false
		}
		if f(decodeNum(a), decodeNum(b)) {
			s.push(encodeNum(1))
		} else {
			s.push(encodeNum(0))
		}
		return true
	}
}

func opNumEqualVerify(s *stack) bool {
	if !opBinaryBool(func(a, b int64) bool { return a == b })(s) {
		return false
	}
	return opVerify(s)
}

func opWithin(s *stack) bool {
	if len(*s) < 3 {
		return false
	}
	max := decodeNum(mustPop(s))
	min := decodeNum(mustPop(s))
	x := decodeNum(mustPop(s))
	if x >= min && x < max {
		s.push(encodeNum(1))
	} else {
		s.push(encodeNum(0))
	}
	return true
}

func mustPop(s *stack) []byte {
	v, _ := s.pop()
	return v
}

func opHash(f func([]byte) []byte) func(s *stack) bool {
	return func(s *stack) bool {
		v, ok := s.pop()
		if !ok {
			return false
		}
		s.push(f(v))
		return true
	}
}

func opCheckSig(s *stack, z *big.Int) bool {
	sec, ok := s.pop()
	if !ok {
		return false
	}
	derWithType, ok := s.pop()
	if !ok {
		return false
	}
	if len(derWithType) == 0 {
		return false
	}
	der := derWithType[:len(derWithType)-1]

	pub, err := secp256k1.ParseSEC(sec)
	if err != nil {
		return false
	}
	sig, err := secp256k1.ParseDER(der)
	if err != nil {
		return false
	}

	if secp256k1.Verify(pub, z, sig) {
		s.push(encodeNum(1))
	} else {
		s.push(encodeNum(0))
	}
	return true
}

func opCheckSigVerify(s *stack, z *big.Int) bool {
	if !opCheckSig(s, z) {
		return false
	}
	return opVerify(s)
}

func opCheckMultiSig(s *stack, z *big.Int) bool {
	if len(*s) < 1 {
		return false
	}
	n := decodeNum(mustPop(s))
	if n < 0 || n > 20 || int64(len(*s)) < n {
		return false
	}
	secs := make([][]byte, n)
	for i := int64(n) - 1; i >= 0; i-- {
		secs[i] = mustPop(s)
	}

	if len(*s) < 1 {
		return false
	}
	m := decodeNum(mustPop(s))
	if m < 0 || m > n || int64(len(*s)) < m {
		return false
	}
	ders := make([][]byte, m)
	for i := int64(m) - 1; i >= 0; i-- {
		ders[i] = mustPop(s)
	}

	// Off-by-one compatibility pop for the historical CHECKMULTISIG bug.
	if len(*s) < 1 {
		return false
	}
	mustPop(s)

	secIdx := 0
	for _, derWithType := range ders {
		if len(derWithType) == 0 {
			return false
		}
		der := derWithType[:len(derWithType)-1]
		sig, err := secp256k1.ParseDER(der)
		if err != nil {
			return false
		}

		matched := false
		for secIdx < len(secs) {
			pub, err := secp256k1.ParseSEC(secs[secIdx])
			secIdx++
			if err != nil {
				continue
			}
			if secp256k1.Verify(pub, z, sig) {
				matched = true
				break
			}
		}
		if !matched {
			s.push(encodeNum(0))
			return true
		}
	}
	s.push(encodeNum(1))
	return true
}

func opCheckMultiSigVerify(s *stack, z *big.Int) bool {
	if !opCheckMultiSig(s, z) {
		return false
	}
	return opVerify(s)
}

// opIf and opNotIf consume their own branch bodies directly out of cmds,
// since IF/NOTIF are the only opcodes that need to see (and skip over)
// upcoming commands rather than just the stack.
func opIf(s *stack, cmds *[]Cmd) bool {
	return runConditional(s, cmds, false)
}

func opNotIf(s *stack, cmds *[]Cmd) bool {
	return runConditional(s, cmds, true)
}

func runConditional(s *stack, cmds *[]Cmd, negate bool) bool {
	trueItems, falseItems, rest, ok := splitConditional(*cmds)
	if !ok {
		return false
	}
	*cmds = rest

	v, popped := s.pop()
	if !popped {
		return false
	}
	cond := isTrue(v)
	if negate {
		cond = !cond
	}

	var branch []Cmd
	if cond {
		branch = trueItems
	} else {
		branch = falseItems
	}
	*cmds = append(append([]Cmd{}, branch...), *cmds...)
	return true
}

// splitConditional scans cmds for the matching OP_ELSE/OP_ENDIF of the
// IF/NOTIF that already consumed its own opcode, honoring nested
// conditionals, and returns the true-branch, false-branch (if any), and
// the remaining commands after the matching ENDIF.
func splitConditional(cmds []Cmd) (trueItems, falseItems, rest []Cmd, ok bool) {
	depth := 0
	i := 0
	sawElse := false
	for i < len(cmds) {
		c := cmds[i]
		if !c.IsData() {
			switch c.Op {
			case OP_IF, OP_NOTIF:
				depth++
			case OP_ELSE:
				if depth == 0 {
					sawElse = true
					falseItems = nil
					i++
					continue
				}
			case OP_ENDIF:
				if depth == 0 {
					return trueItems, falseItems, cmds[i+1:], true
				}
				depth--
			}
		}
		if sawElse {
			falseItems = append(falseItems, c)
		} else {
			trueItems = append(trueItems, c)
		}
		i++
	}
	return nil, nil, nil, false
}
