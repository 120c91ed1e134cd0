// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"math/big"
	"testing"
)

func fe(num, prime int64) FieldElement {
	f, err := NewFieldElement(big.NewInt(num), big.NewInt(prime))
	if err != nil {
		panic(err)
	}
	return f
}

func TestFieldAddSubMul(t *testing.T) {
	a := fe(7, 13)
	b := fe(12, 13)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Num().Int64() != 6 {
		t.Fatalf("7 + 12 mod 13 = %d, want 6", sum.Num().Int64())
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff.Num().Int64() != 8 {
		t.Fatalf("7 - 12 mod 13 = %d, want 8", diff.Num().Int64())
	}

	prod, err := a.Mul(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prod.Num().Int64() != 6 {
		t.Fatalf("7 * 12 mod 13 = %d, want 6", prod.Num().Int64())
	}
}

func TestFieldMixedFieldError(t *testing.T) {
	a := fe(1, 13)
	b := fe(1, 17)
	if _, err := a.Add(b); err == nil {
		t.Fatal("expected MixedField error")
	}
}

func TestFieldDivIsInverseOfMul(t *testing.T) {
	a := fe(3, 19)
	b := fe(7, 19)
	quot, err := a.Div(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := quot.Mul(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(a) {
		t.Fatalf("(a/b)*b = %v, want %v", back, a)
	}
}

func TestFieldOutOfRange(t *testing.T) {
	if _, err := NewFieldElement(big.NewInt(13), big.NewInt(13)); err == nil {
		t.Fatal("expected FieldOutOfRange error for num == prime")
	}
	if _, err := NewFieldElement(big.NewInt(-1), big.NewInt(13)); err == nil {
		t.Fatal("expected FieldOutOfRange error for negative num")
	}
}

func TestFieldPowReducesExponentModPMinus1(t *testing.T) {
	// a^(p-1) == 1 for any nonzero a, by Fermat's little theorem.
	a := fe(5, 31)
	got := a.Pow(big.NewInt(30))
	if got.Num().Int64() != 1 {
		t.Fatalf("a^(p-1) = %d, want 1", got.Num().Int64())
	}
}
