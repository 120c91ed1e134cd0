// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"math/big"
	"testing"
)

// newF223Point builds a point on y^2 = x^3 + 7 over F_223, the toy curve
// spec.md §8 scenario 1 exercises.
func newF223Point(t *testing.T, x, y int64) (Point, error) {
	t.Helper()
	prime := big.NewInt(223)
	a, err := NewFieldElement(big.NewInt(0), prime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewFieldElement(big.NewInt(7), prime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	xf, err := NewFieldElement(big.NewInt(x), prime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	yf, err := NewFieldElement(big.NewInt(y), prime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewPoint(xf, yf, a, b)
}

func TestF223CurveMembership(t *testing.T) {
	valid := [][2]int64{{192, 105}, {17, 56}, {1, 193}}
	for _, xy := range valid {
		if _, err := newF223Point(t, xy[0], xy[1]); err != nil {
			t.Errorf("(%d, %d) expected on curve, got error: %v", xy[0], xy[1], err)
		}
	}

	invalid := [][2]int64{{200, 119}, {42, 99}}
	for _, xy := range invalid {
		if _, err := newF223Point(t, xy[0], xy[1]); err == nil {
			t.Errorf("(%d, %d) expected NotOnCurve error, got none", xy[0], xy[1])
		}
	}
}

func TestPointAddIdentity(t *testing.T) {
	p, err := newF223Point(t, 192, 105)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inf := NewInfinity(p.a, p.b)

	sum, err := p.Add(inf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.Equal(p) {
		t.Fatal("p + infinity != p")
	}

	sum, err = inf.Add(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.Equal(p) {
		t.Fatal("infinity + p != p")
	}
}

func TestPointAddVerticalLine(t *testing.T) {
	p, err := newF223Point(t, 192, 105)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	negY, err := NewFieldElement(new(big.Int).Sub(big.NewInt(223), p.y.num), big.NewInt(223))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	negP, err := NewPoint(p.x, negY, p.a, p.b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum, err := p.Add(negP)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.IsInfinity() {
		t.Fatal("p + (-p) should be the point at infinity")
	}
}

func TestScalarMulOrderReachesInfinity(t *testing.T) {
	// On y^2 = x^3 + 7 over F_223, (15, 86) has order 7.
	p, err := newF223Point(t, 15, 86)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result := p.ScalarMul(big.NewInt(7))
	if !result.IsInfinity() {
		t.Fatalf("7*(15, 86) should be the point at infinity, got %v", result)
	}
}

func TestS256ScalarMulReductionModN(t *testing.T) {
	k := new(big.Int).Add(N, big.NewInt(5))
	reduced := ScalarBaseMul(big.NewInt(5))
	fromUnreduced := ScalarBaseMul(k)
	if !reduced.Equal(fromUnreduced) {
		t.Fatal("ScalarBaseMul should reduce the coefficient modulo n")
	}
}

func TestS256NPGIsInfinity(t *testing.T) {
	result := G.ScalarMul(N)
	if !result.IsInfinity() {
		t.Fatal("n*G should be the point at infinity")
	}
}
