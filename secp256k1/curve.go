// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"
	"math/big"
)

// Curve parameters for secp256k1: y^2 = x^3 + a*x + b over F_p, with a
// cyclic subgroup of prime order n generated by G.
var (
	// P is the field modulus 2^256 - 2^32 - 977.
	P = mustBig("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")

	// N is the order of the base point G.
	N = mustBig("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")

	curveA = big.NewInt(0)
	curveB = big.NewInt(7)

	gx = mustBig("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798")
	gy = mustBig("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8")

	// G is the canonical secp256k1 generator point.
	G Point
)

func init() {
	a, _ := NewFieldElement(curveA, P)
	b, _ := NewFieldElement(curveB, P)
	x, _ := NewFieldElement(gx, P)
	y, _ := NewFieldElement(gy, P)
	p, err := NewPoint(x, y, a, b)
	if err != nil {
		panic("secp256k1: generator point does not satisfy the curve equation")
	}
	G = p
}

func mustBig(hexStr string) *big.Int {
	n, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		panic("secp256k1: invalid constant " + hexStr)
	}
	return n
}

// Sqrt returns a square root of f. This is only valid for fields whose
// modulus is congruent to 3 mod 4 (secp256k1's p is), where a^((p+1)/4)
// is a square root of a whenever one exists.
func (f FieldElement) Sqrt() FieldElement {
	exp := new(big.Int).Add(f.prime, big.NewInt(1))
	exp.Div(exp, big.NewInt(4))
	return f.Pow(exp)
}

// Point is a point on a short Weierstrass curve y^2 = x^3 + a*x + b over
// F_p. The point at infinity is represented by the inf flag rather than
// nullable coordinates, so Point is always a fully-formed value with an
// explicit variant tag.
type Point struct {
	inf  bool
	x, y FieldElement
	a, b FieldElement
}

// NewPoint constructs an affine point and verifies it lies on the curve
// y^2 = x^3 + a*x + b, returning ErrNotOnCurve if it doesn't.
func NewPoint(x, y, a, b FieldElement) (Point, error) {
	lhs, err := y.Mul(y)
	if err != nil {
		return Point{}, err
	}
	x2, err := x.Mul(x)
	if err != nil {
		return Point{}, err
	}
	x3, err := x2.Mul(x)
	if err != nil {
		return Point{}, err
	}
	ax, err := a.Mul(x)
	if err != nil {
		return Point{}, err
	}
	rhs, err := x3.Add(ax)
	if err != nil {
		return Point{}, err
	}
	rhs, err = rhs.Add(b)
	if err != nil {
		return Point{}, err
	}
	if !lhs.Equal(rhs) {
		return Point{}, newError(ErrNotOnCurve, fmt.Sprintf("(%s, %s) is not on the curve", x.num, y.num))
	}
	return Point{x: x, y: y, a: a, b: b}, nil
}

// NewInfinity returns the point at infinity for the curve identified by
// a and b.
func NewInfinity(a, b FieldElement) Point {
	return Point{inf: true, a: a, b: b}
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool { return p.inf }

// X returns p's x-coordinate. It must not be called on the point at
// infinity.
func (p Point) X() FieldElement { return p.x }

// Y returns p's y-coordinate. It must not be called on the point at
// infinity.
func (p Point) Y() FieldElement { return p.y }

// Equal reports whether p and other are the same point on the same
// curve, comparing all four fields as the data model requires.
func (p Point) Equal(other Point) bool {
	if !p.a.Equal(other.a) || !p.b.Equal(other.b) {
		return false
	}
	if p.inf || other.inf {
		return p.inf == other.inf
	}
	return p.x.Equal(other.x) && p.y.Equal(other.y)
}

func (p Point) sameCurve(other Point) error {
	if !p.a.Equal(other.a) || !p.b.Equal(other.b) {
		return newError(ErrInvalidPoint, "points are not on the same curve")
	}
	return nil
}

// Add implements the group law in the five cases spec.md §4.1 lists:
// identity, vertical line, the general chord, the tangent at a point with
// nonzero y, and the tangent at a point with y = 0.
func (p Point) Add(other Point) (Point, error) {
	if err := p.sameCurve(other); err != nil {
		return Point{}, err
	}

	// Case 1: one operand is the point at infinity.
	if p.inf {
		return other, nil
	}
	if other.inf {
		return p, nil
	}

	// Case 2: same x, different y - the vertical line through both
	// points meets the curve at infinity.
	if p.x.Equal(other.x) && !p.y.Equal(other.y) {
		return NewInfinity(p.a, p.b), nil
	}

	// Case 3: different x - the chord through the two points.
	if !p.x.Equal(other.x) {
		num, err := other.y.Sub(p.y)
		if err != nil {
			return Point{}, err
		}
		den, err := other.x.Sub(p.x)
		if err != nil {
			return Point{}, err
		}
		slope, err := num.Div(den)
		if err != nil {
			return Point{}, err
		}
		return p.addWithSlope(other, slope)
	}

	// Same point from here on.
	if p.y.IsZero() {
		// Case 5: tangent at a point with y = 0 - vertical tangent,
		// meets the curve at infinity.
		return NewInfinity(p.a, p.b), nil
	}

	// Case 4: tangent at a point with y != 0.
	three, _ := NewFieldElement(big.NewInt(3), p.x.prime)
	two, _ := NewFieldElement(big.NewInt(2), p.x.prime)
	x2, err := p.x.Mul(p.x)
	if err != nil {
		return Point{}, err
	}
	num, err := three.Mul(x2)
	if err != nil {
		return Point{}, err
	}
	num, err = num.Add(p.a)
	if err != nil {
		return Point{}, err
	}
	den, err := two.Mul(p.y)
	if err != nil {
		return Point{}, err
	}
	slope, err := num.Div(den)
	if err != nil {
		return Point{}, err
	}
	return p.addWithSlope(other, slope)
}

func (p Point) addWithSlope(other Point, slope FieldElement) (Point, error) {
	slope2, err := slope.Mul(slope)
	if err != nil {
		return Point{}, err
	}
	x3, err := slope2.Sub(p.x)
	if err != nil {
		return Point{}, err
	}
	x3, err = x3.Sub(other.x)
	if err != nil {
		return Point{}, err
	}
	xDiff, err := p.x.Sub(x3)
	if err != nil {
		return Point{}, err
	}
	y3, err := slope.Mul(xDiff)
	if err != nil {
		return Point{}, err
	}
	y3, err = y3.Sub(p.y)
	if err != nil {
		return Point{}, err
	}
	return Point{x: x3, y: y3, a: p.a, b: p.b}, nil
}

// ScalarMul computes coefficient*p using double-and-add over the bit
// decomposition of coefficient, walking the bits right to left (least
// significant first); it does not scan the bits from the most significant
// end.
func (p Point) ScalarMul(coefficient *big.Int) Point {
	coef := new(big.Int).Set(coefficient)
	current := p
	result := NewInfinity(p.a, p.b)

	for coef.Sign() > 0 {
		if coef.Bit(0) == 1 {
			sum, err := result.Add(current)
			if err != nil {
				panic(err)
			}
			result = sum
		}
		doubled, err := current.Add(current)
		if err != nil {
			panic(err)
		}
		current = doubled
		coef.Rsh(coef, 1)
	}
	return result
}

// s256Field builds a FieldElement in F_p, secp256k1's field.
func s256Field(num *big.Int) FieldElement {
	fe, err := NewFieldElement(num, P)
	if err != nil {
		panic(err)
	}
	return fe
}

// NewS256Point constructs a point on secp256k1 (a=0, b=7) from integer
// coordinates, verifying it lies on the curve.
func NewS256Point(x, y *big.Int) (Point, error) {
	a := s256Field(curveA)
	b := s256Field(curveB)
	return NewPoint(s256Field(x), s256Field(y), a, b)
}

// ScalarBaseMul computes coefficient*G, first reducing coefficient modulo
// n as spec.md §4.1 requires for the secp256k1 specialization.
func ScalarBaseMul(coefficient *big.Int) Point {
	k := new(big.Int).Mod(coefficient, N)
	return G.ScalarMul(k)
}
