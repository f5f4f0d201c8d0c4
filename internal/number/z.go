// Package number implements the arbitrary-precision and machine-width
// integer kernel that every abstract domain in the analyzer is built on.
package number

import (
	"math/big"
)

// Z is an arbitrary-precision signed integer.
type Z struct {
	v *big.Int
}

// ZeroZ is the additive identity.
var ZeroZ = Z{v: big.NewInt(0)}

// OneZ is the multiplicative identity.
var OneZ = Z{v: big.NewInt(1)}

// NewZ builds a Z from a native int64.
func NewZ(i int64) Z {
	return Z{v: big.NewInt(i)}
}

// ZFromBigInt builds a Z from a copy of v, so later changes to v do not
// affect the result.
func ZFromBigInt(v *big.Int) Z {
	return Z{v: new(big.Int).Set(v)}
}

func (z Z) big() *big.Int {
	if z.v == nil {
		return big.NewInt(0)
	}
	return z.v
}

// BigInt returns the underlying value. The result must not be mutated.
func (z Z) BigInt() *big.Int { return z.big() }

func (z Z) Add(o Z) Z { return Z{v: new(big.Int).Add(z.big(), o.big())} }
func (z Z) Sub(o Z) Z { return Z{v: new(big.Int).Sub(z.big(), o.big())} }
func (z Z) Mul(o Z) Z { return Z{v: new(big.Int).Mul(z.big(), o.big())} }
func (z Z) Neg() Z    { return Z{v: new(big.Int).Neg(z.big())} }

func (z Z) Abs() Z {
	if z.Sign() < 0 {
		return z.Neg()
	}
	return z
}

// Div performs truncating division, like C and Go's native integer division.
// The caller is responsible for rejecting division by zero before calling;
// Div panics on a zero divisor since it is never reachable once the caller
// has gone through the DivisionByZero structural error path.
func (z Z) Div(o Z) Z {
	return Z{v: new(big.Int).Quo(z.big(), o.big())}
}

// Mod is the truncating remainder matching Div (sign of the dividend).
func (z Z) Mod(o Z) Z {
	return Z{v: new(big.Int).Rem(z.big(), o.big())}
}

func (z Z) Cmp(o Z) int   { return z.big().Cmp(o.big()) }
func (z Z) Sign() int     { return z.big().Sign() }
func (z Z) IsZero() bool  { return z.Sign() == 0 }
func (z Z) String() string { return z.big().String() }

func (z Z) Lt(o Z) bool  { return z.Cmp(o) < 0 }
func (z Z) Lte(o Z) bool { return z.Cmp(o) <= 0 }
func (z Z) Gt(o Z) bool  { return z.Cmp(o) > 0 }
func (z Z) Gte(o Z) bool { return z.Cmp(o) >= 0 }
func (z Z) Eq(o Z) bool  { return z.Cmp(o) == 0 }

// MinZ returns the smaller of a and b.
func MinZ(a, b Z) Z {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// MaxZ returns the larger of a and b.
func MaxZ(a, b Z) Z {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// GcdZ returns the non-negative greatest common divisor of a and b.
func GcdZ(a, b Z) Z {
	return Z{v: new(big.Int).GCD(nil, nil, a.Abs().big(), b.Abs().big())}
}
