// Package congruence implements the congruence abstract domain aZ+b over
// arbitrary-precision integers.
package congruence

import (
	"fmt"

	"ikos/internal/number"
)

// Congruence represents the set {a*k + b | k ∈ Z}, normalized so that a >= 0
// and, when a != 0, 0 <= b < a. a == 0 denotes the singleton {b}.
type Congruence struct {
	bottom bool
	a, b   number.Z
}

// Top is 1Z+0, i.e. all integers.
func Top() Congruence {
	return Congruence{a: number.OneZ, b: number.ZeroZ}
}

// Bottom is the empty set.
func Bottom() Congruence {
	return Congruence{bottom: true}
}

func normalize(a, b number.Z) Congruence {
	if a.IsZero() {
		return Congruence{a: number.ZeroZ, b: b}
	}
	a = a.Abs()
	b = b.Mod(a)
	if b.Sign() < 0 {
		b = b.Add(a)
	}
	return Congruence{a: a, b: b}
}

// New builds a*Z+b, normalizing a to be non-negative and b into [0, a).
func New(a, b number.Z) Congruence {
	return normalize(a, b)
}

// Singleton builds the one-point congruence {v}.
func Singleton(v number.Z) Congruence {
	return Congruence{a: number.ZeroZ, b: v}
}

func (c Congruence) IsBottom() bool { return c.bottom }
func (c Congruence) IsTop() bool    { return !c.bottom && c.a.Eq(number.OneZ) }

// IsSingleton reports whether this congruence denotes exactly one integer.
func (c Congruence) IsSingleton() bool { return !c.bottom && c.a.IsZero() }

func (c Congruence) Modulus() number.Z   { return c.a }
func (c Congruence) Residue() number.Z   { return c.b }

// Contains reports whether v is a member of the congruence class.
func (c Congruence) Contains(v number.Z) bool {
	if c.bottom {
		return false
	}
	if c.a.IsZero() {
		return v.Eq(c.b)
	}
	return v.Sub(c.b).Mod(c.a).IsZero()
}

// Leq is the congruence partial order: a stricter congruence (one whose
// modulus is a multiple of the other's, or a singleton) is below a looser
// one.
func (c Congruence) Leq(o Congruence) bool {
	if c.bottom {
		return true
	}
	if o.bottom {
		return false
	}
	if o.a.IsZero() {
		return c.IsSingleton() && c.b.Eq(o.b)
	}
	if c.a.IsZero() {
		return o.Contains(c.b)
	}
	return c.a.Mod(o.a).IsZero() && c.b.Mod(o.a).Eq(o.b)
}

func (c Congruence) Equals(o Congruence) bool {
	if c.bottom || o.bottom {
		return c.bottom == o.bottom
	}
	return c.a.Eq(o.a) && c.b.Eq(o.b)
}

// Join computes the congruence of the union: gcd(a1, a2, |b1-b2|) Z + b1.
func (c Congruence) Join(o Congruence) Congruence {
	if c.bottom {
		return o
	}
	if o.bottom {
		return c
	}
	diff := c.b.Sub(o.b).Abs()
	g := number.GcdZ(number.GcdZ(c.a, o.a), diff)
	return normalize(g, c.b)
}

// Widen has no useful refinement over Join on this domain: the modulus
// lattice has finite descending chains bounded by the values involved, so
// widening is Join.
func (c Congruence) Widen(o Congruence) Congruence { return c.Join(o) }

// Meet solves the pair of congruences via the extended Euclidean algorithm
// (a generalized Chinese Remainder Theorem); returns Bottom if they are
// incompatible.
func (c Congruence) Meet(o Congruence) Congruence {
	if c.bottom || o.bottom {
		return Bottom()
	}
	if c.a.IsZero() && o.a.IsZero() {
		if c.b.Eq(o.b) {
			return c
		}
		return Bottom()
	}
	if c.a.IsZero() {
		if o.Contains(c.b) {
			return c
		}
		return Bottom()
	}
	if o.a.IsZero() {
		if c.Contains(o.b) {
			return o
		}
		return Bottom()
	}

	// Solve x = b1 (mod a1), x = b2 (mod a2) via extended gcd.
	g, u, _ := extGcd(c.a, o.a)
	diff := o.b.Sub(c.b)
	if !diff.Mod(g).IsZero() {
		return Bottom()
	}
	lcm := c.a.Div(g).Mul(o.a)
	x := c.b.Add(c.a.Mul(u).Mul(diff.Div(g)))
	return normalize(lcm, x)
}

// Narrow is Meet: congruence has no separate narrowing operator.
func (c Congruence) Narrow(o Congruence) Congruence { return c.Meet(o) }

// extGcd returns (g, x, y) such that a*x + b*y = g = gcd(a, b).
func extGcd(a, b number.Z) (g, x, y number.Z) {
	if a.IsZero() {
		return b, number.ZeroZ, number.OneZ
	}
	g1, x1, y1 := extGcd(b.Mod(a), a)
	return g1, y1.Sub(b.Div(a).Mul(x1)), x1
}

func (c Congruence) String() string {
	if c.bottom {
		return "_|_"
	}
	if c.a.IsZero() {
		return fmt.Sprintf("{%s}", c.b)
	}
	return fmt.Sprintf("%sZ+%s", c.a, c.b)
}
