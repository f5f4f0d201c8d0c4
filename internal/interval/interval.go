// Package interval implements the classic interval abstract domain,
// generic over any number.Numeric ring (instantiated for arbitrary-precision
// integers and rationals elsewhere in the analyzer).
package interval

import (
	"fmt"

	"ikos/internal/number"
)

// Interval is [lb, ub] over an extended numeric line, or the empty interval
// (bottom) when no such lb/ub pair is tracked.
type Interval[T number.Numeric[T]] struct {
	bottom bool
	lb, ub number.Bound[T]
}

// Bottom is the empty interval, representing an infeasible value.
func Bottom[T number.Numeric[T]]() Interval[T] {
	return Interval[T]{bottom: true}
}

// Top is (-∞, +∞).
func Top[T number.Numeric[T]]() Interval[T] {
	return Interval[T]{lb: number.MinusInfinity[T](), ub: number.PlusInfinity[T]()}
}

// FromBounds builds [lb, ub], normalizing to Bottom when lb > ub.
func FromBounds[T number.Numeric[T]](lb, ub number.Bound[T]) Interval[T] {
	if lb.Gt(ub) {
		return Bottom[T]()
	}
	return Interval[T]{lb: lb, ub: ub}
}

// Singleton builds the one-point interval [v, v].
func Singleton[T number.Numeric[T]](v T) Interval[T] {
	b := number.FiniteBound(v)
	return Interval[T]{lb: b, ub: b}
}

// GTE builds [v, +∞).
func GTE[T number.Numeric[T]](v T) Interval[T] {
	return Interval[T]{lb: number.FiniteBound(v), ub: number.PlusInfinity[T]()}
}

// LTE builds (-∞, v].
func LTE[T number.Numeric[T]](v T) Interval[T] {
	return Interval[T]{lb: number.MinusInfinity[T](), ub: number.FiniteBound(v)}
}

func (i Interval[T]) IsBottom() bool { return i.bottom }

func (i Interval[T]) IsTop() bool {
	return !i.bottom && i.lb.IsMinusInf() && i.ub.IsPlusInf()
}

// Lb/Ub carry no meaning on Bottom (they return the zero Bound); callers
// must check IsBottom first.
func (i Interval[T]) Lb() number.Bound[T] { return i.lb }
func (i Interval[T]) Ub() number.Bound[T] { return i.ub }

// IsSingleton reports whether the interval contains exactly one value.
func (i Interval[T]) IsSingleton() bool {
	return !i.bottom && i.lb.IsFinite() && i.ub.IsFinite() && i.lb.Eq(i.ub)
}

// SingletonValue returns the value when IsSingleton is true.
func (i Interval[T]) SingletonValue() T { return i.lb.Value() }

// Leq is the interval partial order: subset-of.
func (i Interval[T]) Leq(o Interval[T]) bool {
	if i.bottom {
		return true
	}
	if o.bottom {
		return false
	}
	return i.lb.Gte(o.lb) && i.ub.Lte(o.ub)
}

func (i Interval[T]) Equals(o Interval[T]) bool {
	if i.bottom || o.bottom {
		return i.bottom == o.bottom
	}
	return i.lb.Eq(o.lb) && i.ub.Eq(o.ub)
}

// Join is the convex union.
func (i Interval[T]) Join(o Interval[T]) Interval[T] {
	if i.bottom {
		return o
	}
	if o.bottom {
		return i
	}
	return Interval[T]{lb: number.Min(i.lb, o.lb), ub: number.Max(i.ub, o.ub)}
}

// Meet is the intersection.
func (i Interval[T]) Meet(o Interval[T]) Interval[T] {
	if i.bottom || o.bottom {
		return Bottom[T]()
	}
	return FromBounds(number.Max(i.lb, o.lb), number.Min(i.ub, o.ub))
}

// Widen is the standard interval widening: bounds that moved outward jump
// straight to infinity, bounds that held steady are kept.
func (i Interval[T]) Widen(o Interval[T]) Interval[T] {
	if i.bottom {
		return o
	}
	if o.bottom {
		return i
	}
	lb := i.lb
	if o.lb.Lt(i.lb) {
		lb = number.MinusInfinity[T]()
	}
	ub := i.ub
	if o.ub.Gt(i.ub) {
		ub = number.PlusInfinity[T]()
	}
	return Interval[T]{lb: lb, ub: ub}
}

// WidenThreshold widens like Widen, but a bound that moved outward jumps
// to the tightest member of thresholds that still over-approximates the
// new bound instead of straight to infinity; only when no threshold
// covers it does the bound escape to ±∞. Thresholds need not be sorted.
func (i Interval[T]) WidenThreshold(o Interval[T], thresholds []T) Interval[T] {
	if i.bottom {
		return o
	}
	if o.bottom {
		return i
	}
	lb := i.lb
	if o.lb.Lt(i.lb) {
		lb = number.MinusInfinity[T]()
		for _, t := range thresholds {
			tb := number.FiniteBound(t)
			if tb.Lte(o.lb) && tb.Gt(lb) {
				lb = tb
			}
		}
	}
	ub := i.ub
	if o.ub.Gt(i.ub) {
		ub = number.PlusInfinity[T]()
		for _, t := range thresholds {
			tb := number.FiniteBound(t)
			if tb.Gte(o.ub) && tb.Lt(ub) {
				ub = tb
			}
		}
	}
	return Interval[T]{lb: lb, ub: ub}
}

// Narrow tightens an infinite bound toward the more precise operand's
// matching bound; finite bounds on the receiver are kept as-is.
func (i Interval[T]) Narrow(o Interval[T]) Interval[T] {
	if i.bottom || o.bottom {
		return Bottom[T]()
	}
	lb := i.lb
	if i.lb.IsMinusInf() {
		lb = o.lb
	}
	ub := i.ub
	if i.ub.IsPlusInf() {
		ub = o.ub
	}
	return FromBounds(lb, ub)
}

func (i Interval[T]) Neg() Interval[T] {
	if i.bottom {
		return i
	}
	return Interval[T]{lb: i.ub.Neg(), ub: i.lb.Neg()}
}

func (i Interval[T]) Add(o Interval[T]) Interval[T] {
	if i.bottom || o.bottom {
		return Bottom[T]()
	}
	return Interval[T]{lb: i.lb.Add(o.lb), ub: i.ub.Add(o.ub)}
}

func (i Interval[T]) Sub(o Interval[T]) Interval[T] {
	return i.Add(o.Neg())
}

// Mul computes the interval product as the convex hull of the four
// endpoint products.
func (i Interval[T]) Mul(o Interval[T]) Interval[T] {
	if i.bottom || o.bottom {
		return Bottom[T]()
	}
	candidates := [4]number.Bound[T]{
		i.lb.Mul(o.lb), i.lb.Mul(o.ub), i.ub.Mul(o.lb), i.ub.Mul(o.ub),
	}
	lo, hi := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		lo = number.Min(lo, c)
		hi = number.Max(hi, c)
	}
	return Interval[T]{lb: lo, ub: hi}
}

// Contains reports whether v lies within [lb, ub].
func (i Interval[T]) Contains(v T) bool {
	if i.bottom {
		return false
	}
	fb := number.FiniteBound(v)
	return i.lb.Lte(fb) && fb.Lte(i.ub)
}

func (i Interval[T]) String() string {
	if i.bottom {
		return "_|_"
	}
	return fmt.Sprintf("[%s, %s]", i.lb.String(), i.ub.String())
}
