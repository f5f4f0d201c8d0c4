// Package mint adapts the generic integer interval domain to fixed-width,
// signed-or-unsigned machine integers, the representation LLVM-lowered
// values actually carry. Arithmetic is computed exactly over Z and then
// wrapped to the type with two's-complement semantics: a result that fits
// is kept exactly, a result that wraps entirely past the seam lands on
// its wrapped image, and a result whose image straddles the seam (or
// covers the whole type) collapses to the full representable range.
package mint

import (
	"fmt"

	"ikos/internal/interval"
	"ikos/internal/number"
)

// Interval is an interval over a specific machine-integer width/signedness.
// Values are always within the representable range for that shape.
type Interval struct {
	width  int
	signed bool
	v      interval.Interval[number.Z]
}

func shapeBounds(width int, signed bool) (lo, hi number.Z) {
	minM := number.MustMachineInt(0, width, signed).MinValue()
	maxM := number.MustMachineInt(0, width, signed).MaxValue()
	return minM.Z(), maxM.Z()
}

func fullRange(width int, signed bool) interval.Interval[number.Z] {
	lo, hi := shapeBounds(width, signed)
	return interval.FromBounds(number.FiniteBound(lo), number.FiniteBound(hi))
}

// Wrap reduces an arbitrary-precision interval to the given machine shape
// under two's-complement wraparound. The image of [lb, ub] modulo 2^width
// is either the whole range (unbounded input, or more values than the
// type can hold), a single contiguous segment (both bounds wrap to the
// same revolution), or two segments split at the seam, whose convex hull
// is again the whole range.
func Wrap(v interval.Interval[number.Z], width int, signed bool) interval.Interval[number.Z] {
	if v.IsBottom() {
		return v
	}
	lo, hi := shapeBounds(width, signed)
	if !v.Lb().IsFinite() || !v.Ub().IsFinite() {
		return interval.FromBounds(number.FiniteBound(lo), number.FiniteBound(hi))
	}
	span := v.Ub().Value().Sub(v.Lb().Value())
	if span.Gt(hi.Sub(lo)) {
		return interval.FromBounds(number.FiniteBound(lo), number.FiniteBound(hi))
	}
	wlb := wrapValue(v.Lb().Value(), width, signed)
	wub := wrapValue(v.Ub().Value(), width, signed)
	if wlb.Gt(wub) {
		return interval.FromBounds(number.FiniteBound(lo), number.FiniteBound(hi))
	}
	return interval.FromBounds(number.FiniteBound(wlb), number.FiniteBound(wub))
}

func wrapValue(v number.Z, width int, signed bool) number.Z {
	m, err := number.MachineIntFromZ(v, width, signed)
	if err != nil {
		panic(err)
	}
	return m.Z()
}

// Top returns the full representable range for the given shape.
func Top(width int, signed bool) Interval {
	return Interval{width: width, signed: signed, v: fullRange(width, signed)}
}

// Bottom returns the empty interval for the given shape.
func Bottom(width int, signed bool) Interval {
	return Interval{width: width, signed: signed, v: interval.Bottom[number.Z]()}
}

// FromMachineInt builds the singleton interval around m.
func FromMachineInt(m number.MachineInt) Interval {
	return Interval{width: m.Width(), signed: m.IsSigned(), v: interval.Singleton(m.Z())}
}

func (i Interval) wrap() Interval {
	return Interval{width: i.width, signed: i.signed, v: Wrap(i.v, i.width, i.signed)}
}

func (i Interval) IsBottom() bool { return i.v.IsBottom() }
func (i Interval) IsTop() bool {
	lo, hi := shapeBounds(i.width, i.signed)
	return !i.v.IsBottom() && i.v.Lb().Eq(number.FiniteBound(lo)) && i.v.Ub().Eq(number.FiniteBound(hi))
}

func (i Interval) Leq(o Interval) bool    { return i.v.Leq(o.v) }
func (i Interval) Equals(o Interval) bool { return i.v.Equals(o.v) }
func (i Interval) Join(o Interval) Interval {
	return Interval{width: i.width, signed: i.signed, v: i.v.Join(o.v)}
}
func (i Interval) Meet(o Interval) Interval {
	return Interval{width: i.width, signed: i.signed, v: i.v.Meet(o.v)}
}

// Widen extrapolates like the generic interval widening, except that a
// bound escaping to infinity lands on the shape's representable limit:
// every concrete value is in range, so the range bound is the lattice's
// true top, not an approximation of it.
func (i Interval) Widen(o Interval) Interval {
	return Interval{width: i.width, signed: i.signed, v: i.v.Widen(o.v)}.wrap()
}
func (i Interval) Narrow(o Interval) Interval {
	return Interval{width: i.width, signed: i.signed, v: i.v.Narrow(o.v)}
}

func (i Interval) Add(o Interval) Interval {
	return Interval{width: i.width, signed: i.signed, v: i.v.Add(o.v)}.wrap()
}
func (i Interval) Sub(o Interval) Interval {
	return Interval{width: i.width, signed: i.signed, v: i.v.Sub(o.v)}.wrap()
}
func (i Interval) Mul(o Interval) Interval {
	return Interval{width: i.width, signed: i.signed, v: i.v.Mul(o.v)}.wrap()
}
func (i Interval) Neg() Interval {
	return Interval{width: i.width, signed: i.signed, v: i.v.Neg()}.wrap()
}

// Underlying exposes the generic Z interval for use by the linear-constraint
// solver, which is width-agnostic.
func (i Interval) Underlying() interval.Interval[number.Z] { return i.v }

func (i Interval) Width() int     { return i.width }
func (i Interval) IsSigned() bool { return i.signed }

func (i Interval) String() string {
	return fmt.Sprintf("%s (i%d%s)", i.v.String(), i.width, map[bool]string{true: " signed", false: " unsigned"}[i.signed])
}
