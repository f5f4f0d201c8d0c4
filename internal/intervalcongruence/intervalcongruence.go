// Package intervalcongruence implements the reduced product of the interval
// and congruence domains over arbitrary-precision integers.
package intervalcongruence

import (
	"fmt"

	"ikos/internal/congruence"
	"ikos/internal/interval"
	"ikos/internal/number"
)

// IntervalCongruence pairs an interval with a congruence and keeps them
// mutually reduced: the interval bounds are tightened to the nearest
// congruent value, and a singleton interval collapses the congruence to a
// matching singleton.
type IntervalCongruence struct {
	i interval.Interval[number.Z]
	c congruence.Congruence
}

func Top() IntervalCongruence {
	return IntervalCongruence{i: interval.Top[number.Z](), c: congruence.Top()}
}

func Bottom() IntervalCongruence {
	return IntervalCongruence{i: interval.Bottom[number.Z](), c: congruence.Bottom()}
}

func Singleton(v number.Z) IntervalCongruence {
	return IntervalCongruence{i: interval.Singleton(v), c: congruence.Singleton(v)}
}

func New(i interval.Interval[number.Z], c congruence.Congruence) IntervalCongruence {
	return reduce(i, c)
}

// reduce tightens the interval bound toward the nearest member of the
// congruence class.
func reduce(i interval.Interval[number.Z], c congruence.Congruence) IntervalCongruence {
	if i.IsBottom() || c.IsBottom() {
		return Bottom()
	}
	if c.IsSingleton() {
		v := c.Residue()
		if !i.Contains(v) {
			return Bottom()
		}
		return IntervalCongruence{i: interval.Singleton(v), c: c}
	}
	if i.IsSingleton() {
		if !c.Contains(i.SingletonValue()) {
			return Bottom()
		}
		return IntervalCongruence{i: i, c: congruence.Singleton(i.SingletonValue())}
	}
	lb := i.Lb()
	if lb.IsFinite() {
		lb = number.FiniteBound(nearestAbove(lb.Value(), c))
	}
	ub := i.Ub()
	if ub.IsFinite() {
		ub = number.FiniteBound(nearestBelow(ub.Value(), c))
	}
	tightened := interval.FromBounds(lb, ub)
	if tightened.IsBottom() {
		return Bottom()
	}
	if tightened.IsSingleton() {
		return IntervalCongruence{i: tightened, c: congruence.Singleton(tightened.SingletonValue())}
	}
	return IntervalCongruence{i: tightened, c: c}
}

// nearestAbove returns the smallest member of c that is >= v.
func nearestAbove(v number.Z, c congruence.Congruence) number.Z {
	r := v.Sub(c.Residue()).Mod(c.Modulus())
	if r.Sign() < 0 {
		r = r.Add(c.Modulus())
	}
	if r.IsZero() {
		return v
	}
	return v.Add(c.Modulus()).Sub(r)
}

// nearestBelow returns the largest member of c that is <= v.
func nearestBelow(v number.Z, c congruence.Congruence) number.Z {
	r := v.Sub(c.Residue()).Mod(c.Modulus())
	if r.Sign() < 0 {
		r = r.Add(c.Modulus())
	}
	return v.Sub(r)
}

func (x IntervalCongruence) Interval() interval.Interval[number.Z] { return x.i }
func (x IntervalCongruence) Congruence() congruence.Congruence     { return x.c }

func (x IntervalCongruence) IsBottom() bool { return x.i.IsBottom() || x.c.IsBottom() }
func (x IntervalCongruence) IsTop() bool    { return x.i.IsTop() && x.c.IsTop() }

func (x IntervalCongruence) Leq(o IntervalCongruence) bool {
	return x.i.Leq(o.i) && x.c.Leq(o.c)
}

func (x IntervalCongruence) Equals(o IntervalCongruence) bool {
	return x.i.Equals(o.i) && x.c.Equals(o.c)
}

func (x IntervalCongruence) Join(o IntervalCongruence) IntervalCongruence {
	if x.IsBottom() {
		return o
	}
	if o.IsBottom() {
		return x
	}
	return reduce(x.i.Join(o.i), x.c.Join(o.c))
}

func (x IntervalCongruence) Widen(o IntervalCongruence) IntervalCongruence {
	if x.IsBottom() {
		return o
	}
	if o.IsBottom() {
		return x
	}
	return reduce(x.i.Widen(o.i), x.c.Widen(o.c))
}

func (x IntervalCongruence) Meet(o IntervalCongruence) IntervalCongruence {
	if x.IsBottom() || o.IsBottom() {
		return Bottom()
	}
	return reduce(x.i.Meet(o.i), x.c.Meet(o.c))
}

func (x IntervalCongruence) Narrow(o IntervalCongruence) IntervalCongruence {
	if x.IsBottom() || o.IsBottom() {
		return Bottom()
	}
	return reduce(x.i.Narrow(o.i), x.c.Narrow(o.c))
}

func (x IntervalCongruence) String() string {
	if x.IsBottom() {
		return "_|_"
	}
	return fmt.Sprintf("%s %s", x.i.String(), x.c.String())
}
