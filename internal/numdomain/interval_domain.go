// Package numdomain assembles the separate domain, the linear-constraint
// solvers, and the interval/congruence value lattices into complete
// numerical abstract domains exposing the assign/assume/forget interface
// the execution engine drives.
package numdomain

import (
	"ikos/internal/interval"
	"ikos/internal/linear"
	"ikos/internal/number"
	"ikos/internal/separate"
	"ikos/internal/solver"
)

// IntervalDomain is a non-relational numerical domain mapping variables of
// type V to intervals over arbitrary-precision integers.
type IntervalDomain[V comparable] struct {
	env separate.Domain[V, interval.Interval[number.Z]]
}

func TopInterval[V comparable]() IntervalDomain[V] {
	return IntervalDomain[V]{env: separate.Top[V, interval.Interval[number.Z]](interval.Top[number.Z]())}
}

func BottomInterval[V comparable]() IntervalDomain[V] {
	return IntervalDomain[V]{env: separate.Bottom[V, interval.Interval[number.Z]](interval.Top[number.Z]())}
}

func (d IntervalDomain[V]) IsBottom() bool { return d.env.IsBottom() }
func (d IntervalDomain[V]) IsTop() bool    { return d.env.IsTop() }

func (d IntervalDomain[V]) Get(v V) interval.Interval[number.Z] { return d.env.Get(v) }

func (d IntervalDomain[V]) Leq(o IntervalDomain[V]) bool    { return d.env.Leq(o.env) }
func (d IntervalDomain[V]) Join(o IntervalDomain[V]) IntervalDomain[V] {
	return IntervalDomain[V]{env: d.env.Join(o.env)}
}
func (d IntervalDomain[V]) Widen(o IntervalDomain[V]) IntervalDomain[V] {
	return IntervalDomain[V]{env: d.env.Widen(o.env)}
}
func (d IntervalDomain[V]) Meet(o IntervalDomain[V]) IntervalDomain[V] {
	return IntervalDomain[V]{env: d.env.Meet(o.env)}
}
func (d IntervalDomain[V]) Narrow(o IntervalDomain[V]) IntervalDomain[V] {
	return IntervalDomain[V]{env: d.env.Narrow(o.env)}
}

// Set directly binds v to iv, bypassing constraint propagation. Used for
// the transfer function of a plain assignment `v = iv`.
func (d IntervalDomain[V]) Set(v V, iv interval.Interval[number.Z]) IntervalDomain[V] {
	return IntervalDomain[V]{env: d.env.Set(v, iv)}
}

// Forget removes all information about v.
func (d IntervalDomain[V]) Forget(v V) IntervalDomain[V] {
	return IntervalDomain[V]{env: d.env.Forget(v)}
}

// Assign evaluates e in the current environment and binds lhs to the
// resulting interval: the transfer function for `lhs = e`.
func (d IntervalDomain[V]) Assign(lhs V, e linear.Expression[V]) IntervalDomain[V] {
	if d.IsBottom() {
		return d
	}
	return d.Set(lhs, d.Eval(e))
}

// Eval evaluates a linear expression to an interval under the current
// environment.
func (d IntervalDomain[V]) Eval(e linear.Expression[V]) interval.Interval[number.Z] {
	result := interval.Singleton(e.ConstantTerm())
	for _, v := range e.Variables() {
		result = result.Add(interval.Singleton(e.Coefficient(v)).Mul(d.env.Get(v)))
	}
	return result
}

// Assume refines the environment by the linear constraint c, via the
// interval-constraint propagation solver; a constraint proven infeasible
// collapses the domain to Bottom (normal abstract-interpretation behavior:
// unreachable branches become ⊥, they are never reported as Go errors to
// the caller).
func (d IntervalDomain[V]) Assume(c linear.Constraint[V]) IntervalDomain[V] {
	if d.IsBottom() {
		return d
	}
	sys := linear.NewSystem(c)
	next, err := solver.SolveIntervals(sys, d.env)
	if err != nil {
		return BottomInterval[V]()
	}
	return IntervalDomain[V]{env: next}
}

// AssumeSystem refines the environment against every constraint in sys at
// once, the form the execution engine uses after lowering a compound
// condition.
func (d IntervalDomain[V]) AssumeSystem(sys *linear.System[V]) IntervalDomain[V] {
	if d.IsBottom() {
		return d
	}
	next, err := solver.SolveIntervals(sys, d.env)
	if err != nil {
		return BottomInterval[V]()
	}
	return IntervalDomain[V]{env: next}
}

func (d IntervalDomain[V]) String() string { return d.env.String() }
