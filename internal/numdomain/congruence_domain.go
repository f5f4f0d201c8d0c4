package numdomain

import (
	"ikos/internal/congruence"
	"ikos/internal/linear"
	"ikos/internal/separate"
	"ikos/internal/solver"
)

// CongruenceDomain is a non-relational domain mapping variables to
// congruence classes aZ+b.
type CongruenceDomain[V comparable] struct {
	env separate.Domain[V, congruence.Congruence]
}

func TopCongruence[V comparable]() CongruenceDomain[V] {
	return CongruenceDomain[V]{env: separate.Top[V, congruence.Congruence](congruence.Top())}
}

func BottomCongruence[V comparable]() CongruenceDomain[V] {
	return CongruenceDomain[V]{env: separate.Bottom[V, congruence.Congruence](congruence.Top())}
}

func (d CongruenceDomain[V]) IsBottom() bool { return d.env.IsBottom() }
func (d CongruenceDomain[V]) IsTop() bool    { return d.env.IsTop() }
func (d CongruenceDomain[V]) Get(v V) congruence.Congruence { return d.env.Get(v) }

func (d CongruenceDomain[V]) Leq(o CongruenceDomain[V]) bool {
	return d.env.Leq(o.env)
}
func (d CongruenceDomain[V]) Join(o CongruenceDomain[V]) CongruenceDomain[V] {
	return CongruenceDomain[V]{env: d.env.Join(o.env)}
}
func (d CongruenceDomain[V]) Widen(o CongruenceDomain[V]) CongruenceDomain[V] {
	return CongruenceDomain[V]{env: d.env.Widen(o.env)}
}
func (d CongruenceDomain[V]) Meet(o CongruenceDomain[V]) CongruenceDomain[V] {
	return CongruenceDomain[V]{env: d.env.Meet(o.env)}
}
func (d CongruenceDomain[V]) Narrow(o CongruenceDomain[V]) CongruenceDomain[V] {
	return CongruenceDomain[V]{env: d.env.Narrow(o.env)}
}

func (d CongruenceDomain[V]) Set(v V, c congruence.Congruence) CongruenceDomain[V] {
	return CongruenceDomain[V]{env: d.env.Set(v, c)}
}

func (d CongruenceDomain[V]) Forget(v V) CongruenceDomain[V] {
	return CongruenceDomain[V]{env: d.env.Forget(v)}
}

func (d CongruenceDomain[V]) AssumeSystem(sys *linear.System[V]) CongruenceDomain[V] {
	if d.IsBottom() {
		return d
	}
	next, err := solver.SolveCongruences(sys, d.env)
	if err != nil {
		return BottomCongruence[V]()
	}
	return CongruenceDomain[V]{env: next}
}

func (d CongruenceDomain[V]) String() string { return d.env.String() }
