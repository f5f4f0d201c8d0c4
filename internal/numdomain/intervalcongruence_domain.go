package numdomain

import (
	"ikos/internal/congruence"
	"ikos/internal/interval"
	"ikos/internal/intervalcongruence"
	"ikos/internal/number"
	"ikos/internal/separate"
)

// IntervalCongruenceDomain is the reduced-product domain, built by running
// the interval and congruence domains side by side and reducing each
// variable's pair of values against each other.
type IntervalCongruenceDomain[V comparable] struct {
	env separate.Domain[V, intervalcongruence.IntervalCongruence]
}

func TopIntervalCongruence[V comparable]() IntervalCongruenceDomain[V] {
	return IntervalCongruenceDomain[V]{env: separate.Top[V, intervalcongruence.IntervalCongruence](intervalcongruence.Top())}
}

func BottomIntervalCongruence[V comparable]() IntervalCongruenceDomain[V] {
	return IntervalCongruenceDomain[V]{env: separate.Bottom[V, intervalcongruence.IntervalCongruence](intervalcongruence.Top())}
}

func (d IntervalCongruenceDomain[V]) IsBottom() bool { return d.env.IsBottom() }
func (d IntervalCongruenceDomain[V]) IsTop() bool    { return d.env.IsTop() }
func (d IntervalCongruenceDomain[V]) Get(v V) intervalcongruence.IntervalCongruence {
	return d.env.Get(v)
}

func (d IntervalCongruenceDomain[V]) Leq(o IntervalCongruenceDomain[V]) bool {
	return d.env.Leq(o.env)
}
func (d IntervalCongruenceDomain[V]) Join(o IntervalCongruenceDomain[V]) IntervalCongruenceDomain[V] {
	return IntervalCongruenceDomain[V]{env: d.env.Join(o.env)}
}
func (d IntervalCongruenceDomain[V]) Widen(o IntervalCongruenceDomain[V]) IntervalCongruenceDomain[V] {
	return IntervalCongruenceDomain[V]{env: d.env.Widen(o.env)}
}
func (d IntervalCongruenceDomain[V]) Meet(o IntervalCongruenceDomain[V]) IntervalCongruenceDomain[V] {
	return IntervalCongruenceDomain[V]{env: d.env.Meet(o.env)}
}
func (d IntervalCongruenceDomain[V]) Narrow(o IntervalCongruenceDomain[V]) IntervalCongruenceDomain[V] {
	return IntervalCongruenceDomain[V]{env: d.env.Narrow(o.env)}
}

func (d IntervalCongruenceDomain[V]) Set(v V, x intervalcongruence.IntervalCongruence) IntervalCongruenceDomain[V] {
	return IntervalCongruenceDomain[V]{env: d.env.Set(v, x)}
}

// SetInterval assigns the interval component, reducing against whatever
// congruence is already known for v.
func (d IntervalCongruenceDomain[V]) SetInterval(v V, iv interval.Interval[number.Z]) IntervalCongruenceDomain[V] {
	existing := d.env.Get(v).Congruence()
	return d.Set(v, intervalcongruence.New(iv, existing))
}

// SetCongruence assigns the congruence component, reducing against the
// existing interval: the interval's bounds are tightened to the nearest
// members of the congruence class, so a singleton congruence narrows the
// interval to that one value.
func (d IntervalCongruenceDomain[V]) SetCongruence(v V, c congruence.Congruence) IntervalCongruenceDomain[V] {
	existing := d.env.Get(v).Interval()
	return d.Set(v, intervalcongruence.New(existing, c))
}

func (d IntervalCongruenceDomain[V]) Forget(v V) IntervalCongruenceDomain[V] {
	return IntervalCongruenceDomain[V]{env: d.env.Forget(v)}
}

func (d IntervalCongruenceDomain[V]) String() string { return d.env.String() }
