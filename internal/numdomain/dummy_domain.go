package numdomain

import "ikos/internal/separate"

// Dummy is the trivial two-point lattice (Bottom/Top) used to track
// floating-point variables: the analyzer never reasons about their
// concrete range, only whether a given program point is reachable at all.
type Dummy struct{ bottom bool }

func TopDummy() Dummy    { return Dummy{} }
func BottomDummy() Dummy { return Dummy{bottom: true} }

func (d Dummy) IsBottom() bool { return d.bottom }
func (d Dummy) IsTop() bool    { return !d.bottom }
func (d Dummy) Leq(o Dummy) bool {
	return d.bottom || !o.bottom
}
func (d Dummy) Join(o Dummy) Dummy   { return Dummy{bottom: d.bottom && o.bottom} }
func (d Dummy) Widen(o Dummy) Dummy  { return d.Join(o) }
func (d Dummy) Meet(o Dummy) Dummy   { return Dummy{bottom: d.bottom || o.bottom} }
func (d Dummy) Narrow(o Dummy) Dummy { return d.Meet(o) }
func (d Dummy) String() string {
	if d.bottom {
		return "_|_"
	}
	return "T"
}

// DummyDomain is the separate domain of Dummy values, one per
// floating-point variable.
type DummyDomain[V comparable] struct {
	env separate.Domain[V, Dummy]
}

func TopDummyDomain[V comparable]() DummyDomain[V] {
	return DummyDomain[V]{env: separate.Top[V, Dummy](TopDummy())}
}

func BottomDummyDomain[V comparable]() DummyDomain[V] {
	return DummyDomain[V]{env: separate.Bottom[V, Dummy](TopDummy())}
}

func (d DummyDomain[V]) IsBottom() bool { return d.env.IsBottom() }
func (d DummyDomain[V]) IsTop() bool    { return d.env.IsTop() }
func (d DummyDomain[V]) Join(o DummyDomain[V]) DummyDomain[V] {
	return DummyDomain[V]{env: d.env.Join(o.env)}
}
func (d DummyDomain[V]) Meet(o DummyDomain[V]) DummyDomain[V] {
	return DummyDomain[V]{env: d.env.Meet(o.env)}
}
func (d DummyDomain[V]) Forget(v V) DummyDomain[V] {
	return DummyDomain[V]{env: d.env.Forget(v)}
}
