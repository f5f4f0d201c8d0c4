// Package pointsto implements the points-to abstract domain and the
// pointer abstract value that pairs it with an offset interval and a
// nullity flag.
package pointsto

import (
	"fmt"
	"sort"

	"ikos/internal/interval"
	"ikos/internal/nullity"
	"ikos/internal/number"
)

// setKind discriminates the three shapes a PointsToSet can take: the
// infeasible set, the universal set (every location), and an explicit
// finite set.
type setKind int

const (
	bottomSet setKind = iota
	topSet
	finiteSet
)

// Set is a points-to set over memory locations of type M (instantiated
// with *memloc.Location in the memory domain). Bottom means "cannot point
// anywhere" (infeasible), Top means "could point anywhere" (imprecise),
// and a finite set is the common case produced by one or a handful of
// allocation/address-of sites merging together.
type Set[M comparable] struct {
	kind    setKind
	members map[M]struct{}
}

func Bottom[M comparable]() Set[M] { return Set[M]{kind: bottomSet} }
func Top[M comparable]() Set[M]    { return Set[M]{kind: topSet} }

// Singleton builds the one-element points-to set {m}.
func Singleton[M comparable](m M) Set[M] {
	return Set[M]{kind: finiteSet, members: map[M]struct{}{m: {}}}
}

// FromSlice builds the finite points-to set containing exactly ms.
func FromSlice[M comparable](ms []M) Set[M] {
	t := make(map[M]struct{}, len(ms))
	for _, m := range ms {
		t[m] = struct{}{}
	}
	return Set[M]{kind: finiteSet, members: t}
}

func (s Set[M]) IsBottom() bool { return s.kind == bottomSet }
func (s Set[M]) IsTop() bool    { return s.kind == topSet }

// IsSingleton reports whether the set contains exactly one location.
func (s Set[M]) IsSingleton() bool {
	return s.kind == finiteSet && len(s.members) == 1
}

// SingletonValue returns the sole member; callers must check IsSingleton.
func (s Set[M]) SingletonValue() M {
	for m := range s.members {
		return m
	}
	var zero M
	return zero
}

// Members returns the finite member set; callers must check that the set
// is neither Top nor Bottom first.
func (s Set[M]) Members() []M {
	out := make([]M, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	return out
}

func (s Set[M]) Leq(o Set[M]) bool {
	if s.kind == bottomSet {
		return true
	}
	if o.kind == topSet {
		return true
	}
	if s.kind == topSet {
		return false
	}
	if o.kind == bottomSet {
		return false
	}
	for m := range s.members {
		if _, ok := o.members[m]; !ok {
			return false
		}
	}
	return true
}

func (s Set[M]) Equals(o Set[M]) bool {
	return s.Leq(o) && o.Leq(s)
}

func (s Set[M]) Join(o Set[M]) Set[M] {
	if s.kind == bottomSet {
		return o
	}
	if o.kind == bottomSet {
		return s
	}
	if s.kind == topSet || o.kind == topSet {
		return Top[M]()
	}
	merged := make(map[M]struct{}, len(s.members)+len(o.members))
	for m := range s.members {
		merged[m] = struct{}{}
	}
	for m := range o.members {
		merged[m] = struct{}{}
	}
	return Set[M]{kind: finiteSet, members: merged}
}

// Widen is Join: finite points-to sets can only grow a bounded number of
// times before saturating to Top in practice, and the domain has no
// useful narrower widening than the join itself.
func (s Set[M]) Widen(o Set[M]) Set[M] { return s.Join(o) }

func (s Set[M]) Meet(o Set[M]) Set[M] {
	if s.kind == bottomSet || o.kind == bottomSet {
		return Bottom[M]()
	}
	if s.kind == topSet {
		return o
	}
	if o.kind == topSet {
		return s
	}
	merged := make(map[M]struct{})
	for m := range s.members {
		if _, ok := o.members[m]; ok {
			merged[m] = struct{}{}
		}
	}
	if len(merged) == 0 {
		return Bottom[M]()
	}
	return Set[M]{kind: finiteSet, members: merged}
}

func (s Set[M]) Narrow(o Set[M]) Set[M] { return s.Meet(o) }

func (s Set[M]) String() string {
	switch s.kind {
	case bottomSet:
		return "_|_"
	case topSet:
		return "T"
	default:
		strs := make([]string, 0, len(s.members))
		for m := range s.members {
			strs = append(strs, fmt.Sprintf("%v", m))
		}
		sort.Strings(strs)
		return fmt.Sprintf("%v", strs)
	}
}

// AbsValue is a pointer abstract value: a points-to set paired with an
// offset interval (the byte displacement from the start of the pointee)
// and a nullity flag.
type AbsValue[M comparable] struct {
	Points Set[M]
	Offset interval.Interval[number.Z]
	Null   nullity.Nullity
}

func BottomValue[M comparable]() AbsValue[M] {
	return AbsValue[M]{Points: Bottom[M](), Offset: interval.Bottom[number.Z](), Null: nullity.Bottom}
}

func TopValue[M comparable]() AbsValue[M] {
	return AbsValue[M]{Points: Top[M](), Offset: interval.Top[number.Z](), Null: nullity.Top}
}

// NullValue is the abstract value for a definitely-null pointer.
func NullValue[M comparable]() AbsValue[M] {
	return AbsValue[M]{Points: Bottom[M](), Offset: interval.Singleton(number.ZeroZ), Null: nullity.Null}
}

func (v AbsValue[M]) IsBottom() bool {
	return v.Points.IsBottom() && v.Offset.IsBottom() && v.Null.IsBottom()
}

func (v AbsValue[M]) IsTop() bool {
	return v.Points.IsTop() && v.Offset.IsTop() && v.Null.IsTop()
}

func (v AbsValue[M]) Leq(o AbsValue[M]) bool {
	return v.Points.Leq(o.Points) && v.Offset.Leq(o.Offset) && v.Null.Leq(o.Null)
}

func (v AbsValue[M]) Join(o AbsValue[M]) AbsValue[M] {
	return AbsValue[M]{Points: v.Points.Join(o.Points), Offset: v.Offset.Join(o.Offset), Null: v.Null.Join(o.Null)}
}

func (v AbsValue[M]) Widen(o AbsValue[M]) AbsValue[M] {
	return AbsValue[M]{Points: v.Points.Widen(o.Points), Offset: v.Offset.Widen(o.Offset), Null: v.Null.Widen(o.Null)}
}

func (v AbsValue[M]) Meet(o AbsValue[M]) AbsValue[M] {
	return AbsValue[M]{Points: v.Points.Meet(o.Points), Offset: v.Offset.Meet(o.Offset), Null: v.Null.Meet(o.Null)}
}

func (v AbsValue[M]) Narrow(o AbsValue[M]) AbsValue[M] {
	return AbsValue[M]{Points: v.Points.Narrow(o.Points), Offset: v.Offset.Narrow(o.Offset), Null: v.Null.Narrow(o.Null)}
}

// WithOffset returns a copy shifted by delta.
func (v AbsValue[M]) WithOffset(delta interval.Interval[number.Z]) AbsValue[M] {
	v.Offset = v.Offset.Add(delta)
	return v
}

func (v AbsValue[M]) String() string {
	return fmt.Sprintf("{points=%s, offset=%s, null=%s}", v.Points.String(), v.Offset.String(), v.Null.String())
}
