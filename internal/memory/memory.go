// Package memory implements the byte-addressable memory abstract domain:
// a pointer environment over internal/pointsto paired with a per-location
// abstraction of stored contents, tracked at whole-object granularity
// (every cell belonging to the same memloc.Location shares one
// abstract value) rather than byte-precise offsets. This trades some
// precision on partially-overlapping writes for a domain whose size does
// not grow with an object's byte width, which is the tradeoff the
// points-to and interval domains it is built from are already making.
package memory

import (
	"ikos/internal/domain"
	"ikos/internal/interval"
	"ikos/internal/lifetime"
	"ikos/internal/memloc"
	"ikos/internal/nullity"
	"ikos/internal/number"
	"ikos/internal/pointsto"
	"ikos/internal/separate"
	"ikos/internal/uninit"
)

// Pointer is the pointer abstract value every variable of pointer type
// maps to: a points-to set over memloc.Locations, an offset, and a
// nullity flag.
type Pointer = pointsto.AbsValue[*memloc.Location]

// Domain is the memory state threaded through the execution engine: a
// pointer environment keyed by variable (V), plus three location-indexed
// environments describing what each abstract memory object currently
// holds.
type Domain[V comparable] struct {
	Ptr      separate.Domain[V, Pointer]
	Contents separate.Domain[*memloc.Location, interval.Interval[number.Z]]
	Uninit   separate.Domain[*memloc.Location, uninit.Uninitialized]
	Life     separate.Domain[*memloc.Location, lifetime.Lifetime]
}

func topPointer() Pointer                   { return pointsto.TopValue[*memloc.Location]() }
func bottomPointer() Pointer                 { return pointsto.BottomValue[*memloc.Location]() }
func topContents() interval.Interval[number.Z] { return interval.Top[number.Z]() }

// Top is the memory state with no constraints at all: every variable
// could hold any pointer, every object could hold any value.
func Top[V comparable]() Domain[V] {
	return Domain[V]{
		Ptr:      separate.Top[V, Pointer](topPointer()),
		Contents: separate.Top[*memloc.Location, interval.Interval[number.Z]](topContents()),
		Uninit:   separate.Top[*memloc.Location, uninit.Uninitialized](uninit.Top),
		Life:     separate.Top[*memloc.Location, lifetime.Lifetime](lifetime.Top),
	}
}

// Bottom is the infeasible memory state, reached at unreachable program
// points.
func Bottom[V comparable]() Domain[V] {
	return Domain[V]{
		Ptr:      separate.Bottom[V, Pointer](topPointer()),
		Contents: separate.Bottom[*memloc.Location, interval.Interval[number.Z]](topContents()),
		Uninit:   separate.Bottom[*memloc.Location, uninit.Uninitialized](uninit.Top),
		Life:     separate.Bottom[*memloc.Location, lifetime.Lifetime](lifetime.Top),
	}
}

func (d Domain[V]) IsBottom() bool {
	return d.Ptr.IsBottom() || d.Contents.IsBottom() || d.Uninit.IsBottom() || d.Life.IsBottom()
}

func (d Domain[V]) IsTop() bool {
	return d.Ptr.IsTop() && d.Contents.IsTop() && d.Uninit.IsTop() && d.Life.IsTop()
}

func (d Domain[V]) Leq(o Domain[V]) bool {
	if d.IsBottom() {
		return true
	}
	if o.IsBottom() {
		return false
	}
	return d.Ptr.Leq(o.Ptr) && d.Contents.Leq(o.Contents) && d.Uninit.Leq(o.Uninit) && d.Life.Leq(o.Life)
}

func (d Domain[V]) Join(o Domain[V]) Domain[V] {
	if d.IsBottom() {
		return o
	}
	if o.IsBottom() {
		return d
	}
	return Domain[V]{
		Ptr:      d.Ptr.Join(o.Ptr),
		Contents: d.Contents.Join(o.Contents),
		Uninit:   d.Uninit.Join(o.Uninit),
		Life:     d.Life.Join(o.Life),
	}
}

func (d Domain[V]) Widen(o Domain[V]) Domain[V] {
	if d.IsBottom() {
		return o
	}
	if o.IsBottom() {
		return d
	}
	return Domain[V]{
		Ptr:      d.Ptr.Widen(o.Ptr),
		Contents: d.Contents.Widen(o.Contents),
		Uninit:   d.Uninit.Widen(o.Uninit),
		Life:     d.Life.Widen(o.Life),
	}
}

func (d Domain[V]) Meet(o Domain[V]) Domain[V] {
	if d.IsBottom() || o.IsBottom() {
		return Bottom[V]()
	}
	return Domain[V]{
		Ptr:      d.Ptr.Meet(o.Ptr),
		Contents: d.Contents.Meet(o.Contents),
		Uninit:   d.Uninit.Meet(o.Uninit),
		Life:     d.Life.Meet(o.Life),
	}
}

func (d Domain[V]) Narrow(o Domain[V]) Domain[V] {
	if d.IsBottom() || o.IsBottom() {
		return Bottom[V]()
	}
	return Domain[V]{
		Ptr:      d.Ptr.Narrow(o.Ptr),
		Contents: d.Contents.Narrow(o.Contents),
		Uninit:   d.Uninit.Narrow(o.Uninit),
		Life:     d.Life.Narrow(o.Life),
	}
}

var _ domain.Domain[Domain[string]] = Domain[string]{}

// AssignPointer binds v to val in the pointer environment.
func (d Domain[V]) AssignPointer(v V, val Pointer) Domain[V] {
	d.Ptr = d.Ptr.Set(v, val)
	return d
}

// PointerOf returns the pointer abstract value bound to v.
func (d Domain[V]) PointerOf(v V) Pointer { return d.Ptr.Get(v) }

// Allocate introduces a fresh object loc, zero-sized relationship aside,
// binding v to point exactly at loc with offset 0 and non-null, and
// marking loc's contents uninitialized (the standard alloca/malloc
// postcondition: storage exists but holds unspecified bytes until
// written).
func (d Domain[V]) Allocate(v V, loc *memloc.Location) Domain[V] {
	ptr := Pointer{
		Points: pointsto.Singleton(loc),
		Offset: interval.Singleton(number.ZeroZ),
		Null:   nullity.NonNull,
	}
	d.Ptr = d.Ptr.Set(v, ptr)
	d.Uninit = d.Uninit.Set(loc, uninit.UninitializedValue)
	d.Life = d.Life.Set(loc, lifetime.Allocated)
	return d
}

// Deallocate marks every location ptr may point to as freed: later use
// of a pointer to that location (another free, or a load/store) can be
// flagged as a use-after-free by consulting LifetimeOf, the same way a
// conventional must/may-alias liveness check would.
func (d Domain[V]) Deallocate(ptr Pointer) Domain[V] {
	if ptr.Points.IsBottom() || ptr.Points.IsTop() {
		return d
	}
	for _, loc := range ptr.Points.Members() {
		d.Life = d.Life.Set(loc, lifetime.Deallocated)
	}
	return d
}

// LifetimeOf returns the join of the lifetime state of every location ptr
// may point to: lifetime.Allocated means every pointee is definitely
// still live, lifetime.Deallocated means every pointee has definitely
// been freed, and lifetime.Top (the join of both) means ptr may alias
// both a live and a freed location.
func (d Domain[V]) LifetimeOf(ptr Pointer) lifetime.Lifetime {
	if ptr.Points.IsBottom() {
		return lifetime.Bottom
	}
	if ptr.Points.IsTop() {
		return lifetime.Top
	}
	l := lifetime.Bottom
	for _, loc := range ptr.Points.Members() {
		l = l.Join(d.Life.Get(loc))
	}
	return l
}

// Read returns the join of the contents and initialization state of
// every location ptr may point to. A Top points-to set yields Top for
// both (the read could observe anything); a Bottom points-to set (a
// pointer that provably points nowhere, i.e. unreachable code) yields
// Bottom for both.
func (d Domain[V]) Read(ptr Pointer) (interval.Interval[number.Z], uninit.Uninitialized) {
	if ptr.Points.IsBottom() {
		return interval.Bottom[number.Z](), uninit.Bottom
	}
	if ptr.Points.IsTop() {
		return interval.Top[number.Z](), uninit.Top
	}
	val := interval.Bottom[number.Z]()
	u := uninit.Bottom
	for _, loc := range ptr.Points.Members() {
		val = val.Join(d.Contents.Get(loc))
		u = u.Join(d.Uninit.Get(loc))
	}
	return val, u
}

// Write stores val (fully initialized) through ptr. When ptr's points-to
// set is a non-Top singleton the update is strong (the old contents are
// discarded); otherwise it is weak (val is joined into every possibly
// aliased location, since the write may or may not actually hit each
// one).
func (d Domain[V]) Write(ptr Pointer, val interval.Interval[number.Z]) Domain[V] {
	return d.write(ptr, val, uninit.Initialized)
}

// Zero stores the constant 0 through ptr, as calloc or an explicit
// memset-to-zero would.
func (d Domain[V]) Zero(ptr Pointer) Domain[V] {
	return d.write(ptr, interval.Singleton(number.ZeroZ), uninit.Initialized)
}

// UninitializeReachable marks every location ptr may point to as holding
// unspecified contents again, e.g. when a stack frame is popped and its
// locations are about to be reused.
func (d Domain[V]) UninitializeReachable(ptr Pointer) Domain[V] {
	return d.write(ptr, interval.Top[number.Z](), uninit.UninitializedValue)
}

// Forget discards all knowledge of ptr's pointees without asserting
// anything about their initialization state, used when a call through an
// opaque (non-inlined) function might have written through an
// escaped pointer.
func (d Domain[V]) Forget(ptr Pointer) Domain[V] {
	if ptr.Points.IsBottom() {
		return Bottom[V]()
	}
	if ptr.Points.IsTop() {
		// The write could have hit any object: scrub every object's
		// contents, but the pointer environment itself (who points where)
		// is unaffected by stores through the wild pointer.
		d.Contents = separate.Top[*memloc.Location, interval.Interval[number.Z]](topContents())
		d.Uninit = separate.Top[*memloc.Location, uninit.Uninitialized](uninit.Top)
		return d
	}
	for _, loc := range ptr.Points.Members() {
		d.Contents = d.Contents.Forget(loc)
		d.Uninit = d.Uninit.Forget(loc)
	}
	return d
}

// Copy reads through src and writes the result through dst, propagating
// both the value and its initialization state (an uninitialized read
// followed by a copy still produces an uninitialized write, unlike Write
// which always asserts Initialized).
func (d Domain[V]) Copy(dst, src Pointer) Domain[V] {
	val, u := d.Read(src)
	return d.write(dst, val, u)
}

func (d Domain[V]) write(ptr Pointer, val interval.Interval[number.Z], u uninit.Uninitialized) Domain[V] {
	if ptr.Points.IsBottom() {
		return Bottom[V]()
	}
	if ptr.Points.IsTop() {
		// The store could have hit any object, so no object's contents
		// survive; the pointer environment does, since a store through a
		// wild pointer rebinds no variable.
		d.Contents = separate.Top[*memloc.Location, interval.Interval[number.Z]](topContents())
		d.Uninit = separate.Top[*memloc.Location, uninit.Uninitialized](uninit.Top)
		return d
	}
	if ptr.Points.IsSingleton() {
		loc := ptr.Points.SingletonValue()
		d.Contents = d.Contents.Set(loc, val)
		d.Uninit = d.Uninit.Set(loc, u)
		return d
	}
	for _, loc := range ptr.Points.Members() {
		d.Contents = d.Contents.Set(loc, d.Contents.Get(loc).Join(val))
		d.Uninit = d.Uninit.Set(loc, d.Uninit.Get(loc).Join(u))
	}
	return d
}
