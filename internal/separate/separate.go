// Package separate implements the generic separate (non-relational) domain:
// a map from variables to abstract values of any single domain.Domain,
// where an absent key denotes Top and the whole map can additionally be
// flagged Bottom independent of its contents.
package separate

import (
	"fmt"
	"sort"

	"ikos/internal/domain"
)

// Domain maps keys of type K to abstract values of type V. It never stores
// a Top value under a key (Top is represented by the key's absence) and
// never stores a Bottom value under a key (any per-key Bottom collapses
// the whole map to the global bottom flag instead).
type Domain[K comparable, V domain.Domain[V]] struct {
	bottom bool
	top    V // the Top value of V, returned by Get for absent keys
	values map[K]V
}

// Bottom builds the empty (infeasible) separate domain.
func Bottom[K comparable, V domain.Domain[V]](top V) Domain[K, V] {
	return Domain[K, V]{bottom: true, top: top}
}

// Top builds the separate domain mapping every key to Top.
func Top[K comparable, V domain.Domain[V]](top V) Domain[K, V] {
	return Domain[K, V]{top: top, values: map[K]V{}}
}

func (d Domain[K, V]) IsBottom() bool { return d.bottom }

func (d Domain[K, V]) IsTop() bool {
	return !d.bottom && len(d.values) == 0
}

// Get returns the abstract value bound to k, or Top if k is unconstrained.
// Calling Get on Bottom returns Top's zero shape; callers must check
// IsBottom before trusting the result.
func (d Domain[K, V]) Get(k K) V {
	if v, ok := d.values[k]; ok {
		return v
	}
	return d.top
}

func (d Domain[K, V]) clone() map[K]V {
	out := make(map[K]V, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// Set binds k to v, normalizing: storing Top forgets k (back to implicit
// top), and storing Bottom collapses the whole domain to Bottom.
func (d Domain[K, V]) Set(k K, v V) Domain[K, V] {
	if d.bottom {
		return d
	}
	if v.IsBottom() {
		return Bottom[K, V](d.top)
	}
	out := d.clone()
	if v.IsTop() {
		delete(out, k)
	} else {
		out[k] = v
	}
	return Domain[K, V]{top: d.top, values: out}
}

// Forget removes any constraint on k, equivalent to Set(k, Top).
func (d Domain[K, V]) Forget(k K) Domain[K, V] {
	if d.bottom {
		return d
	}
	out := d.clone()
	delete(out, k)
	return Domain[K, V]{top: d.top, values: out}
}

func (d Domain[K, V]) Leq(o Domain[K, V]) bool {
	if d.bottom {
		return true
	}
	if o.bottom {
		return false
	}
	for k, v := range d.values {
		if !v.Leq(o.Get(k)) {
			return false
		}
	}
	return true
}

func (d Domain[K, V]) Equals(o Domain[K, V]) bool {
	return d.Leq(o) && o.Leq(d)
}

// combine applies f pointwise over the union of both maps' keys, using
// shortcut is one of "join"/"meet" handling of the global bottom flag.
func combine[K comparable, V domain.Domain[V]](d, o Domain[K, V], f func(a, b V) V, bottomWins bool) Domain[K, V] {
	if bottomWins {
		if d.bottom || o.bottom {
			return Bottom[K, V](d.top)
		}
	} else {
		if d.bottom {
			return o
		}
		if o.bottom {
			return d
		}
	}
	keys := make(map[K]struct{}, len(d.values)+len(o.values))
	for k := range d.values {
		keys[k] = struct{}{}
	}
	for k := range o.values {
		keys[k] = struct{}{}
	}
	out := make(map[K]V, len(keys))
	for k := range keys {
		v := f(d.Get(k), o.Get(k))
		if v.IsBottom() {
			return Bottom[K, V](d.top)
		}
		if !v.IsTop() {
			out[k] = v
		}
	}
	return Domain[K, V]{top: d.top, values: out}
}

func (d Domain[K, V]) Join(o Domain[K, V]) Domain[K, V] {
	return combine(d, o, func(a, b V) V { return a.Join(b) }, false)
}

func (d Domain[K, V]) Widen(o Domain[K, V]) Domain[K, V] {
	return combine(d, o, func(a, b V) V { return a.Widen(b) }, false)
}

func (d Domain[K, V]) Meet(o Domain[K, V]) Domain[K, V] {
	return combine(d, o, func(a, b V) V { return a.Meet(b) }, true)
}

func (d Domain[K, V]) Narrow(o Domain[K, V]) Domain[K, V] {
	return combine(d, o, func(a, b V) V { return a.Narrow(b) }, true)
}

func (d Domain[K, V]) String() string {
	if d.bottom {
		return "_|_"
	}
	keys := make([]string, 0, len(d.values))
	repr := make(map[string]V, len(d.values))
	for k, v := range d.values {
		s := fmt.Sprintf("%v", k)
		keys = append(keys, s)
		repr[s] = v
	}
	sort.Strings(keys)
	out := "{"
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s -> %v", k, repr[k])
	}
	return out + "}"
}
