// Package octagon implements the Octagon relational numerical domain: sets
// of constraints of the form ±x ± y <= c, represented as a difference-bound
// matrix and closed by an all-pairs shortest-path relaxation.
package octagon

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Each tracked variable v contributes two rows/columns to the DBM: index
// 2*i for +v and 2*i+1 for -v. Entry (2*i+s, 2*j+t) bounds
// sign(s)*v_i - sign(t)*v_j <= value, with sign(0) = +1, sign(1) = -1.

// Domain is an Octagon abstract value over a fixed, ordered set of
// variables.
type Domain[V comparable] struct {
	bottom bool
	vars   []V
	index  map[V]int
	m      *mat.Dense // 2n x 2n, entries in (-inf, +inf], diagonal 0
}

// Top returns the unconstrained Octagon over vars (every entry +∞, except
// the diagonal which is always 0).
func Top[V comparable](vars []V) Domain[V] {
	n := len(vars)
	idx := make(map[V]int, n)
	for i, v := range vars {
		idx[v] = i
	}
	m := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < 2*n; i++ {
		for j := 0; j < 2*n; j++ {
			if i == j {
				m.Set(i, j, 0)
			} else {
				m.Set(i, j, math.Inf(1))
			}
		}
	}
	return Domain[V]{vars: vars, index: idx, m: m}
}

func Bottom[V comparable](vars []V) Domain[V] {
	d := Top(vars)
	d.bottom = true
	return d
}

func (d Domain[V]) IsBottom() bool { return d.bottom }

func (d Domain[V]) n() int { return len(d.vars) }

// AddConstraint tightens signA*vA + signB*vB <= c (sign is +1 or -1); vB
// may equal vA to express a single-variable bound (2*vA <= c, i.e.
// vA <= c/2, or -2*vA <= c).
func (d Domain[V]) AddConstraint(vA V, signA int, vB V, signB int, c float64) Domain[V] {
	if d.bottom {
		return d
	}
	ia, ib := d.index[vA], d.index[vB]
	row := 2*ia + signBit(signA)
	col := 2*ib + signBit(-signB)
	cur := d.m.At(row, col)
	if c < cur {
		d.m.Set(row, col, c)
	}
	// The symmetric entry encodes the negated constraint.
	rowSym := 2*ib + signBit(signB)
	colSym := 2*ia + signBit(-signA)
	if c < d.m.At(rowSym, colSym) {
		d.m.Set(rowSym, colSym, c)
	}
	return d.close()
}

func signBit(s int) int {
	if s > 0 {
		return 0
	}
	return 1
}

// close runs the min-plus all-pairs shortest path relaxation and detects
// infeasibility via a negative entry on the diagonal.
func (d Domain[V]) close() Domain[V] {
	size := 2 * d.n()
	for k := 0; k < size; k++ {
		for i := 0; i < size; i++ {
			ik := d.m.At(i, k)
			if math.IsInf(ik, 1) {
				continue
			}
			for j := 0; j < size; j++ {
				kj := d.m.At(k, j)
				if math.IsInf(kj, 1) {
					continue
				}
				if ik+kj < d.m.At(i, j) {
					d.m.Set(i, j, ik+kj)
				}
			}
		}
	}
	for i := 0; i < size; i++ {
		if d.m.At(i, i) < 0 {
			return Bottom(d.vars)
		}
	}
	return d
}

// Bound returns the tightest known [lb, ub] for v, using ±∞ when
// unconstrained on that side.
func (d Domain[V]) Bound(v V) (lb, ub float64) {
	i := d.index[v]
	ub = d.m.At(2*i, 2*i+1) / 2
	lb = -d.m.At(2*i+1, 2*i) / 2
	return lb, ub
}

// Leq is the pointwise comparison of closed DBMs (after closure, Leq
// reduces to an entrywise ordering since both sides are in normal form).
func (d Domain[V]) Leq(o Domain[V]) bool {
	if d.bottom {
		return true
	}
	if o.bottom {
		return false
	}
	size := 2 * d.n()
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if d.m.At(i, j) > o.m.At(i, j) {
				return false
			}
		}
	}
	return true
}

func (d Domain[V]) Join(o Domain[V]) Domain[V] {
	if d.bottom {
		return o
	}
	if o.bottom {
		return d
	}
	size := 2 * d.n()
	out := Top(d.vars)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			out.m.Set(i, j, math.Max(d.m.At(i, j), o.m.At(i, j)))
		}
	}
	return out
}

func (d Domain[V]) Widen(o Domain[V]) Domain[V] {
	if d.bottom {
		return o
	}
	if o.bottom {
		return d
	}
	size := 2 * d.n()
	out := Top(d.vars)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if o.m.At(i, j) <= d.m.At(i, j) {
				out.m.Set(i, j, d.m.At(i, j))
			} else {
				out.m.Set(i, j, math.Inf(1))
			}
		}
	}
	return out
}

func (d Domain[V]) Meet(o Domain[V]) Domain[V] {
	if d.bottom || o.bottom {
		return Bottom(d.vars)
	}
	size := 2 * d.n()
	out := Top(d.vars)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			out.m.Set(i, j, math.Min(d.m.At(i, j), o.m.At(i, j)))
		}
	}
	return out.close()
}
