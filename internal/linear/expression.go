// Package linear implements linear expressions and constraints over
// abstract program variables, the input language the interval and
// congruence solvers propagate over.
package linear

import (
	"fmt"
	"sort"

	"ikos/internal/number"
)

// Expression is sum(coeff_i * var_i) + constant, over variables of type V
// (typically a variable-name or SSA-value identifier from the AR package).
type Expression[V comparable] struct {
	terms    map[V]number.Z
	constant number.Z
}

// Constant builds the expression equal to c.
func Constant[V comparable](c number.Z) Expression[V] {
	return Expression[V]{constant: c}
}

// Var builds the expression 1*v.
func Var[V comparable](v V) Expression[V] {
	return Expression[V]{terms: map[V]number.Z{v: number.OneZ}}
}

// Term builds the expression coeff*v.
func Term[V comparable](coeff number.Z, v V) Expression[V] {
	if coeff.IsZero() {
		return Expression[V]{}
	}
	return Expression[V]{terms: map[V]number.Z{v: coeff}}
}

func (e Expression[V]) clone() map[V]number.Z {
	out := make(map[V]number.Z, len(e.terms))
	for v, c := range e.terms {
		out[v] = c
	}
	return out
}

// Add returns e + o.
func (e Expression[V]) Add(o Expression[V]) Expression[V] {
	out := e.clone()
	for v, c := range o.terms {
		merged := c
		if existing, ok := out[v]; ok {
			merged = existing.Add(c)
		}
		if merged.IsZero() {
			delete(out, v)
		} else {
			out[v] = merged
		}
	}
	return Expression[V]{terms: out, constant: e.constant.Add(o.constant)}
}

// Sub returns e - o.
func (e Expression[V]) Sub(o Expression[V]) Expression[V] {
	return e.Add(o.Scale(number.NewZ(-1)))
}

// Scale returns c*e.
func (e Expression[V]) Scale(c number.Z) Expression[V] {
	if c.IsZero() {
		return Expression[V]{}
	}
	out := make(map[V]number.Z, len(e.terms))
	for v, coeff := range e.terms {
		out[v] = coeff.Mul(c)
	}
	return Expression[V]{terms: out, constant: e.constant.Mul(c)}
}

// AddTerm returns e + coeff*v.
func (e Expression[V]) AddTerm(coeff number.Z, v V) Expression[V] {
	return e.Add(Term(coeff, v))
}

// ConstantTerm returns the constant term.
func (e Expression[V]) ConstantTerm() number.Z { return e.constant }

// Coefficient returns the coefficient of v (zero if v does not occur).
func (e Expression[V]) Coefficient(v V) number.Z {
	if c, ok := e.terms[v]; ok {
		return c
	}
	return number.ZeroZ
}

// Variables returns the variables with a non-zero coefficient.
func (e Expression[V]) Variables() []V {
	out := make([]V, 0, len(e.terms))
	for v := range e.terms {
		out = append(out, v)
	}
	return out
}

// NumTerms is the number of variables with non-zero coefficient.
func (e Expression[V]) NumTerms() int { return len(e.terms) }

func (e Expression[V]) String() string {
	vars := e.Variables()
	strs := make([]string, 0, len(vars)+1)
	sortable := make([]string, len(vars))
	for i, v := range vars {
		sortable[i] = fmt.Sprintf("%v", v)
	}
	sort.Strings(sortable)
	for _, key := range sortable {
		for _, v := range vars {
			if fmt.Sprintf("%v", v) == key {
				strs = append(strs, fmt.Sprintf("%s*%v", e.terms[v], v))
				break
			}
		}
	}
	if !e.constant.IsZero() || len(strs) == 0 {
		strs = append(strs, e.constant.String())
	}
	out := strs[0]
	for _, s := range strs[1:] {
		out += " + " + s
	}
	return out
}
