package solver

import (
	"ikos/internal/congruence"
	"ikos/internal/linear"
	"ikos/internal/number"
	"ikos/internal/separate"
)

// SolveCongruences refines env against the equality constraints of sys.
// Congruence propagation only has useful content for equalities; an
// inequality constrains magnitude, not residue, so every other predicate
// is skipped.
func SolveCongruences[V comparable](sys *linear.System[V], start separate.Domain[V, congruence.Congruence]) (separate.Domain[V, congruence.Congruence], error) {
	if start.IsBottom() {
		return start, ErrInfeasible
	}
	cur := start
	for cycle := 0; cycle < MaxCycles; cycle++ {
		changed := false
		for _, c := range sys.Constraints {
			if c.Pred != linear.Equal {
				continue
			}
			next, progressed, err := propagateCongruence(c, cur)
			if err != nil {
				return cur, err
			}
			if progressed {
				cur = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return cur, nil
}

func propagateCongruence[V comparable](c linear.Constraint[V], cur separate.Domain[V, congruence.Congruence]) (separate.Domain[V, congruence.Congruence], bool, error) {
	progressed := false
	for _, v := range c.Expr.Variables() {
		coeff := c.Expr.Coefficient(v)
		if coeff.IsZero() {
			continue
		}
		// rest = sum of other terms + constant, as a congruence.
		rest := congruence.Singleton(c.Expr.ConstantTerm())
		for _, o := range c.Expr.Variables() {
			if o == v {
				continue
			}
			termCoeff := c.Expr.Coefficient(o)
			scaled := scaleCongruence(cur.Get(o), termCoeff)
			rest = addCongruence(rest, scaled)
		}
		// coeff*v + rest == 0  =>  v's residue modulo coeff's magnitude.
		residual := residualCongruence(rest, coeff)
		old := cur.Get(v)
		refined := old.Meet(residual)
		if refined.IsBottom() {
			return cur, false, ErrInfeasible
		}
		if !refined.Equals(old) {
			cur = cur.Set(v, refined)
			progressed = true
		}
	}
	return cur, progressed, nil
}

func scaleCongruence(c congruence.Congruence, k number.Z) congruence.Congruence {
	if c.IsBottom() {
		return c
	}
	return congruence.New(c.Modulus().Mul(k).Abs(), c.Residue().Mul(k))
}

func addCongruence(a, b congruence.Congruence) congruence.Congruence {
	if a.IsBottom() || b.IsBottom() {
		return congruence.Bottom()
	}
	g := number.GcdZ(a.Modulus(), b.Modulus())
	return congruence.New(g, a.Residue().Add(b.Residue()))
}

// residualCongruence derives the congruence class of v from "coeff*v = -rest".
func residualCongruence(rest congruence.Congruence, coeff number.Z) congruence.Congruence {
	if rest.IsBottom() {
		return congruence.Bottom()
	}
	if !rest.IsSingleton() {
		// rest's modulus is a multiple of |coeff| only in degenerate cases;
		// conservatively give up precision rather than derive an unsound
		// residue.
		return congruence.Top()
	}
	negRest := rest.Residue().Neg()
	if !negRest.Mod(coeff).IsZero() {
		return congruence.Bottom()
	}
	return congruence.Singleton(negRest.Div(coeff))
}
