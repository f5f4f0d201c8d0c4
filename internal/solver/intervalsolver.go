// Package solver implements the Harvey & Stuckey interval-constraint
// propagation algorithm used to refine a numerical environment against a
// linear constraint system, plus an analogous solver for the congruence
// domain. Bottom (infeasibility) is signalled by returning an error value
// threaded through the propagation loop, never by panicking.
package solver

import (
	"errors"

	"ikos/internal/interval"
	"ikos/internal/linear"
	"ikos/internal/number"
	"ikos/internal/separate"
)

// ErrInfeasible is returned when propagation proves the constraint system
// has no solution in the current environment.
var ErrInfeasible = errors.New("linear constraint system is infeasible")

// Scheduling thresholds: below these sizes the solver iterates the whole
// constraint list to a fixpoint each round; above them it uses the
// trigger-table worklist instead. MaxCycles
// bounds both schedules -- propagation over interval bounds is not
// guaranteed to quiesce on its own (a pair like x = y, y = x + 1 refines
// forever), so the solver stops after MaxCycles sweeps (small systems) or
// MaxCycles * per-cycle cost individual propagations (large systems) and
// keeps whatever over-approximation it has reached, which is always sound.
const (
	LargeSystemCstThreshold = 3
	LargeSystemOpThreshold  = 27
	MaxCycles               = 10
)

// SolveIntervals refines env against sys until no constraint can tighten
// any variable further, or returns ErrInfeasible if a constraint becomes
// unsatisfiable.
func SolveIntervals[V comparable](sys *linear.System[V], start separate.Domain[V, interval.Interval[number.Z]]) (separate.Domain[V, interval.Interval[number.Z]], error) {
	if start.IsBottom() {
		return start, ErrInfeasible
	}
	if sys.NumConstraints() == 0 {
		return start, nil
	}

	cur := start
	if sys.NumConstraints() <= LargeSystemCstThreshold || sys.NumOperations() <= LargeSystemOpThreshold {
		return solveSmallSystem(sys, cur)
	}
	return solveLargeSystem(sys, cur)
}

// solveSmallSystem repeatedly sweeps every constraint until a full pass
// makes no further progress, or MaxCycles sweeps have run.
func solveSmallSystem[V comparable](sys *linear.System[V], cur separate.Domain[V, interval.Interval[number.Z]]) (separate.Domain[V, interval.Interval[number.Z]], error) {
	for cycle := 0; cycle < MaxCycles; cycle++ {
		changed := false
		for _, c := range sys.Constraints {
			next, progressed, err := propagate(c, cur)
			if err != nil {
				return cur, err
			}
			if progressed {
				changed = true
				cur = next
			}
		}
		if !changed {
			return cur, nil
		}
	}
	return cur, nil
}

// solveLargeSystem uses a worklist keyed by which constraints mention a
// variable, so that only constraints whose inputs actually changed are
// re-examined.
func solveLargeSystem[V comparable](sys *linear.System[V], cur separate.Domain[V, interval.Interval[number.Z]]) (separate.Domain[V, interval.Interval[number.Z]], error) {
	trigger := buildTriggerTable(sys)
	worklist := make([]int, len(sys.Constraints))
	queued := make([]bool, len(sys.Constraints))
	for i := range sys.Constraints {
		worklist[i] = i
		queued[i] = true
	}

	maxOp := MaxCycles * sys.NumOperations()
	for op := 0; len(worklist) > 0 && op < maxOp; op++ {
		idx := worklist[0]
		worklist = worklist[1:]
		queued[idx] = false

		next, progressed, err := propagate(sys.Constraints[idx], cur)
		if err != nil {
			return cur, err
		}
		if !progressed {
			continue
		}
		cur = next
		for _, v := range sys.Constraints[idx].Expr.Variables() {
			for _, dep := range trigger[anyKey(v)] {
				if dep != idx && !queued[dep] {
					worklist = append(worklist, dep)
					queued[dep] = true
				}
			}
		}
	}
	return cur, nil
}

// buildTriggerTable maps each variable to the indices of constraints that
// mention it, so a change to that variable's interval knows which other
// constraints to re-examine.
func buildTriggerTable[V comparable](sys *linear.System[V]) map[any][]int {
	table := make(map[any][]int)
	for i, c := range sys.Constraints {
		for _, v := range c.Expr.Variables() {
			k := anyKey(v)
			table[k] = append(table[k], i)
		}
	}
	return table
}

func anyKey[V comparable](v V) any { return v }

// propagate computes, for every variable in c, the residual interval
// implied by the other variables' current bounds and meets it into cur.
// It returns whether any variable's interval was tightened.
func propagate[V comparable](c linear.Constraint[V], cur separate.Domain[V, interval.Interval[number.Z]]) (separate.Domain[V, interval.Interval[number.Z]], bool, error) {
	vars := c.Expr.Variables()
	progressed := false
	for _, v := range vars {
		residual, err := computeResidual(c, v, cur)
		if err != nil {
			return cur, false, err
		}
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

// computeResidual isolates `for` on one side of c: for a*x + rest <pred> 0,
// it derives the bound on x implied by the current interval of every other
// variable.
func computeResidual[V comparable](c linear.Constraint[V], forVar V, cur separate.Domain[V, interval.Interval[number.Z]]) (interval.Interval[number.Z], error) {
	coeff := c.Expr.Coefficient(forVar)
	if coeff.IsZero() {
		return interval.Top[number.Z](), nil
	}

	// rest = sum over other variables + constant
	restIv := interval.Singleton(c.Expr.ConstantTerm())
	for _, v := range c.Expr.Variables() {
		if v == forVar {
			continue
		}
		termCoeff := c.Expr.Coefficient(v)
		vi := cur.Get(v)
		if vi.IsBottom() {
			return interval.Bottom[number.Z](), ErrInfeasible
		}
		restIv = restIv.Add(interval.Singleton(termCoeff).Mul(vi))
	}

	// coeff*x + rest <pred> 0  =>  coeff*x <pred> -rest
	negRest := restIv.Neg()

	switch c.Pred {
	case linear.Equal:
		lb := boundDivCeil(negRest.Lb(), coeff)
		ub := boundDivFloor(negRest.Ub(), coeff)
		if coeff.Sign() < 0 {
			lb, ub = boundDivCeil(negRest.Ub(), coeff), boundDivFloor(negRest.Lb(), coeff)
		}
		return interval.FromBounds(lb, ub), nil
	case linear.LessEqual:
		// coeff*x <= n for some n in negRest; the weakest sound bound
		// takes n at negRest's upper end (dividing by a negative coeff
		// flips the relation, not which end is weakest).
		if coeff.Sign() > 0 {
			return boundLTE(boundDivFloor(negRest.Ub(), coeff)), nil
		}
		return boundGTE(boundDivCeil(negRest.Ub(), coeff)), nil
	case linear.LessThan:
		// Strict bound over the integers: x < q means x <= ceil(q)-1 and
		// x > q means x >= floor(q)+1, which is exact whether or not q is
		// itself an integer.
		if coeff.Sign() > 0 {
			return boundLTE(boundDivCeil(negRest.Ub(), coeff).Sub(number.FiniteBound(number.OneZ))), nil
		}
		return boundGTE(boundDivFloor(negRest.Ub(), coeff).Add(number.FiniteBound(number.OneZ))), nil
	case linear.NotEqual:
		return trimDisequation(negRest, coeff, cur.Get(forVar))
	default:
		return interval.Top[number.Z](), nil
	}
}

// boundDivFloor divides an (extended) bound by |coeff|, rounding the
// quotient down, and flips sign/infinity-direction when coeff is negative.
func boundDivFloor(b number.Bound[number.Z], coeff number.Z) number.Bound[number.Z] {
	if !b.IsFinite() {
		if coeff.Sign() > 0 {
			return b
		}
		return b.Neg()
	}
	v := b.Value()
	if coeff.Sign() < 0 {
		return number.FiniteBound(boundDivCeilValue(v, coeff.Abs()).Neg())
	}
	return number.FiniteBound(boundDivFloorValue(v, coeff.Abs()))
}

// boundDivCeil divides an (extended) bound by |coeff|, rounding the
// quotient up, and flips sign/infinity-direction when coeff is negative.
func boundDivCeil(b number.Bound[number.Z], coeff number.Z) number.Bound[number.Z] {
	if !b.IsFinite() {
		if coeff.Sign() > 0 {
			return b
		}
		return b.Neg()
	}
	v := b.Value()
	if coeff.Sign() < 0 {
		return number.FiniteBound(boundDivFloorValue(v, coeff.Abs()).Neg())
	}
	return number.FiniteBound(boundDivCeilValue(v, coeff.Abs()))
}

func boundDivFloorValue(v, pos number.Z) number.Z {
	q := v.Div(pos)
	if v.Sign() < 0 && !v.Mod(pos).IsZero() {
		q = q.Sub(number.OneZ)
	}
	return q
}

func boundDivCeilValue(v, pos number.Z) number.Z {
	q := v.Div(pos)
	if v.Sign() > 0 && !v.Mod(pos).IsZero() {
		q = q.Add(number.OneZ)
	}
	return q
}

func boundLTE(b number.Bound[number.Z]) interval.Interval[number.Z] {
	if !b.IsFinite() {
		return interval.Top[number.Z]()
	}
	return interval.LTE(b.Value())
}

func boundGTE(b number.Bound[number.Z]) interval.Interval[number.Z] {
	if !b.IsFinite() {
		return interval.Top[number.Z]()
	}
	return interval.GTE(b.Value())
}

// trimDisequation handles x != k style constraints: when the current
// interval for x is a singleton equal to the
// forbidden value, the whole interval is infeasible; when the forbidden
// value sits exactly on a (non-singleton) boundary, that boundary shrinks
// by one, matching the integer disequation trimming the solver performs.
func trimDisequation(negRest interval.Interval[number.Z], coeff number.Z, cur interval.Interval[number.Z]) (interval.Interval[number.Z], error) {
	if !negRest.IsSingleton() {
		return interval.Top[number.Z](), nil
	}
	forbiddenNum := negRest.SingletonValue()
	if !forbiddenNum.Mod(coeff).IsZero() {
		return interval.Top[number.Z](), nil
	}
	forbidden := forbiddenNum.Div(coeff)

	if cur.IsSingleton() && cur.SingletonValue().Eq(forbidden) {
		return interval.Bottom[number.Z](), ErrInfeasible
	}
	if cur.Lb().IsFinite() && cur.Lb().Value().Eq(forbidden) {
		return interval.GTE(forbidden.Add(number.OneZ)), nil
	}
	if cur.Ub().IsFinite() && cur.Ub().Value().Eq(forbidden) {
		return interval.LTE(forbidden.Sub(number.OneZ)), nil
	}
	return interval.Top[number.Z](), nil
}
