package engine

import (
	"ikos/internal/ar"
	"ikos/internal/errors"
	"ikos/internal/interval"
	"ikos/internal/lifetime"
	"ikos/internal/linear"
	"ikos/internal/memory"
	"ikos/internal/mint"
	"ikos/internal/number"
)

// NumericalExecutionEngine runs the per-statement transfer functions,
// dispatching on AR statement kind.
type NumericalExecutionEngine struct {
	ctx *AnalysisContext
}

func NewNumericalExecutionEngine(ctx *AnalysisContext) *NumericalExecutionEngine {
	return &NumericalExecutionEngine{ctx: ctx}
}

// Result is one statement's transfer outcome: the resulting state plus
// any checker-facing results the statement produced (e.g. a proven
// division-by-zero or a cross-allocation-site pointer comparison).
type Result struct {
	State   State
	Checks  []errors.CheckResult
}

// Exec applies stmt's transfer function to in, returning the successor
// state. A non-nil error is always a *errors.StructuralError: an AR
// well-formedness problem, never an abstract-semantics outcome (those are
// represented by State.IsBottom() and reported via Result.Checks
// instead).
func (e *NumericalExecutionEngine) Exec(stmt ar.Statement, in State) (Result, error) {
	if in.IsBottom() {
		return Result{State: in}, nil
	}
	switch s := stmt.(type) {
	case ar.Assignment:
		return e.execAssignment(s, in)
	case ar.UnaryOperation:
		return e.execUnary(s, in)
	case ar.BinaryOperation:
		return e.execBinary(s, in)
	case ar.Comparison:
		return e.execComparison(s, in)
	case ar.Allocate:
		return e.execAllocate(s, in)
	case ar.PointerShift:
		return e.execPointerShift(s, in)
	case ar.Load:
		return e.execLoad(s, in)
	case ar.Store:
		return e.execStore(s, in)
	case ar.ExtractElement, ar.InsertElement, ar.ShuffleVector:
		// Aggregate element operations are not resolved to scalar
		// literals by this engine; the variable they define is
		// conservatively forgotten rather than silently left stale.
		return e.forgetLHS(stmt, in), nil
	case ar.LandingPad:
		return Result{State: in}, nil
	case ar.Unreachable:
		return Result{State: Bottom()}, nil
	default:
		return Result{State: in}, errors.New(errors.UnexpectedOperand, stmt.Position(), "unsupported statement kind %T", stmt)
	}
}

func (e *NumericalExecutionEngine) forgetLHS(stmt ar.Statement, in State) Result {
	var lhs *ar.Variable
	switch s := stmt.(type) {
	case ar.ExtractElement:
		lhs = s.LHS
	case ar.InsertElement:
		lhs = s.LHS
	case ar.ShuffleVector:
		lhs = s.LHS
	}
	if lhs != nil {
		in.Num = in.Num.Forget(lhs)
	}
	return Result{State: in}
}

func (e *NumericalExecutionEngine) execAssignment(s ar.Assignment, in State) (Result, error) {
	in.Num = in.Num.Set(s.LHS, evalScalar(in.Num, s.RHS))
	return Result{State: in}, nil
}

func (e *NumericalExecutionEngine) execUnary(s ar.UnaryOperation, in State) (Result, error) {
	operand := evalScalar(in.Num, s.Operand)
	var result interval.Interval[number.Z]
	switch s.Op {
	case ar.UnaryNeg:
		result = wrapToType(s.LHS.Ty, operand.Neg())
	case ar.UnaryTrunc:
		// Truncation is exactly the wraparound reduction to the narrower
		// destination type.
		result = wrapToType(s.LHS.Ty, operand)
	case ar.UnarySext, ar.UnaryZext, ar.UnaryBitcast:
		// Extensions keep the source magnitude bound; a zero-extension of
		// a negative signed value reinterprets bits in a way the source
		// interval cannot express, so it stays conservative rather than
		// re-deriving a destination range.
		result = operand
		if s.Op == ar.UnaryZext && !operand.IsBottom() && operand.Lb().Lt(number.FiniteBound(number.ZeroZ)) {
			result = interval.Top[number.Z]()
		}
	default:
		result = interval.Top[number.Z]()
	}
	in.Num = in.Num.Set(s.LHS, result)
	return Result{State: in}, nil
}

// wrapToType reduces an arithmetic result to its destination machine
// type under two's-complement wraparound. Non-integer or unknown-width
// destinations pass through unchanged.
func wrapToType(t ar.Type, v interval.Interval[number.Z]) interval.Interval[number.Z] {
	it, ok := t.(ar.IntegerType)
	if !ok || !number.ValidWidth(it.Width) {
		return v
	}
	return mint.Wrap(v, it.Width, it.Signed)
}

func (e *NumericalExecutionEngine) execBinary(s ar.BinaryOperation, in State) (Result, error) {
	left := evalScalar(in.Num, s.Left)
	right := evalScalar(in.Num, s.Right)
	var result interval.Interval[number.Z]
	var checks []errors.CheckResult

	switch s.Op {
	case ar.BinaryAdd:
		result = left.Add(right)
	case ar.BinarySub:
		result = left.Sub(right)
	case ar.BinaryMul:
		result = left.Mul(right)
	case ar.BinarySDiv, ar.BinaryUDiv, ar.BinarySRem, ar.BinaryURem:
		var check *errors.CheckResult
		result, check = divide(s, left, right)
		if check != nil {
			checks = append(checks, *check)
		}
		if result.IsBottom() {
			return Result{State: Bottom(), Checks: checks}, nil
		}
	default:
		// Bitwise/shift operators are not modeled by the interval
		// domain; the result is unknown but the state remains feasible.
		result = interval.Top[number.Z]()
	}
	// An op annotated as UB-on-overflow keeps the exact result (the
	// front-end guarantees it never wraps); everything else reduces to
	// the destination type's two's-complement image.
	if !s.ExactOverflow {
		result = wrapToType(s.LHS.Ty, result)
	}
	in.Num = in.Num.Set(s.LHS, result)
	return Result{State: in, Checks: checks}, nil
}

// divide implements the concrete division-by-zero check:
// a divisor interval that provably contains only zero makes the
// statement's normal flow infeasible and is reported as an Error; a
// divisor that merely might be zero is reported as a Warning and the
// result conservatively approximated as Top.
func divide(s ar.BinaryOperation, left, right interval.Interval[number.Z]) (interval.Interval[number.Z], *errors.CheckResult) {
	if right.IsBottom() || left.IsBottom() {
		return interval.Bottom[number.Z](), nil
	}
	if !right.Contains(number.ZeroZ) {
		return interval.Top[number.Z](), nil
	}
	severity := errors.Warning
	if right.IsSingleton() {
		severity = errors.ErrorSeverity
	}
	check := errors.CheckResult{
		CheckName: "division-by-zero",
		Severity:  severity,
		Position:  s.Position(),
		Info:      map[string]string{"code": errors.CodeDivisionByZero},
	}
	if severity == errors.ErrorSeverity {
		return interval.Bottom[number.Z](), &check
	}
	return interval.Top[number.Z](), &check
}

func (e *NumericalExecutionEngine) execComparison(s ar.Comparison, in State) (Result, error) {
	if isPointerType(s.Left.Type()) || isPointerType(s.Right.Type()) {
		return e.execPointerComparison(s, in)
	}

	left, leftOk := valueExpr(s.Left)
	right, rightOk := valueExpr(s.Right)
	if !leftOk || !rightOk {
		return Result{State: in}, nil
	}
	diff := left.Sub(right)

	var pred linear.Predicate
	switch s.Pred {
	case ar.CmpEQ:
		pred = linear.Equal
	case ar.CmpSLE, ar.CmpULE:
		pred = linear.LessEqual
	case ar.CmpSLT, ar.CmpULT:
		pred = linear.LessThan
	case ar.CmpNE:
		pred = linear.NotEqual
	case ar.CmpSGE, ar.CmpUGE:
		diff = right.Sub(left)
		pred = linear.LessEqual
	case ar.CmpSGT, ar.CmpUGT:
		diff = right.Sub(left)
		pred = linear.LessThan
	default:
		return Result{State: in}, nil
	}

	in.Num = in.Num.Assume(linear.NewConstraint(diff, pred))
	if in.Num.IsBottom() {
		return Result{State: Bottom()}, nil
	}
	if s.LHS != nil {
		in.Num = in.Num.Set(s.LHS, interval.FromBounds(number.FiniteBound(number.ZeroZ), number.FiniteBound(number.OneZ)))
	}
	return Result{State: in}, nil
}

// execPointerComparison handles a Comparison whose operands are pointer
// values: the numerical domain has nothing to assume (pointer identity
// isn't a linear fact), so its only job is the cross-allocation-site
// check -- reported as a Warning since the analysis cannot in
// general prove two points-to sets are equal or disjoint, only that they
// admit (or don't admit) a pair of distinct origins.
func (e *NumericalExecutionEngine) execPointerComparison(s ar.Comparison, in State) (Result, error) {
	left := evalPointer(in.Mem, s.Left)
	right := evalPointer(in.Mem, s.Right)

	var checks []errors.CheckResult
	if (s.Pred == ar.CmpEQ || s.Pred == ar.CmpNE) && crossAllocationSite(left, right) {
		checks = append(checks, errors.CrossAllocationComparison(s.Position(), s.Left.String(), s.Right.String()))
	}

	if s.LHS != nil {
		in.Num = in.Num.Set(s.LHS, interval.FromBounds(number.FiniteBound(number.ZeroZ), number.FiniteBound(number.OneZ)))
	}
	return Result{State: in, Checks: checks}, nil
}

// crossAllocationSite reports whether left and right's points-to sets
// admit at least one pair of distinct allocation sites they could
// respectively resolve to.
func crossAllocationSite(left, right memory.Pointer) bool {
	if left.Points.IsTop() || right.Points.IsTop() {
		return true
	}
	if left.Points.IsBottom() || right.Points.IsBottom() {
		return false
	}
	for _, l := range left.Points.Members() {
		for _, r := range right.Points.Members() {
			if l != r {
				return true
			}
		}
	}
	return false
}

func valueExpr(v ar.Value) (linear.Expression[*ar.Variable], bool) {
	switch val := v.(type) {
	case ar.VarValue:
		return linear.Var[*ar.Variable](val.Var), true
	case ar.IntConstant:
		return linear.Constant[*ar.Variable](number.NewZ(val.Value)), true
	default:
		return linear.Expression[*ar.Variable]{}, false
	}
}

func (e *NumericalExecutionEngine) execAllocate(s ar.Allocate, in State) (Result, error) {
	loc := e.ctx.Locations.Alloc(s.Position().String())
	in.Mem = in.Mem.Allocate(s.LHS, loc)
	return Result{State: in}, nil
}

func (e *NumericalExecutionEngine) execPointerShift(s ar.PointerShift, in State) (Result, error) {
	base := evalPointer(in.Mem, s.Base)
	delta := evalScalar(in.Num, s.Offset)
	shifted := base.WithOffset(delta)
	in.Mem = in.Mem.AssignPointer(s.LHS, shifted)
	return Result{State: in}, nil
}

func (e *NumericalExecutionEngine) execLoad(s ar.Load, in State) (Result, error) {
	ptr := evalPointer(in.Mem, s.Pointer)
	if ptr.Points.IsBottom() {
		return Result{State: Bottom()}, nil
	}
	checks := useAfterFreeCheck(in.Mem, ptr, s.Position(), s.Pointer.String())
	val, _ := in.Mem.Read(ptr)
	in.Num = in.Num.Set(s.LHS, val)
	return Result{State: in, Checks: checks}, nil
}

func (e *NumericalExecutionEngine) execStore(s ar.Store, in State) (Result, error) {
	ptr := evalPointer(in.Mem, s.Pointer)
	if ptr.Points.IsBottom() {
		return Result{State: Bottom()}, nil
	}
	checks := useAfterFreeCheck(in.Mem, ptr, s.Position(), s.Pointer.String())
	val := evalScalar(in.Num, s.Value)
	in.Mem = in.Mem.Write(ptr, val)
	return Result{State: in, Checks: checks}, nil
}

// useAfterFreeCheck queries ptr's lifetime and reports a use-after-free
// diagnostic when any pointee has (possibly or definitely) already been
// deallocated.
func useAfterFreeCheck(mem memory.Domain[*ar.Variable], ptr memory.Pointer, pos ar.Position, operand string) []errors.CheckResult {
	switch mem.LifetimeOf(ptr) {
	case lifetime.Deallocated:
		return []errors.CheckResult{errors.UseAfterFree(pos, operand, true)}
	case lifetime.Top:
		return []errors.CheckResult{errors.UseAfterFree(pos, operand, false)}
	default:
		return nil
	}
}
