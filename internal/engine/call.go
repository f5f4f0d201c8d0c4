package engine

import (
	"ikos/internal/ar"
	"ikos/internal/callctx"
	"ikos/internal/errors"
	"ikos/internal/interval"
	"ikos/internal/linear"
	"ikos/internal/memloc"
	"ikos/internal/memory"
	"ikos/internal/nullity"
	"ikos/internal/number"
	"ikos/internal/pointsto"
)

// CallExecutionEngine resolves a Call/Invoke statement using one of two
// strategies: context-insensitive (every call is an opaque,
// possibly-clobbering transfer) or inlining (the callee is analyzed as a
// nested fixpoint under an extended call context).
type CallExecutionEngine struct {
	ctx        *AnalysisContext
	bundle     *ar.Bundle
	numEngine  *NumericalExecutionEngine
	cache      map[cacheKey]cacheEntry
	inProgress map[cacheKey]bool
}

// cacheKey identifies one (callee, calling context) pair. The entry
// invariant itself is not part of the key: State isn't comparable, so
// instead the cached exit is only reused when the new entry invariant is
// Leq the one the cache was built from (see lookupCache), and recomputed
// otherwise. This is conservative rather than exact memoization.
type cacheKey struct {
	callee string
	ctx    *callctx.Context
}

type cacheEntry struct {
	entry  State
	exit   State
	checks []errors.CheckResult
}

func NewCallExecutionEngine(ctx *AnalysisContext, bundle *ar.Bundle, numEngine *NumericalExecutionEngine) *CallExecutionEngine {
	return &CallExecutionEngine{
		ctx:        ctx,
		bundle:     bundle,
		numEngine:  numEngine,
		cache:      make(map[cacheKey]cacheEntry),
		inProgress: make(map[cacheKey]bool),
	}
}

// callLike is the common shape of ar.Call and the call half of
// ar.Invoke, letting one ExecuteCall implementation serve both.
type callLike struct {
	LHS       *ar.Variable
	Callee    string
	Args      []ar.Value
	Intrinsic ar.Intrinsic
	Pos       ar.Position
}

func fromCall(c ar.Call) callLike {
	return callLike{LHS: c.LHS, Callee: c.Callee, Args: c.Args, Intrinsic: c.Intrinsic, Pos: c.Position()}
}

func fromInvoke(c ar.Invoke) callLike {
	return callLike{LHS: c.LHS, Callee: c.Callee, Args: c.Args, Intrinsic: c.Intrinsic, Pos: c.Position()}
}

// ExecuteCall runs the call transfer function and returns the caller
// state as it looks immediately after the call returns normally.
func (e *CallExecutionEngine) ExecuteCall(call callLike, callerCtx *callctx.Context, in State) (State, []errors.CheckResult, error) {
	if call.Intrinsic != ar.IntrinsicNone {
		return e.executeIntrinsic(call, in)
	}

	fn, ok := e.bundle.Functions[call.Callee]
	if !ok || fn.IsExternal() || !e.ctx.Params.Inline {
		return e.opaqueCall(call, in), nil, nil
	}

	childCtx := e.ctx.Contexts.Push(callerCtx, call.Callee)

	entryState := bindActuals(fn, call.Args, in)

	key := cacheKey{callee: call.Callee, ctx: childCtx}
	if cached, ok := e.cache[key]; ok && entryState.Leq(cached.entry) {
		return bindReturn(call, in, cached.exit), cached.checks, nil
	}
	// A (callee, context) pair already on the inlining stack is a
	// recursive cycle the saturated call string could not break; fall
	// back to the opaque transfer instead of recursing forever.
	if e.inProgress[key] {
		return e.opaqueCall(call, in), nil, nil
	}
	e.inProgress[key] = true
	defer delete(e.inProgress, key)

	ff := NewFunctionFixpoint(e.ctx, fn, e.numEngine, e, childCtx)
	_, post, checks, err := ff.Run(entryState)
	if err != nil {
		return in, checks, err
	}
	exitState := Bottom()
	for _, b := range fn.Body.ExitBlocks() {
		exitState = exitState.Join(post[b])
	}
	e.cache[key] = cacheEntry{entry: entryState, exit: exitState, checks: checks}

	return bindReturn(call, in, exitState), checks, nil
}

// bindActuals binds each formal parameter to its
// actual argument's current abstract value in a fresh Top state (the
// callee sees nothing about the caller's other variables, the standard
// non-relational interprocedural boundary).
func bindActuals(fn *ar.Function, args []ar.Value, caller State) State {
	callee := Top()
	for i, param := range fn.Params {
		if i >= len(args) {
			break
		}
		if isPointerType(param.Ty) {
			callee.Mem = callee.Mem.AssignPointer(param, evalPointer(caller.Mem, args[i]))
		} else {
			callee.Num = callee.Num.Set(param, evalScalar(caller.Num, args[i]))
		}
	}
	return callee
}

// bindReturn binds the call's LHS to the callee's
// returned value (if any) inside the caller state, otherwise leaves the
// caller state as it was.
func bindReturn(call callLike, caller State, exit State) State {
	if call.LHS == nil {
		return caller
	}
	if isPointerType(call.LHS.Ty) {
		caller.Mem = caller.Mem.AssignPointer(call.LHS, exit.Mem.PointerOf(returnVariable))
	} else {
		caller.Num = caller.Num.Set(call.LHS, exit.Num.Get(returnVariable))
	}
	return caller
}

// returnVariable is the synthetic variable a callee's ReturnValue
// statement binds, private to this package.
var returnVariable = &ar.Variable{Name: "$ret"}

func isPointerType(t ar.Type) bool {
	_, ok := t.(ar.PointerType)
	return ok
}

// opaqueCall is the context-insensitive strategy: the callee may have
// clobbered anything reachable through a pointer argument, and its
// return value is unknown.
func (e *CallExecutionEngine) opaqueCall(call callLike, in State) State {
	for _, arg := range call.Args {
		if !isPointerValue(arg) {
			continue
		}
		ptr := evalPointer(in.Mem, arg)
		in.Mem = in.Mem.Forget(ptr)
	}
	if call.LHS != nil {
		if isPointerType(call.LHS.Ty) {
			in.Mem = in.Mem.AssignPointer(call.LHS, memory.Pointer{
				Points: pointsto.Top[*memloc.Location](),
				Offset: interval.Top[number.Z](),
				Null:   nullity.Top,
			})
		} else {
			in.Num = in.Num.Forget(call.LHS)
		}
	}
	return in
}

func (e *CallExecutionEngine) executeIntrinsic(call callLike, in State) (State, []errors.CheckResult, error) {
	switch call.Intrinsic {
	case ar.IntrinsicMalloc:
		if call.LHS == nil {
			return in, nil, nil
		}
		loc := e.ctx.Locations.Alloc(call.Pos.String())
		in.Mem = in.Mem.Allocate(call.LHS, loc)
		return in, nil, nil
	case ar.IntrinsicFree:
		if len(call.Args) > 0 {
			ptr := evalPointer(in.Mem, call.Args[0])
			checks := useAfterFreeCheck(in.Mem, ptr, call.Pos, call.Args[0].String())
			in.Mem = in.Mem.UninitializeReachable(ptr)
			in.Mem = in.Mem.Deallocate(ptr)
			return in, checks, nil
		}
		return in, nil, nil
	case ar.IntrinsicMemset:
		if len(call.Args) > 1 {
			dst := evalPointer(in.Mem, call.Args[0])
			fill := evalScalar(in.Num, call.Args[1])
			if fill.IsSingleton() && fill.SingletonValue().IsZero() {
				in.Mem = in.Mem.Zero(dst)
			} else {
				in.Mem = in.Mem.Write(dst, interval.Top[number.Z]())
			}
		}
		return in, nil, nil
	case ar.IntrinsicMemcpy, ar.IntrinsicMemmove:
		if len(call.Args) > 1 {
			dst := evalPointer(in.Mem, call.Args[0])
			src := evalPointer(in.Mem, call.Args[1])
			in.Mem = in.Mem.Copy(dst, src)
		}
		return in, nil, nil
	case ar.IntrinsicAssert:
		return e.executeAssert(call, in)
	case ar.IntrinsicAbort:
		return Bottom(), nil, nil
	case ar.IntrinsicErrnoLocation:
		if call.LHS != nil {
			in.Mem = in.Mem.AssignPointer(call.LHS, memory.Pointer{
				Points: pointsto.Singleton(memloc.LibcErrno),
				Offset: interval.Singleton(number.ZeroZ),
				Null:   nullity.NonNull,
			})
		}
		return in, nil, nil
	default:
		return e.opaqueCall(call, in), nil, nil
	}
}

// executeAssert models __ikos_assert(cond): when cond provably holds on
// every path it reports Ok, when it provably never holds the statement's
// normal flow is infeasible (Bottom, ErrorSeverity), and otherwise it
// reports a Warning and narrows the state to the cond != 0 path, the
// same way a surviving branch narrows after a conditional.
func (e *CallExecutionEngine) executeAssert(call callLike, in State) (State, []errors.CheckResult, error) {
	if len(call.Args) == 0 {
		return in, nil, nil
	}
	cond := evalScalar(in.Num, call.Args[0])
	if cond.IsBottom() {
		return Bottom(), nil, nil
	}
	check := errors.CheckResult{
		CheckName: "assert",
		Position:  call.Pos,
		Info:      map[string]string{"code": errors.CodeAssertionFailure},
	}
	switch {
	case !cond.Contains(number.ZeroZ):
		check.Severity = errors.Ok
		return in, []errors.CheckResult{check}, nil
	case cond.IsSingleton():
		check.Severity = errors.ErrorSeverity
		return Bottom(), []errors.CheckResult{check}, nil
	default:
		check.Severity = errors.Warning
	}

	if expr, ok := valueExpr(call.Args[0]); ok {
		in.Num = in.Num.Assume(linear.NewConstraint(expr, linear.NotEqual))
		if in.Num.IsBottom() {
			return Bottom(), []errors.CheckResult{check}, nil
		}
	}
	return in, []errors.CheckResult{check}, nil
}
