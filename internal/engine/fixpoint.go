package engine

import (
	"ikos/internal/ar"
	"ikos/internal/callctx"
	"ikos/internal/errors"
	"ikos/internal/fixpoint"
)

// FunctionFixpoint drives one function's abstract interpretation: a
// block-level fixpoint.Iterator whose transfer function folds the
// numerical engine statement-by-statement across a block and resolves
// any Call/Invoke it meets through the call engine, then follows the
// block's terminator. A ConditionalBranch passes the same state to both
// successors; its condition is not applied per edge.
type FunctionFixpoint struct {
	ctx     *AnalysisContext
	fn      *ar.Function
	num     *NumericalExecutionEngine
	call    *CallExecutionEngine
	callCtx *callctx.Context

	// collect is false while the fixpoint is still iterating (a statement
	// may be analyzed many times before its pre-invariant stabilizes) and
	// true during the single post-convergence replay that fires each
	// statement's check hook exactly once.
	collect bool
	checks  []errors.CheckResult
	err     error
}

func NewFunctionFixpoint(ctx *AnalysisContext, fn *ar.Function, num *NumericalExecutionEngine, call *CallExecutionEngine, callCtx *callctx.Context) *FunctionFixpoint {
	return &FunctionFixpoint{ctx: ctx, fn: fn, num: num, call: call, callCtx: callCtx}
}

// Run computes the invariant flowing into and out of every reachable
// block, starting from entry bound at the function's entry block. Once
// the iteration converges, every block is replayed once from its final
// pre-invariant so each statement's check hook fires exactly once, on
// the invariant that actually holds there; blocks the fixpoint never
// reached are reported with Unreachable severity.
func (ff *FunctionFixpoint) Run(entry State) (pre, post map[*ar.BasicBlock]State, checks []errors.CheckResult, err error) {
	body := ff.fn.Body
	preds := body.Predecessors()
	successors := func(b *ar.BasicBlock) []*ar.BasicBlock { return b.Successors() }

	transfer := func(b *ar.BasicBlock, in State) State {
		return ff.execBlock(b, in)
	}

	it := fixpoint.New(body.Entry, successors, preds, transfer, Bottom(), entry, ff.ctx.Params.Parameters)
	pre, post = it.Run()

	ff.collect = true
	for _, b := range body.Blocks {
		in, reached := pre[b]
		if !reached || in.IsBottom() {
			ff.checks = append(ff.checks, errors.CheckResult{
				CheckName: "unreachable",
				Severity:  errors.Unreachable,
				Position:  blockPosition(b),
				Operands:  []string{b.Name},
			})
			continue
		}
		ff.execBlock(b, in)
		if ff.err != nil {
			break
		}
	}
	return pre, post, ff.checks, ff.err
}

func blockPosition(b *ar.BasicBlock) ar.Position {
	if len(b.Statements) > 0 {
		return b.Statements[0].Position()
	}
	if b.Terminator != nil {
		return b.Terminator.Position()
	}
	return ar.Position{}
}

func (ff *FunctionFixpoint) execBlock(b *ar.BasicBlock, in State) State {
	if ff.err != nil {
		return in
	}
	state := in
	for _, stmt := range b.Statements {
		if state.IsBottom() {
			break
		}
		state = ff.execStatement(stmt, state)
		if ff.err != nil {
			return state
		}
	}
	if !state.IsBottom() {
		state = ff.execTerminator(b.Terminator, state)
	}
	return state
}

func (ff *FunctionFixpoint) execStatement(stmt ar.Statement, in State) State {
	if call, ok := stmt.(ar.Call); ok {
		out, checks, err := ff.call.ExecuteCall(fromCall(call), ff.callCtx, in)
		ff.recordChecks(checks)
		if err != nil {
			ff.err = err
		}
		return out
	}
	result, err := ff.num.Exec(stmt, in)
	ff.recordChecks(result.Checks)
	if err != nil {
		ff.err = err
		return result.State
	}
	return result.State
}

func (ff *FunctionFixpoint) recordChecks(checks []errors.CheckResult) {
	if ff.collect {
		ff.checks = append(ff.checks, checks...)
	}
}

// execTerminator applies a block's terminator: a ReturnValue binds the
// synthetic return variable so the caller can read it back after the
// callee's fixpoint completes; an Invoke resolves like a Call but with
// two successor blocks instead of one, so branching is left to the
// fixpoint iterator following Successors() and this only performs the
// call's side effect once, on the Normal edge's state.
func (ff *FunctionFixpoint) execTerminator(term ar.Terminator, in State) State {
	switch t := term.(type) {
	case ar.ReturnValue:
		if t.Value == nil {
			return in
		}
		if isPointerValue(t.Value) {
			in.Mem = in.Mem.AssignPointer(returnVariable, evalPointer(in.Mem, t.Value))
		} else {
			in.Num = in.Num.Set(returnVariable, evalScalar(in.Num, t.Value))
		}
		return in
	case ar.Invoke:
		out, checks, err := ff.call.ExecuteCall(fromInvoke(t), ff.callCtx, in)
		ff.recordChecks(checks)
		if err != nil {
			ff.err = err
		}
		return out
	case ar.ConditionalBranch:
		// The branch condition itself does not narrow the state here:
		// true/false refinement per edge is Comparison's job when the
		// condition is produced by one (the common case after lowering),
		// and this terminator only forwards the (already possibly
		// narrowed) state to both successors. The fixpoint iterator joins
		// whatever each successor receives from every predecessor.
		return in
	default:
		return in
	}
}

func isPointerValue(v ar.Value) bool {
	_, ok := v.Type().(ar.PointerType)
	return ok
}
