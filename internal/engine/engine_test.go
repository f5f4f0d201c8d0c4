package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ikos/internal/ar"
	"ikos/internal/interval"
	"ikos/internal/nullity"
	"ikos/internal/number"
)

func newTestContext() *AnalysisContext {
	return NewAnalysisContext(DefaultParameters())
}

// p = &a (alloca); q = p + 4; load through q. Mirrors a getelementptr
// followed by a dereference: no error is raised, points-to(q) is the
// singleton {a}, offset(q) is exactly 4, and q is non-null.
func TestPointerShiftThenLoadIsPreciseForASingleAllocation(t *testing.T) {
	ctx := newTestContext()
	numEngine := NewNumericalExecutionEngine(ctx)

	p := &ar.Variable{Name: "p", Ty: ar.PointerType{}}
	q := &ar.Variable{Name: "q", Ty: ar.PointerType{}}
	x := &ar.Variable{Name: "x", Ty: ar.IntegerType{Width: 32, Signed: true}}

	state := Top()

	allocStmt := ar.Allocate{LHS: p, ElementType: ar.IntegerType{Width: 32, Signed: true}}
	res, err := numEngine.Exec(allocStmt, state)
	require.NoError(t, err)
	state = res.State

	shiftStmt := ar.PointerShift{LHS: q, Base: ar.VarValue{Var: p}, Offset: ar.IntConstant{Value: 4}}
	res, err = numEngine.Exec(shiftStmt, state)
	require.NoError(t, err)
	state = res.State

	qPtr := state.Mem.PointerOf(q)
	require.True(t, qPtr.Points.IsSingleton())
	assert.True(t, qPtr.Offset.IsSingleton())
	assert.True(t, qPtr.Offset.SingletonValue().Eq(number.NewZ(4)))
	assert.NotEqual(t, nullity.Null, qPtr.Null)

	loadStmt := ar.Load{LHS: x, Pointer: ar.VarValue{Var: q}}
	res, err = numEngine.Exec(loadStmt, state)
	require.NoError(t, err)
	assert.False(t, res.State.IsBottom())
}

// mem_write(p, 0, 4) then mem_read(x, p, 4) with p a singleton pointer
// reads back the written value exactly; after the pointee is forgotten
// (the conservative effect an opaque external call has on anything
// reachable through its pointer arguments) the same read returns Top.
func TestWriteThenReadRoundtripsUntilForgotten(t *testing.T) {
	ctx := newTestContext()
	numEngine := NewNumericalExecutionEngine(ctx)
	bundle := ar.NewBundle("test", ar.DataLayout{PointerWidth: 64})
	callEngine := NewCallExecutionEngine(ctx, bundle, numEngine)

	p := &ar.Variable{Name: "p", Ty: ar.PointerType{}}
	x := &ar.Variable{Name: "x", Ty: ar.IntegerType{Width: 32, Signed: true}}

	state := Top()
	allocStmt := ar.Allocate{LHS: p, ElementType: ar.IntegerType{Width: 32, Signed: true}}
	res, err := numEngine.Exec(allocStmt, state)
	require.NoError(t, err)
	state = res.State

	storeStmt := ar.Store{Pointer: ar.VarValue{Var: p}, Value: ar.IntConstant{Value: 0}}
	res, err = numEngine.Exec(storeStmt, state)
	require.NoError(t, err)
	state = res.State

	loadStmt := ar.Load{LHS: x, Pointer: ar.VarValue{Var: p}}
	res, err = numEngine.Exec(loadStmt, state)
	require.NoError(t, err)
	state = res.State
	val := state.Num.Get(x)
	require.True(t, val.IsSingleton())
	assert.True(t, val.SingletonValue().IsZero())

	call := callLike{Callee: "opaque_sink", Args: []ar.Value{ar.VarValue{Var: p}}}
	state, _, err = callEngine.ExecuteCall(call, nil, state)
	require.NoError(t, err)

	res, err = numEngine.Exec(loadStmt, state)
	require.NoError(t, err)
	val = res.State.Num.Get(x)
	assert.True(t, val.IsTop())
}

func TestDivisionByZeroConcreteCheck(t *testing.T) {
	ctx := newTestContext()
	numEngine := NewNumericalExecutionEngine(ctx)

	lhs := &ar.Variable{Name: "a", Ty: ar.IntegerType{Width: 32, Signed: true}}
	divisor := &ar.Variable{Name: "b", Ty: ar.IntegerType{Width: 32, Signed: true}}
	result := &ar.Variable{Name: "c", Ty: ar.IntegerType{Width: 32, Signed: true}}

	state := Top()
	state.Num = state.Num.Set(divisor, interval.Singleton(number.ZeroZ))

	stmt := ar.BinaryOperation{Op: ar.BinarySDiv, LHS: result, Left: ar.VarValue{Var: lhs}, Right: ar.VarValue{Var: divisor}}
	res, err := numEngine.Exec(stmt, state)
	require.NoError(t, err)
	require.Len(t, res.Checks, 1)
	assert.Equal(t, "division-by-zero", res.Checks[0].CheckName)
	assert.True(t, res.State.IsBottom())
}

// Machine arithmetic reduces to the destination type's two's-complement
// image: adding 120 + 100 into a signed 8-bit destination wraps to -36,
// while the same op annotated as UB-on-overflow keeps the exact 220.
func TestBinaryOperationWrapsToDestinationType(t *testing.T) {
	ctx := newTestContext()
	numEngine := NewNumericalExecutionEngine(ctx)

	i8 := ar.IntegerType{Width: 8, Signed: true}
	lhs := &ar.Variable{Name: "r", Ty: i8}

	add := ar.BinaryOperation{
		Op:    ar.BinaryAdd,
		LHS:   lhs,
		Left:  ar.IntConstant{Ty: i8, Value: 120},
		Right: ar.IntConstant{Ty: i8, Value: 100},
	}
	res, err := numEngine.Exec(add, Top())
	require.NoError(t, err)
	val := res.State.Num.Get(lhs)
	require.True(t, val.IsSingleton())
	assert.True(t, val.SingletonValue().Eq(number.NewZ(-36)))

	add.ExactOverflow = true
	res, err = numEngine.Exec(add, Top())
	require.NoError(t, err)
	val = res.State.Num.Get(lhs)
	require.True(t, val.IsSingleton())
	assert.True(t, val.SingletonValue().Eq(number.NewZ(220)))
}

// Truncation to a narrower type is the wraparound reduction: 300 as an
// unsigned 8-bit value is 44.
func TestTruncWrapsToNarrowerType(t *testing.T) {
	ctx := newTestContext()
	numEngine := NewNumericalExecutionEngine(ctx)

	u8 := ar.IntegerType{Width: 8, Signed: false}
	wide := &ar.Variable{Name: "w", Ty: ar.IntegerType{Width: 32, Signed: false}}
	narrow := &ar.Variable{Name: "n", Ty: u8}

	state := Top()
	state.Num = state.Num.Set(wide, interval.Singleton(number.NewZ(300)))

	trunc := ar.UnaryOperation{Op: ar.UnaryTrunc, LHS: narrow, Operand: ar.VarValue{Var: wide}}
	res, err := numEngine.Exec(trunc, state)
	require.NoError(t, err)
	val := res.State.Num.Get(narrow)
	require.True(t, val.IsSingleton())
	assert.True(t, val.SingletonValue().Eq(number.NewZ(44)))
}
