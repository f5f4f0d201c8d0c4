package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ikos/internal/interval"
	"ikos/internal/linear"
	"ikos/internal/number"
	"ikos/internal/separate"
)

func topEnv() separate.Domain[string, interval.Interval[number.Z]] {
	return separate.Top[string, interval.Interval[number.Z]](interval.Top[number.Z]())
}

func TestSimpleEquality(t *testing.T) {
	// x - 5 == 0  =>  x == 5
	x := linear.Var[string]("x")
	sys := linear.NewSystem(linear.Eq(x.Add(linear.Constant[string](number.NewZ(-5)))))

	env, err := SolveIntervals(sys, topEnv())
	require.NoError(t, err)
	assert.True(t, env.Get("x").IsSingleton())
	assert.True(t, env.Get("x").SingletonValue().Eq(number.NewZ(5)))
}

func TestInfeasibleSystem(t *testing.T) {
	x := linear.Var[string]("x")
	sys := linear.NewSystem(
		linear.Eq(x.Add(linear.Constant[string](number.NewZ(-5)))),
		linear.Eq(x.Add(linear.Constant[string](number.NewZ(-6)))),
	)
	_, err := SolveIntervals(sys, topEnv())
	assert.ErrorIs(t, err, ErrInfeasible)
}

// TestSixConstraintSystem exercises a larger chained system:
//   x - y == 0
//   y - z == 0
//   z >= 2          (i.e. -z + 2 <= 0)
//   z <= 8          (i.e. z - 8 <= 0)
//   w - x - 1 == 0
//   w <= 100
// which should pin x, y, z to [2,8] and w to [3,9].
func TestSixConstraintSystem(t *testing.T) {
	x, y, z, w := linear.Var[string]("x"), linear.Var[string]("y"), linear.Var[string]("z"), linear.Var[string]("w")

	sys := linear.NewSystem(
		linear.Eq(x.Sub(y)),
		linear.Eq(y.Sub(z)),
		linear.Leq(z.Scale(number.NewZ(-1)).Add(linear.Constant[string](number.NewZ(2)))),
		linear.Leq(z.Add(linear.Constant[string](number.NewZ(-8)))),
		linear.Eq(w.Sub(x).Add(linear.Constant[string](number.NewZ(-1)))),
		linear.Leq(w.Add(linear.Constant[string](number.NewZ(-100)))),
	)

	env, err := SolveIntervals(sys, topEnv())
	require.NoError(t, err)

	assertRange := func(name string, lo, hi int64) {
		v := env.Get(name)
		require.False(t, v.IsBottom(), name)
		assert.True(t, v.Lb().Eq(number.FiniteBound(number.NewZ(lo))), "%s lb", name)
		assert.True(t, v.Ub().Eq(number.FiniteBound(number.NewZ(hi))), "%s ub", name)
	}
	assertRange("z", 2, 8)
	assertRange("y", 2, 8)
	assertRange("x", 2, 8)
	assertRange("w", 3, 9)
}

func TestLargeSystemUsesWorklist(t *testing.T) {
	vars := make([]linear.Expression[string], 10)
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	for idx, n := range names {
		vars[idx] = linear.Var[string](n)
	}
	sys := linear.NewSystem[string]()
	for i := 0; i < len(names)-1; i++ {
		sys.Add(linear.Eq(vars[i].Sub(vars[i+1])))
	}
	sys.Add(linear.Eq(vars[0].Add(linear.Constant[string](number.NewZ(-42)))))
	// Pad with enough terms to force the large-system path.
	for i := 0; i < 20; i++ {
		sys.Add(linear.Leq(vars[0].Add(linear.Constant[string](number.NewZ(-1000)))))
	}

	env, err := SolveIntervals(sys, topEnv())
	require.NoError(t, err)
	for _, n := range names {
		assert.True(t, env.Get(n).SingletonValue().Eq(number.NewZ(42)), n)
	}
}

// A chained system mixing half-lines with equality pins:
//   x >= 0, y >= x, z == 11, z >= x + 1, y <= z - 1, w == y + 1
// must propagate to x, y in [0,10], z = 11, w in [1,11].
func TestHalfLinesAndEqualityPins(t *testing.T) {
	x, y, z, w := linear.Var[string]("x"), linear.Var[string]("y"), linear.Var[string]("z"), linear.Var[string]("w")

	sys := linear.NewSystem(
		linear.Leq(x.Scale(number.NewZ(-1))),
		linear.Leq(x.Sub(y)),
		linear.Eq(z.Add(linear.Constant[string](number.NewZ(-11)))),
		linear.Leq(x.Add(linear.Constant[string](number.NewZ(1))).Sub(z)),
		linear.Leq(y.Sub(z).Add(linear.Constant[string](number.NewZ(1)))),
		linear.Eq(w.Sub(y).Add(linear.Constant[string](number.NewZ(-1)))),
	)

	env, err := SolveIntervals(sys, topEnv())
	require.NoError(t, err)

	assertRange := func(name string, lo, hi int64) {
		v := env.Get(name)
		require.False(t, v.IsBottom(), name)
		assert.True(t, v.Lb().Eq(number.FiniteBound(number.NewZ(lo))), "%s lb: %s", name, v)
		assert.True(t, v.Ub().Eq(number.FiniteBound(number.NewZ(hi))), "%s ub: %s", name, v)
	}
	assertRange("x", 0, 10)
	assertRange("y", 0, 10)
	assertRange("z", 11, 11)
	assertRange("w", 1, 11)
}

// Refining through a negative coefficient must take the bound from the
// weak end of the residual: x in [3,7] and x - y <= 0 implies y >= 3,
// not y >= 7.
func TestNegativeCoefficientUsesWeakResidualEnd(t *testing.T) {
	x := linear.Var[string]("x")
	y := linear.Var[string]("y")

	start := topEnv().Set("x", interval.FromBounds(number.FiniteBound(number.NewZ(3)), number.FiniteBound(number.NewZ(7))))
	sys := linear.NewSystem(linear.Leq(x.Sub(y)))

	env, err := SolveIntervals(sys, start)
	require.NoError(t, err)

	yv := env.Get("y")
	require.False(t, yv.IsBottom())
	assert.True(t, yv.Lb().Eq(number.FiniteBound(number.NewZ(3))), "y lb: %s", yv)
	assert.True(t, yv.Ub().IsPlusInf())
	// y = 4 with x = 3 satisfies the constraint and must stay admitted.
	assert.True(t, yv.Contains(number.NewZ(4)))
}
