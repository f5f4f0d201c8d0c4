package numdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ikos/internal/congruence"
	"ikos/internal/interval"
	"ikos/internal/linear"
	"ikos/internal/number"
)

func TestIntervalDomainAssignAndAssume(t *testing.T) {
	d := TopInterval[string]()
	d = d.Assign("x", linear.Constant[string](number.NewZ(0)))

	for i := 0; i < 3; i++ {
		body := d.Assign("x", linear.Var[string]("x").Add(linear.Constant[string](number.NewZ(1))))
		d = d.Widen(body)
	}
	assert.True(t, d.Get("x").Ub().IsPlusInf())

	guard := linear.Leq(linear.Var[string]("x").Add(linear.Constant[string](number.NewZ(-10))))
	narrowed := d.AssumeSystem(linear.NewSystem(guard))
	assert.True(t, narrowed.Get("x").Ub().Eq(number.FiniteBound(number.NewZ(10))))
}

func TestIntervalDomainInfeasibleAssume(t *testing.T) {
	d := TopInterval[string]()
	d = d.Assign("x", linear.Constant[string](number.NewZ(5)))
	c := linear.Eq(linear.Var[string]("x").Add(linear.Constant[string](number.NewZ(-6))))
	assert.True(t, d.Assume(c).IsBottom())
}

func TestCongruenceDomainAssume(t *testing.T) {
	d := TopCongruence[string]()
	c := linear.Eq(linear.Var[string]("x").Scale(number.OneZ).Sub(linear.Var[string]("y").Scale(number.NewZ(2))))
	refined := d.AssumeSystem(linear.NewSystem(c))
	assert.False(t, refined.IsBottom())
}

func TestIntervalCongruenceDomainReduction(t *testing.T) {
	d := TopIntervalCongruence[string]()
	iv := interval.FromBounds(number.FiniteBound(number.NewZ(0)), number.FiniteBound(number.NewZ(10)))
	d = d.SetInterval("x", iv)
	d = d.SetCongruence("x", congruence.New(number.NewZ(2), number.NewZ(1)))

	x := d.Get("x")
	require.False(t, x.IsBottom())
	assert.True(t, x.Interval().Lb().Eq(number.FiniteBound(number.NewZ(1))))
	assert.True(t, x.Interval().Ub().Eq(number.FiniteBound(number.NewZ(9))))
}
