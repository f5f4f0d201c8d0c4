package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ikos/internal/number"
)

func TestExpressionArithmetic(t *testing.T) {
	x := Var[string]("x")
	y := Var[string]("y")

	e := x.Add(y.Scale(number.NewZ(2))).Add(Constant[string](number.NewZ(3)))
	assert.True(t, e.Coefficient("x").Eq(number.OneZ))
	assert.True(t, e.Coefficient("y").Eq(number.NewZ(2)))
	assert.True(t, e.ConstantTerm().Eq(number.NewZ(3)))
}

func TestExpressionCancelsZeroCoefficients(t *testing.T) {
	x := Var[string]("x")
	e := x.Sub(x)
	assert.Equal(t, 0, e.NumTerms())
	assert.True(t, e.ConstantTerm().IsZero())
}

func TestSystemMetrics(t *testing.T) {
	x := Var[string]("x")
	y := Var[string]("y")
	sys := NewSystem(
		Leq(x.Sub(y).Add(Constant[string](number.NewZ(-1)))),
		Eq(x.Add(y)),
	)
	assert.Equal(t, 2, sys.NumConstraints())
	assert.ElementsMatch(t, []string{"x", "y"}, sys.Variables())
}
