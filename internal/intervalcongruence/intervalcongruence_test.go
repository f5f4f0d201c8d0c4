package intervalcongruence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ikos/internal/congruence"
	"ikos/internal/interval"
	"ikos/internal/number"
)

func z(i int64) number.Z { return number.NewZ(i) }

func TestReductionTightensInterval(t *testing.T) {
	iv := interval.FromBounds(number.FiniteBound(z(0)), number.FiniteBound(z(10)))
	evens := congruence.New(z(2), z(0))

	x := New(iv, congruence.New(z(2), z(1))) // odds in [0,10]
	_ = evens
	assert.False(t, x.IsBottom())
	assert.True(t, x.Interval().Lb().Eq(number.FiniteBound(z(1))))
	assert.True(t, x.Interval().Ub().Eq(number.FiniteBound(z(9))))
}

func TestSingletonCollapse(t *testing.T) {
	x := Singleton(z(7))
	assert.True(t, x.Congruence().IsSingleton())
	assert.True(t, x.Interval().Lb().Eq(number.FiniteBound(z(7))))
}

func TestIncompatibleIsBottom(t *testing.T) {
	iv := interval.Singleton(z(4))
	odds := congruence.New(z(2), z(1))
	x := New(iv, odds)
	assert.True(t, x.IsBottom())
}
