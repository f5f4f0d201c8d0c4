package number

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZArithmetic(t *testing.T) {
	a := NewZ(7)
	b := NewZ(3)
	assert.Equal(t, "10", a.Add(b).String())
	assert.Equal(t, "4", a.Sub(b).String())
	assert.Equal(t, "21", a.Mul(b).String())
	assert.Equal(t, "2", a.Div(b).String())
	assert.Equal(t, "1", a.Mod(b).String())
	assert.Equal(t, "-7", a.Neg().String())
	assert.True(t, NewZ(-7).Abs().Eq(a))
}

func TestGcdZ(t *testing.T) {
	assert.True(t, GcdZ(NewZ(12), NewZ(18)).Eq(NewZ(6)))
	assert.True(t, GcdZ(NewZ(-12), NewZ(18)).Eq(NewZ(6)))
}

func TestQArithmetic(t *testing.T) {
	a := NewQ(1, 2)
	b := NewQ(1, 3)
	assert.Equal(t, "5/6", a.Add(b).String())
	assert.True(t, NewQ(4, 2).IsInteger())
	assert.True(t, NewQ(4, 2).Floor().Eq(NewZ(2)))
	assert.True(t, NewQ(5, 2).Floor().Eq(NewZ(2)))
	assert.True(t, NewQ(5, 2).Ceil().Eq(NewZ(3)))
	assert.True(t, NewQ(-5, 2).Floor().Eq(NewZ(-3)))
}

func TestBoundArithmetic(t *testing.T) {
	pinf := PlusInfinity[Z]()
	minf := MinusInfinity[Z]()
	five := FiniteBound(NewZ(5))

	assert.True(t, pinf.Add(five).IsPlusInf())
	assert.True(t, minf.Add(five).IsMinusInf())
	assert.True(t, five.Add(FiniteBound(NewZ(2))).Eq(FiniteBound(NewZ(7))))
	assert.True(t, minf.Lt(five))
	assert.True(t, five.Lt(pinf))
	assert.Equal(t, "+oo", pinf.String())
	assert.Equal(t, "-oo", minf.String())
}

func TestMachineIntWraparound(t *testing.T) {
	require.True(t, ValidWidth(8))
	require.False(t, ValidWidth(128))

	_, err := NewMachineInt(0, 128, true)
	require.Error(t, err)

	u8, err := NewMachineInt(255, 8, false)
	require.NoError(t, err)
	assert.Equal(t, "255", u8.String())

	wrapped := u8.Add(MustMachineInt(1, 8, false))
	assert.Equal(t, "0", wrapped.String())

	s8 := MustMachineInt(127, 8, true)
	wrappedSigned := s8.Add(MustMachineInt(1, 8, true))
	assert.Equal(t, "-128", wrappedSigned.String())

	assert.Equal(t, "-128", MustMachineInt(0, 8, true).MinValue().String())
	assert.Equal(t, "127", MustMachineInt(0, 8, true).MaxValue().String())
	assert.Equal(t, "0", MustMachineInt(0, 8, false).MinValue().String())
	assert.Equal(t, "255", MustMachineInt(0, 8, false).MaxValue().String())
}
