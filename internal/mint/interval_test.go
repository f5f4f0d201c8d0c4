package mint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ikos/internal/interval"
	"ikos/internal/number"
)

func TestTopCoversTheRepresentableRange(t *testing.T) {
	signed := Top(8, true)
	require.False(t, signed.IsBottom())
	assert.True(t, signed.Underlying().Lb().Eq(number.FiniteBound(number.NewZ(-128))))
	assert.True(t, signed.Underlying().Ub().Eq(number.FiniteBound(number.NewZ(127))))

	unsigned := Top(8, false)
	assert.True(t, unsigned.Underlying().Lb().Eq(number.FiniteBound(number.ZeroZ)))
	assert.True(t, unsigned.Underlying().Ub().Eq(number.FiniteBound(number.NewZ(255))))
}

func TestOverflowingAddWrapsPastTheSeam(t *testing.T) {
	a := FromMachineInt(number.MustMachineInt(120, 8, true))
	b := FromMachineInt(number.MustMachineInt(100, 8, true))

	sum := a.Add(b)
	// 120 + 100 = 220 wraps to 220 - 256 = -36 as a signed 8-bit value,
	// and since the whole result lies past the seam the wrapped image is
	// still a single exact point.
	require.True(t, sum.Underlying().IsSingleton())
	assert.True(t, sum.Underlying().SingletonValue().Eq(number.NewZ(-36)))
}

func TestResultStraddlingTheSeamCollapsesToFullRange(t *testing.T) {
	// [120, 130] as signed 8-bit: 120..127 stay put, 128..130 wrap to
	// -128..-126, so the image splits in two and its hull is the range.
	v := interval.FromBounds(number.FiniteBound(number.NewZ(120)), number.FiniteBound(number.NewZ(130)))
	wrapped := Wrap(v, 8, true)
	assert.True(t, wrapped.Lb().Eq(number.FiniteBound(number.NewZ(-128))))
	assert.True(t, wrapped.Ub().Eq(number.FiniteBound(number.NewZ(127))))
}

func TestResultWiderThanTheTypeCollapsesToFullRange(t *testing.T) {
	v := interval.FromBounds(number.FiniteBound(number.ZeroZ), number.FiniteBound(number.NewZ(1000)))
	wrapped := Wrap(v, 8, false)
	assert.True(t, wrapped.Lb().Eq(number.FiniteBound(number.ZeroZ)))
	assert.True(t, wrapped.Ub().Eq(number.FiniteBound(number.NewZ(255))))
}

func TestInRangeArithmeticStaysExact(t *testing.T) {
	a := FromMachineInt(number.MustMachineInt(10, 32, true))
	b := FromMachineInt(number.MustMachineInt(32, 32, true))

	sum := a.Add(b)
	require.False(t, sum.IsBottom())
	assert.True(t, sum.Underlying().IsSingleton())
	assert.True(t, sum.Underlying().SingletonValue().Eq(number.NewZ(42)))

	neg := a.Neg()
	assert.True(t, neg.Underlying().SingletonValue().Eq(number.NewZ(-10)))
}

func TestNegOfMinimumWrapsToItself(t *testing.T) {
	min := FromMachineInt(number.MustMachineInt(-128, 8, true))
	neg := min.Neg()
	require.True(t, neg.Underlying().IsSingleton())
	assert.True(t, neg.Underlying().SingletonValue().Eq(number.NewZ(-128)))
}

func TestJoinMeetRespectTheShape(t *testing.T) {
	a := FromMachineInt(number.MustMachineInt(3, 16, false))
	b := FromMachineInt(number.MustMachineInt(9, 16, false))

	j := a.Join(b)
	assert.True(t, j.Underlying().Lb().Eq(number.FiniteBound(number.NewZ(3))))
	assert.True(t, j.Underlying().Ub().Eq(number.FiniteBound(number.NewZ(9))))

	m := j.Meet(b)
	assert.True(t, m.Underlying().IsSingleton())
	assert.True(t, m.Underlying().SingletonValue().Eq(number.NewZ(9)))

	disjoint := a.Meet(b)
	assert.True(t, disjoint.IsBottom())
}

func TestWidenLandsOnTheRepresentableLimit(t *testing.T) {
	a := FromMachineInt(number.MustMachineInt(0, 8, false))
	grown := a.Join(FromMachineInt(number.MustMachineInt(1, 8, false)))

	widened := a.Widen(grown)
	// The generic interval widening would jump to +oo; every concrete
	// value is representable, so the shape's limit is the true top.
	require.False(t, widened.IsBottom())
	assert.True(t, widened.Underlying().Ub().Eq(number.FiniteBound(number.NewZ(255))))
	assert.True(t, widened.Underlying().Lb().Eq(number.FiniteBound(number.ZeroZ)))
}

func TestLeqFollowsTheGenericOrder(t *testing.T) {
	narrow := FromMachineInt(number.MustMachineInt(5, 32, true))
	wide := Top(32, true)
	assert.True(t, narrow.Leq(wide))
	assert.False(t, wide.Leq(narrow))
	assert.True(t, Bottom(32, true).Leq(narrow))
}
