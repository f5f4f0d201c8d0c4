package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ikos/internal/number"
)

func z(i int64) number.Z { return number.NewZ(i) }

func TestJoinMeet(t *testing.T) {
	a := FromBounds(number.FiniteBound(z(0)), number.FiniteBound(z(5)))
	b := FromBounds(number.FiniteBound(z(3)), number.FiniteBound(z(10)))

	joined := a.Join(b)
	assert.True(t, joined.Equals(FromBounds(number.FiniteBound(z(0)), number.FiniteBound(z(10)))))

	met := a.Meet(b)
	assert.True(t, met.Equals(FromBounds(number.FiniteBound(z(3)), number.FiniteBound(z(5)))))

	disjointA := Singleton(z(0))
	disjointB := Singleton(z(1))
	assert.True(t, disjointA.Meet(disjointB).IsBottom())
}

// TestWideningThenNarrowing reproduces the "x=0; while (x<=10) x=x+1;"
// scenario: widening on the increasing iteration sequence must jump the
// upper bound straight to +∞, and a single narrowing iteration against the
// loop guard must bring it back down to 11.
func TestWideningThenNarrowing(t *testing.T) {
	iter0 := Singleton(z(0))
	iter1 := FromBounds(number.FiniteBound(z(0)), number.FiniteBound(z(1)))

	widened := iter0.Widen(iter1)
	assert.True(t, widened.Ub().IsPlusInf())
	assert.True(t, widened.Lb().Eq(number.FiniteBound(z(0))))

	loopGuard := FromBounds(number.FiniteBound(z(0)), number.FiniteBound(z(11)))
	narrowed := widened.Narrow(loopGuard)
	assert.True(t, narrowed.Equals(FromBounds(number.FiniteBound(z(0)), number.FiniteBound(z(11)))))
}

func TestMul(t *testing.T) {
	a := FromBounds(number.FiniteBound(z(-2)), number.FiniteBound(z(3)))
	b := FromBounds(number.FiniteBound(z(-1)), number.FiniteBound(z(4)))
	product := a.Mul(b)
	assert.True(t, product.Equals(FromBounds(number.FiniteBound(z(-8)), number.FiniteBound(z(12)))))
}

func TestZeroTimesInfinityIsZero(t *testing.T) {
	top := Top[number.Z]()
	zero := Singleton(z(0))
	assert.True(t, zero.Mul(top).Equals(zero))
}

func TestLeq(t *testing.T) {
	assert.True(t, Bottom[number.Z]().Leq(Top[number.Z]()))
	assert.False(t, Top[number.Z]().Leq(Bottom[number.Z]()))
	small := Singleton(z(5))
	assert.True(t, small.Leq(Top[number.Z]()))
}

// Threshold widening jumps a growing bound to the tightest covering
// threshold rather than straight to infinity, and only escapes to ±∞
// when no threshold covers the new bound.
func TestWidenThreshold(t *testing.T) {
	thresholds := []number.Z{z(16), z(64), z(256)}

	a := FromBounds(number.FiniteBound(z(0)), number.FiniteBound(z(10)))
	b := FromBounds(number.FiniteBound(z(0)), number.FiniteBound(z(20)))
	widened := a.WidenThreshold(b, thresholds)
	assert.True(t, widened.Ub().Eq(number.FiniteBound(z(64))))
	assert.True(t, widened.Lb().Eq(number.FiniteBound(z(0))))

	beyond := FromBounds(number.FiniteBound(z(0)), number.FiniteBound(z(1000)))
	escaped := widened.WidenThreshold(beyond, thresholds)
	assert.True(t, escaped.Ub().IsPlusInf())

	stable := a.WidenThreshold(a, thresholds)
	assert.True(t, stable.Equals(a))
}
