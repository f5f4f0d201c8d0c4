package separate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ikos/internal/interval"
	"ikos/internal/number"
)

func iv(lo, hi int64) interval.Interval[number.Z] {
	return interval.FromBounds(number.FiniteBound(number.NewZ(lo)), number.FiniteBound(number.NewZ(hi)))
}

func TestGetAbsentIsTop(t *testing.T) {
	d := Top[string, interval.Interval[number.Z]](interval.Top[number.Z]())
	assert.True(t, d.Get("x").IsTop())
}

func TestSetThenGet(t *testing.T) {
	d := Top[string, interval.Interval[number.Z]](interval.Top[number.Z]())
	d = d.Set("x", iv(0, 10))
	assert.True(t, d.Get("x").Equals(iv(0, 10)))
	assert.True(t, d.Get("y").IsTop())
}

func TestSetTopForgets(t *testing.T) {
	d := Top[string, interval.Interval[number.Z]](interval.Top[number.Z]())
	d = d.Set("x", iv(0, 10))
	d = d.Set("x", interval.Top[number.Z]())
	assert.True(t, d.IsTop())
}

func TestSetBottomCollapses(t *testing.T) {
	d := Top[string, interval.Interval[number.Z]](interval.Top[number.Z]())
	d = d.Set("x", interval.Bottom[number.Z]())
	assert.True(t, d.IsBottom())
}

func TestJoinMeet(t *testing.T) {
	top := interval.Top[number.Z]()
	d1 := Top[string, interval.Interval[number.Z]](top).Set("x", iv(0, 5))
	d2 := Top[string, interval.Interval[number.Z]](top).Set("x", iv(3, 10))

	joined := d1.Join(d2)
	assert.True(t, joined.Get("x").Equals(iv(0, 10)))

	met := d1.Meet(d2)
	assert.True(t, met.Get("x").Equals(iv(3, 5)))
}

func TestMeetProducingBottomCollapsesWholeMap(t *testing.T) {
	top := interval.Top[number.Z]()
	d1 := Top[string, interval.Interval[number.Z]](top).Set("x", iv(0, 1))
	d2 := Top[string, interval.Interval[number.Z]](top).Set("x", iv(5, 6))

	assert.True(t, d1.Meet(d2).IsBottom())
}
