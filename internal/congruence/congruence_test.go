package congruence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ikos/internal/number"
)

func z(i int64) number.Z { return number.NewZ(i) }

func TestNormalization(t *testing.T) {
	c := New(z(-4), z(-1))
	assert.True(t, c.Modulus().Eq(z(4)))
	assert.True(t, c.Residue().Eq(z(3)))
}

func TestContains(t *testing.T) {
	c := New(z(4), z(1)) // {..., -3, 1, 5, 9, ...}
	assert.True(t, c.Contains(z(1)))
	assert.True(t, c.Contains(z(9)))
	assert.True(t, c.Contains(z(-3)))
	assert.False(t, c.Contains(z(2)))
}

func TestJoin(t *testing.T) {
	evens := New(z(2), z(0))
	odds := New(z(2), z(1))
	joined := evens.Join(odds)
	assert.True(t, joined.IsTop())
}

func TestMeetCompatible(t *testing.T) {
	mod4 := New(z(4), z(1)) // 1, 5, 9, ...
	mod6 := New(z(6), z(1)) // 1, 7, 13, ...
	m := mod4.Meet(mod6)
	assert.False(t, m.IsBottom())
	assert.True(t, m.Contains(z(1)))
	assert.True(t, m.Contains(z(13)))
}

func TestMeetIncompatible(t *testing.T) {
	evens := New(z(2), z(0))
	odds := New(z(2), z(1))
	assert.True(t, evens.Meet(odds).IsBottom())
}

func TestLeq(t *testing.T) {
	singleton := Singleton(z(5))
	mod5 := New(z(5), z(0))
	assert.True(t, singleton.Leq(Top()))
	assert.False(t, mod5.Leq(singleton))
}
