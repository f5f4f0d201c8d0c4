package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntFactoryInterns(t *testing.T) {
	f := NewFactory()
	a := f.Int(32, 7)
	b := f.Int(32, 7)
	c := f.Int(32, 8)
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestAggregateLiteralString(t *testing.T) {
	f := NewFactory()
	agg := AggregateLiteral{Fields: []Literal{f.Int(32, 1), f.Null(), f.Undef()}}
	assert.Equal(t, "{1, null, undef}", agg.String())
}
