package callctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushInternsIdenticalChains(t *testing.T) {
	f := NewFactory(0)
	a := f.Push(Empty, "main")
	b := f.Push(Empty, "main")
	assert.Same(t, a, b)

	c := f.Push(a, "helper")
	assert.Equal(t, 2, c.Depth())
	assert.Equal(t, "main>helper", c.String())
	assert.Same(t, a, c.Caller())
}

func TestPushSaturatesAtMaxDepth(t *testing.T) {
	f := NewFactory(2)
	a := f.Push(Empty, "a")
	b := f.Push(a, "b")
	c := f.Push(b, "c")
	assert.LessOrEqual(t, c.Depth(), 2)
}

func TestRootContext(t *testing.T) {
	assert.True(t, Empty.IsRoot())
	assert.Equal(t, "<root>", Empty.String())
}
