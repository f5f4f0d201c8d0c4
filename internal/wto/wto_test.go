package wto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcyclicDiamondHasNoHeads(t *testing.T) {
	// entry -> {a, b} -> exit
	graph := map[string][]string{
		"entry": {"a", "b"},
		"a":     {"exit"},
		"b":     {"exit"},
		"exit":  nil,
	}
	w := Build("entry", func(n string) []string { return graph[n] })
	assert.Len(t, w.Components, 4)
	for _, n := range []string{"entry", "a", "b", "exit"} {
		assert.False(t, w.IsHead(n), n)
	}
}

func TestSimpleLoopHasOneHead(t *testing.T) {
	// entry -> loop -> {loop, exit}
	graph := map[string][]string{
		"entry": {"loop"},
		"loop":  {"loop", "exit"},
		"exit":  nil,
	}
	w := Build("entry", func(n string) []string { return graph[n] })
	assert.True(t, w.IsHead("loop"))
	assert.False(t, w.IsHead("entry"))
	assert.False(t, w.IsHead("exit"))

	require := func(ok bool) {
		if !ok {
			t.Fatalf("expected entry vertex, then loop cycle, then exit vertex")
		}
	}
	require(len(w.Components) == 3)
	_, isVertex := w.Components[0].(Vertex[string])
	require(isVertex)
	cyc, isCycle := w.Components[1].(Cycle[string])
	require(isCycle)
	assert.Equal(t, "loop", cyc.Head)
}

func TestNestedLoopsNestHeads(t *testing.T) {
	// entry -> outer -> inner -> {inner, outer} ; outer -> exit
	graph := map[string][]string{
		"entry": {"outer"},
		"outer": {"inner"},
		"inner": {"inner", "exit", "outer"},
		"exit":  nil,
	}
	w := Build("entry", func(n string) []string { return graph[n] })
	assert.True(t, w.IsHead("outer"))
	assert.True(t, w.IsHead("inner"))
}
