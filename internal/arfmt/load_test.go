package arfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ikos/internal/ar"
)

const allocStoreLoad = `
bundle demo {
func main() -> i32 {
entry:
  %p = alloca [i32]
  store %p, 0
  %x = load [i32] %p
  ret %x
}
}
`

func TestParseAllocaStoreLoadRet(t *testing.T) {
	bundle, err := Parse("demo.ar", allocStoreLoad)
	require.NoError(t, err)

	fn, ok := bundle.Functions["main"]
	require.True(t, ok)
	require.False(t, fn.IsExternal())
	require.Len(t, fn.Body.Blocks, 1)

	entry := fn.Body.Blocks[0]
	assert.Equal(t, "entry", entry.Name)
	require.Len(t, entry.Statements, 3)

	_, isAlloc := entry.Statements[0].(ar.Allocate)
	assert.True(t, isAlloc)
	_, isStore := entry.Statements[1].(ar.Store)
	assert.True(t, isStore)
	_, isLoad := entry.Statements[2].(ar.Load)
	assert.True(t, isLoad)

	ret, ok := entry.Terminator.(ar.ReturnValue)
	require.True(t, ok)
	assert.NotNil(t, ret.Value)
}

const branchingFunction = `
bundle demo {
func choose(%c: i32) -> i32 {
entry:
  %cond = icmp_ne [i32] %c, 0
  condbr %cond, onTrue, onFalse
onTrue:
  ret 1
onFalse:
  ret 0
}
}
`

func TestParseConditionalBranch(t *testing.T) {
	bundle, err := Parse("demo.ar", branchingFunction)
	require.NoError(t, err)

	fn := bundle.Functions["choose"]
	require.NotNil(t, fn)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "c", fn.Params[0].Name)

	entry := fn.Body.Blocks[0]
	cond, ok := entry.Terminator.(ar.ConditionalBranch)
	require.True(t, ok)
	assert.Equal(t, "onTrue", cond.TrueTarget.Name)
	assert.Equal(t, "onFalse", cond.FalseTarget.Name)
}

func TestExternalFunctionHasNoBody(t *testing.T) {
	bundle, err := Parse("demo.ar", `
bundle demo {
extern func malloc(%n: i64) -> ptr {
}
}
`)
	require.NoError(t, err)
	fn := bundle.Functions["malloc"]
	require.NotNil(t, fn)
	assert.True(t, fn.IsExternal())
}
