package ar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredecessorsAndExitBlocks(t *testing.T) {
	entry := NewBasicBlock("entry")
	loop := NewBasicBlock("loop")
	exit := NewBasicBlock("exit")

	entry.Terminator = UnconditionalBranch{Target: loop}
	loop.Terminator = ConditionalBranch{
		Cond:        VarValue{Var: &Variable{Name: "cond", Ty: IntegerType{Width: 1}}},
		TrueTarget:  loop,
		FalseTarget: exit,
	}
	exit.Terminator = ReturnValue{}

	code := NewCode(entry)
	code.AddBlock(loop)
	code.AddBlock(exit)

	preds := code.Predecessors()
	assert.ElementsMatch(t, []*BasicBlock{entry, loop}, preds[loop])
	assert.ElementsMatch(t, []*BasicBlock{loop}, preds[exit])

	assert.Equal(t, []*BasicBlock{exit}, code.ExitBlocks())
}

func TestFunctionIsExternal(t *testing.T) {
	f := &Function{Name: "puts", ReturnType: IntegerType{Width: 32, Signed: true}}
	assert.True(t, f.IsExternal())

	entry := NewBasicBlock("entry")
	entry.Terminator = ReturnValue{}
	f.Body = NewCode(entry)
	assert.False(t, f.IsExternal())
}
