// Package literal models compile-time constant values used to initialize
// global variables and memory: scalars and aggregates built up from them.
// Unlike memloc.Location or callctx.Context, a Literal's identity is its
// value, not its declaration site, so interning is purely a memory
// optimization, not a correctness requirement -- two structurally equal
// literals are interchangeable anywhere one is used.
package literal

import (
	"fmt"
	"strings"

	"github.com/sasha-s/go-deadlock"
)

// Literal is a constant value: either a scalar (integer, null pointer, or
// undef) or an aggregate built from a sequence of field literals.
type Literal interface {
	isLiteral()
	String() string
}

// IntLiteral is a constant integer of a given bit width.
type IntLiteral struct {
	Width int
	Value int64
}

func (IntLiteral) isLiteral() {}
func (l IntLiteral) String() string {
	return fmt.Sprintf("%d", l.Value)
}

// NullLiteral is the null pointer constant.
type NullLiteral struct{}

func (NullLiteral) isLiteral()     {}
func (NullLiteral) String() string { return "null" }

// UndefLiteral is an intentionally-uninitialized constant, e.g. a global
// variable declared but never given an initializer.
type UndefLiteral struct{}

func (UndefLiteral) isLiteral()     {}
func (UndefLiteral) String() string { return "undef" }

// AggregateLiteral is a struct or array constant: an ordered sequence of
// field literals.
type AggregateLiteral struct {
	Fields []Literal
}

func (AggregateLiteral) isLiteral() {}
func (l AggregateLiteral) String() string {
	parts := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		parts[i] = f.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Factory interns scalar literals (the only ones cheap and frequent
// enough to be worth sharing; aggregates are built fresh since their
// field slices are rarely identical across call sites).
type Factory struct {
	mu    deadlock.RWMutex
	ints  map[intKey]*IntLiteral
	null  *NullLiteral
	undef *UndefLiteral
}

type intKey struct {
	width int
	value int64
}

func NewFactory() *Factory {
	return &Factory{
		ints:  make(map[intKey]*IntLiteral),
		null:  &NullLiteral{},
		undef: &UndefLiteral{},
	}
}

func (f *Factory) Int(width int, value int64) *IntLiteral {
	k := intKey{width: width, value: value}

	f.mu.RLock()
	if l, ok := f.ints[k]; ok {
		f.mu.RUnlock()
		return l
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.ints[k]; ok {
		return l
	}
	l := &IntLiteral{Width: width, Value: value}
	f.ints[k] = l
	return l
}

func (f *Factory) Null() *NullLiteral   { return f.null }
func (f *Factory) Undef() *UndefLiteral { return f.undef }
