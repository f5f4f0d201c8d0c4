// Package engine implements the numerical and call execution engines: the
// per-statement transfer functions that drive a fixpoint computation over
// an AR function body, and the two call strategies (context-insensitive
// and inlining) that resolve a Call/Invoke statement.
package engine

import (
	"ikos/internal/ar"
	"ikos/internal/domain"
	"ikos/internal/memory"
	"ikos/internal/numdomain"
)

// State is the full abstract state threaded through one function's
// fixpoint: scalar integer values, and everything the memory domain
// tracks (pointers, object contents, initialization, lifetime).
// Floating-point variables are intentionally left untracked beyond
// reachability (see numdomain.DummyDomain): the analyzer dummy-tracks
// floats rather than modeling their range.
type State struct {
	Num    numdomain.IntervalDomain[*ar.Variable]
	Mem    memory.Domain[*ar.Variable]
	Floats numdomain.DummyDomain[*ar.Variable]
}

// Top is the state with no constraints: used as the invariant flowing
// into a function from an unanalyzed (opaque) caller.
func Top() State {
	return State{
		Num:    numdomain.TopInterval[*ar.Variable](),
		Mem:    memory.Top[*ar.Variable](),
		Floats: numdomain.TopDummyDomain[*ar.Variable](),
	}
}

// Bottom is the infeasible state.
func Bottom() State {
	return State{
		Num:    numdomain.BottomInterval[*ar.Variable](),
		Mem:    memory.Bottom[*ar.Variable](),
		Floats: numdomain.BottomDummyDomain[*ar.Variable](),
	}
}

func (s State) IsBottom() bool {
	return s.Num.IsBottom() || s.Mem.IsBottom() || s.Floats.IsBottom()
}

func (s State) IsTop() bool {
	return s.Num.IsTop() && s.Mem.IsTop() && s.Floats.IsTop()
}

func (s State) Leq(o State) bool {
	if s.IsBottom() {
		return true
	}
	if o.IsBottom() {
		return false
	}
	return s.Num.Leq(o.Num) && s.Mem.Leq(o.Mem)
}

func (s State) Join(o State) State {
	if s.IsBottom() {
		return o
	}
	if o.IsBottom() {
		return s
	}
	return State{Num: s.Num.Join(o.Num), Mem: s.Mem.Join(o.Mem), Floats: s.Floats.Join(o.Floats)}
}

func (s State) Widen(o State) State {
	if s.IsBottom() {
		return o
	}
	if o.IsBottom() {
		return s
	}
	return State{Num: s.Num.Widen(o.Num), Mem: s.Mem.Widen(o.Mem), Floats: s.Floats.Join(o.Floats)}
}

func (s State) Meet(o State) State {
	if s.IsBottom() || o.IsBottom() {
		return Bottom()
	}
	return State{Num: s.Num.Meet(o.Num), Mem: s.Mem.Meet(o.Mem), Floats: s.Floats.Meet(o.Floats)}
}

func (s State) Narrow(o State) State {
	if s.IsBottom() || o.IsBottom() {
		return Bottom()
	}
	return State{Num: s.Num.Narrow(o.Num), Mem: s.Mem.Narrow(o.Mem), Floats: s.Floats.Meet(o.Floats)}
}

var _ domain.Domain[State] = State{}
