// Package fixpoint computes abstract fixpoints over a control-flow graph
// by interleaving increasing iterations (widening) with decreasing
// iterations (narrowing) at each weak-topological-order cycle head, as
// described by Bourdoncle. The graph, its transfer function and its
// lattice are all supplied by the caller; this package only implements
// the iteration strategy.
package fixpoint

import (
	"ikos/internal/domain"
	"ikos/internal/wto"
)

// TransferFunc computes the abstract value flowing out of node n given
// the abstract value flowing in.
type TransferFunc[N comparable, T domain.Domain[T]] func(n N, in T) T

// WideningStrategy chooses how a cycle head's incoming value is
// extrapolated across increasing iterations.
type WideningStrategy int

const (
	// WidenStrategy applies Widen on the post-delay iterations that
	// WideningPeriod selects, and Join on the others.
	WidenStrategy WideningStrategy = iota
	// JoinStrategy applies plain Join instead of Widen, trading
	// termination guarantees for precision on domains known to have
	// finite height (e.g. a bounded congruence lattice).
	JoinStrategy
)

// NarrowingStrategy chooses how a cycle head's value is refined across
// decreasing iterations.
type NarrowingStrategy int

const (
	// NarrowStrategy applies Narrow every decreasing iteration.
	NarrowStrategy NarrowingStrategy = iota
	// MeetStrategy applies plain Meet instead of Narrow.
	MeetStrategy
)

// Parameters configures one run of the iterator.
type Parameters struct {
	// WideningDelay is the number of plain-join iterations performed at
	// a cycle head before widening kicks in.
	WideningDelay int
	// WideningPeriod gates how often Widen is applied once the delay has
	// elapsed: widening iterations are exactly those numbered
	// WideningDelay+1, WideningDelay+1+WideningPeriod,
	// WideningDelay+1+2*WideningPeriod, ...; every other post-delay
	// iteration applies plain Join instead. A period of 0 or 1 widens
	// every iteration past the delay (no throttling).
	WideningPeriod int
	WideningStrategy
	NarrowingStrategy
	// NarrowingIterations bounds the number of decreasing iterations at
	// a cycle head; 0 means iterate until the narrowing sequence is
	// stable (unbounded).
	NarrowingIterations int
}

// DefaultParameters matches the conservative defaults used when a caller
// does not configure anything explicitly: immediate widening every
// iteration, Narrow refinement, and an unbounded narrowing phase.
func DefaultParameters() Parameters {
	return Parameters{
		WideningDelay:       0,
		WideningPeriod:      1,
		WideningStrategy:    WidenStrategy,
		NarrowingStrategy:   NarrowStrategy,
		NarrowingIterations: 0,
	}
}

// Iterator runs an interleaved forward fixpoint computation over a graph
// whose nodes are of type N and whose abstract values are of type T.
type Iterator[N comparable, T domain.Domain[T]] struct {
	entry       N
	successors  func(N) []N
	predecessors map[N][]N
	transfer    TransferFunc[N, T]
	bottom      T
	initial     T
	params      Parameters

	// hintedWiden/hintedNarrow, when set, replace the first Widen (resp.
	// Narrow) application at each cycle head: the hook can consult a
	// per-head widening hint (e.g. a loop bound collected by an AR pass)
	// and jump to it instead of straight to infinity. Later applications
	// at the same head always use the raw operator.
	hintedWiden  func(head N, before, after T) T
	hintedNarrow func(head N, before, after T) T

	pre  map[N]T
	post map[N]T
}

// SetThresholdWiden installs the threshold-widening hook applied on the
// first widening iteration of every cycle head.
func (it *Iterator[N, T]) SetThresholdWiden(f func(head N, before, after T) T) {
	it.hintedWiden = f
}

// SetThresholdNarrow installs the hook applied on the first narrowing
// iteration of every cycle head.
func (it *Iterator[N, T]) SetThresholdNarrow(f func(head N, before, after T) T) {
	it.hintedNarrow = f
}

// New builds an iterator. predecessors must be the exact reverse of
// successors (callers typically derive it once via ar.Code.Predecessors
// and reuse it across runs); bottom is the lattice's bottom element and
// initial is the abstract value flowing into entry from outside the
// graph (e.g. the formal parameters' starting invariant).
func New[N comparable, T domain.Domain[T]](
	entry N,
	successors func(N) []N,
	predecessors map[N][]N,
	transfer TransferFunc[N, T],
	bottom, initial T,
	params Parameters,
) *Iterator[N, T] {
	return &Iterator[N, T]{
		entry:        entry,
		successors:   successors,
		predecessors: predecessors,
		transfer:     transfer,
		bottom:       bottom,
		initial:      initial,
		params:       params,
		pre:          make(map[N]T),
		post:         make(map[N]T),
	}
}

// Run computes the fixpoint and returns the resulting pre- and
// post-invariant tables (the abstract value flowing into, respectively
// out of, every visited node).
func (it *Iterator[N, T]) Run() (pre, post map[N]T) {
	order := wto.Build(it.entry, it.successors)
	it.processComponents(order.Components)
	return it.pre, it.post
}

func (it *Iterator[N, T]) processComponents(components []wto.Component[N]) {
	for _, c := range components {
		switch v := c.(type) {
		case wto.Vertex[N]:
			it.processVertex(v.Node)
		case wto.Cycle[N]:
			it.processCycle(v)
		}
	}
}

func (it *Iterator[N, T]) processVertex(n N) {
	in := it.joinPredecessors(n)
	it.pre[n] = in
	it.post[n] = it.transfer(n, in)
}

// joinPredecessors folds the post-invariant of every known predecessor of
// n (treating an as-yet-uncomputed predecessor as bottom), seeded with
// the externally supplied initial value when n is the graph's entry.
func (it *Iterator[N, T]) joinPredecessors(n N) T {
	acc := it.bottom
	if n == it.entry {
		acc = it.initial
	}
	for _, p := range it.predecessors[n] {
		if v, ok := it.post[p]; ok {
			acc = acc.Join(v)
		}
	}
	return acc
}

// dueToWiden reports whether iteration (already known to be at or past
// WideningDelay) is one of the throttled widening points: iteration
// WideningDelay, WideningDelay+WideningPeriod, WideningDelay+2*WideningPeriod, ...
func (it *Iterator[N, T]) dueToWiden(iteration int) bool {
	period := it.params.WideningPeriod
	if period <= 1 {
		return true
	}
	return (iteration-it.params.WideningDelay)%period == 0
}

func stable[T domain.Domain[T]](a, b T) bool {
	return a.Leq(b) && b.Leq(a)
}

func (it *Iterator[N, T]) processCycle(cyc wto.Cycle[N]) {
	head := cyc.Head
	var prevIn T
	hasPrev := false
	widenedOnce := false

	for iteration := 0; ; iteration++ {
		combined := it.joinPredecessors(head)
		var in T
		switch {
		case !hasPrev:
			in = combined
		case it.params.WideningStrategy == JoinStrategy || iteration < it.params.WideningDelay:
			in = prevIn.Join(combined)
		case !it.dueToWiden(iteration):
			in = prevIn.Join(combined)
		case !widenedOnce && it.hintedWiden != nil:
			in = it.hintedWiden(head, prevIn, combined)
			widenedOnce = true
		default:
			in = prevIn.Widen(combined)
			widenedOnce = true
		}

		it.pre[head] = in
		it.post[head] = it.transfer(head, in)
		it.processComponents(cyc.Body)

		if hasPrev && stable(in, prevIn) {
			prevIn = in
			break
		}
		prevIn = in
		hasPrev = true
	}

	it.narrowCycle(cyc, prevIn)
}

func (it *Iterator[N, T]) narrowCycle(cyc wto.Cycle[N], stableIn T) {
	head := cyc.Head
	prevIn := stableIn
	for iteration := 0; it.params.NarrowingIterations == 0 || iteration < it.params.NarrowingIterations; iteration++ {
		combined := it.joinPredecessors(head)
		var in T
		switch {
		case it.params.NarrowingStrategy == MeetStrategy:
			in = prevIn.Meet(combined)
		case iteration == 0 && it.hintedNarrow != nil:
			in = it.hintedNarrow(head, prevIn, combined)
		default:
			in = prevIn.Narrow(combined)
		}

		if stable(in, prevIn) {
			break
		}

		it.pre[head] = in
		it.post[head] = it.transfer(head, in)
		it.processComponents(cyc.Body)
		prevIn = in
	}
}
