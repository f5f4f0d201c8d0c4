// Package domain declares the common lattice interface that every
// abstract value in the analyzer implements, and that the generic
// separate (non-relational) domain is built against.
package domain

// Domain is the self-bounded lattice interface shared by every abstract
// value: intervals, congruences, the interval-congruence product, pointer
// abstract values, and the separate domains built out of them.
type Domain[T any] interface {
	IsBottom() bool
	IsTop() bool
	Leq(T) bool
	Join(T) T
	Widen(T) T
	Meet(T) T
	Narrow(T) T
}
