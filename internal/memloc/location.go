// Package memloc models memory locations: the abstract addresses that the
// pointer and memory domains reason about. Every location is interned
// through a Factory so that pointer equality on the Go side implies
// equality of the abstract address.
package memloc

import "fmt"

// Kind discriminates the concrete shape of a MemoryLocation.
type Kind int

const (
	LocalVariableKind Kind = iota
	GlobalVariableKind
	FunctionKind
	AllocKind
	AbsoluteZeroKind
	LibcErrnoKind
	AggregateKind
)

// Location is a single interned memory location. Two Locations obtained
// from the same Factory for equal descriptions are == comparable.
type Location struct {
	kind Kind
	// name identifies local/global variables and functions; callSite
	// identifies a dynamic allocation site; parent/field describe an
	// aggregate sub-location (a struct field or array element) nested
	// inside another location.
	name     string
	callSite string
	parent   *Location
	field    int
}

func (l *Location) Kind() Kind { return l.kind }
func (l *Location) Name() string { return l.name }
func (l *Location) CallSite() string { return l.callSite }
func (l *Location) Parent() *Location { return l.parent }
func (l *Location) Field() int { return l.field }

// AbsoluteZero and LibcErrno are process-wide singleton locations, never
// created per call site.
var AbsoluteZero = &Location{kind: AbsoluteZeroKind, name: "@0"}
var LibcErrno = &Location{kind: LibcErrnoKind, name: "errno"}

func (l *Location) String() string {
	switch l.kind {
	case LocalVariableKind:
		return fmt.Sprintf("local(%s)", l.name)
	case GlobalVariableKind:
		return fmt.Sprintf("global(%s)", l.name)
	case FunctionKind:
		return fmt.Sprintf("function(%s)", l.name)
	case AllocKind:
		return fmt.Sprintf("alloc(%s)", l.callSite)
	case AbsoluteZeroKind:
		return "@0"
	case LibcErrnoKind:
		return "errno"
	case AggregateKind:
		return fmt.Sprintf("%s.%d", l.parent.String(), l.field)
	default:
		return "?"
	}
}
