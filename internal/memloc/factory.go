package memloc

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"
)

// key identifies a location description for interning purposes.
type key struct {
	kind     Kind
	name     string
	callSite string
	parent   *Location
	field    int
}

// Factory interns MemoryLocations so that the same source-level entity
// always maps to the same pointer. Lookups take the read lock; only a
// first-seen insert takes the write lock, matching the concurrency
// contract every interning factory in the analyzer follows: immutable
// values shared freely once published, synchronized only around the
// insert that publishes them.
type Factory struct {
	mu    deadlock.RWMutex
	table map[key]*Location
}

// NewFactory creates an empty Factory.
func NewFactory() *Factory {
	return &Factory{table: make(map[key]*Location)}
}

func (f *Factory) intern(k key, build func() *Location) *Location {
	f.mu.RLock()
	if loc, ok := f.table[k]; ok {
		f.mu.RUnlock()
		return loc
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if loc, ok := f.table[k]; ok {
		return loc
	}
	loc := build()
	f.table[k] = loc
	return loc
}

// LocalVariable returns the location for a local variable named name inside
// function fn.
func (f *Factory) LocalVariable(fn, name string) *Location {
	qualified := fmt.Sprintf("%s::%s", fn, name)
	k := key{kind: LocalVariableKind, name: qualified}
	return f.intern(k, func() *Location { return &Location{kind: LocalVariableKind, name: qualified} })
}

// GlobalVariable returns the location for a global variable.
func (f *Factory) GlobalVariable(name string) *Location {
	k := key{kind: GlobalVariableKind, name: name}
	return f.intern(k, func() *Location { return &Location{kind: GlobalVariableKind, name: name} })
}

// Function returns the location denoting a function's address.
func (f *Factory) Function(name string) *Location {
	k := key{kind: FunctionKind, name: name}
	return f.intern(k, func() *Location { return &Location{kind: FunctionKind, name: name} })
}

// Alloc returns the location for a dynamic allocation at the given call
// site identifier (one location per static call site, shared by every
// dynamic instance at runtime -- the standard allocation-site abstraction).
func (f *Factory) Alloc(callSite string) *Location {
	k := key{kind: AllocKind, callSite: callSite}
	return f.intern(k, func() *Location { return &Location{kind: AllocKind, callSite: callSite} })
}

// Aggregate returns the location for field index field within parent.
func (f *Factory) Aggregate(parent *Location, field int) *Location {
	k := key{kind: AggregateKind, parent: parent, field: field}
	return f.intern(k, func() *Location { return &Location{kind: AggregateKind, parent: parent, field: field} })
}
