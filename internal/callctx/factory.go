package callctx

import "github.com/sasha-s/go-deadlock"

type key struct {
	caller   *Context
	callSite string
}

// Factory interns Contexts so that pushing the same call site from the
// same caller context always yields the same pointer, following the same
// reader-lock-on-lookup, exclusive-lock-on-insert discipline as every
// other interning factory in the analyzer.
type Factory struct {
	mu    deadlock.RWMutex
	table map[key]*Context
	// maxDepth caps call-string length; beyond it, Push saturates by
	// dropping the oldest call site instead of growing forever, bounding
	// the number of distinct contexts the engine can allocate for a
	// recursive or deeply-nested call graph.
	maxDepth int
}

// NewFactory creates a Factory. maxDepth <= 0 means unbounded.
func NewFactory(maxDepth int) *Factory {
	return &Factory{table: make(map[key]*Context), maxDepth: maxDepth}
}

// Push returns the context formed by calling callSite from caller.
func (f *Factory) Push(caller *Context, callSite string) *Context {
	if caller == nil {
		caller = Empty
	}
	if f.maxDepth > 0 && caller.depth >= f.maxDepth {
		var sites []string // most recent first
		for c := caller; !c.IsRoot(); c = c.caller {
			sites = append(sites, c.callSite)
		}
		trimmed := Empty
		for i := len(sites) - 2; i >= 0; i-- {
			trimmed = f.Push(trimmed, sites[i])
		}
		caller = trimmed
	}
	k := key{caller: caller, callSite: callSite}

	f.mu.RLock()
	if ctx, ok := f.table[k]; ok {
		f.mu.RUnlock()
		return ctx
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if ctx, ok := f.table[k]; ok {
		return ctx
	}
	ctx := &Context{callSite: callSite, caller: caller, depth: caller.depth + 1}
	f.table[k] = ctx
	return ctx
}
