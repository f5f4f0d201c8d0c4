package engine

import (
	"ikos/internal/callctx"
	"ikos/internal/errors"
	"ikos/internal/fixpoint"
	"ikos/internal/literal"
	"ikos/internal/memloc"
)

// Parameters configures one analysis run: the fixpoint iteration
// strategy plus the call-execution engine's interprocedural strategy.
// It is built once per AnalysisContext and threaded explicitly rather
// than read from a global.
type Parameters struct {
	fixpoint.Parameters
	// Inline selects the inlining call strategy; false selects the
	// context-insensitive opaque-call strategy.
	Inline bool
	// MaxCallDepth bounds call-string length under the inlining strategy,
	// and is ignored by the context-insensitive one.
	MaxCallDepth int
}

// DefaultParameters mirrors fixpoint.DefaultParameters with the
// context-insensitive call strategy, the conservative default an
// analysis can always fall back to regardless of the target program's
// call graph shape.
func DefaultParameters() Parameters {
	return Parameters{
		Parameters:   fixpoint.DefaultParameters(),
		Inline:       false,
		MaxCallDepth: 8,
	}
}

// AnalysisContext owns every interning factory and configuration value
// shared across a whole bundle analysis: one instance is built per run
// and passed by reference into both execution engines.
type AnalysisContext struct {
	Locations *memloc.Factory
	Contexts  *callctx.Factory
	Literals  *literal.Factory
	Reporter  *errors.Reporter
	Params    Parameters
}

func NewAnalysisContext(params Parameters) *AnalysisContext {
	return &AnalysisContext{
		Locations: memloc.NewFactory(),
		Contexts:  callctx.NewFactory(params.MaxCallDepth),
		Literals:  literal.NewFactory(),
		Reporter:  errors.NewReporter(),
		Params:    params,
	}
}
