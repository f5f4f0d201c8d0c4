// ikos-cli loads a textual AR bundle and runs the abstract-interpretation
// engine over every function it defines, printing the checks the engine's
// transfer functions produced along the way.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"ikos/internal/ar"
	"ikos/internal/arfmt"
	"ikos/internal/callctx"
	"ikos/internal/engine"
	"ikos/internal/errors"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ikos-cli <file.ar> [--inline]")
		os.Exit(1)
	}
	path := os.Args[1]
	inline := len(os.Args) > 2 && os.Args[2] == "--inline"

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	bundle, err := arfmt.Parse(path, string(source))
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}

	params := engine.DefaultParameters()
	params.Inline = inline
	ctx := engine.NewAnalysisContext(params)
	ctx.Reporter.AddSource(path, string(source))

	numEngine := engine.NewNumericalExecutionEngine(ctx)
	callEngine := engine.NewCallExecutionEngine(ctx, bundle, numEngine)

	total := analyzeBundle(ctx, bundle, numEngine, callEngine)

	color.Green("analyzed %d function(s) in %s", len(bundle.Functions), path)
	if total > 0 {
		color.Yellow("%d check result(s) reported", total)
		os.Exit(1)
	}
}

// analyzeBundle runs one fixpoint per non-external function, from the
// empty call context, and prints every CheckResult the engine reports.
// It returns the total number of results printed.
func analyzeBundle(ctx *engine.AnalysisContext, bundle *ar.Bundle, numEngine *engine.NumericalExecutionEngine, callEngine *engine.CallExecutionEngine) int {
	total := 0
	for name, fn := range bundle.Functions {
		if fn.IsExternal() {
			continue
		}
		color.Cyan("analyzing %s", name)

		ff := engine.NewFunctionFixpoint(ctx, fn, numEngine, callEngine, callctx.Empty)
		_, _, checks, err := ff.Run(engine.Top())
		if err != nil {
			color.Red("%s: %s", name, err)
			continue
		}
		for _, c := range checks {
			printCheck(ctx, c)
			total++
		}
	}
	return total
}

func printCheck(ctx *engine.AnalysisContext, c errors.CheckResult) {
	fmt.Print(ctx.Reporter.FormatCheck(c))
}
