package errors

// Error code ranges:
//
// E0700-E0799: engine-level structural errors (this package)
// E0800-E0899: checker warning codes

const (
	// E0700: the constraint solver detected a division by zero while
	// normalizing a linear constraint.
	CodeDivisionByZero = "E0700"

	// E0701: a transfer function received an operand of a kind or width
	// it cannot interpret (e.g. a non-integer operand to an integer
	// arithmetic statement).
	CodeUnexpectedOperand = "E0701"

	// E0702: a linear::Constraint or linear::System was built in a form
	// the solver's preconditions forbid (e.g. an empty system).
	CodeMalformedConstraint = "E0702"

	// E0703: an internal invariant of the analyzer itself was violated;
	// always a bug in the analyzer, never in the analyzed program.
	CodeLogicError = "E0703"

	// E0800: two pointers compared for equality may originate from
	// different allocation sites; reported as a Warning, not an Error.
	CodeCrossAllocationComparison = "E0800"

	// E0801: a load, store, or free dereferenced a pointer that may (or
	// definitely does) point to an already-freed location.
	CodeUseAfterFree = "E0801"

	// E0802: an __ikos_assert condition is provably false on some or all
	// reachable paths.
	CodeAssertionFailure = "E0802"
)
