package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ikos/internal/ar"
)

func TestStructuralErrorMessage(t *testing.T) {
	err := New(DivisionByZero, ar.Position{File: "a.c", Line: 3, Column: 5}, "divisor %s is provably zero", "k")
	assert.Equal(t, "E0700", err.Kind.Code())
	assert.Contains(t, err.Error(), "divisor k is provably zero")
	assert.Contains(t, err.Error(), "a.c:3:5")
}

func TestReporterFormatsStructuralWithSource(t *testing.T) {
	r := NewReporter()
	r.AddSource("a.c", "int x = 1 / 0;\n")
	err := New(DivisionByZero, ar.Position{File: "a.c", Line: 1, Column: 13}, "divisor is zero")
	out := r.FormatStructural(err)
	assert.Contains(t, out, "E0700")
	assert.Contains(t, out, "int x = 1 / 0;")
}

func TestCrossAllocationComparisonIsWarning(t *testing.T) {
	c := CrossAllocationComparison(ar.Position{File: "a.c", Line: 2, Column: 1}, "p", "q")
	assert.Equal(t, Warning, c.Severity)
	assert.Equal(t, CodeCrossAllocationComparison, c.Info["code"])
}
