package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter renders StructuralErrors and CheckResults against a named
// input so the driver can print Rust-style multi-line diagnostics with a
// caret-underlined excerpt of the AR bundle text (see internal/arfmt),
// keyed by file name so multi-bundle runs resolve positions correctly.
type Reporter struct {
	sources map[string][]string // file name -> lines
}

func NewReporter() *Reporter {
	return &Reporter{sources: make(map[string][]string)}
}

// AddSource registers the text backing file, so later diagnostics
// against positions in that file can show a source excerpt.
func (r *Reporter) AddSource(file, text string) {
	r.sources[file] = strings.Split(text, "\n")
}

// FormatStructural renders a StructuralError.
func (r *Reporter) FormatStructural(err *StructuralError) string {
	levelColor := color.New(color.FgRed, color.Bold).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]: %s\n", levelColor("error"), err.Kind.Code(), err.Message)
	r.writeLocation(&b, err.Position, dim, bold)
	return b.String()
}

// FormatCheck renders a CheckResult.
func (r *Reporter) FormatCheck(c CheckResult) string {
	var levelColor func(a ...interface{}) string
	switch c.Severity {
	case ErrorSeverity:
		levelColor = color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		levelColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	case Unreachable:
		levelColor = color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		levelColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	}
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]: %s\n", levelColor(c.Severity.String()), c.CheckName, strings.Join(c.Operands, ", "))
	r.writeLocation(&b, c.Position, dim, bold)
	return b.String()
}

func (r *Reporter) writeLocation(b *strings.Builder, pos PositionLike, dim, bold func(...interface{}) string) {
	lines, ok := r.sources[pos.FileName()]
	indent := "   "
	fmt.Fprintf(b, "%s %s %s\n", indent, dim("-->"), pos.String())
	if !ok || pos.LineNumber() <= 0 || pos.LineNumber() > len(lines) {
		return
	}
	fmt.Fprintf(b, "%s %s\n", indent, dim("│"))
	fmt.Fprintf(b, "%3d %s %s\n", pos.LineNumber(), dim("│"), lines[pos.LineNumber()-1])
	marker := strings.Repeat(" ", max(0, pos.ColumnNumber()-1)) + bold("^")
	fmt.Fprintf(b, "%s %s %s\n", indent, dim("│"), marker)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// PositionLike lets Reporter format positions without importing
// internal/ar directly for the handful of fields it needs, so a future
// front-end position type only needs to satisfy this small interface.
type PositionLike interface {
	FileName() string
	LineNumber() int
	ColumnNumber() int
	String() string
}
