// Package diag implements the compiler's diagnostic collection and
// rendering, modeled on original_source's error::{types,library} split:
// every diagnostic carries a Severity and a Span, and the Reporter
// accumulates them without affecting control flow.
package diag

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sunshine-lang/sunc/internal/token"
)

// Severity mirrors original_source/src/error/types.rs's Severity enum.
type Severity int

const (
	Deny Severity = iota
	Warn
)

func (s Severity) String() string {
	if s == Warn {
		return "warning"
	}
	return "error"
}

// Diagnostic is one reported error or warning.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     token.Span
	Path     string // source file path, resolved by the caller; empty if unknown
}

// Reporter collects diagnostics for an entire compilation. It is shared
// across the lexer, parser, and HIR builder behind a mutex, matching
// spec.md §5's "ErrorReporter ... wrapping shared state behind a
// mutual-exclusion primitive" concurrency note.
type Reporter struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report appends a diagnostic at the given severity.
func (r *Reporter) Report(severity Severity, message string, span token.Span, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Severity: severity,
		Message:  message,
		Span:     span,
		Path:     path,
	})
}

// Error reports a Deny-severity diagnostic.
func (r *Reporter) Error(message string, span token.Span, path string) {
	r.Report(Deny, message, span, path)
}

// Warn reports a Warn-severity diagnostic.
func (r *Reporter) Warn(message string, span token.Span, path string) {
	r.Report(Warn, message, span, path)
}

// ReportErr reports err (as produced by a CompilerError in this package)
// at its own declared severity.
func (r *Reporter) ReportErr(err CompilerError, span token.Span, path string) {
	r.Report(err.Severity(), err.Error(), span, path)
}

// CompilationFailed reports true iff any Deny-severity diagnostic was
// recorded, per spec.md §7.
func (r *Reporter) CompilationFailed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.diagnostics {
		if d.Severity == Deny {
			return true
		}
	}
	return false
}

// Diagnostics returns a snapshot of all recorded diagnostics, in report
// order.
func (r *Reporter) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// String renders every diagnostic plus the summary line, matching the
// user-visible format fixed by spec.md §7:
//
//	Error: <message>
//	 --> <path>:<line>:<column>
//	...
//	<W> warning(s), <E> error(s)
func (r *Reporter) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	warnings, errors := 0, 0
	for _, d := range r.diagnostics {
		label := "Error"
		if d.Severity == Warn {
			label = "Warning"
			warnings++
		} else {
			errors++
		}
		fmt.Fprintf(&b, "%s: %s\n", label, d.Message)
		path := d.Path
		if path == "" {
			path = "<unknown>"
		}
		fmt.Fprintf(&b, " --> %s:%d:%d\n", path, d.Span.Start.Line, d.Span.Start.Col)
	}
	fmt.Fprintf(&b, "%d warning(s), %d error(s)\n", warnings, errors)
	return b.String()
}

// CompilerError is implemented by every structural error kind in the
// catalog below; it lets ReportErr pick the kind's fixed severity without
// the caller having to remember it.
type CompilerError interface {
	error
	Severity() Severity
}
