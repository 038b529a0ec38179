package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunshine-lang/sunc/internal/diag"
	"github.com/sunshine-lang/sunc/internal/token"
)

func TestCompilationFailedOnlyOnDenySeverity(t *testing.T) {
	r := diag.NewReporter()
	assert.False(t, r.CompilationFailed())

	r.Warn("heads up", token.Span{}, "a.sun")
	assert.False(t, r.CompilationFailed())

	r.Error("boom", token.Span{}, "a.sun")
	assert.True(t, r.CompilationFailed())
}

func TestReportErrUsesTheErrorsOwnSeverity(t *testing.T) {
	r := diag.NewReporter()
	r.ReportErr(diag.UnterminatedString{}, token.Span{}, "a.sun")
	diags := r.Diagnostics()
	if assert.Len(t, diags, 1) {
		assert.Equal(t, diag.Deny, diags[0].Severity)
		assert.Equal(t, "unterminated string literal", diags[0].Message)
	}
}

func TestStringRendersFixedFormatWithSummaryCounts(t *testing.T) {
	r := diag.NewReporter()
	r.Error("bad thing", token.Span{Start: token.Position{Line: 3, Col: 7}}, "main.sun")
	r.Warn("minor thing", token.Span{Start: token.Position{Line: 1, Col: 1}}, "main.sun")

	out := r.String()
	assert.Contains(t, out, "Error: bad thing\n")
	assert.Contains(t, out, " --> main.sun:3:7\n")
	assert.Contains(t, out, "Warning: minor thing\n")
	assert.Contains(t, out, "1 warning(s), 1 error(s)\n")
}

func TestStringUsesUnknownPathWhenPathIsEmpty(t *testing.T) {
	r := diag.NewReporter()
	r.Error("oops", token.Span{}, "")
	assert.Contains(t, r.String(), "--> <unknown>:")
}

func TestDiagnosticsReturnsASnapshotNotALiveView(t *testing.T) {
	r := diag.NewReporter()
	r.Error("first", token.Span{}, "a.sun")
	snapshot := r.Diagnostics()
	r.Error("second", token.Span{}, "a.sun")
	assert.Len(t, snapshot, 1)
	assert.Len(t, r.Diagnostics(), 2)
}
