package reporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onyxlang/onyxc/ast"
)

func TestHandleErrorSuppressesSecondaryErrorsByDefault(t *testing.T) {
	h := NewHandler()
	first := h.HandleError(1, Diagnostic{Kind: KindResolve, Message: "first"})
	second := h.HandleError(1, Diagnostic{Kind: KindResolve, Message: "second"})

	require.NotNil(t, first)
	require.Nil(t, second, "a second error on the same entity is suppressed without --show-all-errors")

	errs, _ := h.Counts()
	require.Equal(t, 1, errs)
}

func TestHandleErrorShowAllErrorsKeepsSecondary(t *testing.T) {
	h := NewHandler()
	h.SetShowAllErrors(true)
	h.HandleError(1, Diagnostic{Kind: KindResolve, Message: "first"})
	second := h.HandleError(1, Diagnostic{Kind: KindResolve, Message: "second"})

	require.NotNil(t, second)
	errs, _ := h.Counts()
	require.Equal(t, 2, errs)
}

func TestHandleErrorWhileDisabledReturnsNilAndDoesNotRecord(t *testing.T) {
	h := NewHandler()
	h.Disable()
	err := h.HandleError(1, Diagnostic{Kind: KindIO, Message: "ignored"})
	require.Nil(t, err)
	require.False(t, h.HasErrors())
}

func TestHandleWarningNeverFails(t *testing.T) {
	h := NewHandler()
	h.HandleWarning(ast.Position{}, KindCommandLine, "just a %s", "warning")
	require.False(t, h.HasErrors())
	require.NoError(t, h.Error())

	errs, warnings := h.Counts()
	require.Equal(t, 0, errs)
	require.Equal(t, 1, warnings)
}

func TestFlushWarningsWritesOnlyWarnings(t *testing.T) {
	h := NewHandler()
	h.HandleError(1, Diagnostic{Kind: KindIO, Message: "boom"})
	h.HandleWarning(ast.Position{}, KindCommandLine, "heads up")

	var buf bytes.Buffer
	h.FlushWarnings(&buf)

	require.Contains(t, buf.String(), "heads up")
	require.NotContains(t, buf.String(), "boom")
}

func TestAttachSuggestionAnnotatesMostRecentDiagnostic(t *testing.T) {
	h := NewHandler()
	h.HandleError(1, Diagnostic{Kind: KindResolve, Message: "unresolved identifier \"fo\""})
	h.AttachSuggestion("foo")

	diags := h.Diagnostics()
	require.Len(t, diags, 1)
	require.Equal(t, "foo", diags[0].Suggestion)
	require.Contains(t, diags[0].Error(), "did you mean \"foo\"?")
}

func TestErrorReturnsSentinelOnlyWhenErrorsRecorded(t *testing.T) {
	h := NewHandler()
	require.NoError(t, h.Error())

	h.HandleError(1, Diagnostic{Kind: KindType, Message: "bad"})
	require.ErrorIs(t, h.Error(), ErrInvalidSource)
}

func TestDiagnosticsOrdersErrorsBeforeWarnings(t *testing.T) {
	h := NewHandler()
	h.HandleWarning(ast.Position{}, KindCommandLine, "w1")
	h.HandleError(1, Diagnostic{Kind: KindIO, Message: "e1"})

	diags := h.Diagnostics()
	require.Len(t, diags, 2)
	require.Equal(t, SeverityError, diags[0].Severity)
	require.Equal(t, SeverityWarning, diags[1].Severity)
}
