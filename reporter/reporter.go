// Package reporter collects and formats compiler diagnostics. Its
// Handler is the single point collaborators use to surface errors and
// warnings; it never panics and never aborts a compilation itself — the
// driver decides, per spec.md §7, whether and when to stop.
package reporter

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/onyxlang/onyxc/ast"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Kind tags the error taxonomy from spec.md §7, used to decide
// propagation rules (e.g. whether an I/O error is reportable yet).
type Kind int

const (
	KindCommandLine Kind = iota
	KindIO
	KindLexParse
	KindResolve
	KindType
	KindCycle
	KindOutput
)

// ErrInvalidSource is returned by Handler.Error when at least one
// error-severity diagnostic has been recorded.
var ErrInvalidSource = errors.New("compilation failed: invalid source")

// Diagnostic is one reported error or warning.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Pos      ast.Position
	Message  string
	// Suggestion, if non-empty, is a "did you mean X?" hint attached by
	// the fuzzy-match pass once the cycle detector has confirmed the
	// diagnostic is real (see symtab.Suggest).
	Suggestion string
}

func (d Diagnostic) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
	if d.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", d.Suggestion)
	}
	return msg
}

// GetPosition implements the ErrorWithPos contract used by downstream
// tooling (the CLI's `--error-format` output, sourceinfo emitters).
func (d Diagnostic) GetPosition() ast.Position { return d.Pos }

func (d Diagnostic) Unwrap() error { return errors.New(d.Message) }

// ErrorWithPos is the interface every positioned compiler error
// implements.
type ErrorWithPos interface {
	error
	GetPosition() ast.Position
	Unwrap() error
}

// Handler accumulates diagnostics for one compilation. It supports an
// enable/disable toggle (spec.md §4.3, §9 "speculative parsing") so
// collaborators can probe speculatively without permanently recording
// failures, and a show-all-errors mode that disables the early-abort
// that would otherwise suppress cascaded secondary errors.
type Handler struct {
	diags         []Diagnostic
	enabled       bool
	showAll       bool
	failedEntity  map[int]bool // entity id -> has a primary error
	errorCount    int
	warningCount  int
}

// NewHandler creates a Handler with error reporting enabled.
func NewHandler() *Handler {
	return &Handler{
		enabled:      true,
		failedEntity: map[int]bool{},
	}
}

// SetShowAllErrors toggles the --show-all-errors behavior: when true,
// secondary errors on an entity that already failed are still recorded.
func (h *Handler) SetShowAllErrors(v bool) { h.showAll = v }

// Enable re-enables reporting. The driver calls this at the top of every
// dispatch loop iteration (spec.md §9's "mostly a preventative thing").
func (h *Handler) Enable() { h.enabled = true }

// Disable suppresses reporting for the duration of a speculative probe.
// While disabled, HandleError records nothing and returns nil, as it
// does for a suppressed secondary error.
func (h *Handler) Disable() { h.enabled = false }

// Enabled reports whether diagnostics are currently being recorded.
func (h *Handler) Enabled() bool { return h.enabled }

// HandleError records an error-severity diagnostic for the given entity
// id, honoring the show-all-errors suppression rule: once an entity has
// a primary error recorded, further errors attributed to the same entity
// id are dropped (and nil is returned) unless showAll is set. Errors on
// entities that depend on a failed entity are not suppressed.
func (h *Handler) HandleError(entityID int, d Diagnostic) error {
	d.Severity = SeverityError
	if !h.enabled {
		return nil
	}
	if h.failedEntity[entityID] && !h.showAll {
		return nil
	}
	h.failedEntity[entityID] = true
	h.diags = append(h.diags, d)
	h.errorCount++
	return d
}

// HandleErrorf is a convenience wrapper around HandleError.
func (h *Handler) HandleErrorf(entityID int, kind Kind, pos ast.Position, format string, args ...any) error {
	return h.HandleError(entityID, Diagnostic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HandleWarning records a warning; warnings are never suppressed by
// show-all-errors and never fail an entity.
func (h *Handler) HandleWarning(pos ast.Position, kind Kind, format string, args ...any) {
	if !h.enabled {
		return
	}
	h.diags = append(h.diags, Diagnostic{
		Severity: SeverityWarning,
		Kind:     kind,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
	h.warningCount++
}

// AttachSuggestion annotates the most recently recorded diagnostic with
// a fuzzy-match suggestion. Called only after cycle detection has
// confirmed the diagnostic is real (see driver's dumpCycles).
func (h *Handler) AttachSuggestion(suggestion string) {
	if len(h.diags) == 0 || suggestion == "" {
		return
	}
	h.diags[len(h.diags)-1].Suggestion = suggestion
}

// HasErrors reports whether any error-severity diagnostic has been
// recorded.
func (h *Handler) HasErrors() bool { return h.errorCount > 0 }

// Error returns ErrInvalidSource if any error was recorded, else nil.
func (h *Handler) Error() error {
	if h.errorCount > 0 {
		return ErrInvalidSource
	}
	return nil
}

// Diagnostics returns all recorded diagnostics, errors first, in report
// order stable within each severity.
func (h *Handler) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(h.diags))
	copy(out, h.diags)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity > out[j].Severity
	})
	return out
}

// Counts returns the number of errors and warnings recorded so far.
func (h *Handler) Counts() (errs, warnings int) {
	return h.errorCount, h.warningCount
}

// FlushWarnings writes every recorded warning-severity diagnostic to w,
// unconditionally, whether or not the compilation ultimately failed.
// The driver calls this exactly once, at the end of Compile.
func (h *Handler) FlushWarnings(w io.Writer) {
	for _, d := range h.diags {
		if d.Severity != SeverityWarning {
			continue
		}
		fmt.Fprintln(w, d.Error())
	}
}
