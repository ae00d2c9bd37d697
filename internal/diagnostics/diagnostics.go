// Package diagnostics accumulates typed, stage-tagged reports produced
// while binding a program. It never aborts traversal on its own — see
// spec §3.6/§4.1; the binder decides when a report should poison a
// subtree.
package diagnostics

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lincfront/linc/internal/token"
)

// Severity classifies a report.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Stage names the compilation phase that raised a report.
type Stage int

const (
	StageLexer Stage = iota
	StageParser
	StageAST
	StageABT
	StagePreprocessor
	StageGenerator
)

func (s Stage) String() string {
	switch s {
	case StageLexer:
		return "Lexer"
	case StageParser:
		return "Parser"
	case StageAST:
		return "AST"
	case StageABT:
		return "ABT"
	case StagePreprocessor:
		return "Preprocessor"
	case StageGenerator:
		return "Generator"
	default:
		return "Unknown"
	}
}

// Code is a stable identifier for a binding-stage diagnostic, named
// after the taxonomy in spec §7.
type Code string

const (
	CodeUnresolvedName       Code = "UnresolvedName"
	CodeRedeclaration        Code = "Redeclaration"
	CodeTypeMismatch         Code = "TypeMismatch"
	CodeInvalidOperator      Code = "InvalidOperator"
	CodeArityMismatch        Code = "ArityMismatch"
	CodeArgumentTypeMismatch Code = "ArgumentTypeMismatch"
	CodeImmutableAssignment  Code = "ImmutableAssignment"
	CodeNonExhaustiveMatch   Code = "NonExhaustiveMatch"
	CodeUninitializedBinding Code = "UninitializedBinding"
	CodeMissingReturn        Code = "MissingReturn"
)

// Report is a single diagnostic entry.
type Report struct {
	Severity Severity
	Stage    Stage
	Code     Code
	Span     token.Span
	Message  string
}

// Error lets a Report satisfy the standard error interface so callers
// that just want "the first thing that went wrong" can treat it like
// any other Go error.
func (r Report) Error() string {
	return fmt.Sprintf("%s: %s: %s", r.Stage, r.Severity, r.Message)
}

// Collector is the single mutable, append-only list of reports for one
// compilation run. Spec §4.1/§5: single-writer, never concurrent — the
// binder and parser each run on one thread and there is no concurrent
// binding, so Collector does no internal locking.
type Collector struct {
	RunID   uuid.UUID
	reports []Report
}

// NewCollector allocates a Collector tagged with a fresh run id, used to
// correlate every report emitted by one binder invocation across logs.
func NewCollector() *Collector {
	return &Collector{RunID: uuid.New()}
}

// Push appends a report. When alsoLog is true the caller additionally
// wants the report surfaced through whatever ambient logging mechanism
// it owns; Collector itself never writes to a stream (spec §1 keeps
// that with the CLI collaborator).
func (c *Collector) Push(r Report, alsoLog bool) {
	c.reports = append(c.reports, r)
	_ = alsoLog // hook for callers; Collector stays silent by design.
}

// Errorf is a convenience that formats a message and pushes an
// Error-severity report.
func (c *Collector) Errorf(stage Stage, code Code, span token.Span, format string, args ...any) {
	c.Push(Report{Severity: Error, Stage: stage, Code: code, Span: span, Message: fmt.Sprintf(format, args...)}, true)
}

// Warnf is the Warning-severity counterpart of Errorf.
func (c *Collector) Warnf(stage Stage, code Code, span token.Span, format string, args ...any) {
	c.Push(Report{Severity: Warning, Stage: stage, Code: code, Span: span, Message: fmt.Sprintf(format, args...)}, true)
}

// Clear empties the collector, preparing it for reuse.
func (c *Collector) Clear() {
	c.reports = nil
}

// Reports returns the accumulated reports in traversal (insertion)
// order. The returned slice is owned by the caller.
func (c *Collector) Reports() []Report {
	out := make([]Report, len(c.reports))
	copy(out, c.reports)
	return out
}

// HasErrors reports whether any Error-severity report has been pushed.
func (c *Collector) HasErrors() bool {
	for _, r := range c.reports {
		if r.Severity == Error {
			return true
		}
	}
	return false
}
