package diagnostics

import (
	"testing"

	"github.com/lincfront/linc/internal/token"
)

func TestNewCollectorAssignsRunID(t *testing.T) {
	a := NewCollector()
	b := NewCollector()
	if a.RunID == b.RunID {
		t.Errorf("expected distinct RunIDs across collectors")
	}
}

func TestErrorfAndWarnfAccumulate(t *testing.T) {
	c := NewCollector()
	c.Errorf(StageABT, CodeTypeMismatch, token.Span{Line: 1}, "bad type %s", "i32")
	c.Warnf(StageABT, CodeNonExhaustiveMatch, token.Span{Line: 2}, "missing variant")

	reports := c.Reports()
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Severity != Error || reports[0].Code != CodeTypeMismatch {
		t.Errorf("unexpected first report: %+v", reports[0])
	}
	if reports[1].Severity != Warning || reports[1].Code != CodeNonExhaustiveMatch {
		t.Errorf("unexpected second report: %+v", reports[1])
	}
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	c := NewCollector()
	c.Warnf(StageABT, CodeNonExhaustiveMatch, token.Span{}, "warn only")
	if c.HasErrors() {
		t.Errorf("a collector with only warnings should not report HasErrors")
	}
	c.Errorf(StageABT, CodeUnresolvedName, token.Span{}, "now an error")
	if !c.HasErrors() {
		t.Errorf("expected HasErrors after pushing an Error report")
	}
}

func TestClearEmptiesReports(t *testing.T) {
	c := NewCollector()
	c.Errorf(StageABT, CodeRedeclaration, token.Span{}, "dup")
	c.Clear()
	if len(c.Reports()) != 0 {
		t.Errorf("expected no reports after Clear")
	}
	if c.HasErrors() {
		t.Errorf("expected HasErrors false after Clear")
	}
}

func TestReportsReturnsACopy(t *testing.T) {
	c := NewCollector()
	c.Errorf(StageABT, CodeRedeclaration, token.Span{}, "dup")
	reports := c.Reports()
	reports[0].Message = "mutated"
	if c.Reports()[0].Message == "mutated" {
		t.Errorf("Reports should return a copy, not the internal slice")
	}
}

func TestReportImplementsError(t *testing.T) {
	r := Report{Severity: Error, Stage: StageABT, Code: CodeTypeMismatch, Message: "bad"}
	var err error = r
	if err.Error() == "" {
		t.Errorf("expected a non-empty error string")
	}
}

func TestSeverityAndStageStrings(t *testing.T) {
	if Error.String() != "error" || Warning.String() != "warning" || Info.String() != "info" {
		t.Errorf("unexpected Severity strings")
	}
	if StageABT.String() != "ABT" {
		t.Errorf("expected StageABT to stringify as ABT, got %q", StageABT.String())
	}
}
