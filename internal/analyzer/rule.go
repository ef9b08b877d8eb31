// Package analyzer runs ordering rules over parsed files and applies the
// edits their fixes produce.
package analyzer

import (
	"github.com/donaldgifford/memberfmt/internal/diag"
	"github.com/donaldgifford/memberfmt/internal/ordering"
	"github.com/donaldgifford/memberfmt/internal/parser"
)

// Rule checks one aspect of member ordering and fixes what it reports.
type Rule interface {
	// Name returns a short identifier for logs (e.g., "type-members").
	Name() string

	// Rules returns the diagnostic identifiers the rule reports.
	Rules() []diag.RuleID

	// Check reports ordering problems in f. Path, severity and payload of
	// the returned diagnostics are filled in by the engine.
	Check(f *parser.File, opts *ordering.Options) ([]diag.Diagnostic, error)

	// Fix returns the edits that resolve diags, which were produced by
	// Check for the same file. Diagnostics that cannot be fixed are
	// skipped.
	Fix(f *parser.File, diags []diag.Diagnostic) ([]Edit, error)
}

// Edit replaces src[Start:End] with Text.
type Edit struct {
	Start int
	End   int
	Text  []byte
}

// Policy decides whether a diagnostic rule is reported and at which
// severity.
type Policy interface {
	Level(id diag.RuleID) (diag.Severity, bool)
}

// DefaultPolicy reports every rule at info severity.
type DefaultPolicy struct{}

// Level implements Policy.
func (DefaultPolicy) Level(diag.RuleID) (diag.Severity, bool) {
	return diag.SevInfo, true
}
