// Package diag defines the diagnostics reported by the ordering rules.
package diag

import (
	"fmt"
	"strings"
)

// RuleID identifies a diagnostic rule, e.g. "RBCS0001".
type RuleID string

// Ordering rule identifiers.
const (
	RuleGroupOrder       RuleID = "RBCS0001"
	RuleMemberNameOrder  RuleID = "RBCS0002"
	RuleInitializerOrder RuleID = "RBCS0003"
	RuleEnumOrder        RuleID = "RBCS0004"
	RuleRecordOrder      RuleID = "RBCS0005"
	RuleParameterOrder   RuleID = "RBCS0006"
)

var ruleTitles = map[RuleID]string{
	RuleGroupOrder:       "Members should be ordered by member group",
	RuleMemberNameOrder:  "Members of a group should be in alphabetical order",
	RuleInitializerOrder: "Object initializer assignments should be in alphabetical order",
	RuleEnumOrder:        "Enum members should be in alphabetical order",
	RuleRecordOrder:      "Record members should be ordered",
	RuleParameterOrder:   "Parameters should be in alphabetical order",
}

// AllRules returns every rule identifier in ascending order.
func AllRules() []RuleID {
	return []RuleID{
		RuleGroupOrder,
		RuleMemberNameOrder,
		RuleInitializerOrder,
		RuleEnumOrder,
		RuleRecordOrder,
		RuleParameterOrder,
	}
}

// ParseRuleID accepts a rule identifier in any letter case.
func ParseRuleID(s string) (RuleID, error) {
	id := RuleID(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := ruleTitles[id]; !ok {
		return "", fmt.Errorf("unknown rule %q", s)
	}
	return id, nil
}

// Title returns the one-line description of the rule.
func (r RuleID) Title() string {
	return ruleTitles[r]
}

// Span locates a diagnostic in its source file. Start and End are byte
// offsets; Line and Column are 1-based and describe Start.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

// Diagnostic is one reported ordering problem.
type Diagnostic struct {
	Rule     RuleID
	Severity Severity
	Message  string
	Path     string
	Span     Span
	// Type is the qualified name of the type or list owner the diagnostic
	// belongs to. Fixes rewrite every fragment of it together.
	Type string
	// Names are the out-of-order names the message refers to.
	Names    []string
	Fragment int
	// Payload carries the encoded ordering settings the diagnostic was
	// produced with; see EncodeSettings.
	Payload []byte
}

// String renders d as "path:line:col: severity RULE: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s: %s",
		d.Path, d.Span.Line, d.Span.Column, d.Severity, d.Rule, d.Message)
}
