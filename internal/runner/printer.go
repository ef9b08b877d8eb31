package runner

import (
	"io"

	"github.com/fatih/color"

	"github.com/donaldgifford/memberfmt/internal/diag"
)

// printer writes diagnostics in compiler style, coloring the location and
// severity.
type printer struct {
	w        io.Writer
	location *color.Color
	rule     *color.Color
	severity map[diag.Severity]*color.Color
}

func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{
		w:        w,
		location: color.New(color.Bold),
		rule:     color.New(color.Faint),
		severity: map[diag.Severity]*color.Color{
			diag.SevInfo:    color.New(color.FgCyan),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
		},
	}
	if noColor {
		p.location.DisableColor()
		p.rule.DisableColor()
		for _, c := range p.severity {
			c.DisableColor()
		}
	}
	return p
}

// diagnostic prints d as "path:line:col: severity RULE: message".
func (p *printer) diagnostic(d diag.Diagnostic) {
	p.location.Fprintf(p.w, "%s:%d:%d:", d.Path, d.Span.Line, d.Span.Column)
	io.WriteString(p.w, " ")
	p.severity[d.Severity].Fprint(p.w, d.Severity.String())
	io.WriteString(p.w, " ")
	p.rule.Fprintf(p.w, "%s:", d.Rule)
	io.WriteString(p.w, " "+d.Message+"\n")
}

// ruleLevel prints one line of the rule listing: the rule, its configured
// level and its title.
func (p *printer) ruleLevel(id diag.RuleID, sev diag.Severity, enabled bool) {
	p.location.Fprint(p.w, string(id))
	io.WriteString(p.w, "  ")
	if enabled {
		p.severity[sev].Fprintf(p.w, "%-7s", sev)
	} else {
		p.rule.Fprintf(p.w, "%-7s", "off")
	}
	io.WriteString(p.w, "  "+id.Title()+"\n")
}
