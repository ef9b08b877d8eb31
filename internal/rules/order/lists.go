package order

import (
	"github.com/rs/zerolog/log"

	"github.com/donaldgifford/memberfmt/internal/analyzer"
	"github.com/donaldgifford/memberfmt/internal/diag"
	"github.com/donaldgifford/memberfmt/internal/ordering"
	"github.com/donaldgifford/memberfmt/internal/parser"
)

// Enums checks that enum members are in alphabetical order.
type Enums struct{}

// Name implements analyzer.Rule.
func (Enums) Name() string { return "enum-members" }

// Rules implements analyzer.Rule.
func (Enums) Rules() []diag.RuleID { return []diag.RuleID{diag.RuleEnumOrder} }

// Check implements analyzer.Rule.
func (Enums) Check(f *parser.File, opts *ordering.Options) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	for _, l := range f.ListsOf(parser.ListEnum) {
		for _, v := range ordering.VerifySequence(l.Items(), opts.EnumSequence()) {
			out = append(out, elementDiagnostic(l, v, diag.RuleEnumOrder, diag.EnumMessage(v.Name)))
		}
	}
	return out, nil
}

// Fix implements analyzer.Rule.
func (Enums) Fix(f *parser.File, diags []diag.Diagnostic) ([]analyzer.Edit, error) {
	return fixLists(f, diags, func(opts *ordering.Options) ordering.SequenceOptions {
		return opts.EnumSequence()
	}, parser.ListEnum)
}

// Initializers checks that the assignments of an object initializer list
// the property priority names first and the rest alphabetically. One
// diagnostic per initializer names the assignments that are out of order.
type Initializers struct{}

// Name implements analyzer.Rule.
func (Initializers) Name() string { return "object-initializers" }

// Rules implements analyzer.Rule.
func (Initializers) Rules() []diag.RuleID { return []diag.RuleID{diag.RuleInitializerOrder} }

// Check implements analyzer.Rule.
func (Initializers) Check(f *parser.File, opts *ordering.Options) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	for _, l := range f.ListsOf(parser.ListInitializer) {
		violations := ordering.VerifySequence(l.Items(), opts.InitializerSequence())
		if len(violations) == 0 {
			continue
		}
		names := make([]string, 0, len(violations))
		for _, v := range violations {
			names = append(names, v.Name)
		}
		out = append(out, diag.Diagnostic{
			Rule:    diag.RuleInitializerOrder,
			Message: diag.InitializerMessage(names),
			Span:    span(l.Span),
			Type:    l.Owner,
			Names:   names,
		})
	}
	return out, nil
}

// Fix implements analyzer.Rule.
func (Initializers) Fix(f *parser.File, diags []diag.Diagnostic) ([]analyzer.Edit, error) {
	return fixLists(f, diags, func(opts *ordering.Options) ordering.SequenceOptions {
		return opts.InitializerSequence()
	}, parser.ListInitializer)
}

// Parameters checks that the parameters of methods, constructors and
// primary constructors are in alphabetical order. Fixes reorder the
// declaration only; call sites are left alone. Positional record
// parameters belong to TypeMembers.
type Parameters struct{}

// Name implements analyzer.Rule.
func (Parameters) Name() string { return "parameters" }

// Rules implements analyzer.Rule.
func (Parameters) Rules() []diag.RuleID { return []diag.RuleID{diag.RuleParameterOrder} }

// Check implements analyzer.Rule.
func (Parameters) Check(f *parser.File, _ *ordering.Options) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	for _, l := range f.ListsOf(parser.ListParameters) {
		for _, v := range ordering.VerifySequence(l.Items(), ordering.ParameterSequence()) {
			out = append(out, elementDiagnostic(l, v, diag.RuleParameterOrder, diag.ParameterMessage(v.Name, l.Owner)))
		}
	}
	return out, nil
}

// Fix implements analyzer.Rule.
func (Parameters) Fix(f *parser.File, diags []diag.Diagnostic) ([]analyzer.Edit, error) {
	return fixLists(f, diags, func(*ordering.Options) ordering.SequenceOptions {
		return ordering.ParameterSequence()
	}, parser.ListParameters)
}

func elementDiagnostic(l *parser.List, v ordering.Violation, id diag.RuleID, msg string) diag.Diagnostic {
	return diag.Diagnostic{
		Rule:    id,
		Message: msg,
		Span:    span(l.Elements[v.Index].Span),
		Type:    l.Owner,
		Names:   []string{v.Name},
	}
}

// fixLists sorts every list of the given kind that a diagnostic points
// into. Each list is rewritten once.
func fixLists(f *parser.File, diags []diag.Diagnostic,
	sequence func(*ordering.Options) ordering.SequenceOptions, kind parser.ListKind,
) ([]analyzer.Edit, error) {
	var edits []analyzer.Edit
	done := make(map[*parser.List]bool)
	for _, d := range diags {
		l := enclosingList(f, kind, d.Span.Start)
		if l == nil || done[l] {
			continue
		}
		done[l] = true

		opts, err := d.Options()
		if err != nil {
			return nil, err
		}
		order := ordering.SortSequence(l.Items(), sequence(opts))
		switch {
		case ordering.IsIdentity(order):
		case l.Unfixable != "":
			log.Debug().Str("path", f.Path).Str("owner", l.Owner).
				Int("line", l.Span.Line).Msgf("not reordering %s: %s", l.Kind, l.Unfixable)
		default:
			edit, ok := renderList(f, l, order)
			if !ok {
				log.Debug().Str("path", f.Path).Str("owner", l.Owner).
					Int("line", l.Span.Line).Msgf("not reordering %s: trailing comment on a shared line", l.Kind)
				continue
			}
			edits = append(edits, edit)
		}
	}
	return edits, nil
}

// enclosingList returns the innermost list of kind that contains off.
func enclosingList(f *parser.File, kind parser.ListKind, off int) *parser.List {
	var best *parser.List
	for _, l := range f.ListsOf(kind) {
		if !l.Span.Contains(off) {
			continue
		}
		if best == nil || l.Span.End-l.Span.Start < best.Span.End-best.Span.Start {
			best = l
		}
	}
	return best
}
