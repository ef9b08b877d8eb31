// Package order implements the member and list ordering rules.
package order

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/donaldgifford/memberfmt/internal/analyzer"
	"github.com/donaldgifford/memberfmt/internal/diag"
	"github.com/donaldgifford/memberfmt/internal/ordering"
	"github.com/donaldgifford/memberfmt/internal/parser"
)

// TypeMembers checks that the members of every class, struct, interface
// and record body follow the group order and, within a bucket, priority
// and alphabetical order. All bodies of a partial type are checked and
// fixed together, each against its own state. The positional parameters
// of a record are its members too and are checked alphabetically.
type TypeMembers struct{}

// Name implements analyzer.Rule.
func (TypeMembers) Name() string { return "type-members" }

// Rules implements analyzer.Rule.
func (TypeMembers) Rules() []diag.RuleID {
	return []diag.RuleID{diag.RuleGroupOrder, diag.RuleMemberNameOrder, diag.RuleRecordOrder}
}

// Check implements analyzer.Rule.
func (TypeMembers) Check(f *parser.File, opts *ordering.Options) ([]diag.Diagnostic, error) {
	var out []diag.Diagnostic
	for _, name := range typeNames(f) {
		fragments := f.Fragments(name)
		descs, members := describe(fragments)

		violations, err := ordering.Verify(descs, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for _, v := range violations {
			m := members[v.Index]
			out = append(out, diag.Diagnostic{
				Rule:     memberRule(fragments[0].Kind, v.Kind),
				Message:  memberMessage(fragments[0].Kind, v, descs[v.Index].Group),
				Span:     span(m.Span),
				Type:     name,
				Names:    []string{v.Name},
				Fragment: int(v.Fragment),
			})
		}
	}
	for _, l := range f.ListsOf(parser.ListRecordParameters) {
		for _, v := range ordering.VerifySequence(l.Items(), ordering.ParameterSequence()) {
			out = append(out, elementDiagnostic(l, v, diag.RuleRecordOrder, diag.RecordMessage(v.Name)))
		}
	}
	return out, nil
}

// Fix implements analyzer.Rule. Every type named by diags is rewritten
// once, all of its bodies in the file together.
func (TypeMembers) Fix(f *parser.File, diags []diag.Diagnostic) ([]analyzer.Edit, error) {
	var positional, body []diag.Diagnostic
	for _, d := range diags {
		if d.Rule == diag.RuleRecordOrder && enclosingList(f, parser.ListRecordParameters, d.Span.Start) != nil {
			positional = append(positional, d)
		} else {
			body = append(body, d)
		}
	}
	edits, err := fixLists(f, positional, func(*ordering.Options) ordering.SequenceOptions {
		return ordering.ParameterSequence()
	}, parser.ListRecordParameters)
	if err != nil {
		return nil, err
	}

	done := make(map[string]bool)
	for _, d := range body {
		if done[d.Type] {
			continue
		}
		done[d.Type] = true

		opts, err := d.Options()
		if err != nil {
			return nil, err
		}
		fragments := f.Fragments(d.Type)
		descs, _ := describe(fragments)
		placements, err := ordering.RewriteFragments(descs, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Type, err)
		}

		offset := 0
		for _, t := range fragments {
			ps := placements[t.Fragment]
			switch {
			case !ordering.Changed(ps):
			case t.Unfixable != "":
				log.Debug().Str("path", f.Path).Str("type", t.QualifiedName).
					Int("line", t.Span.Line).Msgf("not reordering members: %s", t.Unfixable)
			case crossesRegion(t, ps, offset):
				log.Debug().Str("path", f.Path).Str("type", t.QualifiedName).
					Int("line", t.Span.Line).Msg("not reordering members: a member would leave its region")
			default:
				edits = append(edits, renderBody(f, t, ps, offset))
			}
			offset += len(t.Members)
		}
	}
	return edits, nil
}

// typeNames returns the qualified name of every type with a body, once, in
// source order.
func typeNames(f *parser.File) []string {
	var names []string
	seen := make(map[string]bool)
	for _, t := range f.Types {
		if !seen[t.QualifiedName] {
			seen[t.QualifiedName] = true
			names = append(names, t.QualifiedName)
		}
	}
	return names
}

// describe numbers the members of all fragments consecutively. The
// returned members are indexed like the descriptors.
func describe(fragments []*parser.TypeDecl) ([]ordering.Descriptor, []*parser.Member) {
	var (
		descs   []ordering.Descriptor
		members []*parser.Member
	)
	for _, t := range fragments {
		for _, m := range t.Members {
			d := ordering.Describe(m.Decl, t.Fragment, len(descs))
			d.BlankLines = m.Leading.BlankLines
			d.Decorated = m.Leading.Decorated
			descs = append(descs, d)
			members = append(members, m)
		}
	}
	return descs, members
}

// memberRule picks the rule of a violation. A wrong group is always
// RBCS0001; a name out of order is reported by the declaring construct.
func memberRule(kind parser.TypeKind, v ordering.ViolationKind) diag.RuleID {
	switch {
	case v == ordering.GroupOrderViolation:
		return diag.RuleGroupOrder
	case kind == parser.KindRecord:
		return diag.RuleRecordOrder
	default:
		return diag.RuleMemberNameOrder
	}
}

func memberMessage(kind parser.TypeKind, v ordering.Violation, g ordering.MemberGroup) string {
	switch {
	case v.Kind == ordering.GroupOrderViolation:
		return diag.GroupOrderMessage(v.Name, g.String())
	case kind == parser.KindRecord:
		return diag.RecordMessage(v.Name)
	default:
		return diag.NameOrderMessage(v.Name)
	}
}

func span(s parser.Span) diag.Span {
	return diag.Span{Start: s.Start, End: s.End, Line: s.Line, Column: s.Column}
}
