package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/donaldgifford/memberfmt/internal/diag"
	"github.com/donaldgifford/memberfmt/internal/ordering"
	"github.com/donaldgifford/memberfmt/internal/parser"
)

// MaxPasses bounds the fix loop. Each pass fixes the innermost bodies that
// need it, so the bound is also the deepest type nesting fixed in one run.
const MaxPasses = 8

// ParseFunc parses a source file.
type ParseFunc func(ctx context.Context, path string, src []byte) (*parser.File, error)

// Check runs every rule over f and returns the diagnostics the policy
// enables, each carrying the settings it was produced with.
func Check(f *parser.File, opts *ordering.Options, rules []Rule, policy Policy) ([]diag.Diagnostic, error) {
	payload, err := diag.EncodeSettings(opts.Settings)
	if err != nil {
		return nil, err
	}

	var out []diag.Diagnostic
	for _, r := range rules {
		found, err := r.Check(f, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Name(), err)
		}
		for _, d := range found {
			sev, ok := policy.Level(d.Rule)
			if !ok {
				continue
			}
			d.Severity = sev
			d.Path = f.Path
			d.Payload = payload
			out = append(out, d)
		}
	}
	return out, nil
}

// Result is the outcome of Fix.
type Result struct {
	// Output is the fixed source. It is the input itself when nothing
	// was fixed.
	Output []byte
	// Diagnostics are the problems found in the input.
	Diagnostics []diag.Diagnostic
	// Remaining are the problems left in Output.
	Remaining []diag.Diagnostic
	// Passes counts the fix passes that changed the source.
	Passes int
}

// Changed reports whether Output differs from the input.
func (r *Result) Changed() bool {
	return r.Passes > 0
}

// Fix checks src and repeatedly applies the rules' fixes until no fixable
// diagnostic remains or MaxPasses is reached. Overlapping edits keep the
// innermost one; the enclosing body is fixed in a later pass.
func Fix(ctx context.Context, path string, src []byte, parse ParseFunc,
	opts *ordering.Options, rules []Rule, policy Policy,
) (*Result, error) {
	f, err := parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	diags, err := Check(f, opts, rules, policy)
	if err != nil {
		return nil, err
	}

	res := &Result{Output: src, Diagnostics: diags, Remaining: diags}
	for res.Passes < MaxPasses && len(res.Remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		edits, err := collectEdits(f, res.Remaining, rules)
		if err != nil {
			return nil, err
		}
		if len(edits) == 0 {
			break
		}
		out, err := Apply(f.Src, edits)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(out, f.Src) {
			break
		}

		res.Passes++
		if f, err = parse(ctx, path, out); err != nil {
			return nil, fmt.Errorf("re-parsing after fix pass %d: %w", res.Passes, err)
		}
		res.Output = out
		if res.Remaining, err = Check(f, opts, rules, policy); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// collectEdits asks each rule to fix its own diagnostics.
func collectEdits(f *parser.File, diags []diag.Diagnostic, rules []Rule) ([]Edit, error) {
	var edits []Edit
	for _, r := range rules {
		var mine []diag.Diagnostic
		for _, d := range diags {
			if slices.Contains(r.Rules(), d.Rule) {
				mine = append(mine, d)
			}
		}
		if len(mine) == 0 {
			continue
		}
		fixed, err := r.Fix(f, mine)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Name(), err)
		}
		edits = append(edits, fixed...)
	}
	return innermost(edits), nil
}

// innermost drops every edit that overlaps a shorter one and returns the
// rest in source order.
func innermost(edits []Edit) []Edit {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		return (a.End - a.Start) - (b.End - b.Start)
	})

	var kept []Edit
	for _, e := range sorted {
		if !slices.ContainsFunc(kept, func(k Edit) bool { return overlaps(k, e) }) {
			kept = append(kept, e)
		}
	}
	slices.SortFunc(kept, func(a, b Edit) int { return a.Start - b.Start })
	return kept
}

func overlaps(a, b Edit) bool {
	return a.Start < b.End && b.Start < a.End
}
