package diag

import (
	"cmp"
	"fmt"
	"slices"
)

// Bag collects diagnostics from one or more files.
type Bag struct {
	items []Diagnostic
}

// Add appends diagnostics to the bag.
func (b *Bag) Add(ds ...Diagnostic) {
	b.items = append(b.items, ds...)
}

// Len returns the number of diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the diagnostics. The slice must not be modified.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// HasAtLeast reports whether any diagnostic has severity sev or higher.
func (b *Bag) HasAtLeast(sev Severity) bool {
	for i := range b.items {
		if b.items[i].Severity >= sev {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by path, start, end, severity (descending) and
// rule, for stable output.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		if c := cmp.Compare(x.Path, y.Path); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Span.Start, y.Span.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Span.End, y.Span.End); c != 0 {
			return c
		}
		if c := cmp.Compare(y.Severity, x.Severity); c != 0 {
			return c
		}
		return cmp.Compare(x.Rule, y.Rule)
	})
}

// Dedup drops diagnostics with the same rule and location as an earlier
// one.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s:%d:%d", d.Rule, d.Path, d.Span.Start, d.Span.End)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, d)
	}
	b.items = kept
}
