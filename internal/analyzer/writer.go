package analyzer

import (
	"errors"
	"fmt"
	"slices"
)

// ErrBadEdit is returned for edits outside the source or overlapping each
// other.
var ErrBadEdit = errors.New("invalid edit")

// Apply returns src with edits applied. Edits may be given in any order but
// must not overlap.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int { return a.Start - b.Start })

	out := make([]byte, 0, len(src))
	pos := 0
	for _, e := range sorted {
		if e.Start < pos || e.End < e.Start || e.End > len(src) {
			return nil, fmt.Errorf("%w: [%d,%d) in %d bytes after offset %d",
				ErrBadEdit, e.Start, e.End, len(src), pos)
		}
		out = append(out, src[pos:e.Start]...)
		out = append(out, e.Text...)
		pos = e.End
	}
	return append(out, src[pos:]...), nil
}
