// Package diff renders unified diffs of rewritten source files.
package diff

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
	godiff "github.com/sourcegraph/go-diff/diff"
)

// contextLines is the number of unchanged lines shown around each hunk.
const contextLines = 3

// Compute returns the line diff between old and updated contents of name,
// or nil when they are identical.
func Compute(name string, old, updated []byte) (*godiff.FileDiff, error) {
	if bytes.Equal(old, updated) {
		return nil, nil
	}

	oldLines := splitLines(old)
	newLines := splitLines(updated)

	hunks := buildHunks(myers(oldLines, newLines))
	if len(hunks) == 0 {
		return nil, nil
	}

	fd := &godiff.FileDiff{
		OrigName: "a/" + name,
		NewName:  "b/" + name,
		Hunks:    make([]*godiff.Hunk, 0, len(hunks)),
	}
	for _, h := range hunks {
		gh, err := h.render(oldLines, newLines)
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", name, err)
		}
		fd.Hunks = append(fd.Hunks, gh)
	}
	return fd, nil
}

// Print renders fd in unified format. A nil diff renders as "".
func Print(fd *godiff.FileDiff) (string, error) {
	if fd == nil {
		return "", nil
	}
	out, err := godiff.PrintFileDiff(fd)
	if err != nil {
		return "", fmt.Errorf("printing diff %s: %w", fd.NewName, err)
	}
	return string(out), nil
}

// Stats counts the lines a diff adds and removes. A changed line counts
// once on each side.
type Stats struct {
	Added   int
	Deleted int
}

// StatsOf summarizes fd. A nil diff has zero stats.
func StatsOf(fd *godiff.FileDiff) Stats {
	if fd == nil {
		return Stats{}
	}
	st := fd.Stat()
	return Stats{
		Added:   int(st.Added + st.Changed),
		Deleted: int(st.Deleted + st.Changed),
	}
}

// String renders the stats as "+added -deleted".
func (s Stats) String() string {
	return fmt.Sprintf("+%d -%d", s.Added, s.Deleted)
}

// splitLines splits text into lines, keeping each line's terminator so
// CRLF sources diff cleanly. An empty input produces zero lines.
func splitLines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	lines := bytes.SplitAfter(b, []byte("\n"))
	// SplitAfter leaves an empty trailing element when b ends with \n.
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l)
	}
	return out
}

// editKind represents a diff operation.
type editKind int

const (
	editEqual  editKind = iota
	editInsert          // line exists only in newText.
	editDelete          // line exists only in oldText.
)

// edit is a single diff operation.
type edit struct {
	kind   editKind
	oldIdx int // index in old (-1 for inserts).
	newIdx int // index in new (-1 for deletes).
}

// myers computes the shortest edit script using the Myers diff algorithm.
func myers(a, b []string) []edit {
	n := len(a)
	m := len(b)
	total := n + m
	if total == 0 {
		return nil
	}

	// v stores the farthest reaching path endpoints.
	// Indexed by k = x - y, offset by total to avoid negative indices.
	v := make([]int, 2*total+1)
	// trace stores a copy of v for each step d, used to reconstruct the path.
	trace := make([][]int, 0, total+1)

	for d := 0; d <= total; d++ {
		// Save v state for backtracking.
		vc := make([]int, len(v))
		copy(vc, v)
		trace = append(trace, vc)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[k-1+total] < v[k+1+total]) {
				x = v[k+1+total] // move down (insert).
			} else {
				x = v[k-1+total] + 1 // move right (delete).
			}
			y := x - k

			// Follow diagonal (equal lines).
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}

			v[k+total] = x

			if x >= n && y >= m {
				return backtrack(trace, a, b, d, total)
			}
		}
	}

	// Should not reach here for valid inputs.
	return nil
}

// backtrack reconstructs the edit script from the trace.
func backtrack(trace [][]int, a, b []string, d, total int) []edit {
	n := len(a)
	m := len(b)
	x, y := n, m

	var edits []edit

	for step := d; step > 0; step-- {
		v := trace[step]
		k := x - y

		var prevK int
		if k == -step || (k != step && v[k-1+total] < v[k+1+total]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}

		prevX := v[prevK+total]
		prevY := prevX - prevK

		// Diagonal (equal) lines.
		for x > prevX && y > prevY {
			x--
			y--
			edits = append(edits, edit{kind: editEqual, oldIdx: x, newIdx: y})
		}

		if k == -step || (k != step && v[k-1+total] < v[k+1+total]) {
			// Insert.
			y--
			edits = append(edits, edit{kind: editInsert, oldIdx: -1, newIdx: y})
		} else {
			// Delete.
			x--
			edits = append(edits, edit{kind: editDelete, oldIdx: x, newIdx: -1})
		}
	}

	// Remaining diagonal at d=0.
	for x > 0 && y > 0 {
		x--
		y--
		edits = append(edits, edit{kind: editEqual, oldIdx: x, newIdx: y})
	}

	// Reverse to get forward order.
	for i, j := 0, len(edits)-1; i < j; i, j = i+1, j-1 {
		edits[i], edits[j] = edits[j], edits[i]
	}

	return edits
}

// region represents a contiguous range of changed edits.
type region struct{ start, end int }

// hunk represents a unified diff hunk.
type hunk struct {
	oldStart int // 0-indexed start in old.
	oldCount int
	newStart int // 0-indexed start in new.
	newCount int
	edits    []edit
}

// buildHunks groups edits into hunks with context lines.
func buildHunks(edits []edit) []hunk {
	if len(edits) == 0 {
		return nil
	}

	regions := findChangeRegions(edits)
	merged := mergeRegions(regions)
	return regionsToHunks(merged, edits)
}

// findChangeRegions identifies contiguous ranges of non-equal edits.
func findChangeRegions(edits []edit) []region {
	var regions []region
	for i, e := range edits {
		if e.kind == editEqual {
			continue
		}
		if len(regions) == 0 || i > regions[len(regions)-1].end+1 {
			regions = append(regions, region{start: i, end: i})
		} else {
			regions[len(regions)-1].end = i
		}
	}
	return regions
}

// mergeRegions combines regions that are close enough that their contexts overlap.
func mergeRegions(regions []region) []region {
	var merged []region
	for _, r := range regions {
		if len(merged) > 0 && r.start-merged[len(merged)-1].end <= 2*contextLines {
			merged[len(merged)-1].end = r.end
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// regionsToHunks converts merged regions into hunks with context and line counts.
func regionsToHunks(regions []region, edits []edit) []hunk {
	hunks := make([]hunk, 0, len(regions))
	for _, r := range regions {
		start := max(r.start-contextLines, 0)
		end := min(r.end+contextLines, len(edits)-1)

		h := hunk{edits: edits[start : end+1]}
		h.oldStart, h.newStart = findHunkStarts(h.edits)
		h.oldCount, h.newCount = countHunkLines(h.edits)
		hunks = append(hunks, h)
	}
	return hunks
}

// findHunkStarts returns the first old and new line indices in the hunk.
func findHunkStarts(edits []edit) (oldStart, newStart int) {
	for _, e := range edits {
		if e.oldIdx >= 0 {
			oldStart = e.oldIdx
			break
		}
	}
	for _, e := range edits {
		if e.newIdx >= 0 {
			newStart = e.newIdx
			break
		}
	}
	return oldStart, newStart
}

// countHunkLines counts old and new lines in the hunk's edit list.
func countHunkLines(edits []edit) (oldCount, newCount int) {
	for _, e := range edits {
		switch e.kind {
		case editEqual:
			oldCount++
			newCount++
		case editDelete:
			oldCount++
		case editInsert:
			newCount++
		}
	}
	return oldCount, newCount
}

// render converts the hunk to its go-diff form. Line numbers are 1-based;
// an empty side starts at the line before the hunk.
func (h *hunk) render(oldLines, newLines []string) (*godiff.Hunk, error) {
	var body bytes.Buffer
	for _, e := range h.edits {
		switch e.kind {
		case editEqual:
			body.WriteByte(' ')
			body.WriteString(ensureNewline(oldLines[e.oldIdx]))
		case editDelete:
			body.WriteByte('-')
			body.WriteString(ensureNewline(oldLines[e.oldIdx]))
		case editInsert:
			body.WriteByte('+')
			body.WriteString(ensureNewline(newLines[e.newIdx]))
		}
	}

	gh := &godiff.Hunk{Body: body.Bytes()}
	var err error
	if gh.OrigStartLine, err = startLine(h.oldStart, h.oldCount); err != nil {
		return nil, err
	}
	if gh.OrigLines, err = safecast.Conv[int32](h.oldCount); err != nil {
		return nil, err
	}
	if gh.NewStartLine, err = startLine(h.newStart, h.newCount); err != nil {
		return nil, err
	}
	if gh.NewLines, err = safecast.Conv[int32](h.newCount); err != nil {
		return nil, err
	}
	return gh, nil
}

func startLine(start, count int) (int32, error) {
	if count > 0 {
		start++
	}
	return safecast.Conv[int32](start)
}

// ensureNewline makes sure the line ends with a newline for diff output.
func ensureNewline(line string) string {
	if len(line) > 0 && line[len(line)-1] == '\n' {
		return line
	}
	return line + "\n"
}
