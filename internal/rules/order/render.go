package order

import (
	"bytes"

	"github.com/donaldgifford/memberfmt/internal/analyzer"
	"github.com/donaldgifford/memberfmt/internal/ordering"
	"github.com/donaldgifford/memberfmt/internal/parser"
)

// renderBody rewrites the member chunks of t in placement order. Members
// whose spacing is unchanged are copied verbatim; the others get their
// leading blank lines replaced. Region lines stay with their slot. offset
// is the descriptor index of the first member of t.
func renderBody(f *parser.File, t *parser.TypeDecl, placements []ordering.Placement, offset int) analyzer.Edit {
	var b bytes.Buffer
	for slot, p := range placements {
		if slot > 0 {
			home := t.Members[slot]
			b.Write(f.Src[home.ChunkStart-home.Fixed : home.ChunkStart])
		}
		m := t.Members[p.Index-offset]
		if !p.Adjusted {
			b.Write(f.Src[m.ChunkStart:m.ChunkEnd])
			continue
		}
		for range p.BlankLines {
			b.WriteString(f.Newline())
		}
		b.Write(f.Src[m.Leading.TextStart:m.ChunkEnd])
	}

	first, last := t.Members[0], t.Members[len(t.Members)-1]
	return analyzer.Edit{Start: first.ChunkStart, End: last.ChunkEnd, Text: b.Bytes()}
}

// crossesRegion reports whether placements move a member of t out of its
// #region.
func crossesRegion(t *parser.TypeDecl, placements []ordering.Placement, offset int) bool {
	for slot, p := range placements {
		if t.Members[p.Index-offset].Region != t.Members[slot].Region {
			return true
		}
	}
	return false
}

// renderList moves the element chunks of l into the slots given by order.
// Separators and the whitespace around them stay where they are; a
// trailing comment moves with its element. It reports false when a
// trailing comment would land on a line that continues.
func renderList(f *parser.File, l *parser.List, order []int) (analyzer.Edit, bool) {
	var b bytes.Buffer
	for slot, idx := range order {
		e, home := l.Elements[idx], l.Elements[slot]
		if e.HasTrail() && !home.CanTrail {
			return analyzer.Edit{}, false
		}

		b.Write(f.Src[e.ChunkStart:e.ChunkEnd])
		trailStart, trailEnd := home.Trail()
		b.Write(f.Src[home.ChunkEnd:trailStart])
		if e.HasTrail() {
			b.Write(f.Src[e.TrailStart:e.TrailEnd])
		}
		if slot+1 < len(order) {
			b.Write(f.Src[trailEnd:l.Elements[slot+1].ChunkStart])
		}
	}

	first, last := l.Elements[0], l.Elements[len(l.Elements)-1]
	_, end := last.Trail()
	return analyzer.Edit{Start: first.ChunkStart, End: end, Text: b.Bytes()}, true
}
