package parser

import (
	"bytes"
	"slices"
)

// lineIndex maps byte offsets to line numbers.
type lineIndex struct {
	src    []byte
	starts []int
}

func newLineIndex(src []byte) *lineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

// line returns the 0-based line containing off.
func (ix *lineIndex) line(off int) int {
	i, found := slices.BinarySearch(ix.starts, off)
	if found {
		return i
	}
	return i - 1
}

// start returns the offset of the first byte of line. Lines past the end
// start at len(src).
func (ix *lineIndex) start(line int) int {
	if line >= len(ix.starts) {
		return len(ix.src)
	}
	return ix.starts[line]
}

// span builds a Span for [start, end).
func (ix *lineIndex) span(start, end int) Span {
	line := ix.line(start)
	return Span{Start: start, End: end, Line: line + 1, Column: start - ix.starts[line] + 1}
}

// blankBefore reports whether only whitespace precedes off on its line.
func (ix *lineIndex) blankBefore(off int) bool {
	return isBlank(ix.src[ix.start(ix.line(off)):off])
}

func isBlank(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}

// isCRLF reports whether the first line ending of src is "\r\n".
func isCRLF(src []byte) bool {
	i := bytes.IndexByte(src, '\n')
	return i > 0 && src[i-1] == '\r'
}

// layoutBody computes the chunks and leading trivia of the members of t.
// A body whose members cannot be cut into whole lines is marked Unfixable.
// #region and #endregion lines stay where they are; any other directive
// between members makes the body Unfixable.
func layoutBody(ix *lineIndex, t *TypeDecl) {
	if len(t.Members) == 0 {
		return
	}

	prevEnd := ix.line(t.Open)
	regions := 0
	for _, m := range t.Members {
		line := ix.line(m.Span.Start)
		if line <= prevEnd || !ix.blankBefore(m.Span.Start) {
			t.Unfixable = "members share a line"
			return
		}
		from := ix.start(prevEnd + 1)
		end, count, other := regionLines(ix.src, from, ix.start(line))
		regions += count
		m.ChunkStart, m.Fixed, m.Region = end, end-from, regions
		m.Leading = leadingTrivia(ix.src, m.ChunkStart, ix.start(line))
		if other || m.Leading.Directive {
			t.Unfixable = "preprocessor directive between members"
		}
		prevEnd = ix.line(m.Span.End - 1)
	}

	if ix.line(t.Close) <= prevEnd {
		t.Unfixable = "closing brace shares a line with a member"
		return
	}

	for i, m := range t.Members {
		if i+1 < len(t.Members) {
			next := t.Members[i+1]
			m.ChunkEnd = next.ChunkStart - next.Fixed
		} else {
			m.ChunkEnd = ix.start(prevEnd + 1)
		}
	}
}

// lineEnd returns the offset after the line starting at off, or to.
func lineEnd(src []byte, off, to int) int {
	end := bytes.IndexByte(src[off:to], '\n')
	if end < 0 {
		return to
	}
	return off + end + 1
}

// regionLines scans the whole lines in src[from:to] for #region and
// #endregion lines. end is the offset after the last of them, or from when
// there is none; other reports a directive of any other kind.
func regionLines(src []byte, from, to int) (end, count int, other bool) {
	end = from
	for off := from; off < to; {
		next := lineEnd(src, off, to)
		text := bytes.TrimSpace(src[off:next])
		if len(text) > 0 && text[0] == '#' {
			if isRegion(text) {
				end = next
				count++
			} else {
				other = true
			}
		}
		off = next
	}
	return end, count, other
}

func isRegion(directive []byte) bool {
	name := bytes.TrimSpace(directive[1:])
	return bytes.HasPrefix(name, []byte("region")) || bytes.HasPrefix(name, []byte("endregion"))
}

// leadingTrivia inspects the whole lines in src[from:to].
func leadingTrivia(src []byte, from, to int) Trivia {
	tr := Trivia{TextStart: from}
	leading := true
	for off := from; off < to; {
		end := lineEnd(src, off, to)

		text := bytes.TrimSpace(src[off:end])
		switch {
		case len(text) == 0:
			if leading {
				tr.BlankLines++
				tr.TextStart = end
			}
		default:
			leading = false
			tr.Decorated = true
			if text[0] == '#' {
				tr.Directive = true
			}
		}
		off = end
	}
	return tr
}

// token is the part of a list node layoutList needs.
type token struct {
	kind  string // "element", "comment" or any other token text
	start int
	end   int
}

// layoutList computes the element chunks of a list from its child tokens.
// A comment joins the chunk of the element after it when it starts on a
// line of its own, and becomes the trail of the element before it when it
// ends that element's line.
func layoutList(ix *lineIndex, l *List, tokens []token) {
	next := 0
	for i, tok := range tokens {
		if tok.kind != "element" {
			continue
		}
		if next >= len(l.Elements) {
			break
		}
		e := l.Elements[next]
		next++

		e.ChunkStart, e.ChunkEnd = tok.start, tok.end
		for j := i - 1; j >= 0 && tokens[j].kind == "comment"; j-- {
			if j > 0 && ix.line(tokens[j].start) <= ix.line(tokens[j-1].end-1) {
				break
			}
			e.ChunkStart = tokens[j].start
		}
		trail(ix, e, tokens[i+1:])
	}

	for i := 1; i < len(l.Elements); i++ {
		prev := l.Elements[i-1]
		if l.Elements[i].ChunkStart < max(prev.ChunkEnd, prev.TrailEnd) {
			l.Unfixable = "overlapping elements"
			return
		}
	}
}

// trail finds the end of e's line: past a separator on the same line and
// a comment that closes the line. rest holds the tokens after e.
func trail(ix *lineIndex, e *Element, rest []token) {
	end := e.ChunkEnd
	line := ix.line(end - 1)
	if len(rest) > 0 && rest[0].kind == "," && ix.line(rest[0].start) == line {
		end = rest[0].end
		rest = rest[1:]
	}

	endsLine := func(toks []token, line int) bool {
		return len(toks) == 0 || ix.line(toks[0].start) > line
	}
	switch {
	case len(rest) > 0 && rest[0].kind == "comment" && ix.line(rest[0].start) == line:
		if !endsLine(rest[1:], ix.line(rest[0].end-1)) {
			return
		}
		e.TrailStart, e.TrailEnd = end, rest[0].end
	case endsLine(rest, line):
		e.TrailStart, e.TrailEnd = end, end
	default:
		return
	}
	e.CanTrail = true
}
