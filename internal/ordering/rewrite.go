package ordering

import "slices"

// Placement is one item of a rewritten sequence.
type Placement struct {
	Index      int // original index of the emitted item
	BlankLines int // blank lines to render in front of the item
	Adjusted   bool
}

// LineContext is what LeadingBlankLines needs to know about the position of
// an item in the rewritten sequence.
type LineContext struct {
	// First marks the first emitted item; it inherits FirstLines, the
	// blank lines of the item that opened the original sequence.
	First      bool
	FirstLines int
	// StartOfBucket marks the first item of a bucket that follows another
	// bucket.
	StartOfBucket bool
	// Separator is the blank line count moved from a later item of the
	// same bucket, or zero.
	Separator int
	// Remove marks the item whose blank lines were moved to the front of
	// its bucket.
	Remove bool
}

// LeadingBlankLines returns the number of blank lines to render in front of
// item.
func LeadingBlankLines(item Descriptor, ctx LineContext) int {
	switch {
	case ctx.First:
		return ctx.FirstLines
	case ctx.Remove:
		return 0
	case !needsBlankLine(item, ctx.StartOfBucket):
		return item.BlankLines
	case ctx.Separator > 0:
		return ctx.Separator
	default:
		return 1
	}
}

func needsBlankLine(item Descriptor, startOfBucket bool) bool {
	if item.BlankLines > 0 || item.Group == Implicit {
		return false
	}
	return (startOfBucket && !item.Decorated) || item.Group.alwaysSeparated()
}

// Rewrite sorts the descriptors of a single fragment into canonical order
// and decides the blank lines in front of every item. A sequence that is
// already canonical comes back unchanged.
func Rewrite(descs []Descriptor, opts *Options) ([]Placement, error) {
	items, err := sortKeyed(descs, opts)
	if err != nil {
		return nil, err
	}

	placements := make([]Placement, len(items))
	if sameOrder(items, descs) {
		for i, d := range descs {
			placements[i] = Placement{Index: d.Index, BlankLines: d.BlankLines}
		}
		return placements, nil
	}

	current := ImplicitBucket
	removeAt := -1
	for i, item := range items {
		d := item.desc
		p := Placement{Index: d.Index, BlankLines: d.BlankLines}

		ctx := LineContext{First: i == 0, FirstLines: descs[0].BlankLines}
		if item.key.Bucket != ImplicitBucket {
			ctx.StartOfBucket = current != ImplicitBucket && item.key.Bucket != current
			current = item.key.Bucket
			ctx.Remove = i == removeAt

			if !ctx.First && !ctx.Remove && ctx.StartOfBucket && needsBlankLine(d, true) {
				at, lines := scanSeparator(items, i)
				if at >= 0 && !items[at].desc.Group.alwaysSeparated() {
					removeAt = at
				}
				ctx.Separator = lines
			}
		} else if !ctx.First {
			placements[i] = p
			continue
		}

		p.BlankLines = LeadingBlankLines(d, ctx)
		p.Adjusted = p.BlankLines != d.BlankLines
		placements[i] = p
	}

	return placements, nil
}

// scanSeparator looks past items[i] within its bucket for the single item
// that carries plain blank lines. It returns that item's position and blank
// line count, or (-1, 0) when there is none or more than one.
func scanSeparator(items []keyed, i int) (int, int) {
	bucket := items[i].key.Bucket
	at, lines := -1, 0
	for j := i + 1; j < len(items); j++ {
		next := items[j]
		if next.key.Bucket == ImplicitBucket {
			continue
		}
		if next.key.Bucket != bucket {
			break
		}
		if next.desc.BlankLines < 1 || next.desc.Decorated {
			continue
		}
		if at >= 0 {
			return -1, 0
		}
		at, lines = j, next.desc.BlankLines
	}
	return at, lines
}

func sameOrder(items []keyed, descs []Descriptor) bool {
	for i := range items {
		if items[i].desc.Index != descs[i].Index {
			return false
		}
	}
	return true
}

// RewriteFragments rewrites every fragment of a type independently. Each
// fragment keeps the descriptors it already owns.
func RewriteFragments(descs []Descriptor, opts *Options) (map[FragmentID][]Placement, error) {
	byFragment := make(map[FragmentID][]Descriptor)
	var fragments []FragmentID
	for _, d := range descs {
		if _, seen := byFragment[d.Fragment]; !seen {
			fragments = append(fragments, d.Fragment)
		}
		byFragment[d.Fragment] = append(byFragment[d.Fragment], d)
	}
	slices.Sort(fragments)

	out := make(map[FragmentID][]Placement, len(fragments))
	for _, f := range fragments {
		placements, err := Rewrite(byFragment[f], opts)
		if err != nil {
			return nil, err
		}
		out[f] = placements
	}
	return out, nil
}

// Changed reports whether placements reorder or re-space the sequence.
func Changed(placements []Placement) bool {
	for i, p := range placements {
		if p.Adjusted || (i > 0 && p.Index < placements[i-1].Index) {
			return true
		}
	}
	return false
}
