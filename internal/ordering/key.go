package ordering

import (
	"cmp"
	"slices"
)

// FragmentID identifies one physical body of a (possibly partial) type.
type FragmentID int

// Descriptor is one item of an ordering pass. Descriptors are built fresh
// for every pass and owned by it.
type Descriptor struct {
	Group      MemberGroup
	Name       string
	Named      bool
	Fragment   FragmentID
	Index      int // position in the original sequence
	BlankLines int // blank lines in the leading trivia
	Decorated  bool
}

// Describe builds the descriptor for a declaration at position index.
func Describe(d Declaration, fragment FragmentID, index int) Descriptor {
	return Descriptor{
		Group:    Classify(d),
		Name:     DisplayName(d),
		Named:    CanBeNamed(d),
		Fragment: fragment,
		Index:    index,
	}
}

// ImplicitBucket is the bucket index of items that are not reordered.
const ImplicitBucket = -1

// OrderKey is the canonical sort key shared by every ordering rule.
type OrderKey struct {
	Bucket   int
	Priority int
	Name     string
	Index    int
}

// CompareKeys orders keys by bucket, then priority (listed names first, in
// list order), then name, then original index. Implicit keys compare by
// original index only.
func CompareKeys(a, b OrderKey, names NameComparer) int {
	if c := cmp.Compare(a.Bucket, b.Bucket); c != 0 {
		return c
	}
	if a.Bucket == ImplicitBucket {
		return cmp.Compare(a.Index, b.Index)
	}
	if a.Priority != b.Priority {
		switch {
		case b.Priority == Alphabetize:
			return -1
		case a.Priority == Alphabetize:
			return 1
		default:
			return cmp.Compare(a.Priority, b.Priority)
		}
	}
	if c := names.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// KeyOf computes the order key for d under opts.
func KeyOf(d Descriptor, opts *Options) (OrderKey, error) {
	if d.Group == Implicit {
		return OrderKey{Bucket: ImplicitBucket, Priority: Alphabetize, Index: d.Index}, nil
	}
	bucket, ok := opts.Order.BucketOf(d.Group)
	if !ok {
		return OrderKey{}, classificationGap(d)
	}
	key := OrderKey{Bucket: bucket, Priority: Alphabetize, Index: d.Index}
	if d.Named {
		key.Name = d.Name
		key.Priority = opts.PriorityFor(d.Group).IndexOf(d.Name)
	}
	return key, nil
}

// keyed pairs a descriptor with its key.
type keyed struct {
	desc Descriptor
	key  OrderKey
}

// sortKeyed computes keys for descs and returns them in canonical order.
func sortKeyed(descs []Descriptor, opts *Options) ([]keyed, error) {
	items := make([]keyed, len(descs))
	for i, d := range descs {
		key, err := KeyOf(d, opts)
		if err != nil {
			return nil, err
		}
		items[i] = keyed{desc: d, key: key}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		return CompareKeys(a.key, b.key, opts.Names)
	})
	return items, nil
}

// sortDescriptors returns descs in canonical order. The input is not
// modified.
func sortDescriptors(descs []Descriptor, opts *Options) ([]Descriptor, error) {
	items, err := sortKeyed(descs, opts)
	if err != nil {
		return nil, err
	}
	out := make([]Descriptor, len(items))
	for i, item := range items {
		out[i] = item.desc
	}
	return out, nil
}
