package ordering

import "slices"

// Item is one element of a flat list: an enum member, an object initializer
// assignment or a parameter. Unnamed items are not checked and keep their
// relative order at the front of the list when sorted.
type Item struct {
	Name  string
	Named bool
	Index int
}

// SequenceOptions configures a flat list pass.
type SequenceOptions struct {
	Priority PriorityList
	Names    NameComparer
}

// EnumSequence returns the options for enum members: alphabetical only.
func (o *Options) EnumSequence() SequenceOptions {
	return SequenceOptions{Names: o.Names}
}

// InitializerSequence returns the options for object initializer
// assignments: the property priority list, then alphabetical.
func (o *Options) InitializerSequence() SequenceOptions {
	return SequenceOptions{Priority: o.Properties, Names: o.Names}
}

// ParameterSequence returns the options for parameter lists: alphabetical,
// case-insensitive, without a priority list.
func ParameterSequence() SequenceOptions {
	return SequenceOptions{}
}

// VerifySequence checks a flat list with the same name rules the fragment
// verifier applies inside a single bucket.
func VerifySequence(items []Item, opts SequenceOptions) []Violation {
	var (
		state      nameState
		violations []Violation
	)
	for _, item := range items {
		if !item.Named {
			continue
		}
		if state.check(item.Name, opts.Priority.Contains(item.Name), opts.Names) {
			violations = append(violations, Violation{
				Kind: NameOrderViolation, Index: item.Index, Name: item.Name,
			})
		}
	}
	return violations
}

// SortSequence returns the Index values of items in canonical order.
func SortSequence(items []Item, opts SequenceOptions) []int {
	keys := make([]OrderKey, len(items))
	for i, item := range items {
		key := OrderKey{Bucket: ImplicitBucket, Priority: Alphabetize, Index: item.Index}
		if item.Named {
			key.Bucket = 0
			key.Name = item.Name
			key.Priority = opts.Priority.IndexOf(item.Name)
		}
		keys[i] = key
	}
	slices.SortStableFunc(keys, func(a, b OrderKey) int {
		return CompareKeys(a, b, opts.Names)
	})

	order := make([]int, len(keys))
	for i, key := range keys {
		order[i] = key.Index
	}
	return order
}

// IsIdentity reports whether order lists 0..n-1 in ascending order.
func IsIdentity(order []int) bool {
	for i, idx := range order {
		if i != idx {
			return false
		}
	}
	return true
}
