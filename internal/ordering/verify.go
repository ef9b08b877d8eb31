package ordering

import (
	"errors"
	"fmt"
)

// ErrClassificationGap reports a classified member whose group has no
// bucket in the group order. It means the classifier and the group order
// disagree and is never caused by user input.
var ErrClassificationGap = errors.New("member group has no bucket in the group order")

func classificationGap(d Descriptor) error {
	return fmt.Errorf("%w: %s %q at index %d", ErrClassificationGap, d.Group, d.Name, d.Index)
}

// ViolationKind distinguishes wrong-group placement from wrong name order.
type ViolationKind int

const (
	// GroupOrderViolation marks a member whose bucket was already completed
	// earlier in the same fragment.
	GroupOrderViolation ViolationKind = iota + 1
	// NameOrderViolation marks a member out of alphabetical or priority
	// order within its bucket.
	NameOrderViolation
)

func (k ViolationKind) String() string {
	switch k {
	case GroupOrderViolation:
		return "group-order"
	case NameOrderViolation:
		return "name-order"
	}
	return "unknown"
}

// Violation is one ordering problem found by a verifier.
type Violation struct {
	Kind     ViolationKind
	Index    int
	Name     string
	Fragment FragmentID
}

// fragmentState is the verifier state of one fragment.
type fragmentState struct {
	current   int
	completed map[int]bool
	names     nameState
}

// nameState tracks alphabetical ordering inside the current bucket.
type nameState struct {
	alphabetizing bool
	previous      string
	hasPrevious   bool
}

// check reports whether name breaks the order of the current bucket and
// otherwise records it. priority reports whether name is a priority name.
func (s *nameState) check(name string, priority bool, names NameComparer) bool {
	if priority && !s.alphabetizing {
		return false
	}
	if priority || (s.alphabetizing && s.hasPrevious && names.Compare(s.previous, name) > 0) {
		return true
	}
	s.alphabetizing = true
	s.previous = name
	s.hasPrevious = true
	return false
}

// restart resets the state for a bucket entered by name. Unnamed members
// open the bucket without seeding the previous name.
func (s *nameState) restart(name string, named, priority bool) {
	s.alphabetizing = !priority
	s.previous = name
	s.hasPrevious = named
}

// Verify walks descs in sequence order and reports ordering violations.
// Each fragment is tracked independently: a fragment restarts at the first
// bucket, and only buckets completed within the same fragment produce group
// order violations. Implicit descriptors are skipped.
func Verify(descs []Descriptor, opts *Options) ([]Violation, error) {
	states := make(map[FragmentID]*fragmentState)
	var violations []Violation

	for _, d := range descs {
		if d.Group == Implicit {
			continue
		}
		bucket, ok := opts.Order.BucketOf(d.Group)
		if !ok {
			return violations, classificationGap(d)
		}

		state := states[d.Fragment]
		if state == nil {
			state = &fragmentState{completed: make(map[int]bool)}
			states[d.Fragment] = state
		}

		if state.completed[bucket] {
			violations = append(violations, Violation{
				Kind: GroupOrderViolation, Index: d.Index, Name: d.Name, Fragment: d.Fragment,
			})
			continue
		}

		priority := d.Named && opts.PriorityFor(d.Group).Contains(d.Name)

		if bucket == state.current {
			if !d.Named {
				continue
			}
			if state.names.check(d.Name, priority, opts.Names) {
				violations = append(violations, Violation{
					Kind: NameOrderViolation, Index: d.Index, Name: d.Name, Fragment: d.Fragment,
				})
			}
			continue
		}

		state.names.restart(d.Name, d.Named, priority)
		for state.current < bucket {
			state.completed[state.current] = true
			state.current++
		}
	}

	return violations, nil
}
