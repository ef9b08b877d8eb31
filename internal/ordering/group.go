// Package ordering classifies type members into groups, verifies that a
// member sequence follows the configured group order and name order, and
// computes the canonical order used to rewrite out-of-order sequences.
package ordering

import "fmt"

// MemberGroup classifies a declaration for group ordering purposes.
type MemberGroup int

const (
	// Implicit marks a declaration that takes no part in ordering checks
	// (operators, destructors, indexers, primary constructors, ...).
	Implicit MemberGroup = iota
	// Constants is a const field.
	Constants
	// Constructors is an instance constructor.
	Constructors
	// InstanceMethods is a non-static method.
	InstanceMethods
	// InstanceProperties is a non-static property.
	InstanceProperties
	// MutableInstanceFields is a non-static, non-readonly field.
	MutableInstanceFields
	// NestedEnumType is a nested enum declaration.
	NestedEnumType
	// NestedOtherType is a nested class, struct, interface or delegate.
	NestedOtherType
	// NestedRecordType is a nested record declaration.
	NestedRecordType
	// ReadonlyInstanceFields is a non-static readonly field.
	ReadonlyInstanceFields
	// StaticConstructors is a static constructor.
	StaticConstructors
	// StaticMethods is a static method.
	StaticMethods
	// StaticMutableFields is a static, non-readonly field.
	StaticMutableFields
	// StaticProperties is a static property.
	StaticProperties
	// StaticReadonlyFields is a static readonly field.
	StaticReadonlyFields
)

var groupNames = [...]string{
	Implicit:               "Implicit",
	Constants:              "Constants",
	Constructors:           "Constructors",
	InstanceMethods:        "InstanceMethods",
	InstanceProperties:     "InstanceProperties",
	MutableInstanceFields:  "MutableInstanceFields",
	NestedEnumType:         "NestedEnumType",
	NestedOtherType:        "NestedOtherType",
	NestedRecordType:       "NestedRecordType",
	ReadonlyInstanceFields: "ReadonlyInstanceFields",
	StaticConstructors:     "StaticConstructors",
	StaticMethods:          "StaticMethods",
	StaticMutableFields:    "StaticMutableFields",
	StaticProperties:       "StaticProperties",
	StaticReadonlyFields:   "StaticReadonlyFields",
}

// String returns the configuration name of the group.
func (g MemberGroup) String() string {
	if g < 0 || int(g) >= len(groupNames) {
		return fmt.Sprintf("MemberGroup(%d)", int(g))
	}
	return groupNames[g]
}

// ParseMemberGroup returns the group with the given configuration name.
// Implicit is not a valid configuration value.
func ParseMemberGroup(s string) (MemberGroup, error) {
	for g := Constants; g <= StaticReadonlyFields; g++ {
		if groupNames[g] == s {
			return g, nil
		}
	}
	return Implicit, fmt.Errorf("unknown member group %q", s)
}

// OrderedGroups returns every group that takes part in ordering, i.e. all
// groups except Implicit.
func OrderedGroups() []MemberGroup {
	groups := make([]MemberGroup, 0, int(StaticReadonlyFields))
	for g := Constants; g <= StaticReadonlyFields; g++ {
		groups = append(groups, g)
	}
	return groups
}

// IsMethod reports whether names in g are checked against the method
// priority list.
func (g MemberGroup) IsMethod() bool {
	return g == InstanceMethods || g == StaticMethods
}

// IsProperty reports whether names in g are checked against the property
// priority list.
func (g MemberGroup) IsProperty() bool {
	return g == InstanceProperties || g == StaticProperties
}

// alwaysSeparated reports whether members of g are conventionally preceded
// by a blank line even when they do not start a new bucket.
func (g MemberGroup) alwaysSeparated() bool {
	switch g {
	case NestedEnumType, NestedOtherType, NestedRecordType,
		Constructors, StaticConstructors,
		InstanceMethods, StaticMethods:
		return true
	}
	return false
}
