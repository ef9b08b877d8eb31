package ordering

import (
	"cmp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Alphabetize is the priority index of a name that is not in a priority
// list and is therefore ordered alphabetically.
const Alphabetize = -1

// Settings is the raw, serializable form of the ordering configuration.
// Diagnostics carry it so a fix can rebuild the exact Options that produced
// them.
type Settings struct {
	GroupOrder                 string `msgpack:"group_order"`
	MethodNamesToOrderFirst    string `msgpack:"method_names_to_order_first"`
	PropertyNamesToOrderFirst  string `msgpack:"property_names_to_order_first"`
	PriorityNamesCaseSensitive bool   `msgpack:"priority_names_case_sensitive"`
	NamesCaseSensitive         bool   `msgpack:"names_case_sensitive"`
}

// Options is the immutable configuration of one or more ordering passes.
// It is safe to share across goroutines.
type Options struct {
	Order      GroupOrder
	Methods    PriorityList
	Properties PriorityList
	Names      NameComparer
	Settings   Settings
}

// NewOptions builds Options from raw settings. An invalid group order is
// replaced by DefaultOrder; the rejection is returned alongside the usable
// Options so the caller can report it.
func NewOptions(s Settings) (*Options, error) {
	order, err := GroupOrderOrDefault(s.GroupOrder)
	priorityNames := NameComparer{CaseSensitive: s.PriorityNamesCaseSensitive}
	return &Options{
		Order:      order,
		Methods:    ParsePriorityList(s.MethodNamesToOrderFirst, priorityNames),
		Properties: ParsePriorityList(s.PropertyNamesToOrderFirst, priorityNames),
		Names:      NameComparer{CaseSensitive: s.NamesCaseSensitive},
		Settings:   s,
	}, err
}

// DefaultOptions returns Options for the zero Settings.
func DefaultOptions() *Options {
	opts, _ := NewOptions(Settings{})
	return opts
}

// PriorityFor returns the priority list consulted for members of g.
func (o *Options) PriorityFor(g MemberGroup) PriorityList {
	switch {
	case g.IsMethod():
		return o.Methods
	case g.IsProperty():
		return o.Properties
	}
	return PriorityList{}
}

// PriorityList is an ordered set of names that sort before alphabetized
// names within their bucket.
type PriorityList struct {
	names []string
	cmp   NameComparer
}

// ParsePriorityList splits a comma-separated list, trimming blanks and
// dropping empty entries.
func ParsePriorityList(raw string, comparer NameComparer) PriorityList {
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return PriorityList{names: names, cmp: comparer}
}

// IndexOf returns the position of name in the list, or Alphabetize.
func (p PriorityList) IndexOf(name string) int {
	for i, candidate := range p.names {
		if p.cmp.Compare(candidate, name) == 0 {
			return i
		}
	}
	return Alphabetize
}

// Contains reports whether name is in the list.
func (p PriorityList) Contains(name string) bool {
	return p.IndexOf(name) != Alphabetize
}

// NameComparer compares member names ordinally. Unless CaseSensitive is
// set, each rune is upper-cased first with its simple case mapping, so '_'
// sorts after letters and no rune expands into several ("ß" stays "ß").
type NameComparer struct {
	CaseSensitive bool
}

// Compare returns -1, 0 or +1.
func (c NameComparer) Compare(a, b string) int {
	if c.CaseSensitive {
		return strings.Compare(a, b)
	}
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if r := cmp.Compare(unicode.ToUpper(ra), unicode.ToUpper(rb)); r != 0 {
			return r
		}
		a, b = a[na:], b[nb:]
	}
	return cmp.Compare(len(a), len(b))
}
