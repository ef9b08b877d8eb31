package ordering

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfiguration is returned when a group order is not a total,
// non-overlapping partition of the ordered member groups.
var ErrInvalidConfiguration = errors.New("invalid group order configuration")

// GroupOrder is a ranked list of buckets. Every ordered member group belongs
// to exactly one bucket. A GroupOrder is immutable once validated.
type GroupOrder struct {
	buckets [][]MemberGroup
	rank    map[MemberGroup]int
}

// DefaultOrder returns the built-in nine bucket order.
func DefaultOrder() GroupOrder {
	order, err := Validate([][]MemberGroup{
		{NestedRecordType},
		{Constants, StaticReadonlyFields},
		{StaticMutableFields, StaticProperties},
		{StaticConstructors},
		{ReadonlyInstanceFields, MutableInstanceFields},
		{Constructors},
		{InstanceProperties},
		{InstanceMethods, StaticMethods},
		{NestedEnumType, NestedOtherType},
	})
	if err != nil {
		panic(err)
	}
	return order
}

// Validate checks that buckets partition the ordered member groups and
// returns the resulting GroupOrder. Duplicate, missing, Implicit or unknown
// values and empty buckets are rejected with ErrInvalidConfiguration.
func Validate(buckets [][]MemberGroup) (GroupOrder, error) {
	if len(buckets) == 0 {
		return GroupOrder{}, fmt.Errorf("%w: no buckets", ErrInvalidConfiguration)
	}

	rank := make(map[MemberGroup]int, int(StaticReadonlyFields))
	copied := make([][]MemberGroup, len(buckets))
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			return GroupOrder{}, fmt.Errorf("%w: bucket %d is empty", ErrInvalidConfiguration, i+1)
		}
		for _, g := range bucket {
			if g <= Implicit || g > StaticReadonlyFields {
				return GroupOrder{}, fmt.Errorf("%w: %s cannot be ordered", ErrInvalidConfiguration, g)
			}
			if prev, dup := rank[g]; dup {
				return GroupOrder{}, fmt.Errorf("%w: %s appears in buckets %d and %d",
					ErrInvalidConfiguration, g, prev+1, i+1)
			}
			rank[g] = i
		}
		copied[i] = append([]MemberGroup(nil), bucket...)
	}

	for _, g := range OrderedGroups() {
		if _, ok := rank[g]; !ok {
			return GroupOrder{}, fmt.Errorf("%w: %s is missing", ErrInvalidConfiguration, g)
		}
	}

	return GroupOrder{buckets: copied, rank: rank}, nil
}

// ParseGroupOrder parses the serialized form "a,b:c:d,e" where ':' separates
// buckets and ',' separates the groups inside a bucket.
func ParseGroupOrder(s string) (GroupOrder, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GroupOrder{}, fmt.Errorf("%w: empty group order", ErrInvalidConfiguration)
	}

	var buckets [][]MemberGroup
	for _, rawBucket := range strings.Split(s, ":") {
		var bucket []MemberGroup
		for _, rawGroup := range strings.Split(rawBucket, ",") {
			g, err := ParseMemberGroup(strings.TrimSpace(rawGroup))
			if err != nil {
				return GroupOrder{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
			}
			bucket = append(bucket, g)
		}
		buckets = append(buckets, bucket)
	}

	return Validate(buckets)
}

// GroupOrderOrDefault parses s and falls back to DefaultOrder when s is
// empty or invalid. The returned error is non-nil only when a non-empty
// value was rejected, so callers may log it.
func GroupOrderOrDefault(s string) (GroupOrder, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultOrder(), nil
	}
	order, err := ParseGroupOrder(s)
	if err != nil {
		return DefaultOrder(), err
	}
	return order, nil
}

// BucketOf returns the bucket index for g. The second result is false for
// Implicit and for a zero GroupOrder.
func (o GroupOrder) BucketOf(g MemberGroup) (int, bool) {
	i, ok := o.rank[g]
	return i, ok
}

// String serializes o in the form accepted by ParseGroupOrder.
func (o GroupOrder) String() string {
	parts := make([]string, len(o.buckets))
	for i, bucket := range o.buckets {
		names := make([]string, len(bucket))
		for j, g := range bucket {
			names[j] = g.String()
		}
		parts[i] = strings.Join(names, ",")
	}
	return strings.Join(parts, ":")
}
