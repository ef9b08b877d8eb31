package ordering

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// describeAll describes decls as one fragment in sequence order.
func describeAll(decls ...Declaration) []Descriptor {
	out := make([]Descriptor, len(decls))
	for i, d := range decls {
		out[i] = Describe(d, 0, i)
	}
	return out
}

func namesOf(descs []Descriptor) []string {
	out := make([]string, len(descs))
	for i, d := range descs {
		out[i] = d.Name
	}
	return out
}

func TestCompareKeys(t *testing.T) {
	insensitive := NameComparer{}
	sensitive := NameComparer{CaseSensitive: true}

	tests := []struct {
		name  string
		a, b  OrderKey
		names NameComparer
		want  int
	}{
		{
			name: "bucket first",
			a:    OrderKey{Bucket: 1, Priority: Alphabetize, Name: "A"},
			b:    OrderKey{Bucket: 0, Priority: Alphabetize, Name: "Z"},
			want: 1,
		},
		{
			name: "implicit before buckets",
			a:    OrderKey{Bucket: ImplicitBucket, Index: 9},
			b:    OrderKey{Bucket: 0, Priority: Alphabetize, Name: "A", Index: 0},
			want: -1,
		},
		{
			name: "implicit by index only",
			a:    OrderKey{Bucket: ImplicitBucket, Name: "A", Index: 3},
			b:    OrderKey{Bucket: ImplicitBucket, Name: "Z", Index: 1},
			want: 1,
		},
		{
			name: "priority before alphabetized",
			a:    OrderKey{Priority: Alphabetize, Name: "A"},
			b:    OrderKey{Priority: 2, Name: "Z"},
			want: 1,
		},
		{
			name: "smaller priority first",
			a:    OrderKey{Priority: 0, Name: "Z"},
			b:    OrderKey{Priority: 1, Name: "A"},
			want: -1,
		},
		{
			name: "name ignores case",
			a:    OrderKey{Priority: Alphabetize, Name: "apple"},
			b:    OrderKey{Priority: Alphabetize, Name: "Banana"},
			want: -1,
		},
		{
			name:  "name ordinal when case sensitive",
			a:     OrderKey{Priority: Alphabetize, Name: "apple"},
			b:     OrderKey{Priority: Alphabetize, Name: "Banana"},
			names: sensitive,
			want:  1,
		},
		{
			name: "underscore after letters",
			a:    OrderKey{Priority: Alphabetize, Name: "_cache"},
			b:    OrderKey{Priority: Alphabetize, Name: "Zeta"},
			want: 1,
		},
		{
			name: "index breaks ties",
			a:    OrderKey{Priority: Alphabetize, Name: "Same", Index: 4},
			b:    OrderKey{Priority: Alphabetize, Name: "same", Index: 2},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := tt.names
			if names == (NameComparer{}) {
				names = insensitive
			}
			if got := CompareKeys(tt.a, tt.b, names); got != tt.want {
				t.Errorf("CompareKeys = %d, want %d", got, tt.want)
			}
			if got := CompareKeys(tt.b, tt.a, names); got != -tt.want {
				t.Errorf("reversed CompareKeys = %d, want %d", got, -tt.want)
			}
		})
	}
}

func TestSort(t *testing.T) {
	descs := describeAll(
		Method{Name: "Run"},
		Unnamed{Kind: "operator"},
		Field{Name: "b"},
		Property{Name: "Name"},
		Field{Name: "a"},
		Constructor{},
		Field{Name: "LIMIT", Const: true},
	)

	got, err := sortDescriptors(descs, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"operator", "LIMIT", "a", "b", ".ctor", "Name", "Run"}
	if diff := cmp.Diff(want, namesOf(got)); diff != "" {
		t.Errorf("Sort mismatch (-want +got):\n%s", diff)
	}

	// Sorting is idempotent and leaves the input alone.
	again, err := sortDescriptors(got, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("second Sort changed order (-first +second):\n%s", diff)
	}
	if descs[0].Name != "Run" {
		t.Error("Sort modified its input")
	}
}

func TestSortStable(t *testing.T) {
	descs := describeAll(
		Method{Name: "Load"},
		Method{Name: "load"},
		Method{Name: "Load"},
	)
	got, err := sortDescriptors(descs, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for i, d := range got {
		if d.Index != i {
			t.Errorf("position %d holds index %d", i, d.Index)
		}
	}
}

func TestSortPriorityNames(t *testing.T) {
	opts, err := NewOptions(Settings{
		MethodNamesToOrderFirst:   "Dispose, Close",
		PropertyNamesToOrderFirst: "Id",
	})
	if err != nil {
		t.Fatal(err)
	}

	descs := describeAll(
		Property{Name: "Alpha"},
		Property{Name: "Id"},
		Method{Name: "Apply"},
		Method{Name: "Close"},
		Method{Name: "Dispose"},
	)
	got, err := sortDescriptors(descs, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Id", "Alpha", "Dispose", "Close", "Apply"}
	if diff := cmp.Diff(want, namesOf(got)); diff != "" {
		t.Errorf("Sort mismatch (-want +got):\n%s", diff)
	}
}

func TestKeyOfClassificationGap(t *testing.T) {
	_, err := KeyOf(Describe(Field{Name: "x"}, 0, 0), &Options{})
	if !errors.Is(err, ErrClassificationGap) {
		t.Errorf("got %v, want ErrClassificationGap", err)
	}

	key, err := KeyOf(Describe(Unnamed{Kind: "operator"}, 0, 5), &Options{})
	if err != nil {
		t.Fatalf("implicit member: %v", err)
	}
	if key.Bucket != ImplicitBucket || key.Index != 5 {
		t.Errorf("implicit key: got %+v", key)
	}
}

func TestPriorityList(t *testing.T) {
	list := ParsePriorityList(" Dispose ,, close,", NameComparer{})
	if got := list.IndexOf("dispose"); got != 0 {
		t.Errorf("IndexOf(dispose) = %d, want 0", got)
	}
	if got := list.IndexOf("CLOSE"); got != 1 {
		t.Errorf("IndexOf(CLOSE) = %d, want 1", got)
	}
	if list.Contains("Open") {
		t.Error("Contains(Open) = true")
	}

	if list.Contains("") {
		t.Error("empty entries were kept")
	}

	strict := ParsePriorityList("Id", NameComparer{CaseSensitive: true})
	if strict.Contains("ID") {
		t.Error("case-sensitive list matched ID")
	}
	if got := (PriorityList{}).IndexOf("x"); got != Alphabetize {
		t.Errorf("empty list IndexOf = %d", got)
	}
}

func TestNameComparerIgnoreCase(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"alpha", "ALPHA", 0},
		{"alpha", "Beta", -1},
		{"_x", "a", 1},    // '_' sorts after letters once they are upper-cased
		{"Id", "ID2", -1}, // prefix first
		{"Straße", "STRASSE", 1},
		{"éclair", "ÉCLAIR", 0},
	}

	for _, tt := range tests {
		if got := (NameComparer{}).Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := (NameComparer{}).Compare(tt.b, tt.a); got != -tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
		}
	}
}

func TestNewOptionsInvalidGroupOrder(t *testing.T) {
	opts, err := NewOptions(Settings{GroupOrder: "Constants:Bogus"})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("got %v, want ErrInvalidConfiguration", err)
	}
	if opts.Order.String() != DefaultOrder().String() {
		t.Errorf("order: got %s, want default", opts.Order)
	}
	if opts.Settings.GroupOrder != "Constants:Bogus" {
		t.Errorf("settings not retained: %+v", opts.Settings)
	}
}
