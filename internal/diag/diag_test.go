package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/donaldgifford/memberfmt/internal/ordering"
)

func TestParseRuleID(t *testing.T) {
	for _, id := range AllRules() {
		got, err := ParseRuleID(string(id))
		if err != nil || got != id {
			t.Errorf("ParseRuleID(%s) = %s, %v", id, got, err)
		}
		if id.Title() == "" {
			t.Errorf("%s has no title", id)
		}
	}

	if got, err := ParseRuleID(" rbcs0004 "); err != nil || got != RuleEnumOrder {
		t.Errorf("lower case: got %s, %v", got, err)
	}
	if _, err := ParseRuleID("RBCS0010"); err == nil {
		t.Error("RBCS0010: expected error")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in          string
		wantSev     Severity
		wantEnabled bool
		wantErr     bool
	}{
		{"off", SevInfo, false, false},
		{"info", SevInfo, true, false},
		{"Warning", SevWarning, true, false},
		{"warn", SevWarning, true, false},
		{" error ", SevError, true, false},
		{"fatal", SevInfo, false, true},
	}

	for _, tt := range tests {
		sev, enabled, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if sev != tt.wantSev || enabled != tt.wantEnabled {
			t.Errorf("ParseLevel(%q) = %s, %v; want %s, %v", tt.in, sev, enabled, tt.wantSev, tt.wantEnabled)
		}
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Rule:     RuleInitializerOrder,
		Severity: SevWarning,
		Message:  InitializerMessage([]string{"Alpha", "Bravo"}),
		Path:     "src/Widget.cs",
		Span:     Span{Start: 120, End: 180, Line: 7, Column: 13},
	}
	want := "src/Widget.cs:7:13: warning RBCS0003: Object initializer assignments are out of order: Alpha, Bravo"
	if got := d.String(); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	var b Bag
	b.Add(
		Diagnostic{Rule: RuleMemberNameOrder, Path: "b.cs", Span: Span{Start: 10}},
		Diagnostic{Rule: RuleMemberNameOrder, Path: "a.cs", Span: Span{Start: 30}},
		Diagnostic{Rule: RuleGroupOrder, Path: "a.cs", Span: Span{Start: 30}, Severity: SevError},
		Diagnostic{Rule: RuleEnumOrder, Path: "a.cs", Span: Span{Start: 5}},
		Diagnostic{Rule: RuleMemberNameOrder, Path: "b.cs", Span: Span{Start: 10}},
	)
	b.Sort()
	b.Dedup()

	type row struct {
		Path  string
		Start int
		Rule  RuleID
	}
	var got []row
	for _, d := range b.Items() {
		got = append(got, row{d.Path, d.Span.Start, d.Rule})
	}
	want := []row{
		{"a.cs", 5, RuleEnumOrder},
		{"a.cs", 30, RuleGroupOrder},
		{"a.cs", 30, RuleMemberNameOrder},
		{"b.cs", 10, RuleMemberNameOrder},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bag mismatch (-want +got):\n%s", diff)
	}

	if !b.HasAtLeast(SevError) {
		t.Error("HasAtLeast(SevError) = false")
	}
	if b.Len() != 4 {
		t.Errorf("Len = %d", b.Len())
	}
}

func TestSettingsPayload(t *testing.T) {
	in := ordering.Settings{
		GroupOrder:                 "Constants",
		MethodNamesToOrderFirst:    "Dispose",
		PropertyNamesToOrderFirst:  "Id,Name",
		PriorityNamesCaseSensitive: true,
	}
	payload, err := EncodeSettings(in)
	if err != nil {
		t.Fatal(err)
	}
	d := Diagnostic{Payload: payload}

	out, err := DecodeSettings(d.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	// The stored group order is invalid, so the rebuilt options use the
	// default order and keep the priority lists.
	opts, err := d.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Order.String() != ordering.DefaultOrder().String() {
		t.Errorf("order: got %s", opts.Order)
	}
	if opts.Properties.IndexOf("Name") != 1 {
		t.Error("property priority list lost")
	}
}

func TestDecodeSettingsEmptyAndCorrupt(t *testing.T) {
	s, err := DecodeSettings(nil)
	if err != nil || s != (ordering.Settings{}) {
		t.Errorf("empty payload: got %+v, %v", s, err)
	}
	if _, err := DecodeSettings([]byte{0xc1}); err == nil {
		t.Error("corrupt payload: expected error")
	}
}
