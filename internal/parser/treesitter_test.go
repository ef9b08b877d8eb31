//go:build cgo

package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/donaldgifford/memberfmt/internal/ordering"
)

func mustParse(t *testing.T, src string) *File {
	t.Helper()
	f, err := Parse(context.Background(), "test.cs", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return f
}

func TestParseMembers(t *testing.T) {
	src := `namespace Shop
{
    public class Cart
    {
        private const int Max = 10;
        private static readonly object Gate = new object();
        private static int created;
        private readonly string id;
        private int count;

        static Cart() { }

        public Cart() { }

        public static Cart Empty { get; } = new Cart();

        public int Count => count;

        public static Cart Create() => new Cart();

        public void Add() { }

        public static Cart operator +(Cart a, Cart b) => a;

        public enum Kind { None }

        public record Line(string Sku);

        public class Nested { }
    }
}
`
	f := mustParse(t, src)
	// Cart and Nested have bodies; the record is declared without one.
	if len(f.Types) != 2 {
		t.Fatalf("types: got %d, want 2", len(f.Types))
	}

	cart := f.Types[0]
	if cart.QualifiedName != "Shop.Cart" || cart.Kind != KindClass {
		t.Errorf("type: got %s %s", cart.Kind, cart.QualifiedName)
	}
	if cart.Unfixable != "" {
		t.Errorf("Unfixable: %s", cart.Unfixable)
	}

	var got []ordering.Declaration
	for _, m := range cart.Members {
		got = append(got, m.Decl)
	}
	want := []ordering.Declaration{
		ordering.Field{Name: "Max", Const: true},
		ordering.Field{Name: "Gate", Static: true, ReadOnly: true},
		ordering.Field{Name: "created", Static: true},
		ordering.Field{Name: "id", ReadOnly: true},
		ordering.Field{Name: "count"},
		ordering.Constructor{Static: true},
		ordering.Constructor{},
		ordering.Property{Name: "Empty", Static: true},
		ordering.Property{Name: "Count"},
		ordering.Method{Name: "Create", Static: true},
		ordering.Method{Name: "Add"},
		ordering.Unnamed{Kind: "operator"},
		ordering.NestedType{Name: "Kind", Kind: ordering.TypeEnum},
		ordering.NestedType{Name: "Line", Kind: ordering.TypeRecord},
		ordering.NestedType{Name: "Nested"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}

	if got := cart.Members[6].Leading.BlankLines; got != 1 {
		t.Errorf("constructor blank lines: got %d, want 1", got)
	}
	if got := cart.Members[0].Span.Line; got != 5 {
		t.Errorf("first member line: got %d, want 5", got)
	}
}

func TestParseFileScopedNamespaceAndPartials(t *testing.T) {
	src := `namespace Shop.Models;

public partial class Order
{
    public int B { get; set; }
}

public partial class Order
{
    public int A { get; set; }
}
`
	f := mustParse(t, src)
	fragments := f.Fragments("Shop.Models.Order")
	if len(fragments) != 2 {
		t.Fatalf("fragments: got %d, want 2", len(fragments))
	}
	for i, frag := range fragments {
		if !frag.Partial {
			t.Errorf("fragment %d: Partial false", i)
		}
		if frag.Fragment != ordering.FragmentID(i) {
			t.Errorf("fragment %d: id %d", i, frag.Fragment)
		}
	}
}

func TestParseLists(t *testing.T) {
	src := `class Paint
{
    enum Color
    {
        Red,
        Blue,
    }

    void Mix(int weight, Color color) { }

    void Skip(this Paint paint, int b, int a = 1) { }

    Paint Make() => new Paint { Name = "x", Id = 1 };

    record Swatch(string Name, int Code);
}
`
	f := mustParse(t, src)

	type row struct {
		Kind  ListKind
		Owner string
		Names []string
	}
	var got []row
	for _, l := range f.Lists {
		r := row{Kind: l.Kind, Owner: l.Owner}
		for _, e := range l.Elements {
			r.Names = append(r.Names, e.Name)
		}
		got = append(got, r)
	}
	want := []row{
		{ListEnum, "Paint.Color", []string{"Red", "Blue"}},
		{ListParameters, "Paint.Mix", []string{"weight", "color"}},
		{ListRecordParameters, "Paint.Swatch", []string{"Name", "Code"}},
		{ListInitializer, "Paint", []string{"Name", "Id"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lists mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), "bad.cs", []byte("class C { int a = ; "))
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("got %v, want ErrSyntax", err)
	}
}

func TestParseCRLF(t *testing.T) {
	f := mustParse(t, "class C\r\n{\r\n    int a;\r\n}\r\n")
	if !f.CRLF || f.Newline() != "\r\n" {
		t.Error("CRLF not detected")
	}
}
