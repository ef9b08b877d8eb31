// Package parser reads C# sources into the declaration model used by the
// ordering rules: type bodies with their members and the flat lists (enum
// members, object initializers, parameters) whose element order is checked.
package parser

import "github.com/donaldgifford/memberfmt/internal/ordering"

// Span locates a syntax element. Start and End are byte offsets into the
// source; Line and Column are 1-based and describe Start.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

// Contains reports whether off lies inside the span.
func (s Span) Contains(off int) bool {
	return off >= s.Start && off < s.End
}

// File is a parsed source file.
type File struct {
	Path  string
	Src   []byte
	CRLF  bool // the file uses "\r\n" line endings
	Types []*TypeDecl
	Lists []*List
}

// Newline returns the line ending used by the file.
func (f *File) Newline() string {
	if f.CRLF {
		return "\r\n"
	}
	return "\n"
}

// Fragments returns every body of the named type in source order.
func (f *File) Fragments(qualifiedName string) []*TypeDecl {
	var out []*TypeDecl
	for _, t := range f.Types {
		if t.QualifiedName == qualifiedName {
			out = append(out, t)
		}
	}
	return out
}

// ListsOf returns the lists of the given kind in source order.
func (f *File) ListsOf(kind ListKind) []*List {
	var out []*List
	for _, l := range f.Lists {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

// TypeKind is the kind of a type declaration with a member body.
type TypeKind int

const (
	// KindClass is a class declaration.
	KindClass TypeKind = iota
	// KindStruct is a struct declaration.
	KindStruct
	// KindInterface is an interface declaration.
	KindInterface
	// KindRecord is a record class or record struct.
	KindRecord
)

func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindRecord:
		return "record"
	}
	return "unknown"
}

// TypeDecl is one body of a class, struct, interface or record. A partial
// type declared several times in a file yields one TypeDecl per body, all
// sharing QualifiedName and numbered by Fragment.
type TypeDecl struct {
	Name          string
	QualifiedName string
	Kind          TypeKind
	Partial       bool
	Fragment      ordering.FragmentID
	Span          Span
	Open          int // offset of '{'
	Close         int // offset of '}'
	Members       []*Member

	// Unfixable explains why the body cannot be rewritten, e.g. because
	// two members share a line. Empty when the body can be rewritten.
	Unfixable string
}

// Member is one declaration in a type body.
type Member struct {
	Decl    ordering.Declaration
	Name    string
	Span    Span
	Leading Trivia

	// ChunkStart and ChunkEnd delimit the whole lines that move with the
	// member when the body is reordered: its leading trivia, the
	// declaration and the rest of its last line.
	ChunkStart int
	ChunkEnd   int

	// Fixed is the length of the lines right before ChunkStart that stay
	// in place, up to and including the last #region or #endregion line
	// in front of the member. Region counts those lines from the opening
	// brace; members with different counts sit in different regions.
	Fixed  int
	Region int
}

// Trivia describes the lines between the previous member (or the opening
// brace) and a member.
type Trivia struct {
	// BlankLines counts the whitespace-only lines before the first
	// comment line or the member itself.
	BlankLines int
	// Decorated is set when a comment or other non-blank line precedes
	// the member.
	Decorated bool
	// Directive is set when a preprocessor line precedes the member.
	Directive bool
	// TextStart is the offset right after the leading blank lines.
	TextStart int
}

// ListKind identifies what a flat list holds.
type ListKind int

const (
	// ListEnum holds the members of an enum declaration.
	ListEnum ListKind = iota
	// ListInitializer holds the assignments of an object initializer.
	ListInitializer
	// ListParameters holds the parameters of a method, constructor or
	// primary constructor.
	ListParameters
	// ListRecordParameters holds the positional parameters of a record.
	ListRecordParameters
)

func (k ListKind) String() string {
	switch k {
	case ListEnum:
		return "enum"
	case ListInitializer:
		return "initializer"
	case ListParameters:
		return "parameters"
	case ListRecordParameters:
		return "record parameters"
	}
	return "unknown"
}

// List is a comma-separated sequence whose elements are checked for name
// order.
type List struct {
	Kind     ListKind
	Owner    string // qualified name of the enum, type or method
	Span     Span
	Elements []*Element

	// Unfixable explains why the elements cannot be reordered.
	Unfixable string
}

// Items returns the elements as ordering items.
func (l *List) Items() []ordering.Item {
	items := make([]ordering.Item, len(l.Elements))
	for i, e := range l.Elements {
		items[i] = ordering.Item{Name: e.Name, Named: e.Named, Index: i}
	}
	return items
}

// Element is one entry of a List.
type Element struct {
	Name  string
	Named bool
	Span  Span

	// ChunkStart and ChunkEnd delimit the text that moves with the
	// element: comments on the lines above it and the element itself.
	// Separators stay in place.
	ChunkStart int
	ChunkEnd   int

	// TrailStart and TrailEnd delimit the comment that ends the element's
	// line, starting after its separator. CanTrail is set when nothing
	// else follows on that line; without a comment both bounds sit where
	// one would go.
	TrailStart int
	TrailEnd   int
	CanTrail   bool
}

// Trail returns the bounds of the trailing comment of e. Both are ChunkEnd
// when the line of e continues after it.
func (e *Element) Trail() (start, end int) {
	if !e.CanTrail {
		return e.ChunkEnd, e.ChunkEnd
	}
	return e.TrailStart, e.TrailEnd
}

// HasTrail reports whether a comment ends the line of e.
func (e *Element) HasTrail() bool {
	return e.CanTrail && e.TrailEnd > e.TrailStart
}
