//go:build cgo

package parser

import (
	"context"
	"fmt"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/donaldgifford/memberfmt/internal/ordering"
)

// Parse parses a C# source file. Sources with syntax errors are rejected
// with ErrSyntax so that no rewrite is ever based on a partial tree.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	p := sitter.NewParser()
	p.SetLanguage(csharp.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	root := tree.RootNode()

	w := &walker{
		file: &File{Path: path, Src: src, CRLF: isCRLF(src)},
		ix:   newLineIndex(src),
		src:  src,
	}

	if root.HasError() {
		at := w.span(firstError(root))
		return nil, fmt.Errorf("%w: %s:%d:%d", ErrSyntax, path, at.Line, at.Column)
	}

	w.container(root, "")
	w.initializers(root)
	if w.err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, w.err)
	}

	numberFragments(w.file)
	return w.file, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.HasError() || c.IsMissing() {
			return firstError(c)
		}
	}
	return n
}

func numberFragments(f *File) {
	seen := make(map[string]int)
	for _, t := range f.Types {
		t.Fragment = ordering.FragmentID(seen[t.QualifiedName])
		seen[t.QualifiedName]++
	}
}

type walker struct {
	file *File
	ix   *lineIndex
	src  []byte
	err  error
}

// offset converts a tree-sitter byte offset, remembering the first failure.
func (w *walker) offset(b uint32) int {
	off, err := safecast.Conv[int](b)
	if err != nil && w.err == nil {
		w.err = err
	}
	return off
}

func (w *walker) span(n *sitter.Node) Span {
	return w.ix.span(w.offset(n.StartByte()), w.offset(n.EndByte()))
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(w.src)
}

var typeKinds = map[string]TypeKind{
	"class_declaration":         KindClass,
	"struct_declaration":        KindStruct,
	"interface_declaration":     KindInterface,
	"record_declaration":        KindRecord,
	"record_struct_declaration": KindRecord,
}

func isTypeDecl(nodeType string) bool {
	_, ok := typeKinds[nodeType]
	return ok || nodeType == "enum_declaration" || nodeType == "delegate_declaration"
}

// container walks namespaces and top-level type declarations.
func (w *walker) container(n *sitter.Node, scope string) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "namespace_declaration":
			name := qualify(scope, w.text(c.ChildByFieldName("name")))
			if body := c.ChildByFieldName("body"); body != nil {
				w.container(body, name)
			}
		case "file_scoped_namespace_declaration":
			// Older grammars place the namespace members after this node,
			// newer ones inside it.
			scope = qualify(scope, w.text(c.ChildByFieldName("name")))
			w.container(c, scope)
		case "declaration_list":
			w.container(c, scope)
		default:
			if isTypeDecl(c.Type()) {
				w.typeDecl(c, scope)
			}
		}
	}
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

// typeDecl records a type declaration and returns it as a member of its
// enclosing type.
func (w *walker) typeDecl(n *sitter.Node, scope string) ordering.Declaration {
	name := w.text(n.ChildByFieldName("name"))
	qualified := qualify(scope, name+arity(n))

	switch n.Type() {
	case "enum_declaration":
		w.enum(n, qualified)
		return ordering.NestedType{Name: name, Kind: ordering.TypeEnum}
	case "delegate_declaration":
		return ordering.NestedType{Name: name}
	}

	kind := typeKinds[n.Type()]
	if params := childOfType(n, "parameter_list"); params != nil {
		listKind := ListParameters
		if kind == KindRecord {
			listKind = ListRecordParameters
		}
		w.parameters(params, listKind, qualified)
	}

	nested := ordering.NestedType{Name: name}
	if kind == KindRecord {
		nested.Kind = ordering.TypeRecord
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		body = childOfType(n, "declaration_list")
	}
	if body == nil {
		return nested
	}

	t := &TypeDecl{
		Name:          name,
		QualifiedName: qualified,
		Kind:          kind,
		Partial:       modifiers(n, w.src)["partial"],
		Span:          w.span(n),
		Open:          w.offset(body.StartByte()),
		Close:         w.offset(body.EndByte()) - 1,
	}
	w.file.Types = append(w.file.Types, t)

	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		decl := w.member(c, qualified)
		if decl == nil {
			continue
		}
		t.Members = append(t.Members, &Member{
			Decl: decl,
			Name: ordering.DisplayName(decl),
			Span: w.span(c),
		})
	}
	layoutBody(w.ix, t)

	return nested
}

// arity returns the generic arity suffix of a type declaration, so that
// Box and Box<T> stay distinct types.
func arity(n *sitter.Node) string {
	params := childOfType(n, "type_parameter_list")
	if params == nil {
		return ""
	}
	count := 0
	for i := 0; i < int(params.NamedChildCount()); i++ {
		if params.NamedChild(i).Type() == "type_parameter" {
			count++
		}
	}
	return fmt.Sprintf("`%d", count)
}

// member maps a body declaration to its ordering declaration. Comments,
// preprocessor lines and anything unknown yield nil.
func (w *walker) member(n *sitter.Node, owner string) ordering.Declaration {
	mods := modifiers(n, w.src)
	switch n.Type() {
	case "field_declaration":
		return ordering.Field{
			Name:     w.fieldName(n),
			Const:    mods["const"],
			Static:   mods["static"],
			ReadOnly: mods["readonly"],
		}
	case "method_declaration":
		name := w.text(n.ChildByFieldName("name"))
		w.memberParameters(n, qualify(owner, name))
		return ordering.Method{Name: name, Static: mods["static"]}
	case "constructor_declaration":
		w.memberParameters(n, owner)
		return ordering.Constructor{Static: mods["static"]}
	case "property_declaration":
		return ordering.Property{Name: w.text(n.ChildByFieldName("name")), Static: mods["static"]}
	case "event_field_declaration", "event_declaration":
		return ordering.Unnamed{Kind: "event"}
	case "destructor_declaration":
		return ordering.Unnamed{Kind: "destructor"}
	case "operator_declaration":
		return ordering.Unnamed{Kind: "operator"}
	case "conversion_operator_declaration":
		return ordering.Unnamed{Kind: "conversion operator"}
	case "indexer_declaration":
		return ordering.Unnamed{Kind: "indexer"}
	}
	if isTypeDecl(n.Type()) {
		return w.typeDecl(n, owner)
	}
	return nil
}

// fieldName returns the name of the first declarator of a field.
func (w *walker) fieldName(n *sitter.Node) string {
	decl := childOfType(n, "variable_declaration")
	if decl == nil {
		return ""
	}
	v := childOfType(decl, "variable_declarator")
	if v == nil {
		return ""
	}
	if name := v.ChildByFieldName("name"); name != nil {
		return w.text(name)
	}
	return w.text(childOfType(v, "identifier"))
}

func childOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == nodeType {
			return c
		}
	}
	return nil
}

var modifierKeywords = map[string]bool{
	"const": true, "static": true, "readonly": true, "partial": true,
}

// modifiers returns the declaration modifiers of n.
func modifiers(n *sitter.Node, src []byte) map[string]bool {
	mods := make(map[string]bool)
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch {
		case c.Type() == "modifier":
			mods[strings.TrimSpace(c.Content(src))] = true
		case !c.IsNamed() && modifierKeywords[c.Type()]:
			mods[c.Type()] = true
		}
	}
	return mods
}

// enum records the member list of an enum declaration.
func (w *walker) enum(n *sitter.Node, owner string) {
	body := n.ChildByFieldName("body")
	if body == nil {
		body = childOfType(n, "enum_member_declaration_list")
	}
	if body == nil {
		return
	}
	w.list(body, ListEnum, owner, func(c *sitter.Node) (string, bool) {
		if c.Type() != "enum_member_declaration" {
			return "", false
		}
		if name := c.ChildByFieldName("name"); name != nil {
			return w.text(name), true
		}
		return w.text(childOfType(c, "identifier")), true
	})
}

func (w *walker) memberParameters(n *sitter.Node, owner string) {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		params = childOfType(n, "parameter_list")
	}
	if params != nil {
		w.parameters(params, ListParameters, owner)
	}
}

// parameters records a parameter list. Lists with a receiver, a params
// array or optional parameters are left alone: their order is fixed by the
// language.
func (w *walker) parameters(n *sitter.Node, kind ListKind, owner string) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "parameter" && w.positional(c) {
			return
		}
	}
	w.list(n, kind, owner, func(c *sitter.Node) (string, bool) {
		if c.Type() != "parameter" {
			return "", false
		}
		return w.text(c.ChildByFieldName("name")), true
	})
}

// positional reports whether a parameter must keep its position.
func (w *walker) positional(param *sitter.Node) bool {
	from := param.StartByte()
	for i := 0; i < int(param.NamedChildCount()); i++ {
		if c := param.NamedChild(i); c.Type() == "attribute_list" {
			from = c.EndByte()
		}
	}
	rest := strings.TrimSpace(string(w.src[w.offset(from):w.offset(param.EndByte())]))
	return strings.HasPrefix(rest, "this ") ||
		strings.HasPrefix(rest, "params ") ||
		strings.Contains(rest, "=")
}

// initializers records every object initializer in the tree.
func (w *walker) initializers(n *sitter.Node) {
	if n.Type() == "initializer_expression" {
		if p := n.Parent(); p != nil &&
			(p.Type() == "object_creation_expression" || p.Type() == "implicit_object_creation_expression") {
			owner := w.text(p.ChildByFieldName("type"))
			if owner == "" {
				owner = "new()"
			}
			w.list(n, ListInitializer, owner, func(c *sitter.Node) (string, bool) {
				if c.Type() != "assignment_expression" {
					return "", true
				}
				left := c.ChildByFieldName("left")
				if left == nil || left.Type() != "identifier" {
					return "", true
				}
				return w.text(left), true
			})
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.initializers(n.NamedChild(i))
	}
}

// list records the elements of a list node. element reports the name of a
// named child and whether the child is an element at all; an element with
// an empty name takes no part in name ordering. Lists with fewer than two
// named elements are not recorded.
func (w *walker) list(n *sitter.Node, kind ListKind, owner string, element func(*sitter.Node) (string, bool)) {
	l := &List{Kind: kind, Owner: owner, Span: w.span(n)}
	var tokens []token
	named := 0
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		tok := token{kind: c.Type(), start: w.offset(c.StartByte()), end: w.offset(c.EndByte())}
		if c.IsNamed() && c.Type() != "comment" {
			if name, ok := element(c); ok {
				tok.kind = "element"
				l.Elements = append(l.Elements, &Element{Name: name, Named: name != "", Span: w.span(c)})
				if name != "" {
					named++
				}
			}
		}
		tokens = append(tokens, tok)
	}
	if named < 2 {
		return
	}
	layoutList(w.ix, l, tokens)
	w.file.Lists = append(w.file.Lists, l)
}
