package parser

import "errors"

// ErrSyntax is returned for sources the C# grammar cannot parse.
var ErrSyntax = errors.New("syntax error")

// ErrNoCGO is returned by Parse in builds without cgo, where the
// tree-sitter grammar is unavailable.
var ErrNoCGO = errors.New("C# parsing requires a cgo-enabled build")

// IsSource reports whether path names a C# source file.
func IsSource(path string) bool {
	return len(path) > 3 && path[len(path)-3:] == ".cs"
}
