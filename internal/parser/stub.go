//go:build !cgo

package parser

import "context"

// Parse always fails with ErrNoCGO in builds without cgo.
func Parse(_ context.Context, _ string, _ []byte) (*File, error) {
	return nil, ErrNoCGO
}
