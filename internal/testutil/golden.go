// Package testutil provides golden file helpers for the ordering rules.
//
// A golden case is a directory holding input.cs and expected.cs. The fix
// under test must turn input.cs into expected.cs and leave expected.cs
// untouched.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Update regenerates expected.cs files from current output.
// Usage: go test ./... -update
var Update = flag.Bool("update", false, "update golden files")

const (
	inputFile    = "input.cs"
	expectedFile = "expected.cs"
)

// FixFunc rewrites C# source. Diagnostics it could not resolve are
// returned as remaining so a case can fail on them.
type FixFunc func(src []byte) (out []byte, remaining []string, err error)

// RunGolden runs the golden case in dir.
func RunGolden(t *testing.T, dir string, fix FixFunc) {
	t.Helper()

	input := readFile(t, filepath.Join(dir, inputFile))
	got := apply(t, fix, input, inputFile)

	expectedPath := filepath.Join(dir, expectedFile)
	if *Update {
		if err := os.WriteFile(expectedPath, got, 0o644); err != nil {
			t.Fatalf("updating %s: %v", expectedPath, err)
		}
		t.Logf("updated golden file: %s", expectedPath)
		return
	}

	expected := readFile(t, expectedPath)
	if diff := cmp.Diff(lines(expected), lines(got)); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", dir, diff)
		return
	}

	// Ordered source is a fixed point.
	again := apply(t, fix, expected, expectedFile)
	if diff := cmp.Diff(lines(expected), lines(again)); diff != "" {
		t.Errorf("%s: fixing %s changed it (-want +got):\n%s", dir, expectedFile, diff)
	}
}

// RunGoldenDir runs every case directory under testdataDir as a subtest.
func RunGoldenDir(t *testing.T, testdataDir string, fix FixFunc) {
	t.Helper()

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("reading testdata dir %s: %v", testdataDir, err)
	}

	var ran int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ran++
		t.Run(entry.Name(), func(t *testing.T) {
			RunGolden(t, filepath.Join(testdataDir, entry.Name()), fix)
		})
	}
	if ran == 0 {
		t.Fatalf("no golden cases in %s", testdataDir)
	}
}

func apply(t *testing.T, fix FixFunc, src []byte, name string) []byte {
	t.Helper()
	out, remaining, err := fix(src)
	if err != nil {
		t.Fatalf("fixing %s: %v", name, err)
	}
	for _, r := range remaining {
		t.Errorf("%s: remaining after fix: %s", name, r)
	}
	return out
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

// lines splits src for line-oriented diffs, keeping line endings visible.
func lines(src []byte) []string {
	return strings.SplitAfter(string(src), "\n")
}
