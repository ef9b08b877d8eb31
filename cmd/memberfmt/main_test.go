package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestExecuteVersion(t *testing.T) {
	var out bytes.Buffer
	code := executeWithOutput(t, &out, "--version")
	if code != 0 {
		t.Errorf("exit code: got %d, want 0", code)
	}
	if !strings.HasPrefix(out.String(), "memberfmt dev ") {
		t.Errorf("version output: got %q", out.String())
	}
}

func TestExecuteRejectsConflictingModes(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"check and diff", []string{"--check", "--diff"}},
		{"check and write", []string{"--check", "-w", "Foo.cs"}},
		{"diff and write", []string{"--diff", "--write", "Foo.cs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if code := executeWithOutput(t, &out, tt.args...); code != 2 {
				t.Errorf("exit code: got %d, want 2", code)
			}
			if !strings.Contains(out.String(), "memberfmt: ") {
				t.Errorf("missing error message: %q", out.String())
			}
		})
	}
}

func TestExecuteWriteNeedsArguments(t *testing.T) {
	var out bytes.Buffer
	if code := executeWithOutput(t, &out, "--write"); code != 2 {
		t.Errorf("exit code: got %d, want 2", code)
	}
	if !strings.Contains(out.String(), "--write needs file or directory arguments") {
		t.Errorf("output: got %q", out.String())
	}
}

func TestExecuteListRules(t *testing.T) {
	var out bytes.Buffer
	if code := executeWithOutput(t, &out, "--list-rules", "--no-color"); code != 0 {
		t.Errorf("exit code: got %d, want 0", code)
	}
	for _, id := range []string{"RBCS0001", "RBCS0003", "RBCS0006"} {
		if !strings.Contains(out.String(), id+"  ") {
			t.Errorf("listing is missing %s:\n%s", id, out.String())
		}
	}
}

func TestExecuteUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	if code := executeWithOutput(t, &out, "--bogus"); code != 2 {
		t.Errorf("exit code: got %d, want 2", code)
	}
}

// executeWithOutput runs execute with stdout and stderr written to out.
func executeWithOutput(t *testing.T, out *bytes.Buffer, args ...string) int {
	t.Helper()
	return execute(context.Background(), args, strings.NewReader(""), out, out)
}
