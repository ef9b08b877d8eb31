package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/donaldgifford/memberfmt/internal/diag"
	"github.com/donaldgifford/memberfmt/internal/ordering"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origWd); err != nil {
			t.Fatal(err)
		}
	})
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if diff := cmp.Diff(OrderingConfig{}, cfg.Ordering); diff != "" {
		t.Errorf("Ordering defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"**/bin/**", "**/obj/**"}, cfg.Lint.Exclude); diff != "" {
		t.Errorf("Exclude defaults mismatch (-want +got):\n%s", diff)
	}

	opts := cfg.Options()
	if got, want := opts.Order.String(), ordering.DefaultOrder().String(); got != want {
		t.Errorf("default group order: got %q, want %q", got, want)
	}
	for _, id := range diag.AllRules() {
		sev, enabled := cfg.Level(id)
		if !enabled || sev != diag.SevInfo {
			t.Errorf("Level(%s) = %v, %v; want info, true", id, sev, enabled)
		}
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")

	writeFile(t, path, `ordering:
  method_names_to_order_first: "Dispose, Run"
  names_case_sensitive: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Ordering.MethodNamesToOrderFirst != "Dispose, Run" {
		t.Errorf("MethodNamesToOrderFirst: got %q", cfg.Ordering.MethodNamesToOrderFirst)
	}
	if !cfg.Ordering.NamesCaseSensitive {
		t.Error("NamesCaseSensitive: got false, want true")
	}

	// Unspecified fields retain defaults.
	if cfg.Ordering.TypeMembersGroupOrder != "" {
		t.Errorf("TypeMembersGroupOrder: got %q, want empty (default)", cfg.Ordering.TypeMembersGroupOrder)
	}
	if len(cfg.Lint.Exclude) != 2 {
		t.Errorf("Exclude: got %v, want defaults", cfg.Lint.Exclude)
	}

	opts := cfg.Options()
	if got := opts.Methods.IndexOf("Run"); got != 1 {
		t.Errorf("Methods.IndexOf(Run) = %d, want 1", got)
	}
}

func TestLoadNoConfigReturnsDefaults(t *testing.T) {
	// Use an empty temp dir so no config file is discovered.
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected default config (-want +got):\n%s", diff)
	}
}

func TestDiscoverPriority(t *testing.T) {
	dir := t.TempDir()

	// Create every candidate; memberfmt.yml (first in order) should win.
	for _, name := range configFileNames {
		writeFile(t, filepath.Join(dir, name), "")
	}

	for i, name := range configFileNames {
		got := Discover(dir)
		want := filepath.Join(dir, name)
		if got != want {
			t.Errorf("step %d: Discover = %q, want %q", i, got, want)
		}
		// Remove the winner so the next name in order is found.
		if err := os.Remove(want); err != nil {
			t.Fatal(err)
		}
	}

	if got := Discover(dir); got != "" {
		t.Errorf("after removing all files: Discover = %q, want empty", got)
	}
}

func TestDiscoverNoFiles(t *testing.T) {
	dir := t.TempDir()
	got := Discover(dir)
	if got != "" {
		t.Errorf("Discover in empty dir: got %q, want empty string", got)
	}
}

func TestDiscoverUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "App")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "memberfmt.toml"), "")

	want := filepath.Join(root, "memberfmt.toml")
	if got := DiscoverUp(nested); got != want {
		t.Errorf("DiscoverUp = %q, want %q", got, want)
	}

	// A repository boundary below the config file hides it.
	if err := os.Mkdir(filepath.Join(root, "src", ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if got := DiscoverUp(nested); got != "" {
		t.Errorf("DiscoverUp across .git = %q, want empty", got)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "memberfmt.yml", "ordering:\n  names_case_sensitve: true\n"},
		{"toml", "memberfmt.toml", "[ordering]\nnames_case_sensitve = true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "names_case_sensitve") {
				t.Errorf("error %q does not name the unknown key", err)
			}
		})
	}
}

func TestLoadDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".memberfmt.yaml"), `ordering:
  property_names_to_order_first: Id
`)
	chdir(t, dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Ordering.PropertyNamesToOrderFirst != "Id" {
		t.Errorf("PropertyNamesToOrderFirst: got %q, want Id", cfg.Ordering.PropertyNamesToOrderFirst)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memberfmt.toml")

	writeFile(t, path, `[ordering]
type_members_group_order = "NestedRecordType:Constants,StaticReadonlyFields"
priority_names_case_sensitive = true

[lint]
exclude = ["generated/**"]

[lint.rules]
RBCS0006 = "off"
rbcs0002 = "error"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.Ordering.PriorityNamesCaseSensitive {
		t.Error("PriorityNamesCaseSensitive: got false, want true")
	}
	if diff := cmp.Diff([]string{"generated/**"}, cfg.Lint.Exclude); diff != "" {
		t.Errorf("Exclude mismatch (-want +got):\n%s", diff)
	}
	if _, enabled := cfg.Level(diag.RuleParameterOrder); enabled {
		t.Error("RBCS0006 should be disabled")
	}
	if sev, enabled := cfg.Level(diag.RuleMemberNameOrder); !enabled || sev != diag.SevError {
		t.Errorf("RBCS0002 = %v, %v; want error, true", sev, enabled)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	writeFile(t, path, "{{{{not valid yaml")

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	writeFile(t, path, "[ordering\nnames_case_sensitive = ")

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid TOML, got nil")
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	if err == nil {
		t.Error("expected error for missing explicit path, got nil")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yml")
	writeFile(t, path, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	// Empty file should result in all defaults.
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected default config for empty file (-want +got):\n%s", diff)
	}
}

func TestLoadLintSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lint.yml")

	writeFile(t, path, `lint:
  rules:
    RBCS0001: warning
    RBCS0004: off
  exclude:
    - "vendor/**"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Lint.Rules["RBCS0001"] != "warning" {
		t.Errorf("Lint.Rules: got %v, want RBCS0001=warning", cfg.Lint.Rules)
	}
	if sev, enabled := cfg.Level(diag.RuleGroupOrder); !enabled || sev != diag.SevWarning {
		t.Errorf("RBCS0001 = %v, %v; want warning, true", sev, enabled)
	}
	if _, enabled := cfg.Level(diag.RuleEnumOrder); enabled {
		t.Error("RBCS0004 should be disabled")
	}
	if diff := cmp.Diff([]string{"vendor/**"}, cfg.Lint.Exclude); diff != "" {
		t.Errorf("Lint.Exclude mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownRules(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown rule",
			yaml: "lint:\n  rules:\n    RBCS9999: error\n",
			want: "RBCS9999",
		},
		{
			name: "unknown level",
			yaml: "lint:\n  rules:\n    RBCS0002: loud\n",
			want: "loud",
		},
		{
			name: "bad exclude pattern",
			yaml: "lint:\n  exclude: [\"[\"]\n",
			want: "lint.exclude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "memberfmt.yml")
			writeFile(t, path, tt.yaml)

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestOptionsInvalidGroupOrderFallsBack(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = orig })

	cfg := DefaultConfig()
	cfg.Ordering.TypeMembersGroupOrder = "Constants:Constants"

	opts := cfg.Options()
	if got, want := opts.Order.String(), ordering.DefaultOrder().String(); got != want {
		t.Errorf("group order: got %q, want default %q", got, want)
	}
	if !strings.Contains(buf.String(), "using default group order") {
		t.Errorf("expected warning to be logged, got %q", buf.String())
	}
}

func TestExcluded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lint.Exclude = append(cfg.Lint.Exclude, "generated/*.cs", "**/*.Designer.cs")

	tests := []struct {
		path string
		want bool
	}{
		{"src/App/bin/Debug/App.cs", true},
		{"obj/Foo.cs", true},
		{"./src/obj/x/y.cs", true},
		{"generated/Model.cs", true},
		{"generated/sub/Model.cs", false},
		{"src/Forms/Main.Designer.cs", true},
		{"src/App/Program.cs", false},
		{"src/binary/Program.cs", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := cfg.Excluded(tt.path); got != tt.want {
				t.Errorf("Excluded(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
