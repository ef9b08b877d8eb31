// Package config defines the configuration types and defaults for memberfmt.
package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/donaldgifford/memberfmt/internal/diag"
	"github.com/donaldgifford/memberfmt/internal/ordering"
)

// Config is the top-level configuration.
type Config struct {
	Ordering OrderingConfig `yaml:"ordering" toml:"ordering"`
	Lint     LintConfig     `yaml:"lint"     toml:"lint"`
}

// OrderingConfig holds the member ordering settings. Empty strings select
// the built-in defaults.
type OrderingConfig struct {
	TypeMembersGroupOrder      string `yaml:"type_members_group_order"      toml:"type_members_group_order"`
	MethodNamesToOrderFirst    string `yaml:"method_names_to_order_first"   toml:"method_names_to_order_first"`
	PropertyNamesToOrderFirst  string `yaml:"property_names_to_order_first" toml:"property_names_to_order_first"`
	PriorityNamesCaseSensitive bool   `yaml:"priority_names_case_sensitive" toml:"priority_names_case_sensitive"`
	NamesCaseSensitive         bool   `yaml:"names_case_sensitive"          toml:"names_case_sensitive"`
}

// LintConfig holds per-rule levels and the paths skipped when walking
// directories.
type LintConfig struct {
	Rules   map[string]string `yaml:"rules"   toml:"rules"`
	Exclude []string          `yaml:"exclude" toml:"exclude"`
}

// DefaultConfig returns a Config with every rule at its default level and
// the build output directories excluded.
func DefaultConfig() *Config {
	return &Config{
		Lint: LintConfig{
			Exclude: []string{"**/bin/**", "**/obj/**"},
		},
	}
}

// Validate reports unknown rule identifiers and levels in the lint section.
// An invalid group order is not an error here; Options falls back to the
// default order for it.
func (c *Config) Validate() error {
	var errs []error
	for id, level := range c.Lint.Rules {
		if _, err := diag.ParseRuleID(id); err != nil {
			errs = append(errs, fmt.Errorf("lint.rules: %w", err))
			continue
		}
		if _, _, err := diag.ParseLevel(level); err != nil {
			errs = append(errs, fmt.Errorf("lint.rules.%s: %w", id, err))
		}
	}
	for _, pattern := range c.Lint.Exclude {
		if _, err := path.Match(strings.ReplaceAll(pattern, "**", "*"), ""); err != nil {
			errs = append(errs, fmt.Errorf("lint.exclude %q: %w", pattern, err))
		}
	}
	return errors.Join(errs...)
}

// Settings converts the ordering section to its serializable form.
func (c *Config) Settings() ordering.Settings {
	o := c.Ordering
	return ordering.Settings{
		GroupOrder:                 o.TypeMembersGroupOrder,
		MethodNamesToOrderFirst:    o.MethodNamesToOrderFirst,
		PropertyNamesToOrderFirst:  o.PropertyNamesToOrderFirst,
		PriorityNamesCaseSensitive: o.PriorityNamesCaseSensitive,
		NamesCaseSensitive:         o.NamesCaseSensitive,
	}
}

// Options builds the ordering options. A rejected group order is logged
// and replaced by the default order.
func (c *Config) Options() *ordering.Options {
	opts, err := ordering.NewOptions(c.Settings())
	if err != nil {
		log.Warn().Err(err).
			Str("type_members_group_order", c.Ordering.TypeMembersGroupOrder).
			Msg("using default group order")
	}
	return opts
}

// Level implements analyzer.Policy. Rules missing from the lint section
// report at info severity.
func (c *Config) Level(id diag.RuleID) (diag.Severity, bool) {
	for key, level := range c.Lint.Rules {
		if !strings.EqualFold(strings.TrimSpace(key), string(id)) {
			continue
		}
		sev, enabled, err := diag.ParseLevel(level)
		if err != nil {
			return diag.SevInfo, true
		}
		return sev, enabled
	}
	return diag.SevInfo, true
}

// Excluded reports whether a slash-separated or OS path matches one of the
// lint.exclude patterns. "**" matches any number of path segments.
func (c *Config) Excluded(p string) bool {
	segs := splitPath(filepath.ToSlash(p))
	for _, pattern := range c.Lint.Exclude {
		if matchSegments(splitPath(pattern), segs) {
			return true
		}
	}
	return false
}

func splitPath(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" && s != "." {
			out = append(out, s)
		}
	}
	return out
}

func matchSegments(pattern, segs []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(segs); i++ {
				if matchSegments(rest, segs[i:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], segs[0]); err != nil || !ok {
			return false
		}
		pattern, segs = pattern[1:], segs[1:]
	}
	return len(segs) == 0
}
