package runner

import (
	"github.com/donaldgifford/memberfmt/internal/config"
	"github.com/donaldgifford/memberfmt/internal/diag"
)

// ListRules prints every rule with the level the configuration gives it.
func ListRules(opts *Options) int {
	opts.defaults()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		writeErr(opts.Stderr, "memberfmt: %v\n", err)
		return ExitError
	}

	out := newPrinter(opts.Stdout, opts.NoColor)
	for _, id := range diag.AllRules() {
		sev, enabled := cfg.Level(id)
		out.ruleLevel(id, sev, enabled)
	}
	return ExitOK
}
