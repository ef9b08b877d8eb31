package rules

import (
	"testing"

	"github.com/donaldgifford/memberfmt/internal/diag"
)

func TestAllRulesRegistered(t *testing.T) {
	covered := make(map[diag.RuleID]string)
	for _, r := range All() {
		for _, id := range r.Rules() {
			if prev, dup := covered[id]; dup {
				t.Errorf("%s reported by both %s and %s", id, prev, r.Name())
			}
			covered[id] = r.Name()
		}
	}
	for _, id := range diag.AllRules() {
		if _, ok := covered[id]; !ok {
			t.Errorf("no rule reports %s", id)
		}
	}
}
