// Package rules manages registration of the ordering rules.
package rules

import (
	"github.com/donaldgifford/memberfmt/internal/analyzer"
)

var orderRules []analyzer.Rule

// Register adds an ordering rule to the registry. Rules run in the order
// they are registered.
func Register(r analyzer.Rule) {
	orderRules = append(orderRules, r)
}

// All returns all registered rules in execution order.
func All() []analyzer.Rule {
	return orderRules
}
