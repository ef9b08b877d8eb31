package rules

import (
	"github.com/donaldgifford/memberfmt/internal/rules/order"
)

func init() {
	// Type bodies first so that their diagnostics lead each file.
	Register(&order.TypeMembers{})
	Register(&order.Enums{})
	Register(&order.Initializers{})
	Register(&order.Parameters{})
}
