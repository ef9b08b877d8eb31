package diag

import (
	"fmt"
	"strings"
)

// GroupOrderMessage reports a member placed after a group that should
// follow it.
func GroupOrderMessage(name, group string) string {
	return fmt.Sprintf("Member '%s' (%s) should be declared before the members preceding it", name, group)
}

// NameOrderMessage reports a member out of alphabetical order in its group.
func NameOrderMessage(name string) string {
	return fmt.Sprintf("Member '%s' is not in alphabetical order within its group", name)
}

// InitializerMessage reports the names of an object initializer that are
// out of order.
func InitializerMessage(names []string) string {
	return fmt.Sprintf("Object initializer assignments are out of order: %s", strings.Join(names, ", "))
}

// EnumMessage reports an enum member out of alphabetical order.
func EnumMessage(name string) string {
	return fmt.Sprintf("Enum member '%s' is not in alphabetical order", name)
}

// RecordMessage reports a record member or positional parameter out of
// order.
func RecordMessage(name string) string {
	return fmt.Sprintf("Record member '%s' is not in order", name)
}

// ParameterMessage reports a parameter out of alphabetical order.
func ParameterMessage(name, owner string) string {
	return fmt.Sprintf("Parameter '%s' of '%s' is not in alphabetical order", name, owner)
}
