package ordering

// Declaration is the host's view of one member declaration. It is a closed
// union over Field, Method, Constructor, Property, NestedType and Unnamed.
type Declaration interface {
	declaration()
}

// Field is a field declaration.
type Field struct {
	Name     string
	Const    bool
	Static   bool
	ReadOnly bool
}

// Method is an ordinary named method.
type Method struct {
	Name   string
	Static bool
}

// Constructor is an instance or static constructor. Primary marks a
// parameter list attached to the type header, which is not a member of the
// ordered sequence.
type Constructor struct {
	Static  bool
	Primary bool
}

// Property is a named property.
type Property struct {
	Name   string
	Static bool
}

// TypeKind distinguishes nested type declarations.
type TypeKind int

const (
	// TypeOther covers classes, structs, interfaces and delegates.
	TypeOther TypeKind = iota
	// TypeEnum is an enum declaration.
	TypeEnum
	// TypeRecord is a record class or record struct.
	TypeRecord
)

// NestedType is a type declared inside another type.
type NestedType struct {
	Name string
	Kind TypeKind
}

// Unnamed is a declaration that cannot be referenced by name: operators,
// conversion operators, destructors, indexers and events.
type Unnamed struct {
	Kind string
}

func (Field) declaration()       {}
func (Method) declaration()      {}
func (Constructor) declaration() {}
func (Property) declaration()    {}
func (NestedType) declaration()  {}
func (Unnamed) declaration()     {}

// Classify maps a declaration to its member group. It is total: anything
// that does not take part in ordering maps to Implicit.
func Classify(d Declaration) MemberGroup {
	switch d := d.(type) {
	case Field:
		switch {
		case d.Const:
			return Constants
		case d.Static && d.ReadOnly:
			return StaticReadonlyFields
		case d.Static:
			return StaticMutableFields
		case d.ReadOnly:
			return ReadonlyInstanceFields
		default:
			return MutableInstanceFields
		}
	case Method:
		if d.Static {
			return StaticMethods
		}
		return InstanceMethods
	case Constructor:
		switch {
		case d.Primary:
			return Implicit
		case d.Static:
			return StaticConstructors
		default:
			return Constructors
		}
	case Property:
		if d.Static {
			return StaticProperties
		}
		return InstanceProperties
	case NestedType:
		switch d.Kind {
		case TypeRecord:
			return NestedRecordType
		case TypeEnum:
			return NestedEnumType
		default:
			return NestedOtherType
		}
	}
	return Implicit
}

// CanBeNamed reports whether the declaration can be referenced by name and
// therefore takes part in name ordering. Constructors are ordered by group
// but never by name.
func CanBeNamed(d Declaration) bool {
	switch d := d.(type) {
	case Field:
		return d.Name != ""
	case Method:
		return d.Name != ""
	case Property:
		return d.Name != ""
	case NestedType:
		return d.Name != ""
	}
	return false
}

// DisplayName returns the name reported in diagnostics.
func DisplayName(d Declaration) string {
	switch d := d.(type) {
	case Field:
		return d.Name
	case Method:
		return d.Name
	case Property:
		return d.Name
	case NestedType:
		return d.Name
	case Constructor:
		if d.Static {
			return ".cctor"
		}
		return ".ctor"
	case Unnamed:
		return d.Kind
	}
	return ""
}
