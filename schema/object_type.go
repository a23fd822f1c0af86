package schema

import (
	"fmt"
	"strings"
)

type ObjectType struct {
	Name                  string
	Description           string
	ImplementedInterfaces []*InterfaceType
	Directives            []*Directive
	Fields                map[string]*FieldDefinition

	// IsTypeOf is invoked during abstract-type completion (when a field's
	// declared type is an interface or union) whenever resolveType on the
	// owning interface/union didn't already settle the concrete type. It
	// should report whether result represents a value of this object type.
	IsTypeOf func(result interface{}) bool
}

func (d *ObjectType) String() string {
	return d.Name
}

func (d *ObjectType) IsInputType() bool {
	return false
}

func (d *ObjectType) IsOutputType() bool {
	return true
}

func (d *ObjectType) IsSubTypeOf(other Type) bool {
	other = Resolve(other)
	if d.IsSameType(other) {
		return true
	} else if union, ok := other.(*UnionType); ok {
		for _, member := range union.MemberTypes {
			if d.IsSameType(member) {
				return true
			}
		}
	} else {
		for _, iface := range d.ImplementedInterfaces {
			if iface.IsSameType(other) {
				return true
			}
		}
	}
	return false
}

func (d *ObjectType) IsSameType(other Type) bool {
	return d == Resolve(other)
}

func (d *ObjectType) TypeName() string {
	return d.Name
}

// SatisfyInterface reports whether d correctly implements iface: every
// interface field must be present with a covariant type, and every
// interface argument must be present with an identical type.
func (d *ObjectType) SatisfyInterface(iface *InterfaceType) error {
	return satisfiesInterface(d.Fields, iface)
}

func (d *ObjectType) shallowValidate() error {
	if len(d.Fields) == 0 {
		return fmt.Errorf("%v must have at least one field", d.Name)
	}
	for name, field := range d.Fields {
		if !isName(name) || strings.HasPrefix(name, "__") {
			return fmt.Errorf("illegal field name: %v", name)
		} else if !field.Type.IsOutputType() {
			return fmt.Errorf("%v field must be an output type", name)
		}
	}
	for _, iface := range d.ImplementedInterfaces {
		if err := d.SatisfyInterface(iface); err != nil {
			return fmt.Errorf("%v does not satisfy the %v interface: %w", d.Name, iface.Name, err)
		}
	}
	if missing := missingTransitiveInterface(d.ImplementedInterfaces); missing != nil {
		return fmt.Errorf("%v must also declare that it implements %v", d.Name, missing.Name)
	}
	return nil
}
