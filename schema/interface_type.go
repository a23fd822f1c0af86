package schema

import (
	"context"
	"fmt"
	"strings"
)

type InterfaceType struct {
	Name        string
	Description string
	Directives  []*Directive
	Fields      map[string]*FieldDefinition

	// ImplementedInterfaces declares the interfaces this interface
	// implements. Transitively implemented interfaces must be declared
	// here too, just as they must on object types.
	ImplementedInterfaces []*InterfaceType

	// ResolveType, if given, is consulted during abstract-type completion
	// to determine which concrete object type a resolved value represents.
	// If nil (or it returns nil), each implementing object type's IsTypeOf
	// is tried instead.
	ResolveType func(value interface{}) *ObjectType

	// If given, this type will only be visible via introspection if the
	// given function returns true. This can for example be used to build
	// APIs that are gated behind feature flags.
	IsVisible func(context.Context) bool
}

func (t *InterfaceType) String() string {
	return t.Name
}

func (t *InterfaceType) IsInputType() bool {
	return false
}

func (t *InterfaceType) IsOutputType() bool {
	return true
}

func (t *InterfaceType) IsSubTypeOf(other Type) bool {
	if t.IsSameType(other) {
		return true
	}
	for _, iface := range t.ImplementedInterfaces {
		if iface.IsSubTypeOf(other) {
			return true
		}
	}
	return false
}

func (t *InterfaceType) IsSameType(other Type) bool {
	return t == Resolve(other)
}

func (t *InterfaceType) TypeName() string {
	return t.Name
}

func (t *InterfaceType) IsTypeVisible(ctx context.Context) bool {
	if t.IsVisible == nil {
		return true
	}
	return t.IsVisible(ctx)
}

// SatisfyInterface reports whether t correctly implements iface: every
// interface field must be present with a covariant type, and every
// interface argument must be present with an identical type.
func (t *InterfaceType) SatisfyInterface(iface *InterfaceType) error {
	return satisfiesInterface(t.Fields, iface)
}

// satisfiesInterface checks a type's fields against an interface it
// claims to implement: every interface field must be present with a
// covariant type, every interface argument must be present with an
// identical type, and any extra arguments must be optional.
func satisfiesInterface(fields map[string]*FieldDefinition, iface *InterfaceType) error {
	for name, ifaceField := range iface.Fields {
		field, ok := fields[name]
		if !ok {
			return fmt.Errorf("missing field named %v", name)
		} else if !field.Type.IsSubTypeOf(ifaceField.Type) {
			return fmt.Errorf("the %v field is not a subtype of the corresponding interface field", name)
		}
		for argName, ifaceArg := range ifaceField.Arguments {
			arg, ok := field.Arguments[argName]
			if !ok {
				return fmt.Errorf("the %v field is missing argument named %v", name, argName)
			} else if !arg.Type.IsSameType(ifaceArg.Type) {
				return fmt.Errorf("the %v field's %v argument is not the same type as the corresponding interface argument", name, argName)
			}
		}
		for argName, arg := range field.Arguments {
			if _, ok := ifaceField.Arguments[argName]; !ok && IsNonNullType(arg.Type) {
				return fmt.Errorf("the %v field's %v argument cannot be non-null", name, argName)
			}
		}
	}
	return nil
}

// missingTransitiveInterface returns an interface that one of declared's
// entries implements but declared itself omits, or nil. Since every
// interface must declare its own transitive interfaces, checking one
// level deep covers the full transitive closure.
func missingTransitiveInterface(declared []*InterfaceType) *InterfaceType {
	declaredSet := map[*InterfaceType]struct{}{}
	for _, iface := range declared {
		declaredSet[iface] = struct{}{}
	}
	for _, iface := range declared {
		for _, transitive := range iface.ImplementedInterfaces {
			if _, ok := declaredSet[transitive]; !ok {
				return transitive
			}
		}
	}
	return nil
}

func (t *InterfaceType) shallowValidate() error {
	if len(t.Fields) == 0 {
		return fmt.Errorf("%v must have at least one field", t.Name)
	}
	for name := range t.Fields {
		if !isName(name) || strings.HasPrefix(name, "__") {
			return fmt.Errorf("illegal field name: %v", name)
		}
	}
	for _, iface := range t.ImplementedInterfaces {
		if iface == t {
			return fmt.Errorf("%v cannot implement itself", t.Name)
		}
		if err := t.SatisfyInterface(iface); err != nil {
			return fmt.Errorf("%v does not satisfy the %v interface: %v", t.Name, iface.Name, err)
		}
	}
	if missing := missingTransitiveInterface(t.ImplementedInterfaces); missing != nil {
		return fmt.Errorf("%v must also declare that it implements %v", t.Name, missing.Name)
	}
	return nil
}
