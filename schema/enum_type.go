package schema

import (
	"fmt"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/internal/suggest"
)

type EnumType struct {
	Name        string
	Description string
	Directives  []*Directive
	Values      map[string]*EnumValueDefinition
}

type EnumValueDefinition struct {
	Description string
	Directives  []*Directive

	// Value is the payload resolvers see when this value is provided as
	// an input, and must return for this value to appear in a result.
	// When nil, the value's name is used.
	Value interface{}

	// DeprecationReason, if non-empty, marks this value deprecated for
	// introspection.
	DeprecationReason string
}

func (t *EnumType) String() string {
	return t.Name
}

func (t *EnumType) IsInputType() bool {
	return true
}

func (t *EnumType) IsOutputType() bool {
	return true
}

func (t *EnumType) IsSubTypeOf(other Type) bool {
	return t.IsSameType(other)
}

func (t *EnumType) IsSameType(other Type) bool {
	return t == Resolve(other)
}

func (t *EnumType) TypeName() string {
	return t.Name
}

// CoerceVariableValue coerces a decoded JSON variable value (expected to be
// a string naming one of the enum's values) into that value's payload.
func (t *EnumType) CoerceVariableValue(v interface{}) (interface{}, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%v is not a valid %v value", v, t.Name)
	}
	def, ok := t.Values[s]
	if !ok {
		return nil, fmt.Errorf("%v is not a valid %v value%v", s, t.Name, t.suggestion(s))
	}
	return t.payload(s, def), nil
}

// CoerceLiteral coerces an enum value literal into the matching value's
// payload.
func (t *EnumType) CoerceLiteral(from ast.Value) (interface{}, error) {
	ev, ok := from.(*ast.EnumValue)
	if !ok {
		return nil, fmt.Errorf("expected %v value", t.Name)
	}
	def, ok := t.Values[ev.Value]
	if !ok {
		return nil, fmt.Errorf("%v is not a valid %v value%v", ev.Value, t.Name, t.suggestion(ev.Value))
	}
	return t.payload(ev.Value, def), nil
}

// CoerceResult coerces a resolver's return value (a value's payload, or
// its name for values without a payload) into the enum's string
// representation, for inclusion in a response.
func (t *EnumType) CoerceResult(v interface{}) (interface{}, error) {
	for name, def := range t.Values {
		if t.payload(name, def) == v {
			return name, nil
		}
	}
	return nil, fmt.Errorf("%v is not a valid %v value", v, t.Name)
}

func (t *EnumType) payload(name string, def *EnumValueDefinition) interface{} {
	if def.Value != nil {
		return def.Value
	}
	return name
}

func (t *EnumType) suggestion(input string) string {
	names := make([]string, 0, len(t.Values))
	for name := range t.Values {
		names = append(names, name)
	}
	if s := suggest.QuotedList(suggest.List(input, names)); s != "" {
		return " " + s
	}
	return ""
}

func (d *EnumType) shallowValidate() error {
	if len(d.Values) == 0 {
		return fmt.Errorf("%v must have at least one value", d.Name)
	}
	for name := range d.Values {
		if !isName(name) || name == "true" || name == "false" || name == "null" {
			return fmt.Errorf("illegal enum value: %v", name)
		}
	}
	return nil
}

func IsEnumType(t Type) bool {
	_, ok := Resolve(t).(*EnumType)
	return ok
}
