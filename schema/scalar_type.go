package schema

import (
	"fmt"

	"github.com/brinkql/brink/ast"
)

type ScalarType struct {
	Name        string
	Description string
	Directives  []*Directive

	// LiteralCoercion coerces an AST literal into the scalar's Go
	// representation. It should return nil if coercion is impossible.
	LiteralCoercion func(ast.Value) interface{}

	// VariableValueCoercion coerces a decoded JSON variable value (or a
	// host-supplied Go value) into the scalar's Go representation. It
	// should return nil if coercion is impossible.
	VariableValueCoercion func(interface{}) interface{}

	// ResultCoercion coerces a resolver's return value into a
	// JSON-serializable representation for the response. It should return
	// nil if coercion is impossible.
	ResultCoercion func(interface{}) interface{}
}

func (t *ScalarType) String() string {
	return t.Name
}

func (t *ScalarType) IsInputType() bool {
	return true
}

func (t *ScalarType) IsOutputType() bool {
	return true
}

func (t *ScalarType) IsSubTypeOf(other Type) bool {
	return t.IsSameType(other)
}

func (t *ScalarType) IsSameType(other Type) bool {
	return t == Resolve(other)
}

func (t *ScalarType) TypeName() string {
	return t.Name
}

// CoerceVariableValue coerces a decoded JSON variable value into the
// scalar's Go representation.
func (t *ScalarType) CoerceVariableValue(v interface{}) (interface{}, error) {
	if t.VariableValueCoercion == nil {
		return nil, fmt.Errorf("%v does not support variable coercion", t.Name)
	}
	if coerced := t.VariableValueCoercion(v); coerced != nil {
		return coerced, nil
	}
	return nil, fmt.Errorf("cannot coerce %#v to %v", v, t.Name)
}

// CoerceResult coerces a resolver's return value into the scalar's
// response representation.
func (t *ScalarType) CoerceResult(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	if t.ResultCoercion == nil {
		return v, nil
	}
	if coerced := t.ResultCoercion(v); coerced != nil {
		return coerced, nil
	}
	return nil, fmt.Errorf("cannot coerce %#v to %v", v, t.Name)
}

func (t *ScalarType) shallowValidate() error {
	if t.LiteralCoercion == nil {
		return fmt.Errorf("%v is missing a literal coercion function", t.Name)
	}
	return nil
}

func IsScalarType(t Type) bool {
	_, ok := Resolve(t).(*ScalarType)
	return ok
}
