package schema

import (
	"fmt"
	"reflect"

	"github.com/brinkql/brink/ast"
)

type ListType struct {
	Type Type
}

func NewListType(t Type) *ListType {
	return &ListType{Type: t}
}

func (t *ListType) String() string {
	return "[" + t.Type.String() + "]"
}

func (t *ListType) IsInputType() bool {
	return t.Type.IsInputType()
}

func (t *ListType) IsOutputType() bool {
	return t.Type.IsOutputType()
}

func (t *ListType) IsSubTypeOf(other Type) bool {
	other = Resolve(other)
	if lt, ok := other.(*ListType); ok {
		return t.Type.IsSubTypeOf(lt.Type)
	}
	return false
}

func (t *ListType) IsSameType(other Type) bool {
	if lt, ok := Resolve(other).(*ListType); ok {
		return t.Type.IsSameType(lt.Type)
	}
	return false
}

func (t *ListType) Unwrap() Type {
	return t.Type
}

func (t *ListType) shallowValidate() error {
	return nil
}

func IsListType(t Type) bool {
	_, ok := Resolve(t).(*ListType)
	return ok
}

// coerceVariableValue coerces a decoded JSON value into a Go slice of the
// element type's representation. A single non-list value is coerced as a
// list of one, per the GraphQL spec's input coercion rules, when
// allowItemToListCoercion is set.
func (t *ListType) coerceVariableValue(v interface{}, allowItemToListCoercion bool) (interface{}, error) {
	rv := reflect.ValueOf(v)
	if v != nil && rv.Kind() == reflect.Slice {
		result := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			coerced, err := coerceVariableValue(rv.Index(i).Interface(), t.Type, true)
			if err != nil {
				return nil, fmt.Errorf("at index %v: %w", i, err)
			}
			result[i] = coerced
		}
		return result, nil
	}
	if !allowItemToListCoercion {
		return nil, fmt.Errorf("expected a list")
	}
	coerced, err := coerceVariableValue(v, t.Type, true)
	if err != nil {
		return nil, err
	}
	return []interface{}{coerced}, nil
}

// coerceLiteral coerces an AST literal into a Go slice of the element
// type's representation, with the same list-of-one allowance as
// coerceVariableValue.
func (t *ListType) coerceLiteral(from ast.Value, variableValues map[string]interface{}, allowItemToListCoercion bool) (interface{}, error) {
	if lv, ok := from.(*ast.ListValue); ok {
		result := make([]interface{}, len(lv.Values))
		for i, v := range lv.Values {
			coerced, err := coerceLiteral(v, t.Type, variableValues, true)
			if err != nil {
				return nil, fmt.Errorf("at index %v: %w", i, err)
			}
			result[i] = coerced
		}
		return result, nil
	}
	if !allowItemToListCoercion {
		return nil, fmt.Errorf("expected a list")
	}
	coerced, err := coerceLiteral(from, t.Type, variableValues, true)
	if err != nil {
		return nil, err
	}
	return []interface{}{coerced}, nil
}
