package validator

import (
	"fmt"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

// validateValues checks that every literal value in the document is
// coercible to the type its position expects.
func validateValues(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	var ret []*Error

	ast.Inspect(doc, func(node ast.Node) bool {
		switch node := node.(type) {
		case *ast.Variable:
			// variables are checked against their declared type by
			// validateVariables
		case ast.Value:
			if expected, ok := typeInfo.ExpectedTypes[node]; ok {
				ret = append(ret, validateCoercion(node, expected, true)...)
			} else {
				ret = append(ret, newSecondaryError(node, "no type information for value"))
			}
			return false
		}
		return true
	})

	return ret
}

// validateCoercion reports every way in which the literal from fails to
// coerce to to. allowItemToListCoercion permits a bare item where a list of
// one is expected, matching CoerceLiteral's own behavior.
func validateCoercion(from ast.Value, to schema.Type, allowItemToListCoercion bool) []*Error {
	var ret []*Error

	if _, ok := from.(*ast.Variable); ok {
		return ret
	}

	if ast.IsNullValue(from) {
		if schema.IsNonNullType(to) {
			ret = append(ret, newError(from, "cannot coerce null to non-null type %v", to))
		}
		return ret
	}

	switch to := to.(type) {
	case *schema.ScalarType:
		if to.LiteralCoercion != nil && to.LiteralCoercion(from) == nil {
			ret = append(ret, newError(from, "cannot coerce to %v", to))
		}
	case *schema.ListType:
		if fromList, ok := from.(*ast.ListValue); ok {
			for _, value := range fromList.Values {
				ret = append(ret, validateCoercion(value, to.Type, false)...)
			}
		} else if allowItemToListCoercion {
			ret = append(ret, validateCoercion(from, to.Type, true)...)
		} else {
			ret = append(ret, newError(from, "cannot coerce to %v", to))
		}
	case *schema.InputObjectType:
		if from, ok := from.(*ast.ObjectValue); ok {
			fieldsByName := map[string]*ast.ObjectField{}
			for _, field := range from.Fields {
				if _, ok := fieldsByName[field.Name.Name]; ok {
					ret = append(ret, newError(field, "duplicate field %q", field.Name.Name))
				}
				fieldsByName[field.Name.Name] = field

				if def, ok := to.Fields[field.Name.Name]; ok {
					ret = append(ret, validateCoercion(field.Value, def.Type, true)...)
				} else {
					ret = append(ret, newError(field, "field %q does not exist on %v", field.Name.Name, to.Name))
				}
			}

			for name, field := range to.Fields {
				if schema.IsNonNullType(field.Type) && field.DefaultValue == nil {
					if _, ok := fieldsByName[name]; !ok {
						ret = append(ret, newError(from, "the %v field is required", name))
					}
				}
			}
		} else {
			ret = append(ret, newError(from, "cannot coerce to %v", to))
		}
	case *schema.EnumType:
		if _, err := to.CoerceLiteral(from); err != nil {
			ret = append(ret, newError(from, "cannot coerce to %v", to))
		}
	case *schema.NonNullType:
		ret = append(ret, validateCoercion(from, to.Type, allowItemToListCoercion)...)
	default:
		panic(fmt.Sprintf("validator: unsupported input coercion type: %T", to))
	}
	return ret
}
