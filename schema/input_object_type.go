package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/internal/suggest"
)

type InputObjectType struct {
	Name        string
	Description string
	Directives  []*Directive
	Fields      map[string]*InputValueDefinition

	// InputCoercion, if given, converts a fully-coerced field map into
	// another representation (e.g. a Go struct). Otherwise the coerced
	// value remains a map[string]interface{}.
	InputCoercion func(map[string]interface{}) (interface{}, error)

	// ResultCoercion is the inverse of InputCoercion. It's only required
	// if an argument of this type has a default value that needs
	// serializing back out for introspection.
	ResultCoercion func(interface{}) (map[string]interface{}, error)

	IsVisible func(context.Context) bool
}

func (t *InputObjectType) String() string {
	return t.Name
}

func (t *InputObjectType) IsInputType() bool {
	return true
}

func (t *InputObjectType) IsOutputType() bool {
	return false
}

func (t *InputObjectType) IsSubTypeOf(other Type) bool {
	return t.IsSameType(other)
}

func (t *InputObjectType) IsSameType(other Type) bool {
	return t == Resolve(other)
}

func (t *InputObjectType) TypeName() string {
	return t.Name
}

func (t *InputObjectType) IsTypeVisible(ctx context.Context) bool {
	if t.IsVisible == nil {
		return true
	}
	return t.IsVisible(ctx)
}

func (t *InputObjectType) CoerceVariableValue(v interface{}) (interface{}, error) {
	result := map[string]interface{}{}

	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid variable type")
	}
	for name, field := range t.Fields {
		if fieldValue, ok := m[name]; ok {
			coerced, err := CoerceVariableValue(fieldValue, field.Type)
			if err != nil {
				return nil, err
			}
			result[name] = coerced
		} else if field.DefaultValue != nil {
			if field.DefaultValue == Null {
				result[name] = nil
			} else {
				result[name] = field.DefaultValue
			}
		} else if IsNonNullType(field.Type) {
			return nil, fmt.Errorf("the %v field is required", name)
		}
	}
	for name := range m {
		if _, ok := t.Fields[name]; !ok {
			return nil, fmt.Errorf("unknown field: %v%v", name, t.fieldSuggestion(name))
		}
	}

	if t.InputCoercion != nil {
		return t.InputCoercion(result)
	}
	return result, nil
}

func (t *InputObjectType) CoerceLiteral(node *ast.ObjectValue, variableValues map[string]interface{}) (interface{}, error) {
	result := map[string]interface{}{}

	for _, field := range node.Fields {
		name := field.Name.Name
		fieldDef, ok := t.Fields[name]
		if !ok {
			return nil, fmt.Errorf("unknown field: %v%v", name, t.fieldSuggestion(name))
		}
		if variable, ok := field.Value.(*ast.Variable); ok {
			if _, ok := variableValues[variable.Name.Name]; !ok {
				continue
			}
		}
		coerced, err := CoerceLiteral(field.Value, fieldDef.Type, variableValues)
		if err != nil {
			return nil, err
		}
		result[name] = coerced
	}
	for name, field := range t.Fields {
		if v, ok := result[name]; !ok && field.DefaultValue != nil {
			if field.DefaultValue == Null {
				result[name] = nil
			} else {
				result[name] = field.DefaultValue
			}
		} else if (!ok || v == nil) && IsNonNullType(field.Type) {
			return nil, fmt.Errorf("the %v field is required", name)
		}
	}

	if t.InputCoercion != nil {
		return t.InputCoercion(result)
	}
	return result, nil
}

func (t *InputObjectType) fieldSuggestion(input string) string {
	names := make([]string, 0, len(t.Fields))
	for name := range t.Fields {
		names = append(names, name)
	}
	if s := suggest.QuotedList(suggest.List(input, names)); s != "" {
		return " " + s
	}
	return ""
}

func (t *InputObjectType) shallowValidate() error {
	if len(t.Fields) == 0 {
		return fmt.Errorf("%v must have at least one field", t.Name)
	}
	for name, field := range t.Fields {
		if !isName(name) || strings.HasPrefix(name, "__") {
			return fmt.Errorf("illegal field name: %v", name)
		} else if !field.Type.IsInputType() {
			return fmt.Errorf("%v field must be an input type", name)
		}
	}
	return t.validateNoRequiredCycles()
}

// validateNoRequiredCycles rejects input objects that can never be
// satisfied: a chain of required fields (non-null input object types,
// with no list or default value breaking the chain) that leads back to
// this type would demand an infinitely nested input value.
func (t *InputObjectType) validateNoRequiredCycles() error {
	visited := map[*InputObjectType]struct{}{}
	var visit func(current *InputObjectType) error
	visit = func(current *InputObjectType) error {
		visited[current] = struct{}{}
		for name, field := range current.Fields {
			if field.DefaultValue != nil {
				continue
			}
			nonNull, ok := Resolve(field.Type).(*NonNullType)
			if !ok {
				continue
			}
			inner, ok := Resolve(nonNull.Type).(*InputObjectType)
			if !ok {
				continue
			}
			if inner == t {
				return fmt.Errorf("%v can never be satisfied: the %v field of %v closes a cycle of required input object fields", t.Name, name, current.Name)
			}
			if _, ok := visited[inner]; ok {
				continue
			}
			if err := visit(inner); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(t)
}
