package validator

import (
	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

// validateArguments checks that every argument passed to a field or
// directive is declared and unique, and that every required argument
// without a default is present and non-null.
func validateArguments(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	var ret []*Error
	ast.Inspect(doc, func(node ast.Node) bool {
		var arguments []*ast.Argument
		var argumentDefinitions map[string]*schema.InputValueDefinition

		switch node := node.(type) {
		case *ast.Directive:
			if def := s.DirectiveDefinition(node.Name.Name); def != nil {
				arguments = node.Arguments
				argumentDefinitions = def.Arguments
			} else {
				ret = append(ret, newSecondaryError(node, "undefined directive %q", node.Name.Name))
				return false
			}
		case *ast.Field:
			arguments = node.Arguments
			if def := typeInfo.FieldDefinitions[node]; def != nil {
				argumentDefinitions = def.Arguments
			} else if node.Name.Name != "__typename" {
				ret = append(ret, newSecondaryError(node, "no type information for field"))
				return false
			}
		}

		if len(arguments) == 0 && len(argumentDefinitions) == 0 {
			return true
		}

		argumentsByName := map[string]*ast.Argument{}
		for _, argument := range arguments {
			name := argument.Name.Name
			if def := argumentDefinitions[name]; def == nil {
				ret = append(ret, newError(argument.Name, "unknown argument %q%v", name, argSuggestion(name, argumentDefinitions)))
			} else if _, ok := argumentsByName[name]; ok {
				ret = append(ret, newError(argument, "the %v argument can only be given once", name))
			} else {
				argumentsByName[name] = argument
			}
		}

		for name, def := range argumentDefinitions {
			if schema.IsNonNullType(def.Type) && def.DefaultValue == nil {
				if arg, ok := argumentsByName[name]; !ok {
					ret = append(ret, newError(node, "the %v argument is required", name))
				} else if ast.IsNullValue(arg.Value) {
					ret = append(ret, newSecondaryError(arg.Value, "the %v argument cannot be null", name))
				}
			}
		}

		// A field's sub-selections still need their own arguments checked.
		_, isField := node.(*ast.Field)
		return isField
	})
	return ret
}

func argSuggestion(name string, defs map[string]*schema.InputValueDefinition) string {
	names := make([]string, 0, len(defs))
	for n := range defs {
		names = append(names, n)
	}
	return fieldSuggestion(name, names)
}
