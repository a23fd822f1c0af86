package validator

import (
	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

// validateDirectives checks that every directive applied in the document
// exists, is allowed at the location it's used, and appears at most once
// per location (unless it's repeatable).
func validateDirectives(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	var ret []*Error
	ast.Inspect(doc, func(node ast.Node) bool {
		var directives []*ast.Directive
		var location schema.DirectiveLocation

		switch node := node.(type) {
		case *ast.OperationDefinition:
			directives = node.Directives
			switch node.EffectiveOperationType() {
			case ast.OperationTypeMutation:
				location = schema.DirectiveLocationMutation
			case ast.OperationTypeSubscription:
				location = schema.DirectiveLocationSubscription
			default:
				location = schema.DirectiveLocationQuery
			}
		case *ast.FragmentDefinition:
			directives = node.Directives
			location = schema.DirectiveLocationFragmentDefinition
		case *ast.Field:
			directives = node.Directives
			location = schema.DirectiveLocationField
		case *ast.FragmentSpread:
			directives = node.Directives
			location = schema.DirectiveLocationFragmentSpread
		case *ast.InlineFragment:
			directives = node.Directives
			location = schema.DirectiveLocationInlineFragment
		}

		if len(directives) == 0 {
			return true
		}

		directiveNames := map[string]struct{}{}
		for _, directive := range directives {
			name := directive.Name.Name

			def := s.DirectiveDefinition(name)
			if def == nil {
				ret = append(ret, newError(directive.Name, "unknown directive %q%v", name, fieldSuggestion(name, directiveNamesOf(s))))
			} else {
				allowedLocation := false
				for _, allowed := range def.Locations {
					if allowed == location {
						allowedLocation = true
						break
					}
				}
				if !allowedLocation {
					ret = append(ret, newError(directive, "directive %q is not allowed at this location", name))
				}
			}

			if _, ok := directiveNames[name]; ok {
				if def == nil || !def.IsRepeatable {
					ret = append(ret, newError(directive, "the %v directive can only be used once at this location", name))
				}
			} else {
				directiveNames[name] = struct{}{}
			}
		}
		return false
	})
	return ret
}

func directiveNamesOf(s *schema.Schema) []string {
	defs := s.DirectiveDefinitions()
	names := make([]string, 0, len(defs))
	for n := range defs {
		names = append(names, n)
	}
	return names
}
