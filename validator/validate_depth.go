package validator

import (
	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

// ValidateMaxDepth returns a rule that fails validation if
// operationName's selections nest more than max levels deep,
// not counting introspection fields. A max of -1 disables the limit; any
// other negative max panics at construction, matching ValidateCost.
func ValidateMaxDepth(operationName string, max int) Rule {
	if max < -1 {
		panic("argument must be greater or equal to 0.")
	}
	return func(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
		if max < 0 {
			return nil
		}

		var op *ast.OperationDefinition
		for _, def := range doc.Definitions {
			if def, ok := def.(*ast.OperationDefinition); ok {
				if operationName == "" || (def.Name != nil && def.Name.Name == operationName) {
					if op != nil {
						op = nil
						break
					}
					op = def
				}
			}
		}
		if op == nil {
			return nil
		}

		fragmentsByName := map[string]*ast.FragmentDefinition{}
		for _, def := range doc.Definitions {
			if def, ok := def.(*ast.FragmentDefinition); ok {
				fragmentsByName[def.Name.Name] = def
			}
		}

		d := &depthVisitor{fragmentsByName: fragmentsByName}
		depth := d.selectionSetDepth(op.SelectionSet, map[string]struct{}{})
		if len(d.errors) > 0 {
			return d.errors
		}
		if depth > max {
			return []*Error{newError(op, "operation has a depth of %v, which exceeds the maximum allowed depth of %v", depth, max)}
		}
		return nil
	}
}

type depthVisitor struct {
	fragmentsByName map[string]*ast.FragmentDefinition
	errors          []*Error
}

func (d *depthVisitor) selectionSetDepth(set *ast.SelectionSet, visitedFragments map[string]struct{}) int {
	if set == nil {
		return 0
	}
	max := 0
	for _, selection := range set.Selections {
		var depth int
		switch selection := selection.(type) {
		case *ast.Field:
			if selection.Name.Name == "__typename" || selection.Name.Name == "__schema" || selection.Name.Name == "__type" {
				continue
			}
			depth = 1 + d.selectionSetDepth(selection.SelectionSet, visitedFragments)
		case *ast.InlineFragment:
			depth = d.selectionSetDepth(selection.SelectionSet, visitedFragments)
		case *ast.FragmentSpread:
			name := selection.FragmentName.Name
			if _, ok := visitedFragments[name]; ok {
				d.errors = append(d.errors, newSecondaryError(selection, "fragment cycle detected"))
				continue
			}
			def, ok := d.fragmentsByName[name]
			if !ok {
				d.errors = append(d.errors, newSecondaryError(selection, "undefined fragment %q", name))
				continue
			}
			visitedFragments[name] = struct{}{}
			depth = d.selectionSetDepth(def.SelectionSet, visitedFragments)
			delete(visitedFragments, name)
		}
		if depth > max {
			max = depth
		}
	}
	return max
}
