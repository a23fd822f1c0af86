package executor

import (
	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

// ResolveInfo exposes AST-level context to a resolver: everything about
// where its field sits in the document and the schema, plus a peek at what
// the client asked for below it, for resolvers that want to batch or
// prefetch based on what will actually be read.
type ResolveInfo struct {
	FieldName      string
	ReturnType     schema.Type
	ParentType     *schema.ObjectType
	Path           []interface{}
	Schema         *schema.Schema
	Fragments      map[string]*ast.FragmentDefinition
	VariableValues map[string]interface{}
	RootValue      interface{}
	Operation      *ast.OperationDefinition

	fields []*ast.Field
}

// LookAhead reports whether this field has any sub-selection at all, i.e.
// whether its result will be used to select further fields.
func (info *ResolveInfo) LookAhead() bool {
	for _, f := range info.fields {
		if f.SelectionSet != nil && len(f.SelectionSet.Selections) > 0 {
			return true
		}
	}
	return false
}

// GetFieldSelection returns the response keys selected below this field, up
// to depth levels deep (1 = immediate children), expanding fragments and
// deduplicating. A depth of 0 returns nil.
func (info *ResolveInfo) GetFieldSelection(depth int) []string {
	if depth <= 0 {
		return nil
	}
	seen := map[string]struct{}{}
	var keys []string
	var walk func(selections []ast.Selection, remaining int)
	walk = func(selections []ast.Selection, remaining int) {
		if remaining <= 0 {
			return
		}
		for _, selection := range selections {
			switch selection := selection.(type) {
			case *ast.Field:
				key := selection.ResponseKey()
				if _, ok := seen[key]; !ok {
					seen[key] = struct{}{}
					keys = append(keys, key)
				}
				if selection.SelectionSet != nil {
					walk(selection.SelectionSet.Selections, remaining-1)
				}
			case *ast.InlineFragment:
				if selection.SelectionSet != nil {
					walk(selection.SelectionSet.Selections, remaining)
				}
			case *ast.FragmentSpread:
				if def, ok := info.Fragments[selection.FragmentName.Name]; ok && def.SelectionSet != nil {
					walk(def.SelectionSet.Selections, remaining)
				}
			}
		}
	}
	for _, f := range info.fields {
		if f.SelectionSet != nil {
			walk(f.SelectionSet.Selections, depth)
		}
	}
	return keys
}
