package validator

import (
	"fmt"
	"sort"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/internal/suggest"
	"github.com/brinkql/brink/schema"
	"github.com/brinkql/brink/schema/introspection"
)

// validateFields checks leaf selections (scalars take no sub-selection,
// composites require one), field existence against the parent type (with
// "did you mean" suggestions), and that overlapping fields can be merged.
func validateFields(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	var ret []*Error

	fragments := map[string]*ast.FragmentDefinition{}
	for _, def := range doc.Definitions {
		if def, ok := def.(*ast.FragmentDefinition); ok {
			fragments[def.Name.Name] = def
		}
	}

	ret = append(ret, validateFieldsOnCorrectTypeAndLeaves(doc, s, typeInfo)...)

	ast.Inspect(doc, func(node ast.Node) bool {
		if set, ok := node.(*ast.SelectionSet); ok {
			grouped := map[string][]fieldAndParent{}
			if err := addFieldSelections(grouped, set, fragments); err != nil {
				ret = append(ret, err)
				return false
			}
			if err := validateFieldsInSetCanMerge(grouped, fragments, typeInfo); err != nil {
				ret = append(ret, err)
				return false
			}
		}
		return true
	})

	return ret
}

type fieldsVisitor struct {
	s        *schema.Schema
	typeInfo *TypeInfo
	scopes   []schema.NamedType
	errors   []*Error
}

func (v *fieldsVisitor) Enter(node ast.Node) ast.Action {
	var scope schema.NamedType

	switch n := node.(type) {
	case *ast.SelectionSet:
		scope = v.typeInfo.SelectionSetTypes[n]
	case *ast.Field:
		name := n.Name.Name
		shouldHaveSubselection := false
		if def := v.typeInfo.FieldDefinitions[n]; def != nil {
			switch schema.UnwrappedType(def.Type).(type) {
			case *schema.ObjectType, *schema.InterfaceType, *schema.UnionType:
				shouldHaveSubselection = true
			}
		} else if name != "__typename" {
			v.errors = append(v.errors, newSecondaryError(n, "no type information for field %q", name))
		}

		fieldExists := true
		if name != "__typename" && len(v.scopes) > 0 {
			switch parent := v.scopes[len(v.scopes)-1].(type) {
			case *schema.ObjectType:
				if parent.Fields[name] == nil && (parent != v.s.QueryType() || introspection.MetaFields[name] == nil) {
					v.errors = append(v.errors, newError(n.Name, "field %q does not exist on %v%v", name, parent.Name, fieldSuggestion(name, fieldNames(parent.Fields))))
					fieldExists = false
				}
			case *schema.InterfaceType:
				if parent.Fields[name] == nil {
					v.errors = append(v.errors, newError(n.Name, "field %q does not exist on %v%v", name, parent.Name, fieldSuggestion(name, fieldNames(parent.Fields))))
					fieldExists = false
				}
			case *schema.UnionType:
				v.errors = append(v.errors, newError(n.Name, "field %q does not exist on %v", name, parent.Name))
				fieldExists = false
			}
		}

		if fieldExists {
			if shouldHaveSubselection {
				if n.SelectionSet == nil || len(n.SelectionSet.Selections) == 0 {
					v.errors = append(v.errors, newError(n, "%v field must have a selection of subfields", name))
				}
			} else if n.SelectionSet != nil {
				v.errors = append(v.errors, newError(n, "%v field cannot have a selection, since it is a leaf", name))
			}
		}
	}

	v.scopes = append(v.scopes, scope)
	return ast.Continue
}

func (v *fieldsVisitor) Leave(ast.Node) {
	v.scopes = v.scopes[:len(v.scopes)-1]
}

func fieldNames(fields map[string]*schema.FieldDefinition) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fieldSuggestion(name string, options []string) string {
	if s := suggest.QuotedList(suggest.List(name, options)); s != "" {
		return " " + s
	}
	return ""
}

func validateFieldsOnCorrectTypeAndLeaves(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	v := &fieldsVisitor{s: s, typeInfo: typeInfo}
	ast.Walk(v, doc)
	return v.errors
}

type fieldAndParent struct {
	field  *ast.Field
	parent *ast.SelectionSet
}

func addFieldSelections(fieldsForName map[string][]fieldAndParent, selectionSet *ast.SelectionSet, fragments map[string]*ast.FragmentDefinition) *Error {
	visited := map[*ast.SelectionSet]struct{}{}
	return addFieldSelectionsWithCycleDetection(fieldsForName, selectionSet, fragments, visited)
}

func addFieldSelectionsWithCycleDetection(fieldsForName map[string][]fieldAndParent, selectionSet *ast.SelectionSet, fragments map[string]*ast.FragmentDefinition, visited map[*ast.SelectionSet]struct{}) *Error {
	if selectionSet == nil {
		return nil
	}
	if _, ok := visited[selectionSet]; ok {
		return newSecondaryError(selectionSet, "cycle detected while collecting fields")
	}
	visited[selectionSet] = struct{}{}

	for _, selection := range selectionSet.Selections {
		switch selection := selection.(type) {
		case *ast.Field:
			fieldsForName[selection.ResponseKey()] = append(fieldsForName[selection.ResponseKey()], fieldAndParent{
				field:  selection,
				parent: selectionSet,
			})
		case *ast.InlineFragment:
			if err := addFieldSelectionsWithCycleDetection(fieldsForName, selection.SelectionSet, fragments, visited); err != nil {
				return err
			}
		case *ast.FragmentSpread:
			def, ok := fragments[selection.FragmentName.Name]
			if !ok {
				return newSecondaryError(selection.FragmentName, "undefined fragment %q", selection.FragmentName.Name)
			}
			if err := addFieldSelectionsWithCycleDetection(fieldsForName, def.SelectionSet, fragments, visited); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateFieldsInSetCanMerge(fieldsForName map[string][]fieldAndParent, fragments map[string]*ast.FragmentDefinition, typeInfo *TypeInfo) *Error {
	for _, fields := range fieldsForName {
		for i := 0; i < len(fields); i++ {
			for j := i + 1; j < len(fields); j++ {
				fieldA := fields[i].field
				fieldB := fields[j].field
				if err := validateSameResponseShape(fieldA, fieldB, fragments, typeInfo); err != nil {
					return err
				}

				parentTypeA := typeInfo.SelectionSetTypes[fields[i].parent]
				parentTypeB := typeInfo.SelectionSetTypes[fields[j].parent]
				if parentTypeA == nil || parentTypeB == nil {
					return newSecondaryError(fields[i].parent, "no type information for selection set")
				}

				_, aIsObj := parentTypeA.(*schema.ObjectType)
				_, bIsObj := parentTypeB.(*schema.ObjectType)
				if parentTypeA.IsSameType(parentTypeB) || !aIsObj || !bIsObj {
					if fieldA.Name.Name != fieldB.Name.Name {
						return newErrorWithNodes([]ast.Node{fieldA.Name, fieldB.Name}, "fields %q and %q cannot be merged: they alias to the same response name but select different fields", fieldA.ResponseKey(), fieldA.Name.Name+"/"+fieldB.Name.Name)
					}

					if len(fieldA.Arguments) != len(fieldB.Arguments) {
						return newErrorWithNodes([]ast.Node{fieldA, fieldB}, "fields cannot be merged: they have differing arguments")
					}
					argsA := map[string]*ast.Argument{}
					for _, arg := range fieldA.Arguments {
						argsA[arg.Name.Name] = arg
					}
					for _, argB := range fieldB.Arguments {
						argA, ok := argsA[argB.Name.Name]
						if !ok || !valuesAreIdentical(argA.Value, argB.Value) {
							return newErrorWithNodes([]ast.Node{fieldA, fieldB}, "fields cannot be merged: they have differing arguments")
						}
					}

					merged := map[string][]fieldAndParent{}
					if err := addFieldSelections(merged, fieldA.SelectionSet, fragments); err != nil {
						return err
					}
					if err := addFieldSelections(merged, fieldB.SelectionSet, fragments); err != nil {
						return err
					}
					if err := validateFieldsInSetCanMerge(merged, fragments, typeInfo); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func valuesAreIdentical(a, b ast.Value) bool {
	switch a := a.(type) {
	case *ast.Variable:
		b, ok := b.(*ast.Variable)
		return ok && b.Name.Name == a.Name.Name
	case *ast.BooleanValue:
		b, ok := b.(*ast.BooleanValue)
		return ok && b.Value == a.Value
	case *ast.FloatValue:
		b, ok := b.(*ast.FloatValue)
		return ok && b.Value == a.Value
	case *ast.IntValue:
		b, ok := b.(*ast.IntValue)
		return ok && b.Value == a.Value
	case *ast.StringValue:
		b, ok := b.(*ast.StringValue)
		return ok && b.Value == a.Value
	case *ast.EnumValue:
		b, ok := b.(*ast.EnumValue)
		return ok && b.Value == a.Value
	case *ast.NullValue:
		_, ok := b.(*ast.NullValue)
		return ok
	case *ast.ListValue:
		b, ok := b.(*ast.ListValue)
		if !ok || len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !valuesAreIdentical(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	case *ast.ObjectValue:
		b, ok := b.(*ast.ObjectValue)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			af, bf := a.Fields[i], b.Fields[i]
			if af.Name.Name != bf.Name.Name || !valuesAreIdentical(af.Value, bf.Value) {
				return false
			}
		}
		return true
	}
	panic(fmt.Sprintf("validator: unexpected value type: %T", a))
}

func validateSameResponseShape(fieldA, fieldB *ast.Field, fragments map[string]*ast.FragmentDefinition, typeInfo *TypeInfo) *Error {
	typeOf := func(f *ast.Field) (schema.Type, *Error) {
		if f.Name.Name == "__typename" {
			return schema.NewNonNullType(schema.StringType), nil
		}
		def := typeInfo.FieldDefinitions[f]
		if def == nil {
			return nil, newSecondaryError(f, "no type information for field")
		}
		return def.Type, nil
	}

	typeA, err := typeOf(fieldA)
	if err != nil {
		return err
	}
	typeB, err := typeOf(fieldB)
	if err != nil {
		return err
	}

	for {
		if schema.IsNonNullType(typeA) || schema.IsNonNullType(typeB) {
			nnA, okA := typeA.(*schema.NonNullType)
			nnB, okB := typeB.(*schema.NonNullType)
			if !okA || !okB {
				return newErrorWithNodes([]ast.Node{fieldA, fieldB}, "fields cannot be merged: nullability differs")
			}
			typeA, typeB = nnA.Type, nnB.Type
		}
		if schema.IsListType(typeA) || schema.IsListType(typeB) {
			lA, okA := typeA.(*schema.ListType)
			lB, okB := typeB.(*schema.ListType)
			if !okA || !okB {
				return newErrorWithNodes([]ast.Node{fieldA, fieldB}, "fields cannot be merged: one is a list and the other is not")
			}
			typeA, typeB = lA.Type, lB.Type
		} else {
			break
		}
	}

	if schema.IsScalarType(typeA) || schema.IsScalarType(typeB) || schema.IsEnumType(typeA) || schema.IsEnumType(typeB) {
		if typeA.IsSameType(typeB) {
			return nil
		}
		return newErrorWithNodes([]ast.Node{fieldA, fieldB}, "fields with the same response name must be of the same, scalar or enum, type")
	}

	merged := map[string][]fieldAndParent{}
	if err := addFieldSelections(merged, fieldA.SelectionSet, fragments); err != nil {
		return err
	}
	if err := addFieldSelections(merged, fieldB.SelectionSet, fragments); err != nil {
		return err
	}
	for _, fields := range merged {
		for i := 0; i < len(fields); i++ {
			for j := i + 1; j < len(fields); j++ {
				if err := validateSameResponseShape(fields[i].field, fields[j].field, fragments, typeInfo); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
