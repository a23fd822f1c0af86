package validator

import (
	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

// validateOperations checks operation-name uniqueness and that an
// anonymous operation is the document's only operation.
func validateOperations(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	var ret []*Error

	operationNames := map[string]struct{}{}
	operationCount := 0
	var anonymous []*ast.OperationDefinition

	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		operationCount++
		if op.Name == nil {
			anonymous = append(anonymous, op)
		} else if _, exists := operationNames[op.Name.Name]; exists {
			ret = append(ret, newError(op.Name, "an operation named %q already exists", op.Name.Name))
		} else {
			operationNames[op.Name.Name] = struct{}{}
		}

		if _, ok := typeInfo.SelectionSetTypes[op.SelectionSet]; !ok {
			ret = append(ret, newError(op, "this schema does not support the %v operation", op.EffectiveOperationType()))
		}
	}

	if len(anonymous) > 0 && operationCount > 1 {
		for _, op := range anonymous {
			ret = append(ret, newError(op, "this anonymous operation must be the only defined operation"))
		}
	}

	return append(ret, validateSubscriptionSingleRootField(doc, s, typeInfo)...)
}

// validateSubscriptionSingleRootField checks that, after fragment
// expansion and excluding __typename, a subscription's top selection set
// resolves to exactly one field.
func validateSubscriptionSingleRootField(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	var ret []*Error

	fragments := map[string]*ast.FragmentDefinition{}
	for _, def := range doc.Definitions {
		if def, ok := def.(*ast.FragmentDefinition); ok {
			fragments[def.Name.Name] = def
		}
	}

	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok || op.EffectiveOperationType() != ast.OperationTypeSubscription {
			continue
		}
		set := map[string][]fieldAndParent{}
		if err := addFieldSelections(set, op.SelectionSet, fragments); err != nil {
			ret = append(ret, err)
			continue
		}
		nonIntrospection := 0
		for key := range set {
			if key == "__typename" {
				continue
			}
			nonIntrospection++
		}
		if nonIntrospection != 1 {
			ret = append(ret, newError(op.SelectionSet, "subscriptions must select exactly one top-level field"))
		}
	}

	return ret
}
