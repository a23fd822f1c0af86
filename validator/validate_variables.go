package validator

import (
	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

// validateVariables checks that every variable declared by an
// operation must have a unique name and an input type, every variable used
// within the operation (including through spread fragments) must be
// declared and compatible with the type its usage site expects, and every
// declared variable must actually be used.
func validateVariables(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	fragmentDefinitions := map[string]*ast.FragmentDefinition{}
	for _, def := range doc.Definitions {
		if def, ok := def.(*ast.FragmentDefinition); ok {
			fragmentDefinitions[def.Name.Name] = def
		}
	}

	var ret []*Error
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}

		variableDefinitions := map[string]*ast.VariableDefinition{}
		for _, vdef := range op.VariableDefinitions {
			name := vdef.Variable.Name.Name
			if _, ok := variableDefinitions[name]; ok {
				ret = append(ret, newError(vdef.Variable.Name, "a variable named %q already exists", name))
			} else {
				variableDefinitions[name] = vdef
			}

			if t := typeInfo.VariableDefinitionTypes[vdef]; t == nil {
				ret = append(ret, newError(vdef.Type, "unknown type"))
			} else if !t.IsInputType() {
				ret = append(ret, newError(vdef.Type, "%v is not an input type", t))
			}
		}

		encounteredVariables := map[string]struct{}{}
		unvalidatedFragmentSpreads := map[string]bool{}
		validatedFragmentSpreads := map[string]bool{}

		validate := func(node ast.Node) {
			ast.Inspect(node, func(node ast.Node) bool {
				switch node := node.(type) {
				case *ast.Variable:
					if vdef, ok := variableDefinitions[node.Name.Name]; !ok {
						ret = append(ret, newError(node, "undefined variable %q", node.Name.Name))
					} else if err := validateVariableUsage(vdef, node, typeInfo); err != nil {
						ret = append(ret, err)
					}
					encounteredVariables[node.Name.Name] = struct{}{}
				case *ast.VariableDefinition:
					return false
				case *ast.FragmentSpread:
					if name := node.FragmentName.Name; !validatedFragmentSpreads[name] {
						unvalidatedFragmentSpreads[name] = true
					}
				}
				return true
			})
		}
		validate(op)

		for len(unvalidatedFragmentSpreads) > 0 {
			for name := range unvalidatedFragmentSpreads {
				delete(unvalidatedFragmentSpreads, name)
				validatedFragmentSpreads[name] = true
				if def, ok := fragmentDefinitions[name]; ok {
					validate(def)
				}
			}
		}

		for _, vdef := range op.VariableDefinitions {
			if _, ok := encounteredVariables[vdef.Variable.Name.Name]; !ok {
				ret = append(ret, newError(vdef.Variable, "variable %q is never used", vdef.Variable.Name.Name))
			}
		}
	}
	return ret
}

func validateVariableUsage(def *ast.VariableDefinition, usage *ast.Variable, typeInfo *TypeInfo) *Error {
	variableType := typeInfo.VariableDefinitionTypes[def]
	locationType := typeInfo.ExpectedTypes[usage]

	if variableType == nil {
		return newSecondaryError(def, "no type information for variable")
	} else if locationType == nil {
		return newSecondaryError(usage, "no type information for this location")
	}

	if nonNullLocationType, ok := locationType.(*schema.NonNullType); ok && !schema.IsNonNullType(variableType) {
		hasNonNullVariableDefaultValue := def.DefaultValue != nil && !ast.IsNullValue(def.DefaultValue)
		hasLocationDefaultValue := typeInfo.DefaultValues[usage] != nil
		if !hasNonNullVariableDefaultValue && !hasLocationDefaultValue {
			return newError(usage, "variable %q is nullable, but is used where a non-null value is expected", usage.Name.Name)
		}
		locationType = nonNullLocationType.Type
	}

	if !areTypesCompatible(variableType, locationType) {
		return newError(usage, "variable %q is of a type incompatible with its usage here", usage.Name.Name)
	}

	return nil
}

func areTypesCompatible(variableType, locationType schema.Type) bool {
	if nonNullLocationType, ok := locationType.(*schema.NonNullType); ok {
		if nonNullVariableType, ok := variableType.(*schema.NonNullType); ok {
			return areTypesCompatible(nonNullVariableType.Type, nonNullLocationType.Type)
		}
		return false
	}

	if nonNullVariableType, ok := variableType.(*schema.NonNullType); ok {
		return areTypesCompatible(nonNullVariableType.Type, locationType)
	}

	if listLocationType, ok := locationType.(*schema.ListType); ok {
		if listVariableType, ok := variableType.(*schema.ListType); ok {
			return areTypesCompatible(listVariableType.Type, listLocationType.Type)
		}
		return false
	}

	if _, ok := variableType.(*schema.ListType); ok {
		return false
	}

	return variableType.IsSameType(locationType)
}
