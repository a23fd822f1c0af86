package validator

import (
	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

// CoerceVariableValues coerces the raw, host-supplied variableValues
// against operation's declared variable types, applying defaults for
// variables left absent. Only a missing map key counts as "absent": a
// present-but-nil entry is an explicit null, not a request for the
// default.
func CoerceVariableValues(s *schema.Schema, operation *ast.OperationDefinition, variableValues map[string]interface{}) (map[string]interface{}, *Error) {
	coerced := map[string]interface{}{}
	for _, def := range operation.VariableDefinitions {
		name := def.Variable.Name.Name
		variableType := schemaType(def.Type, s)
		if variableType == nil || !variableType.IsInputType() {
			return nil, newError(def.Type, "Invalid variable type.")
		}

		value, hasValue := variableValues[name]

		if !hasValue && def.DefaultValue != nil {
			v, err := schema.CoerceLiteral(def.DefaultValue, variableType, variableValues)
			if err != nil {
				return nil, newError(def.DefaultValue, "Invalid default value for $%v: %v", name, err.Error())
			}
			coerced[name] = v
			continue
		} else if schema.IsNonNullType(variableType) && !hasValue {
			return nil, newError(def.Variable, "The %v variable is required.", name)
		} else if hasValue {
			v, err := schema.CoerceVariableValue(value, variableType)
			if err != nil {
				return nil, newError(def.Variable, "Invalid $%v value: %v", name, err.Error())
			}
			coerced[name] = v
		}
	}
	return coerced, nil
}

// CoerceArgumentValues coerces the literal/variable-backed arguments of a
// field or directive invocation into runtime values, applying defaults for
// arguments left unspecified.
func CoerceArgumentValues(node ast.Node, argumentDefinitions map[string]*schema.InputValueDefinition, arguments []*ast.Argument, variableValues map[string]interface{}) (map[string]interface{}, *Error) {
	var coerced map[string]interface{}

	argumentValues := map[string]ast.Value{}
	for _, arg := range arguments {
		argumentValues[arg.Name.Name] = arg.Value
	}

	for name, argDef := range argumentDefinitions {
		argumentType := argDef.Type
		defaultValue := argDef.DefaultValue

		value, hasValue := argumentValues[name]
		if variable, ok := value.(*ast.Variable); ok {
			_, hasValue = variableValues[variable.Name.Name]
		}

		if !hasValue && defaultValue != nil {
			if defaultValue == schema.Null {
				defaultValue = nil
			}
			if coerced == nil {
				coerced = map[string]interface{}{}
			}
			coerced[name] = defaultValue
		} else if schema.IsNonNullType(argumentType) && !hasValue {
			return nil, newError(node, "The %v argument is required.", name)
		} else if hasValue {
			if coerced == nil {
				coerced = map[string]interface{}{}
			}
			if variable, ok := value.(*ast.Variable); ok {
				coerced[name] = variableValues[variable.Name.Name]
			} else if v, err := schema.CoerceLiteral(value, argumentType, variableValues); err != nil {
				return nil, newError(value, "Invalid argument value: %v", err.Error())
			} else {
				coerced[name] = v
			}
		}
	}

	return coerced, nil
}
