package validator

import (
	"fmt"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
	"github.com/brinkql/brink/schema/introspection"
)

// TypeInfo tracks, for every node in a document, the schema-level
// information the validation rules need: the type a selection set
// resolves against, the type a variable was declared with, the field
// definition a field selection refers to, and the expected (declared)
// type of every value literal, along with any default value that
// location falls back to when a variable is left unset.
type TypeInfo struct {
	SelectionSetTypes       map[*ast.SelectionSet]schema.NamedType
	VariableDefinitionTypes map[*ast.VariableDefinition]schema.Type
	FieldDefinitions        map[*ast.Field]*schema.FieldDefinition
	ExpectedTypes           map[ast.Value]schema.Type
	DefaultValues           map[ast.Value]interface{}
}

func schemaType(t ast.Type, s *schema.Schema) schema.Type {
	switch t := t.(type) {
	case *ast.ListType:
		if inner := schemaType(t.Type, s); inner != nil {
			return schema.NewListType(inner)
		}
	case *ast.NonNullType:
		if inner := schemaType(t.Type, s); inner != nil {
			return schema.NewNonNullType(inner)
		}
	case *ast.NamedType:
		return namedType(s, t.Name.Name)
	default:
		panic(fmt.Sprintf("validator: unsupported ast type: %T", t))
	}
	return nil
}

func namedType(s *schema.Schema, name string) schema.NamedType {
	if t := s.NamedType(name); t != nil {
		return t
	}
	return introspection.NamedTypes[name]
}

// NewTypeInfo walks doc once, annotating every node it needs for the rule
// suite to run against s.
func NewTypeInfo(doc *ast.Document, s *schema.Schema) *TypeInfo {
	info := &TypeInfo{
		SelectionSetTypes:       map[*ast.SelectionSet]schema.NamedType{},
		VariableDefinitionTypes: map[*ast.VariableDefinition]schema.Type{},
		FieldDefinitions:        map[*ast.Field]*schema.FieldDefinition{},
		ExpectedTypes:           map[ast.Value]schema.Type{},
		DefaultValues:           map[ast.Value]interface{}{},
	}
	v := &typeInfoVisitor{schema: s, info: info}
	ast.Walk(v, doc)
	return info
}

type typeInfoVisitor struct {
	schema *schema.Schema
	info   *TypeInfo
	scopes []schema.NamedType
}

func (v *typeInfoVisitor) Enter(node ast.Node) ast.Action {
	info := v.info
	var scope schema.NamedType

	switch n := node.(type) {
	case *ast.ListValue:
		if expected, ok := info.ExpectedTypes[n].(*schema.ListType); ok {
			for _, value := range n.Values {
				info.ExpectedTypes[value] = expected.Type
			}
		}
	case *ast.ObjectValue:
		if expected, ok := info.ExpectedTypes[n].(*schema.InputObjectType); ok {
			for _, field := range n.Fields {
				if fieldDef, ok := expected.Fields[field.Name.Name]; ok {
					info.ExpectedTypes[field.Value] = fieldDef.Type
					if fieldDef.DefaultValue != nil {
						info.DefaultValues[field.Value] = resolveDefault(fieldDef.DefaultValue)
					}
				}
			}
		}
	case *ast.Directive:
		if def := v.schema.DirectiveDefinition(n.Name.Name); def != nil {
			for _, arg := range n.Arguments {
				if argDef, ok := def.Arguments[arg.Name.Name]; ok {
					info.ExpectedTypes[arg.Value] = argDef.Type
					if argDef.DefaultValue != nil {
						info.DefaultValues[arg.Value] = resolveDefault(argDef.DefaultValue)
					}
				}
			}
		}
	case *ast.Field:
		var field *schema.FieldDefinition
		if len(v.scopes) > 0 {
			switch parent := v.scopes[len(v.scopes)-1].(type) {
			case *schema.InterfaceType:
				field = parent.Fields[n.Name.Name]
			case *schema.ObjectType:
				field = parent.Fields[n.Name.Name]
				if field == nil && parent == v.schema.QueryType() {
					field = introspection.MetaFields[n.Name.Name]
				}
			}
		}
		if field != nil {
			for _, arg := range n.Arguments {
				if argDef, ok := field.Arguments[arg.Name.Name]; ok {
					info.ExpectedTypes[arg.Value] = argDef.Type
					if argDef.DefaultValue != nil {
						info.DefaultValues[arg.Value] = resolveDefault(argDef.DefaultValue)
					}
				}
			}
			info.FieldDefinitions[n] = field
			scope = schema.UnwrappedType(field.Type)
		}
	case *ast.FragmentDefinition:
		scope = namedType(v.schema, n.TypeCondition.Name.Name)
	case *ast.InlineFragment:
		if n.TypeCondition == nil {
			if len(v.scopes) > 0 {
				scope = v.scopes[len(v.scopes)-1]
			}
		} else {
			scope = namedType(v.schema, n.TypeCondition.Name.Name)
		}
	case *ast.OperationDefinition:
		switch n.EffectiveOperationType() {
		case ast.OperationTypeQuery:
			if t := v.schema.QueryType(); t != nil {
				scope = t
			}
		case ast.OperationTypeMutation:
			if t := v.schema.MutationType(); t != nil {
				scope = t
			}
		case ast.OperationTypeSubscription:
			if t := v.schema.SubscriptionType(); t != nil {
				scope = t
			}
		}
	case *ast.SelectionSet:
		if len(v.scopes) > 0 {
			if t := v.scopes[len(v.scopes)-1]; t != nil {
				info.SelectionSetTypes[n] = t
				scope = t
			}
		}
	case *ast.VariableDefinition:
		if t := schemaType(n.Type, v.schema); t != nil {
			info.VariableDefinitionTypes[n] = t
			if n.DefaultValue != nil {
				info.ExpectedTypes[n.DefaultValue] = t
			}
		}
	}

	v.scopes = append(v.scopes, scope)
	return ast.Continue
}

func (v *typeInfoVisitor) Leave(ast.Node) {
	v.scopes = v.scopes[:len(v.scopes)-1]
}

// resolveDefault converts schema.Null into a literal Go nil, matching the
// convention coercion uses for "this default is an explicit null".
func resolveDefault(v interface{}) interface{} {
	if v == schema.Null {
		return nil
	}
	return v
}
