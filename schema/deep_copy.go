package schema

import "fmt"

// deepCopySchemaDefinition returns a schema definition where every named
// type (and everything that references one) has been replaced with a fresh
// copy, so that two schemas built from the same definition never alias
// mutable state. Used by test helpers that want to tweak a shared base
// schema definition without affecting other tests.
func deepCopySchemaDefinition(def *SchemaDefinition) *SchemaDefinition {
	newNamedTypes := make(map[string]NamedType)

	Inspect(def, func(node interface{}) bool {
		if node, ok := node.(NamedType); ok {
			if _, ok := newNamedTypes[node.TypeName()]; ok {
				return false
			}
			switch t := node.(type) {
			case *UnionType:
				c := *t
				newNamedTypes[t.Name] = &c
			case *InterfaceType:
				c := *t
				newNamedTypes[t.Name] = &c
			case *InputObjectType:
				c := *t
				newNamedTypes[t.Name] = &c
			case *ObjectType:
				c := *t
				newNamedTypes[t.Name] = &c
			case *EnumType:
				c := *t
				newNamedTypes[t.Name] = &c
			case *ScalarType:
				c := *t
				newNamedTypes[t.Name] = &c
			default:
				panic(fmt.Errorf("schema: unknown named type type: %T", t))
			}
		}
		return true
	})

	for _, t := range newNamedTypes {
		fixNamedTypePointers(t, newNamedTypes)
	}

	ret := &SchemaDefinition{}
	if def.Query != nil {
		ret.Query = newNamedTypes[def.Query.Name].(*ObjectType)
	}
	if def.Mutation != nil {
		ret.Mutation = newNamedTypes[def.Mutation.Name].(*ObjectType)
	}
	if def.Subscription != nil {
		ret.Subscription = newNamedTypes[def.Subscription.Name].(*ObjectType)
	}

	if def.DirectiveDefinitions != nil {
		ret.DirectiveDefinitions = make(map[string]*DirectiveDefinition, len(def.DirectiveDefinitions))
		for k, v := range def.DirectiveDefinitions {
			c := *v
			fixNamedTypePointers(&c, newNamedTypes)
			ret.DirectiveDefinitions[k] = &c
		}
	}

	if def.AdditionalTypes != nil {
		ret.AdditionalTypes = make([]NamedType, len(def.AdditionalTypes))
		for i, v := range def.AdditionalTypes {
			ret.AdditionalTypes[i] = newNamedTypes[v.TypeName()]
		}
	}

	return ret
}

func fixTypePointer(t Type, namedTypes map[string]NamedType) Type {
	t = Resolve(t)
	switch t := t.(type) {
	case NamedType:
		if _, ok := BuiltInTypes[t.TypeName()]; ok {
			return t
		} else if ret, ok := namedTypes[t.TypeName()]; ok {
			return ret
		}
		return t
	case *NonNullType:
		return NewNonNullType(fixTypePointer(t.Unwrap(), namedTypes))
	case *ListType:
		return NewListType(fixTypePointer(t.Unwrap(), namedTypes))
	default:
		panic(fmt.Errorf("schema: unknown type: %T", t))
	}
}

// fixNamedTypePointers updates node's references to other named types so
// they point into namedTypes instead of the originals. It does not recurse
// into descendant named types, only the immediate structure of node.
func fixNamedTypePointers(node interface{}, namedTypes map[string]NamedType) {
	switch n := node.(type) {
	case *UnionType:
		if n.MemberTypes != nil {
			newValues := make([]*ObjectType, len(n.MemberTypes))
			for i, v := range n.MemberTypes {
				if nv, ok := namedTypes[v.Name].(*ObjectType); ok {
					newValues[i] = nv
				} else {
					newValues[i] = v
				}
			}
			n.MemberTypes = newValues
		}
	case *InterfaceType:
		if n.Fields != nil {
			newValues := make(map[string]*FieldDefinition, len(n.Fields))
			for k, v := range n.Fields {
				c := *v
				fixNamedTypePointers(&c, namedTypes)
				newValues[k] = &c
			}
			n.Fields = newValues
		}
		if n.ImplementedInterfaces != nil {
			newValues := make([]*InterfaceType, len(n.ImplementedInterfaces))
			for i, v := range n.ImplementedInterfaces {
				if nv, ok := namedTypes[v.Name].(*InterfaceType); ok {
					newValues[i] = nv
				} else {
					newValues[i] = v
				}
			}
			n.ImplementedInterfaces = newValues
		}
	case *InputObjectType:
		if n.Fields != nil {
			newValues := make(map[string]*InputValueDefinition, len(n.Fields))
			for k, v := range n.Fields {
				c := *v
				fixNamedTypePointers(&c, namedTypes)
				newValues[k] = &c
			}
			n.Fields = newValues
		}
	case *ObjectType:
		if n.Fields != nil {
			newValues := make(map[string]*FieldDefinition, len(n.Fields))
			for k, v := range n.Fields {
				c := *v
				fixNamedTypePointers(&c, namedTypes)
				newValues[k] = &c
			}
			n.Fields = newValues
		}
		if n.ImplementedInterfaces != nil {
			newValues := make([]*InterfaceType, len(n.ImplementedInterfaces))
			for i, v := range n.ImplementedInterfaces {
				if nv, ok := namedTypes[v.Name].(*InterfaceType); ok {
					newValues[i] = nv
				} else {
					newValues[i] = v
				}
			}
			n.ImplementedInterfaces = newValues
		}
	case *FieldDefinition:
		n.Type = fixTypePointer(n.Type, namedTypes)
		if n.Arguments != nil {
			newValues := make(map[string]*InputValueDefinition, len(n.Arguments))
			for k, v := range n.Arguments {
				c := *v
				fixNamedTypePointers(&c, namedTypes)
				newValues[k] = &c
			}
			n.Arguments = newValues
		}
	case *InputValueDefinition:
		n.Type = fixTypePointer(n.Type, namedTypes)
	case *DirectiveDefinition:
		if n.Arguments != nil {
			newValues := make(map[string]*InputValueDefinition, len(n.Arguments))
			for k, v := range n.Arguments {
				c := *v
				fixNamedTypePointers(&c, namedTypes)
				newValues[k] = &c
			}
			n.Arguments = newValues
		}
	case *EnumType:
		// no outgoing named-type references
	case *ScalarType:
		// no outgoing named-type references
	default:
		panic(fmt.Errorf("schema: unexpected node type: %T", n))
	}
}
