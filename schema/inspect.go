package schema

import (
	"fmt"
	"reflect"
)

// Inspect traverses the types referenced by the schema, invoking f for
// each one. If f returns true, Inspect recursively inspects the types
// referenced by that node. Many schemas are cyclic, so f must be able to
// break cycles (schema.New does this by tracking which named types it has
// already visited).
func Inspect(node interface{}, f func(interface{}) bool) {
	if node == nil || reflect.ValueOf(node).IsNil() {
		return
	}
	if t, ok := node.(Type); ok {
		node = Resolve(t)
	}
	if !f(node) {
		return
	}

	switch n := node.(type) {
	case *SchemaDefinition:
		Inspect(n.Query, f)
		Inspect(n.Mutation, f)
		Inspect(n.Subscription, f)
		for _, node := range n.AdditionalTypes {
			Inspect(node, f)
		}
		for _, node := range n.DirectiveDefinitions {
			Inspect(node, f)
		}
	case *UnionType:
		for _, node := range n.MemberTypes {
			Inspect(node, f)
		}
	case *InterfaceType:
		for _, node := range n.Fields {
			Inspect(node, f)
		}
		for _, node := range n.ImplementedInterfaces {
			Inspect(node, f)
		}
	case *InputObjectType:
		for _, node := range n.Fields {
			Inspect(node, f)
		}
	case *ObjectType:
		for _, node := range n.Fields {
			Inspect(node, f)
		}
		for _, node := range n.ImplementedInterfaces {
			Inspect(node, f)
		}
	case *FieldDefinition:
		Inspect(n.Type, f)
		for _, node := range n.Arguments {
			Inspect(node, f)
		}
	case *InputValueDefinition:
		Inspect(n.Type, f)
	case *Directive:
		Inspect(n.Definition, f)
	case *DirectiveDefinition:
		for _, node := range n.Arguments {
			Inspect(node, f)
		}
	case *ListType:
		Inspect(n.Type, f)
	case *NonNullType:
		Inspect(n.Type, f)
	case *EnumType:
		// leaf named type, no further references
	case *ScalarType:
		// leaf named type, no further references
	default:
		panic(fmt.Errorf("schema: unknown node type: %T", n))
	}

	f(nil)
}
