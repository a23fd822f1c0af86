package schema

import (
	"context"
	"fmt"
	"strings"
)

// FieldContext contains the context passed to resolver implementations.
type FieldContext struct {
	Context   context.Context
	Schema    *Schema
	Object    interface{}
	Arguments map[string]interface{}

	// IsSubscribe is true if this is a subscription root field being
	// invoked for a subscribe operation. Sub-selections of this field are
	// not executed; the return value is handed directly back to the
	// caller of Subscribe.
	IsSubscribe bool

	// ResolveInfo exposes AST-level context (the field's selection set,
	// its path, a peek at sibling/child selections) to resolvers that need
	// it for batching or look-ahead optimizations. It's set by the
	// executor and is nil for any other caller.
	ResolveInfo interface{}
}

// FieldCost describes the cost of resolving a field, enabling query
// complexity limiting.
type FieldCost struct {
	// Context, if non-nil, is passed on to sub-selections of this field.
	Context context.Context

	// Resolver is the cost of executing the resolver itself. Typically 1.
	Resolver int

	// Multiplier applies to all sub-selections of this field. For fields
	// that return lists, this is typically the expected number of results
	// (e.g. the "first"/"last" argument of a connection field). Defaults
	// to 1 when unset.
	Multiplier int
}

// FieldResolverCost returns a cost function with a constant resolver cost
// and no multiplier.
func FieldResolverCost(n int) func(FieldCostContext) FieldCost {
	return func(FieldCostContext) FieldCost {
		return FieldCost{Resolver: n}
	}
}

// FieldCostContext contains the context passed to field cost functions.
type FieldCostContext struct {
	Context   context.Context
	Arguments map[string]interface{}
}

// FieldDefinition defines an object or interface field.
type FieldDefinition struct {
	Description       string
	Arguments         map[string]*InputValueDefinition
	Type              Type
	Directives        []*Directive
	DeprecationReason string

	// Cost, if given, computes the cost of resolving this field so total
	// operation cost can be calculated before execution.
	Cost func(FieldCostContext) FieldCost

	Resolve func(FieldContext) (interface{}, error)
}

func (d *FieldDefinition) shallowValidate() error {
	if d.Type == nil {
		return fmt.Errorf("field is missing type")
	} else if !d.Type.IsOutputType() {
		return fmt.Errorf("%v cannot be used as a field type", d.Type)
	}
	for name := range d.Arguments {
		if !isName(name) || strings.HasPrefix(name, "__") {
			return fmt.Errorf("illegal field argument name: %v", name)
		}
	}
	return nil
}
