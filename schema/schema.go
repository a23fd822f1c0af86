// Package schema implements the GraphQL type system: named and wrapped
// types, schema construction and validation, and bidirectional value
// coercion between the wire/AST representation and Go values.
package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/brinkql/brink/ast"
)

// Schema is an executable, immutable GraphQL schema.
type Schema struct {
	directiveDefinitions     map[string]*DirectiveDefinition
	namedTypes               map[string]NamedType
	interfaceImplementations map[string][]*ObjectType

	typeLoader  func(name string) NamedType
	loadedTypes map[string]NamedType

	query        *ObjectType
	mutation     *ObjectType
	subscription *ObjectType
}

func (s *Schema) QueryType() *ObjectType {
	return s.query
}

func (s *Schema) MutationType() *ObjectType {
	return s.mutation
}

func (s *Schema) SubscriptionType() *ObjectType {
	return s.subscription
}

func (s *Schema) DirectiveDefinition(name string) *DirectiveDefinition {
	return s.directiveDefinitions[name]
}

// DirectiveDefinitions returns every directive definition known to the
// schema, keyed by name.
func (s *Schema) DirectiveDefinitions() map[string]*DirectiveDefinition {
	return s.directiveDefinitions
}

// NamedType returns the named type registered under name. Names that the
// construction-time scan didn't reach are resolved through the schema's
// type loader, if one was given; each loaded type is validated and cached
// on first resolution. A loader that later returns a different instance
// for the same name is a configuration bug and panics, as does one whose
// result's name doesn't match the name asked for.
func (s *Schema) NamedType(name string) NamedType {
	if t, ok := s.namedTypes[name]; ok {
		return t
	}
	if s.typeLoader == nil {
		return nil
	}
	t := s.typeLoader(name)
	if t == nil {
		return nil
	}
	if cached, ok := s.loadedTypes[name]; ok {
		if cached != t {
			panic(fmt.Sprintf("schema: the type loader returned a new instance of %v; loader results must be stable", name))
		}
		return cached
	}
	if t.TypeName() != name {
		panic(fmt.Sprintf("schema: the type loader resolved %v to a type named %v", name, t.TypeName()))
	}
	if v, ok := t.(interface{ shallowValidate() error }); ok {
		if err := v.shallowValidate(); err != nil {
			panic(fmt.Sprintf("schema: the type loader resolved %v to an invalid type: %v", name, err))
		}
	}
	s.loadedTypes[name] = t
	if obj, ok := t.(*ObjectType); ok {
		for _, iface := range obj.ImplementedInterfaces {
			s.interfaceImplementations[iface.Name] = append(s.interfaceImplementations[iface.Name], obj)
		}
	}
	return t
}

// HasNamedType reports whether name resolves to a type, consulting the
// type loader if one is configured.
func (s *Schema) HasNamedType(name string) bool {
	return s.NamedType(name) != nil
}

// NamedTypes returns every named type known to the schema, including
// built-ins, keyed by name. When a type loader is configured, loaded
// types appear once they've been resolved through NamedType; the loader's
// full universe isn't enumerable up front.
func (s *Schema) NamedTypes() map[string]NamedType {
	if len(s.loadedTypes) == 0 {
		return s.namedTypes
	}
	ret := make(map[string]NamedType, len(s.namedTypes)+len(s.loadedTypes))
	for k, v := range s.namedTypes {
		ret[k] = v
	}
	for k, v := range s.loadedTypes {
		ret[k] = v
	}
	return ret
}

func (s *Schema) InterfaceImplementations(name string) []*ObjectType {
	return s.interfaceImplementations[name]
}

var nameRegex = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

func isName(s string) bool {
	return nameRegex.MatchString(s)
}

// New validates def and builds an executable Schema from it. Validation is
// "shallow": each type and field is checked locally (names, wrapping
// rules, interface satisfaction) without attempting to execute anything.
func New(def *SchemaDefinition) (*Schema, error) {
	directiveDefinitions := def.DirectiveDefinitions
	if directiveDefinitions == nil {
		directiveDefinitions = map[string]*DirectiveDefinition{
			"skip":       SkipDirective,
			"include":    IncludeDirective,
			"deprecated": DeprecatedDirective,
		}
	}

	var err error
	schema := &Schema{
		directiveDefinitions:     directiveDefinitions,
		namedTypes:               map[string]NamedType{},
		interfaceImplementations: map[string][]*ObjectType{},
		typeLoader:               def.TypeLoader,
		loadedTypes:              map[string]NamedType{},
		query:                    def.Query,
		mutation:                 def.Mutation,
		subscription:             def.Subscription,
	}

	if schema.query == nil {
		return nil, fmt.Errorf("schemas must define the query operation")
	}

	for name := range directiveDefinitions {
		if !isName(name) || strings.HasPrefix(name, "__") {
			return nil, fmt.Errorf("illegal directive name: %v", name)
		}
	}

	for name, builtin := range BuiltInTypes {
		schema.namedTypes[name] = builtin
	}

	visit := func(node interface{}) bool {
		if err != nil {
			return false
		}

		if namedType, ok := node.(NamedType); ok {
			name := namedType.TypeName()
			if !isName(name) || strings.HasPrefix(name, "__") {
				err = fmt.Errorf("illegal type name: %v", name)
				return false
			}
			if existing, ok := schema.namedTypes[name]; ok {
				if existing != namedType {
					if _, isBuiltin := BuiltInTypes[name]; isBuiltin {
						err = fmt.Errorf("%v builtin may not be overridden", name)
					} else {
						err = fmt.Errorf("multiple definitions for named type: %v", name)
					}
				}
				return false // already visited (or rejected)
			}
			schema.namedTypes[name] = namedType
		}

		if obj, ok := node.(*ObjectType); ok {
			for _, iface := range obj.ImplementedInterfaces {
				schema.interfaceImplementations[iface.Name] = append(schema.interfaceImplementations[iface.Name], obj)
			}
		}

		if err == nil {
			if n, ok := node.(interface{ shallowValidate() error }); ok {
				err = n.shallowValidate()
			}
		}

		return err == nil
	}
	Inspect(def, visit)
	for _, d := range directiveDefinitions {
		Inspect(d, visit)
	}

	if err != nil {
		return nil, err
	}
	return schema, nil
}

// SchemaDefinition describes a schema prior to validation.
type SchemaDefinition struct {
	DirectiveDefinitions map[string]*DirectiveDefinition

	Query        *ObjectType
	Mutation     *ObjectType
	Subscription *ObjectType

	// AdditionalTypes registers otherwise-unreferenced types (e.g. union
	// members only reachable via an interface) so they appear in
	// introspection.
	AdditionalTypes []NamedType

	// TypeLoader, if given, resolves named types on demand: lookups for
	// names the construction-time scan didn't reach go through it, and
	// its results are validated and cached on first resolution. The
	// loader must be stable — returning a different instance for a
	// previously resolved name panics.
	TypeLoader func(name string) NamedType
}

type Argument struct {
	Name  string
	Value interface{}
}

// Type is implemented by every member of the type system: named types and
// the List/NonNull wrapping types.
type Type interface {
	String() string
	IsInputType() bool
	IsOutputType() bool
	IsSubTypeOf(Type) bool
	IsSameType(Type) bool
}

// NamedType is a Type with a name: object, interface, union, enum, scalar,
// or input object.
type NamedType interface {
	Type
	TypeName() string
}

// WrappedType is a Type that wraps another: List or NonNull.
type WrappedType interface {
	Type
	Unwrap() Type
}

// UnwrappedType strips all List/NonNull wrapping from t, returning the
// underlying named type.
func UnwrappedType(t Type) NamedType {
	t = Resolve(t)
	for {
		if wrapped, ok := t.(WrappedType); ok {
			t = Resolve(wrapped.Unwrap())
		} else {
			break
		}
	}
	if t != nil {
		return t.(NamedType)
	}
	return nil
}

// CoerceVariableValue coerces a decoded JSON (or host-supplied) value
// against t, per the GraphQL "Coercing Variable Values" algorithm.
func CoerceVariableValue(value interface{}, t Type) (interface{}, error) {
	return coerceVariableValue(value, t, true)
}

func coerceVariableValue(value interface{}, t Type, allowItemToListCoercion bool) (interface{}, error) {
	t = Resolve(t)
	if value == nil {
		if IsNonNullType(t) {
			return nil, fmt.Errorf("a value is required")
		}
		return nil, nil
	}

	switch t := t.(type) {
	case *ScalarType:
		return t.CoerceVariableValue(value)
	case *EnumType:
		return t.CoerceVariableValue(value)
	case *InputObjectType:
		return t.CoerceVariableValue(value)
	case *ListType:
		return t.coerceVariableValue(value, allowItemToListCoercion)
	case *NonNullType:
		return CoerceVariableValue(value, t.Type)
	default:
		panic("unexpected variable coercion type")
	}
}

// CoerceLiteral coerces an AST literal (a default value or inline argument
// value) against t, per the GraphQL "Coercing Literals" algorithm. Variable
// references are resolved against variableValues.
func CoerceLiteral(from ast.Value, to Type, variableValues map[string]interface{}) (interface{}, error) {
	return coerceLiteral(from, to, variableValues, true)
}

func coerceLiteral(from ast.Value, to Type, variableValues map[string]interface{}, allowItemToListCoercion bool) (interface{}, error) {
	to = Resolve(to)
	if ast.IsNullValue(from) {
		if IsNonNullType(to) {
			return nil, fmt.Errorf("cannot coerce null to non-null type")
		}
		return nil, nil
	} else if variable, ok := from.(*ast.Variable); ok {
		if value, ok := variableValues[variable.Name.Name]; ok {
			if value == nil && IsNonNullType(to) {
				return nil, fmt.Errorf("a value is required")
			}
			return value, nil
		}
		if IsNonNullType(to) {
			return nil, fmt.Errorf("a value is required")
		}
		return nil, nil
	}

	switch to := to.(type) {
	case *ScalarType:
		if v := to.LiteralCoercion(from); v != nil {
			return v, nil
		}
		return nil, fmt.Errorf("cannot coerce to %v", to)
	case *ListType:
		return to.coerceLiteral(from, variableValues, allowItemToListCoercion)
	case *InputObjectType:
		if v, ok := from.(*ast.ObjectValue); ok {
			return to.CoerceLiteral(v, variableValues)
		}
		return nil, fmt.Errorf("cannot coerce to %v", to)
	case *EnumType:
		return to.CoerceLiteral(from)
	case *NonNullType:
		return CoerceLiteral(from, to.Type, variableValues)
	}

	panic("unsupported literal coercion type")
}

// CoerceResult coerces a resolver's return value into a JSON-serializable
// representation, per the GraphQL "Coercing Results" rules used by the
// executor's completion algorithm for leaf types.
func CoerceResult(value interface{}, t Type) (interface{}, error) {
	t = Resolve(t)
	switch t := t.(type) {
	case *ScalarType:
		return t.CoerceResult(value)
	case *EnumType:
		return t.CoerceResult(value)
	default:
		panic("unexpected result coercion type")
	}
}
