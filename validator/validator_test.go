package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkql/brink/parser"
	"github.com/brinkql/brink/schema"
)

var petType = &schema.InterfaceType{
	Name: "Pet",
	Fields: map[string]*schema.FieldDefinition{
		"nickname": {
			Type: schema.StringType,
		},
	},
}

var dogType = &schema.ObjectType{
	Name: "Dog",
	Fields: map[string]*schema.FieldDefinition{
		"nickname": {
			Type: schema.StringType,
		},
		"barkVolume": {
			Type: schema.IntType,
		},
	},
	ImplementedInterfaces: []*schema.InterfaceType{petType},
	IsTypeOf:              func(interface{}) bool { return false },
}

var catType = &schema.ObjectType{
	Name: "Cat",
	Fields: map[string]*schema.FieldDefinition{
		"nickname": {
			Type: schema.StringType,
		},
		"meowVolume": {
			Type: schema.IntType,
		},
	},
	ImplementedInterfaces: []*schema.InterfaceType{petType},
	IsTypeOf:              func(interface{}) bool { return false },
}

var catOrDogType = &schema.UnionType{
	Name:        "CatOrDog",
	MemberTypes: []*schema.ObjectType{catType, dogType},
}

var fooBarEnumType = &schema.EnumType{
	Name: "FooBarEnum",
	Values: map[string]*schema.EnumValueDefinition{
		"FOO": {},
		"BAR": {},
	},
}

var complexInputType = &schema.InputObjectType{
	Name: "ComplexInput",
	Fields: map[string]*schema.InputValueDefinition{
		"name": {
			Type: schema.StringType,
		},
		"owner": {
			Type: schema.StringType,
		},
	},
}

var objectType = &schema.ObjectType{
	Name: "Object",
}

func init() {
	objectType.Fields = map[string]*schema.FieldDefinition{
		"scalar": {
			Type: schema.StringType,
		},
		"int": {
			Type: schema.IntType,
		},
		"int2": {
			Type: schema.IntType,
		},
		"freeBoolean": {
			Type: schema.BooleanType,
			Cost: schema.FieldResolverCost(0),
		},
		"booleanArgField": {
			Type: schema.BooleanType,
			Arguments: map[string]*schema.InputValueDefinition{
				"booleanArg": {
					Type: schema.BooleanType,
				},
			},
		},
		"intArgField": {
			Type: schema.IntType,
			Arguments: map[string]*schema.InputValueDefinition{
				"intArg": {
					Type: schema.IntType,
				},
			},
		},
		"requiredArgField": {
			Type: schema.IntType,
			Arguments: map[string]*schema.InputValueDefinition{
				"intArg": {
					Type: schema.NewNonNullType(schema.IntType),
				},
			},
		},
		"enumArgField": {
			Type: fooBarEnumType,
			Arguments: map[string]*schema.InputValueDefinition{
				"enumArg": {
					Type: fooBarEnumType,
				},
			},
		},
		"findDog": {
			Type: dogType,
			Arguments: map[string]*schema.InputValueDefinition{
				"complex": {
					Type: complexInputType,
				},
			},
		},
		"pet": {
			Type: petType,
		},
		"dog": {
			Type: dogType,
		},
		"cat": {
			Type: catType,
		},
		"catOrDog": {
			Type: catOrDogType,
		},
		"object": {
			Type: objectType,
		},
		"objects": {
			Type: schema.NewListType(objectType),
			Arguments: map[string]*schema.InputValueDefinition{
				"first": {
					Type: schema.IntType,
				},
			},
			Cost: func(ctx schema.FieldCostContext) schema.FieldCost {
				first, _ := ctx.Arguments["first"].(int)
				return schema.FieldCost{
					Resolver:   1,
					Multiplier: first,
				}
			},
		},
		"costFromArg": {
			Type: schema.IntType,
			Arguments: map[string]*schema.InputValueDefinition{
				"cost": {
					Type:         schema.IntType,
					DefaultValue: 10,
				},
			},
			Cost: func(ctx schema.FieldCostContext) schema.FieldCost {
				cost, _ := ctx.Arguments["cost"].(int)
				return schema.FieldCost{
					Resolver: cost,
				}
			},
		},
	}
}

func testSchema(t *testing.T) *schema.Schema {
	s, err := schema.New(&schema.SchemaDefinition{
		Query:        objectType,
		Subscription: objectType,
	})
	require.NoError(t, err)
	return s
}

func validateSource(t *testing.T, src string) []*Error {
	return validateSourceWithRules(t, src, nil)
}

func validateSourceWithRules(t *testing.T, src string, rules []Rule) []*Error {
	doc, parseErrs := parser.ParseDocument([]byte(src))
	require.Empty(t, parseErrs)
	require.NotNil(t, doc)

	errs := ValidateDocument(doc, testSchema(t), rules)
	for _, err := range errs {
		assert.NotEmpty(t, err.Message)
		assert.NotEmpty(t, err.Locations)
	}
	return errs
}

func TestValidateDocument_ErrorIndependence(t *testing.T) {
	// Two unrelated mistakes surface as two errors: no rule suppresses
	// another's findings.
	errs := validateSource(t, `{asdf} query q {scalar} query q {scalar}`)
	assert.GreaterOrEqual(t, len(errs), 2)
}

func TestValidateDocument_EmptyRulesDisablesValidation(t *testing.T) {
	assert.Empty(t, validateSourceWithRules(t, `{asdf}`, []Rule{}))
}

func TestValidateDocument_Introspection(t *testing.T) {
	assert.Empty(t, validateSource(t, `{__typename __schema {queryType {name}} __type(name: "Object") {name}}`))
}
