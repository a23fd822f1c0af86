package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkql/brink/parser"
)

func TestSchema(t *testing.T) {
	def := &SchemaDefinition{
		Query: &ObjectType{
			Name: "Query",
			Fields: map[string]*FieldDefinition{
				"foo": {
					Type: IntType,
				},
			},
		},
	}
	s, err := New(def)
	require.NoError(t, err)

	assert.NotNil(t, s.NamedType("Query"))
	assert.NotNil(t, s.NamedType("Int"))

	// The default directives are installed when none are given.
	assert.NotNil(t, s.DirectiveDefinition("skip"))
	assert.NotNil(t, s.DirectiveDefinition("include"))
	assert.NotNil(t, s.DirectiveDefinition("deprecated"))
}

func TestSchema_RequiresQueryType(t *testing.T) {
	_, err := New(&SchemaDefinition{})
	assert.EqualError(t, err, "schemas must define the query operation")
}

func TestSchema_Invariants(t *testing.T) {
	queryWith := func(fieldType Type) *SchemaDefinition {
		return &SchemaDefinition{
			Query: &ObjectType{
				Name: "Query",
				Fields: map[string]*FieldDefinition{
					"f": {Type: fieldType},
				},
			},
		}
	}

	t.Run("DuplicateTypeNames", func(t *testing.T) {
		a := &ObjectType{Name: "Dup", Fields: map[string]*FieldDefinition{"x": {Type: IntType}}}
		b := &ObjectType{Name: "Dup", Fields: map[string]*FieldDefinition{"y": {Type: IntType}}}
		_, err := New(&SchemaDefinition{
			Query: &ObjectType{
				Name: "Query",
				Fields: map[string]*FieldDefinition{
					"a": {Type: a},
					"b": {Type: b},
				},
			},
		})
		assert.EqualError(t, err, "multiple definitions for named type: Dup")
	})

	t.Run("BuiltinOverride", func(t *testing.T) {
		_, err := New(queryWith(&ScalarType{Name: "Int"}))
		assert.EqualError(t, err, "Int builtin may not be overridden")
	})

	t.Run("ObjectNeedsFields", func(t *testing.T) {
		_, err := New(queryWith(&ObjectType{Name: "Empty"}))
		assert.Error(t, err)
	})

	t.Run("EnumValueNames", func(t *testing.T) {
		_, err := New(queryWith(&EnumType{
			Name:   "Bad",
			Values: map[string]*EnumValueDefinition{"null": {}},
		}))
		assert.EqualError(t, err, "illegal enum value: null")
	})

	t.Run("UnionNeedsMembers", func(t *testing.T) {
		_, err := New(queryWith(&UnionType{Name: "Empty"}))
		assert.Error(t, err)
	})

	t.Run("UnionMembersNeedTypeResolution", func(t *testing.T) {
		member := &ObjectType{Name: "Member", Fields: map[string]*FieldDefinition{"x": {Type: IntType}}}
		_, err := New(queryWith(&UnionType{Name: "U", MemberTypes: []*ObjectType{member}}))
		assert.Error(t, err)

		_, err = New(queryWith(&UnionType{
			Name:        "U",
			MemberTypes: []*ObjectType{member},
			ResolveType: func(interface{}) *ObjectType { return member },
		}))
		assert.NoError(t, err)
	})

	t.Run("InputObjectNeedsFields", func(t *testing.T) {
		_, err := New(&SchemaDefinition{
			Query: &ObjectType{
				Name: "Query",
				Fields: map[string]*FieldDefinition{
					"f": {
						Type: IntType,
						Arguments: map[string]*InputValueDefinition{
							"in": {Type: &InputObjectType{Name: "Empty"}},
						},
					},
				},
			},
		})
		assert.Error(t, err)
	})

	t.Run("FieldTypesMustBeOutputTypes", func(t *testing.T) {
		input := &InputObjectType{
			Name:   "In",
			Fields: map[string]*InputValueDefinition{"x": {Type: IntType}},
		}
		_, err := New(queryWith(input))
		assert.Error(t, err)
	})

	t.Run("InterfaceImplementsInterface", func(t *testing.T) {
		nodeIface := &InterfaceType{
			Name: "Node",
			Fields: map[string]*FieldDefinition{
				"id": {Type: NewNonNullType(IDType)},
			},
		}
		resourceIface := &InterfaceType{
			Name: "Resource",
			Fields: map[string]*FieldDefinition{
				"id":  {Type: NewNonNullType(IDType)},
				"url": {Type: StringType},
			},
			ImplementedInterfaces: []*InterfaceType{nodeIface},
		}

		impl := func(interfaces ...*InterfaceType) *ObjectType {
			return &ObjectType{
				Name: "Impl",
				Fields: map[string]*FieldDefinition{
					"id":  {Type: NewNonNullType(IDType)},
					"url": {Type: StringType},
				},
				ImplementedInterfaces: interfaces,
			}
		}

		// Declaring both the interface and its transitive interface is
		// fine; omitting the transitive one is not.
		_, err := New(queryWith(impl(resourceIface, nodeIface)))
		assert.NoError(t, err)
		_, err = New(queryWith(impl(resourceIface)))
		assert.EqualError(t, err, "Impl must also declare that it implements Node")

		// An interface that claims Node without Node's field is invalid.
		_, err = New(queryWith(impl(&InterfaceType{
			Name: "Broken",
			Fields: map[string]*FieldDefinition{
				"url": {Type: StringType},
			},
			ImplementedInterfaces: []*InterfaceType{nodeIface},
		})))
		assert.Error(t, err)

		// A field typed as the implementing interface satisfies one
		// typed as the implemented interface.
		assert.True(t, resourceIface.IsSubTypeOf(nodeIface))
		assert.False(t, nodeIface.IsSubTypeOf(resourceIface))
	})

	t.Run("InputObjectRequiredCycles", func(t *testing.T) {
		queryWithArg := func(argType Type) *SchemaDefinition {
			return &SchemaDefinition{
				Query: &ObjectType{
					Name: "Query",
					Fields: map[string]*FieldDefinition{
						"f": {
							Type: IntType,
							Arguments: map[string]*InputValueDefinition{
								"in": {Type: argType},
							},
						},
					},
				},
			}
		}

		t.Run("SelfCycle", func(t *testing.T) {
			selfCycle := &InputObjectType{Name: "S", Fields: map[string]*InputValueDefinition{}}
			selfCycle.Fields["s"] = &InputValueDefinition{Type: NewNonNullType(selfCycle)}
			_, err := New(queryWithArg(selfCycle))
			assert.EqualError(t, err, "S can never be satisfied: the s field of S closes a cycle of required input object fields")
		})

		t.Run("MutualCycle", func(t *testing.T) {
			a := &InputObjectType{Name: "A", Fields: map[string]*InputValueDefinition{}}
			b := &InputObjectType{Name: "B", Fields: map[string]*InputValueDefinition{
				"a": {Type: NewNonNullType(a)},
			}}
			a.Fields["b"] = &InputValueDefinition{Type: NewNonNullType(b)}
			_, err := New(queryWithArg(a))
			assert.Error(t, err)
		})

		t.Run("NullableFieldBreaksCycle", func(t *testing.T) {
			a := &InputObjectType{Name: "A", Fields: map[string]*InputValueDefinition{}}
			b := &InputObjectType{Name: "B", Fields: map[string]*InputValueDefinition{
				"a": {Type: a},
			}}
			a.Fields["b"] = &InputValueDefinition{Type: NewNonNullType(b)}
			_, err := New(queryWithArg(a))
			assert.NoError(t, err)
		})

		t.Run("ListBreaksCycle", func(t *testing.T) {
			a := &InputObjectType{Name: "A", Fields: map[string]*InputValueDefinition{}}
			a.Fields["children"] = &InputValueDefinition{Type: NewNonNullType(NewListType(NewNonNullType(a)))}
			_, err := New(queryWithArg(a))
			assert.NoError(t, err)
		})
	})

	t.Run("InterfaceSatisfaction", func(t *testing.T) {
		iface := &InterfaceType{
			Name: "Named",
			Fields: map[string]*FieldDefinition{
				"name": {Type: NewNonNullType(StringType)},
			},
		}

		// Missing the interface's field entirely.
		_, err := New(queryWith(&ObjectType{
			Name:                  "Impl",
			Fields:                map[string]*FieldDefinition{"other": {Type: IntType}},
			ImplementedInterfaces: []*InterfaceType{iface},
		}))
		assert.Error(t, err)

		// Covariant field types satisfy: String! is a subtype of String.
		wide := &InterfaceType{
			Name:   "Widened",
			Fields: map[string]*FieldDefinition{"name": {Type: StringType}},
		}
		_, err = New(queryWith(&ObjectType{
			Name:                  "Impl",
			Fields:                map[string]*FieldDefinition{"name": {Type: NewNonNullType(StringType)}},
			ImplementedInterfaces: []*InterfaceType{wide},
		}))
		assert.NoError(t, err)
	})
}

func TestSchema_TypeLoader(t *testing.T) {
	newLoadedType := func() *ObjectType {
		return &ObjectType{
			Name: "Loaded",
			Fields: map[string]*FieldDefinition{
				"x": {Type: IntType},
			},
		}
	}
	queryDef := &ObjectType{
		Name: "Query",
		Fields: map[string]*FieldDefinition{
			"foo": {Type: IntType},
		},
	}

	t.Run("ResolvesOnDemand", func(t *testing.T) {
		loaded := newLoadedType()
		calls := 0
		s, err := New(&SchemaDefinition{
			Query: queryDef,
			TypeLoader: func(name string) NamedType {
				calls++
				if name == "Loaded" {
					return loaded
				}
				return nil
			},
		})
		require.NoError(t, err)

		// Names the construction-time scan found never hit the loader.
		assert.NotNil(t, s.NamedType("Query"))
		assert.NotNil(t, s.NamedType("Int"))
		assert.Zero(t, calls)

		assert.Same(t, loaded, s.NamedType("Loaded"))
		assert.Same(t, loaded, s.NamedType("Loaded"))
		assert.True(t, s.HasNamedType("Loaded"))
		assert.Nil(t, s.NamedType("Missing"))
		assert.False(t, s.HasNamedType("Missing"))

		// Once resolved, loaded types show up in the full type map.
		assert.Same(t, loaded, s.NamedTypes()["Loaded"])
	})

	t.Run("UnstableLoaderPanics", func(t *testing.T) {
		s, err := New(&SchemaDefinition{
			Query: queryDef,
			TypeLoader: func(name string) NamedType {
				return newLoadedType()
			},
		})
		require.NoError(t, err)

		require.NotNil(t, s.NamedType("Loaded"))
		assert.Panics(t, func() { s.NamedType("Loaded") })
	})

	t.Run("LoadedTypesAreValidated", func(t *testing.T) {
		s, err := New(&SchemaDefinition{
			Query: queryDef,
			TypeLoader: func(name string) NamedType {
				return &ObjectType{Name: "Empty"}
			},
		})
		require.NoError(t, err)
		assert.Panics(t, func() { s.NamedType("Empty") })
	})

	t.Run("MisnamedResultPanics", func(t *testing.T) {
		s, err := New(&SchemaDefinition{
			Query: queryDef,
			TypeLoader: func(name string) NamedType {
				return newLoadedType()
			},
		})
		require.NoError(t, err)
		assert.Panics(t, func() { s.NamedType("SomethingElse") })
	})
}

func TestNonNullMayNotWrapNonNull(t *testing.T) {
	assert.Panics(t, func() {
		NewNonNullType(NewNonNullType(IntType))
	})
}

func TestCoercion(t *testing.T) {
	enumType := &EnumType{
		Name: "Shade",
		Values: map[string]*EnumValueDefinition{
			"LIGHT": {},
			"DARK":  {},
		},
	}
	inputType := &InputObjectType{
		Name: "Filter",
		Fields: map[string]*InputValueDefinition{
			"text": {
				Type:         StringType,
				DefaultValue: "default",
			},
			"tags": {
				Type: NewListType(StringType),
			},
			"limit": {
				Type: NewNonNullType(IntType),
			},
			"shade": {
				Type: enumType,
			},
		},
	}

	for name, tc := range map[string]struct {
		JSONInput    string
		LiteralInput string
		Type         Type
		Expected     interface{}
		ExpectError  bool
	}{
		"InputObject": {
			JSONInput:    `{"tags": ["a", null], "limit": 3, "shade": "DARK"}`,
			LiteralInput: `{tags: ["a", null], limit: 3, shade: DARK}`,
			Type:         inputType,
			Expected: map[string]interface{}{
				"text":  "default",
				"tags":  []interface{}{"a", nil},
				"limit": 3,
				"shade": "DARK",
			},
		},
		"MissingRequiredField": {
			JSONInput:    `{"tags": []}`,
			LiteralInput: `{tags: []}`,
			Type:         inputType,
			ExpectError:  true,
		},
		"UnknownField": {
			JSONInput:    `{"limit": 1, "asdf": 1}`,
			LiteralInput: `{limit: 1, asdf: 1}`,
			Type:         inputType,
			ExpectError:  true,
		},
		"ListOfOne": {
			JSONInput:    `1`,
			LiteralInput: `1`,
			Type:         NewListType(IntType),
			Expected:     []interface{}{1},
		},
		"NullToNonNull": {
			JSONInput:    `null`,
			LiteralInput: `null`,
			Type:         NewNonNullType(IntType),
			ExpectError:  true,
		},
		"BadEnumValue": {
			JSONInput:    `"MEDIUM"`,
			LiteralInput: `MEDIUM`,
			Type:         enumType,
			ExpectError:  true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			var jsonValue interface{}
			require.NoError(t, json.Unmarshal([]byte(tc.JSONInput), &jsonValue))
			fromJSON, jsonErr := CoerceVariableValue(jsonValue, tc.Type)

			literal, parseErrs := parser.ParseValue([]byte(tc.LiteralInput))
			require.Empty(t, parseErrs)
			fromLiteral, literalErr := CoerceLiteral(literal, tc.Type, nil)

			if tc.ExpectError {
				assert.Error(t, jsonErr)
				assert.Error(t, literalErr)
				return
			}
			require.NoError(t, jsonErr)
			require.NoError(t, literalErr)

			// Both coercion directions agree, and match the expected
			// value.
			assert.Equal(t, tc.Expected, fromJSON)
			assert.Equal(t, fromJSON, fromLiteral)
		})
	}
}
