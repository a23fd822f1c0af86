package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkql/brink/ast"
)

func TestParseDocument(t *testing.T) {
	doc, errs := ParseDocument([]byte(`
		query q($size: Int = 10, $complex: ComplexInput) {
			user: findUser(id: "u1") @include(if: true) {
				name
				...profileFields
				... on Admin {
					permissions(first: $size)
				}
			}
		}

		fragment profileFields on User {
			avatar(size: [64, 128])
		}
	`))
	require.Empty(t, errs)
	require.Len(t, doc.Definitions, 2)

	op, ok := doc.Definitions[0].(*ast.OperationDefinition)
	require.True(t, ok)
	assert.Equal(t, "q", op.Name.Name)
	require.Len(t, op.VariableDefinitions, 2)
	assert.Equal(t, "size", op.VariableDefinitions[0].Variable.Name.Name)
	assert.Equal(t, "10", op.VariableDefinitions[0].DefaultValue.(*ast.IntValue).Value)
	assert.Nil(t, op.VariableDefinitions[1].DefaultValue)

	field := op.SelectionSet.Selections[0].(*ast.Field)
	assert.Equal(t, "user", field.Alias.Name)
	assert.Equal(t, "findUser", field.Name.Name)
	assert.Equal(t, "user", field.ResponseKey())
	require.Len(t, field.Arguments, 1)
	assert.Equal(t, "u1", field.Arguments[0].Value.(*ast.StringValue).Value)
	require.Len(t, field.Directives, 1)
	assert.Equal(t, "include", field.Directives[0].Name.Name)

	require.Len(t, field.SelectionSet.Selections, 3)
	_, isSpread := field.SelectionSet.Selections[1].(*ast.FragmentSpread)
	assert.True(t, isSpread)
	inline, isInline := field.SelectionSet.Selections[2].(*ast.InlineFragment)
	require.True(t, isInline)
	assert.Equal(t, "Admin", inline.TypeCondition.Name.Name)

	frag, ok := doc.Definitions[1].(*ast.FragmentDefinition)
	require.True(t, ok)
	assert.Equal(t, "profileFields", frag.Name.Name)
	assert.Equal(t, "User", frag.TypeCondition.Name.Name)
	list := frag.SelectionSet.Selections[0].(*ast.Field).Arguments[0].Value.(*ast.ListValue)
	assert.Len(t, list.Values, 2)
}

func TestParseDocument_Types(t *testing.T) {
	doc, errs := ParseDocument([]byte(`query ($a: [Int!]!, $b: String) { f(a: $a, b: $b) }`))
	require.Empty(t, errs)

	op := doc.Definitions[0].(*ast.OperationDefinition)
	nonNullList, ok := op.VariableDefinitions[0].Type.(*ast.NonNullType)
	require.True(t, ok)
	list, ok := nonNullList.Type.(*ast.ListType)
	require.True(t, ok)
	inner, ok := list.Type.(*ast.NonNullType)
	require.True(t, ok)
	assert.Equal(t, "Int", inner.Type.(*ast.NamedType).Name.Name)
}

func TestParseDocument_Positions(t *testing.T) {
	doc, errs := ParseDocument([]byte("{\n  hello\n}"))
	require.Empty(t, errs)

	field := doc.Definitions[0].(*ast.OperationDefinition).SelectionSet.Selections[0].(*ast.Field)
	pos := field.Position()
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 3, pos.Column)
}

func TestParseDocument_SyntaxErrors(t *testing.T) {
	for _, src := range []string{
		`{`,
		`query {foo(}`,
		`fragment F {f}`,
		`{f(x: )}`,
	} {
		doc, errs := ParseDocument([]byte(src))
		assert.NotEmpty(t, errs, src)
		assert.Nil(t, doc, src)
		for _, err := range errs {
			assert.NotEmpty(t, err.Error(), src)
			assert.NotZero(t, err.Position().Line, src)
		}
	}
}

func TestParseValue(t *testing.T) {
	v, errs := ParseValue([]byte(`{name: "x", tags: [A, B], count: 3}`))
	require.Empty(t, errs)
	obj, ok := v.(*ast.ObjectValue)
	require.True(t, ok)
	require.Len(t, obj.Fields, 3)
	assert.Equal(t, "name", obj.Fields[0].Name.Name)
	assert.IsType(t, &ast.ListValue{}, obj.Fields[1].Value)
	assert.IsType(t, &ast.IntValue{}, obj.Fields[2].Value)
}
