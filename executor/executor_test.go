package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkql/brink/parser"
	"github.com/brinkql/brink/schema"
)

type pet interface {
	petNickname() string
}

type dog struct {
	Nickname   string
	BarkVolume int
}

func (d dog) petNickname() string { return d.Nickname }

type cat struct {
	Nickname   string
	MeowVolume int
}

func (c cat) petNickname() string { return c.Nickname }

var petInterface = &schema.InterfaceType{
	Name: "Pet",
	Fields: map[string]*schema.FieldDefinition{
		"nickname": {
			Type: schema.StringType,
			Resolve: func(ctx schema.FieldContext) (interface{}, error) {
				return ctx.Object.(pet).petNickname(), nil
			},
		},
	},
}

var dogType = &schema.ObjectType{
	Name: "Dog",
	Fields: map[string]*schema.FieldDefinition{
		"nickname": {
			Type: schema.StringType,
			Resolve: func(ctx schema.FieldContext) (interface{}, error) {
				return ctx.Object.(dog).Nickname, nil
			},
		},
		"barkVolume": {
			Type: schema.IntType,
			Resolve: func(ctx schema.FieldContext) (interface{}, error) {
				return ctx.Object.(dog).BarkVolume, nil
			},
		},
	},
	ImplementedInterfaces: []*schema.InterfaceType{petInterface},
	IsTypeOf: func(v interface{}) bool {
		_, ok := v.(dog)
		return ok
	},
}

var catType = &schema.ObjectType{
	Name: "Cat",
	Fields: map[string]*schema.FieldDefinition{
		"nickname": {
			Type: schema.StringType,
			Resolve: func(ctx schema.FieldContext) (interface{}, error) {
				return ctx.Object.(cat).Nickname, nil
			},
		},
		"meowVolume": {
			Type: schema.IntType,
			Resolve: func(ctx schema.FieldContext) (interface{}, error) {
				return ctx.Object.(cat).MeowVolume, nil
			},
		},
	},
	ImplementedInterfaces: []*schema.InterfaceType{petInterface},
	IsTypeOf: func(v interface{}) bool {
		_, ok := v.(cat)
		return ok
	},
}

var catOrDogType = &schema.UnionType{
	Name:        "CatOrDog",
	MemberTypes: []*schema.ObjectType{catType, dogType},
}

func testSchema(t *testing.T) *schema.Schema {
	s, err := schema.New(&schema.SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"hello": {
					Type: schema.StringType,
					Resolve: func(schema.FieldContext) (interface{}, error) {
						return "world", nil
					},
				},
				"echo": {
					Type: schema.StringType,
					Arguments: map[string]*schema.InputValueDefinition{
						"s": {Type: schema.NewNonNullType(schema.StringType)},
					},
					Resolve: func(ctx schema.FieldContext) (interface{}, error) {
						return ctx.Arguments["s"], nil
					},
				},
				"pet": {
					Type: petInterface,
					Resolve: func(schema.FieldContext) (interface{}, error) {
						return dog{Nickname: "Rex", BarkVolume: 8}, nil
					},
				},
				"catOrDog": {
					Type: catOrDogType,
					Resolve: func(schema.FieldContext) (interface{}, error) {
						return cat{Nickname: "Mits", MeowVolume: 3}, nil
					},
				},
				"matrix": {
					Type: schema.NewListType(schema.NewListType(schema.IntType)),
					Resolve: func(schema.FieldContext) (interface{}, error) {
						return [][]int{{1, 2}, {3}}, nil
					},
				},
				"boom": {
					Type: schema.StringType,
					Resolve: func(schema.FieldContext) (interface{}, error) {
						return nil, errors.New("resolver exploded")
					},
				},
				"lookAhead": {
					Type: dogType,
					Resolve: func(ctx schema.FieldContext) (interface{}, error) {
						info := ctx.ResolveInfo.(*ResolveInfo)
						if !info.LookAhead() {
							return nil, errors.New("expected sub-selections")
						}
						return dog{Nickname: "Rex"}, nil
					},
				},
			},
		},
	})
	require.NoError(t, err)
	return s
}

func execute(t *testing.T, src string, variableValues map[string]interface{}) (*OrderedMap, []*Error) {
	doc, parseErrs := parser.ParseDocument([]byte(src))
	require.Empty(t, parseErrs)
	return ExecuteRequest(context.Background(), &Request{
		Schema:         testSchema(t),
		Document:       doc,
		VariableValues: variableValues,
	})
}

func TestExecuteRequest_Aliases(t *testing.T) {
	data, errs := execute(t, `{a: hello b: hello}`, nil)
	require.Empty(t, errs)
	assert.Equal(t, []string{"a", "b"}, data.Keys())
	a, _ := data.Get("a")
	assert.Equal(t, "world", a)
}

func TestExecuteRequest_Arguments(t *testing.T) {
	data, errs := execute(t, `query ($v: String!) {echo(s: $v)}`, map[string]interface{}{"v": "hi"})
	require.Empty(t, errs)
	v, _ := data.Get("echo")
	assert.Equal(t, "hi", v)
}

func TestExecuteRequest_VariableCoercionErrors(t *testing.T) {
	data, errs := execute(t, `query ($v: String!) {echo(s: $v)}`, nil)
	assert.Nil(t, data)
	require.Len(t, errs, 1)
	assert.NotEmpty(t, errs[0].Message)
}

func TestExecuteRequest_SkipAndInclude(t *testing.T) {
	for src, expectedKeys := range map[string][]string{
		`{hello @skip(if: true)}`:                       {},
		`{hello @skip(if: false)}`:                      {"hello"},
		`{hello @include(if: false)}`:                   {},
		`query ($t: Boolean!) {hello @include(if: $t)}`: {"hello"},
		`{... on Query @skip(if: true) {hello}}`:        {},
	} {
		data, errs := execute(t, src, map[string]interface{}{"t": true})
		require.Empty(t, errs, src)
		assert.Equal(t, expectedKeys, data.Keys(), src)
	}
}

func TestExecuteRequest_AbstractTypes(t *testing.T) {
	t.Run("Interface", func(t *testing.T) {
		data, errs := execute(t, `{pet {nickname __typename ... on Dog {barkVolume}}}`, nil)
		require.Empty(t, errs)
		petValue, _ := data.Get("pet")
		m := petValue.(*OrderedMap)
		nickname, _ := m.Get("nickname")
		typename, _ := m.Get("__typename")
		barkVolume, _ := m.Get("barkVolume")
		assert.Equal(t, "Rex", nickname)
		assert.Equal(t, "Dog", typename)
		assert.Equal(t, 8, barkVolume)
	})

	t.Run("Union", func(t *testing.T) {
		data, errs := execute(t, `{catOrDog {... on Cat {meowVolume} ... on Dog {barkVolume}}}`, nil)
		require.Empty(t, errs)
		v, _ := data.Get("catOrDog")
		m := v.(*OrderedMap)
		meowVolume, ok := m.Get("meowVolume")
		require.True(t, ok)
		assert.Equal(t, 3, meowVolume)
		_, ok = m.Get("barkVolume")
		assert.False(t, ok)
	})
}

func TestExecuteRequest_NestedLists(t *testing.T) {
	data, errs := execute(t, `{matrix}`, nil)
	require.Empty(t, errs)
	v, _ := data.Get("matrix")
	assert.Equal(t, []interface{}{
		[]interface{}{1, 2},
		[]interface{}{3},
	}, v)
}

func TestExecuteRequest_ResolverErrors(t *testing.T) {
	data, errs := execute(t, "{\n  boom\n  hello\n}", nil)
	require.NotNil(t, data)

	// The failing field nulls out; its sibling is unaffected.
	boom, ok := data.Get("boom")
	require.True(t, ok)
	assert.Nil(t, boom)
	hello, _ := data.Get("hello")
	assert.Equal(t, "world", hello)

	require.Len(t, errs, 1)
	assert.Equal(t, "resolver exploded", errs[0].Message)
	assert.Equal(t, []interface{}{"boom"}, errs[0].Path)
	require.Len(t, errs[0].Locations, 1)
	assert.Equal(t, 2, errs[0].Locations[0].Line)
	assert.True(t, errs[0].IsClientSafe)

	// The resolver's error is preserved as the cause.
	assert.EqualError(t, errs[0].Unwrap(), "resolver exploded")
}

func TestExecuteRequest_Introspection(t *testing.T) {
	data, errs := execute(t, `{__schema {queryType {name}} __type(name: "Dog") {kind name}}`, nil)
	require.Empty(t, errs)

	schemaValue, _ := data.Get("__schema")
	queryType, _ := schemaValue.(*OrderedMap).Get("queryType")
	name, _ := queryType.(*OrderedMap).Get("name")
	assert.Equal(t, "Query", name)

	typeValue, _ := data.Get("__type")
	kind, _ := typeValue.(*OrderedMap).Get("kind")
	assert.Equal(t, "OBJECT", kind)
}

func TestExecuteRequest_ResolveInfo(t *testing.T) {
	data, errs := execute(t, `{lookAhead {nickname barkVolume}}`, nil)
	require.Empty(t, errs)
	v, _ := data.Get("lookAhead")
	assert.NotNil(t, v)
}

func TestGetOperation(t *testing.T) {
	doc, parseErrs := parser.ParseDocument([]byte(`query a {hello} query b {hello}`))
	require.Empty(t, parseErrs)

	op, err := GetOperation(doc, "b")
	require.Nil(t, err)
	assert.Equal(t, "b", op.Name.Name)

	_, err = GetOperation(doc, "")
	require.NotNil(t, err)
	assert.Equal(t, "Multiple matching operations.", err.Message)

	_, err = GetOperation(doc, "c")
	require.NotNil(t, err)
	assert.Equal(t, "No matching operations.", err.Message)
}

func TestGetFieldSelection(t *testing.T) {
	doc, parseErrs := parser.ParseDocument([]byte(`{pet {nickname ... on Dog {barkVolume}}}`))
	require.Empty(t, parseErrs)

	var keys []string
	s, err := schema.New(&schema.SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"pet": {
					Type: petInterface,
					Resolve: func(ctx schema.FieldContext) (interface{}, error) {
						keys = ctx.ResolveInfo.(*ResolveInfo).GetFieldSelection(1)
						return dog{Nickname: "Rex"}, nil
					},
				},
			},
		},
		AdditionalTypes: []schema.NamedType{dogType},
	})
	require.NoError(t, err)

	_, errs := ExecuteRequest(context.Background(), &Request{Schema: s, Document: doc})
	require.Empty(t, errs)
	assert.Equal(t, []string{"nickname", "barkVolume"}, keys)
}
