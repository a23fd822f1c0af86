package gqlengine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/deferred"
	"github.com/brinkql/brink/executor"
	"github.com/brinkql/brink/gqlengine"
	"github.com/brinkql/brink/parser"
	"github.com/brinkql/brink/schema"
)

func mustSchema(t *testing.T, def *schema.SchemaDefinition) *schema.Schema {
	s, err := schema.New(def)
	require.NoError(t, err)
	return s
}

func mustParse(t *testing.T, src string) *ast.Document {
	doc, errs := parser.ParseDocument([]byte(src))
	require.Empty(t, errs)
	return doc
}

// Scenario 1: a trivial field resolves to a scalar.
func TestExecuteHelloWorld(t *testing.T) {
	s := mustSchema(t, &schema.SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"hello": {
					Type: schema.StringType,
					Resolve: func(ctx schema.FieldContext) (interface{}, error) {
						return "world", nil
					},
				},
			},
		},
	})

	result := gqlengine.Execute(&gqlengine.Request{
		Schema:  s,
		Source:  `{ hello }`,
		Context: context.Background(),
	})
	require.Empty(t, result.Errors)
	hello, ok := result.Data.Get("hello")
	require.True(t, ok)
	assert.Equal(t, "world", hello)
}

// Scenario 2: a null from a non-null field nulls the whole response and
// produces an error at the field's path.
func TestExecuteNullNonNullField(t *testing.T) {
	s := mustSchema(t, &schema.SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"x": {
					Type: schema.NewNonNullType(schema.IntType),
					Resolve: func(ctx schema.FieldContext) (interface{}, error) {
						return nil, nil
					},
				},
			},
		},
	})

	result := gqlengine.Execute(&gqlengine.Request{
		Schema:  s,
		Source:  `{ x }`,
		Context: context.Background(),
	})
	assert.Nil(t, result.Data)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Cannot return null for non-nullable field Query.x", result.Errors[0].Message)
	assert.Equal(t, []interface{}{"x"}, result.Errors[0].Path)
}

// Scenario 3: a null inside a non-null list element nulls the whole list
// (the nearest nullable ancestor) and attaches an error at the element's
// path.
func TestExecuteNullInNonNullListElement(t *testing.T) {
	s := mustSchema(t, &schema.SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"items": {
					Type: schema.NewListType(schema.NewNonNullType(schema.IntType)),
					Resolve: func(ctx schema.FieldContext) (interface{}, error) {
						return []interface{}{1, nil, 3}, nil
					},
				},
			},
		},
	})

	result := gqlengine.Execute(&gqlengine.Request{
		Schema:  s,
		Source:  `{ items }`,
		Context: context.Background(),
	})
	require.NotNil(t, result.Data)
	items, _ := result.Data.Get("items")
	assert.Nil(t, items)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, []interface{}{"items", 1}, result.Errors[0].Path)
}

// Scenario 4: top-level mutation fields execute strictly sequentially,
// even when a field's resolver suspends on a deferred value.
func TestMutationFieldsExecuteSequentially(t *testing.T) {
	queue := deferred.NewQueue()
	counter := 0

	mutationType := &schema.ObjectType{
		Name: "Mutation",
		Fields: map[string]*schema.FieldDefinition{
			"a": {
				Type: schema.NewNonNullType(schema.IntType),
				Resolve: func(ctx schema.FieldContext) (interface{}, error) {
					d := deferred.New(queue)
					queue.Defer(func() {
						counter = 1
						d.Resolve(counter)
					})
					return d, nil
				},
			},
			"b": {
				Type: schema.NewNonNullType(schema.IntType),
				Resolve: func(ctx schema.FieldContext) (interface{}, error) {
					return counter, nil
				},
			},
		},
	}

	s := mustSchema(t, &schema.SchemaDefinition{
		Query:    &schema.ObjectType{Name: "Query", Fields: map[string]*schema.FieldDefinition{"_": {Type: schema.StringType, Resolve: func(schema.FieldContext) (interface{}, error) { return "", nil }}}},
		Mutation: mutationType,
	})

	adapter := deferred.NewAdapter(queue)
	data, errs := executor.ExecuteRequest(context.Background(), &executor.Request{
		Schema:   s,
		Document: mustParse(t, `mutation { a b }`),
		Queue:    queue,
		Adapter:  adapter,
	})
	require.Empty(t, errs)
	a, _ := data.Get("a")
	b, _ := data.Get("b")
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

// Scenario 5: spreading a fragment produces exactly the same result as
// writing the fields inline.
func TestExecuteFragmentEquivalence(t *testing.T) {
	userType := &schema.ObjectType{
		Name: "U",
		Fields: map[string]*schema.FieldDefinition{
			"name": {Type: schema.StringType},
			"age":  {Type: schema.IntType},
		},
	}
	s := mustSchema(t, &schema.SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"u": {
					Type: userType,
					Resolve: func(schema.FieldContext) (interface{}, error) {
						return map[string]interface{}{"name": "ada", "age": 36}, nil
					},
				},
			},
		},
	})

	run := func(source string) *gqlengine.Result {
		return gqlengine.Execute(&gqlengine.Request{
			Schema:  s,
			Source:  source,
			Context: context.Background(),
		})
	}

	inline := run(`{ u { name age } }`)
	spread := run(`{ u { ...F } } fragment F on U { name age }`)
	require.Empty(t, inline.Errors)
	require.Empty(t, spread.Errors)

	inlineJSON, err := inline.MarshalJSON()
	require.NoError(t, err)
	spreadJSON, err := spread.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(inlineJSON), string(spreadJSON))
}

// A non-client-safe error's message is replaced when the host opts in: a
// deferred that nothing ever settles is a scheduler breakdown, not a
// client mistake.
func TestExecuteHideInternalErrorMessages(t *testing.T) {
	queue := deferred.NewQueue()
	s := mustSchema(t, &schema.SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"boom": {
					Type: schema.StringType,
					Resolve: func(schema.FieldContext) (interface{}, error) {
						return deferred.New(queue), nil
					},
				},
			},
		},
	})

	result := gqlengine.Execute(&gqlengine.Request{
		Schema:                    s,
		Source:                    `{ boom }`,
		Context:                   context.Background(),
		PromiseAdapter:            deferred.NewAdapter(queue),
		HideInternalErrorMessages: true,
	})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Internal server error", result.Errors[0].Message)
}
