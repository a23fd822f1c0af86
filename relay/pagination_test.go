package relay

import (
	"context"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkql/brink/executor"
	"github.com/brinkql/brink/gqlengine"
	"github.com/brinkql/brink/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	conn := Connection(&ConnectionConfig{
		NamePrefix: "Test",
		ResolveEdges: func(ctx schema.FieldContext, after, before interface{}, limit int) (interface{}, func(a, b interface{}) bool, error) {
			n := limit
			if n < 0 {
				n = -n
			}
			ret := make([]int, n)
			for i := range ret {
				ret[i] = i
			}
			return ret, func(a, b interface{}) bool {
				return a.(string) < b.(string)
			}, nil
		},
		ResolveTotalCount: func(ctx schema.FieldContext) (interface{}, error) {
			return 1000, nil
		},
		CursorType: reflect.TypeOf(""),
		EdgeCursor: func(edge interface{}) interface{} {
			return strconv.Itoa(edge.(int))
		},
		EdgeFields: map[string]*schema.FieldDefinition{
			"node": {
				Type: schema.IntType,
				Resolve: func(ctx schema.FieldContext) (interface{}, error) {
					return ctx.Object, nil
				},
			},
		},
	})

	s, err := schema.New(&schema.SchemaDefinition{
		Query: &schema.ObjectType{
			Name: "Query",
			Fields: map[string]*schema.FieldDefinition{
				"connection": conn,
			},
		},
	})
	require.NoError(t, err)
	return s
}

func TestConnectionFirst(t *testing.T) {
	s := testSchema(t)
	result := gqlengine.Execute(&gqlengine.Request{
		Schema:  s,
		Source:  `{ connection(first: 2) { totalCount edges { cursor node } pageInfo { hasNextPage hasPreviousPage } } }`,
		Context: context.Background(),
	})
	require.Empty(t, result.Errors)

	connectionV, _ := result.Data.Get("connection")
	connection := connectionV.(*executor.OrderedMap)
	totalCount, _ := connection.Get("totalCount")
	assert.Equal(t, 1000, totalCount)

	edgesV, _ := connection.Get("edges")
	edges := edgesV.([]interface{})
	require.Len(t, edges, 2)
	node0, _ := edges[0].(*executor.OrderedMap).Get("node")
	node1, _ := edges[1].(*executor.OrderedMap).Get("node")
	assert.Equal(t, 0, node0)
	assert.Equal(t, 1, node1)

	pageInfoV, _ := connection.Get("pageInfo")
	pageInfo := pageInfoV.(*executor.OrderedMap)
	hasNext, _ := pageInfo.Get("hasNextPage")
	hasPrev, _ := pageInfo.Get("hasPreviousPage")
	assert.Equal(t, true, hasNext)
	assert.Equal(t, false, hasPrev)
}

func TestConnectionArgumentErrors(t *testing.T) {
	s := testSchema(t)

	result := gqlengine.Execute(&gqlengine.Request{
		Schema: s,
		Source: `{ connection { edges { node } } }`,
	})
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "first")

	result = gqlengine.Execute(&gqlengine.Request{
		Schema: s,
		Source: `{ connection(first: 1, last: 1) { edges { node } } }`,
	})
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "both")
}

func TestCursorRoundTrip(t *testing.T) {
	c := NewTimeBasedCursor(distantFuture, "abc")
	s, err := serializeCursor(c)
	require.NoError(t, err)
	got := deserializeCursor(reflect.TypeOf(TimeBasedCursor{}), s)
	assert.Equal(t, c, got)
}
