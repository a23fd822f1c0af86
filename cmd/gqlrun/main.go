// Command gqlrun is a minimal CLI host for the engine: it registers a
// small demo schema, executes a single query read from a flag or stdin,
// and prints the JSON result.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/pflag"

	"github.com/brinkql/brink/gqlengine"
	"github.com/brinkql/brink/internal/applog"
	"github.com/brinkql/brink/schema"
)

func demoSchema() *schema.Schema {
	var counter int

	query := &schema.ObjectType{
		Name: "Query",
		Fields: map[string]*schema.FieldDefinition{
			"hello": {
				Type: schema.NewNonNullType(schema.StringType),
				Resolve: func(ctx schema.FieldContext) (interface{}, error) {
					return "world", nil
				},
			},
			"counter": {
				Type: schema.NewNonNullType(schema.IntType),
				Resolve: func(ctx schema.FieldContext) (interface{}, error) {
					return counter, nil
				},
			},
		},
	}

	mutation := &schema.ObjectType{
		Name: "Mutation",
		Fields: map[string]*schema.FieldDefinition{
			"increment": {
				Type: schema.NewNonNullType(schema.IntType),
				Resolve: func(ctx schema.FieldContext) (interface{}, error) {
					counter++
					return counter, nil
				},
			},
		},
	}

	s, err := schema.New(&schema.SchemaDefinition{
		Query:    query,
		Mutation: mutation,
	})
	if err != nil {
		panic(err)
	}
	return s
}

func main() {
	var queryFlag string
	var operationName string
	var variablesJSON string

	pflag.StringVarP(&queryFlag, "query", "q", "", "query document (reads from stdin if omitted)")
	pflag.StringVarP(&operationName, "operation", "o", "", "operation name, if the document defines more than one")
	pflag.StringVarP(&variablesJSON, "variables", "v", "{}", "JSON-encoded variable values")
	pflag.Parse()

	logger := applog.New()

	query := queryFlag
	if query == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Fatalf("error reading query from stdin: %v", err)
		}
		query = string(data)
	}

	var variables map[string]interface{}
	if err := jsoniter.Unmarshal([]byte(variablesJSON), &variables); err != nil {
		logger.Fatalf("error parsing --variables: %v", err)
	}

	result := gqlengine.Execute(&gqlengine.Request{
		Schema:         demoSchema(),
		Source:         query,
		Context:        context.Background(),
		VariableValues: variables,
		OperationName:  operationName,
	})

	buf, err := jsoniter.Marshal(result)
	if err != nil {
		logger.Fatalf("error marshaling result: %v", err)
	}
	fmt.Println(string(buf))
}
