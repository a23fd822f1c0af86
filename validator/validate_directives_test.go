package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkql/brink/parser"
	"github.com/brinkql/brink/schema"
)

func TestValidateDirectives(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		assert.Empty(t, validateSource(t, `{scalar @include(if: true)}`))
		assert.Len(t, validateSource(t, `{scalar @asdf}`), 1)
	})

	t.Run("Locations", func(t *testing.T) {
		assert.Empty(t, validateSource(t, `{...f @include(if: true)} fragment f on Object {scalar}`))
		// @skip is only valid on fields, fragment spreads, and inline
		// fragments, never on the operation itself.
		assert.Len(t, validateSource(t, `query q @skip(if: false) {scalar}`), 1)
	})

	t.Run("OncePerLocation", func(t *testing.T) {
		assert.Len(t, validateSource(t, `{scalar @skip(if: true) @skip(if: false)}`), 1)
	})
}

func TestValidateDirectives_Repeatable(t *testing.T) {
	s, err := schema.New(&schema.SchemaDefinition{
		Query: objectType,
		DirectiveDefinitions: map[string]*schema.DirectiveDefinition{
			"skip":    schema.SkipDirective,
			"include": schema.IncludeDirective,
			"tag": {
				Locations:    []schema.DirectiveLocation{schema.DirectiveLocationField},
				IsRepeatable: true,
				Arguments: map[string]*schema.InputValueDefinition{
					"name": {
						Type: schema.NewNonNullType(schema.StringType),
					},
				},
			},
		},
	})
	require.NoError(t, err)

	doc, parseErrs := parser.ParseDocument([]byte(`{scalar @tag(name: "a") @tag(name: "b")}`))
	require.Empty(t, parseErrs)
	assert.Empty(t, ValidateDocument(doc, s, nil))
}
