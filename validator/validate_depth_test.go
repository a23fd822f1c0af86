package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkql/brink/parser"
)

func validateDepth(t *testing.T, src string, max int) []*Error {
	doc, parseErrs := parser.ParseDocument([]byte(src))
	require.Empty(t, parseErrs)
	return ValidateDocument(doc, testSchema(t), []Rule{ValidateMaxDepth("", max)})
}

func TestValidateMaxDepth(t *testing.T) {
	assert.Empty(t, validateDepth(t, `{object {object {scalar}}}`, 3))
	assert.Len(t, validateDepth(t, `{object {object {scalar}}}`, 2), 1)

	t.Run("FragmentsCountTowardDepth", func(t *testing.T) {
		assert.Len(t, validateDepth(t, `{object {...f}} fragment f on Object {object {scalar}}`, 2), 1)
		assert.Empty(t, validateDepth(t, `{object {...f}} fragment f on Object {object {scalar}}`, 3))
	})

	t.Run("IntrospectionExcluded", func(t *testing.T) {
		assert.Empty(t, validateDepth(t, `{__typename object {__typename scalar}}`, 2))
	})

	t.Run("Disabled", func(t *testing.T) {
		assert.Empty(t, validateDepth(t, `{object {object {object {scalar}}}}`, -1))
	})
}

func TestValidateMaxDepth_NegativeMax(t *testing.T) {
	assert.NotPanics(t, func() { ValidateMaxDepth("", -1) })
	assert.PanicsWithValue(t, "argument must be greater or equal to 0.", func() { ValidateMaxDepth("", -2) })
}
