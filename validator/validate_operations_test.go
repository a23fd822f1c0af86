package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOperations(t *testing.T) {
	t.Run("NameUniqueness", func(t *testing.T) {
		assert.Empty(t, validateSource(t, `query a {scalar} query b {scalar}`))
		assert.Len(t, validateSource(t, `query a {scalar} query a {scalar}`), 1)
	})

	t.Run("LoneAnonymousOperation", func(t *testing.T) {
		assert.Empty(t, validateSource(t, `{scalar}`))
		assert.Len(t, validateSource(t, `{scalar} query a {scalar}`), 1)
	})

	t.Run("UnsupportedOperationType", func(t *testing.T) {
		// The test schema defines no mutation root.
		assert.Len(t, validateSource(t, `mutation {scalar}`), 1)
	})
}

func TestValidateSubscriptionSingleRootField(t *testing.T) {
	assert.Empty(t, validateSource(t, `subscription {scalar}`))
	assert.Empty(t, validateSource(t, `subscription {...f} fragment f on Object {scalar}`))
	assert.Empty(t, validateSource(t, `subscription {scalar __typename}`))
	assert.Len(t, validateSource(t, `subscription {scalar int}`), 1)
	assert.Len(t, validateSource(t, `subscription {...f} fragment f on Object {scalar int}`), 1)
}
