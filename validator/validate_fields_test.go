package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFieldsOnCorrectType(t *testing.T) {
	assert.Empty(t, validateSource(t, `{scalar int}`))
	assert.Empty(t, validateSource(t, `{dog {barkVolume}}`))
	assert.Empty(t, validateSource(t, `{pet {nickname}}`))

	t.Run("UnknownWithSuggestion", func(t *testing.T) {
		errs := validateSource(t, `{dog {barkvolume}}`)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "does not exist on Dog")
		assert.Contains(t, errs[0].Message, `Did you mean "barkVolume"?`)
	})

	t.Run("UnionSelectsNoFields", func(t *testing.T) {
		// Unions expose no fields directly, only via fragments.
		assert.Len(t, validateSource(t, `{catOrDog {nickname}}`), 1)
		assert.Empty(t, validateSource(t, `{catOrDog {... on Dog {nickname}}}`))
	})
}

func TestValidateLeafFieldSelections(t *testing.T) {
	assert.Empty(t, validateSource(t, `{scalar}`))
	assert.Len(t, validateSource(t, `{scalar {int}}`), 1)
	assert.Len(t, validateSource(t, `{dog}`), 1)
	assert.Len(t, validateSource(t, `{enumArgField(enumArg: FOO) {int}}`), 1)
}

func TestValidateOverlappingFieldsCanBeMerged(t *testing.T) {
	assert.Empty(t, validateSource(t, `{scalar scalar}`))
	assert.Empty(t, validateSource(t, `{a: scalar a: scalar}`))
	assert.Empty(t, validateSource(t, `{intArgField(intArg: 1) intArgField(intArg: 1)}`))
	assert.Empty(t, validateSource(t, `{dog {nickname} dog {barkVolume}}`))

	t.Run("DifferingFields", func(t *testing.T) {
		assert.Len(t, validateSource(t, `{a: int a: int2}`), 1)
	})

	t.Run("DifferingArguments", func(t *testing.T) {
		assert.Len(t, validateSource(t, `{intArgField(intArg: 1) intArgField(intArg: 2)}`), 1)
		assert.Len(t, validateSource(t, `{intArgField(intArg: 1) intArgField}`), 1)
	})

	t.Run("DisjointAbstractParents", func(t *testing.T) {
		// Cat and Dog can never both apply to one value, so their
		// same-keyed fields need only be output-compatible, not
		// identical.
		assert.Empty(t, validateSource(t, `{pet {... on Cat {volume: meowVolume} ... on Dog {volume: barkVolume}}}`))
	})

	t.Run("SubselectionConflict", func(t *testing.T) {
		assert.Len(t, validateSource(t, `{dog {v: nickname} dog {v: barkVolume}}`), 1)
	})
}
