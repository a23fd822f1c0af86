package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValues(t *testing.T) {
	t.Run("Scalars", func(t *testing.T) {
		assert.Empty(t, validateSource(t, `{intArgField(intArg: 1)}`))
		assert.Empty(t, validateSource(t, `{booleanArgField(booleanArg: true)}`))
		assert.Len(t, validateSource(t, `{intArgField(intArg: "one")}`), 1)
		assert.Len(t, validateSource(t, `{booleanArgField(booleanArg: 1)}`), 1)
	})

	t.Run("Enums", func(t *testing.T) {
		assert.Empty(t, validateSource(t, `{enumArgField(enumArg: FOO)}`))
		assert.Len(t, validateSource(t, `{enumArgField(enumArg: ASDF)}`), 1)
		// Enum values are not strings.
		assert.Len(t, validateSource(t, `{enumArgField(enumArg: "FOO")}`), 1)
	})

	t.Run("NullToNonNull", func(t *testing.T) {
		assert.Len(t, validateSource(t, `{requiredArgField(intArg: null)}`), 1)
	})

	t.Run("InputObjects", func(t *testing.T) {
		assert.Empty(t, validateSource(t, `{findDog(complex: {name: "Fido"}) {nickname}}`))

		t.Run("UnknownField", func(t *testing.T) {
			errs := validateSource(t, `{findDog(complex: {nam: "Fido"}) {nickname}}`)
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Message, `"nam" does not exist on ComplexInput`)
		})

		t.Run("DuplicateField", func(t *testing.T) {
			assert.Len(t, validateSource(t, `{findDog(complex: {name: "a", name: "b"}) {nickname}}`), 1)
		})

		t.Run("SiblingErrorsAllReported", func(t *testing.T) {
			// Both bad fields are reported, not just the first.
			assert.Len(t, validateSource(t, `{findDog(complex: {name: 1, owner: 2}) {nickname}}`), 2)
		})
	})
}
