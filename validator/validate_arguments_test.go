package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateArguments(t *testing.T) {
	t.Run("KnownNames", func(t *testing.T) {
		assert.Empty(t, validateSource(t, `{booleanArgField(booleanArg: true)}`))

		errs := validateSource(t, `{booleanArgField(booleanarg: true)}`)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, `unknown argument "booleanarg"`)
		assert.Contains(t, errs[0].Message, `Did you mean "booleanArg"?`)
	})

	t.Run("Uniqueness", func(t *testing.T) {
		assert.Len(t, validateSource(t, `{booleanArgField(booleanArg: true, booleanArg: false)}`), 1)
	})

	t.Run("RequiredProvided", func(t *testing.T) {
		assert.Empty(t, validateSource(t, `{requiredArgField(intArg: 1)}`))
		assert.Len(t, validateSource(t, `{requiredArgField}`), 1)
	})

	t.Run("RequiredDirectiveArguments", func(t *testing.T) {
		assert.Empty(t, validateSource(t, `{scalar @skip(if: true)}`))
		assert.Len(t, validateSource(t, `{scalar @skip}`), 1)
	})
}
