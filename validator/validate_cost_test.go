package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkql/brink/parser"
	"github.com/brinkql/brink/schema"
)

func validateCost(t *testing.T, src string, variableValues map[string]interface{}, max int, actual *int) []*Error {
	doc, parseErrs := parser.ParseDocument([]byte(src))
	require.Empty(t, parseErrs)
	rule := ValidateCost("", variableValues, max, actual, schema.FieldCost{Resolver: 1})
	return ValidateDocument(doc, testSchema(t), []Rule{rule})
}

func TestValidateCost(t *testing.T) {
	for name, tc := range map[string]struct {
		Source         string
		VariableValues map[string]interface{}
		MaxCost        int
		ExpectedCost   int
		ExpectedErrors int
	}{
		"Simple": {
			Source:       `{int}`,
			MaxCost:      100,
			ExpectedCost: 1,
		},
		"Free": {
			Source:       `{freeBoolean}`,
			MaxCost:      100,
			ExpectedCost: 0,
		},
		"TypeName": {
			Source:       `{__typename t:__typename}`,
			MaxCost:      100,
			ExpectedCost: 0,
		},
		"Multiplier": {
			Source:       `{objects(first: 10) { int }}`,
			MaxCost:      100,
			ExpectedCost: 1 + 10,
		},
		"MultiplierNesting": {
			Source:       `{objects(first: 10) { int objects(first: 5) { int } }}`,
			MaxCost:      100,
			ExpectedCost: 1 + 10*(2+5),
		},
		"FragmentSpreads": {
			Source:       `{objects(first: 10) { ...f }} fragment f on Object {... on Object {a: int b: int}}`,
			MaxCost:      100,
			ExpectedCost: 1 + 10*2,
		},
		"DefaultArg": {
			Source:       `{costFromArg}`,
			MaxCost:      100,
			ExpectedCost: 10,
		},
		"VariableArg": {
			Source:         `query Foo($cost: Int) {costFromArg(cost: $cost)}`,
			VariableValues: map[string]interface{}{"cost": 20},
			MaxCost:        100,
			ExpectedCost:   20,
		},
		"MaxExceeded": {
			Source:         `{objects(first: 10) { int }}`,
			MaxCost:        10,
			ExpectedCost:   11,
			ExpectedErrors: 1,
		},
		"Disabled": {
			Source:       `{objects(first: 1000) { int }}`,
			MaxCost:      -1,
			ExpectedCost: 1 + 1000,
		},
	} {
		t.Run(name, func(t *testing.T) {
			var actual int
			errs := validateCost(t, tc.Source, tc.VariableValues, tc.MaxCost, &actual)
			assert.Len(t, errs, tc.ExpectedErrors)
			assert.Equal(t, tc.ExpectedCost, actual)
		})
	}
}

func TestValidateCost_ErrorMessage(t *testing.T) {
	// Complexity 6: the objects field costs 1 and multiplies its
	// sub-selection by 5.
	errs := validateCost(t, `{objects(first: 5) { int }}`, nil, 5, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "Max query complexity should be 5 but got 6.", errs[0].Message)
}

func TestValidateCost_NegativeMax(t *testing.T) {
	assert.NotPanics(t, func() {
		ValidateCost("", nil, -1, nil, schema.FieldCost{Resolver: 1})
	})
	assert.PanicsWithValue(t, "argument must be greater or equal to 0.", func() {
		ValidateCost("", nil, -2, nil, schema.FieldCost{Resolver: 1})
	})
}
