package validator

import (
	"context"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

const maxUint = ^uint(0)
const maxInt = int(maxUint >> 1)

// checkedNonNegativeMultiply multiplies two non-negative numbers, returning
// -1 if either is negative or the product would overflow.
func checkedNonNegativeMultiply(a, b int) int {
	if a < 0 || b < 0 {
		return -1
	} else if a == 0 || b == 0 || a == 1 || b == 1 {
		return a * b
	}
	c := a * b
	if c/b != a {
		return -1
	}
	return c
}

// checkedNonNegativeAdd adds two non-negative numbers, returning -1 if
// either is negative or the sum would overflow.
func checkedNonNegativeAdd(a, b int) int {
	if a < 0 || b < 0 || a > maxInt-b {
		return -1
	}
	return a + b
}

// ValidateCost returns a rule that computes operationName's cost and
// fails validation if it exceeds max. A max of -1
// disables the limit. Any other negative max is a programming error: the
// call panics immediately rather than producing a rule that always fails or
// always passes. If actual is non-nil, it receives the computed cost (or
// the largest representable int, if the true cost overflowed) once the rule
// runs.
func ValidateCost(operationName string, variableValues map[string]interface{}, max int, actual *int, defaultCost schema.FieldCost) Rule {
	if max < -1 {
		panic("argument must be greater or equal to 0.")
	}
	return func(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
		var ret []*Error

		var op *ast.OperationDefinition
		for _, def := range doc.Definitions {
			if def, ok := def.(*ast.OperationDefinition); ok {
				if operationName == "" || (def.Name != nil && def.Name.Name == operationName) {
					if op != nil {
						op = nil
						break
					}
					op = def
				}
			}
		}

		fragmentsByName := map[string]*ast.FragmentDefinition{}
		for _, def := range doc.Definitions {
			if def, ok := def.(*ast.FragmentDefinition); ok {
				fragmentsByName[def.Name.Name] = def
			}
		}

		var coercedVariableValues map[string]interface{}
		if op != nil {
			if v, err := CoerceVariableValues(s, op, variableValues); err != nil {
				ret = append(ret, newSecondaryError(op, err.Error()))
			} else {
				coercedVariableValues = v
			}
		}

		if op == nil || len(ret) > 0 {
			return ret
		}

		c := &costVisitor{
			s:                      s,
			typeInfo:               typeInfo,
			fragmentsByName:        fragmentsByName,
			coercedVariableValues:  coercedVariableValues,
			defaultCost:            defaultCost,
			multipliers:            []int{1},
			ctxs:                   []context.Context{context.Background()},
			visitedFragmentsByPath: map[string]struct{}{},
		}
		c.visitSelectionSet(op.SelectionSet)
		ret = append(ret, c.errors...)

		if len(ret) == 0 {
			cost := c.cost
			if actual != nil {
				if cost < 0 {
					*actual = maxInt
				} else {
					*actual = cost
				}
			}
			if max >= 0 {
				if cost < 0 {
					ret = append(ret, newError(op, "operation cost is too high to calculate"))
				} else if cost > max {
					ret = append(ret, newError(op, "Max query complexity should be %v but got %v.", max, cost))
				}
			}
		}

		return ret
	}
}

type costVisitor struct {
	s                      *schema.Schema
	typeInfo               *TypeInfo
	fragmentsByName        map[string]*ast.FragmentDefinition
	coercedVariableValues  map[string]interface{}
	defaultCost            schema.FieldCost
	cost                   int
	multipliers            []int
	ctxs                   []context.Context
	visitedFragmentsByPath map[string]struct{}
	errors                 []*Error
}

func (c *costVisitor) visitSelectionSet(set *ast.SelectionSet) {
	if set == nil || len(c.errors) > 0 {
		return
	}
	multiplier := c.multipliers[len(c.multipliers)-1]
	ctx := c.ctxs[len(c.ctxs)-1]

	for _, selection := range set.Selections {
		switch selection := selection.(type) {
		case *ast.Field:
			def, ok := c.typeInfo.FieldDefinitions[selection]
			if !ok {
				if selection.Name.Name != "__typename" {
					c.errors = append(c.errors, newSecondaryError(selection, "no type information for field"))
				}
				continue
			}
			if c.coercedVariableValues == nil {
				continue
			}
			args, err := CoerceArgumentValues(selection, def.Arguments, selection.Arguments, c.coercedVariableValues)
			if err != nil {
				c.errors = append(c.errors, newSecondaryError(selection, err.Error()))
				continue
			}
			fieldCost := c.defaultCost
			if def.Cost != nil {
				fieldCost = def.Cost(schema.FieldCostContext{Context: ctx, Arguments: args})
			}
			c.cost = checkedNonNegativeAdd(c.cost, checkedNonNegativeMultiply(multiplier, fieldCost.Resolver))

			newMultiplier := multiplier
			if fieldCost.Multiplier > 1 {
				newMultiplier = checkedNonNegativeMultiply(multiplier, fieldCost.Multiplier)
			}
			newCtx := ctx
			if fieldCost.Context != nil {
				newCtx = fieldCost.Context
			}

			c.multipliers = append(c.multipliers, newMultiplier)
			c.ctxs = append(c.ctxs, newCtx)
			c.visitSelectionSet(selection.SelectionSet)
			c.multipliers = c.multipliers[:len(c.multipliers)-1]
			c.ctxs = c.ctxs[:len(c.ctxs)-1]
		case *ast.InlineFragment:
			c.visitSelectionSet(selection.SelectionSet)
		case *ast.FragmentSpread:
			name := selection.FragmentName.Name
			if _, ok := c.visitedFragmentsByPath[name]; ok {
				c.errors = append(c.errors, newSecondaryError(selection, "fragment cycle detected"))
				continue
			}
			def, ok := c.fragmentsByName[name]
			if !ok {
				c.errors = append(c.errors, newSecondaryError(selection, "undefined fragment %q", name))
				continue
			}
			c.visitedFragmentsByPath[name] = struct{}{}
			c.visitSelectionSet(def.SelectionSet)
			delete(c.visitedFragmentsByPath, name)
		}
		if len(c.errors) > 0 {
			return
		}
	}
}
