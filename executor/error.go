package executor

import (
	"fmt"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/validator"
)

// Location represents the location of a character within a query's source text.
type Location struct {
	Line   int
	Column int
}

// Error represents an execution error reported in a result's errors list.
type Error struct {
	Message   string
	Locations []Location

	// Path is present if the error occurred while resolving a particular
	// field.
	Path []interface{}

	// IsClientSafe distinguishes user-actionable errors (coercion,
	// validation, a resolver's own returned error) from internal engine
	// invariant violations. Hosts may replace the message of a
	// non-client-safe error with a generic one before sending it to a
	// client.
	IsClientSafe bool

	originalError error
}

func (err *Error) Error() string {
	return err.Message
}

// Unwrap returns the original resolver error, if this Error wraps one.
func (err *Error) Unwrap() error {
	return err.originalError
}

func newError(node ast.Node, message string, args ...interface{}) *Error {
	return newErrorWithPath(node, nil, message, args...)
}

func newErrorWithPath(node ast.Node, p *path, message string, args ...interface{}) *Error {
	ret := &Error{
		Message:      fmt.Sprintf(message, args...),
		IsClientSafe: true,
	}
	if node != nil {
		pos := node.Position()
		ret.Locations = []Location{{Line: pos.Line, Column: pos.Column}}
	}
	if p != nil {
		ret.Path = p.Slice()
	}
	return ret
}

func newFieldResolveError(fields []*ast.Field, err error, p *path) *Error {
	locations := make([]Location, len(fields))
	for i, field := range fields {
		pos := field.Position()
		locations[i] = Location{Line: pos.Line, Column: pos.Column}
	}
	return &Error{
		Message:       err.Error(),
		Locations:     locations,
		Path:          p.Slice(),
		IsClientSafe:  true,
		originalError: err,
	}
}

func newErrorWithValidatorError(err *validator.Error) *Error {
	if err == nil {
		return nil
	}
	ret := &Error{Message: err.Message, IsClientSafe: true}
	for _, loc := range err.Locations {
		ret.Locations = append(ret.Locations, Location{Line: loc.Line, Column: loc.Column})
	}
	return ret
}
