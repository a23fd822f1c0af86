// Package gqlengine wires the parser, validator, and executor together
// behind a single Execute entry point and defines the JSON error/result
// shape hosts consume.
package gqlengine

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/deferred"
	"github.com/brinkql/brink/executor"
	"github.com/brinkql/brink/parser"
	"github.com/brinkql/brink/schema"
	"github.com/brinkql/brink/validator"
)

// Request bundles the options for a single Execute call.
type Request struct {
	Schema *schema.Schema

	// Source is either a query string ([]byte or string) or a pre-parsed
	// *ast.Document. Exactly one of the two forms should be supplied.
	Source interface{}

	RootValue      interface{}
	Context        context.Context
	VariableValues map[string]interface{}
	OperationName  string

	// HideInternalErrorMessages replaces the message of any error whose
	// IsClientSafe flag is false with "Internal server error". Off by
	// default so local development sees the real message.
	HideInternalErrorMessages bool

	// FieldResolver is used for fields that don't define their own
	// resolver. Defaults to executor.DefaultFieldResolver.
	FieldResolver executor.FieldResolver

	// ValidationRules overrides validator.DefaultRules. An explicitly
	// empty (non-nil) slice disables validation entirely.
	ValidationRules []validator.Rule

	// PromiseAdapter plugs in a host's own async runtime in place of the
	// built-in cooperative scheduler.
	PromiseAdapter deferred.Adapter
}

// Result is the outcome of an Execute call, serialized as the standard
// {"data": ..., "errors": [...]} JSON shape.
type Result struct {
	Data   *executor.OrderedMap
	Errors []ErrorJSON

	// executed is false only for a pre-execution (parse/validation)
	// failure, in which case "data" is omitted from the marshaled result
	// entirely. Once execution has actually run, Data is marshaled even
	// when nil (as JSON null).
	executed bool
}

// ErrorJSON is a single entry of Result.Errors.
type ErrorJSON struct {
	Message    string                 `json:"message"`
	Locations  []LocationJSON         `json:"locations,omitempty"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// LocationJSON is a single source location within ErrorJSON.Locations.
type LocationJSON struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Execute parses (if necessary), validates, and executes a request. If
// parsing or validation fails, execution never runs and the result
// carries only errors.
func Execute(r *Request) *Result {
	ctx := r.Context
	if ctx == nil {
		ctx = context.Background()
	}

	doc, ok := r.Source.(*ast.Document)
	if !ok {
		var src []byte
		switch s := r.Source.(type) {
		case []byte:
			src = s
		case string:
			src = []byte(s)
		}
		var perrs []*parser.Error
		doc, perrs = parser.ParseDocument(src)
		if len(perrs) > 0 {
			errs := make([]ErrorJSON, len(perrs))
			for i, err := range perrs {
				pos := err.Position()
				errs[i] = ErrorJSON{
					Message:   err.Error(),
					Locations: []LocationJSON{{Line: pos.Line, Column: pos.Column}},
				}
			}
			return &Result{Errors: errs}
		}
	}

	if vErrs := validator.ValidateDocument(doc, r.Schema, r.ValidationRules); len(vErrs) > 0 {
		return &Result{Errors: validationErrorsJSON(vErrs)}
	}

	data, errs := executor.ExecuteRequest(ctx, &executor.Request{
		Context:        ctx,
		Schema:         r.Schema,
		Document:       doc,
		OperationName:  r.OperationName,
		VariableValues: r.VariableValues,
		RootValue:      r.RootValue,
		FieldResolver:  r.FieldResolver,
		Adapter:        r.PromiseAdapter,
	})
	return &Result{Data: data, Errors: executionErrorsJSON(errs, r.HideInternalErrorMessages), executed: true}
}

func validationErrorsJSON(errs []*validator.Error) []ErrorJSON {
	ret := make([]ErrorJSON, len(errs))
	for i, err := range errs {
		locs := make([]LocationJSON, len(err.Locations))
		for j, loc := range err.Locations {
			locs[j] = LocationJSON{Line: loc.Line, Column: loc.Column}
		}
		ret[i] = ErrorJSON{Message: err.Message, Locations: locs}
	}
	return ret
}

func executionErrorsJSON(errs []*executor.Error, hideInternalMessages bool) []ErrorJSON {
	if len(errs) == 0 {
		return nil
	}
	ret := make([]ErrorJSON, len(errs))
	for i, err := range errs {
		locs := make([]LocationJSON, len(err.Locations))
		for j, loc := range err.Locations {
			locs[j] = LocationJSON{Line: loc.Line, Column: loc.Column}
		}
		message := err.Message
		if hideInternalMessages && !err.IsClientSafe {
			message = "Internal server error"
		}
		ret[i] = ErrorJSON{Message: message, Locations: locs, Path: err.Path}
	}
	return ret
}

// MarshalJSON renders r with errors omitted when empty, and data omitted
// only when execution never ran (a pre-execution parse/validation error).
// Once execution ran, a nil Data still marshals as an explicit JSON null.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}
	if r.executed {
		out["data"] = r.Data
	}
	if len(r.Errors) > 0 {
		out["errors"] = r.Errors
	}
	return jsoniter.Marshal(out)
}
