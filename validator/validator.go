// Package validator implements the rule suite that runs over a parsed
// query document before execution: a shared type-info tracker plus a set
// of independent rule visitors, any of which may reject the document with
// one or more structured errors.
package validator

import (
	"fmt"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

// Error is a validation error. Its wording is part of the engine's
// external contract: hosts and tests match against these messages
// verbatim.
type Error struct {
	Message   string
	Locations []Location
	Nodes     []ast.Node

	// If a rule is unable to perform its job because an earlier,
	// unrelated problem left it without type information it needs,
	// it emits a secondary error instead of a primary one. Secondary
	// errors are suppressed whenever at least one primary error exists,
	// since they're almost always a symptom of the same underlying
	// mistake rather than independent findings.
	isSecondary bool
}

// Location is a 1-indexed line/column pointing at a token in the source
// document.
type Location struct {
	Line   int
	Column int
}

func (err *Error) Error() string {
	return err.Message
}

func locationsForNodes(nodes []ast.Node) []Location {
	var locs []Location
	for _, n := range nodes {
		if n == nil {
			continue
		}
		pos := n.Position()
		locs = append(locs, Location{Line: pos.Line, Column: pos.Column})
	}
	return locs
}

func newError(node ast.Node, message string, args ...interface{}) *Error {
	var nodes []ast.Node
	if node != nil {
		nodes = []ast.Node{node}
	}
	return &Error{
		Message:   fmt.Sprintf(message, args...),
		Locations: locationsForNodes(nodes),
		Nodes:     nodes,
	}
}

func newErrorWithNodes(nodes []ast.Node, message string, args ...interface{}) *Error {
	return &Error{
		Message:   fmt.Sprintf(message, args...),
		Locations: locationsForNodes(nodes),
		Nodes:     nodes,
	}
}

func newSecondaryError(node ast.Node, message string, args ...interface{}) *Error {
	err := newError(node, message, args...)
	err.isSecondary = true
	return err
}

// Rule is a single validation rule: an independent visitor over (document,
// schema, typeInfo) that reports errors without suppressing any other
// rule's findings.
type Rule func(*ast.Document, *schema.Schema, *TypeInfo) []*Error

// DefaultRules is the rule set applied to every document by default: it
// excludes the optional complexity/depth limiting rules, which a host
// opts into explicitly via ValidateCost/ValidateMaxDepth since they
// require host-supplied limits.
var DefaultRules = []Rule{
	validateDocument,
	validateOperations,
	validateFragments,
	validateFields,
	validateValues,
	validateArguments,
	validateDirectives,
	validateVariables,
}

// ValidateDocument runs rules (or DefaultRules, if rules is nil) over doc
// against s. If any rule reports a primary error, secondary errors are
// discarded, since they're expected to be consequences of the same root
// cause rather than independent defects.
func ValidateDocument(doc *ast.Document, s *schema.Schema, rules []Rule) []*Error {
	if rules == nil {
		rules = DefaultRules
	}
	typeInfo := NewTypeInfo(doc, s)

	var all []*Error
	for _, rule := range rules {
		all = append(all, rule(doc, s, typeInfo)...)
	}

	var primary []*Error
	for _, err := range all {
		if !err.isSecondary {
			primary = append(primary, err)
		}
	}
	if len(primary) > 0 {
		return primary
	}
	return all
}
