package validator

import (
	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

// validateDocument checks that the document only contains executable
// definitions (operations and fragments); schema-language definitions are
// rejected outright.
func validateDocument(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	var ret []*Error
	for _, def := range doc.Definitions {
		switch def.(type) {
		case *ast.OperationDefinition, *ast.FragmentDefinition:
		default:
			ret = append(ret, newError(def, "definitions must be operations or fragments"))
		}
	}
	return ret
}
