// Package relay provides Relay-style cursor connection helpers built on
// top of the schema package's type system.
package relay

import (
	"time"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

func parseDateTime(v interface{}) interface{} {
	switch v := v.(type) {
	case []byte:
		t := time.Time{}
		if err := t.UnmarshalText(v); err == nil {
			return t
		}
		return nil
	case string:
		return parseDateTime([]byte(v))
	}
	return nil
}

// DateTimeType serializes to and from RFC-3339 datetimes. It backs the
// atOrAfterTime/beforeTime arguments of TimeBasedConnection.
var DateTimeType = &schema.ScalarType{
	Name:        "DateTime",
	Description: "DateTime represents an RFC-3339 datetime.",
	LiteralCoercion: func(v ast.Value) interface{} {
		switch v := v.(type) {
		case *ast.StringValue:
			return parseDateTime(v.Value)
		}
		return nil
	},
	VariableValueCoercion: parseDateTime,
	ResultCoercion: func(v interface{}) interface{} {
		switch v := v.(type) {
		case time.Time:
			if b, err := v.MarshalText(); err == nil {
				return string(b)
			}
		}
		return nil
	},
}
