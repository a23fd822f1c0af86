package introspection

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/brinkql/brink/schema"
)

// marshalValue renders a coerced Go value as GraphQL literal syntax, for
// the __InputValue.defaultValue introspection field.
func marshalValue(t schema.Type, v interface{}) (string, error) {
	if v == schema.Null {
		return "null", nil
	}

	switch t := schema.Resolve(t).(type) {
	case *schema.ScalarType:
		b, err := json.Marshal(v)
		return string(b), err
	case *schema.ListType:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return "", fmt.Errorf("default value is not a slice")
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			s, err := marshalValue(t.Type, rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case *schema.InputObjectType:
		if t.ResultCoercion == nil {
			return "", fmt.Errorf("%v cannot be serialized", t.Name)
		}
		kv, err := t.ResultCoercion(v)
		if err != nil {
			return "", err
		}
		parts := make([]string, 0, len(kv))
		for k, fv := range kv {
			s, err := marshalValue(t.Fields[k].Type, fv)
			if err != nil {
				return "", err
			}
			parts = append(parts, k+": "+s)
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	case *schema.EnumType:
		coerced, err := t.CoerceResult(v)
		if err != nil {
			return "", err
		}
		s, ok := coerced.(string)
		if !ok {
			return "", fmt.Errorf("%v did not coerce to a string", t.Name)
		}
		return s, nil
	case *schema.NonNullType:
		return marshalValue(t.Type, v)
	default:
		return "", fmt.Errorf("unsupported value type: %T", t)
	}
}
