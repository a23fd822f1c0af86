package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Print renders s as GraphQL schema definition language text. The output
// is deterministic: type and directive definitions print in alphabetical
// order, as do fields, arguments, and enum values within their parents.
// Built-in scalars, introspection types, and the default @skip/@include/
// @deprecated directives are omitted.
func Print(s *Schema) string {
	var b strings.Builder

	if def := printSchemaBlock(s); def != "" {
		b.WriteString(def)
	}

	directiveNames := make([]string, 0, len(s.DirectiveDefinitions()))
	for name := range s.DirectiveDefinitions() {
		if name == "skip" || name == "include" || name == "deprecated" {
			continue
		}
		directiveNames = append(directiveNames, name)
	}
	sort.Strings(directiveNames)
	for _, name := range directiveNames {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(printDirectiveDefinition(name, s.DirectiveDefinition(name)))
	}

	typeNames := make([]string, 0, len(s.NamedTypes()))
	for name := range s.NamedTypes() {
		if strings.HasPrefix(name, "__") {
			continue
		}
		if _, builtin := BuiltInTypes[name]; builtin {
			continue
		}
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	for _, name := range typeNames {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(printNamedType(s.NamedType(name)))
	}

	return b.String()
}

// printSchemaBlock emits the schema { ... } operation-type block, or ""
// when every defined root type uses its conventional name and the block
// would be redundant.
func printSchemaBlock(s *Schema) string {
	conventional := s.QueryType().Name == "Query" &&
		(s.MutationType() == nil || s.MutationType().Name == "Mutation") &&
		(s.SubscriptionType() == nil || s.SubscriptionType().Name == "Subscription")
	if conventional {
		return ""
	}
	var b strings.Builder
	b.WriteString("schema {\n")
	fmt.Fprintf(&b, "  query: %v\n", s.QueryType().Name)
	if s.MutationType() != nil {
		fmt.Fprintf(&b, "  mutation: %v\n", s.MutationType().Name)
	}
	if s.SubscriptionType() != nil {
		fmt.Fprintf(&b, "  subscription: %v\n", s.SubscriptionType().Name)
	}
	b.WriteString("}\n")
	return b.String()
}

func printDirectiveDefinition(name string, def *DirectiveDefinition) string {
	var b strings.Builder
	writeDescription(&b, "", def.Description)
	fmt.Fprintf(&b, "directive @%v%v", name, printArgumentDefinitions(def.Arguments))
	if def.IsRepeatable {
		b.WriteString(" repeatable")
	}
	b.WriteString(" on ")
	locations := make([]string, len(def.Locations))
	for i, loc := range def.Locations {
		locations[i] = string(loc)
	}
	b.WriteString(strings.Join(locations, " | "))
	b.WriteString("\n")
	return b.String()
}

func printNamedType(t NamedType) string {
	switch t := t.(type) {
	case *ScalarType:
		var b strings.Builder
		writeDescription(&b, "", t.Description)
		fmt.Fprintf(&b, "scalar %v\n", t.Name)
		return b.String()
	case *EnumType:
		var b strings.Builder
		writeDescription(&b, "", t.Description)
		fmt.Fprintf(&b, "enum %v {\n", t.Name)
		for _, name := range sortedValueNames(t.Values) {
			value := t.Values[name]
			writeDescription(&b, "  ", value.Description)
			fmt.Fprintf(&b, "  %v%v\n", name, printDeprecation(value.DeprecationReason))
		}
		b.WriteString("}\n")
		return b.String()
	case *ObjectType:
		return printFieldedType("type", t.Name, t.Description, t.ImplementedInterfaces, t.Fields)
	case *InterfaceType:
		return printFieldedType("interface", t.Name, t.Description, t.ImplementedInterfaces, t.Fields)
	case *UnionType:
		var b strings.Builder
		writeDescription(&b, "", t.Description)
		members := make([]string, len(t.MemberTypes))
		for i, member := range t.MemberTypes {
			members[i] = member.Name
		}
		sort.Strings(members)
		fmt.Fprintf(&b, "union %v = %v\n", t.Name, strings.Join(members, " | "))
		return b.String()
	case *InputObjectType:
		var b strings.Builder
		writeDescription(&b, "", t.Description)
		fmt.Fprintf(&b, "input %v {\n", t.Name)
		for _, name := range sortedInputValueNames(t.Fields) {
			field := t.Fields[name]
			writeDescription(&b, "  ", field.Description)
			fmt.Fprintf(&b, "  %v: %v%v\n", name, field.Type, printDefault(field))
		}
		b.WriteString("}\n")
		return b.String()
	default:
		panic(fmt.Sprintf("unexpected named type: %T", t))
	}
}

func printFieldedType(keyword, name, description string, interfaces []*InterfaceType, fields map[string]*FieldDefinition) string {
	var b strings.Builder
	writeDescription(&b, "", description)
	fmt.Fprintf(&b, "%v %v", keyword, name)
	if len(interfaces) > 0 {
		names := make([]string, len(interfaces))
		for i, iface := range interfaces {
			names[i] = iface.Name
		}
		sort.Strings(names)
		fmt.Fprintf(&b, " implements %v", strings.Join(names, " & "))
	}
	b.WriteString(" {\n")
	for _, fieldName := range sortedFieldNames(fields) {
		field := fields[fieldName]
		writeDescription(&b, "  ", field.Description)
		fmt.Fprintf(&b, "  %v%v: %v%v\n", fieldName, printArgumentDefinitions(field.Arguments), field.Type, printDeprecation(field.DeprecationReason))
	}
	b.WriteString("}\n")
	return b.String()
}

func printArgumentDefinitions(args map[string]*InputValueDefinition) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args))
	for _, name := range sortedInputValueNames(args) {
		arg := args[name]
		parts = append(parts, fmt.Sprintf("%v: %v%v", name, arg.Type, printDefault(arg)))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func printDefault(def *InputValueDefinition) string {
	if def.DefaultValue == nil {
		return ""
	}
	return " = " + printValue(def.DefaultValue, def.Type)
}

// printValue renders an already-coerced Go value as a GraphQL literal,
// guided by its input type so enum names aren't quoted like strings.
func printValue(v interface{}, t Type) string {
	if v == nil || v == Null {
		return "null"
	}
	resolved := Resolve(t)
	if nonNull, ok := resolved.(*NonNullType); ok {
		resolved = Resolve(nonNull.Type)
	}
	switch resolved := resolved.(type) {
	case *ListType:
		rv, ok := v.([]interface{})
		if !ok {
			return printValue(v, resolved.Type)
		}
		parts := make([]string, len(rv))
		for i, item := range rv {
			parts[i] = printValue(item, resolved.Type)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *EnumType:
		return fmt.Sprintf("%v", v)
	case *InputObjectType:
		rv, ok := v.(map[string]interface{})
		if !ok {
			return printScalarValue(v)
		}
		parts := make([]string, 0, len(rv))
		names := make([]string, 0, len(rv))
		for name := range rv {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			var fieldType Type
			if field, ok := resolved.Fields[name]; ok {
				fieldType = field.Type
			}
			parts = append(parts, fmt.Sprintf("%v: %v", name, printValue(rv[name], fieldType)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return printScalarValue(v)
	}
}

func printScalarValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return printFloat(float64(v))
	case float64:
		return printFloat(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func printFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func printDeprecation(reason string) string {
	if reason == "" {
		return ""
	}
	return fmt.Sprintf(" @deprecated(reason: %v)", strconv.Quote(reason))
}

func writeDescription(b *strings.Builder, indent, description string) {
	if description == "" {
		return
	}
	fmt.Fprintf(b, "%v\"\"\"%v\"\"\"\n", indent, strings.ReplaceAll(description, `"""`, `\"""`))
}

func sortedFieldNames(m map[string]*FieldDefinition) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedInputValueNames(m map[string]*InputValueDefinition) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedValueNames(m map[string]*EnumValueDefinition) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
