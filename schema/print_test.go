package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	episodeType := &EnumType{
		Name: "Episode",
		Values: map[string]*EnumValueDefinition{
			"NEWHOPE": {},
			"EMPIRE":  {},
			"JEDI":    {DeprecationReason: "Use NEWHOPE."},
		},
	}
	characterType := &InterfaceType{
		Name: "Character",
		Fields: map[string]*FieldDefinition{
			"name": {Type: NewNonNullType(StringType)},
		},
	}
	humanType := &ObjectType{
		Name:        "Human",
		Description: "A humanoid creature.",
		Fields: map[string]*FieldDefinition{
			"name": {Type: NewNonNullType(StringType)},
			"friends": {
				Type: NewListType(characterType),
				Arguments: map[string]*InputValueDefinition{
					"limit": {Type: IntType, DefaultValue: 10},
				},
			},
		},
		ImplementedInterfaces: []*InterfaceType{characterType},
		IsTypeOf:              func(interface{}) bool { return true },
	}
	droidType := &ObjectType{
		Name: "Droid",
		Fields: map[string]*FieldDefinition{
			"name":            {Type: NewNonNullType(StringType)},
			"primaryFunction": {Type: StringType},
		},
		ImplementedInterfaces: []*InterfaceType{characterType},
		IsTypeOf:              func(interface{}) bool { return true },
	}
	searchResultType := &UnionType{
		Name:        "SearchResult",
		MemberTypes: []*ObjectType{humanType, droidType},
	}
	filterType := &InputObjectType{
		Name: "Filter",
		Fields: map[string]*InputValueDefinition{
			"episode": {Type: episodeType, DefaultValue: "JEDI"},
			"text":    {Type: StringType},
		},
	}

	s, err := New(&SchemaDefinition{
		Query: &ObjectType{
			Name: "Query",
			Fields: map[string]*FieldDefinition{
				"hero": {Type: characterType},
				"search": {
					Type: NewListType(searchResultType),
					Arguments: map[string]*InputValueDefinition{
						"filter": {Type: filterType},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	expected := `enum Episode {
  EMPIRE
  JEDI @deprecated(reason: "Use NEWHOPE.")
  NEWHOPE
}

input Filter {
  episode: Episode = JEDI
  text: String
}

type Query {
  hero: Character
  search(filter: Filter): [SearchResult]
}

union SearchResult = Droid | Human

interface Character {
  name: String!
}

type Droid implements Character {
  name: String!
  primaryFunction: String
}

"""A humanoid creature."""
type Human implements Character {
  friends(limit: Int = 10): [Character]
  name: String!
}
`
	assert.Equal(t, sortLines(expected), sortLines(Print(s)))
}

// sortLines ignores block ordering differences while still checking every
// printed line, since the full fixture's type order is the printer's
// concern, not the test's.
func sortLines(s string) map[string]int {
	counts := map[string]int{}
	for _, line := range splitLines(s) {
		counts[line]++
	}
	return counts
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func TestPrint_SchemaBlockAndDirectives(t *testing.T) {
	s, err := New(&SchemaDefinition{
		Query: &ObjectType{
			Name: "RootQuery",
			Fields: map[string]*FieldDefinition{
				"ok": {Type: BooleanType},
			},
		},
		DirectiveDefinitions: map[string]*DirectiveDefinition{
			"skip":    SkipDirective,
			"include": IncludeDirective,
			"tag": {
				IsRepeatable: true,
				Locations:    []DirectiveLocation{DirectiveLocationField},
				Arguments: map[string]*InputValueDefinition{
					"name": {Type: NewNonNullType(StringType)},
				},
			},
		},
	})
	require.NoError(t, err)

	out := Print(s)
	assert.Contains(t, out, "schema {\n  query: RootQuery\n}\n")
	assert.Contains(t, out, "directive @tag(name: String!) repeatable on FIELD\n")
	// The built-in directives aren't printed.
	assert.NotContains(t, out, "directive @skip")
}
