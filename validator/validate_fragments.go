package validator

import (
	"fmt"

	"github.com/brinkql/brink/ast"
	"github.com/brinkql/brink/schema"
)

// validateFragments checks fragment declarations (unique names, valid
// type conditions, no unused fragments) and fragment spreads (target
// exists, no cycles, spread is possible given its parent type).
func validateFragments(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	ret := validateFragmentDeclarations(doc, s, typeInfo)
	ret = append(ret, validateFragmentSpreads(doc, s, typeInfo)...)
	return ret
}

func validateTypeCondition(s *schema.Schema, tc *ast.NamedType) *Error {
	switch namedType(s, tc.Name.Name).(type) {
	case *schema.ObjectType, *schema.InterfaceType, *schema.UnionType:
		return nil
	case nil:
		return newError(tc.Name, "undefined type %q", tc.Name.Name)
	default:
		return newError(tc.Name, "fragments may only be defined on objects, interfaces, and unions")
	}
}

func validateFragmentDeclarations(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	var ret []*Error

	fragmentsByName := map[string]*ast.FragmentDefinition{}
	for _, def := range doc.Definitions {
		if def, ok := def.(*ast.FragmentDefinition); ok {
			if _, ok := fragmentsByName[def.Name.Name]; ok {
				ret = append(ret, newError(def.Name, "a fragment named %q already exists", def.Name.Name))
			} else {
				fragmentsByName[def.Name.Name] = def
			}
			if err := validateTypeCondition(s, def.TypeCondition); err != nil {
				ret = append(ret, err)
			}
		}
	}

	usedFragments := map[string]struct{}{}
	ast.Inspect(doc, func(node ast.Node) bool {
		switch node := node.(type) {
		case *ast.FragmentSpread:
			usedFragments[node.FragmentName.Name] = struct{}{}
		case *ast.InlineFragment:
			if node.TypeCondition != nil {
				if err := validateTypeCondition(s, node.TypeCondition); err != nil {
					ret = append(ret, err)
				}
			}
		}
		return true
	})

	for name, def := range fragmentsByName {
		if _, ok := usedFragments[name]; !ok {
			ret = append(ret, newError(def, "fragment %q is never used", name))
		}
	}

	return ret
}

func validateFragmentSpreads(doc *ast.Document, s *schema.Schema, typeInfo *TypeInfo) []*Error {
	var ret []*Error

	fragmentsByName := map[string]*ast.FragmentDefinition{}
	directFragmentDependencies := map[string]map[string]struct{}{}
	for _, def := range doc.Definitions {
		if def, ok := def.(*ast.FragmentDefinition); ok {
			fragmentsByName[def.Name.Name] = def

			deps := map[string]struct{}{}
			ast.Inspect(def, func(node ast.Node) bool {
				if node, ok := node.(*ast.FragmentSpread); ok {
					deps[node.FragmentName.Name] = struct{}{}
				}
				return true
			})
			directFragmentDependencies[def.Name.Name] = deps
		}
	}

	for name := range fragmentsByName {
		toVisit := []string{name}
		encountered := map[string]struct{}{}
		cycleFound := false
		for i := 0; i < len(toVisit) && !cycleFound; i++ {
			for dep := range directFragmentDependencies[toVisit[i]] {
				if _, ok := encountered[dep]; !ok {
					if dep == name {
						cycleFound = true
						break
					}
					toVisit = append(toVisit, dep)
					encountered[dep] = struct{}{}
				}
			}
		}
		if cycleFound {
			ret = append(ret, newError(fragmentsByName[name], "cannot spread fragment %q within itself", name))
		}
	}

	v := &fragmentSpreadVisitor{
		s:               s,
		typeInfo:        typeInfo,
		fragmentsByName: fragmentsByName,
	}
	ast.Walk(v, doc)
	return append(ret, v.errors...)
}

type fragmentSpreadVisitor struct {
	s               *schema.Schema
	typeInfo        *TypeInfo
	fragmentsByName map[string]*ast.FragmentDefinition
	scopes          []schema.NamedType
	errors          []*Error
}

func (v *fragmentSpreadVisitor) Enter(node ast.Node) ast.Action {
	var scope schema.NamedType

	switch n := node.(type) {
	case *ast.SelectionSet:
		scope = v.typeInfo.SelectionSetTypes[n]
	case *ast.FragmentSpread:
		name := n.FragmentName.Name
		def, ok := v.fragmentsByName[name]
		if !ok {
			v.errors = append(v.errors, newError(n.FragmentName, "undefined fragment %q", name))
		} else if len(v.scopes) > 0 {
			v.validateSpread(def.TypeCondition, v.scopes[len(v.scopes)-1])
		}
	case *ast.InlineFragment:
		if n.TypeCondition != nil && len(v.scopes) > 0 {
			v.validateSpread(n.TypeCondition, v.scopes[len(v.scopes)-1])
		}
	}

	v.scopes = append(v.scopes, scope)
	return ast.Continue
}

func (v *fragmentSpreadVisitor) Leave(ast.Node) {
	v.scopes = v.scopes[:len(v.scopes)-1]
}

func (v *fragmentSpreadVisitor) validateSpread(tc *ast.NamedType, parentType schema.NamedType) {
	if parentType == nil {
		v.errors = append(v.errors, newSecondaryError(tc, "no type information for fragment spread's parent selection"))
		return
	}
	fragmentType := namedType(v.s, tc.Name.Name)
	switch fragmentType.(type) {
	case *schema.ObjectType, *schema.InterfaceType, *schema.UnionType:
	default:
		return
	}
	a := possibleTypes(v.s, fragmentType)
	b := possibleTypes(v.s, parentType)
	for k := range a {
		if _, ok := b[k]; ok {
			return
		}
	}
	v.errors = append(v.errors, newError(tc, "fragment cannot be spread here, since no type could satisfy both %v and %v", fragmentType.TypeName(), parentType.TypeName()))
}

func possibleTypes(s *schema.Schema, t schema.NamedType) map[string]schema.NamedType {
	ret := map[string]schema.NamedType{}
	switch t := t.(type) {
	case *schema.ObjectType:
		ret[t.Name] = t
	case *schema.InterfaceType:
		for _, obj := range s.InterfaceImplementations(t.Name) {
			ret[obj.Name] = obj
		}
	case *schema.UnionType:
		for _, member := range t.MemberTypes {
			ret[member.TypeName()] = member
		}
	default:
		panic(fmt.Sprintf("validator: unexpected type: %T", t))
	}
	return ret
}
