package schema

import (
	"context"
	"fmt"
)

type UnionType struct {
	Name        string
	Description string
	Directives  []*Directive
	MemberTypes []*ObjectType

	// ResolveType, if given, is consulted during abstract-type completion.
	// If nil (or it returns nil), each member object type's IsTypeOf is
	// tried instead.
	ResolveType func(value interface{}) *ObjectType

	IsVisible func(context.Context) bool
}

func (d *UnionType) String() string {
	return d.Name
}

func (d *UnionType) IsInputType() bool {
	return false
}

func (d *UnionType) IsOutputType() bool {
	return true
}

func (d *UnionType) IsSubTypeOf(other Type) bool {
	return d.IsSameType(other)
}

func (d *UnionType) IsSameType(other Type) bool {
	return d == Resolve(other)
}

func (d *UnionType) TypeName() string {
	return d.Name
}

func (d *UnionType) IsTypeVisible(ctx context.Context) bool {
	if d.IsVisible == nil {
		return true
	}
	return d.IsVisible(ctx)
}

func (d *UnionType) shallowValidate() error {
	if len(d.MemberTypes) == 0 {
		return fmt.Errorf("%v must have at least one member type", d.Name)
	}
	objNames := map[string]struct{}{}
	for _, member := range d.MemberTypes {
		if _, ok := objNames[member.Name]; ok {
			return fmt.Errorf("union member types must be unique")
		}
		if member.IsTypeOf == nil && d.ResolveType == nil {
			return fmt.Errorf("union member %v must define IsTypeOf unless the union defines ResolveType", member.Name)
		}
		objNames[member.Name] = struct{}{}
	}
	return nil
}
