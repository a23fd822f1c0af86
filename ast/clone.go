package ast

// Clone returns a deep copy of doc. Transform clones first so it never
// mutates the document a caller is still holding.
func Clone(doc *Document) *Document {
	if doc == nil {
		return nil
	}
	defs := make([]Definition, len(doc.Definitions))
	for i, d := range doc.Definitions {
		defs[i] = cloneDefinition(d)
	}
	return &Document{Definitions: defs}
}

func cloneDefinition(d Definition) Definition {
	switch n := d.(type) {
	case *OperationDefinition:
		c := *n
		c.Name = cloneName(n.Name)
		c.VariableDefinitions = cloneVariableDefinitions(n.VariableDefinitions)
		c.Directives = cloneDirectives(n.Directives)
		c.SelectionSet = cloneSelectionSet(n.SelectionSet)
		if n.OperationType != nil {
			ot := *n.OperationType
			c.OperationType = &ot
		}
		return &c
	case *FragmentDefinition:
		c := *n
		c.Name = cloneName(n.Name)
		c.TypeCondition = cloneNamedType(n.TypeCondition)
		c.Directives = cloneDirectives(n.Directives)
		c.SelectionSet = cloneSelectionSet(n.SelectionSet)
		return &c
	default:
		return d
	}
}

func cloneName(n *Name) *Name {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}

func cloneNamedType(n *NamedType) *NamedType {
	if n == nil {
		return nil
	}
	return &NamedType{Name: cloneName(n.Name)}
}

func cloneType(t Type) Type {
	switch n := t.(type) {
	case *NamedType:
		return cloneNamedType(n)
	case *ListType:
		return &ListType{Type: cloneType(n.Type), Opening: n.Opening, Closing: n.Closing}
	case *NonNullType:
		return &NonNullType{Type: cloneType(n.Type)}
	default:
		return t
	}
}

func cloneVariableDefinitions(defs []*VariableDefinition) []*VariableDefinition {
	if defs == nil {
		return nil
	}
	ret := make([]*VariableDefinition, len(defs))
	for i, d := range defs {
		ret[i] = &VariableDefinition{
			Variable:     &Variable{Name: cloneName(d.Variable.Name), Dollar: d.Variable.Dollar},
			Type:         cloneType(d.Type),
			DefaultValue: cloneValue(d.DefaultValue),
		}
	}
	return ret
}

func cloneDirectives(ds []*Directive) []*Directive {
	if ds == nil {
		return nil
	}
	ret := make([]*Directive, len(ds))
	for i, d := range ds {
		ret[i] = &Directive{
			Name:      cloneName(d.Name),
			Arguments: cloneArguments(d.Arguments),
			At:        d.At,
		}
	}
	return ret
}

func cloneArguments(as []*Argument) []*Argument {
	if as == nil {
		return nil
	}
	ret := make([]*Argument, len(as))
	for i, a := range as {
		ret[i] = &Argument{Name: cloneName(a.Name), Value: cloneValue(a.Value)}
	}
	return ret
}

func cloneSelectionSet(ss *SelectionSet) *SelectionSet {
	if ss == nil {
		return nil
	}
	sels := make([]Selection, len(ss.Selections))
	for i, s := range ss.Selections {
		sels[i] = cloneSelection(s)
	}
	return &SelectionSet{Selections: sels, Opening: ss.Opening, Closing: ss.Closing}
}

func cloneSelection(s Selection) Selection {
	switch n := s.(type) {
	case *Field:
		return &Field{
			Alias:        cloneName(n.Alias),
			Name:         cloneName(n.Name),
			Arguments:    cloneArguments(n.Arguments),
			Directives:   cloneDirectives(n.Directives),
			SelectionSet: cloneSelectionSet(n.SelectionSet),
		}
	case *FragmentSpread:
		return &FragmentSpread{
			FragmentName: cloneName(n.FragmentName),
			Directives:   cloneDirectives(n.Directives),
			Ellipsis:     n.Ellipsis,
		}
	case *InlineFragment:
		return &InlineFragment{
			TypeCondition: cloneNamedType(n.TypeCondition),
			Directives:    cloneDirectives(n.Directives),
			SelectionSet:  cloneSelectionSet(n.SelectionSet),
			Ellipsis:      n.Ellipsis,
		}
	default:
		return s
	}
}

func cloneValue(v Value) Value {
	switch n := v.(type) {
	case nil:
		return nil
	case *Variable:
		return &Variable{Name: cloneName(n.Name), Dollar: n.Dollar}
	case *ListValue:
		values := make([]Value, len(n.Values))
		for i, vv := range n.Values {
			values[i] = cloneValue(vv)
		}
		return &ListValue{Values: values, Opening: n.Opening, Closing: n.Closing}
	case *ObjectValue:
		fields := make([]*ObjectField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = &ObjectField{Name: cloneName(f.Name), Value: cloneValue(f.Value)}
		}
		return &ObjectValue{Fields: fields, Opening: n.Opening, Closing: n.Closing}
	default:
		// scalar literal (Int/Float/String/Boolean/Enum/Null): value types
		// carry no pointers worth copying beyond the struct itself.
		c := n
		return clonePointerValue(c)
	}
}

func clonePointerValue(v Value) Value {
	switch n := v.(type) {
	case *BooleanValue:
		c := *n
		return &c
	case *FloatValue:
		c := *n
		return &c
	case *IntValue:
		c := *n
		return &c
	case *StringValue:
		c := *n
		return &c
	case *EnumValue:
		c := *n
		return &c
	case *NullValue:
		c := *n
		return &c
	default:
		return v
	}
}
