package ast

// Transform returns a copy of doc in which each node n offered to f has
// been replaced by f(n), bottom-up: children are transformed before their
// parent is offered to f. Name, ObjectField and VariableDefinition nodes
// are copied but never offered to f. f returns nil to keep a node
// unchanged; otherwise it must return a node compatible with the slot the
// original occupied (a Value for a Value, a Selection for a Selection, and
// so on). The original document is never modified.
//
// Walk covers the read-only cases; Transform exists for the rewriting
// ones, like expanding fragment spreads in place.
func Transform(doc *Document, f func(Node) Node) *Document {
	doc = Clone(doc)
	t := &transformer{f: f}
	for i, d := range doc.Definitions {
		doc.Definitions[i] = t.definition(d)
	}
	if r, ok := t.apply(doc).(*Document); ok {
		return r
	}
	return doc
}

type transformer struct {
	f func(Node) Node
}

func (t *transformer) apply(n Node) Node {
	if r := t.f(n); r != nil {
		return r
	}
	return n
}

func (t *transformer) definition(d Definition) Definition {
	switch n := d.(type) {
	case *OperationDefinition:
		for _, vd := range n.VariableDefinitions {
			t.variableDefinition(vd)
		}
		n.Directives = t.directives(n.Directives)
		n.SelectionSet = t.selectionSet(n.SelectionSet)
	case *FragmentDefinition:
		n.Directives = t.directives(n.Directives)
		n.SelectionSet = t.selectionSet(n.SelectionSet)
	}
	if r, ok := t.apply(d).(Definition); ok {
		return r
	}
	return d
}

func (t *transformer) variableDefinition(vd *VariableDefinition) {
	if vd.DefaultValue != nil {
		vd.DefaultValue = t.value(vd.DefaultValue)
	}
	vd.Type = t.typeRef(vd.Type)
}

func (t *transformer) selectionSet(ss *SelectionSet) *SelectionSet {
	if ss == nil {
		return nil
	}
	for i, s := range ss.Selections {
		ss.Selections[i] = t.selection(s)
	}
	if r, ok := t.apply(ss).(*SelectionSet); ok {
		return r
	}
	return ss
}

func (t *transformer) selection(s Selection) Selection {
	switch n := s.(type) {
	case *Field:
		n.Arguments = t.arguments(n.Arguments)
		n.Directives = t.directives(n.Directives)
		n.SelectionSet = t.selectionSet(n.SelectionSet)
	case *FragmentSpread:
		n.Directives = t.directives(n.Directives)
	case *InlineFragment:
		n.Directives = t.directives(n.Directives)
		n.SelectionSet = t.selectionSet(n.SelectionSet)
	}
	if r, ok := t.apply(s).(Selection); ok {
		return r
	}
	return s
}

func (t *transformer) arguments(args []*Argument) []*Argument {
	for _, a := range args {
		a.Value = t.value(a.Value)
		if r, ok := t.apply(a).(*Argument); ok {
			*a = *r
		}
	}
	return args
}

func (t *transformer) directives(ds []*Directive) []*Directive {
	for _, d := range ds {
		d.Arguments = t.arguments(d.Arguments)
		if r, ok := t.apply(d).(*Directive); ok {
			*d = *r
		}
	}
	return ds
}

func (t *transformer) value(v Value) Value {
	switch n := v.(type) {
	case *ListValue:
		for i, item := range n.Values {
			n.Values[i] = t.value(item)
		}
	case *ObjectValue:
		for _, field := range n.Fields {
			field.Value = t.value(field.Value)
		}
	}
	if r, ok := t.apply(v).(Value); ok {
		return r
	}
	return v
}

func (t *transformer) typeRef(ty Type) Type {
	switch n := ty.(type) {
	case *ListType:
		n.Type = t.typeRef(n.Type)
	case *NonNullType:
		n.Type = t.typeRef(n.Type)
	}
	if r, ok := t.apply(ty).(Type); ok {
		return r
	}
	return ty
}
