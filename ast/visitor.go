package ast

// Action controls how Walk proceeds after a Visitor method runs.
type Action int

const (
	// Continue walks into the node's children as usual.
	Continue Action = iota
	// Skip skips the node's children but continues the walk elsewhere.
	Skip
	// Stop halts the walk entirely.
	Stop
)

// Visitor is implemented by callers that want to traverse a document.
// Enter is called before a node's children are visited and its Action
// return value controls whether those children are visited at all. Leave
// is called after a node's children (if visited) have been visited, and is
// skipped if Enter returned Skip or Stop for that node.
type Visitor interface {
	Enter(node Node) Action
	Leave(node Node)
}

// baseVisitor embeds into visitors that only care about a handful of node
// kinds, avoiding boilerplate no-op methods.
type baseVisitor struct{}

func (baseVisitor) Enter(Node) Action { return Continue }
func (baseVisitor) Leave(Node) {}

// Walk traverses node and its descendants in depth-first order, invoking v
// at each step. It returns false if the walk was halted early via Stop.
func Walk(v Visitor, node Node) bool {
	if node == nil || isNilNode(node) {
		return true
	}
	switch action := v.Enter(node); action {
	case Stop:
		return false
	case Skip:
		return true
	}

	cont := true
	switch n := node.(type) {
	case *Document:
		for _, d := range n.Definitions {
			if !Walk(v, d) {
				cont = false
				break
			}
		}
	case *OperationDefinition:
		if cont {
			cont = walkName(v, n.Name)
		}
		for _, vd := range n.VariableDefinitions {
			if !cont {
				break
			}
			cont = Walk(v, vd)
		}
		for _, d := range n.Directives {
			if !cont {
				break
			}
			cont = Walk(v, d)
		}
		if cont {
			cont = Walk(v, n.SelectionSet)
		}
	case *FragmentDefinition:
		cont = walkName(v, n.Name)
		if cont {
			cont = Walk(v, n.TypeCondition)
		}
		for _, d := range n.Directives {
			if !cont {
				break
			}
			cont = Walk(v, d)
		}
		if cont {
			cont = Walk(v, n.SelectionSet)
		}
	case *VariableDefinition:
		cont = Walk(v, n.Variable)
		if cont {
			cont = Walk(v, n.Type)
		}
		if cont && n.DefaultValue != nil {
			cont = Walk(v, n.DefaultValue)
		}
	case *ListType:
		cont = Walk(v, n.Type)
	case *NonNullType:
		cont = Walk(v, n.Type)
	case *Directive:
		cont = walkName(v, n.Name)
		for _, a := range n.Arguments {
			if !cont {
				break
			}
			cont = Walk(v, a)
		}
	case *SelectionSet:
		for _, s := range n.Selections {
			if !cont {
				break
			}
			cont = Walk(v, s)
		}
	case *Field:
		if n.Alias != nil {
			cont = walkName(v, n.Alias)
		}
		if cont {
			cont = walkName(v, n.Name)
		}
		for _, a := range n.Arguments {
			if !cont {
				break
			}
			cont = Walk(v, a)
		}
		for _, d := range n.Directives {
			if !cont {
				break
			}
			cont = Walk(v, d)
		}
		if cont && n.SelectionSet != nil {
			cont = Walk(v, n.SelectionSet)
		}
	case *FragmentSpread:
		cont = walkName(v, n.FragmentName)
		for _, d := range n.Directives {
			if !cont {
				break
			}
			cont = Walk(v, d)
		}
	case *InlineFragment:
		if n.TypeCondition != nil {
			cont = Walk(v, n.TypeCondition)
		}
		for _, d := range n.Directives {
			if !cont {
				break
			}
			cont = Walk(v, d)
		}
		if cont {
			cont = Walk(v, n.SelectionSet)
		}
	case *Argument:
		cont = walkName(v, n.Name)
		if cont {
			cont = Walk(v, n.Value)
		}
	case *Name:
		// leaf
	case *NamedType:
		cont = walkName(v, n.Name)
	case *Variable:
		cont = walkName(v, n.Name)
	case *ListValue:
		for _, val := range n.Values {
			if !cont {
				break
			}
			cont = Walk(v, val)
		}
	case *ObjectValue:
		for _, f := range n.Fields {
			if !cont {
				break
			}
			cont = Walk(v, f)
		}
	case *ObjectField:
		cont = walkName(v, n.Name)
		if cont {
			cont = Walk(v, n.Value)
		}
	case *BooleanValue, *FloatValue, *IntValue, *StringValue, *EnumValue, *NullValue:
		// leaves
	}

	if cont {
		v.Leave(node)
	}
	return cont
}

func walkName(v Visitor, n *Name) bool {
	if n == nil {
		return true
	}
	return Walk(v, n)
}

// isNilNode reports whether node holds a typed nil pointer, which Walk
// should treat the same as an untyped nil.
func isNilNode(node Node) bool {
	switch n := node.(type) {
	case *Document:
		return n == nil
	case *OperationDefinition:
		return n == nil
	case *FragmentDefinition:
		return n == nil
	case *VariableDefinition:
		return n == nil
	case *ListType:
		return n == nil
	case *NonNullType:
		return n == nil
	case *Directive:
		return n == nil
	case *SelectionSet:
		return n == nil
	case *Field:
		return n == nil
	case *FragmentSpread:
		return n == nil
	case *InlineFragment:
		return n == nil
	case *Argument:
		return n == nil
	case *Name:
		return n == nil
	case *NamedType:
		return n == nil
	case *Variable:
		return n == nil
	case *ListValue:
		return n == nil
	case *ObjectValue:
		return n == nil
	case *ObjectField:
		return n == nil
	case *BooleanValue:
		return n == nil
	case *FloatValue:
		return n == nil
	case *IntValue:
		return n == nil
	case *StringValue:
		return n == nil
	case *EnumValue:
		return n == nil
	case *NullValue:
		return n == nil
	default:
		return false
	}
}

// Inspect is a convenience wrapper around Walk for callers that only need
// an Enter callback. f is invoked for each node; returning false prevents
// Walk from descending into that node's children.
func Inspect(node Node, f func(Node) bool) {
	Walk(&inspectVisitor{f: f}, node)
}

type inspectVisitor struct {
	baseVisitor
	f func(Node) bool
}

func (iv *inspectVisitor) Enter(node Node) Action {
	if iv.f(node) {
		return Continue
	}
	return Skip
}
