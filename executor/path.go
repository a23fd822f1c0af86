package executor

// path is an immutable, linked response-path for attributing errors (and
// resolver look-ahead) to the exact field/list-index chain that produced
// them.
type path struct {
	Prev            *path
	StringComponent string
	IntComponent    int
	isInt           bool
}

func (p *path) WithIntComponent(n int) *path {
	return &path{Prev: p, IntComponent: n, isInt: true}
}

func (p *path) WithStringComponent(s string) *path {
	return &path{Prev: p, StringComponent: s}
}

func (p *path) Slice() []interface{} {
	if p == nil {
		return nil
	}
	if p.isInt {
		return append(p.Prev.Slice(), p.IntComponent)
	}
	return append(p.Prev.Slice(), p.StringComponent)
}
