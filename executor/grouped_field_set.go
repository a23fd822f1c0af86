package executor

import (
	"github.com/brinkql/brink/ast"
)

// GroupedFieldSetItem is a response-key/field-list pair, the result of
// merging every selection (including across fragments) that shares a
// response key.
type GroupedFieldSetItem struct {
	Key    string
	Fields []*ast.Field
}

// GroupedFieldSet holds the result of the CollectFields algorithm:
// selections grouped by response key, in first-encountered order.
type GroupedFieldSet struct {
	indexByKey map[string]int
	items      []GroupedFieldSetItem
}

func NewGroupedFieldSetWithCapacity(n int) *GroupedFieldSet {
	return &GroupedFieldSet{
		indexByKey: make(map[string]int, n),
		items:      make([]GroupedFieldSetItem, 0, n),
	}
}

func (s *GroupedFieldSet) Append(key string, field *ast.Field) {
	if idx, ok := s.indexByKey[key]; ok {
		s.items[idx].Fields = append(s.items[idx].Fields, field)
		return
	}
	s.indexByKey[key] = len(s.items)
	s.items = append(s.items, GroupedFieldSetItem{Key: key, Fields: []*ast.Field{field}})
}

func (s *GroupedFieldSet) Len() int {
	return len(s.items)
}

func (s *GroupedFieldSet) Items() []GroupedFieldSetItem {
	return s.items
}
