package token

import "sort"

// Positioner maps byte offsets within a source document to line/column
// positions. Lines and columns are 1-indexed; a column counts bytes from
// the start of its line, so a multi-byte UTF-8 character advances it by
// its byte length.
type Positioner struct {
	lineStarts []int
}

// NewPositioner scans src once, recording the offset each line begins at.
func NewPositioner(src []byte) *Positioner {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Positioner{lineStarts: starts}
}

// Position returns the line/column for a byte offset into the source
// passed to NewPositioner.
func (p *Positioner) Position(offset int) Position {
	line := sort.Search(len(p.lineStarts), func(i int) bool {
		return p.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return Position{
		Offset: offset,
		Line:   line + 1,
		Column: offset - p.lineStarts[line] + 1,
	}
}
