package document

import "fmt"

// Position is a logical document location. Col is a grapheme index, not a
// byte offset or display column.
type Position struct {
	Row int
	Col int
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Before reports whether p comes before q in document order.
func (p Position) Before(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// Clamp returns p moved into the bounds of b: Row into [0, LineCount-1],
// Col into [0, line length].
func (p Position) Clamp(b *Buffer) Position {
	row := max(0, min(p.Row, b.LineCount()-1))
	col := max(0, min(p.Col, b.lines[row].Len()))
	return Position{Row: row, Col: col}
}

// ByteOffset returns the byte offset of p.Col within line. Col is clamped.
func (p Position) ByteOffset(line *Line) int {
	return line.ByteOffset(p.Col)
}

// DisplayColumn returns the display column at which p.Col starts on line.
func (p Position) DisplayColumn(line *Line) int {
	return line.Column(p.Col)
}

// PositionAtByte returns the position of the grapheme containing byte offset
// off of line, on the given row. Offsets are clamped to the line.
func PositionAtByte(row int, line *Line, off int) Position {
	return Position{Row: row, Col: line.IndexAtByte(off)}
}
