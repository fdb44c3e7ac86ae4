package document

import (
	"slices"
	"strings"
)

// DefaultTabWidth is used when a non-positive tab width is supplied.
const DefaultTabWidth = 4

// Line is one line of text stored as graphemes.
// All indices are grapheme indices; columns are display cells.
type Line struct {
	graphemes []Grapheme
	tabWidth  int
	width     int // cached total display width
}

// NewLine segments text into a Line. It never fails: malformed bytes become
// Placeholder graphemes.
func NewLine(text string, tabWidth int) *Line {
	return newLine(Segment(text), tabWidth)
}

func newLine(gs []Grapheme, tabWidth int) *Line {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	l := &Line{graphemes: gs, tabWidth: tabWidth}
	l.recomputeWidth()
	return l
}

func (l *Line) recomputeWidth() {
	col := 0
	for _, g := range l.graphemes {
		col += l.advance(g, col)
	}
	l.width = col
}

// advance returns the cells g occupies when it starts at col.
func (l *Line) advance(g Grapheme, col int) int {
	if g.IsTab() {
		return tabAdvance(col, l.tabWidth)
	}
	return g.width
}

// Len returns the number of graphemes.
func (l *Line) Len() int {
	return len(l.graphemes)
}

// Width returns the display width of the whole line.
func (l *Line) Width() int {
	return l.width
}

// TabWidth returns the tab stop distance used for column math.
func (l *Line) TabWidth() int {
	return l.tabWidth
}

// Grapheme returns the grapheme at index.
// Returns false if index is out of bounds.
func (l *Line) Grapheme(index int) (Grapheme, bool) {
	if index < 0 || index >= len(l.graphemes) {
		return Grapheme{}, false
	}
	return l.graphemes[index], true
}

// Graphemes returns a copy of the line's graphemes.
func (l *Line) Graphemes() []Grapheme {
	return slices.Clone(l.graphemes)
}

// String returns the line text.
func (l *Line) String() string {
	return l.Substring(0, len(l.graphemes))
}

// Substring returns the text of graphemes [start, end), clamped to the line.
func (l *Line) Substring(start, end int) string {
	start, end = l.clampRange(start, end)
	var sb strings.Builder
	for _, g := range l.graphemes[start:end] {
		sb.WriteString(g.Text)
	}
	return sb.String()
}

func (l *Line) clampIndex(index int) int {
	return max(0, min(index, len(l.graphemes)))
}

func (l *Line) clampRange(start, end int) (int, int) {
	start = l.clampIndex(start)
	end = l.clampIndex(end)
	if end < start {
		end = start
	}
	return start, end
}

// Insert inserts the graphemes of text before index and returns how many
// graphemes were inserted. An index past the end appends.
func (l *Line) Insert(index int, text string) int {
	gs := Segment(text)
	if len(gs) == 0 {
		return 0
	}
	index = l.clampIndex(index)
	l.graphemes = slices.Insert(l.graphemes, index, gs...)
	l.recomputeWidth()
	return len(gs)
}

// Remove deletes the grapheme at index. It reports false and leaves the line
// unchanged when index is out of bounds; joining at line end is the buffer's job.
func (l *Line) Remove(index int) bool {
	if index < 0 || index >= len(l.graphemes) {
		return false
	}
	l.graphemes = slices.Delete(l.graphemes, index, index+1)
	l.recomputeWidth()
	return true
}

// Split returns the graphemes before index and from index on as two new lines.
func (l *Line) Split(index int) (prefix, suffix *Line) {
	index = l.clampIndex(index)
	prefix = newLine(slices.Clone(l.graphemes[:index]), l.tabWidth)
	suffix = newLine(slices.Clone(l.graphemes[index:]), l.tabWidth)
	return prefix, suffix
}

// Append adds the graphemes of other to the end of l.
func (l *Line) Append(other *Line) {
	if other == nil || len(other.graphemes) == 0 {
		return
	}
	l.graphemes = append(l.graphemes, other.graphemes...)
	l.recomputeWidth()
}

// Clone returns an independent copy of the line.
func (l *Line) Clone() *Line {
	return &Line{graphemes: slices.Clone(l.graphemes), tabWidth: l.tabWidth, width: l.width}
}

// Equal reports whether both lines hold the same graphemes.
func (l *Line) Equal(other *Line) bool {
	if other == nil {
		return false
	}
	return slices.Equal(l.graphemes, other.graphemes)
}

// Column returns the display column at which the grapheme at index starts.
// Index is clamped; Column(Len()) == Width().
func (l *Line) Column(index int) int {
	index = l.clampIndex(index)
	if index == len(l.graphemes) {
		return l.width
	}
	col := 0
	for _, g := range l.graphemes[:index] {
		col += l.advance(g, col)
	}
	return col
}

// DisplayWidth returns the cells covered by graphemes [start, end). Tabs are
// expanded relative to the column they start at on the line, so the result
// is additive over adjacent ranges.
func (l *Line) DisplayWidth(start, end int) int {
	start, end = l.clampRange(start, end)
	col := l.Column(start)
	width := 0
	for _, g := range l.graphemes[start:end] {
		adv := l.advance(g, col)
		col += adv
		width += adv
	}
	return width
}

// IndexAtColumn returns the index of the grapheme covering display column
// col. Columns past the end map to Len().
func (l *Line) IndexAtColumn(col int) int {
	if col <= 0 {
		return 0
	}
	c := 0
	for i, g := range l.graphemes {
		adv := l.advance(g, c)
		if adv > 0 && col < c+adv {
			return i
		}
		c += adv
	}
	return len(l.graphemes)
}

// ByteOffset returns the byte offset of the grapheme at index in String().
func (l *Line) ByteOffset(index int) int {
	index = l.clampIndex(index)
	off := 0
	for _, g := range l.graphemes[:index] {
		off += len(g.Text)
	}
	return off
}

// IndexAtByte returns the index of the grapheme containing byte offset off.
// Offsets past the end map to Len().
func (l *Line) IndexAtByte(off int) int {
	if off <= 0 {
		return 0
	}
	pos := 0
	for i, g := range l.graphemes {
		next := pos + len(g.Text)
		if off < next {
			return i
		}
		pos = next
	}
	return len(l.graphemes)
}

// RenderSlice returns the text visible in display columns
// [firstCol, firstCol+width). Tabs are expanded to spaces. A grapheme cut by
// either edge of the window is drawn as blanks for its visible cells, so the
// result never exceeds width cells.
func (l *Line) RenderSlice(firstCol, width int) string {
	if width <= 0 {
		return ""
	}
	firstCol = max(firstCol, 0)
	end := firstCol + width

	var sb strings.Builder
	col := 0
	// Zero-width graphemes are only drawn after a fully drawn base.
	baseDrawn := firstCol == 0
	for _, g := range l.graphemes {
		start := col
		adv := l.advance(g, col)
		col += adv

		if adv == 0 {
			if baseDrawn {
				sb.WriteString(g.Display())
			}
			continue
		}
		if col <= firstCol {
			baseDrawn = false
			continue
		}
		if start >= end {
			break
		}

		if start >= firstCol && col <= end {
			if g.IsTab() {
				sb.WriteString(strings.Repeat(" ", adv))
			} else {
				sb.WriteString(g.Display())
			}
			baseDrawn = true
			continue
		}
		visible := min(col, end) - max(start, firstCol)
		sb.WriteString(strings.Repeat(" ", visible))
		baseDrawn = false
	}
	return sb.String()
}
