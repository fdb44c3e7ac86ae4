package view

import "github.com/zjrosen/hecto/internal/document"

// Direction is a cursor movement intent.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	LineStart
	LineEnd
	WordForward
	WordBackward
	PageUp
	PageDown
	DocumentStart
	DocumentEnd
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case LineStart:
		return "line_start"
	case LineEnd:
		return "line_end"
	case WordForward:
		return "word_forward"
	case WordBackward:
		return "word_backward"
	case PageUp:
		return "page_up"
	case PageDown:
		return "page_down"
	case DocumentStart:
		return "document_start"
	case DocumentEnd:
		return "document_end"
	default:
		return "unknown"
	}
}

// MoveCursor moves the cursor and scrolls the viewport to follow it.
func (v *View) MoveCursor(dir Direction) {
	switch dir {
	case Up:
		v.moveVertical(-1)
	case Down:
		v.moveVertical(1)
	case PageUp:
		v.moveVertical(-v.viewport.Height)
	case PageDown:
		v.moveVertical(v.viewport.Height)
	default:
		v.cursor = v.moveHorizontal(dir)
		v.sticky = false
	}
	v.RecomputeViewport()
}

func (v *View) moveHorizontal(dir Direction) document.Position {
	p := v.cursor
	line := v.line(p.Row)
	last := v.buf.LineCount() - 1

	switch dir {
	case Left:
		if p.Col > 0 {
			p.Col--
		} else if p.Row > 0 {
			p.Row--
			p.Col = v.line(p.Row).Len()
		}
	case Right:
		if p.Col < line.Len() {
			p.Col++
		} else if p.Row < last {
			p.Row++
			p.Col = 0
		}
	case LineStart:
		p.Col = 0
	case LineEnd:
		p.Col = line.Len()
	case WordForward:
		p = v.nextWordStart(p)
	case WordBackward:
		p = v.prevWordStart(p)
	case DocumentStart:
		p = document.Position{}
	case DocumentEnd:
		p = document.Position{Row: last, Col: v.line(last).Len()}
	}
	return p
}

// moveVertical moves delta rows keeping the sticky display column.
func (v *View) moveVertical(delta int) {
	if !v.sticky {
		v.desiredCol = v.cursor.DisplayColumn(v.line(v.cursor.Row))
		v.sticky = true
	}
	row := max(0, min(v.cursor.Row+delta, v.buf.LineCount()-1))
	if row == v.cursor.Row {
		return
	}
	v.cursor = document.Position{Row: row, Col: v.line(row).IndexAtColumn(v.desiredCol)}
}

func class(line *document.Line, i int) int {
	g, _ := line.Grapheme(i)
	return g.Class()
}

// nextWordStart skips the rest of the current word and the whitespace after
// it, stopping at the line end. From the line end it goes to the first word
// of the next line.
func (v *View) nextWordStart(p document.Position) document.Position {
	line := v.line(p.Row)
	n := line.Len()

	if p.Col >= n {
		if p.Row >= v.buf.LineCount()-1 {
			return p
		}
		next := v.line(p.Row + 1)
		col := 0
		for col < next.Len() && class(next, col) == document.ClassWhitespace {
			col++
		}
		return document.Position{Row: p.Row + 1, Col: col}
	}

	i := p.Col
	if c := class(line, i); c != document.ClassWhitespace {
		for i < n && class(line, i) == c {
			i++
		}
	}
	for i < n && class(line, i) == document.ClassWhitespace {
		i++
	}
	return document.Position{Row: p.Row, Col: i}
}

// prevWordStart moves to the start of the word before the cursor. From column
// 0 it goes to the end of the previous line.
func (v *View) prevWordStart(p document.Position) document.Position {
	if p.Col == 0 {
		if p.Row == 0 {
			return p
		}
		return document.Position{Row: p.Row - 1, Col: v.line(p.Row - 1).Len()}
	}

	line := v.line(p.Row)
	i := min(p.Col, line.Len()) - 1
	for i > 0 && class(line, i) == document.ClassWhitespace {
		i--
	}
	c := class(line, i)
	if c == document.ClassWhitespace {
		return document.Position{Row: p.Row, Col: 0}
	}
	for i > 0 && class(line, i-1) == c {
		i--
	}
	return document.Position{Row: p.Row, Col: i}
}
