// Package view maps a document.Buffer onto a fixed-size window of terminal
// cells. It owns the cursor and the scroll offsets and produces the rows the
// terminal layer draws.
package view

import (
	"iter"
	"slices"
	"strings"

	"github.com/zjrosen/hecto/internal/document"
	"github.com/zjrosen/hecto/internal/log"
)

// DefaultEmptyLineMarker is drawn on rows past the end of the document.
const DefaultEmptyLineMarker = "~"

// Options configures how rows are rendered.
type Options struct {
	// EmptyLineMarker is drawn on rows below the last line.
	EmptyLineMarker string
	// Welcome is centered a third of the way down when the buffer is a
	// pristine empty document. Empty disables it.
	Welcome string
}

// Viewport is the visible window. Top and Left are the first visible row and
// display column.
type Viewport struct {
	Top    int
	Left   int
	Height int
	Width  int
}

// Contains reports whether the cell at row and display column col is visible.
func (vp Viewport) Contains(row, col int) bool {
	return row >= vp.Top && row < vp.Top+vp.Height &&
		col >= vp.Left && col < vp.Left+vp.Width
}

// Frame is a snapshot of everything the terminal needs to draw the view.
type Frame struct {
	Rows      []string
	CursorRow int
	CursorCol int
	Dirty     bool
}

// View tracks a cursor and viewport over a buffer.
type View struct {
	buf      *document.Buffer
	cursor   document.Position
	viewport Viewport
	opts     Options

	// desiredCol is the display column vertical moves try to return to.
	desiredCol int
	sticky     bool
}

// New creates a view over buf with the cursor at the document start.
func New(buf *document.Buffer, width, height int, opts Options) *View {
	if buf == nil {
		buf = document.New(document.Options{})
	}
	if opts.EmptyLineMarker == "" {
		opts.EmptyLineMarker = DefaultEmptyLineMarker
	}
	v := &View{
		buf:      buf,
		opts:     opts,
		viewport: Viewport{Width: max(width, 1), Height: max(height, 1)},
	}
	v.RecomputeViewport()
	return v
}

// Buffer returns the viewed buffer.
func (v *View) Buffer() *document.Buffer {
	return v.buf
}

// SetBuffer replaces the buffer and resets the cursor and scroll offsets.
func (v *View) SetBuffer(buf *document.Buffer) {
	v.buf = buf
	v.cursor = document.Position{}
	v.viewport.Top, v.viewport.Left = 0, 0
	v.sticky = false
	v.RecomputeViewport()
}

// Cursor returns the cursor position in grapheme coordinates.
func (v *View) Cursor() document.Position {
	return v.cursor
}

// Viewport returns the current window.
func (v *View) Viewport() Viewport {
	return v.viewport
}

// SetCursor clamps pos into the buffer, moves the cursor there and forgets the
// sticky column.
func (v *View) SetCursor(pos document.Position) {
	v.cursor = pos.Clamp(v.buf)
	v.sticky = false
	v.RecomputeViewport()
}

// BufferChanged is called after an edit with the cursor position the edit
// returned.
func (v *View) BufferChanged(cursor document.Position) {
	v.SetCursor(cursor)
}

// Resize changes the window size. Dimensions below 1 are raised to 1.
func (v *View) Resize(width, height int) {
	v.viewport.Width = max(width, 1)
	v.viewport.Height = max(height, 1)
	v.RecomputeViewport()
}

// RecomputeViewport scrolls the minimum amount needed to show the cursor
// cell. A wide grapheme under the cursor is revealed in full when the window
// is wide enough.
func (v *View) RecomputeViewport() {
	vp := &v.viewport
	row := v.cursor.Row
	vp.Top = max(min(vp.Top, row), row-(vp.Height-1))
	vp.Top = max(vp.Top, 0)

	line := v.line(row)
	col := line.Column(v.cursor.Col)
	cell := 1
	if v.cursor.Col < line.Len() {
		cell = max(line.DisplayWidth(v.cursor.Col, v.cursor.Col+1), 1)
	}
	right := col + min(cell, vp.Width) - 1
	if right >= vp.Left+vp.Width {
		vp.Left = right - vp.Width + 1
	}
	if col < vp.Left {
		vp.Left = col
	}
}

// ScreenCursor returns the cursor cell relative to the viewport.
func (v *View) ScreenCursor() (row, col int) {
	line := v.line(v.cursor.Row)
	return v.cursor.Row - v.viewport.Top, line.Column(v.cursor.Col) - v.viewport.Left
}

// Rows yields one rendered string per viewport row.
func (v *View) Rows() iter.Seq[string] {
	return func(yield func(string) bool) {
		vp := v.viewport
		welcomeRow := -1
		if v.showWelcome() {
			welcomeRow = vp.Height / 3
		}
		for i := range vp.Height {
			var s string
			row := vp.Top + i
			switch {
			case i == welcomeRow:
				s = v.welcomeRow()
			case row < v.buf.LineCount():
				s = v.line(row).RenderSlice(vp.Left, vp.Width)
			default:
				s = v.opts.EmptyLineMarker
			}
			if !yield(s) {
				return
			}
		}
	}
}

// Frame collects the rows and cursor into a snapshot.
func (v *View) Frame() Frame {
	row, col := v.ScreenCursor()
	return Frame{
		Rows:      slices.Collect(v.Rows()),
		CursorRow: row,
		CursorCol: col,
		Dirty:     v.buf.IsDirty(),
	}
}

func (v *View) showWelcome() bool {
	return v.opts.Welcome != "" && v.buf.IsEmpty() && !v.buf.IsDirty()
}

func (v *View) welcomeRow() string {
	width := v.viewport.Width
	msg := document.NewLine(v.opts.Welcome, 1).RenderSlice(0, width)
	pad := (width - document.NewLine(msg, 1).Width()) / 2
	if pad <= 0 {
		return msg
	}
	return v.opts.EmptyLineMarker + strings.Repeat(" ", max(pad-1, 0)) + msg
}

// line returns the line at row. The cursor is kept in range, so a miss means
// an internal bug; an empty line is drawn instead of panicking.
func (v *View) line(row int) *document.Line {
	l, err := v.buf.Line(row)
	if err != nil {
		log.ErrorErr(log.CatView, "Row outside buffer", err, "row", row)
		return document.NewLine("", v.buf.TabWidth())
	}
	return l
}
