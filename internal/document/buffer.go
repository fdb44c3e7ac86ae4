package document

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/zjrosen/hecto/internal/log"
)

// Options configures how a Buffer measures and serializes text.
type Options struct {
	// TabWidth is the distance between tab stops. Non-positive means DefaultTabWidth.
	TabWidth int

	// TrailingNewline writes a final line separator on Serialize.
	TrailingNewline bool
}

// Buffer is an ordered, never empty sequence of lines plus a modified flag.
type Buffer struct {
	lines []*Line
	opts  Options
	dirty bool
}

// New returns a buffer holding one empty line.
func New(opts Options) *Buffer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultTabWidth
	}
	return &Buffer{
		lines: []*Line{NewLine("", opts.TabWidth)},
		opts:  opts,
	}
}

// Load builds a clean buffer from file content. CRLF and lone CR separators
// are normalized to LF and one trailing separator is consumed, so "a\n" is
// the single line "a". Malformed bytes become Placeholder graphemes.
func Load(content string, opts Options) *Buffer {
	b := New(opts)
	content = normalizeSeparators(content)
	content = strings.TrimSuffix(content, "\n")

	parts := strings.Split(content, "\n")
	b.lines = make([]*Line, 0, len(parts))
	for _, part := range parts {
		b.lines = append(b.lines, NewLine(part, b.opts.TabWidth))
	}

	log.Debug(log.CatBuffer, "Loaded document",
		"lines", len(b.lines),
		"bytes", len(content),
		"valid_utf8", utf8.ValidString(content))
	return b
}

func normalizeSeparators(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Options returns the buffer's options.
func (b *Buffer) Options() Options {
	return b.opts
}

// TabWidth returns the tab stop distance.
func (b *Buffer) TabWidth() int {
	return b.opts.TabWidth
}

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the line at row. An out-of-range row is a contract violation.
func (b *Buffer) Line(row int) (*Line, error) {
	if row < 0 || row >= len(b.lines) {
		return nil, &ContractError{Op: "line", Index: row, Limit: len(b.lines)}
	}
	return b.lines[row], nil
}

// Lines iterates over rows and lines in order.
func (b *Buffer) Lines() iter.Seq2[int, *Line] {
	return func(yield func(int, *Line) bool) {
		for i, l := range b.lines {
			if !yield(i, l) {
				return
			}
		}
	}
}

// IsDirty reports whether the buffer changed since load or the last MarkSaved.
func (b *Buffer) IsDirty() bool {
	return b.dirty
}

// MarkSaved clears the modified flag.
func (b *Buffer) MarkSaved() {
	b.dirty = false
}

// IsEmpty reports whether the buffer is a single empty line.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && b.lines[0].Len() == 0
}

// InsertChar inserts ch at pos and returns the cursor position after the
// insert. A line separator splits the line.
func (b *Buffer) InsertChar(pos Position, ch string) Position {
	pos = pos.Clamp(b)
	if isSeparator(ch) {
		return b.InsertNewline(pos)
	}
	if strings.ContainsAny(ch, "\r\n") {
		return b.InsertText(pos, ch)
	}
	n := b.lines[pos.Row].Insert(pos.Col, ch)
	if n > 0 {
		b.dirty = true
	}
	return Position{Row: pos.Row, Col: pos.Col + n}
}

// InsertText inserts text that may contain any line separator style and
// returns the cursor position after the inserted text.
func (b *Buffer) InsertText(pos Position, text string) Position {
	pos = pos.Clamp(b)
	parts := strings.Split(normalizeSeparators(text), "\n")
	if len(parts) == 1 {
		return b.InsertChar(pos, text)
	}

	prefix, suffix := b.lines[pos.Row].Split(pos.Col)
	prefix.Insert(prefix.Len(), parts[0])

	added := make([]*Line, 0, len(parts))
	added = append(added, prefix)
	for _, part := range parts[1 : len(parts)-1] {
		added = append(added, NewLine(part, b.opts.TabWidth))
	}
	last := NewLine(parts[len(parts)-1], b.opts.TabWidth)
	cursor := Position{Row: pos.Row + len(parts) - 1, Col: last.Len()}
	last.Append(suffix)
	added = append(added, last)

	b.lines = slices.Replace(b.lines, pos.Row, pos.Row+1, added...)
	b.dirty = true
	return cursor
}

// InsertNewline splits the line at pos.Col, moving the tail to a new
// following line. Returns the start of the new line.
func (b *Buffer) InsertNewline(pos Position) Position {
	pos = pos.Clamp(b)
	prefix, suffix := b.lines[pos.Row].Split(pos.Col)
	b.lines = slices.Replace(b.lines, pos.Row, pos.Row+1, prefix, suffix)
	b.dirty = true
	return Position{Row: pos.Row + 1, Col: 0}
}

// DeleteAt removes the grapheme at pos. At the end of a line the next line
// is joined onto it. At the end of the document nothing happens. Reports
// whether the buffer changed.
func (b *Buffer) DeleteAt(pos Position) bool {
	pos = pos.Clamp(b)
	if b.lines[pos.Row].Remove(pos.Col) {
		b.dirty = true
		return true
	}
	return b.JoinLines(pos.Row)
}

// JoinLines appends line row+1 to line row and removes it.
// Reports false when row is the last line.
func (b *Buffer) JoinLines(row int) bool {
	if row < 0 || row >= len(b.lines)-1 {
		return false
	}
	b.lines[row].Append(b.lines[row+1])
	b.lines = slices.Delete(b.lines, row+1, row+2)
	b.dirty = true
	return true
}

// Text returns the lines joined by LF without a trailing separator.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.String())
	}
	return sb.String()
}

// Serialize returns the file content for saving. A trailing separator is
// added when TrailingNewline is set, except for an empty document.
func (b *Buffer) Serialize() string {
	text := b.Text()
	if b.opts.TrailingNewline && !b.IsEmpty() {
		text += "\n"
	}
	return text
}
