// Package document holds the Unicode-aware document model of the editor.
//
// Units:
//
//  1. Bytes: the storage unit of Go strings. Only used at conversion
//     boundaries (ByteOffset, IndexAtByte, Serialize).
//
//  2. Graphemes: user-perceived characters. All positions (Position.Col,
//     Line indices) are grapheme indices.
//
//  3. Display columns: terminal cells. ASCII = 1, CJK/emoji = 2, combining
//     marks = 0, tabs expand to the next tab stop.
package document

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Placeholder replaces malformed byte sequences on load and is drawn in
// place of control characters.
const Placeholder = "\uFFFD"

// Character classes for word motions.
const (
	ClassWhitespace = iota
	ClassWord
	ClassPunctuation
)

// Grapheme is one user-perceived character and its intrinsic cell width.
// Tabs carry width 0 here; their width depends on the column they start at.
type Grapheme struct {
	Text    string
	width   int
	control bool
}

// IsTab reports whether the grapheme is a horizontal tab.
func (g Grapheme) IsTab() bool {
	return g.Text == "\t"
}

// Width returns the intrinsic cell width: 0, 1 or 2.
func (g Grapheme) Width() int {
	return g.width
}

// Display returns the text drawn for the grapheme. Control characters are
// drawn as the Placeholder; the stored text is left untouched.
func (g Grapheme) Display() string {
	if g.control {
		return Placeholder
	}
	return g.Text
}

// Class returns the word-motion class of the grapheme, based on its first rune.
func (g Grapheme) Class() int {
	r, _ := utf8.DecodeRuneInString(g.Text)
	switch {
	case g.Text == "", unicode.IsSpace(r):
		return ClassWhitespace
	case r == '_', unicode.IsLetter(r), unicode.IsNumber(r):
		return ClassWord
	default:
		return ClassPunctuation
	}
}

func newGrapheme(cluster string) Grapheme {
	if cluster == "\t" {
		return Grapheme{Text: cluster}
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	if unicode.IsControl(r) {
		return Grapheme{Text: cluster, width: 1, control: true}
	}
	w := runewidth.StringWidth(cluster)
	if w > 2 {
		w = 2
	}
	return Grapheme{Text: cluster, width: w}
}

// Segment splits text into graphemes. Invalid UTF-8 runs become a single
// Placeholder grapheme each.
func Segment(text string) []Grapheme {
	if text == "" {
		return nil
	}
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, Placeholder)
	}

	out := make([]Grapheme, 0, len(text))
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.StepString(text, state)
		out = append(out, newGrapheme(cluster))
	}
	return out
}

// tabAdvance returns how many cells a tab starting at col occupies.
func tabAdvance(col, tabWidth int) int {
	return tabWidth - col%tabWidth
}

// isSeparator reports whether text is a line separator.
func isSeparator(text string) bool {
	return text == "\n" || text == "\r\n" || text == "\r"
}
