package editor

import "github.com/zjrosen/hecto/internal/view"

// Intent is an edit or navigation request. The set is closed: only the types
// in this file implement it.
type Intent interface {
	intentName() string
}

// InsertChar inserts text at the cursor. Text is usually one grapheme but
// may be a pasted run; line separators inside it split the line.
type InsertChar struct {
	Text string
}

// InsertNewline splits the current line at the cursor.
type InsertNewline struct{}

// DeleteBackward removes the grapheme before the cursor, joining with the
// previous line at column 0.
type DeleteBackward struct{}

// DeleteForward removes the grapheme under the cursor, joining with the next
// line at the line end.
type DeleteForward struct{}

// Move moves the cursor.
type Move struct {
	Direction view.Direction
}

// PageUp moves the cursor up by one viewport height.
type PageUp struct{}

// PageDown moves the cursor down by one viewport height.
type PageDown struct{}

// Resize changes the viewport size in cells.
type Resize struct {
	Width  int
	Height int
}

// Load replaces the document with Text.
type Load struct {
	Text string
}

// SaveRequest asks for the serialized document. The caller writes it and
// then calls Session.MarkSaved.
type SaveRequest struct{}

func (InsertChar) intentName() string     { return "insert_char" }
func (InsertNewline) intentName() string  { return "insert_newline" }
func (DeleteBackward) intentName() string { return "delete_backward" }
func (DeleteForward) intentName() string  { return "delete_forward" }
func (Move) intentName() string           { return "move" }
func (PageUp) intentName() string         { return "page_up" }
func (PageDown) intentName() string       { return "page_down" }
func (Resize) intentName() string         { return "resize" }
func (Load) intentName() string           { return "load" }
func (SaveRequest) intentName() string    { return "save" }

// Name returns the intent's span and log name.
func Name(in Intent) string {
	if in == nil {
		return "none"
	}
	return in.intentName()
}
