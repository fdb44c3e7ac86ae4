package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/hecto/internal/document"
	"github.com/zjrosen/hecto/internal/view"
)

var (
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	statusBarStyle = lipgloss.NewStyle().Reverse(true)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.session.Frame()
	var sb strings.Builder
	for i, row := range frame.Rows {
		if i == frame.CursorRow {
			row = overlayCursor(row, frame.CursorCol)
		}
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	if m.cfg.UI.ShowStatusBar {
		sb.WriteString(statusBarStyle.Render(m.statusLine(frame)))
		sb.WriteByte('\n')
	}
	sb.WriteString(ansi.Truncate(m.message, m.width, ""))
	return sb.String()
}

// statusLine is the unstyled status bar, exactly m.width cells wide.
func (m Model) statusLine(frame view.Frame) string {
	modified := ""
	if frame.Dirty {
		modified = " (modified)"
	}
	left := fmt.Sprintf("%s - %d lines%s", m.fileName(), m.session.Buffer().LineCount(), modified)

	cursor := m.session.View().Cursor()
	line, err := m.session.Buffer().Line(cursor.Row)
	col := 0
	if err == nil {
		col = cursor.DisplayColumn(line)
	}
	right := fmt.Sprintf("%d:%d", cursor.Row+1, col+1)

	return fitStatus(left, right, m.width)
}

// fitStatus lays out left and right in width cells, truncating left first.
func fitStatus(left, right string, width int) string {
	rw := ansi.StringWidth(right)
	if rw >= width {
		return ansi.Truncate(right, width, "")
	}
	avail := width - rw - 1
	if ansi.StringWidth(left) > avail {
		left = ansi.Truncate(left, avail, "…")
	}
	gap := width - ansi.StringWidth(left) - rw
	return left + strings.Repeat(" ", gap) + right
}

// overlayCursor draws the cell at display column col in reverse video. Rows
// are already rendered, so every grapheme in them is a whole cell group.
func overlayCursor(row string, col int) string {
	line := document.NewLine(row, 1)
	idx := line.IndexAtColumn(col)
	if idx >= line.Len() {
		pad := max(col-line.Width(), 0)
		return row + strings.Repeat(" ", pad) + cursorStyle.Render(" ")
	}
	return line.Substring(0, idx) +
		cursorStyle.Render(line.Substring(idx, idx+1)) +
		line.Substring(idx+1, line.Len())
}
