// Package app contains the root application model: a Bubble Tea program that
// turns key presses into editor intents and draws the session's frames.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/hecto/internal/config"
	"github.com/zjrosen/hecto/internal/editor"
	"github.com/zjrosen/hecto/internal/keys"
	"github.com/zjrosen/hecto/internal/log"
	"github.com/zjrosen/hecto/internal/pubsub"
	"github.com/zjrosen/hecto/internal/view"
	"github.com/zjrosen/hecto/internal/watcher"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// HelpMessage is shown in the message bar at startup.
const HelpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit"

// Options configures the application model.
type Options struct {
	Config config.Config
	// Path is the file being edited. Empty starts an unnamed buffer.
	Path    string
	Version string
	Tracer  trace.Tracer
}

// Model is the root application state.
type Model struct {
	cfg     config.Config
	keys    keys.KeyMap
	session *editor.Session
	path    string
	// saved is the file content as last read or written.
	saved string

	width  int
	height int

	message    string
	messageSeq int
	quitsLeft  int
	quitting   bool

	// File watcher (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.Change]
}

// messageExpiredMsg clears the message bar if no newer message replaced it.
type messageExpiredMsg struct{ seq int }

// savedMsg reports the result of a background write.
type savedMsg struct {
	content string
	err     error
}

// diskCheckedMsg reports whether the file on disk differs from the buffer's
// saved state.
type diskCheckedMsg struct {
	content string
	err     error
}

// Welcome returns the welcome line for version.
func Welcome(version string) string {
	return "hecto editor -- version " + version
}

// New loads the file (if any) and builds the model. Watcher failures are
// logged and ignored; the editor works without them.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	welcome := ""
	if opts.Path == "" {
		welcome = Welcome(opts.Version)
	}

	m := Model{
		cfg:       cfg,
		keys:      keys.DefaultKeyMap(),
		path:      opts.Path,
		width:     defaultWidth,
		height:    defaultHeight,
		quitsLeft: cfg.UI.QuitTimes,
		message:   HelpMessage,
	}
	m.session = editor.New(editor.Options{
		Buffer: cfg.BufferOptions(),
		View:   cfg.ViewOptions(welcome),
		Width:  m.width,
		Height: m.textHeight(),
		Tracer: opts.Tracer,
	})

	if opts.Path != "" {
		content, err := ReadDocument(opts.Path)
		if err != nil {
			return Model{}, err
		}
		m.session.Apply(editor.Load{Text: content})
		m.saved = content
	}

	if cfg.Watch && opts.Path != "" {
		m.startWatcher()
	}
	return m, nil
}

func (m *Model) startWatcher() {
	w, err := watcher.New(watcher.DefaultConfig(m.path))
	if err != nil {
		log.Warn(log.CatWatcher, "Watcher unavailable", "error", err)
		return
	}
	if err := w.Start(); err != nil {
		log.Warn(log.CatWatcher, "Watcher failed to start", "error", err)
		_ = w.Stop()
		return
	}
	m.watcherHandle = w
	m.watcherCtx, m.watcherCancel = context.WithCancel(context.Background())
	m.watcherListener = pubsub.NewContinuousListener(m.watcherCtx, w.Broker())
}

// Close releases the watcher.
func (m Model) Close() error {
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}

// Session returns the editor session.
func (m Model) Session() *editor.Session {
	return m.session
}

// Message returns the message bar text.
func (m Model) Message() string {
	return m.message
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.expireMessage()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// textHeight is the terminal height left for the document.
func (m Model) textHeight() int {
	bars := 1
	if m.cfg.UI.ShowStatusBar {
		bars++
	}
	return max(m.height-bars, 1)
}

// setMessage shows text and schedules its expiry.
func (m *Model) setMessage(text string) tea.Cmd {
	m.message = text
	m.messageSeq++
	return m.expireMessage()
}

func (m Model) expireMessage() tea.Cmd {
	if m.cfg.UI.MessageTimeout <= 0 {
		return nil
	}
	seq := m.messageSeq
	return tea.Tick(m.cfg.UI.MessageTimeout, func(time.Time) tea.Msg {
		return messageExpiredMsg{seq: seq}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.session.Apply(editor.Resize{Width: m.width, Height: m.textHeight()})
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case messageExpiredMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
		}
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case diskCheckedMsg:
		if msg.err != nil {
			log.Warn(log.CatWatcher, "Could not read changed file", "error", msg.err)
			return m, nil
		}
		if msg.content != m.saved {
			log.Info(log.CatWatcher, "File changed on disk", "path", m.path)
			return m, m.setMessage("file changed on disk")
		}
		return m, nil

	case pubsub.Event[watcher.Change]:
		return m.handleFileEvent(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.session.Buffer().IsDirty() && m.quitsLeft > 0 {
			cmd := m.setMessage(fmt.Sprintf(
				"WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", m.quitsLeft))
			m.quitsLeft--
			return m, cmd
		}
		m.quitting = true
		log.Info(log.CatUI, "Quit", "dirty", m.session.Buffer().IsDirty())
		return m, tea.Quit
	}
	m.quitsLeft = m.cfg.UI.QuitTimes

	if key.Matches(msg, m.keys.Save) {
		return m.save()
	}

	if in := m.intentFor(msg); in != nil {
		m.session.Apply(in)
	}
	return m, nil
}

// intentFor decodes a key press. Unbound keys that carry text insert it.
func (m Model) intentFor(msg tea.KeyMsg) editor.Intent {
	moves := []struct {
		binding key.Binding
		dir     view.Direction
	}{
		{m.keys.Up, view.Up},
		{m.keys.Down, view.Down},
		{m.keys.Left, view.Left},
		{m.keys.Right, view.Right},
		{m.keys.LineStart, view.LineStart},
		{m.keys.LineEnd, view.LineEnd},
		{m.keys.WordForward, view.WordForward},
		{m.keys.WordBackward, view.WordBackward},
		{m.keys.DocumentStart, view.DocumentStart},
		{m.keys.DocumentEnd, view.DocumentEnd},
	}
	for _, mv := range moves {
		if key.Matches(msg, mv.binding) {
			return editor.Move{Direction: mv.dir}
		}
	}

	switch {
	case key.Matches(msg, m.keys.PageUp):
		return editor.PageUp{}
	case key.Matches(msg, m.keys.PageDown):
		return editor.PageDown{}
	case key.Matches(msg, m.keys.Newline):
		return editor.InsertNewline{}
	case key.Matches(msg, m.keys.DeleteBackward):
		return editor.DeleteBackward{}
	case key.Matches(msg, m.keys.DeleteForward):
		return editor.DeleteForward{}
	case key.Matches(msg, m.keys.Tab):
		return editor.InsertChar{Text: "\t"}
	}

	if (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt && len(msg.Runes) > 0 {
		return editor.InsertChar{Text: string(msg.Runes)}
	}
	return nil
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if m.path == "" {
		return m, m.setMessage("No file name. Start hecto with a file path to save.")
	}
	out := m.session.Apply(editor.SaveRequest{})
	path, content := m.path, out.Content
	return m, func() tea.Msg {
		return savedMsg{content: content, err: WriteDocument(path, content)}
	}
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatFile, "Save failed", msg.err, "path", m.path)
		return m, m.setMessage("Can't save! I/O error: " + msg.err.Error())
	}
	buf := m.session.Buffer()
	// Keep the dirty flag when edits arrived while the write was in flight.
	if buf.Serialize() == msg.content {
		m.session.MarkSaved()
	}
	summary := SaveSummary(m.path, buf.LineCount(), m.saved, msg.content)
	m.saved = msg.content
	return m, m.setMessage(summary)
}

func (m Model) handleFileEvent(ev pubsub.Event[watcher.Change]) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	if m.watcherListener != nil {
		next = m.watcherListener.Listen()
	}
	switch ev.Type {
	case pubsub.ChangedEvent:
		path := m.path
		return m, tea.Batch(next, func() tea.Msg {
			content, err := ReadDocument(path)
			return diskCheckedMsg{content: content, err: err}
		})
	case pubsub.RemovedEvent:
		log.Info(log.CatWatcher, "File removed on disk", "path", m.path)
		return m, tea.Batch(next, m.setMessage("file removed on disk"))
	case pubsub.ErrorEvent:
		text := "watch error"
		if ev.Payload.Err != nil {
			text += ": " + ev.Payload.Err.Error()
		}
		return m, tea.Batch(next, m.setMessage(text))
	}
	return m, next
}

// fileName is the status bar label.
func (m Model) fileName() string {
	if m.path == "" {
		return "[No Name]"
	}
	return filepath.Base(m.path)
}
