// Package editor applies edit intents to a buffer and its view. A Session is
// the only thing the terminal layer talks to; it never sees key codes.
package editor

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/hecto/internal/document"
	"github.com/zjrosen/hecto/internal/log"
	"github.com/zjrosen/hecto/internal/tracing"
	"github.com/zjrosen/hecto/internal/view"
)

// Options configures a Session.
type Options struct {
	Buffer document.Options
	View   view.Options
	Width  int
	Height int
	// Tracer records one span per applied intent. Nil disables tracing.
	Tracer trace.Tracer
}

// Outcome is the result of applying an intent.
type Outcome struct {
	Frame view.Frame
	// Changed is true when the document text changed.
	Changed bool
	// Content holds the serialized document for a SaveRequest.
	Content       string
	SaveRequested bool
}

// Session owns one buffer and its view.
type Session struct {
	id      string
	opts    Options
	view    *view.View
	tracer  trace.Tracer
	applied int
}

// New creates a session over an empty document.
func New(opts Options) *Session {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	s := &Session{
		id:     uuid.NewString(),
		opts:   opts,
		tracer: tracer,
		view:   view.New(document.New(opts.Buffer), opts.Width, opts.Height, opts.View),
	}
	log.Debug(log.CatEditor, "Session created", "session", s.id, "width", opts.Width, "height", opts.Height)
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

// View returns the session's view.
func (s *Session) View() *view.View {
	return s.view
}

// Buffer returns the current document.
func (s *Session) Buffer() *document.Buffer {
	return s.view.Buffer()
}

// Frame renders the current state without applying anything.
func (s *Session) Frame() view.Frame {
	return s.view.Frame()
}

// MarkSaved clears the dirty flag after a successful write.
func (s *Session) MarkSaved() {
	s.view.Buffer().MarkSaved()
}

// Apply performs one intent and returns the resulting frame.
func (s *Session) Apply(in Intent) Outcome {
	name := Name(in)
	_, span := s.tracer.Start(context.Background(), tracing.SpanPrefixIntent+name,
		trace.WithAttributes(
			attribute.String(tracing.AttrSessionID, s.id),
			attribute.String(tracing.AttrIntent, name),
		),
	)
	defer span.End()

	var out Outcome
	buf := s.view.Buffer()
	cursor := s.view.Cursor()

	switch in := in.(type) {
	case InsertChar:
		span.SetAttributes(attribute.Int(tracing.AttrInsertBytes, len(in.Text)))
		if in.Text != "" {
			s.view.BufferChanged(buf.InsertChar(cursor, in.Text))
			out.Changed = true
		}
	case InsertNewline:
		s.view.BufferChanged(buf.InsertNewline(cursor))
		out.Changed = true
	case DeleteForward:
		out.Changed = s.deleteForward()
	case DeleteBackward:
		if cursor != (document.Position{}) {
			s.view.MoveCursor(view.Left)
			out.Changed = s.deleteForward()
		}
	case Move:
		span.SetAttributes(attribute.String(tracing.AttrDirection, in.Direction.String()))
		s.view.MoveCursor(in.Direction)
	case PageUp:
		s.view.MoveCursor(view.PageUp)
	case PageDown:
		s.view.MoveCursor(view.PageDown)
	case Resize:
		s.view.Resize(in.Width, in.Height)
	case Load:
		s.view.SetBuffer(document.Load(in.Text, s.opts.Buffer))
		out.Changed = true
		log.Info(log.CatEditor, "Document loaded", "session", s.id, "lines", s.view.Buffer().LineCount())
	case SaveRequest:
		out.Content = buf.Serialize()
		out.SaveRequested = true
	default:
		log.Warn(log.CatEditor, "Ignoring unknown intent", "intent", name)
	}
	s.applied++

	out.Frame = s.view.Frame()
	after := s.view.Cursor()
	span.SetAttributes(
		attribute.Int(tracing.AttrCursorRow, after.Row),
		attribute.Int(tracing.AttrCursorCol, after.Col),
		attribute.Int(tracing.AttrLineCount, s.view.Buffer().LineCount()),
		attribute.Bool(tracing.AttrDirty, out.Frame.Dirty),
		attribute.Bool(tracing.AttrChanged, out.Changed),
	)
	return out
}

func (s *Session) deleteForward() bool {
	cursor := s.view.Cursor()
	changed := s.view.Buffer().DeleteAt(cursor)
	s.view.BufferChanged(cursor)
	return changed
}

// Applied returns how many intents this session has processed.
func (s *Session) Applied() int {
	return s.applied
}
