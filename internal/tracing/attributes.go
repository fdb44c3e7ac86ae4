package tracing

// Span attribute keys.
const (
	AttrSessionID   = "session.id"
	AttrIntent      = "intent.name"
	AttrCursorRow   = "cursor.row"
	AttrCursorCol   = "cursor.col"
	AttrLineCount   = "buffer.lines"
	AttrDirty       = "buffer.dirty"
	AttrChanged     = "buffer.changed"
	AttrDirection   = "move.direction"
	AttrInsertBytes = "insert.bytes"
)

// SpanPrefixIntent prefixes the span name of every applied intent.
const SpanPrefixIntent = "intent."
