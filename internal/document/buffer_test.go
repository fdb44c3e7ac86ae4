package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var testOpts = Options{TabWidth: 4, TrailingNewline: true}

// lineTexts returns every line of b as a string.
func lineTexts(b *Buffer) []string {
	var out []string
	for _, l := range b.Lines() {
		out = append(out, l.String())
	}
	return out
}

func TestNew_HasOneEmptyLine(t *testing.T) {
	b := New(Options{})

	assert.Equal(t, 1, b.LineCount())
	assert.True(t, b.IsEmpty())
	assert.False(t, b.IsDirty())
	assert.Equal(t, DefaultTabWidth, b.TabWidth())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", []string{""}},
		{"only separator", "\n", []string{""}},
		{"single line", "hello", []string{"hello"}},
		{"trailing separator consumed", "a\nb\n", []string{"a", "b"}},
		{"blank last line kept", "a\n\n", []string{"a", ""}},
		{"CRLF", "a\r\nb\r\n", []string{"a", "b"}},
		{"lone CR", "a\rb", []string{"a", "b"}},
		{"mixed separators", "a\r\nb\rc\nd", []string{"a", "b", "c", "d"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Load(tc.content, testOpts)
			assert.Equal(t, tc.want, lineTexts(b))
			assert.False(t, b.IsDirty())
		})
	}
}

func TestLoad_MalformedBytes(t *testing.T) {
	b := Load("ok\xffno\nfine", testOpts)

	require.Equal(t, 2, b.LineCount())
	l, err := b.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "ok"+Placeholder+"no", l.String())
	assert.Equal(t, 5, l.Len())
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		trailing bool
		want     string
	}{
		{"trailing on", "a\r\nb", true, "a\nb\n"},
		{"trailing off", "a\nb\n", false, "a\nb"},
		{"empty document", "", true, ""},
		{"blank last line", "a\n\n", true, "a\n\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Load(tc.content, Options{TabWidth: 4, TrailingNewline: tc.trailing})
			assert.Equal(t, tc.want, b.Serialize())
		})
	}
}

func TestBuffer_Line_ContractViolation(t *testing.T) {
	b := Load("one\ntwo", testOpts)

	for _, row := range []int{-1, 2, 100} {
		l, err := b.Line(row)
		assert.Nil(t, l)
		require.ErrorIs(t, err, ErrContractViolation)

		var ce *ContractError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, row, ce.Index)
		assert.Equal(t, 2, ce.Limit)
	}
}

func TestBuffer_InsertChar(t *testing.T) {
	b := Load("hllo", testOpts)

	pos := b.InsertChar(Position{Row: 0, Col: 1}, "e")

	assert.Equal(t, Position{Row: 0, Col: 2}, pos)
	assert.Equal(t, []string{"hello"}, lineTexts(b))
	assert.True(t, b.IsDirty())
}

func TestBuffer_InsertChar_Separator(t *testing.T) {
	for _, sep := range []string{"\n", "\r\n", "\r"} {
		b := Load("helloworld", testOpts)

		pos := b.InsertChar(Position{Row: 0, Col: 5}, sep)

		assert.Equal(t, Position{Row: 1, Col: 0}, pos, "separator %q", sep)
		assert.Equal(t, []string{"hello", "world"}, lineTexts(b))
	}
}

func TestBuffer_InsertChar_ClampsPosition(t *testing.T) {
	b := Load("ab", testOpts)

	pos := b.InsertChar(Position{Row: 9, Col: 9}, "c")

	assert.Equal(t, Position{Row: 0, Col: 3}, pos)
	assert.Equal(t, []string{"abc"}, lineTexts(b))
}

func TestBuffer_InsertText(t *testing.T) {
	b := Load("abcd", testOpts)

	pos := b.InsertText(Position{Row: 0, Col: 2}, "X\r\nY\nZ")

	assert.Equal(t, []string{"abX", "Y", "Zcd"}, lineTexts(b))
	assert.Equal(t, Position{Row: 2, Col: 1}, pos)
}

func TestBuffer_InsertText_TrailingSeparator(t *testing.T) {
	b := Load("ab", testOpts)

	pos := b.InsertText(Position{Row: 0, Col: 1}, "x\n")

	assert.Equal(t, []string{"ax", "b"}, lineTexts(b))
	assert.Equal(t, Position{Row: 1, Col: 0}, pos)
}

func TestBuffer_InsertNewline(t *testing.T) {
	b := Load("one\ntwo", testOpts)

	pos := b.InsertNewline(Position{Row: 1, Col: 1})

	assert.Equal(t, []string{"one", "t", "wo"}, lineTexts(b))
	assert.Equal(t, Position{Row: 2, Col: 0}, pos)
	assert.True(t, b.IsDirty())
}

func TestBuffer_DeleteAt(t *testing.T) {
	b := Load("he\u0301llo", testOpts)

	assert.True(t, b.DeleteAt(Position{Row: 0, Col: 1}))
	assert.Equal(t, []string{"hllo"}, lineTexts(b))
}

func TestBuffer_DeleteAt_JoinsAtLineEnd(t *testing.T) {
	b := Load("hello\nworld", testOpts)

	changed := b.DeleteAt(Position{Row: 0, Col: 5})

	assert.True(t, changed)
	assert.Equal(t, []string{"helloworld"}, lineTexts(b))
}

func TestBuffer_DeleteAt_DocumentEndIsNoop(t *testing.T) {
	b := Load("hello\nworld", testOpts)

	changed := b.DeleteAt(Position{Row: 1, Col: 5})

	assert.False(t, changed)
	assert.False(t, b.IsDirty())
	assert.Equal(t, []string{"hello", "world"}, lineTexts(b))
}

func TestBuffer_JoinLines(t *testing.T) {
	b := Load("a\nb\nc", testOpts)

	assert.True(t, b.JoinLines(1))
	assert.Equal(t, []string{"a", "bc"}, lineTexts(b))
	assert.False(t, b.JoinLines(1), "last line has nothing to join")
	assert.False(t, b.JoinLines(-1))
}

func TestBuffer_DirtyTracking(t *testing.T) {
	b := Load("text", testOpts)
	require.False(t, b.IsDirty())

	b.InsertChar(Position{Row: 0, Col: 0}, "x")
	assert.True(t, b.IsDirty())

	b.MarkSaved()
	assert.False(t, b.IsDirty())

	b.DeleteAt(Position{Row: 0, Col: 0})
	assert.True(t, b.IsDirty())
}

func TestBuffer_NeverEmpty(t *testing.T) {
	b := Load("x", testOpts)

	b.DeleteAt(Position{})
	b.DeleteAt(Position{})

	assert.Equal(t, 1, b.LineCount())
	assert.True(t, b.IsEmpty())
}

func TestProperty_InsertThenDeleteRestoresBuffer(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rows := rapid.SliceOfN(
			rapid.SliceOfN(rapid.SampledFrom(lineAlphabet), 0, 10),
			1, 6,
		).Draw(t, "rows")
		texts := make([]string, len(rows))
		for i, r := range rows {
			texts[i] = strings.Join(r, "")
		}
		b := Load(strings.Join(texts, "\n"), testOpts)
		before := lineTexts(b)

		row := rapid.IntRange(0, b.LineCount()-1).Draw(t, "row")
		l, err := b.Line(row)
		require.NoError(t, err)
		col := rapid.IntRange(0, l.Len()).Draw(t, "col")
		ch := rapid.SampledFrom(lineAlphabet).Draw(t, "ch")

		pos := Position{Row: row, Col: col}
		after := b.InsertChar(pos, ch)
		require.Equal(t, Position{Row: row, Col: col + 1}, after)
		require.True(t, b.DeleteAt(pos))

		assert.Equal(t, before, lineTexts(b))
	})
}
