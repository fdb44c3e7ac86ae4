package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// lineAlphabet holds single graphemes that stay separate when concatenated.
var lineAlphabet = []string{"a", "b", "z", " ", "\t", "-", "世", "😀", "e\u0301", "ß"}

func drawLine(t *rapid.T, label string) *Line {
	parts := rapid.SliceOfN(rapid.SampledFrom(lineAlphabet), 0, 16).Draw(t, label)
	tab := rapid.IntRange(1, 8).Draw(t, label+"_tab")
	return NewLine(strings.Join(parts, ""), tab)
}

func TestNewLine(t *testing.T) {
	l := NewLine("he\u0301llo", 4)

	assert.Equal(t, 5, l.Len())
	assert.Equal(t, 5, l.Width())
	assert.Equal(t, "he\u0301llo", l.String())
}

func TestNewLine_DefaultTabWidth(t *testing.T) {
	l := NewLine("\t", 0)

	assert.Equal(t, DefaultTabWidth, l.TabWidth())
	assert.Equal(t, DefaultTabWidth, l.Width())
}

func TestLine_TabStopsAlign(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
	}{
		{"tab at start", "\tx", 5},
		{"tab after one", "a\tx", 5},
		{"tab after three", "abc\tx", 5},
		{"tab at stop", "abcd\tx", 9},
		{"tab after wide", "世\tx", 5},
		{"two tabs", "\t\t", 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.width, NewLine(tc.input, 4).Width())
		})
	}
}

func TestLine_Column(t *testing.T) {
	l := NewLine("a\t世b", 4)

	assert.Equal(t, 0, l.Column(0))
	assert.Equal(t, 1, l.Column(1))
	assert.Equal(t, 4, l.Column(2))
	assert.Equal(t, 6, l.Column(3))
	assert.Equal(t, 7, l.Column(4))
	assert.Equal(t, 7, l.Column(99), "index past the end clamps")
	assert.Equal(t, 0, l.Column(-3), "negative index clamps")
}

func TestLine_IndexAtColumn(t *testing.T) {
	l := NewLine("a\t世b", 4)

	tests := []struct {
		col  int
		want int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{5, 2},
		{6, 3},
		{7, 4},
		{50, 4},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, l.IndexAtColumn(tc.col), "col %d", tc.col)
	}
}

func TestLine_Insert(t *testing.T) {
	l := NewLine("ac", 4)

	n := l.Insert(1, "b")
	assert.Equal(t, 1, n)
	assert.Equal(t, "abc", l.String())

	n = l.Insert(100, "世")
	assert.Equal(t, 1, n)
	assert.Equal(t, "abc世", l.String(), "index past the end appends")
	assert.Equal(t, 5, l.Width())

	assert.Equal(t, 0, l.Insert(0, ""), "empty text inserts nothing")
}

func TestLine_Remove(t *testing.T) {
	l := NewLine("a世b", 4)

	assert.True(t, l.Remove(1))
	assert.Equal(t, "ab", l.String())
	assert.Equal(t, 2, l.Width())

	assert.False(t, l.Remove(2), "index at length is a no-op")
	assert.False(t, l.Remove(-1))
	assert.Equal(t, "ab", l.String())
}

func TestLine_Split(t *testing.T) {
	l := NewLine("he\u0301llo", 4)

	prefix, suffix := l.Split(2)
	assert.Equal(t, "he\u0301", prefix.String())
	assert.Equal(t, "llo", suffix.String())
	assert.Equal(t, "he\u0301llo", l.String(), "split leaves the original untouched")

	prefix, suffix = l.Split(10)
	assert.Equal(t, "he\u0301llo", prefix.String())
	assert.Equal(t, 0, suffix.Len())
}

func TestLine_Substring(t *testing.T) {
	l := NewLine("h😀llo", 4)

	assert.Equal(t, "😀l", l.Substring(1, 3))
	assert.Equal(t, "", l.Substring(3, 1))
	assert.Equal(t, "lo", l.Substring(3, 99))
}

func TestLine_ByteOffset(t *testing.T) {
	l := NewLine("h世llo", 4)

	assert.Equal(t, 0, l.ByteOffset(0))
	assert.Equal(t, 1, l.ByteOffset(1))
	assert.Equal(t, 4, l.ByteOffset(2))
	assert.Equal(t, 7, l.ByteOffset(99))

	assert.Equal(t, 1, l.IndexAtByte(1))
	assert.Equal(t, 1, l.IndexAtByte(2), "offset inside a grapheme maps to it")
	assert.Equal(t, 2, l.IndexAtByte(4))
	assert.Equal(t, 5, l.IndexAtByte(99))
}

func TestLine_RenderSlice_TabThenWide(t *testing.T) {
	l := NewLine("a世b", 4)
	l.Insert(1, "\t")

	got := l.RenderSlice(0, 6)

	assert.Equal(t, "a   世", got, "a, three blank tab cells, then the clipped remainder")
}

func TestLine_RenderSlice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		firstCol int
		width    int
		want     string
	}{
		{"whole line", "hello", 0, 10, "hello"},
		{"clipped right", "hello", 0, 3, "hel"},
		{"scrolled", "hello", 2, 2, "ll"},
		{"past end", "hello", 9, 4, ""},
		{"zero width", "hello", 0, 0, ""},
		{"wide cut on right", "世界", 0, 3, "世 "},
		{"wide cut on left", "世界", 1, 3, " 界"},
		{"wide cut both sides", "世界", 1, 2, "  "},
		{"wide aligned", "世界", 2, 2, "界"},
		{"tab partly scrolled", "\tx", 2, 4, "  x"},
		{"combining kept with base", "e\u0301x", 0, 1, "e\u0301"},
		{"combining dropped with base", "e\u0301x", 1, 1, "x"},
		{"control drawn as placeholder", "a\x1bb", 0, 3, "a" + Placeholder + "b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewLine(tc.input, 4).RenderSlice(tc.firstCol, tc.width))
		})
	}
}

func TestLine_RenderSlice_NeverWiderThanWindow(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := drawLine(t, "line")
		first := rapid.IntRange(0, 20).Draw(t, "first")
		width := rapid.IntRange(0, 20).Draw(t, "width")

		got := NewLine(l.RenderSlice(first, width), 1).Width()

		assert.LessOrEqual(t, got, width)
	})
}

func TestProperty_InsertThenRemoveRestoresLine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := drawLine(t, "line")
		original := l.Clone()
		i := rapid.IntRange(0, l.Len()).Draw(t, "index")
		g := rapid.SampledFrom(lineAlphabet).Draw(t, "grapheme")

		require.Equal(t, 1, l.Insert(i, g))
		require.True(t, l.Remove(i))

		assert.True(t, original.Equal(l), "want %q, got %q", original.String(), l.String())
		assert.Equal(t, original.Width(), l.Width())
	})
}

func TestProperty_SplitThenJoinRestoresLine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := drawLine(t, "line")
		i := rapid.IntRange(0, l.Len()).Draw(t, "index")

		prefix, suffix := l.Split(i)
		prefix.Append(suffix)

		assert.True(t, l.Equal(prefix))
		assert.Equal(t, l.String(), prefix.String())
		assert.Equal(t, l.Width(), prefix.Width())
	})
}

func TestProperty_DisplayWidthAdditive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := drawLine(t, "line")
		a := rapid.IntRange(0, l.Len()).Draw(t, "a")
		b := rapid.IntRange(a, l.Len()).Draw(t, "b")
		c := rapid.IntRange(b, l.Len()).Draw(t, "c")

		assert.Equal(t, l.DisplayWidth(a, c), l.DisplayWidth(a, b)+l.DisplayWidth(b, c))
		assert.Equal(t, l.Width(), l.DisplayWidth(0, l.Len()))
	})
}

func TestProperty_DisplayWidthMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := drawLine(t, "line")
		a := rapid.IntRange(0, l.Len()).Draw(t, "a")

		prev := 0
		for end := a; end <= l.Len(); end++ {
			w := l.DisplayWidth(a, end)
			assert.GreaterOrEqual(t, w, prev)
			prev = w
		}
	})
}
