package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		texts  []string
		widths []int
	}{
		{"empty", "", nil, nil},
		{"ASCII", "abc", []string{"a", "b", "c"}, []int{1, 1, 1}},
		{"combining accent", "e\u0301x", []string{"e\u0301", "x"}, []int{1, 1}},
		{"CJK", "世界", []string{"世", "界"}, []int{2, 2}},
		{"emoji", "a😀", []string{"a", "😀"}, []int{1, 2}},
		{"ZWJ family", "\U0001F468\u200d\U0001F469\u200d\U0001F467", []string{"\U0001F468\u200d\U0001F469\u200d\U0001F467"}, []int{2}},
		{"tab", "\t", []string{"\t"}, []int{0}},
		{"lone combining mark", "\u0301", []string{"\u0301"}, []int{0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := Segment(tc.input)
			require.Len(t, gs, len(tc.texts))
			for i, g := range gs {
				assert.Equal(t, tc.texts[i], g.Text, "grapheme %d", i)
				assert.Equal(t, tc.widths[i], g.Width(), "width of %q", g.Text)
			}
		})
	}
}

func TestSegment_MalformedBytesBecomePlaceholder(t *testing.T) {
	gs := Segment("a\xff\xfeb")

	require.Len(t, gs, 3)
	assert.Equal(t, "a", gs[0].Text)
	assert.Equal(t, Placeholder, gs[1].Text)
	assert.Equal(t, 1, gs[1].Width())
	assert.Equal(t, "b", gs[2].Text)
}

func TestSegment_ControlCharactersKeepText(t *testing.T) {
	gs := Segment("\x1b")

	require.Len(t, gs, 1)
	assert.Equal(t, "\x1b", gs[0].Text, "stored text must survive a save")
	assert.Equal(t, Placeholder, gs[0].Display())
	assert.Equal(t, 1, gs[0].Width())
}

func TestGrapheme_IsTab(t *testing.T) {
	assert.True(t, Segment("\t")[0].IsTab())
	assert.False(t, Segment(" ")[0].IsTab())
}

func TestGrapheme_Class(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"a", ClassWord},
		{"Z", ClassWord},
		{"7", ClassWord},
		{"_", ClassWord},
		{"e\u0301", ClassWord},
		{"世", ClassWord},
		{" ", ClassWhitespace},
		{"\t", ClassWhitespace},
		{".", ClassPunctuation},
		{"(", ClassPunctuation},
		{"😀", ClassPunctuation},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, Segment(tc.input)[0].Class())
		})
	}
}
