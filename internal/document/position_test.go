package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Clamp(t *testing.T) {
	b := Load("hello\n世界\n", testOpts)

	tests := []struct {
		name string
		in   Position
		want Position
	}{
		{"valid", Position{Row: 0, Col: 3}, Position{Row: 0, Col: 3}},
		{"line end", Position{Row: 1, Col: 2}, Position{Row: 1, Col: 2}},
		{"column past end", Position{Row: 1, Col: 9}, Position{Row: 1, Col: 2}},
		{"row past end", Position{Row: 7, Col: 1}, Position{Row: 1, Col: 1}},
		{"negative", Position{Row: -2, Col: -5}, Position{Row: 0, Col: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Clamp(b))
		})
	}
}

func TestPosition_ByteOffset(t *testing.T) {
	l := NewLine("a世b", 4)

	assert.Equal(t, 0, Position{Col: 0}.ByteOffset(l))
	assert.Equal(t, 1, Position{Col: 1}.ByteOffset(l))
	assert.Equal(t, 4, Position{Col: 2}.ByteOffset(l))
	assert.Equal(t, 5, Position{Col: 30}.ByteOffset(l), "column clamps to line end")
}

func TestPositionAtByte(t *testing.T) {
	l := NewLine("a世b", 4)

	assert.Equal(t, Position{Row: 3, Col: 1}, PositionAtByte(3, l, 2))
	assert.Equal(t, Position{Row: 3, Col: 2}, PositionAtByte(3, l, 4))
	assert.Equal(t, Position{Row: 3, Col: 3}, PositionAtByte(3, l, 99))
}

func TestPosition_DisplayColumn(t *testing.T) {
	l := NewLine("\t世x", 4)

	assert.Equal(t, 0, Position{Col: 0}.DisplayColumn(l))
	assert.Equal(t, 4, Position{Col: 1}.DisplayColumn(l))
	assert.Equal(t, 6, Position{Col: 2}.DisplayColumn(l))
	assert.Equal(t, 7, Position{Col: 3}.DisplayColumn(l))
}

func TestPosition_Before(t *testing.T) {
	assert.True(t, Position{Row: 0, Col: 5}.Before(Position{Row: 1, Col: 0}))
	assert.True(t, Position{Row: 1, Col: 1}.Before(Position{Row: 1, Col: 2}))
	assert.False(t, Position{Row: 1, Col: 2}.Before(Position{Row: 1, Col: 2}))
	assert.Equal(t, "2:7", Position{Row: 2, Col: 7}.String())
}
