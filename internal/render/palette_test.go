package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/colornames"

	"github.com/vancomm/sweeper/internal/mines"
)

func TestDigitColor(t *testing.T) {
	assert.Equal(t, colornames.Blue, DigitColor(1))
	assert.Equal(t, colornames.Gray, DigitColor(8))
	assert.Equal(t, colornames.Black, DigitColor(0))
	assert.Equal(t, colornames.Black, DigitColor(9))
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		state mines.CellState
		glyph rune
	}{
		{mines.Unknown, GlyphUnknown},
		{mines.FlaggedCell, GlyphFlag},
		{mines.RevealedMine, GlyphMine},
		{mines.CellState(0), ' '},
		{mines.CellState(3), '3'},
	}
	for _, test := range tests {
		glyph, _ := Glyph(test.state)
		assert.Equal(t, test.glyph, glyph, test.state.String())
	}
	_, c := Glyph(mines.CellState(2))
	assert.Equal(t, colornames.Green, c)
}

func TestStatus(t *testing.T) {
	v := mines.View{MineCount: 10, FlagsPlaced: 3}
	assert.Equal(t, "mines: 10  flags: 3", Status(v, mines.Playing))
	assert.Equal(t, "mines: 10  flags: 3  last game: lost", Status(v, mines.Lost))
}
