// Package render holds what every drawing surface agrees on: the digit
// palette, the glyphs and the status line.
package render

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/vancomm/sweeper/internal/mines"
)

const (
	GlyphUnknown = ' '
	GlyphFlag    = 'F'
	GlyphMine    = '#'
)

var (
	Background  color.Color = colornames.White
	GridLine    color.Color = colornames.Black
	UnknownFill color.Color = color.NRGBA{R: 0, G: 0, B: 255, A: 77}
	FlagColor   color.Color = colornames.Red
	MineColor   color.Color = colornames.Black
)

var digitColors = [...]color.RGBA{
	1: colornames.Blue,
	2: colornames.Green,
	3: colornames.Red,
	4: colornames.Purple,
	5: colornames.Maroon,
	6: colornames.Turquoise,
	7: colornames.Black,
	8: colornames.Gray,
}

// DigitColor is the color of an adjacency digit; 0 and anything out of
// range draw black.
func DigitColor(n int) color.RGBA {
	if n < 1 || n >= len(digitColors) {
		return colornames.Black
	}
	return digitColors[n]
}

// Glyph is what a text surface prints for a cell. Zero cells and unknown
// cells are blank; unknown cells are told apart by their fill.
func Glyph(s mines.CellState) (rune, color.Color) {
	switch s {
	case mines.Unknown:
		return GlyphUnknown, UnknownFill
	case mines.FlaggedCell:
		return GlyphFlag, FlagColor
	case mines.RevealedMine:
		return GlyphMine, MineColor
	}
	n, _ := s.Count()
	if n == 0 {
		return ' ', Background
	}
	return rune('0' + n), DigitColor(n)
}

func Status(v mines.View, last mines.Outcome) string {
	s := fmt.Sprintf("mines: %d  flags: %d", v.MineCount, v.FlagsPlaced)
	if last.Over() {
		s += "  last game: " + last.String()
	}
	return s
}
