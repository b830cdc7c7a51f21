package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what the player can see of a cell.
type CellState int8

const (
	Unknown      CellState = -2
	FlaggedCell  CellState = -1
	RevealedMine CellState = 65
	// 0-8 for a revealed cell with the given number of mined neighbors
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "#"
	case s == FlaggedCell:
		return "F"
	case s == RevealedMine:
		return "*"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Count returns the digit shown on a revealed safe cell.
func (s CellState) Count() (int, bool) {
	if 0 <= s && s <= 8 {
		return int(s), true
	}
	return 0, false
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// View is the player's knowledge of a board. It never exposes hidden mines,
// so it is what renderers draw and what goes over the wire.
type View struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	MineCount   int     `json:"mine_count"`
	FlagsPlaced int     `json:"flags_placed"`
	Outcome     Outcome `json:"outcome"`
	Grid        Grid    `json:"grid"`
}

func (v View) At(row, col int) CellState {
	return v.Grid[row*v.Width+col]
}

func (b *Board) View() View {
	grid := make(Grid, len(b.overlay))
	flags := 0
	for i, o := range b.overlay {
		switch o {
		case Hidden:
			grid[i] = Unknown
		case Flagged:
			grid[i] = FlaggedCell
			flags++
		case Revealed:
			if n, ok := b.content[i].Count(); ok {
				grid[i] = CellState(n)
			} else {
				grid[i] = RevealedMine
			}
		}
	}
	return View{
		Width:       b.params.Width,
		Height:      b.params.Height,
		MineCount:   b.params.MineCount,
		FlagsPlaced: flags,
		Outcome:     b.Outcome(),
		Grid:        grid,
	}
}
