package input

import (
	"fmt"
	"strings"

	"github.com/vancomm/sweeper/internal/mines"
)

type Button int

const (
	NoButton Button = iota
	Primary
	Secondary
	Middle
)

func (b Button) String() string {
	switch b {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Middle:
		return "middle"
	default:
		return "none"
	}
}

// ParseButton accepts the names browsers and terminals use for buttons,
// including DOM MouseEvent.button numbers.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary", "left", "0":
		return Primary, nil
	case "secondary", "right", "2":
		return Secondary, nil
	case "middle", "auxiliary", "1":
		return Middle, nil
	}
	return NoButton, fmt.Errorf("unknown button %q", s)
}

// CellSize is the extent of one board cell on the drawing surface, in
// whatever unit the surface reports pointer offsets in.
type CellSize struct {
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
}

var (
	DefaultCellSize  = CellSize{Width: 20, Height: 20}
	TerminalCellSize = CellSize{Width: 2, Height: 1}
)

// Pointer is a button press at an offset from the surface origin.
type Pointer struct {
	X, Y   int
	Button Button
}

// Adapter turns pointer presses into board operations.
type Adapter struct {
	Board *mines.Board
	Cell  CellSize
}

func NewAdapter(board *mines.Board, cell CellSize) *Adapter {
	if cell.Width <= 0 || cell.Height <= 0 {
		cell = DefaultCellSize
	}
	return &Adapter{Board: board, Cell: cell}
}

// Locate maps a surface offset to the board cell under it.
func (a *Adapter) Locate(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y/a.Cell.Height, x/a.Cell.Width
	return row, col, a.Board.InBounds(row, col)
}

// PointerDown dispatches a press: primary reveals, secondary toggles a flag.
// handled is false for presses off the board or with other buttons.
func (a *Adapter) PointerDown(p Pointer) (outcome mines.Outcome, handled bool) {
	row, col, ok := a.Locate(p.X, p.Y)
	if !ok {
		return a.Board.Outcome(), false
	}
	switch p.Button {
	case Primary:
		return a.Board.Reveal(row, col), true
	case Secondary:
		a.Board.ToggleFlag(row, col)
		return a.Board.Outcome(), true
	}
	return a.Board.Outcome(), false
}
