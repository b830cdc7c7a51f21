// Package term draws a board on a terminal and feeds it mouse input.
package term

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/sweeper/internal/input"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/render"
)

var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

// Open initializes the terminal at device, or the controlling terminal when
// device is empty, with mouse reporting on.
func Open(device string) (tcell.Screen, error) {
	var (
		screen tcell.Screen
		err    error
	)
	if device == "" {
		screen, err = tcell.NewScreen()
	} else {
		screen, err = openDevice(device)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

func tcellColor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// Renderer repaints the whole board on every change. It implements
// [mines.Observer].
type Renderer struct {
	screen tcell.Screen
	cell   input.CellSize
	last   mines.Outcome
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, cell: input.TerminalCellSize}
}

func (r *Renderer) Redraw(b *mines.Board) {
	r.Draw(b.View())
}

func (r *Renderer) GameOver(b *mines.Board, outcome mines.Outcome) {
	r.last = outcome
}

func (r *Renderer) Draw(v mines.View) {
	r.screen.Clear()
	base := tcell.StyleDefault.Background(tcellColor(render.Background))
	for row := range v.Height {
		for col := range v.Width {
			state := v.At(row, col)
			glyph, fg := render.Glyph(state)
			style := base.Foreground(tcellColor(fg))
			if state == mines.Unknown || state == mines.FlaggedCell {
				style = style.Background(tcellColor(render.UnknownFill))
			}
			if state != mines.Unknown {
				style = style.Bold(true)
			}
			x, y := col*r.cell.Width, row*r.cell.Height
			for dy := range r.cell.Height {
				for dx := range r.cell.Width {
					ch := ' '
					if dx == 0 && dy == 0 {
						ch = glyph
					}
					r.screen.SetContent(x+dx, y+dy, ch, nil, style)
				}
			}
		}
	}
	status := render.Status(v, r.last)
	for i, ch := range []rune(status) {
		r.screen.SetContent(i, v.Height*r.cell.Height+1, ch, nil, tcell.StyleDefault)
	}
	r.screen.Show()
}
