// Package canvas draws a board in a desktop window with 20x20 pixel cells.
package canvas

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/vancomm/sweeper/internal/input"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/render"
)

const statusHeight = 20

// Game implements [ebiten.Game]. The board is dealt on the first frame,
// once the window exists; if the window never opens no game is started.
type Game struct {
	logger    *slog.Logger
	params    mines.GameParams
	rnd       *rand.Rand
	observers []mines.Observer
	cell      input.CellSize
	face      font.Face

	board   *mines.Board
	adapter *input.Adapter
	view    mines.View
	last    mines.Outcome
}

func New(
	logger *slog.Logger,
	params mines.GameParams,
	rnd *rand.Rand,
	observers ...mines.Observer,
) *Game {
	return &Game{
		logger:    logger,
		params:    params,
		rnd:       rnd,
		observers: observers,
		cell:      input.DefaultCellSize,
		face:      basicfont.Face7x13,
	}
}

// Size is the window size needed for the board plus the status line.
func (g *Game) Size() (width, height int) {
	return g.params.Width*g.cell.Width + 1,
		g.params.Height*g.cell.Height + statusHeight
}

func (g *Game) start() error {
	opts := []mines.Option{mines.WithObserver(g)}
	for _, o := range g.observers {
		opts = append(opts, mines.WithObserver(o))
	}
	board, err := mines.NewBoard(g.params, g.rnd, opts...)
	if err != nil {
		return err
	}
	g.board = board
	g.adapter = input.NewAdapter(board, g.cell)
	g.view = board.View()
	g.logger.Info("game started",
		slog.Int("width", g.params.Width),
		slog.Int("height", g.params.Height),
		slog.Int("mines", g.params.MineCount),
	)
	return nil
}

func (g *Game) Update() error {
	if g.board == nil {
		if err := g.start(); err != nil {
			return err
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.board.NewGame()
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.press(input.Pointer{X: x, Y: y, Button: input.Primary})
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		g.press(input.Pointer{X: x, Y: y, Button: input.Secondary})
	}
	return nil
}

func (g *Game) press(p input.Pointer) {
	outcome, handled := g.adapter.PointerDown(p)
	if handled && outcome.Over() {
		g.logger.Info("game over", slog.String("outcome", outcome.String()))
	}
}

func (g *Game) Redraw(b *mines.Board) {
	g.view = b.View()
}

func (g *Game) GameOver(_ *mines.Board, outcome mines.Outcome) {
	g.last = outcome
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	if g.board == nil {
		return
	}
	v := g.view
	cw, ch := float32(g.cell.Width), float32(g.cell.Height)

	for row := range v.Height {
		for col := range v.Width {
			x, y := float32(col)*cw, float32(row)*ch
			state := v.At(row, col)
			glyph, clr := render.Glyph(state)
			if state == mines.Unknown || state == mines.FlaggedCell {
				vector.DrawFilledRect(screen, x+1, y+1, cw-1, ch-1, render.UnknownFill, false)
			}
			if glyph != ' ' {
				text.Draw(screen, string(glyph), g.face,
					int(x)+g.cell.Width/2-3, int(y)+g.cell.Height/2+5, clr)
			}
		}
	}

	w, h := float32(v.Width)*cw, float32(v.Height)*ch
	for row := range v.Height + 1 {
		vector.StrokeLine(screen, 0, float32(row)*ch, w, float32(row)*ch, 2, render.GridLine, false)
	}
	for col := range v.Width + 1 {
		vector.StrokeLine(screen, float32(col)*cw, 0, float32(col)*cw, h, 2, render.GridLine, false)
	}

	text.Draw(screen, render.Status(v, g.last), g.face, 2, int(h)+statusHeight-5, render.GridLine)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Size()
}

// Title names the window after the board.
func Title(p mines.GameParams) string {
	return fmt.Sprintf("sweeper %dx%d (%d)", p.Width, p.Height, p.MineCount)
}
