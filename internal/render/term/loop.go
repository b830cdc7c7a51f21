package term

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/sweeper/internal/input"
	"github.com/vancomm/sweeper/internal/mines"
)

// Loop is the terminal game loop. Every event is handled to completion on
// the goroutine that calls Run, so the board is only ever touched from there.
type Loop struct {
	logger   *slog.Logger
	screen   tcell.Screen
	board    *mines.Board
	renderer *Renderer
	adapter  *input.Adapter
	buttons  tcell.ButtonMask
}

func NewLoop(logger *slog.Logger, screen tcell.Screen, board *mines.Board) *Loop {
	renderer := NewRenderer(screen)
	board.Observe(renderer)
	return &Loop{
		logger:   logger,
		screen:   screen,
		board:    board,
		renderer: renderer,
		adapter:  input.NewAdapter(board, renderer.cell),
	}
}

// Run draws the board and processes events until the player quits, the
// screen is finalized or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			l.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	l.renderer.Draw(l.board.View())
	for l.handle(l.screen.PollEvent()) {
	}
	return ctx.Err()
}

func (l *Loop) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		return false
	case *tcell.EventInterrupt:
		return false
	case *tcell.EventResize:
		l.screen.Sync()
		l.renderer.Draw(l.board.View())
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
			l.logger.Debug("new game requested")
			l.board.NewGame()
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons &^ l.buttons
		l.buttons = buttons
		x, y := ev.Position()
		switch {
		case pressed&tcell.ButtonPrimary != 0:
			l.press(input.Pointer{X: x, Y: y, Button: input.Primary})
		case pressed&tcell.ButtonSecondary != 0:
			l.press(input.Pointer{X: x, Y: y, Button: input.Secondary})
		}
	}
	return true
}

func (l *Loop) press(p input.Pointer) {
	outcome, handled := l.adapter.PointerDown(p)
	if !handled {
		return
	}
	l.logger.Debug("pointer down",
		slog.Int("x", p.X), slog.Int("y", p.Y),
		slog.String("button", p.Button.String()),
		slog.String("outcome", outcome.String()),
	)
	if outcome.Over() {
		l.logger.Info("game over", slog.String("outcome", outcome.String()))
	}
}
