package term

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"

	"github.com/vancomm/sweeper/internal/mines"
)

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(40, 12)
	t.Cleanup(s.Fini)
	return s
}

func line(s tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := range width {
		ch, _, _, _ := s.GetContent(x, y)
		b.WriteRune(ch)
	}
	return strings.TrimRight(b.String(), " ")
}

func denseBoard(t *testing.T, opts ...mines.Option) *mines.Board {
	t.Helper()
	b, err := mines.NewBoard(
		mines.GameParams{Width: 3, Height: 3, MineCount: 8},
		rand.New(rand.NewPCG(1, 2)), opts...,
	)
	require.NoError(t, err)
	return b
}

func TestRendererDrawsDigitsAndFlags(t *testing.T) {
	s := simScreen(t)
	b := denseBoard(t, mines.WithAutoRestart(false))
	r := NewRenderer(s)
	b.Observe(r)

	b.Reveal(1, 1)
	ch, _, style, _ := s.GetContent(2, 1)
	assert.Equal(t, '8', ch)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcellColor(colornames.Gray), fg)
	assert.Equal(t, "mines: 8  flags: 0", line(s, 4, 40))

	b.ToggleFlag(0, 0)
	ch, _, _, _ = s.GetContent(0, 0)
	assert.Equal(t, 'F', ch)
	assert.Equal(t, "mines: 8  flags: 1  last game: won", line(s, 4, 40))
}

func TestOpenMissingDevice(t *testing.T) {
	_, err := Open("/nonexistent/tty")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSurfaceUnavailable)
}

func TestLoopDispatchesMouse(t *testing.T) {
	s := simScreen(t)
	b := denseBoard(t, mines.WithAutoRestart(false))
	loop := NewLoop(slog.New(slog.NewTextHandler(io.Discard, nil)), s, b)

	s.InjectMouse(0, 0, tcell.ButtonPrimary, tcell.ModNone)
	s.InjectMouse(0, 0, tcell.ButtonNone, tcell.ModNone)
	s.InjectMouse(4, 2, tcell.ButtonSecondary, tcell.ModNone)
	s.InjectMouse(4, 2, tcell.ButtonNone, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	require.NoError(t, loop.Run(context.Background()))

	assert.Equal(t, mines.Flagged, b.Overlay(2, 2))
	assert.Equal(t, mines.Revealed, b.Overlay(0, 0))
	assert.True(t, b.IsWon())
}

func TestLoopIgnoresHeldButton(t *testing.T) {
	s := simScreen(t)
	b := denseBoard(t, mines.WithAutoRestart(false))
	loop := NewLoop(slog.New(slog.NewTextHandler(io.Discard, nil)), s, b)

	s.InjectMouse(0, 0, tcell.ButtonSecondary, tcell.ModNone)
	s.InjectMouse(1, 0, tcell.ButtonSecondary, tcell.ModNone)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	require.NoError(t, loop.Run(context.Background()))

	assert.Equal(t, mines.Flagged, b.Overlay(0, 0), "drag must not toggle twice")
}

func TestLoopStopsOnCancel(t *testing.T) {
	s := simScreen(t)
	b := denseBoard(t)
	loop := NewLoop(slog.New(slog.NewTextHandler(io.Discard, nil)), s, b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, loop.Run(ctx), context.Canceled)
}
