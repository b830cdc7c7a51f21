package handlers

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/sweeper/internal/input"
	"github.com/vancomm/sweeper/internal/mines"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parsePair(twoStrings []string) (a int, b int, err error) {
	if a, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if b, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

// Commands, one per line:
//
//	g          get the board
//	n          start a new game
//	r row col  reveal
//	f row col  toggle a flag
//	p x y      primary button press at a surface offset
//	s x y      secondary button press at a surface offset
var commandNargs = map[string]int{
	"g": 0,
	"n": 0,
	"r": 2,
	"f": 2,
	"p": 2,
	"s": 2,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrCommandArgs    = errors.New("invalid number of arguments")
)

func runCommand(b *mines.Board, a *input.Adapter, c string) error {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil
	}

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf("%s: %w", parts[0], ErrCommandArgs)
	}

	switch parts[0] {
	case "g":
		return nil
	case "n":
		b.NewGame()
		return nil
	case "r", "f":
		row, col, err := parsePair(parts[1:])
		if err != nil {
			return err
		}
		if err := checkBounds(b.Params(), row, col); err != nil {
			return err
		}
		if parts[0] == "r" {
			b.Reveal(row, col)
		} else {
			b.ToggleFlag(row, col)
		}
		return nil
	case "p", "s":
		x, y, err := parsePair(parts[1:])
		if err != nil {
			return err
		}
		button := input.Primary
		if parts[0] == "s" {
			button = input.Secondary
		}
		a.PointerDown(input.Pointer{X: x, Y: y, Button: button})
		return nil
	}
	return ErrUnknownCommand
}

// runBatch applies newline-separated commands in order and stops at the
// first one that fails.
func runBatch(b *mines.Board, a *input.Adapter, text string) error {
	for i, c := range iterBySep(text, "\n") {
		if err := runCommand(b, a, strings.TrimSpace(c)); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// Connect upgrades to a websocket. Every text message is a batch of
// commands; the reply is the session after the batch, or an error object.
// Browser clients should preventDefault on contextmenu so the secondary
// button reaches the board.
func (h BoardHandler) Connect(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	logger := h.logger.With(slog.String("board", s.ID.String()))
	logger.Debug("established ws connection")

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		logger.Debug(fmt.Sprintf("\t> %s", text))

		var cmdErr error
		st := s.Do(h.registry.Now(), func(b *mines.Board, a *input.Adapter) {
			cmdErr = runBatch(b, a, text)
		})

		var reply any = NewSessionDTO(st)
		if cmdErr != nil {
			logger.Info("unable to process command", slog.Any("error", cmdErr))
			reply = wrapError(cmdErr)
		}
		if err := c.WriteJSON(reply); err != nil {
			logger.Error("unable to write json", slog.Any("error", err))
			break
		}
		logger.Debug("\t< <session data>")
	}
}
