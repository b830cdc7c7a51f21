package handlers

import (
	"errors"
	"fmt"

	"github.com/gorilla/schema"

	"github.com/vancomm/sweeper/internal/input"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/session"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type NewBoardDTO struct {
	Width     int    `schema:"width"`
	Height    int    `schema:"height"`
	MineCount int    `schema:"mine_count"`
	Seed      string `schema:"seed"`
}

// ParseNewBoardDTO decodes board params from src; missing keys keep the
// values in defaults. A "w:h:m" seed overrides the separate keys.
func ParseNewBoardDTO(src map[string][]string, defaults mines.GameParams) (mines.GameParams, error) {
	dto := NewBoardDTO{
		Width:     defaults.Width,
		Height:    defaults.Height,
		MineCount: defaults.MineCount,
	}
	if err := decoder.Decode(&dto, src); err != nil {
		return mines.GameParams{}, err
	}
	if dto.Seed != "" {
		params, err := mines.ParseSeed(dto.Seed)
		if err != nil {
			return mines.GameParams{}, err
		}
		return *params, nil
	}
	params := mines.GameParams{Width: dto.Width, Height: dto.Height, MineCount: dto.MineCount}
	return params, params.Validate()
}

type Move int

const (
	Reveal Move = iota
	Flag
)

var ErrUnknownMove = errors.New("move must be one of: reveal, flag")

func ParseMove(s string) (Move, error) {
	switch s {
	case "reveal", "open":
		return Reveal, nil
	case "flag":
		return Flag, nil
	}
	return 0, ErrUnknownMove
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	Row  int    `schema:"row,required"`
	Col  int    `schema:"col,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type PointerDTO struct {
	X      int    `schema:"x,required"`
	Y      int    `schema:"y,required"`
	Button string `schema:"button"`
}

func ParsePointerDTO(src map[string][]string) (input.Pointer, error) {
	dto := PointerDTO{Button: "primary"}
	if err := decoder.Decode(&dto, src); err != nil {
		return input.Pointer{}, err
	}
	button, err := input.ParseButton(dto.Button)
	if err != nil {
		return input.Pointer{}, err
	}
	return input.Pointer{X: dto.X, Y: dto.Y, Button: button}, nil
}

var ErrOutOfBounds = errors.New("cell is outside the board")

func checkBounds(p mines.GameParams, row, col int) error {
	if !p.InBounds(row, col) {
		return fmt.Errorf("%w: %d:%d", ErrOutOfBounds, row, col)
	}
	return nil
}

// SessionDTO is what every board endpoint answers with. LastOutcome is the
// result of the most recent finished game, "playing" if there was none.
type SessionDTO struct {
	ID          string         `json:"id"`
	View        mines.View     `json:"view"`
	LastOutcome mines.Outcome  `json:"last_outcome"`
	CellSize    input.CellSize `json:"cell_size"`
	Games       int            `json:"games"`
	Moves       int            `json:"moves"`
}

func NewSessionDTO(st session.State) SessionDTO {
	return SessionDTO{
		ID:          st.ID.String(),
		View:        st.View,
		LastOutcome: st.Last,
		CellSize:    st.Cell,
		Games:       st.Games,
		Moves:       st.Moves,
	}
}
