package mines

import (
	"hash/maphash"
	"math/rand/v2"
	"strings"
)

// Observer is notified after every change to a board. GameOver runs while
// the board still shows the finished game, before any automatic restart.
type Observer interface {
	Redraw(b *Board)
	GameOver(b *Board, outcome Outcome)
}

// Starter is an optional extension of Observer, told whenever a fresh game
// is dealt: on construction, on NewGame and on every automatic restart.
// First-move re-deals continue the same game and are not reported.
type Starter interface {
	Started(b *Board)
}

type Option func(*Board)

func WithObserver(o Observer) Option {
	return func(b *Board) {
		b.observers = append(b.observers, o)
	}
}

// WithAutoRestart controls whether a won or lost game is immediately
// replaced by a new one. Enabled by default.
func WithAutoRestart(on bool) Option {
	return func(b *Board) {
		b.autoRestart = on
	}
}

// Board owns one minefield: the mine layout, the adjacency counts and what
// the player has uncovered so far. A Board is not safe for concurrent use.
type Board struct {
	params         GameParams
	rnd            *rand.Rand
	content        []Content
	overlay        []Overlay
	firstMoveTaken bool
	games, moves   int
	autoRestart    bool
	observers      []Observer
	todo           []int
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// NewBoard validates params and starts the first game. A nil r gets a
// randomly seeded source.
func NewBoard(params GameParams, r *rand.Rand, opts ...Option) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand()
	}
	b := &Board{
		params:      params,
		rnd:         r,
		autoRestart: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.NewGame()
	return b, nil
}

func (b *Board) Observe(o Observer) {
	b.observers = append(b.observers, o)
}

// NewGame discards both grids and deals a fresh layout.
func (b *Board) NewGame() {
	b.reset(-1)
	for _, o := range b.observers {
		if s, ok := o.(Starter); ok {
			s.Started(b)
		}
	}
	b.redraw()
}

func (b *Board) reset(exclude int) {
	b.content = b.params.layout(exclude, b.rnd)
	b.overlay = make([]Overlay, len(b.content))
	b.firstMoveTaken = false
	b.moves = 0
	b.games++
}

// Reveal uncovers the cell at (row, col) and returns the resulting outcome.
//
// A hidden cell is flood-filled: cells with no mined neighbors open up their
// neighbors as well. A revealed numbered cell chords: once exactly that many
// neighbors are flagged, the remaining hidden neighbors are revealed.
// Flagged and out-of-bounds cells are left alone. The first reveal of a game
// never lands on a mine; if it would, the game is dealt again.
func (b *Board) Reveal(row, col int) Outcome {
	if !b.InBounds(row, col) {
		return b.Outcome()
	}
	i := b.index(row, col)
	if b.overlay[i] == Flagged {
		return b.Outcome()
	}

	if !b.firstMoveTaken && b.content[i].IsMine() &&
		b.params.MineCount < b.params.Cells() {
		b.reset(i)
	}
	b.firstMoveTaken = true
	b.moves++

	switch b.overlay[i] {
	case Hidden:
		b.flood(i)
	case Revealed:
		b.chord(row, col)
	}

	b.redraw()
	return b.settle()
}

func (b *Board) ToggleFlag(row, col int) {
	if !b.InBounds(row, col) {
		return
	}
	i := b.index(row, col)
	switch b.overlay[i] {
	case Hidden:
		b.overlay[i] = Flagged
		b.moves++
	case Flagged:
		b.overlay[i] = Hidden
		b.moves++
	}
	b.redraw()
}

// flood reveals start and keeps going through every connected clear cell.
// Cells are marked before they are queued so each one is visited once.
func (b *Board) flood(start int) {
	if b.overlay[start] != Hidden {
		return
	}
	w := b.params.Width
	b.overlay[start] = Revealed
	todo := append(b.todo[:0], start)
	for len(todo) > 0 {
		i := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if !b.content[i].IsClear() {
			continue
		}
		b.params.neighbors(i/w, i%w, func(row, col int) {
			j := b.index(row, col)
			if b.overlay[j] == Hidden {
				b.overlay[j] = Revealed
				todo = append(todo, j)
			}
		})
	}
	b.todo = todo
}

func (b *Board) chord(row, col int) {
	n, ok := b.content[b.index(row, col)].Count()
	if !ok {
		return
	}
	flags := 0
	hidden := make([]int, 0, 8)
	b.params.neighbors(row, col, func(r, c int) {
		j := b.index(r, c)
		switch b.overlay[j] {
		case Flagged:
			flags++
		case Hidden:
			hidden = append(hidden, j)
		}
	})
	if flags != n {
		return
	}
	for _, j := range hidden {
		b.flood(j)
	}
}

func (b *Board) settle() Outcome {
	outcome := b.Outcome()
	if !outcome.Over() {
		return outcome
	}
	for _, o := range b.observers {
		o.GameOver(b, outcome)
	}
	if b.autoRestart {
		b.NewGame()
	}
	return outcome
}

func (b *Board) redraw() {
	for _, o := range b.observers {
		o.Redraw(b)
	}
}

func (b *Board) index(row, col int) int {
	return row*b.params.Width + col
}

func (b *Board) Params() GameParams { return b.params }
func (b *Board) Width() int         { return b.params.Width }
func (b *Board) Height() int        { return b.params.Height }
func (b *Board) MineCount() int     { return b.params.MineCount }

func (b *Board) InBounds(row, col int) bool {
	return b.params.InBounds(row, col)
}

// Content panics if (row, col) is out of bounds.
func (b *Board) Content(row, col int) Content {
	return b.content[b.index(row, col)]
}

// Overlay panics if (row, col) is out of bounds.
func (b *Board) Overlay(row, col int) Overlay {
	return b.overlay[b.index(row, col)]
}

func (b *Board) FirstMoveTaken() bool { return b.firstMoveTaken }

// Games counts the layouts dealt on this board, first-move re-deals included.
func (b *Board) Games() int { return b.games }

// Moves counts reveals and flag changes applied to the current game.
func (b *Board) Moves() int { return b.moves }

func (b *Board) FlagsPlaced() (n int) {
	for _, o := range b.overlay {
		if o == Flagged {
			n++
		}
	}
	return
}

func (b *Board) IsLost() bool {
	for i, o := range b.overlay {
		if o == Revealed && b.content[i].IsMine() {
			return true
		}
	}
	return false
}

func (b *Board) IsWon() bool {
	if b.IsLost() {
		return false
	}
	for i, o := range b.overlay {
		if o != Revealed && !b.content[i].IsMine() {
			return false
		}
	}
	return true
}

func (b *Board) Outcome() Outcome {
	switch {
	case b.IsLost():
		return Lost
	case b.IsWon():
		return Won
	default:
		return Playing
	}
}

// ContentString dumps the layout, one row per line: '*' for mines and the
// adjacency count otherwise.
func (b *Board) ContentString() string {
	return dump(b.params.Width, len(b.content), func(i int) string {
		return b.content[i].String()
	})
}

// OverlayString dumps the overlay: '#' hidden, 'F' flagged, ' ' revealed.
func (b *Board) OverlayString() string {
	return dump(b.params.Width, len(b.overlay), func(i int) string {
		return b.overlay[i].String()
	})
}

func dump(width, n int, cell func(i int) string) string {
	var sb strings.Builder
	for i := range n {
		sb.WriteString(cell(i))
		if (i+1)%width == 0 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
