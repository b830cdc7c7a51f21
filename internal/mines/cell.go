package mines

import (
	"fmt"
	"strconv"
)

// Content is what a cell holds: a mine, or the number of mines around it.
type Content struct {
	mine     bool
	adjacent uint8
}

var Mine = Content{mine: true}

// Adjacent returns a safe cell with n mined neighbors. n is clamped to [0, 8].
func Adjacent(n int) Content {
	return Content{adjacent: uint8(min(max(n, 0), 8))}
}

func (c Content) IsMine() bool {
	return c.mine
}

// Count returns the adjacency count; ok is false for mines.
func (c Content) Count() (n int, ok bool) {
	if c.mine {
		return 0, false
	}
	return int(c.adjacent), true
}

// IsClear reports a safe cell with no mined neighbors.
func (c Content) IsClear() bool {
	return !c.mine && c.adjacent == 0
}

func (c Content) String() string {
	if c.mine {
		return "*"
	}
	return strconv.Itoa(int(c.adjacent))
}

type Overlay int8

const (
	Hidden Overlay = iota
	Revealed
	Flagged
)

func (o Overlay) String() string {
	switch o {
	case Hidden:
		return "#"
	case Revealed:
		return " "
	case Flagged:
		return "F"
	default:
		return "!"
	}
}

type Outcome int8

const (
	Playing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (o Outcome) Over() bool {
	return o == Won || o == Lost
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "playing":
		*o = Playing
	case "won":
		*o = Won
	case "lost":
		*o = Lost
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}
