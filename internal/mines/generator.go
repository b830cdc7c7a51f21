package mines

import (
	"fmt"
	"math"
	"strings"
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) Cells() int {
	return p.Width * p.Height
}

// Validate reports a wrapped [ErrInvalidParams] when the board cannot exist.
func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d",
			ErrInvalidParams, p.Width, p.Height)
	}
	if p.Width > math.MaxInt/p.Height {
		return fmt.Errorf("%w: board %dx%d has too many cells",
			ErrInvalidParams, p.Width, p.Height)
	}
	if p.MineCount < 0 || p.MineCount > p.Cells() {
		return fmt.Errorf("%w: mine count %d out of range [0, %d]",
			ErrInvalidParams, p.MineCount, p.Cells())
	}
	return nil
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	return p, p.Validate()
}

func (p GameParams) InBounds(row, col int) bool {
	return 0 <= row && row < p.Height && 0 <= col && col < p.Width
}

// neighbors calls fn for every in-bounds cell adjacent to (row, col).
func (p GameParams) neighbors(row, col int, fn func(r, c int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if p.InBounds(row+dr, col+dc) {
				fn(row+dr, col+dc)
			}
		}
	}
}
