package mines

import "math/rand/v2"

// layout places p.MineCount mines uniformly at random and fills in the
// adjacency counts. The cell at index exclude is kept safe unless every cell
// must hold a mine; pass -1 to allow any cell.
func (p GameParams) layout(exclude int, r *rand.Rand) []Content {
	width, height, mineCount := p.Unpack()
	cells := width * height
	if mineCount >= cells {
		exclude = -1
	}

	mined := make([]bool, cells)

	/*
	 * Write down the list of possible mine locations, then pick
	 * mineCount off the list at random.
	 */
	candidates := make([]int, 0, cells)
	for i := range cells {
		if i != exclude {
			candidates = append(candidates, i)
		}
	}
	k := len(candidates)
	for range min(mineCount, k) {
		i := r.IntN(k)
		mined[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	return p.fill(mined)
}

// fill computes the content grid for a given set of mined cells.
func (p GameParams) fill(mined []bool) []Content {
	width := p.Width
	grid := make([]Content, len(mined))
	for i := range grid {
		if mined[i] {
			grid[i] = Mine
			continue
		}
		n := 0
		p.neighbors(i/width, i%width, func(row, col int) {
			if mined[row*width+col] {
				n++
			}
		})
		grid[i] = Adjacent(n)
	}
	return grid
}
