// Package reef simulates the spatial layout of an allocation on a 2-D site
// grid.
//
// The package turns per-form fragment counts into placement units ("reef
// stars", see [Aggregate]), sizes a grid for them ([Shape]), and scatters
// them with a biased random walk that approximates natural clustering
// ([Place]). Randomness is always supplied by the caller as a seeded
// *rand.Rand, so identical inputs and seeds reproduce identical layouts.
package reef

// Grid is a height × width site grid. Each cell is either empty or holds
// exactly one placed unit, recorded as its growth-form name.
type Grid struct {
	Height int        `json:"height"`
	Width  int        `json:"width"`
	Cells  [][]string `json:"cells"` // Cells[row][col]; "" means empty
}

// NewGrid returns an empty grid of the given dimensions.
func NewGrid(height, width int) *Grid {
	cells := make([][]string, height)
	for r := range cells {
		cells[r] = make([]string, width)
	}
	return &Grid{Height: height, Width: width, Cells: cells}
}

// At returns the form occupying (row, col), or "" for an empty cell.
func (g *Grid) At(row, col int) string {
	return g.Cells[row][col]
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, row := range g.Cells {
		for _, cell := range row {
			if cell != "" {
				n++
			}
		}
	}
	return n
}

// CountByForm returns the number of placed units per form.
func (g *Grid) CountByForm() map[string]int {
	counts := make(map[string]int)
	for _, row := range g.Cells {
		for _, cell := range row {
			if cell != "" {
				counts[cell]++
			}
		}
	}
	return counts
}

// Forms returns the distinct forms present on the grid, in row-major order
// of first appearance.
func (g *Grid) Forms() []string {
	seen := make(map[string]bool)
	var forms []string
	for _, row := range g.Cells {
		for _, cell := range row {
			if cell != "" && !seen[cell] {
				seen[cell] = true
				forms = append(forms, cell)
			}
		}
	}
	return forms
}

// Adjacency counts, for every ordered pair of distinct forms, how often a
// unit of the first form touches a unit of the second in its 8-cell
// neighborhood. Symmetric pairs are counted once under lexicographic order.
// The result feeds the adjacency-graph rendering.
func (g *Grid) Adjacency() map[string]map[string]int {
	adj := make(map[string]map[string]int)
	bump := func(a, b string) {
		if a > b {
			a, b = b, a
		}
		if adj[a] == nil {
			adj[a] = make(map[string]int)
		}
		adj[a][b]++
	}

	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			from := g.Cells[r][c]
			if from == "" {
				continue
			}
			// Only look right and down so each neighboring pair is visited
			// exactly once.
			neighbors := [][2]int{{0, 1}, {1, -1}, {1, 0}, {1, 1}}
			for _, d := range neighbors {
				nr, nc := r+d[0], c+d[1]
				if nr < 0 || nr >= g.Height || nc < 0 || nc >= g.Width {
					continue
				}
				to := g.Cells[nr][nc]
				if to != "" && to != from {
					bump(from, to)
				}
			}
		}
	}
	return adj
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Height, g.Width)
	for r := range g.Cells {
		copy(out.Cells[r], g.Cells[r])
	}
	return out
}
