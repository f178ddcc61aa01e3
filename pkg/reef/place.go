package reef

import (
	"math/rand"
)

// DefaultRetryBudget bounds placement attempts per unit. The cap keeps the
// cost of a full placement run at O(units · budget) even on a crowded grid.
const DefaultRetryBudget = 200

// PlaceOptions configures a placement run.
type PlaceOptions struct {
	// Weights maps each form to its clustering weight in [0, 1]: the
	// probability that a proposal is biased toward an existing unit of the
	// same form. Missing forms fall back to 0 (uniform placement).
	Weights map[string]float64

	// RetryBudget is the maximum number of cell proposals per unit.
	// Zero selects DefaultRetryBudget.
	RetryBudget int
}

// Placement is the outcome of a placement run.
type Placement struct {
	Grid *Grid `json:"grid"`

	// Unplaced counts the units discarded after exhausting the retry
	// budget. Non-zero values are a sign the grid is too small or the
	// clustering too aggressive; the grid itself is still usable.
	Unplaced int `json:"unplaced"`
}

// Shuffle permutes units in place using rng. Placement order affects which
// clusters seed first, so callers shuffle with the layout seed to make runs
// reproducible and re-shuffleable on demand.
func Shuffle(units []string, rng *rand.Rand) {
	rng.Shuffle(len(units), func(i, j int) {
		units[i], units[j] = units[j], units[i]
	})
}

// Place scatters units onto a fresh height × width grid.
//
// Each unit gets up to the retry budget of proposals. With probability
// equal to its form's clustering weight, the proposal perturbs a uniformly
// chosen existing cell of the same form by independent row and column
// offsets in {-1, 0, +1}, clamped to the grid; if the form has no placed
// units yet, or on the remaining probability mass, the proposal is a
// uniformly random cell. The first empty proposal wins. Units that exhaust
// their budget are counted as unplaced and dropped; there is no
// backtracking.
//
// The walk is greedy and memoryless; it approximates clustering for an
// illustrative layout rather than optimizing any global objective.
func Place(height, width int, units []string, opts PlaceOptions, rng *rand.Rand) *Placement {
	budget := opts.RetryBudget
	if budget <= 0 {
		budget = DefaultRetryBudget
	}

	grid := NewGrid(height, width)

	// Track occupied positions per form so biased proposals don't rescan
	// the grid.
	positions := make(map[string][][2]int)

	result := &Placement{Grid: grid}
	for _, form := range units {
		weight := opts.Weights[form]
		placed := false

		for attempt := 0; attempt < budget; attempt++ {
			var row, col int

			if rng.Float64() < weight && len(positions[form]) > 0 {
				anchor := positions[form][rng.Intn(len(positions[form]))]
				row = clamp(anchor[0]+rng.Intn(3)-1, 0, height-1)
				col = clamp(anchor[1]+rng.Intn(3)-1, 0, width-1)
			} else {
				row = rng.Intn(height)
				col = rng.Intn(width)
			}

			if grid.Cells[row][col] == "" {
				grid.Cells[row][col] = form
				positions[form] = append(positions[form], [2]int{row, col})
				placed = true
				break
			}
		}

		if !placed {
			result.Unplaced++
		}
	}

	return result
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
