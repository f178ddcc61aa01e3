package pipeline

import (
	"math/rand"

	"github.com/reeflab/reefplan/pkg/io"
	"github.com/reeflab/reefplan/pkg/reef"
	"github.com/reeflab/reefplan/pkg/scenario"
	"github.com/reeflab/reefplan/pkg/solve"
)

// BuildLayout aggregates an allocation into placement units and scatters
// them onto a sized grid. The whole run is driven by the seed in opts, so
// the same allocation and options always produce the same layout.
func BuildLayout(a *solve.Allocation, opts scenario.Options, weights map[string]float64) *io.Layout {
	counts := make([]reef.FormCount, len(a.Forms))
	for i, f := range a.Forms {
		counts[i] = reef.FormCount{Form: f.Name, Count: f.Allocated}
	}
	units := reef.Aggregate(counts, opts.UnitsPerStar)
	height, width := reef.Shape(len(units), opts.AspectRatio)

	rng := rand.New(rand.NewSource(opts.Seed))
	reef.Shuffle(units, rng)
	placement := reef.Place(height, width, units, reef.PlaceOptions{
		Weights:     weights,
		RetryBudget: opts.RetryBudget,
	}, rng)

	return &io.Layout{
		Grid:     placement.Grid,
		Unplaced: placement.Unplaced,
		SiteArea: opts.SiteArea,
		CellArea: reef.CellArea(opts.SiteArea, height, width),
		Seed:     opts.Seed,
	}
}
