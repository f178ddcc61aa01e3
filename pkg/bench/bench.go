// Package bench derives ecological benchmark figures from an allocation.
//
// The figures are caller-facing annotations, not solver inputs: expected
// adult colonies after one year (allocation × survival rate) and the
// resulting density per 100 m², banded against the 13–50 colonies / 100 m²
// range associated with ≥10% fertilisation success.
package bench

import "math"

// Density band thresholds, in colonies per 100 m².
const (
	MinDensity = 13
	MaxDensity = 50
)

// Status classifies a density against the benchmark band.
type Status string

const (
	StatusBelow  Status = "below threshold"
	StatusWithin Status = "within range"
	StatusAbove  Status = "above typical range"
)

// Benchmark holds the derived figures for one growth form.
type Benchmark struct {
	Form           string  `json:"form"`
	Allocated      int     `json:"allocated"`
	ExpectedAdults int     `json:"expected_adults"`
	Density        float64 `json:"density"` // colonies per 100 m²
	Status         Status  `json:"status"`
}

// Input is one growth form's allocation.
type Input struct {
	Form      string
	Allocated int
}

// Compute derives benchmarks for each form given the expected one-year
// survival rate (fraction in [0, 1]) and the site area in m².
func Compute(inputs []Input, survivalRate, siteArea float64) []Benchmark {
	out := make([]Benchmark, len(inputs))
	for i, in := range inputs {
		adults := float64(in.Allocated) * survivalRate
		density := 0.0
		if siteArea > 0 {
			density = adults / siteArea * 100
		}
		out[i] = Benchmark{
			Form:           in.Form,
			Allocated:      in.Allocated,
			ExpectedAdults: int(math.Round(adults)),
			Density:        math.Round(density),
			Status:         Classify(density),
		}
	}
	return out
}

// Classify bands a density value against the benchmark range.
func Classify(density float64) Status {
	switch {
	case density < MinDensity:
		return StatusBelow
	case density > MaxDensity:
		return StatusAbove
	default:
		return StatusWithin
	}
}
