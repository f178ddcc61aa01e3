// Package scenario defines restoration scenarios: the growth forms under
// consideration, their fragment supplies and ecological parameters, and the
// global planning options.
//
// A scenario is the single input to the planning pipeline. It can be built
// programmatically, or loaded from a TOML file with [Load]. Growth forms keep
// their declaration order throughout, so tables and legends render in a
// stable order.
package scenario

import (
	"github.com/reeflab/reefplan/pkg/errors"
)

// Form describes one coral growth form in a scenario.
type Form struct {
	// Name identifies the growth form (e.g., "Branching").
	Name string `toml:"name" json:"name"`

	// Supply is the number of fragments available for outplanting.
	Supply int `toml:"supply" json:"supply"`

	// Proportion is the ecological target proportion for this form. It does
	// not need to be normalized; see Options.Normalize.
	Proportion float64 `toml:"proportion" json:"proportion"`

	// EcoScore weights this form in the optimization objective. Ignored when
	// Options.UseWeights is false.
	EcoScore float64 `toml:"eco_score" json:"eco_score"`

	// ClusteringWeight is the probability that a placed unit of this form is
	// biased toward existing same-form units. Must be in [0, 1].
	ClusteringWeight float64 `toml:"clustering_weight" json:"clustering_weight"`

	// Enabled excludes the form from planning entirely when false.
	Enabled bool `toml:"enabled" json:"enabled"`
}

// Options holds scenario-wide planning knobs.
type Options struct {
	// Normalize rescales enabled target proportions to sum to 1 before
	// solving. On by default for ecological balance.
	Normalize bool `toml:"normalize" json:"normalize"`

	// UseWeights enables the ecological function scores in the objective.
	// When false, every form scores 1.0 and the solver maximizes total
	// fragments instead.
	UseWeights bool `toml:"use_weights" json:"use_weights"`

	// SlackCap is the allowed per-form shortfall (in whole fragments) below
	// the proportional target. 0 enforces strict proportional floors.
	SlackCap int `toml:"slack_cap" json:"slack_cap"`

	// SurvivalRate is the expected one-year survival to maturity, in [0, 1].
	SurvivalRate float64 `toml:"survival_rate" json:"survival_rate"`

	// UnitsPerStar is the number of fragments aggregated into one placement
	// unit ("reef star") for the layout simulation.
	UnitsPerStar int `toml:"units_per_star" json:"units_per_star"`

	// SiteArea is the restoration plot footprint in square meters. Only used
	// to derive the per-cell area annotation.
	SiteArea float64 `toml:"site_area" json:"site_area"`

	// AspectRatio is the grid width:height ratio.
	AspectRatio float64 `toml:"aspect_ratio" json:"aspect_ratio"`

	// RetryBudget bounds placement attempts per unit.
	RetryBudget int `toml:"retry_budget" json:"retry_budget"`

	// Seed drives layout shuffling and placement. Zero means "pick one".
	Seed int64 `toml:"seed" json:"seed"`
}

// Scenario is a complete planning input: ordered growth forms plus options.
type Scenario struct {
	Forms   []Form  `toml:"form" json:"forms"`
	Options Options `toml:"options" json:"options"`
}

// Enabled returns the enabled forms in declaration order.
func (s *Scenario) Enabled() []Form {
	out := make([]Form, 0, len(s.Forms))
	for _, f := range s.Forms {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out
}

// TotalSupply returns the summed supply across enabled forms.
func (s *Scenario) TotalSupply() int {
	total := 0
	for _, f := range s.Enabled() {
		total += f.Supply
	}
	return total
}

// NormalizedProportions returns the target proportions of the enabled forms,
// rescaled to sum to 1 when Options.Normalize is set. Order matches Enabled().
func (s *Scenario) NormalizedProportions() []float64 {
	enabled := s.Enabled()
	props := make([]float64, len(enabled))
	sum := 0.0
	for i, f := range enabled {
		props[i] = f.Proportion
		sum += f.Proportion
	}
	if s.Options.Normalize && sum > 0 {
		for i := range props {
			props[i] /= sum
		}
	}
	return props
}

// EffectiveScores returns the objective weights for the enabled forms: the
// configured eco scores when weighting is on, or all 1.0 otherwise.
func (s *Scenario) EffectiveScores() []float64 {
	enabled := s.Enabled()
	scores := make([]float64, len(enabled))
	for i, f := range enabled {
		if s.Options.UseWeights {
			scores[i] = f.EcoScore
		} else {
			scores[i] = 1.0
		}
	}
	return scores
}

// ClusterWeights returns the clustering weight of each enabled form, keyed
// by name, for the placement simulation.
func (s *Scenario) ClusterWeights() map[string]float64 {
	enabled := s.Enabled()
	weights := make(map[string]float64, len(enabled))
	for _, f := range enabled {
		weights[f.Name] = f.ClusteringWeight
	}
	return weights
}

// Validate checks the scenario for hard errors that cannot be repaired by
// default substitution. It must pass before the scenario reaches the solver.
//
// Rules:
//   - every form needs a valid, unique name
//   - supplies must be non-negative, proportions and scores finite and
//     non-negative, clustering weights in [0, 1]
//   - the scenario needs at least one enabled form
//   - every enabled form must have positive supply (untick it instead)
//   - scalar options must be in range
func (s *Scenario) Validate() error {
	seen := make(map[string]bool, len(s.Forms))
	for _, f := range s.Forms {
		if err := errors.ValidateFormName(f.Name); err != nil {
			return err
		}
		if seen[f.Name] {
			return errors.New(errors.ErrCodeInvalidScenario, "duplicate growth form: %q", f.Name)
		}
		seen[f.Name] = true

		if err := errors.ValidateSupply(f.Name, f.Supply); err != nil {
			return err
		}
		if err := errors.ValidateProportion(f.Name, f.Proportion); err != nil {
			return err
		}
		if err := errors.ValidateEcoScore(f.Name, f.EcoScore); err != nil {
			return err
		}
		if err := errors.ValidateClusteringWeight(f.Name, f.ClusteringWeight); err != nil {
			return err
		}
	}

	enabled := s.Enabled()
	if len(enabled) == 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "no growth forms enabled")
	}
	for _, f := range enabled {
		if f.Supply == 0 {
			return errors.New(errors.ErrCodeInvalidScenario,
				"enabled growth form %q has no available fragments; adjust its supply or disable it", f.Name)
		}
	}

	if err := errors.ValidateSlackCap(s.Options.SlackCap); err != nil {
		return err
	}
	if err := errors.ValidateSurvivalRate(s.Options.SurvivalRate); err != nil {
		return err
	}
	if err := errors.ValidateUnitsPerStar(s.Options.UnitsPerStar); err != nil {
		return err
	}
	if err := errors.ValidateAspectRatio(s.Options.AspectRatio); err != nil {
		return err
	}
	if err := errors.ValidateRetryBudget(s.Options.RetryBudget); err != nil {
		return err
	}
	if s.Options.SiteArea <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "site area must be positive (got %g)", s.Options.SiteArea)
	}

	return nil
}
