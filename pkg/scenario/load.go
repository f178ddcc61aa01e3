package scenario

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/reeflab/reefplan/pkg/errors"
)

// Parse decodes a TOML scenario document. Missing options fall back to the
// defaults; forms omit nothing silently except Enabled, which defaults to
// true so a minimal file only needs name, supply and proportion.
//
// Example document:
//
//	[options]
//	normalize = true
//	slack_cap = 1
//
//	[[form]]
//	name = "Branching"
//	supply = 120
//	proportion = 0.234
//	eco_score = 0.3
//	clustering_weight = 0.3
func Parse(data []byte) (*Scenario, error) {
	// Decode into a shadow structure with pointer fields so absent values
	// are distinguishable from explicit zeros.
	var doc struct {
		Options struct {
			Normalize    *bool    `toml:"normalize"`
			UseWeights   *bool    `toml:"use_weights"`
			SlackCap     *int     `toml:"slack_cap"`
			SurvivalRate *float64 `toml:"survival_rate"`
			UnitsPerStar *int     `toml:"units_per_star"`
			SiteArea     *float64 `toml:"site_area"`
			AspectRatio  *float64 `toml:"aspect_ratio"`
			RetryBudget  *int     `toml:"retry_budget"`
			Seed         *int64   `toml:"seed"`
		} `toml:"options"`
		Forms []struct {
			Name             string   `toml:"name"`
			Supply           int      `toml:"supply"`
			Proportion       float64  `toml:"proportion"`
			EcoScore         *float64 `toml:"eco_score"`
			ClusteringWeight *float64 `toml:"clustering_weight"`
			Enabled          *bool    `toml:"enabled"`
		} `toml:"form"`
	}

	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "parse scenario")
	}

	s := &Scenario{Options: DefaultOptions()}
	o := doc.Options
	if o.Normalize != nil {
		s.Options.Normalize = *o.Normalize
	}
	if o.UseWeights != nil {
		s.Options.UseWeights = *o.UseWeights
	}
	if o.SlackCap != nil {
		s.Options.SlackCap = *o.SlackCap
	}
	if o.SurvivalRate != nil {
		s.Options.SurvivalRate = *o.SurvivalRate
	}
	if o.UnitsPerStar != nil {
		s.Options.UnitsPerStar = *o.UnitsPerStar
	}
	if o.SiteArea != nil {
		s.Options.SiteArea = *o.SiteArea
	}
	if o.AspectRatio != nil {
		s.Options.AspectRatio = *o.AspectRatio
	}
	if o.RetryBudget != nil {
		s.Options.RetryBudget = *o.RetryBudget
	}
	if o.Seed != nil {
		s.Options.Seed = *o.Seed
	}

	for _, f := range doc.Forms {
		form := Form{
			Name:             f.Name,
			Supply:           f.Supply,
			Proportion:       f.Proportion,
			EcoScore:         1.0,
			ClusteringWeight: DefaultClusteringWeight,
			Enabled:          true,
		}
		if f.EcoScore != nil {
			form.EcoScore = *f.EcoScore
		}
		if f.ClusteringWeight != nil {
			form.ClusteringWeight = *f.ClusteringWeight
		}
		if f.Enabled != nil {
			form.Enabled = *f.Enabled
		}
		s.Forms = append(s.Forms, form)
	}

	if len(s.Forms) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidScenario, "scenario declares no growth forms")
	}

	return s, nil
}

// Load reads and parses a scenario file from path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scenario file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read scenario %s", path)
	}
	return Parse(data)
}
