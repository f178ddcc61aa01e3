package scenario

// Default planning options.
const (
	// DefaultSlackCap allows a one-fragment shortfall per form to absorb
	// integer rounding.
	DefaultSlackCap = 1

	// DefaultSurvivalRate is the expected one-year survival to maturity
	// reported across restoration studies.
	DefaultSurvivalRate = 0.60

	// DefaultUnitsPerStar is the number of fragments mounted on one reef
	// star, the placement granularity of the layout simulation.
	DefaultUnitsPerStar = 14

	// DefaultSiteArea is the default restoration plot footprint in m².
	DefaultSiteArea = 100.0

	// DefaultAspectRatio is the default grid width:height ratio ("very
	// wide" site shape).
	DefaultAspectRatio = 4.0

	// DefaultRetryBudget bounds placement attempts per unit.
	DefaultRetryBudget = 200

	// DefaultClusteringWeight is used for forms without a configured weight.
	DefaultClusteringWeight = 0.5
)

// defaultForm captures the built-in ecology of one growth form.
type defaultForm struct {
	name       string
	proportion float64 // relative representation, Indian Ocean grouping (Madin et al. 2023)
	ecoScore   float64 // illustrative functional weight, partly growth-rate driven
	clustering float64
}

// builtinForms lists the growth forms the tool knows out of the box, in
// display order.
var builtinForms = []defaultForm{
	{"Branching", 0.234, 0.3, 0.3},
	{"Massive/Sub-massive", 0.429, 0.9, 1.0},
	{"Columnar", 0.124, 0.56, 0.3},
	{"Table/Plate", 0.162, 0.45, 0.6},
	{"Encrusting", 0.051, 0.45, 0.6},
}

// Default returns a scenario populated with the built-in growth forms and
// default options. Supplies start at zero and must be filled in by the
// caller before the scenario validates.
func Default() *Scenario {
	s := &Scenario{
		Options: DefaultOptions(),
	}
	for _, d := range builtinForms {
		s.Forms = append(s.Forms, Form{
			Name:             d.name,
			Proportion:       d.proportion,
			EcoScore:         d.ecoScore,
			ClusteringWeight: d.clustering,
			Enabled:          true,
		})
	}
	return s
}

// DefaultOptions returns the default planning options.
func DefaultOptions() Options {
	return Options{
		Normalize:    true,
		UseWeights:   true,
		SlackCap:     DefaultSlackCap,
		SurvivalRate: DefaultSurvivalRate,
		UnitsPerStar: DefaultUnitsPerStar,
		SiteArea:     DefaultSiteArea,
		AspectRatio:  DefaultAspectRatio,
		RetryBudget:  DefaultRetryBudget,
	}
}

// AspectRatios maps the named site shapes to width:height ratios.
var AspectRatios = map[string]float64{
	"square": 1.0,
	"wide":   2.0,
	"xwide":  4.0,
}

// Sanitize repairs values that the original form layer would have replaced
// with defaults: negative supplies become 0, out-of-range clustering weights
// fall back to the built-in (or generic) default, and non-positive scalar
// options are reset. It returns one human-readable note per substitution so
// the caller can surface warnings; hard errors are left for Validate.
func (s *Scenario) Sanitize() []string {
	var notes []string

	defaults := make(map[string]defaultForm, len(builtinForms))
	for _, d := range builtinForms {
		defaults[d.name] = d
	}

	for i := range s.Forms {
		f := &s.Forms[i]
		if f.Supply < 0 {
			notes = append(notes, "supply for "+f.Name+" was negative; using 0")
			f.Supply = 0
		}
		if f.ClusteringWeight < 0 || f.ClusteringWeight > 1 {
			w := DefaultClusteringWeight
			if d, ok := defaults[f.Name]; ok {
				w = d.clustering
			}
			notes = append(notes, "clustering weight for "+f.Name+" must be 0-1; using default")
			f.ClusteringWeight = w
		}
		if f.Proportion < 0 {
			p := 0.0
			if d, ok := defaults[f.Name]; ok {
				p = d.proportion
			}
			notes = append(notes, "target proportion for "+f.Name+" was negative; using default")
			f.Proportion = p
		}
	}

	if s.Options.SurvivalRate <= 0 || s.Options.SurvivalRate > 1 {
		s.Options.SurvivalRate = DefaultSurvivalRate
	}
	if s.Options.UnitsPerStar <= 0 {
		s.Options.UnitsPerStar = DefaultUnitsPerStar
	}
	if s.Options.SiteArea <= 0 {
		s.Options.SiteArea = DefaultSiteArea
	}
	if s.Options.AspectRatio <= 0 {
		s.Options.AspectRatio = DefaultAspectRatio
	}
	if s.Options.RetryBudget <= 0 {
		s.Options.RetryBudget = DefaultRetryBudget
	}
	if s.Options.SlackCap < 0 {
		s.Options.SlackCap = DefaultSlackCap
	}

	return notes
}
