package scenario

import (
	"math"
	"strings"
	"testing"

	"github.com/reeflab/reefplan/pkg/errors"
)

func TestDefault(t *testing.T) {
	s := Default()

	if len(s.Forms) != 5 {
		t.Fatalf("Default() has %d forms, want 5", len(s.Forms))
	}
	if s.Forms[0].Name != "Branching" {
		t.Errorf("first form = %s, want Branching (order must be preserved)", s.Forms[0].Name)
	}
	if s.Forms[1].Name != "Massive/Sub-massive" || s.Forms[1].ClusteringWeight != 1.0 {
		t.Errorf("unexpected second form: %+v", s.Forms[1])
	}
	if !s.Options.Normalize || !s.Options.UseWeights {
		t.Error("normalize and use_weights should default to true")
	}
	if s.Options.UnitsPerStar != 14 {
		t.Errorf("UnitsPerStar = %d, want 14", s.Options.UnitsPerStar)
	}

	// Default proportions sum close to 1 already.
	sum := 0.0
	for _, f := range s.Forms {
		sum += f.Proportion
	}
	if math.Abs(sum-1.0) > 0.01 {
		t.Errorf("default proportions sum to %g", sum)
	}
}

func TestNormalizedProportions(t *testing.T) {
	s := &Scenario{
		Forms: []Form{
			{Name: "A", Proportion: 1, Enabled: true},
			{Name: "B", Proportion: 3, Enabled: true},
			{Name: "C", Proportion: 99, Enabled: false},
		},
		Options: Options{Normalize: true},
	}

	props := s.NormalizedProportions()
	if len(props) != 2 {
		t.Fatalf("got %d proportions, want 2 (disabled forms excluded)", len(props))
	}
	if math.Abs(props[0]-0.25) > 1e-9 || math.Abs(props[1]-0.75) > 1e-9 {
		t.Errorf("normalized = %v, want [0.25 0.75]", props)
	}

	s.Options.Normalize = false
	props = s.NormalizedProportions()
	if props[0] != 1 || props[1] != 3 {
		t.Errorf("unnormalized = %v, want [1 3]", props)
	}
}

func TestEffectiveScores(t *testing.T) {
	s := &Scenario{
		Forms: []Form{
			{Name: "A", EcoScore: 0.3, Enabled: true},
			{Name: "B", EcoScore: 0.9, Enabled: true},
		},
		Options: Options{UseWeights: true},
	}

	scores := s.EffectiveScores()
	if scores[0] != 0.3 || scores[1] != 0.9 {
		t.Errorf("weighted scores = %v", scores)
	}

	s.Options.UseWeights = false
	scores = s.EffectiveScores()
	if scores[0] != 1.0 || scores[1] != 1.0 {
		t.Errorf("unweighted scores = %v, want all 1.0", scores)
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	for i := range valid.Forms {
		valid.Forms[i].Supply = 50
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}

	// Enabled form with zero supply must be rejected.
	zero := Default()
	zero.Forms[0].Supply = 0
	for i := 1; i < len(zero.Forms); i++ {
		zero.Forms[i].Supply = 50
	}
	err := zero.Validate()
	if err == nil {
		t.Fatal("enabled form with zero supply should fail validation")
	}
	if !errors.Is(err, errors.ErrCodeInvalidScenario) {
		t.Errorf("expected INVALID_SCENARIO, got %v", err)
	}

	// Disabling the empty form makes it valid again.
	zero.Forms[0].Enabled = false
	if err := zero.Validate(); err != nil {
		t.Errorf("scenario with disabled empty form rejected: %v", err)
	}

	// No enabled forms at all.
	none := Default()
	for i := range none.Forms {
		none.Forms[i].Enabled = false
	}
	if err := none.Validate(); err == nil {
		t.Error("scenario with no enabled forms should fail")
	}

	// Duplicate names.
	dup := &Scenario{
		Forms: []Form{
			{Name: "A", Supply: 1, Enabled: true},
			{Name: "A", Supply: 1, Enabled: true},
		},
		Options: DefaultOptions(),
	}
	if err := dup.Validate(); err == nil {
		t.Error("duplicate form names should fail")
	}
}

func TestSanitize(t *testing.T) {
	s := Default()
	s.Forms[0].Supply = -5
	s.Forms[2].ClusteringWeight = 1.7
	s.Options.UnitsPerStar = 0
	s.Options.AspectRatio = -1

	notes := s.Sanitize()
	if len(notes) != 2 {
		t.Errorf("got %d notes, want 2: %v", len(notes), notes)
	}
	if s.Forms[0].Supply != 0 {
		t.Errorf("negative supply not repaired: %d", s.Forms[0].Supply)
	}
	if s.Forms[2].ClusteringWeight != 0.3 {
		t.Errorf("Columnar weight = %g, want built-in default 0.3", s.Forms[2].ClusteringWeight)
	}
	if s.Options.UnitsPerStar != DefaultUnitsPerStar {
		t.Errorf("UnitsPerStar = %d", s.Options.UnitsPerStar)
	}
	if s.Options.AspectRatio != DefaultAspectRatio {
		t.Errorf("AspectRatio = %g", s.Options.AspectRatio)
	}
}

func TestParse(t *testing.T) {
	doc := `
[options]
normalize = false
slack_cap = 2
seed = 12345

[[form]]
name = "Branching"
supply = 120
proportion = 0.4

[[form]]
name = "Encrusting"
supply = 30
proportion = 0.6
eco_score = 0.45
clustering_weight = 0.6
enabled = false
`
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if s.Options.Normalize {
		t.Error("normalize should be false")
	}
	if s.Options.SlackCap != 2 {
		t.Errorf("SlackCap = %d, want 2", s.Options.SlackCap)
	}
	if s.Options.Seed != 12345 {
		t.Errorf("Seed = %d", s.Options.Seed)
	}
	// Unspecified options keep their defaults.
	if s.Options.UnitsPerStar != DefaultUnitsPerStar {
		t.Errorf("UnitsPerStar = %d, want default", s.Options.UnitsPerStar)
	}

	if len(s.Forms) != 2 {
		t.Fatalf("got %d forms", len(s.Forms))
	}
	b := s.Forms[0]
	if b.Name != "Branching" || b.Supply != 120 || !b.Enabled {
		t.Errorf("unexpected form: %+v", b)
	}
	if b.EcoScore != 1.0 {
		t.Errorf("missing eco_score should default to 1.0, got %g", b.EcoScore)
	}
	if b.ClusteringWeight != DefaultClusteringWeight {
		t.Errorf("missing clustering_weight should default to %g, got %g", DefaultClusteringWeight, b.ClusteringWeight)
	}
	if s.Forms[1].Enabled {
		t.Error("explicit enabled=false should be honored")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("not [valid toml")); err == nil {
		t.Error("malformed TOML should fail")
	}
	_, err := Parse([]byte("[options]\nnormalize = true\n"))
	if err == nil {
		t.Fatal("scenario without forms should fail")
	}
	if !strings.Contains(err.Error(), "no growth forms") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/scenario.toml")
	if err == nil {
		t.Fatal("missing file should fail")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}
