package pipeline

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/reeflab/reefplan/pkg/cache"
	"github.com/reeflab/reefplan/pkg/scenario"
)

func testScenario() scenario.Scenario {
	s := scenario.Default()
	for i := range s.Forms {
		s.Forms[i].Supply = 60
	}
	s.Options.Seed = 7
	return *s
}

func testOptions() Options {
	// json and dot are pure sinks with no external tool dependencies.
	return Options{
		Scenario: testScenario(),
		Formats:  []string{FormatJSON, FormatDOT},
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.RunID == "" {
		t.Error("missing run ID")
	}
	if result.Allocation == nil || result.Allocation.Total == 0 {
		t.Fatal("missing allocation")
	}
	if result.AllocationHash == "" {
		t.Error("missing allocation hash")
	}
	if result.Layout == nil || result.Layout.Grid == nil {
		t.Fatal("missing layout")
	}
	if len(result.Benchmarks) != len(result.Allocation.Forms) {
		t.Errorf("benchmarks = %d, want %d", len(result.Benchmarks), len(result.Allocation.Forms))
	}
	for _, format := range []string{FormatJSON, FormatDOT} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if result.CacheInfo.SolveHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("null cache reported hits")
	}
	if got := result.Layout.Grid.Occupied() + result.Layout.Unplaced; got != result.Stats.StarCount {
		t.Errorf("star count = %d, occupied+unplaced = %d", result.Stats.StarCount, got)
	}
}

func TestExecuteDeterministic(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	a, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a.Allocation, b.Allocation) {
		t.Error("allocations differ across runs")
	}
	if !reflect.DeepEqual(a.Layout.Grid, b.Layout.Grid) {
		t.Error("layouts differ across runs with the same seed")
	}
	if !bytes.Equal(a.Artifacts[FormatDOT], b.Artifacts[FormatDOT]) {
		t.Error("artifacts differ across runs")
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	first, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.SolveHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.SolveHit {
		t.Error("second run should hit the solve cache")
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the render cache")
	}
	if !reflect.DeepEqual(first.Allocation, second.Allocation) {
		t.Error("cached allocation differs from computed one")
	}
	if !reflect.DeepEqual(first.Layout, second.Layout) {
		t.Error("cached layout differs from computed one")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	if _, err := runner.Execute(context.Background(), testOptions()); err != nil {
		t.Fatal(err)
	}

	opts := testOptions()
	opts.Refresh = true
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.SolveHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteInvalidScenario(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	opts := testOptions()
	opts.Scenario.Forms = nil
	if _, err := runner.Execute(context.Background(), opts); err == nil {
		t.Error("expected error for empty scenario")
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	opts := testOptions()
	opts.Formats = []string{"gif"}
	if _, err := runner.Execute(context.Background(), opts); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestBuildLayoutSeedStability(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	opts := testOptions()
	allocation, err := runner.Solve(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	weights := opts.Scenario.ClusterWeights()
	a := BuildLayout(allocation, opts.Scenario.Options, weights)
	b := BuildLayout(allocation, opts.Scenario.Options, weights)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different layouts")
	}

	other := opts.Scenario.Options
	other.Seed = opts.Scenario.Options.Seed + 1
	c := BuildLayout(allocation, other, weights)
	if reflect.DeepEqual(a.Grid, c.Grid) {
		t.Error("different seeds produced identical layouts")
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	if err := ValidateFormat("gif"); err == nil {
		t.Error("invalid format accepted")
	}
}
