package bench

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		density float64
		want    Status
	}{
		{0, StatusBelow},
		{12.9, StatusBelow},
		{13, StatusWithin},
		{30, StatusWithin},
		{50, StatusWithin},
		{50.1, StatusAbove},
	}
	for _, c := range cases {
		if got := Classify(c.density); got != c.want {
			t.Errorf("Classify(%g) = %s, want %s", c.density, got, c.want)
		}
	}
}

func TestCompute(t *testing.T) {
	inputs := []Input{
		{Form: "Branching", Allocated: 100},
		{Form: "Encrusting", Allocated: 10},
	}

	// 60% survival on a 100 m² site: 100 fragments → 60 adults → 60/100 m².
	got := Compute(inputs, 0.60, 100)

	if len(got) != 2 {
		t.Fatalf("got %d benchmarks", len(got))
	}
	b := got[0]
	if b.ExpectedAdults != 60 {
		t.Errorf("ExpectedAdults = %d, want 60", b.ExpectedAdults)
	}
	if b.Density != 60 {
		t.Errorf("Density = %g, want 60", b.Density)
	}
	if b.Status != StatusAbove {
		t.Errorf("Status = %s, want %s", b.Status, StatusAbove)
	}

	e := got[1]
	if e.ExpectedAdults != 6 {
		t.Errorf("ExpectedAdults = %d, want 6", e.ExpectedAdults)
	}
	if e.Status != StatusBelow {
		t.Errorf("Status = %s, want %s", e.Status, StatusBelow)
	}
}

func TestComputeZeroArea(t *testing.T) {
	got := Compute([]Input{{Form: "A", Allocated: 50}}, 0.5, 0)
	if got[0].Density != 0 {
		t.Errorf("Density with zero area = %g, want 0", got[0].Density)
	}
}
