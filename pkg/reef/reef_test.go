package reef

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestStarsFor(t *testing.T) {
	cases := []struct {
		count, unitsPerStar, want int
	}{
		{15, 14, 2},  // rounds up
		{14, 14, 1},  // exact
		{1, 14, 1},   // floor of one for positive allocations
		{0, 14, 0},   // zero allocation yields nothing
		{28, 14, 2},
		{29, 14, 3},
		{5, 1, 5},
	}
	for _, c := range cases {
		if got := StarsFor(c.count, c.unitsPerStar); got != c.want {
			t.Errorf("StarsFor(%d, %d) = %d, want %d", c.count, c.unitsPerStar, got, c.want)
		}
	}
}

func TestAggregate(t *testing.T) {
	units := Aggregate([]FormCount{
		{Form: "Branching", Count: 15},
		{Form: "Columnar", Count: 0},
		{Form: "Encrusting", Count: 3},
	}, 14)

	want := []string{"Branching", "Branching", "Encrusting"}
	if !reflect.DeepEqual(units, want) {
		t.Errorf("Aggregate = %v, want %v", units, want)
	}
}

func TestShape(t *testing.T) {
	// A single unit still gets the minimum viable footprint.
	h, w := Shape(1, 4.0)
	if h < MinDimension || w < MinDimension {
		t.Errorf("Shape(1, 4.0) = %d×%d, want both ≥ %d", h, w, MinDimension)
	}

	// A large count respects the aspect ratio approximately.
	h, w = Shape(400, 4.0)
	if h != 10 || w != 40 {
		t.Errorf("Shape(400, 4.0) = %d×%d, want 10×40", h, w)
	}

	h, w = Shape(100, 1.0)
	if h != 10 || w != 10 {
		t.Errorf("Shape(100, 1.0) = %d×%d, want 10×10", h, w)
	}

	h, w = Shape(0, 2.0)
	if h != MinDimension || w != 2*MinDimension {
		t.Errorf("Shape(0, 2.0) = %d×%d", h, w)
	}
}

func TestCellArea(t *testing.T) {
	if got := CellArea(100, 5, 20); got != 1.0 {
		t.Errorf("CellArea = %g, want 1.0", got)
	}
	if got := CellArea(100, 0, 20); got != 0 {
		t.Errorf("CellArea with zero height = %g, want 0", got)
	}
}

func TestShuffleReproducible(t *testing.T) {
	base := []string{"a", "b", "c", "d", "e", "f", "g"}

	u1 := append([]string(nil), base...)
	u2 := append([]string(nil), base...)
	Shuffle(u1, rand.New(rand.NewSource(99)))
	Shuffle(u2, rand.New(rand.NewSource(99)))

	if !reflect.DeepEqual(u1, u2) {
		t.Errorf("same seed produced different orders: %v vs %v", u1, u2)
	}

	u3 := append([]string(nil), base...)
	Shuffle(u3, rand.New(rand.NewSource(100)))
	if reflect.DeepEqual(u1, u3) {
		t.Log("different seeds produced the same order (possible but unlikely)")
	}
}

func placementUnits() []string {
	counts := []FormCount{
		{Form: "Branching", Count: 60},
		{Form: "Massive/Sub-massive", Count: 120},
		{Form: "Encrusting", Count: 20},
	}
	return Aggregate(counts, 14)
}

func placementWeights() map[string]float64 {
	return map[string]float64{
		"Branching":           0.3,
		"Massive/Sub-massive": 1.0,
		"Encrusting":          0.6,
	}
}

func TestPlaceReproducible(t *testing.T) {
	units := placementUnits()
	h, w := Shape(len(units), 2.0)
	opts := PlaceOptions{Weights: placementWeights()}

	first := Place(h, w, units, opts, rand.New(rand.NewSource(42)))
	second := Place(h, w, units, opts, rand.New(rand.NewSource(42)))

	if !reflect.DeepEqual(first.Grid, second.Grid) {
		t.Error("same seed and inputs produced different grids")
	}
	if first.Unplaced != second.Unplaced {
		t.Errorf("unplaced counts differ: %d vs %d", first.Unplaced, second.Unplaced)
	}
}

func TestPlaceUniqueCells(t *testing.T) {
	units := placementUnits()
	h, w := Shape(len(units), 2.0)

	p := Place(h, w, units, PlaceOptions{Weights: placementWeights()}, rand.New(rand.NewSource(7)))

	// Every unit is either on the grid or counted unplaced, and no cell
	// holds more than one unit (cells are single-valued by construction,
	// so occupancy accounting is the real check).
	if p.Grid.Occupied()+p.Unplaced != len(units) {
		t.Errorf("occupied %d + unplaced %d != units %d",
			p.Grid.Occupied(), p.Unplaced, len(units))
	}
}

func TestPlaceOverflow(t *testing.T) {
	// 30 units on a 5×5 grid: at least 5 must fail no matter the budget.
	units := make([]string, 30)
	for i := range units {
		units[i] = "Branching"
	}

	p := Place(5, 5, units, PlaceOptions{Weights: map[string]float64{"Branching": 0.5}},
		rand.New(rand.NewSource(1)))

	if p.Unplaced < 5 {
		t.Errorf("unplaced = %d, want ≥ 5", p.Unplaced)
	}
	if p.Grid.Occupied() != 30-p.Unplaced {
		t.Errorf("occupied %d inconsistent with unplaced %d", p.Grid.Occupied(), p.Unplaced)
	}
	if p.Grid.Occupied() == 0 {
		t.Error("a full-overflow run should still return the partial grid")
	}
}

func TestPlaceZeroWeightStillPlaces(t *testing.T) {
	units := []string{"A", "A", "A", "B"}
	p := Place(5, 5, units, PlaceOptions{}, rand.New(rand.NewSource(3)))
	if p.Unplaced != 0 {
		t.Errorf("unplaced = %d on a near-empty grid", p.Unplaced)
	}
}

func TestGridHelpers(t *testing.T) {
	g := NewGrid(3, 3)
	g.Cells[0][0] = "A"
	g.Cells[0][1] = "B"
	g.Cells[2][2] = "A"

	if g.Occupied() != 3 {
		t.Errorf("Occupied = %d", g.Occupied())
	}
	counts := g.CountByForm()
	if counts["A"] != 2 || counts["B"] != 1 {
		t.Errorf("CountByForm = %v", counts)
	}
	forms := g.Forms()
	if !reflect.DeepEqual(forms, []string{"A", "B"}) {
		t.Errorf("Forms = %v", forms)
	}

	adj := g.Adjacency()
	if adj["A"]["B"] != 1 {
		t.Errorf("Adjacency A-B = %d, want 1", adj["A"]["B"])
	}

	clone := g.Clone()
	clone.Cells[1][1] = "C"
	if g.Cells[1][1] != "" {
		t.Error("Clone should not share cell storage")
	}
}
