package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/reeflab/reefplan/pkg/reef"
	"github.com/reeflab/reefplan/pkg/solve"
)

func sampleAllocation() *solve.Allocation {
	return &solve.Allocation{
		Forms: []solve.FormResult{
			{Name: "Branching", Supply: 120, Allocated: 80, Target: 0.4, Achieved: 0.4, EcoScore: 0.3, Contribution: 24},
			{Name: "Massive", Supply: 100, Allocated: 120, Target: 0.6, Achieved: 0.6, EcoScore: 0.9, Contribution: 108},
		},
		Total: 200,
		Score: 132,
	}
}

func TestAllocationRoundTrip(t *testing.T) {
	want := sampleAllocation()

	var buf bytes.Buffer
	if err := WriteAllocation(want, &buf); err != nil {
		t.Fatalf("WriteAllocation: %v", err)
	}
	got, err := ReadAllocation(&buf)
	if err != nil {
		t.Fatalf("ReadAllocation: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestAllocationFileRoundTrip(t *testing.T) {
	want := sampleAllocation()
	path := filepath.Join(t.TempDir(), "allocation.json")

	if err := ExportAllocation(want, path); err != nil {
		t.Fatalf("ExportAllocation: %v", err)
	}
	got, err := ImportAllocation(path)
	if err != nil {
		t.Fatalf("ImportAllocation: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("file round trip mismatch")
	}
}

func TestReadAllocationValidation(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"malformed", `{`},
		{"missing name", `{"forms":[{"allocated":5}],"total":5}`},
		{"duplicate name", `{"forms":[{"name":"A","allocated":1},{"name":"A","allocated":2}],"total":3}`},
		{"negative allocated", `{"forms":[{"name":"A","allocated":-1}],"total":0}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ReadAllocation(strings.NewReader(c.json)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestImportAllocationMissingFile(t *testing.T) {
	if _, err := ImportAllocation(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func sampleLayout() *Layout {
	g := reef.NewGrid(5, 5)
	g.Cells[0][0] = "Branching"
	g.Cells[2][3] = "Massive"
	return &Layout{Grid: g, Unplaced: 1, SiteArea: 100, CellArea: 4, Seed: 42}
}

func TestLayoutRoundTrip(t *testing.T) {
	want := sampleLayout()

	var buf bytes.Buffer
	if err := WriteLayout(want, &buf); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}
	got, err := ReadLayout(&buf)
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	want := sampleLayout()
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := ExportLayout(want, path); err != nil {
		t.Fatalf("ExportLayout: %v", err)
	}
	got, err := ImportLayout(path)
	if err != nil {
		t.Fatalf("ImportLayout: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("file round trip mismatch")
	}
}

func TestReadLayoutValidation(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"malformed", `{`},
		{"zero dimensions", `{"height":0,"width":0,"cells":[]}`},
		{"row count mismatch", `{"height":2,"width":1,"cells":[[""]]}`},
		{"row width mismatch", `{"height":1,"width":2,"cells":[[""]]}`},
		{"negative unplaced", `{"height":1,"width":1,"cells":[[""]],"unplaced":-1}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ReadLayout(strings.NewReader(c.json)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
