package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/reeflab/reefplan/pkg/solve"
)

type allocationDoc struct {
	Forms []formDoc `json:"forms"`
	Total int       `json:"total"`
	Score float64   `json:"score"`
}

type formDoc struct {
	Name         string  `json:"name"`
	Supply       int     `json:"supply"`
	Allocated    int     `json:"allocated"`
	Target       float64 `json:"target"`
	Achieved     float64 `json:"achieved"`
	EcoScore     float64 `json:"eco_score"`
	Contribution float64 `json:"contribution"`
}

// WriteAllocation encodes an allocation as JSON and writes it to w.
// The output can be re-imported with [ReadAllocation] for round-trip
// processing.
func WriteAllocation(a *solve.Allocation, w io.Writer) error {
	out := allocationDoc{
		Forms: make([]formDoc, len(a.Forms)),
		Total: a.Total,
		Score: a.Score,
	}
	for i, f := range a.Forms {
		out.Forms[i] = formDoc{
			Name:         f.Name,
			Supply:       f.Supply,
			Allocated:    f.Allocated,
			Target:       f.Target,
			Achieved:     f.Achieved,
			EcoScore:     f.EcoScore,
			Contribution: f.Contribution,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportAllocation writes an allocation to a JSON file at path.
// This is a convenience wrapper around [WriteAllocation] for file-based output.
func ExportAllocation(a *solve.Allocation, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteAllocation(a, f)
}

// ReadAllocation decodes a JSON allocation from r.
//
// Each form must have a non-empty name and a non-negative allocated count.
// Errors are wrapped with the offending form's index or name for context.
// ReadAllocation does not close r.
func ReadAllocation(r io.Reader) (*solve.Allocation, error) {
	var doc allocationDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	a := &solve.Allocation{
		Forms: make([]solve.FormResult, len(doc.Forms)),
		Total: doc.Total,
		Score: doc.Score,
	}
	seen := make(map[string]bool, len(doc.Forms))
	for i, f := range doc.Forms {
		if f.Name == "" {
			return nil, fmt.Errorf("form %d: missing name", i)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("form %s: duplicate name", f.Name)
		}
		seen[f.Name] = true
		if f.Allocated < 0 {
			return nil, fmt.Errorf("form %s: negative allocated count", f.Name)
		}
		a.Forms[i] = solve.FormResult{
			Name:         f.Name,
			Supply:       f.Supply,
			Allocated:    f.Allocated,
			Target:       f.Target,
			Achieved:     f.Achieved,
			EcoScore:     f.EcoScore,
			Contribution: f.Contribution,
		}
	}
	return a, nil
}

// ImportAllocation reads a JSON file at path and returns the decoded
// allocation. It returns the same validation errors as [ReadAllocation],
// wrapped with the file path for context.
func ImportAllocation(path string) (*solve.Allocation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadAllocation(f)
}
