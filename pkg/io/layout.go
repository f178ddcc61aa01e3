package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/reeflab/reefplan/pkg/reef"
)

// Layout is a placed grid plus the site metadata needed to render it.
type Layout struct {
	Grid     *reef.Grid
	Unplaced int
	SiteArea float64
	CellArea float64
	Seed     int64
}

type layoutDoc struct {
	Height   int        `json:"height"`
	Width    int        `json:"width"`
	Cells    [][]string `json:"cells"`
	Unplaced int        `json:"unplaced"`
	SiteArea float64    `json:"site_area"`
	CellArea float64    `json:"cell_area"`
	Seed     int64      `json:"seed"`
}

// WriteLayout encodes a layout as JSON and writes it to w.
// The output can be re-imported with [ReadLayout] for round-trip processing.
func WriteLayout(l *Layout, w io.Writer) error {
	out := layoutDoc{
		Height:   l.Grid.Height,
		Width:    l.Grid.Width,
		Cells:    l.Grid.Cells,
		Unplaced: l.Unplaced,
		SiteArea: l.SiteArea,
		CellArea: l.CellArea,
		Seed:     l.Seed,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayout writes a layout to a JSON file at path.
// This is a convenience wrapper around [WriteLayout] for file-based output.
func ExportLayout(l *Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(l, f)
}

// ReadLayout decodes a JSON layout from r.
//
// The cell matrix must match the declared height and width, and both
// dimensions must be positive. Errors are wrapped with the offending row
// index for context. ReadLayout does not close r.
func ReadLayout(r io.Reader) (*Layout, error) {
	var doc layoutDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if doc.Height <= 0 || doc.Width <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", doc.Height, doc.Width)
	}
	if len(doc.Cells) != doc.Height {
		return nil, fmt.Errorf("cell matrix has %d rows, declared height is %d", len(doc.Cells), doc.Height)
	}
	for i, row := range doc.Cells {
		if len(row) != doc.Width {
			return nil, fmt.Errorf("row %d has %d cells, declared width is %d", i, len(row), doc.Width)
		}
	}
	if doc.Unplaced < 0 {
		return nil, fmt.Errorf("negative unplaced count %d", doc.Unplaced)
	}

	return &Layout{
		Grid:     &reef.Grid{Height: doc.Height, Width: doc.Width, Cells: doc.Cells},
		Unplaced: doc.Unplaced,
		SiteArea: doc.SiteArea,
		CellArea: doc.CellArea,
		Seed:     doc.Seed,
	}, nil
}

// ImportLayout reads a JSON file at path and returns the decoded layout.
// It returns the same validation errors as [ReadLayout], wrapped with the
// file path for context.
func ImportLayout(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}
