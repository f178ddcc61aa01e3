// Package io provides JSON import and export for planning artifacts.
//
// # Overview
//
// This package enables serialization of allocations and layouts to and from
// simple JSON formats. The formats are designed for:
//
//   - Piping artifacts between CLI commands (solve, layout, visualize)
//   - Integration with external tools that produce or consume planning data
//   - Caching of solved models for faster re-rendering
//   - Round-trip preservation: export, re-import, and continue identically
//
// # Allocation Format
//
// An allocation document carries the solved model:
//
//	{
//	  "forms": [
//	    {"name": "Branching", "supply": 120, "allocated": 80, "target": 0.4,
//	     "achieved": 0.4, "eco_score": 0.3, "contribution": 24}
//	  ],
//	  "total": 200,
//	  "score": 61.5
//	}
//
// # Layout Format
//
// A layout document carries a placed grid. Cells are row-major arrays of
// form names, with the empty string marking an unoccupied cell:
//
//	{
//	  "height": 5,
//	  "width": 20,
//	  "cells": [["Branching", "", ...], ...],
//	  "unplaced": 0,
//	  "site_area": 100,
//	  "cell_area": 1,
//	  "seed": 42
//	}
//
// # Import
//
// Use [ImportAllocation] and [ImportLayout] to read from a file path, or
// [ReadAllocation] and [ReadLayout] to read from any io.Reader. Both
// validate structure on read and wrap errors with context about which
// form or row caused the problem.
//
// # Export
//
// Use [ExportAllocation] and [ExportLayout] to write to a file, or
// [WriteAllocation] and [WriteLayout] to write to any io.Writer. Exports
// include all data needed to resume the pipeline at the next stage.
package io
