// Package render provides visualization rendering for reef layouts.
//
// # Overview
//
// This package contains the rendering sinks that transform placed grids
// into visual outputs. It provides:
//
//   - SVG grid maps with a per-form color legend ([RenderSVG])
//   - Graphviz node-link diagrams of form adjacency ([ToDOT], [RenderDOTSVG])
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Grid Maps
//
// The SVG sink draws the placement grid cell by cell, coloring each cell by
// the growth form occupying it. Options control cell size and whether a
// legend with per-form counts is appended below the grid:
//
//	svg := render.RenderSVG(grid, render.WithLegend(), render.WithCellSize(20))
//
// # Adjacency Diagrams
//
// The DOT sink summarizes which growth forms end up next to each other,
// with edge weights proportional to the number of adjacent cell pairs.
// The resulting DOT string is rendered with Graphviz:
//
//	dot := render.ToDOT(grid)
//	svg, err := render.RenderDOTSVG(dot)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These work on the output
// of both sinks.
package render
