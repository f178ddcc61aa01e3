package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/reeflab/reefplan/pkg/reef"
)

// ToDOT converts a placed grid to a Graphviz DOT graph of form adjacency.
// Each growth form becomes a node sized by its cell count; an edge connects
// two forms when their units occupy neighboring cells, with penwidth scaled
// by the number of adjacent pairs. The resulting DOT string can be rendered
// with [RenderDOTSVG] or [RenderDOTPNG].
func ToDOT(g *reef.Grid) string {
	counts := g.CountByForm()
	adjacency := g.Adjacency()

	var buf bytes.Buffer
	buf.WriteString("graph reef {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	forms := g.Forms()
	for i, form := range forms {
		size := nodeSize(counts[form])
		fill := defaultPalette[i%len(defaultPalette)]
		fmt.Fprintf(&buf, "  %q [label=\"%s\\n%d\", width=%.2f, fillcolor=%q];\n",
			form, form, counts[form], size, fill)
	}

	buf.WriteString("\n")
	for _, from := range slices.Sorted(maps.Keys(adjacency)) {
		for _, to := range slices.Sorted(maps.Keys(adjacency[from])) {
			count := adjacency[from][to]
			fmt.Fprintf(&buf, "  %q -- %q [penwidth=%.1f, label=\"%d\"];\n",
				from, to, edgeWidth(count), count)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeSize scales node diameter with cell count, clamped to a readable range.
func nodeSize(count int) float64 {
	size := 0.6 + float64(count)/80.0
	if size > 2.5 {
		size = 2.5
	}
	return size
}

func edgeWidth(count int) float64 {
	width := 1.0 + float64(count)/10.0
	if width > 8.0 {
		width = 8.0
	}
	return width
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [ToPDF] or [ToPNG].
func RenderDOTSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderDOTPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderDOTSVG] and [ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderDOTPDF(dot string) ([]byte, error) {
	svg, err := RenderDOTSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// RenderDOTPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderDOTSVG] and [ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderDOTPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderDOTSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
