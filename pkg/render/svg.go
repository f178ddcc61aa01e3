package render

import (
	"bytes"
	"fmt"

	"github.com/reeflab/reefplan/pkg/reef"
)

// defaultPalette provides distinguishable fills for up to eight forms.
// Forms beyond that wrap around; real scenarios rarely exceed five.
var defaultPalette = []string{
	"#e8743b", // branching orange
	"#5899da", // massive blue
	"#19a979", // columnar green
	"#ed4a7b", // table pink
	"#945ecf", // encrusting purple
	"#13a4b4",
	"#525df4",
	"#bf399e",
}

const (
	emptyFill  = "#f4f1ea"
	gridStroke = "#d8d2c4"
	legendFont = "Helvetica, Arial, sans-serif"
)

// SVGOption configures grid rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cellSize int
	legend   bool
	caption  string
	colors   map[string]string
}

// WithCellSize sets the rendered size of one grid cell in pixels.
func WithCellSize(px int) SVGOption { return func(r *svgRenderer) { r.cellSize = px } }

// WithLegend appends a legend with per-form counts below the grid.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithCaption draws a single line of text below the grid (and legend),
// typically the per-cell site area.
func WithCaption(text string) SVGOption { return func(r *svgRenderer) { r.caption = text } }

// WithColors overrides the fill color for specific forms.
// Forms not present in the map keep their palette color.
func WithColors(colors map[string]string) SVGOption {
	return func(r *svgRenderer) { r.colors = colors }
}

// RenderSVG draws a placed grid as an SVG image. Each occupied cell is
// filled with its form's color; empty cells use a neutral background.
// Colors are assigned by first appearance in row-major order, so the same
// grid always renders identically.
func RenderSVG(g *reef.Grid, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	fills := r.formFills(g)

	width := g.Width * r.cellSize
	height := g.Height * r.cellSize
	totalHeight := height
	if r.legend {
		totalHeight += legendHeight(len(fills), r.cellSize)
	}
	if r.caption != "" {
		totalHeight += r.cellSize + r.cellSize/2
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, totalHeight, width, totalHeight)

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			fill := emptyFill
			if form := g.Cells[row][col]; form != "" {
				fill = fills[form]
			}
			fmt.Fprintf(&buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s"/>`+"\n",
				col*r.cellSize, row*r.cellSize, r.cellSize, r.cellSize, fill, gridStroke)
		}
	}

	if r.legend {
		r.renderLegend(&buf, g, fills, height)
	}
	if r.caption != "" {
		y := totalHeight - r.cellSize/2
		fontSize := r.cellSize * 2 / 3
		fmt.Fprintf(&buf, `  <text x="%d" y="%d" font-family="%s" font-size="%d" fill="#6b6558">%s</text>`+"\n",
			r.cellSize/2, y, legendFont, fontSize, escapeText(r.caption))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{cellSize: 24}
	for _, opt := range opts {
		opt(&r)
	}
	if r.cellSize <= 0 {
		r.cellSize = 24
	}
	return r
}

// formFills maps each form in the grid to a fill color, assigning palette
// entries in first-appearance order.
func (r svgRenderer) formFills(g *reef.Grid) map[string]string {
	fills := make(map[string]string)
	for i, form := range g.Forms() {
		fills[form] = defaultPalette[i%len(defaultPalette)]
	}
	for form, color := range r.colors {
		if _, ok := fills[form]; ok {
			fills[form] = color
		}
	}
	return fills
}

func legendHeight(formCount, cellSize int) int {
	if formCount == 0 {
		return 0
	}
	rowHeight := cellSize + cellSize/2
	return formCount*rowHeight + cellSize/2
}

func (r svgRenderer) renderLegend(buf *bytes.Buffer, g *reef.Grid, fills map[string]string, offsetY int) {
	counts := g.CountByForm()
	rowHeight := r.cellSize + r.cellSize/2
	fontSize := r.cellSize * 2 / 3

	y := offsetY + r.cellSize/2
	for _, form := range g.Forms() {
		fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s"/>`+"\n",
			r.cellSize/2, y, r.cellSize, r.cellSize, fills[form], gridStroke)
		fmt.Fprintf(buf, `  <text x="%d" y="%d" font-family="%s" font-size="%d">%s (%d)</text>`+"\n",
			2*r.cellSize, y+r.cellSize-fontSize/2, legendFont, fontSize, escapeText(form), counts[form])
		y += rowHeight
	}
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, c := range s {
		switch c {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(c)
		}
	}
	return buf.String()
}
