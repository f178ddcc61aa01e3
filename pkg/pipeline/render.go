package pipeline

import (
	"bytes"
	"fmt"

	"github.com/reeflab/reefplan/pkg/io"
	"github.com/reeflab/reefplan/pkg/render"
)

// RenderLayout renders a layout into every requested format. PNG and PDF
// are produced by converting the SVG grid map, so they share its options.
func RenderLayout(l *io.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var svgOpts []render.SVGOption
	if opts.CellSize > 0 {
		svgOpts = append(svgOpts, render.WithCellSize(opts.CellSize))
	}
	if opts.Legend {
		svgOpts = append(svgOpts, render.WithLegend())
	}
	if l.CellArea > 0 {
		svgOpts = append(svgOpts, render.WithCaption(
			fmt.Sprintf("site %.0f m², one cell ≈ %.2f m²", l.SiteArea, l.CellArea)))
	}

	var gridSVG []byte
	svg := func() []byte {
		if gridSVG == nil {
			gridSVG = render.RenderSVG(l.Grid, svgOpts...)
		}
		return gridSVG
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = svg()
		case FormatPNG:
			png, err := render.ToPNG(svg(), opts.Scale)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = png
		case FormatPDF:
			pdf, err := render.ToPDF(svg())
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			artifacts[format] = pdf
		case FormatJSON:
			var buf bytes.Buffer
			if err := io.WriteLayout(l, &buf); err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			artifacts[format] = buf.Bytes()
		case FormatDOT:
			artifacts[format] = []byte(render.ToDOT(l.Grid))
		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}
	return artifacts, nil
}
