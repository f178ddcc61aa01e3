package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reeflab/reefplan/pkg/reef"
)

func testGrid() *reef.Grid {
	g := reef.NewGrid(5, 5)
	g.Cells[0][0] = "Branching"
	g.Cells[0][1] = "Branching"
	g.Cells[1][1] = "Massive"
	g.Cells[4][4] = "Encrusting"
	return g
}

func TestRenderSVG(t *testing.T) {
	svg := RenderSVG(testGrid())

	s := string(svg)
	if !strings.HasPrefix(s, "<svg") {
		t.Error("output should start with <svg")
	}
	if !strings.HasSuffix(strings.TrimSpace(s), "</svg>") {
		t.Error("output should end with </svg>")
	}
	// 5x5 grid plus no legend: exactly 25 rects.
	if n := strings.Count(s, "<rect"); n != 25 {
		t.Errorf("rect count = %d, want 25", n)
	}
}

func TestRenderSVGLegend(t *testing.T) {
	svg := RenderSVG(testGrid(), WithLegend())

	s := string(svg)
	for _, want := range []string{"Branching (2)", "Massive (1)", "Encrusting (1)"} {
		if !strings.Contains(s, want) {
			t.Errorf("legend missing %q", want)
		}
	}
	// 25 grid cells plus one swatch per form.
	if n := strings.Count(s, "<rect"); n != 28 {
		t.Errorf("rect count = %d, want 28", n)
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testGrid(), WithLegend())
	b := RenderSVG(testGrid(), WithLegend())
	if !bytes.Equal(a, b) {
		t.Error("same grid rendered differently")
	}
}

func TestRenderSVGCellSize(t *testing.T) {
	svg := RenderSVG(testGrid(), WithCellSize(10))
	if !strings.Contains(string(svg), `viewBox="0 0 50 50"`) {
		t.Errorf("viewBox does not reflect cell size:\n%s", firstLine(svg))
	}
}

func TestRenderSVGCustomColors(t *testing.T) {
	svg := RenderSVG(testGrid(), WithColors(map[string]string{"Massive": "#123456"}))
	if !strings.Contains(string(svg), "#123456") {
		t.Error("custom color not applied")
	}
}

func TestRenderSVGEscapesFormNames(t *testing.T) {
	g := reef.NewGrid(5, 5)
	g.Cells[0][0] = "A<B&C"
	svg := RenderSVG(g, WithLegend())
	s := string(svg)
	if strings.Contains(s, "A<B&C") {
		t.Error("form name not escaped")
	}
	if !strings.Contains(s, "A&lt;B&amp;C") {
		t.Error("expected escaped form name")
	}
}

func TestRenderSVGCaption(t *testing.T) {
	svg := string(RenderSVG(testGrid(), WithCaption("one cell ≈ 4.00 m²")))
	if !strings.Contains(svg, "one cell ≈ 4.00 m²") {
		t.Error("caption text missing from SVG")
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGrid())

	if !strings.HasPrefix(dot, "graph reef {") {
		t.Error("expected undirected graph header")
	}
	for _, want := range []string{`"Branching"`, `"Massive"`, `"Encrusting"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing node %s", want)
		}
	}
	// Branching at (0,1) and Massive at (1,1) are neighbors; Encrusting
	// touches nothing.
	if !strings.Contains(dot, `"Branching" -- "Massive"`) {
		t.Error("missing adjacency edge")
	}
	if strings.Contains(dot, `"Encrusting" --`) {
		t.Error("unexpected edge for isolated form")
	}
}

func TestToDOTDeterministic(t *testing.T) {
	a := ToDOT(testGrid())
	for i := 0; i < 10; i++ {
		if b := ToDOT(testGrid()); a != b {
			t.Fatal("same grid produced different DOT")
		}
	}
}

func firstLine(b []byte) string {
	s := string(b)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
