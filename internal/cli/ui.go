package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/reeflab/reefplan/pkg/bench"
	"github.com/reeflab/reefplan/pkg/reef"
	"github.com/reeflab/reefplan/pkg/solve"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// formColors cycles per-form background colors for the terminal grid view.
var formColors = []lipgloss.Color{
	lipgloss.Color("173"), // branching orange
	lipgloss.Color("68"),  // massive blue
	lipgloss.Color("71"),  // columnar green
	lipgloss.Color("168"), // table pink
	lipgloss.Color("134"), // encrusting purple
	lipgloss.Color("37"),
	lipgloss.Color("63"),
	lipgloss.Color("133"),
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints allocation statistics on a single line.
func printStats(formCount, totalUnits, starCount int, cached bool) {
	var parts []string
	if formCount > 0 {
		parts = append(parts, fmt.Sprintf("%d forms", formCount))
	}
	if totalUnits > 0 {
		parts = append(parts, fmt.Sprintf("%d fragments", totalUnits))
	}
	if starCount > 0 {
		parts = append(parts, fmt.Sprintf("%d stars", starCount))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// =============================================================================
// Tables
// =============================================================================

// renderAllocationTable formats a solved allocation as a bordered table.
func renderAllocationTable(a *solve.Allocation) string {
	rows := make([][]string, 0, len(a.Forms)+1)
	for _, f := range a.Forms {
		rows = append(rows, []string{
			f.Name,
			fmt.Sprintf("%d", f.Supply),
			fmt.Sprintf("%d", f.Allocated),
			fmt.Sprintf("%.1f%%", f.Target*100),
			fmt.Sprintf("%.1f%%", f.Achieved*100),
			fmt.Sprintf("%.1f", f.Contribution),
		})
	}
	rows = append(rows, []string{
		StyleHighlight.Render("Total"), "",
		StyleHighlight.Render(fmt.Sprintf("%d", a.Total)),
		"", "",
		StyleHighlight.Render(fmt.Sprintf("%.1f", a.Score)),
	})

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("Growth form", "Supply", "Allocated", "Target", "Achieved", "Score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})

	return t.Render()
}

// renderBenchmarkTable formats density benchmarks as a bordered table.
func renderBenchmarkTable(benchmarks []bench.Benchmark) string {
	rows := make([][]string, len(benchmarks))
	for i, b := range benchmarks {
		status := string(b.Status)
		switch b.Status {
		case bench.StatusWithin:
			status = StyleSuccess.Render(status)
		case bench.StatusBelow:
			status = StyleWarning.Render(status)
		case bench.StatusAbove:
			status = StyleHighlight.Render(status)
		}
		rows[i] = []string{
			b.Form,
			fmt.Sprintf("%d", b.Allocated),
			fmt.Sprintf("%d", b.ExpectedAdults),
			fmt.Sprintf("%.0f", b.Density),
			status,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("Growth form", "Outplanted", "Adults (1y)", "Per 100 m²", "Benchmark").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})

	return t.Render()
}

// =============================================================================
// Grid Preview
// =============================================================================

// maxPreviewWidth caps the terminal grid preview so wide sites don't wrap.
const maxPreviewWidth = 60

// renderGridPreview draws the grid with one colored cell per placed unit,
// plus a color key. Grids wider than the preview cap are truncated with a
// note rather than wrapped.
func renderGridPreview(g *reef.Grid) string {
	colors := make(map[string]lipgloss.Color)
	for i, form := range g.Forms() {
		colors[form] = formColors[i%len(formColors)]
	}

	width := g.Width
	truncated := false
	if width > maxPreviewWidth {
		width = maxPreviewWidth
		truncated = true
	}

	var b strings.Builder
	empty := StyleDim.Render("·")
	for r := 0; r < g.Height; r++ {
		for col := 0; col < width; col++ {
			if form := g.Cells[r][col]; form != "" {
				b.WriteString(lipgloss.NewStyle().Background(colors[form]).Render(" "))
			} else {
				b.WriteString(empty)
			}
		}
		b.WriteString("\n")
	}
	if truncated {
		b.WriteString(StyleDim.Render(fmt.Sprintf("(showing %d of %d columns)", width, g.Width)))
		b.WriteString("\n")
	}

	counts := g.CountByForm()
	for _, form := range g.Forms() {
		swatch := lipgloss.NewStyle().Background(colors[form]).Render("  ")
		b.WriteString(fmt.Sprintf("%s %s %s\n", swatch, StyleValue.Render(form),
			StyleDim.Render(fmt.Sprintf("(%d)", counts[form]))))
	}

	return b.String()
}
