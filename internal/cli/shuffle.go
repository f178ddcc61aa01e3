package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/reeflab/reefplan/pkg/io"
	"github.com/reeflab/reefplan/pkg/pipeline"
	"github.com/reeflab/reefplan/pkg/scenario"
	"github.com/reeflab/reefplan/pkg/solve"
)

// shuffleCommand creates the shuffle command for interactive layout browsing.
func (c *CLI) shuffleCommand() *cobra.Command {
	var (
		output  string
		seed    int64
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "shuffle [scenario.toml]",
		Short: "Interactively reshuffle the site layout",
		Long: `Interactively reshuffle the site layout.

The shuffle command solves the allocation model once and then lets you
cycle through random layout variants in the terminal. Each press of 'r'
re-seeds the placement walk; when a layout looks right, press 'enter' to
save it as a layout.json file for the 'visualize' command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShuffle(cmd.Context(), args[0], output, seed, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "initial layout seed (overrides the scenario)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runShuffle solves the scenario and hands the layout loop to the TUI.
func (c *CLI) runShuffle(ctx context.Context, input, output string, seed int64, noCache bool) error {
	s, err := c.loadScenario(input, seed)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Scenario: *s, Logger: c.Logger}

	allocation, err := runner.Solve(ctx, opts)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	layoutOpts := s.Options
	if layoutOpts.Seed == 0 {
		layoutOpts.Seed = pipeline.DefaultSeed
	}

	model := NewShuffleModel(allocation, layoutOpts, s.ClusterWeights())
	program := tea.NewProgram(model, tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("shuffle: %w", err)
	}

	m, ok := final.(ShuffleModel)
	if !ok || !m.Accepted {
		printInfo("No layout saved")
		return nil
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := io.ExportLayout(m.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout saved (seed %d)", m.Seed)
	printFile(outputPath)
	printNewline()
	printNextStep("Render", "reefplan visualize "+outputPath)

	return nil
}

// =============================================================================
// ShuffleModel - Interactive layout reshuffling
// =============================================================================

// ShuffleModel is the bubbletea model cycling through layout variants.
type ShuffleModel struct {
	Allocation *solve.Allocation
	Options    scenario.Options
	Weights    map[string]float64

	Seed     int64
	Layout   *io.Layout
	Rolls    int
	Accepted bool
}

// NewShuffleModel builds the model and places the first variant.
func NewShuffleModel(a *solve.Allocation, opts scenario.Options, weights map[string]float64) ShuffleModel {
	m := ShuffleModel{
		Allocation: a,
		Options:    opts,
		Weights:    weights,
		Seed:       opts.Seed,
	}
	m.Layout = m.place(m.Seed)
	return m
}

// place runs a single placement pass with the given seed.
func (m ShuffleModel) place(seed int64) *io.Layout {
	opts := m.Options
	opts.Seed = seed
	return pipeline.BuildLayout(m.Allocation, opts, m.Weights)
}

func (m ShuffleModel) Init() tea.Cmd {
	return nil
}

func (m ShuffleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r", " ":
			m.Seed = time.Now().UnixNano()
			m.Layout = m.place(m.Seed)
			m.Rolls++
		case "enter", "s":
			m.Accepted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ShuffleModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Shuffle Layout"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("r reshuffle  ⏎ save  q quit"))
	b.WriteString("\n\n")

	b.WriteString(renderGridPreview(m.Layout.Grid))
	b.WriteString("\n")

	status := fmt.Sprintf("seed %d", m.Seed)
	if m.Rolls > 0 {
		status += fmt.Sprintf("  ·  variant %d", m.Rolls+1)
	}
	if m.Layout.Unplaced > 0 {
		status += "  ·  " + StyleWarning.Render(fmt.Sprintf("%d unplaced", m.Layout.Unplaced))
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n")

	return b.String()
}
