package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reeflab/reefplan/pkg/io"
	"github.com/reeflab/reefplan/pkg/pipeline"
	"github.com/reeflab/reefplan/pkg/scenario"
	"github.com/reeflab/reefplan/pkg/solve"
)

// layoutCommand creates the layout command for placing a solved allocation.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		scenarioPath string
		output       string
		seed         int64
		noCache      bool
		refresh      bool
	)

	cmd := &cobra.Command{
		Use:   "layout [allocation.json]",
		Short: "Simulate the site layout for a solved allocation",
		Long: `Simulate the site layout for a solved allocation.

The layout command takes an allocation.json file (produced by 'solve') and
scatters the placement units onto a site grid using the clustered random
walk. The output is a layout.json file that can be rendered to SVG/PNG/PDF
using the 'visualize' command.

Layout knobs (units per star, aspect ratio, clustering weights, seed) come
from the scenario file passed with --scenario; without one, the built-in
defaults apply.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], scenarioPath, output, seed, noCache, refresh)
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "scenario file providing layout options")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "layout seed (overrides the scenario)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runLayout loads the allocation, places it, and writes the layout.
func (c *CLI) runLayout(ctx context.Context, input, scenarioPath, output string, seed int64, noCache, refresh bool) error {
	allocation, err := io.ImportAllocation(input)
	if err != nil {
		return fmt.Errorf("load allocation %s: %w", input, err)
	}

	s, err := c.layoutScenario(scenarioPath, seed, allocation)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Scenario: *s, Refresh: refresh, Logger: c.Logger}

	spinner := newSpinnerWithContext(ctx, "Placing reef stars...")
	spinner.Start()

	layout, cacheHit, err := runner.LayoutWithCacheInfo(ctx, allocation, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := io.ExportLayout(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	if layout.Unplaced > 0 {
		printWarning("%d units could not be placed", layout.Unplaced)
	}
	printStats(len(allocation.Forms), allocation.Total, layout.Grid.Occupied()+layout.Unplaced, cacheHit)
	printNewline()
	printNextStep("Render", "reefplan visualize "+outputPath)

	return nil
}

// layoutScenario loads the scenario backing a layout run, or builds one from
// defaults covering the allocation's forms when no file is given.
func (c *CLI) layoutScenario(path string, seed int64, allocation *solve.Allocation) (*scenario.Scenario, error) {
	if path != "" {
		return c.loadScenario(path, seed)
	}

	s := &scenario.Scenario{Options: scenario.DefaultOptions()}
	for _, f := range allocation.Forms {
		s.Forms = append(s.Forms, scenario.Form{
			Name:             f.Name,
			ClusteringWeight: scenario.DefaultClusteringWeight,
			Enabled:          true,
		})
	}
	if seed != 0 {
		s.Options.Seed = seed
	}
	return s, nil
}
