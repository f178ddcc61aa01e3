package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reeflab/reefplan/pkg/pipeline"
)

// planCommand creates the plan command running the full pipeline.
func (c *CLI) planCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		seed       int64
		noCache    bool
	)
	opts := pipeline.Options{Legend: true}

	cmd := &cobra.Command{
		Use:   "plan [scenario.toml]",
		Short: "Run the full planning pipeline for a scenario",
		Long: `Run the full planning pipeline for a scenario.

The plan command solves the fragment allocation model, simulates the site
layout, and renders the reef map in one step. It prints the allocation and
density benchmark tables and writes one file per requested format.

Results are cached locally for faster subsequent runs. Use 'solve',
'layout', and 'visualize' to run the stages separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runPlan(cmd.Context(), args[0], opts, output, seed, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().Int64Var(&seed, "seed", 0, "layout seed (overrides the scenario)")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.Legend, "legend", opts.Legend, "include a form legend in the SVG")
	cmd.Flags().IntVar(&opts.CellSize, "cell-size", 0, "rendered cell size in pixels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor")

	return cmd
}

// runPlan loads the scenario and executes the whole pipeline.
func (c *CLI) runPlan(ctx context.Context, input string, opts pipeline.Options, output string, seed int64, noCache bool) error {
	s, err := c.loadScenario(input, seed)
	if err != nil {
		return err
	}
	opts.Scenario = *s
	opts.Logger = c.Logger

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Planning restoration...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Planning failed")
		return fmt.Errorf("plan: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	fmt.Println(renderAllocationTable(result.Allocation))
	printNewline()
	fmt.Println(renderBenchmarkTable(result.Benchmarks))
	printNewline()

	if result.Layout.Unplaced > 0 {
		printWarning("%d units could not be placed; consider a larger site or lower clustering", result.Layout.Unplaced)
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}

	printStats(result.Stats.FormCount, result.Stats.TotalUnits, result.Stats.StarCount, result.CacheInfo.SolveHit)
	return nil
}
