package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reeflab/reefplan/pkg/io"
	"github.com/reeflab/reefplan/pkg/pipeline"
)

// solveCommand creates the solve command for running only the allocation model.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "solve [scenario.toml]",
		Short: "Solve the fragment allocation model for a scenario",
		Long: `Solve the fragment allocation model for a scenario.

The solve command computes the optimal per-form fragment allocation under
the scenario's proportional constraints and prints the allocation and
density benchmark tables. With --output it also writes an allocation.json
file that 'layout' can pick up.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the allocation as JSON (default: print tables only)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runSolve loads the scenario, solves the model, and prints the outcome.
func (c *CLI) runSolve(ctx context.Context, input, output string, noCache, refresh bool) error {
	s, err := c.loadScenario(input, 0)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Scenario: *s, Refresh: refresh, Logger: c.Logger}

	prog := newProgress(c.Logger)
	allocation, cacheHit, err := runner.SolveWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	prog.done(fmt.Sprintf("Allocated %d fragments", allocation.Total))

	fmt.Println(renderAllocationTable(allocation))
	printNewline()
	fmt.Println(renderBenchmarkTable(runner.Benchmarks(allocation, opts)))
	printNewline()
	printStats(len(allocation.Forms), allocation.Total, 0, cacheHit)

	if output != "" {
		if err := io.ExportAllocation(allocation, output); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printFile(output)
		printNewline()
		printNextStep("Layout", "reefplan layout "+output+" --scenario "+input)
	}

	return nil
}
