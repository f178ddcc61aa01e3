package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/reeflab/reefplan/pkg/scenario"
)

// scenarioCommand creates the scenario command group.
func (c *CLI) scenarioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Create and inspect scenario files",
	}

	cmd.AddCommand(c.scenarioInitCommand())
	cmd.AddCommand(c.scenarioShowCommand())

	return cmd
}

// scenarioInitCommand writes a starter scenario with the built-in growth forms.
func (c *CLI) scenarioInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [scenario.toml]",
		Short: "Write a starter scenario file",
		Long: `Write a starter scenario file.

The generated file contains the built-in growth forms with literature
proportions and ecological scores, plus the default planning options.
Edit the supplies to match your nursery stock and you are ready to plan.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "scenario.toml"
			if len(args) > 0 {
				path = args[0]
			}
			return c.runScenarioInit(path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

func (c *CLI) runScenarioInit(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(scenario.Default()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Scenario written")
	printFile(path)
	printNewline()
	printNextStep("Plan", "reefplan plan "+path)
	return nil
}

// scenarioShowCommand prints a scenario's forms and options.
func (c *CLI) scenarioShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [scenario.toml]",
		Short: "Print a scenario's growth forms and options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScenarioShow(args[0])
		},
	}
	return cmd
}

func (c *CLI) runScenarioShow(path string) error {
	s, err := c.loadScenario(path, 0)
	if err != nil {
		return err
	}

	fmt.Println(renderScenarioTable(s))
	printNewline()
	printDetail("slack cap %d · survival %.0f%% · %d fragments/star · site %.0f m² · aspect %.1f",
		s.Options.SlackCap, s.Options.SurvivalRate*100, s.Options.UnitsPerStar,
		s.Options.SiteArea, s.Options.AspectRatio)
	printDetail("total supply: %d fragments across %d enabled forms",
		s.TotalSupply(), len(s.Enabled()))
	return nil
}

// renderScenarioTable formats scenario forms as a bordered table.
func renderScenarioTable(s *scenario.Scenario) string {
	props := s.NormalizedProportions()
	targets := make(map[string]float64, len(props))
	for i, f := range s.Enabled() {
		targets[f.Name] = props[i]
	}

	rows := make([][]string, len(s.Forms))
	for i, f := range s.Forms {
		enabled := StyleSuccess.Render(iconSuccess)
		target := fmt.Sprintf("%.1f%%", targets[f.Name]*100)
		if !f.Enabled {
			enabled = StyleDim.Render("off")
			target = StyleDim.Render("—")
		}
		rows[i] = []string{
			f.Name,
			fmt.Sprintf("%d", f.Supply),
			target,
			fmt.Sprintf("%.2f", f.EcoScore),
			fmt.Sprintf("%.2f", f.ClusteringWeight),
			enabled,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("Growth form", "Supply", "Target", "Eco score", "Clustering", "Enabled").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})

	return t.Render()
}
