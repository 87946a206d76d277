package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/learnpath/pkg/engine"
	"github.com/matzehuels/learnpath/pkg/io"
)

// Output formats for commands that print results.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// generateCommand creates the generate command for building a learning path.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output  string
		format  string
		noCache bool
		flags   capacityFlags
	)

	cmd := &cobra.Command{
		Use:   "generate [skills.json|skills.yaml]",
		Short: "Build a milestone learning path from a skill graph",
		Long: `Build a milestone learning path from a skill graph.

The input document lists skills, prerequisite edges between them and optional
manual overrides. Prerequisite cycles are broken by removing the weakest edge,
the remaining graph is ordered so that prerequisites come first, and the
ordering is cut into milestones bounded by --max-nodes and --max-hours.

With -o the full result is written to a JSON or YAML file chosen by extension.
Otherwise it is printed as a milestone table, or as JSON/YAML with -f.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], flags, format, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to a .json or .yaml file")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "stdout format: table, json, yaml")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

// runGenerate loads the document, runs the engine and writes the result.
func (c *CLI) runGenerate(ctx context.Context, input string, flags capacityFlags, format, output string, noCache bool) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}
	run, err := c.execute(ctx, doc, flags, noCache)
	if err != nil {
		return err
	}

	if output != "" {
		if err := io.ExportResult(run, output); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printSuccess("Learning path complete")
		printFile(output)
		printStats(run.Result.Stats, run.CacheHit)
		printNewline()
		printNextStep("Render", appName+" render "+input)
		return nil
	}

	switch format {
	case formatTable:
		printMilestones(run.Result)
		printWarnings(run.Result)
		printNewline()
		printStats(run.Result.Stats, run.CacheHit)
		return nil
	case formatJSON, formatYAML:
		f, _ := io.ParseFormat(format)
		return io.WriteResult(os.Stdout, run, f)
	}
	return fmt.Errorf("unknown format %q (must be one of: table, json, yaml)", format)
}

// loadDocument reads and validates the input document at path.
func loadDocument(path string) (engine.Input, error) {
	doc, err := io.ImportDocument(path)
	if err != nil {
		return engine.Input{}, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// execute runs the engine over doc behind a spinner.
func (c *CLI) execute(ctx context.Context, doc engine.Input, flags capacityFlags, noCache bool) (*engine.Run, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	runner, closeRunner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	opts := flags.options(cfg)
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Building learning path...")
	spinner.Start()

	run, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return nil, err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return run, nil
}
