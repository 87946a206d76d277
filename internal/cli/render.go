package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/learnpath/pkg/io"
)

// renderCommand creates the render command for drawing a learning path.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   capacityFlags
		dotOpts io.DOTOptions
	)

	cmd := &cobra.Command{
		Use:   "render [skills.json|skills.yaml]",
		Short: "Draw a learning path as a Graphviz diagram",
		Long: `Draw a learning path as a Graphviz diagram.

Each milestone becomes a cluster and prerequisite edges are drawn between
skills. The output format follows the extension of -o: .svg renders the
diagram, anything else writes DOT source. Without -o, DOT is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], flags, dotOpts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg or .dot)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&dotOpts.Removed, "removed", true, "draw edges removed to break cycles")
	cmd.Flags().BoolVar(&dotOpts.Advisory, "advisory", false, "draw recommended and related edges")
	flags.register(cmd)

	return cmd
}

// runRender generates the path and writes it as DOT or SVG.
func (c *CLI) runRender(ctx context.Context, input string, flags capacityFlags, dotOpts io.DOTOptions, output string, noCache bool) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}
	run, err := c.execute(ctx, doc, flags, noCache)
	if err != nil {
		return err
	}

	dot := io.ToDOT(run.Result, dotOpts)
	if output == "" {
		fmt.Print(dot)
		return nil
	}

	data := []byte(dot)
	if strings.EqualFold(filepath.Ext(output), ".svg") {
		data, err = io.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Rendered %d milestones", len(run.Result.Milestones))
	printFile(output)
	printStats(run.Result.Stats, run.CacheHit)
	return nil
}
