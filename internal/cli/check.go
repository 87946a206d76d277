package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/learnpath/pkg/io"
	"github.com/matzehuels/learnpath/pkg/resolve"
)

// errForcedRemovals is returned by check --strict when a manual edge had to
// be removed.
var errForcedRemovals = errors.New("manual overrides form a prerequisite cycle")

// checkCommand creates the check command for reporting prerequisite cycles.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		format  string
		strict  bool
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "check [skills.json|skills.yaml]",
		Short: "Report prerequisite cycles and the edges that would break them",
		Long: `Report prerequisite cycles and the edges that would break them.

Each cycle is listed with its members followed by the edges the resolver
removes, weakest first. Removals of manual override edges are flagged; with
--strict they make the command fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args[0], format, strict, refresh, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "stdout format: table, json, yaml")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when a manual override edge must be removed")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached report exists")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runCheck loads the document and prints its cycle report.
func (c *CLI) runCheck(ctx context.Context, input, format string, strict, refresh, noCache bool) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}

	runner, closeRunner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	prog := newProgress(loggerFromContext(ctx))
	report, hit, err := runner.Cycles(ctx, doc, refresh)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Checked %d skills", len(doc.Nodes)))

	switch format {
	case formatTable:
		printReport(report, hit)
	case formatJSON, formatYAML:
		f, _ := io.ParseFormat(format)
		if err := io.WriteResult(os.Stdout, report, f); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (must be one of: table, json, yaml)", format)
	}

	if strict && len(report.Forced()) > 0 {
		return errForcedRemovals
	}
	return nil
}

func printReport(report *resolve.Report, cached bool) {
	if !report.HasCycles() {
		printSuccess("No prerequisite cycles")
		return
	}

	printWarning("Found %d prerequisite %s", len(report.Cycles), plural(len(report.Cycles), "cycle", "cycles"))
	for i, cycle := range report.Cycles {
		printNewline()
		printKeyValue(fmt.Sprintf("Cycle %d", i+1), strings.Join(cycle.Members, ", "))
		for _, rm := range report.Removed {
			if rm.Cycle != i {
				continue
			}
			printRemoval(rm)
		}
	}
	printNewline()
	status := iconFresh
	if cached {
		status = iconCached
	}
	printDetail("%d edges removed · %s", len(report.Removed), status)
}

func printRemoval(rm resolve.Removal) {
	e := rm.Edge
	line := fmt.Sprintf("%s %s %s  %s %.2f", e.From, iconArrow, e.To, e.Strength, e.Confidence)
	if rm.Forced {
		fmt.Println("  " + styleIconError.Render(iconError) + " " + line + " " + StyleWarning.Render("(manual)"))
		return
	}
	fmt.Println("  " + StyleDim.Render(iconError+" "+line))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
