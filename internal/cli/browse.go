package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCommand creates the browse command for exploring a path interactively.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		noCache bool
		flags   capacityFlags
	)

	cmd := &cobra.Command{
		Use:   "browse [skills.json|skills.yaml]",
		Short: "Explore a learning path in the terminal",
		Long: `Explore a learning path in the terminal.

Shows the milestone table; move with the arrow keys and press enter to list
the skills of a milestone with their level, hours and prerequisites.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], flags, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

// runBrowse generates the path and hands it to the milestone browser.
func (c *CLI) runBrowse(ctx context.Context, input string, flags capacityFlags, noCache bool) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}
	run, err := c.execute(ctx, doc, flags, noCache)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewMilestoneModel(run.Result, doc.Nodes), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}
