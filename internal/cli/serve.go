package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/learnpath/pkg/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the learning path engine over HTTP",
		Long: `Serve the learning path engine over HTTP.

Routes:
  POST /v1/paths       generate a learning path (JSON or YAML body)
  POST /v1/paths/svg   generate and render it as SVG
  POST /v1/cycles      report prerequisite cycles
  GET  /healthz        liveness and version

The server shares the configured result cache with the other commands and
shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe blocks until ctx is cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, closeRunner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	srv := server.New(server.Options{
		Runner:       runner,
		Defaults:     cfg.EngineOptions(),
		Logger:       c.Logger,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	printInfo("Serving on %s", StyleValue.Render(addr))
	if err := srv.ListenAndServe(ctx, addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
