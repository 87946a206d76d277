// Package cli implements the learnpath command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/learnpath/pkg/buildinfo"
	"github.com/matzehuels/learnpath/pkg/cache"
	"github.com/matzehuels/learnpath/pkg/config"
	"github.com/matzehuels/learnpath/pkg/engine"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "learnpath"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Learnpath turns a skill graph into an ordered learning path",
		Long: `Learnpath reads a graph of skills and their prerequisites, breaks any
prerequisite cycles, orders the skills so that every prerequisite comes first,
and groups the ordering into milestones of bounded size.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/learnpath/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads the config file once per process.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	c.cfg = &cfg
	return cfg, nil
}

// newRunner creates an engine runner backed by the configured cache. The
// returned close function releases the cache connection.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*engine.Runner, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, nil, err
	}
	runner := engine.NewRunner(store, nil, c.Logger)
	if cfg.Cache.TTL > 0 {
		runner.TTL = cfg.Cache.TTL
	}
	return runner, func() {
		if err := store.Close(); err != nil {
			c.Logger.Debug("close cache", "error", err)
		}
	}, nil
}

func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(ctx, cfg.CacheSettings())
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cfg.Cache.Backend, err)
	}
	return store, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// capacityFlags holds per-command overrides of the configured capacities.
type capacityFlags struct {
	maxNodes int
	maxHours float64
	refresh  bool
}

func (f *capacityFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxNodes, "max-nodes", 0, "maximum skills per milestone (default from config)")
	cmd.Flags().Float64Var(&f.maxHours, "max-hours", 0, "maximum hours per milestone (default from config)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
}

// options layers the flags over the configured capacities. Flags left at
// zero keep the config value.
func (f capacityFlags) options(cfg config.Config) engine.Options {
	opts := cfg.EngineOptions()
	if f.maxNodes != 0 {
		opts.MaxNodesPerMilestone = f.maxNodes
	}
	if f.maxHours != 0 {
		opts.MaxHoursPerMilestone = f.maxHours
	}
	opts.Refresh = f.refresh
	return opts
}
