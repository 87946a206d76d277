// Package cli implements the learnpath command-line interface.
//
// The commands read a skill graph document (JSON or YAML), run it through the
// engine and present the result. Runs go through a cached engine runner whose
// backend is chosen by the config file.
//
// # Commands
//
//   - generate: build the milestone path and print or export it
//   - check: report prerequisite cycles and the edges that break them
//   - render: draw the path as Graphviz DOT or SVG
//   - browse: explore the milestones interactively
//   - serve: expose the engine over HTTP
//   - cache: clear the result cache or print its directory
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which includes
// every edge removed to break a cycle. Loggers are passed through
// context.Context so the engine logs through the same handler.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: timestamps as "15:04:05.00", messages
// below level dropped.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one operation. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level with the elapsed time, rounded to the
// millisecond.
func (p *progress) done(msg string) {
	p.logger.Debug(msg, "elapsed", time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

// withLogger attaches l to ctx for loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
