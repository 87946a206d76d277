package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/learnpath/pkg/cache"
	"github.com/matzehuels/learnpath/pkg/graph"
	"github.com/matzehuels/learnpath/pkg/milestone"
	"github.com/matzehuels/learnpath/pkg/override"
	"github.com/matzehuels/learnpath/pkg/resolve"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxNodesPerMilestone is the node capacity of one milestone.
	DefaultMaxNodesPerMilestone = 5

	// DefaultMaxHoursPerMilestone is the hour capacity of one milestone.
	DefaultMaxHoursPerMilestone = 40.0
)

// Input is everything the engine consumes for one run.
type Input struct {
	Nodes     []graph.Node        `json:"nodes" yaml:"nodes"`
	Edges     []graph.Edge        `json:"edges" yaml:"edges"`
	Overrides []override.Override `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// Options configures a run. Zero values select the defaults.
type Options struct {
	MaxNodesPerMilestone int     `json:"max_nodes_per_milestone" yaml:"max_nodes_per_milestone"`
	MaxHoursPerMilestone float64 `json:"max_hours_per_milestone" yaml:"max_hours_per_milestone"`

	// Refresh makes a [Runner] skip the cache lookup. Generate ignores it.
	Refresh bool `json:"-" yaml:"-"`

	Logger *log.Logger `json:"-" yaml:"-"`
}

// ValidateAndSetDefaults fills zero fields with defaults and checks the
// capacities through [milestone.Constraints.Validate].
func (o *Options) ValidateAndSetDefaults() error {
	if o.MaxNodesPerMilestone == 0 {
		o.MaxNodesPerMilestone = DefaultMaxNodesPerMilestone
	}
	if o.MaxHoursPerMilestone == 0 {
		o.MaxHoursPerMilestone = DefaultMaxHoursPerMilestone
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.constraints(nil).Validate()
}

func (o Options) constraints(pins override.Pins) milestone.Constraints {
	return milestone.Constraints{
		MaxNodes: o.MaxNodesPerMilestone,
		MaxHours: o.MaxHoursPerMilestone,
		Pins:     pins,
	}
}

// Result is the output of one run. It holds no maps, so its JSON form is
// byte-identical across runs over the same input.
type Result struct {
	Milestones []milestone.Milestone `json:"milestones" yaml:"milestones"`

	// Order is the full topological ordering the milestones were cut from.
	Order []string `json:"order" yaml:"order"`

	Report resolve.Report `json:"report" yaml:"report"`

	// Edges is the effective edge set after overrides and cycle removal,
	// sorted by (From, To). Advisory edges are included.
	Edges []graph.Edge `json:"edges" yaml:"edges"`

	// SurvivingOverrides lists the manual edges still present in Edges.
	SurvivingOverrides []graph.Edge `json:"surviving_overrides" yaml:"surviving_overrides"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Stats    Stats    `json:"stats" yaml:"stats"`

	// Digest identifies the input and options. It is empty when the input
	// cannot be canonically encoded, for example when a confidence is NaN.
	Digest string `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// Stats are counts describing a run.
type Stats struct {
	Nodes             int     `json:"nodes" yaml:"nodes"`
	InputEdges        int     `json:"input_edges" yaml:"input_edges"`
	Overrides         int     `json:"overrides" yaml:"overrides"`
	PrerequisiteEdges int     `json:"prerequisite_edges" yaml:"prerequisite_edges"`
	Cycles            int     `json:"cycles" yaml:"cycles"`
	EdgesRemoved      int     `json:"edges_removed" yaml:"edges_removed"`
	ForcedRemoved     int     `json:"forced_removed" yaml:"forced_removed"`
	Milestones        int     `json:"milestones" yaml:"milestones"`
	TotalHours        float64 `json:"total_hours" yaml:"total_hours"`
}

// digestInput is the canonical shape hashed into [Result.Digest].
type digestInput struct {
	Input    Input   `json:"input"`
	MaxNodes int     `json:"max_nodes"`
	MaxHours float64 `json:"max_hours"`
}

// Digest returns the canonical SHA-256 of in and the capacity options. opts
// must already hold its defaults.
func Digest(in Input, opts Options) (string, error) {
	return cache.CanonicalHash(digestInput{
		Input:    in,
		MaxNodes: opts.MaxNodesPerMilestone,
		MaxHours: opts.MaxHoursPerMilestone,
	})
}
