package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/matzehuels/learnpath/pkg/graph"
	"github.com/matzehuels/learnpath/pkg/milestone"
	"github.com/matzehuels/learnpath/pkg/order"
	"github.com/matzehuels/learnpath/pkg/override"
	"github.com/matzehuels/learnpath/pkg/resolve"

	lperrors "github.com/matzehuels/learnpath/pkg/errors"
)

// Generate runs the full pipeline over in and returns the learning path.
//
// Cycles never fail a run: they are broken and explained in
// [Result.Report]. Manual edges removed to break a cycle, and milestones
// pushed over capacity by a pin, are listed in [Result.Warnings].
func Generate(in Input, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, lperrors.Wrap(lperrors.ErrCodeInvalidConstraints, err, "invalid options")
	}
	logger := opts.Logger

	g, pins, err := build(in)
	if err != nil {
		return nil, err
	}
	logger.Debug("built graph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "pins", len(pins))

	report := resolve.Resolve(g)
	for _, rm := range report.Removed {
		if rm.Forced {
			logger.Warn("removed manual edge to break a cycle", "from", rm.Edge.From, "to", rm.Edge.To)
			continue
		}
		logger.Debug("removed edge to break a cycle",
			"from", rm.Edge.From,
			"to", rm.Edge.To,
			"strength", rm.Edge.Strength,
			"confidence", rm.Edge.Confidence)
	}
	if report.HasCycles() {
		logger.Info("resolved cycles", "cycles", len(report.Cycles), "removed", len(report.Removed))
	}

	if err := g.Finalize(); err != nil {
		return nil, lperrors.Wrap(lperrors.ErrCodeCyclicGraph, err, "finalize graph")
	}

	ordered, err := order.Order(g)
	if err != nil {
		return nil, lperrors.Wrap(lperrors.ErrCodeCyclicGraph, err, "order nodes")
	}

	ms, err := milestone.Group(g, ordered, opts.constraints(pins))
	if err != nil {
		return nil, groupError(err)
	}
	if ms == nil {
		ms = []milestone.Milestone{}
	}
	logger.Debug("grouped milestones", "milestones", len(ms))

	edges := g.Edges()
	res := &Result{
		Milestones:         ms,
		Order:              ordered,
		Report:             report,
		Edges:              edges,
		SurvivingOverrides: override.Manual(edges),
		Warnings:           warnings(report, ms),
		Stats: Stats{
			Nodes:             g.NodeCount(),
			InputEdges:        len(in.Edges),
			Overrides:         len(in.Overrides),
			PrerequisiteEdges: len(g.PrerequisiteEdges()),
			Cycles:            len(report.Cycles),
			EdgesRemoved:      len(report.Removed),
			ForcedRemoved:     len(report.Forced()),
			Milestones:        len(ms),
			TotalHours:        totalHours(ms),
		},
	}
	if res.Order == nil {
		res.Order = []string{}
	}

	if digest, err := Digest(in, opts); err == nil {
		res.Digest = digest
	} else {
		logger.Debug("input digest unavailable", "error", err)
	}
	return res, nil
}

// Cycles builds the graph, applies overrides and resolves cycles without
// ordering or grouping. It is the diagnostic half of [Generate].
func Cycles(in Input) (resolve.Report, error) {
	g, _, err := build(in)
	if err != nil {
		return resolve.Report{}, err
	}
	return resolve.Resolve(g), nil
}

// build inserts nodes, then edges, then applies overrides.
func build(in Input) (*graph.Store, override.Pins, error) {
	g := graph.New()
	for _, n := range in.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, nil, lperrors.Wrap(lperrors.ErrCodeInvalidGraph, err, "add node")
		}
	}
	for _, e := range in.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, nil, lperrors.Wrap(lperrors.ErrCodeInvalidGraph, err, "add edge")
		}
	}
	pins, err := override.Apply(g, in.Overrides)
	if err != nil {
		return nil, nil, lperrors.Wrap(lperrors.ErrCodeInvalidOverride, err, "apply overrides")
	}
	return g, pins, nil
}

func groupError(err error) error {
	switch {
	case errors.Is(err, milestone.ErrInvalidPin):
		return lperrors.Wrap(lperrors.ErrCodeInvalidPin, err, "group milestones")
	case errors.Is(err, graph.ErrUnknownNode):
		return lperrors.Wrap(lperrors.ErrCodeInternal, err, "group milestones")
	default:
		return lperrors.Wrap(lperrors.ErrCodeInvalidConstraints, err, "group milestones")
	}
}

func warnings(report resolve.Report, ms []milestone.Milestone) []string {
	var out []string
	for _, rm := range report.Forced() {
		out = append(out, fmt.Sprintf("manual edge %s->%s was removed to break a cycle among %v",
			rm.Edge.From, rm.Edge.To, report.Cycles[rm.Cycle].Members))
	}
	for _, m := range ms {
		if m.OverCapacity {
			out = append(out, fmt.Sprintf("milestone %d exceeds its capacity to honor a pin", m.Index))
		}
	}
	return out
}

func totalHours(ms []milestone.Milestone) float64 {
	var h float64
	for _, m := range ms {
		h += m.Hours
	}
	return math.Round(h*1e6) / 1e6
}
