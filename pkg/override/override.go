package override

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/learnpath/pkg/graph"
)

// ErrInvalidOverride is returned for directives that are malformed or name
// nodes that do not exist.
var ErrInvalidOverride = errors.New("invalid override")

// Kind selects what an [Override] does.
type Kind int

const (
	// AddEdge asserts a manual prerequisite (or advisory) edge.
	AddEdge Kind = iota
	// RemoveEdge deletes an edge of any type.
	RemoveEdge
	// PinPosition pins a node to a milestone index.
	PinPosition
)

var kindNames = []string{"ADD_EDGE", "REMOVE_EDGE", "PIN_POSITION"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("invalid override kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (k *Kind) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	for i, n := range kindNames {
		if strings.EqualFold(n, s) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown override kind %q (must be one of: %s)", s, strings.Join(kindNames, ", "))
}

// Override is one caller directive applied to the store before cycle
// resolution.
type Override struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// From and To name the edge for AddEdge and RemoveEdge.
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`

	// Type is the type of an added edge. The zero value is a prerequisite.
	Type graph.EdgeType `json:"type,omitempty" yaml:"type,omitempty"`

	// Node and Milestone describe a PinPosition directive.
	Node      string `json:"node,omitempty" yaml:"node,omitempty"`
	Milestone int    `json:"milestone,omitempty" yaml:"milestone,omitempty"`

	// Reason is a free-text audit note. It does not affect the result.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Edge returns the edge an AddEdge directive inserts. Manual edges are
// always critical and fully confident.
func (o Override) Edge() graph.Edge {
	return graph.Edge{
		From:       o.From,
		To:         o.To,
		Type:       o.Type,
		Strength:   graph.Critical,
		Confidence: 1.0,
		Origin:     graph.ManualOverride,
	}
}

func (o Override) String() string {
	switch o.Kind {
	case AddEdge, RemoveEdge:
		return fmt.Sprintf("%s %s->%s", o.Kind, o.From, o.To)
	case PinPosition:
		return fmt.Sprintf("%s %s@%d", o.Kind, o.Node, o.Milestone)
	}
	return o.Kind.String()
}

// Pins maps pinned node IDs to milestone indices.
type Pins map[string]int

// ApplyError reports which override failed. It unwraps to the underlying
// cause, which is either a structural error from the graph package or
// [ErrInvalidOverride].
type ApplyError struct {
	Index    int
	Override Override
	Err      error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("override %d (%s): %v", e.Index, e.Override, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// Apply applies overrides to g in list order and returns the collected pins.
//
// AddEdge inserts [Override.Edge] and replaces any edge between the same
// pair. RemoveEdge is a no-op when the edge does not exist. For PinPosition
// the node must exist and the index must be non-negative; a later pin of the
// same node replaces an earlier one.
//
// Apply stops at the first failing override and returns an [*ApplyError].
// Overrides before it have already been applied.
func Apply(g *graph.Store, overrides []Override) (Pins, error) {
	pins := make(Pins)
	for i, o := range overrides {
		if err := apply(g, o, pins); err != nil {
			return nil, &ApplyError{Index: i, Override: o, Err: err}
		}
	}
	return pins, nil
}

func apply(g *graph.Store, o Override, pins Pins) error {
	switch o.Kind {
	case AddEdge:
		if o.From == "" || o.To == "" {
			return fmt.Errorf("%w: edge endpoints must not be empty", ErrInvalidOverride)
		}
		return g.AddEdge(o.Edge())
	case RemoveEdge:
		if o.From == "" || o.To == "" {
			return fmt.Errorf("%w: edge endpoints must not be empty", ErrInvalidOverride)
		}
		return g.RemoveEdge(o.From, o.To)
	case PinPosition:
		if !g.HasNode(o.Node) {
			return fmt.Errorf("%w: pinned node %q does not exist", ErrInvalidOverride, o.Node)
		}
		if o.Milestone < 0 {
			return fmt.Errorf("%w: milestone index %d is negative", ErrInvalidOverride, o.Milestone)
		}
		pins[o.Node] = o.Milestone
		return nil
	}
	return fmt.Errorf("%w: unknown kind %s", ErrInvalidOverride, o.Kind)
}

// Manual returns the manual override edges among edges, in input order.
func Manual(edges []graph.Edge) []graph.Edge {
	var out []graph.Edge
	for _, e := range edges {
		if e.IsManual() {
			out = append(out, e)
		}
	}
	return out
}
