package milestone

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/learnpath/pkg/graph"
)

// Constraints bounds the milestones produced by [Group].
type Constraints struct {
	// MaxNodes is the largest number of nodes in one milestone.
	MaxNodes int
	// MaxHours is the largest sum of estimated hours in one milestone. A single
	// node heavier than MaxHours still gets a milestone of its own.
	MaxHours float64
	// Pins maps node IDs to the milestone index they must land on.
	Pins map[string]int
}

// Validate checks the bounds and pin indices.
func (c Constraints) Validate() error {
	if c.MaxNodes <= 0 {
		return invalidConstraints("max nodes per milestone must be positive, got %d", c.MaxNodes)
	}
	if !(c.MaxHours > 0) {
		return invalidConstraints("max hours per milestone must be positive, got %v", c.MaxHours)
	}
	for id, p := range c.Pins {
		if p < 0 {
			return invalidConstraints("pin for %q has negative milestone index %d", id, p)
		}
	}
	return nil
}

// Graph is the read-only view [Group] needs. [*graph.Store] satisfies it.
type Graph interface {
	Node(id string) (graph.Node, bool)
	Predecessors(id string) []string
}

// Group partitions a topological ordering into milestones.
//
// # Algorithm
//
// Group walks ordered left to right and appends each node to the open
// milestone. The open milestone is closed first when the next node would push
// it past MaxNodes or MaxHours. Nodes are never reordered, so every
// prerequisite edge points to the same or a later milestone.
//
// # Pins
//
// Pins move milestone boundaries, never nodes. Before the walk, Group
// computes for every position the milestone indices from which all later
// pins stay reachable, and at each step it keeps the natural choice (join or
// close) only while that choice stays inside the range. A pin can therefore
// re-cut milestones well before the pinned node, splitting earlier runs into
// smaller milestones or pulling them together.
//
// Pins take precedence over the capacity bounds. When honoring a pin means
// keeping a node in a milestone that is already full, the node joins it
// anyway and the milestone is flagged [Milestone.OverCapacity] instead of
// the pinned node starting a new one.
//
// A pin no boundary placement can honor yields an [*InvalidPinError]: a pin
// beyond the number of nodes ahead of it, or a pin that contradicts an
// earlier pinned node in the ordering.
//
// # Errors
//
// Group returns an error wrapping [ErrInvalidConstraints] for bad bounds, for
// pins on nodes missing from ordered, and for duplicate IDs in ordered. It
// returns a [*graph.UnknownNodeError] when ordered names a node g lacks.
func Group(g Graph, ordered []string, c Constraints) ([]Milestone, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	nodes := make([]graph.Node, len(ordered))
	seen := make(map[string]bool, len(ordered))
	for i, id := range ordered {
		n, ok := g.Node(id)
		if !ok {
			return nil, &graph.UnknownNodeError{ID: id}
		}
		if seen[id] {
			return nil, invalidConstraints("node %q appears twice in the ordering", id)
		}
		seen[id] = true
		nodes[i] = n
	}
	for id := range c.Pins {
		if !seen[id] {
			return nil, invalidConstraints("pinned node %q is not in the ordering", id)
		}
	}
	if err := checkPins(g, nodes, c); err != nil {
		return nil, err
	}

	reach := reachable(nodes, c.Pins)
	gr := &grouper{c: c}
	for i, n := range nodes {
		closing := !gr.fits(n)
		if !reach[i].has(gr.index(closing)) {
			closing = !closing
		}
		if closing {
			gr.close()
		} else if !gr.fits(n) {
			gr.over = true
		}
		gr.push(n)
	}
	gr.close()
	return gr.done, nil
}

// span is a closed range of milestone indices.
type span struct{ lo, hi int }

func (s span) has(i int) bool { return s.lo <= i && i <= s.hi }

// reachable returns, per position, the milestone indices the node there may
// take so that every pin at or after it can still be met. Moving one node
// right raises the index by at most one.
func reachable(nodes []graph.Node, pins map[string]int) []span {
	out := make([]span, len(nodes))
	next := span{0, math.MaxInt}
	for i := len(nodes) - 1; i >= 0; i-- {
		s := next
		if pin, ok := pins[nodes[i].ID]; ok {
			s = span{max(s.lo, pin), min(s.hi, pin)}
		}
		out[i] = s
		next = span{max(s.lo-1, 0), s.hi}
	}
	return out
}

// checkPins walks the ordering and reports the first pin that no boundary
// placement can satisfy. Only the nearest earlier pin bounds a pin, since it
// fixes the index the walk continues from.
func checkPins(g Graph, nodes []graph.Node, c Constraints) error {
	prev, prevPos, prevPin := "", -1, 0
	for i, n := range nodes {
		pin, ok := c.Pins[n.ID]
		if !ok {
			continue
		}
		lo, hi := 0, i
		if prev != "" {
			lo, hi = prevPin, prevPin+i-prevPos
		}
		if pin < lo || pin > hi {
			err := &InvalidPinError{Node: n.ID, Pin: pin, Natural: natural(nodes, c)[i]}
			switch {
			case pin < lo && slices.Contains(g.Predecessors(n.ID), prev):
				err.Prerequisite = prev
				err.PrerequisiteMilestone = prevPin
				err.Reason = fmt.Sprintf("prerequisite %q is pinned to milestone %d", prev, prevPin)
			case pin < lo:
				err.Reason = fmt.Sprintf("%q comes before it in the order and is pinned to milestone %d", prev, prevPin)
			case prev == "":
				err.Reason = fmt.Sprintf("milestone %d is out of reach: only %d nodes precede it in the order", pin, i)
			default:
				err.Reason = fmt.Sprintf("milestone %d is out of reach: only %d nodes lie between it and %q on milestone %d",
					pin, i-prevPos-1, prev, prevPin)
			}
			return err
		}
		prev, prevPos, prevPin = n.ID, i, pin
	}
	return nil
}

// natural returns the milestone index of every node when no pins apply.
func natural(nodes []graph.Node, c Constraints) []int {
	gr := &grouper{c: c}
	out := make([]int, len(nodes))
	for i, n := range nodes {
		if !gr.fits(n) {
			gr.close()
		}
		gr.push(n)
		out[i] = gr.index(false)
	}
	return out
}

type grouper struct {
	c     Constraints
	done  []Milestone
	open  []graph.Node
	hours float64
	over  bool
}

// index is the index the next node gets when it joins the open milestone,
// or when it starts a new one if closing is set.
func (gr *grouper) index(closing bool) int {
	if closing && len(gr.open) > 0 {
		return len(gr.done) + 1
	}
	return len(gr.done)
}

func (gr *grouper) fits(n graph.Node) bool {
	if len(gr.open) == 0 {
		return true
	}
	return len(gr.open)+1 <= gr.c.MaxNodes && gr.hours+n.Hours <= gr.c.MaxHours
}

func (gr *grouper) push(n graph.Node) {
	gr.open = append(gr.open, n)
	gr.hours += n.Hours
}

// close emits the open milestone and computes its aggregates.
func (gr *grouper) close() {
	if len(gr.open) == 0 {
		return
	}
	ids := make([]string, len(gr.open))
	levels := make([]graph.Level, len(gr.open))
	var hours float64
	for i, n := range gr.open {
		ids[i] = n.ID
		levels[i] = n.Level
		hours += n.Hours
	}
	level := dominant(levels)
	gr.done = append(gr.done, Milestone{
		Index:        len(gr.done),
		Nodes:        ids,
		Hours:        roundHours(hours),
		Level:        level,
		Phase:        PhaseFor(level),
		OverCapacity: gr.over,
	})
	gr.open = nil
	gr.hours = 0
	gr.over = false
}

// roundHours trims floating-point noise from summed hours.
func roundHours(h float64) float64 {
	return math.Round(h*1e6) / 1e6
}
