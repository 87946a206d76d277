package resolve

import (
	"cmp"

	"github.com/matzehuels/learnpath/pkg/graph"
)

// Cycle is one strongly connected component of size greater than one found
// in the prerequisite subgraph before resolution. Members are sorted by ID.
type Cycle struct {
	Members []string `json:"members" yaml:"members"`
}

// Removal records one prerequisite edge deleted by [Resolve].
type Removal struct {
	// Edge is the removed edge as it was stored.
	Edge graph.Edge `json:"edge" yaml:"edge"`

	// Forced is true when Edge was a manual override. The resolver only
	// removes such an edge once no inferred edge is left in the cyclic
	// component, so a forced removal always means the caller's own overrides
	// formed a cycle.
	Forced bool `json:"forced" yaml:"forced"`

	// Cycle is the index into [Report.Cycles] of the component the edge was
	// removed from.
	Cycle int `json:"cycle" yaml:"cycle"`
}

// Report explains what [Resolve] did. Removed is in removal order, which is
// deterministic for a given store.
type Report struct {
	Cycles  []Cycle   `json:"cycles" yaml:"cycles"`
	Removed []Removal `json:"removed" yaml:"removed"`
}

// HasCycles reports whether the input contained any cycle.
func (r Report) HasCycles() bool { return len(r.Cycles) > 0 }

// Forced returns the removals of manual override edges.
func (r Report) Forced() []Removal {
	var out []Removal
	for _, rm := range r.Removed {
		if rm.Forced {
			out = append(out, rm)
		}
	}
	return out
}

// RemovedKeys returns the endpoint pairs of every removed edge.
func (r Report) RemovedKeys() map[graph.EdgeKey]bool {
	keys := make(map[graph.EdgeKey]bool, len(r.Removed))
	for _, rm := range r.Removed {
		keys[rm.Edge.Key()] = true
	}
	return keys
}

// CompareRemoval orders edges by removal priority: an edge that compares
// lower is removed first.
//
// Inferred edges come before manual overrides. Within an origin, weaker
// strength comes first, then lower confidence, then the (From, To) pair
// lexicographically. The order is total, so the choice never depends on map
// iteration or input order.
func CompareRemoval(a, b graph.Edge) int {
	return cmp.Or(
		cmp.Compare(a.Origin, b.Origin),
		cmp.Compare(a.Strength, b.Strength),
		cmp.Compare(a.Confidence, b.Confidence),
		a.Key().Compare(b.Key()),
	)
}

// Detect returns the cyclic components of the prerequisite subgraph ordered by
// smallest member, without modifying g.
func Detect(g *graph.Store) []Cycle {
	sccs := cyclic(components(g, g.NodeIDs()))
	cycles := make([]Cycle, len(sccs))
	for i, c := range sccs {
		cycles[i] = Cycle{Members: c}
	}
	return cycles
}

// Resolve removes prerequisite edges from g until its prerequisite subgraph is
// acyclic, and reports what it removed.
//
// # Algorithm
//
// Resolve computes strongly connected components with an iterative Tarjan
// walk. Components with more than one member are processed in ascending order
// of their smallest member. Within a component Resolve repeatedly:
//  1. Picks the internal prerequisite edge that is lowest by [CompareRemoval]
//  2. Removes it from g
//  3. Recomputes components over the members of that component only
//
// and continues with every still-cyclic sub-component until none is left.
//
// # Overrides
//
// Manual override edges are removed only when a cyclic component contains no
// inferred edge at all. Such removals are marked [Removal.Forced].
//
// # Failure
//
// Resolve never fails. Each step removes one edge, so it terminates after at
// most as many steps as there are prerequisite edges.
//
// # Performance
//
// Detection is O(V + E). Each removal costs O(V_c + E_c) for the component it
// is taken from.
func Resolve(g *graph.Store) Report {
	var r Report
	for _, c := range Detect(g) {
		r.Cycles = append(r.Cycles, c)
		cycle := len(r.Cycles) - 1

		work := [][]string{c.Members}
		for len(work) > 0 {
			comp := work[len(work)-1]
			work = work[:len(work)-1]

			e := weakest(g, comp)
			// A store holding a cycle cannot be finalized, so this never fails.
			_ = g.RemoveEdge(e.From, e.To)
			r.Removed = append(r.Removed, Removal{Edge: e, Forced: e.IsManual(), Cycle: cycle})

			subs := cyclic(components(g, comp))
			for i := len(subs) - 1; i >= 0; i-- {
				work = append(work, subs[i])
			}
		}
	}
	return r
}

// weakest returns the lowest-priority prerequisite edge with both endpoints in
// comp. comp must be cyclic, so at least one such edge exists.
func weakest(g *graph.Store, comp []string) graph.Edge {
	scope := make(map[string]struct{}, len(comp))
	for _, id := range comp {
		scope[id] = struct{}{}
	}

	var (
		best  graph.Edge
		found bool
	)
	for _, from := range comp {
		for _, to := range g.Successors(from) {
			if _, ok := scope[to]; !ok {
				continue
			}
			e, _ := g.Edge(from, to)
			if !found || CompareRemoval(e, best) < 0 {
				best, found = e, true
			}
		}
	}
	return best
}
