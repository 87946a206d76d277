package order

import (
	"cmp"
	"container/heap"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/learnpath/pkg/graph"
)

// ErrCyclicGraph is the sentinel behind [CyclicGraphError].
var ErrCyclicGraph = errors.New("prerequisite graph contains a cycle")

// CyclicGraphError is returned by [Order] when the ready set empties before
// every node is placed. It means the caller skipped cycle resolution; it is a
// programming error, not a data error.
type CyclicGraphError struct {
	// Unplaced lists the nodes that never reached in-degree zero, sorted.
	Unplaced []string
}

func (e *CyclicGraphError) Error() string {
	const limit = 5
	ids := e.Unplaced
	suffix := ""
	if len(ids) > limit {
		ids, suffix = ids[:limit], fmt.Sprintf(", ... (%d more)", len(e.Unplaced)-limit)
	}
	return fmt.Sprintf("cannot order graph: %d nodes left on a cycle: %s%s",
		len(e.Unplaced), strings.Join(ids, ", "), suffix)
}

func (e *CyclicGraphError) Unwrap() error { return ErrCyclicGraph }

// Graph is the read-only view [Order] needs. [*graph.Store] satisfies it.
type Graph interface {
	Nodes() []graph.Node
	Successors(id string) []string
	InDegree(id string) int
}

// Order returns a topological order of g's prerequisite subgraph.
//
// # Algorithm
//
// Order runs Kahn's algorithm. In-degrees are copied into a local table and
// decremented as nodes are placed. When several nodes are ready at once, the
// one placed next is chosen by, in turn:
//  1. Lower skill level (foundational material first)
//  2. Fewer estimated hours (quick wins first)
//  3. Lexicographic ID
//
// The ready set is a binary heap keyed on that triple.
//
// # Cycles
//
// If the ready set empties while nodes remain, Order returns a
// [*CyclicGraphError] instead of looping. Run resolve.Resolve first.
//
// # Performance
//
// Time complexity is O(V log V + E). Space complexity is O(V).
func Order(g Graph) ([]string, error) {
	nodes, err := Nodes(g)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids, nil
}

// Nodes is like [Order] but returns the nodes themselves.
func Nodes(g Graph) ([]graph.Node, error) {
	nodes := g.Nodes()
	byID := make(map[string]graph.Node, len(nodes))
	inDegree := make(map[string]int, len(nodes))
	ready := make(readySet, 0, len(nodes))

	for _, n := range nodes {
		byID[n.ID] = n
		d := g.InDegree(n.ID)
		inDegree[n.ID] = d
		if d == 0 {
			ready = append(ready, n)
		}
	}
	heap.Init(&ready)

	out := make([]graph.Node, 0, len(nodes))
	for ready.Len() > 0 {
		curr := heap.Pop(&ready).(graph.Node)
		out = append(out, curr)

		for _, child := range g.Successors(curr.ID) {
			inDegree[child]--
			if inDegree[child] == 0 {
				heap.Push(&ready, byID[child])
			}
		}
	}

	if len(out) != len(nodes) {
		var unplaced []string
		for _, n := range nodes {
			if inDegree[n.ID] > 0 {
				unplaced = append(unplaced, n.ID)
			}
		}
		return nil, &CyclicGraphError{Unplaced: unplaced}
	}
	return out, nil
}

// Less reports whether a should be placed before b when both are ready.
func Less(a, b graph.Node) bool { return compare(a, b) < 0 }

func compare(a, b graph.Node) int {
	return cmp.Or(
		cmp.Compare(a.Level, b.Level),
		cmp.Compare(a.Hours, b.Hours),
		strings.Compare(a.ID, b.ID),
	)
}

// readySet is a min-heap of nodes whose prerequisites are all placed.
type readySet []graph.Node

func (r readySet) Len() int           { return len(r) }
func (r readySet) Less(i, j int) bool { return compare(r[i], r[j]) < 0 }
func (r readySet) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }
func (r *readySet) Push(x any)        { *r = append(*r, x.(graph.Node)) }

func (r *readySet) Pop() any {
	old := *r
	n := old[len(old)-1]
	*r = old[:len(old)-1]
	return n
}
