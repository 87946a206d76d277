package resolve

import (
	"slices"
	"strings"

	"github.com/matzehuels/learnpath/pkg/graph"
)

// frame is one suspended visit of the iterative Tarjan walk. succ holds the
// node's in-scope successors and next the position of the next one to visit.
type frame struct {
	id   string
	succ []string
	next int
}

// components returns the strongly connected components of the prerequisite
// subgraph induced by members. Members are visited in the order given and
// successors in ID order, so the result is deterministic for sorted input.
// Each component is returned sorted, and the components are ordered by their
// smallest member.
//
// The walk keeps an explicit frame stack instead of recursing, so its depth is
// bounded by heap memory rather than by the goroutine stack.
func components(g *graph.Store, members []string) [][]string {
	scope := make(map[string]struct{}, len(members))
	for _, id := range members {
		scope[id] = struct{}{}
	}
	successors := func(id string) []string {
		var out []string
		for _, s := range g.Successors(id) {
			if _, ok := scope[s]; ok {
				out = append(out, s)
			}
		}
		return out
	}

	var (
		counter int
		index   = make(map[string]int, len(members))
		low     = make(map[string]int, len(members))
		onStack = make(map[string]bool, len(members))
		stack   []string
		sccs    [][]string
	)

	visit := func(id string) frame {
		index[id] = counter
		low[id] = counter
		counter++
		stack = append(stack, id)
		onStack[id] = true
		return frame{id: id, succ: successors(id)}
	}

	for _, root := range members {
		if _, seen := index[root]; seen {
			continue
		}
		frames := []frame{visit(root)}

		for len(frames) > 0 {
			top := len(frames) - 1
			f := &frames[top]

			if f.next < len(f.succ) {
				w := f.succ[f.next]
				f.next++
				if _, seen := index[w]; !seen {
					frames = append(frames, visit(w))
				} else if onStack[w] {
					low[f.id] = min(low[f.id], index[w])
				}
				continue
			}

			v := f.id
			frames = frames[:top]
			if top > 0 {
				parent := frames[top-1].id
				low[parent] = min(low[parent], low[v])
			}
			if low[v] != index[v] {
				continue
			}

			var comp []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			slices.Sort(comp)
			sccs = append(sccs, comp)
		}
	}

	slices.SortFunc(sccs, func(a, b []string) int { return strings.Compare(a[0], b[0]) })
	return sccs
}

// cyclic keeps the components that contain a cycle. The store rejects
// self-loops, so that means components with more than one member.
func cyclic(sccs [][]string) [][]string {
	out := sccs[:0]
	for _, c := range sccs {
		if len(c) > 1 {
			out = append(out, c)
		}
	}
	return out
}
