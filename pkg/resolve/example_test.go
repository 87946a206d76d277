package resolve_test

import (
	"fmt"

	"github.com/matzehuels/learnpath/pkg/graph"
	"github.com/matzehuels/learnpath/pkg/resolve"
)

func ExampleResolve() {
	g := graph.New()
	_ = g.AddNode(graph.Node{ID: "A", Level: graph.LevelBasic})
	_ = g.AddNode(graph.Node{ID: "B", Level: graph.LevelIntermediate})
	_ = g.AddNode(graph.Node{ID: "C", Level: graph.LevelIntermediate})
	_ = g.AddEdge(graph.Edge{From: "A", To: "B", Strength: graph.Strong, Confidence: 0.9})
	_ = g.AddEdge(graph.Edge{From: "B", To: "C", Strength: graph.Strong, Confidence: 0.9})
	_ = g.AddEdge(graph.Edge{From: "C", To: "A", Strength: graph.Weak, Confidence: 0.2})

	report := resolve.Resolve(g)

	fmt.Println("Cycle:", report.Cycles[0].Members)
	for _, rm := range report.Removed {
		fmt.Printf("Removed: %s->%s (%s, %.1f)\n", rm.Edge.From, rm.Edge.To, rm.Edge.Strength, rm.Edge.Confidence)
	}
	fmt.Println("Acyclic:", g.Validate() == nil)
	// Output:
	// Cycle: [A B C]
	// Removed: C->A (WEAK, 0.2)
	// Acyclic: true
}

func ExampleDetect() {
	g := graph.New()
	for _, id := range []string{"x", "y", "z"} {
		_ = g.AddNode(graph.Node{ID: id})
	}
	_ = g.AddEdge(graph.Edge{From: "y", To: "z"})
	_ = g.AddEdge(graph.Edge{From: "z", To: "y"})

	for _, c := range resolve.Detect(g) {
		fmt.Println(c.Members)
	}
	fmt.Println("Edges:", g.EdgeCount())
	// Output:
	// [y z]
	// Edges: 2
}
