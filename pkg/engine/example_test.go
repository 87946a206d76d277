package engine_test

import (
	"fmt"

	"github.com/matzehuels/learnpath/pkg/engine"
	"github.com/matzehuels/learnpath/pkg/graph"
	"github.com/matzehuels/learnpath/pkg/override"
)

func ExampleGenerate() {
	in := engine.Input{
		Nodes: []graph.Node{
			{ID: "go-tour", Level: graph.LevelBasic, Hours: 3},
			{ID: "http-server", Level: graph.LevelIntermediate, Hours: 8},
			{ID: "middleware", Level: graph.LevelIntermediate, Hours: 5},
			{ID: "grpc-mesh", Level: graph.LevelAdvanced, Hours: 20},
		},
		Edges: []graph.Edge{
			{From: "go-tour", To: "http-server", Strength: graph.Strong, Confidence: 0.9},
			{From: "http-server", To: "middleware", Strength: graph.Moderate, Confidence: 0.8},
			{From: "middleware", To: "go-tour", Strength: graph.Weak, Confidence: 0.3},
			{From: "http-server", To: "grpc-mesh", Strength: graph.Strong, Confidence: 0.7},
		},
		Overrides: []override.Override{
			{Kind: override.PinPosition, Node: "grpc-mesh", Milestone: 2},
		},
	}

	res, err := engine.Generate(in, engine.Options{MaxNodesPerMilestone: 2})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, rm := range res.Report.Removed {
		fmt.Printf("removed %s->%s\n", rm.Edge.From, rm.Edge.To)
	}
	for _, m := range res.Milestones {
		fmt.Printf("%d %s %v %.0fh\n", m.Index, m.Phase, m.Nodes, m.Hours)
	}
	// Output:
	// removed middleware->go-tour
	// 0 CORE_SKILLS [go-tour http-server] 11h
	// 1 CORE_SKILLS [middleware] 5h
	// 2 ADVANCED_SYSTEMS [grpc-mesh] 20h
}
