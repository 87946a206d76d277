// Package pkg provides the core libraries for learnpath.
//
// # Overview
//
// Learnpath turns a graph of skills and their prerequisites into a learning
// path: an ordering in which every prerequisite comes before the skills that
// need it, cut into milestones of bounded size. The pkg directory is
// organized into three areas:
//
//  1. Domain logic ([graph], [resolve], [order], [milestone], [override])
//  2. Orchestration ([engine])
//  3. Infrastructure and surfaces ([cache], [config], [io], [server],
//     [errors], [observability])
//
// # Architecture
//
// The data flow through one run:
//
//	skills document (JSON/YAML)
//	         ↓
//	    [io] package (decode + validate identifiers)
//	         ↓
//	    [graph] store ← [override] add/remove edges
//	         ↓
//	    [resolve] package (break prerequisite cycles)
//	         ↓
//	    [order] package (deterministic topological order)
//	         ↓
//	    [milestone] package (capacity-bounded groups, pins)
//	         ↓
//	    engine.Result → JSON/YAML/DOT/SVG
//
// [engine.Runner] wraps the pipeline with a [cache] lookup keyed by the
// canonical digest of the input, and is shared by the CLI and [server].
//
// # Quick Start
//
//	res, err := engine.Generate(engine.Input{
//	    Nodes: []graph.Node{
//	        {ID: "go-tour", Hours: 3},
//	        {ID: "http-server", Level: graph.LevelIntermediate, Hours: 8},
//	    },
//	    Edges: []graph.Edge{
//	        {From: "go-tour", To: "http-server", Strength: graph.Strong, Confidence: 0.9},
//	    },
//	}, engine.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, m := range res.Milestones {
//	    fmt.Println(m.Index, m.Phase, m.Nodes)
//	}
//
// # Main Packages
//
// [graph] - Skill nodes, typed edges and the adjacency store. Only
// prerequisite edges constrain ordering; recommended and related edges are
// carried along for display.
//
// [resolve] - Tarjan's strongly connected components and the removal rule
// that breaks each cycle at its weakest inferred edge.
//
// [order] - Kahn's algorithm with a priority queue over (level, hours, id).
//
// [milestone] - Groups an ordering into milestones and derives each
// milestone's phase.
//
// [override] - Manual add-edge, remove-edge and pin-position instructions.
//
// [engine] - The six-stage pipeline and the cached [engine.Runner].
//
// [cache] - File, Redis and MongoDB result caches behind one interface.
//
// [config] - TOML settings for capacities, cache backend and server.
//
// [io] - Document import/export and the Graphviz milestone diagram.
//
// [server] - HTTP API over the runner.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/engine/...     # Specific package
//	go test -run Example ./...   # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/graph
// [resolve]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/resolve
// [order]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/order
// [milestone]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/milestone
// [override]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/override
// [engine]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/engine
// [engine.Runner]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/engine#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/io
// [server]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/learnpath/pkg/observability
package pkg
