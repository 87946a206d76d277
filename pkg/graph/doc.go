// Package graph provides the graph store at the base of the learning path
// engine.
//
// # Overview
//
// A [Store] holds repositories as [Node] values and the relations between
// them as [Edge] values. An edge From→To states that From should be learned
// before To. Only edges of type [Prerequisite] constrain ordering; edges of
// type [Recommended] and [Related] are advisory and are carried through to
// the output untouched.
//
// # Basic Usage
//
//	g := graph.New()
//	_ = g.AddNode(graph.Node{ID: "http-basics", Level: graph.LevelBasic, Hours: 2})
//	_ = g.AddNode(graph.Node{ID: "rest-api", Level: graph.LevelIntermediate, Hours: 6})
//	_ = g.AddEdge(graph.Edge{From: "http-basics", To: "rest-api", Strength: graph.Strong, Confidence: 0.9})
//
// # Structural Errors
//
// Mutations fail fast with typed errors that name the offending identifiers:
// [DuplicateNodeError], [UnknownNodeError] and [SelfLoopError]. Each unwraps
// to a sentinel ([ErrDuplicateNodeID], [ErrUnknownNode], [ErrSelfLoop]) so
// callers can match with errors.Is or extract details with errors.As.
//
// # Lifecycle
//
// A store is built fresh for each generation run. Overrides may introduce
// cycles; the resolve package removes them. [Store.Finalize] then verifies
// acyclicity and freezes the store, handing it to the read-only ordering and
// grouping stages.
//
// # Determinism
//
// Every query that returns a collection returns it sorted (nodes by ID, edges
// by (From, To)), so algorithms built on the store never depend on map
// iteration order.
package graph
