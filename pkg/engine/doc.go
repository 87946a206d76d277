// Package engine turns a classified repository graph into an ordered,
// milestone-grouped learning path.
//
// This package implements the complete build → resolve → order → group
// pipeline used by the CLI and the HTTP server. By centralizing it, both entry
// points produce identical results for identical input.
//
// # Architecture
//
// [Generate] runs the stages in a fixed order, each owning the graph store
// until it hands it to the next:
//
//  1. Build: insert nodes, then edges, into a fresh [graph.Store]
//  2. Override: apply caller directives ([override.Apply])
//  3. Resolve: break prerequisite cycles ([resolve.Resolve])
//  4. Finalize: verify acyclicity and freeze the store
//  5. Order: Kahn's algorithm with the (level, hours, id) tie-break
//  6. Group: pack the ordering into bounded milestones
//
// Generate is pure: the same [Input] and [Options] always yield an identical
// [Result], which is what makes [Result.Digest] usable as a cache key.
//
// # Usage
//
// Run the engine directly:
//
//	res, err := engine.Generate(in, engine.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range res.Milestones {
//	    fmt.Println(m.Index, m.Nodes)
//	}
//
// Or through a [Runner], which adds caching, run IDs and timing:
//
//	runner := engine.NewRunner(c, nil, logger)
//	run, err := runner.Execute(ctx, in, engine.Options{})
//
// # Errors
//
// Every error returned by Generate is an [*errors.Error] whose code names the
// failing stage: INVALID_GRAPH for structural input errors, INVALID_OVERRIDE,
// INVALID_CONSTRAINTS, INVALID_PIN and CYCLIC_GRAPH. The typed error from the
// stage is kept as the cause, so errors.As still reaches it.
package engine
