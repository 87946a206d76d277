// Package order computes the deterministic topological order of an acyclic
// prerequisite graph.
//
// [Order] accepts any [Graph], which [*graph.Store] satisfies once
// resolve.Resolve has removed its cycles. Among nodes that are ready at the
// same time it prefers lower skill levels, then fewer hours, then the smaller
// ID, so identical input always yields the identical sequence.
//
// Calling [Order] on a graph that still has a cycle is a programming error and
// is reported as a [*CyclicGraphError] rather than producing a partial order.
package order
