// Package milestone partitions a topological ordering into bounded groups.
//
// [Group] walks the ordering produced by the order package and cuts it into
// [Milestone] values that hold at most [Constraints.MaxNodes] nodes and
// [Constraints.MaxHours] estimated hours. It never reorders: nodes keep their
// relative order, so every prerequisite lands in the same or an earlier
// milestone than the nodes that depend on it.
//
// # Pins
//
// Callers may pin a node to a milestone index. Group honors pins by moving
// boundaries anywhere ahead of the pinned node: it may split earlier runs into
// smaller milestones or pull preceding nodes into the pinned one. A pin that
// could only be met by reordering is rejected with an [*InvalidPinError] that
// names the conflicting prerequisite when there is one.
//
// # Summaries
//
// Each milestone carries its total hours, its dominant [graph.Level] (the most
// common member level, ties toward the higher level) and a [Phase] label
// derived from that level.
package milestone
