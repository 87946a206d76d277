// Package resolve removes cycles from the prerequisite subgraph of a
// [graph.Store].
//
// # Overview
//
// Inferred prerequisite relations are noisy and manual overrides can contradict
// them, so the raw graph may contain cycles. [Resolve] breaks every cycle by
// deleting the least trusted edges first and returns a [Report] that names
// each detected cycle and each removed edge, so the result is explainable.
//
// # Removal Policy
//
// [CompareRemoval] defines the total order used to choose an edge:
//
//  1. Inferred edges before manual overrides
//  2. Weaker strength first
//  3. Lower confidence first
//  4. Lexicographic (From, To)
//
// This greedy policy does not find a minimum feedback edge set. It is
// deterministic and every removal can be explained by the order above.
//
// # Usage
//
//	report := resolve.Resolve(g)
//	for _, rm := range report.Forced() {
//		log.Warn("override removed", "from", rm.Edge.From, "to", rm.Edge.To)
//	}
//	if err := g.Finalize(); err != nil {
//		// unreachable: g is acyclic after Resolve
//	}
//
// [Detect] reports the cycles without modifying the store.
package resolve
