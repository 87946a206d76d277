// Package override applies caller directives to a graph store.
//
// An [Override] either adds an edge, removes an edge, or pins a node to a
// milestone index. Added edges carry origin MANUAL_OVERRIDE, so the cycle
// resolver removes them only when a cycle consists of nothing else. Pins are
// returned by [Apply] and handed to the milestone grouper.
package override
