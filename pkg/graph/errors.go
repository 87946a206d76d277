package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNode is returned by [Store.AddNode] when the node ID is empty
	// or its estimated hours are negative or NaN.
	ErrInvalidNode = errors.New("invalid node")

	// ErrDuplicateNodeID is the sentinel behind [DuplicateNodeError].
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is the sentinel behind [UnknownNodeError].
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is the sentinel behind [SelfLoopError].
	ErrSelfLoop = errors.New("self-loop")

	// ErrGraphHasCycle is returned by [Store.Validate] and [Store.Finalize]
	// when the prerequisite subgraph still contains a directed cycle.
	ErrGraphHasCycle = errors.New("prerequisite graph contains a cycle")

	// ErrFinalized is returned by mutators once [Store.Finalize] succeeded.
	ErrFinalized = errors.New("graph store is finalized")
)

// DuplicateNodeError reports an attempt to add a node whose ID already exists.
type DuplicateNodeError struct {
	ID string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("duplicate node ID %q", e.ID)
}

func (e *DuplicateNodeError) Unwrap() error { return ErrDuplicateNodeID }

// UnknownNodeError reports an edge whose endpoint is not in the store.
// ID is the missing endpoint; From and To identify the rejected edge.
type UnknownNodeError struct {
	ID       string
	From, To string
}

func (e *UnknownNodeError) Error() string {
	if e.From == "" && e.To == "" {
		return fmt.Sprintf("unknown node %q", e.ID)
	}
	return fmt.Sprintf("edge %s->%s: unknown node %q", e.From, e.To, e.ID)
}

func (e *UnknownNodeError) Unwrap() error { return ErrUnknownNode }

// SelfLoopError reports an edge whose endpoints are the same node.
type SelfLoopError struct {
	ID string
}

func (e *SelfLoopError) Error() string {
	return fmt.Sprintf("self-loop on node %q", e.ID)
}

func (e *SelfLoopError) Unwrap() error { return ErrSelfLoop }

type invalidNodeError struct {
	id, reason string
}

func invalidNode(id, reason string) error {
	return &invalidNodeError{id: id, reason: reason}
}

func (e *invalidNodeError) Error() string {
	if e.id == "" {
		return "invalid node: " + e.reason
	}
	return fmt.Sprintf("invalid node %q: %s", e.id, e.reason)
}

func (e *invalidNodeError) Unwrap() error { return ErrInvalidNode }
