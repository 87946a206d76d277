package graph

import (
	"math"
	"slices"
	"strings"
)

// Node is one repository treated as a unit of learning.
//
// Nodes are created once per generation run by the upstream analyzer and are
// immutable after insertion into a [Store].
type Node struct {
	ID     string   `json:"id" yaml:"id" bson:"id"`
	Level  Level    `json:"level" yaml:"level" bson:"level"`
	Hours  float64  `json:"hours" yaml:"hours" bson:"hours"`
	Topics []string `json:"topics,omitempty" yaml:"topics,omitempty" bson:"topics,omitempty"`
}

// Edge is a directed relation meaning "From is a prerequisite of To".
type Edge struct {
	From       string   `json:"from" yaml:"from" bson:"from"`
	To         string   `json:"to" yaml:"to" bson:"to"`
	Type       EdgeType `json:"type" yaml:"type" bson:"type"`
	Strength   Strength `json:"strength" yaml:"strength" bson:"strength"`
	Confidence float64  `json:"confidence" yaml:"confidence" bson:"confidence"`
	Origin     Origin   `json:"origin" yaml:"origin" bson:"origin"`
}

// IsPrerequisite reports whether the edge constrains ordering.
func (e Edge) IsPrerequisite() bool { return e.Type == Prerequisite }

// IsManual reports whether the edge was added by a caller override.
func (e Edge) IsManual() bool { return e.Origin == ManualOverride }

// Key returns the ordered endpoint pair identifying the edge within a store.
func (e Edge) Key() EdgeKey { return EdgeKey{From: e.From, To: e.To} }

// EdgeKey identifies an edge by its ordered endpoints. A store holds at most
// one edge per key.
type EdgeKey struct {
	From, To string
}

// Compare orders keys lexicographically by From, then To.
func (k EdgeKey) Compare(o EdgeKey) int {
	if c := strings.Compare(k.From, o.From); c != 0 {
		return c
	}
	return strings.Compare(k.To, o.To)
}

// Direction selects which adjacency set [Store.Neighbors] reads.
type Direction int

const (
	// Outgoing selects successors: nodes this node is a prerequisite of.
	Outgoing Direction = iota
	// Incoming selects predecessors: prerequisites of this node.
	Incoming
)

type set map[string]struct{}

// Store owns the nodes and edges of one generation run.
//
// Every edge is kept in an edge table keyed by its ordered endpoint pair.
// Prerequisite edges are additionally indexed in outgoing and incoming
// adjacency sets so degree queries are O(1) and neighbor queries never scan
// the whole graph. Advisory edges (recommended, related) are stored but never
// indexed.
//
// A Store may hold cycles until [Store.Finalize] succeeds; afterwards it is
// read-only. The zero value is not usable - use [New]. Store is not safe for
// concurrent mutation; build one per request.
type Store struct {
	nodes     map[string]Node
	edges     map[EdgeKey]Edge
	out       map[string]set
	in        map[string]set
	finalized bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		nodes: make(map[string]Node),
		edges: make(map[EdgeKey]Edge),
		out:   make(map[string]set),
		in:    make(map[string]set),
	}
}

// AddNode inserts a node. It returns a [*DuplicateNodeError] if the ID is
// already present and wraps [ErrInvalidNode] if the ID is empty or the hours
// are negative or NaN. The topic slice is copied.
func (s *Store) AddNode(n Node) error {
	if s.finalized {
		return ErrFinalized
	}
	if n.ID == "" {
		return invalidNode(n.ID, "ID must not be empty")
	}
	if n.Hours < 0 || math.IsNaN(n.Hours) || math.IsInf(n.Hours, 0) {
		return invalidNode(n.ID, "estimated hours must be a finite non-negative number")
	}
	if _, exists := s.nodes[n.ID]; exists {
		return &DuplicateNodeError{ID: n.ID}
	}
	n.Topics = slices.Clone(n.Topics)
	s.nodes[n.ID] = n
	return nil
}

// AddEdge inserts an edge between two existing nodes.
//
// It returns an [*UnknownNodeError] naming the first missing endpoint and a
// [*SelfLoopError] when From equals To. An existing edge between the same
// ordered pair is replaced, whatever its type, so the store never holds
// parallel edges.
func (s *Store) AddEdge(e Edge) error {
	if s.finalized {
		return ErrFinalized
	}
	if _, ok := s.nodes[e.From]; !ok {
		return &UnknownNodeError{ID: e.From, From: e.From, To: e.To}
	}
	if _, ok := s.nodes[e.To]; !ok {
		return &UnknownNodeError{ID: e.To, From: e.From, To: e.To}
	}
	if e.From == e.To {
		return &SelfLoopError{ID: e.From}
	}

	s.unlink(e.From, e.To)
	s.edges[e.Key()] = e
	if e.IsPrerequisite() {
		link(s.out, e.From, e.To)
		link(s.in, e.To, e.From)
	}
	return nil
}

// RemoveEdge deletes the edge from→to. It is a no-op if no such edge exists.
// RemoveEdge on a finalized store returns [ErrFinalized].
func (s *Store) RemoveEdge(from, to string) error {
	if s.finalized {
		return ErrFinalized
	}
	s.unlink(from, to)
	return nil
}

func (s *Store) unlink(from, to string) {
	k := EdgeKey{From: from, To: to}
	if _, ok := s.edges[k]; !ok {
		return
	}
	delete(s.edges, k)
	delete(s.out[from], to)
	delete(s.in[to], from)
}

func link(idx map[string]set, a, b string) {
	m, ok := idx[a]
	if !ok {
		m = make(set)
		idx[a] = m
	}
	m[b] = struct{}{}
}

// Node returns the node with the given ID.
// The Topics slice is shared with the store and must not be modified.
func (s *Store) Node(id string) (Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// HasNode reports whether a node with the given ID exists.
func (s *Store) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Edge returns the edge from→to of any type.
func (s *Store) Edge(from, to string) (Edge, bool) {
	e, ok := s.edges[EdgeKey{From: from, To: to}]
	return e, ok
}

// Nodes returns all nodes sorted by ID.
func (s *Store) Nodes() []Node {
	nodes := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b Node) int { return strings.Compare(a.ID, b.ID) })
	return nodes
}

// NodeIDs returns all node IDs in ascending order.
func (s *Store) NodeIDs() []string {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Edges returns every edge, of any type, sorted by (From, To).
func (s *Store) Edges() []Edge {
	edges := make([]Edge, 0, len(s.edges))
	for _, e := range s.edges {
		edges = append(edges, e)
	}
	SortEdges(edges)
	return edges
}

// PrerequisiteEdges returns the prerequisite edges sorted by (From, To).
func (s *Store) PrerequisiteEdges() []Edge {
	var edges []Edge
	for _, e := range s.edges {
		if e.IsPrerequisite() {
			edges = append(edges, e)
		}
	}
	SortEdges(edges)
	return edges
}

// SortEdges sorts edges in place by (From, To).
func SortEdges(edges []Edge) {
	slices.SortFunc(edges, func(a, b Edge) int { return a.Key().Compare(b.Key()) })
}

// Neighbors returns the prerequisite neighbors of id in the given direction,
// sorted by ID. The cost is proportional to the node's degree in that
// direction. Unknown IDs yield nil.
func (s *Store) Neighbors(id string, dir Direction) []string {
	idx := s.out
	if dir == Incoming {
		idx = s.in
	}
	adj := idx[id]
	if len(adj) == 0 {
		return nil
	}
	ids := make([]string, 0, len(adj))
	for n := range adj {
		ids = append(ids, n)
	}
	slices.Sort(ids)
	return ids
}

// Successors returns the nodes id is a prerequisite of.
func (s *Store) Successors(id string) []string { return s.Neighbors(id, Outgoing) }

// Predecessors returns the prerequisites of id.
func (s *Store) Predecessors(id string) []string { return s.Neighbors(id, Incoming) }

// InDegree returns the number of prerequisite edges into id.
func (s *Store) InDegree(id string) int { return len(s.in[id]) }

// OutDegree returns the number of prerequisite edges out of id.
func (s *Store) OutDegree(id string) int { return len(s.out[id]) }

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges of every type.
func (s *Store) EdgeCount() int { return len(s.edges) }

// Finalized reports whether [Store.Finalize] has succeeded.
func (s *Store) Finalized() bool { return s.finalized }

// Validate returns [ErrGraphHasCycle] if the prerequisite subgraph contains a
// directed cycle. It repeatedly strips zero in-degree nodes and checks that
// every node was stripped, so it needs no recursion.
func (s *Store) Validate() error {
	indeg := make(map[string]int, len(s.nodes))
	queue := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		d := len(s.in[id])
		indeg[id] = d
		if d == 0 {
			queue = append(queue, id)
		}
	}

	seen := 0
	for len(queue) > 0 {
		curr := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		seen++
		for child := range s.out[curr] {
			indeg[child]--
			if indeg[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	if seen != len(s.nodes) {
		return ErrGraphHasCycle
	}
	return nil
}

// Finalize validates acyclicity and freezes the store. Subsequent calls to
// AddNode, AddEdge and RemoveEdge return [ErrFinalized]. Finalize is
// idempotent.
func (s *Store) Finalize() error {
	if s.finalized {
		return nil
	}
	if err := s.Validate(); err != nil {
		return err
	}
	s.finalized = true
	return nil
}

// Clone returns an independent, unfinalized copy of the store.
func (s *Store) Clone() *Store {
	c := New()
	for id, n := range s.nodes {
		n.Topics = slices.Clone(n.Topics)
		c.nodes[id] = n
	}
	for k, e := range s.edges {
		c.edges[k] = e
		if e.IsPrerequisite() {
			link(c.out, e.From, e.To)
			link(c.in, e.To, e.From)
		}
	}
	return c
}
