package milestone

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/learnpath/pkg/graph"
)

func store(t *testing.T, nodes []graph.Node, edges ...[2]string) *graph.Store {
	t.Helper()
	g := graph.New()
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(graph.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e[0], e[1], err)
		}
	}
	return g
}

func plain(ids ...string) []graph.Node {
	nodes := make([]graph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = graph.Node{ID: id, Hours: 1}
	}
	return nodes
}

func members(ms []Milestone) [][]string {
	out := make([][]string, len(ms))
	for i, m := range ms {
		out[i] = m.Nodes
	}
	return out
}

func equalGroups(a, b [][]string) bool {
	return slices.EqualFunc(a, b, func(x, y []string) bool { return slices.Equal(x, y) })
}

func TestGroup(t *testing.T) {
	tests := []struct {
		name  string
		nodes []graph.Node
		c     Constraints
		want  [][]string
		over  []int
	}{
		{
			name:  "node bound",
			nodes: plain("A", "B", "C"),
			c:     Constraints{MaxNodes: 2, MaxHours: 40},
			want:  [][]string{{"A", "B"}, {"C"}},
		},
		{
			name: "hour bound",
			nodes: []graph.Node{
				{ID: "a", Hours: 10}, {ID: "b", Hours: 25}, {ID: "c", Hours: 10}, {ID: "d", Hours: 1},
			},
			c:    Constraints{MaxNodes: 5, MaxHours: 30},
			want: [][]string{{"a"}, {"b"}, {"c", "d"}},
		},
		{
			name: "heavy node alone",
			nodes: []graph.Node{
				{ID: "a", Hours: 1}, {ID: "huge", Hours: 100}, {ID: "b", Hours: 1},
			},
			c:    Constraints{MaxNodes: 5, MaxHours: 40},
			want: [][]string{{"a"}, {"huge"}, {"b"}},
		},
		{
			name:  "empty ordering",
			nodes: nil,
			c:     Constraints{MaxNodes: 1, MaxHours: 1},
			want:  [][]string{},
		},
		{
			name:  "pin at natural index",
			nodes: plain("a", "b", "c"),
			c:     Constraints{MaxNodes: 2, MaxHours: 40, Pins: map[string]int{"c": 1}},
			want:  [][]string{{"a", "b"}, {"c"}},
		},
		{
			name:  "pin forces boundary",
			nodes: plain("a", "b", "c", "d"),
			c:     Constraints{MaxNodes: 5, MaxHours: 40, Pins: map[string]int{"c": 1}},
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "pin splits trailing members",
			nodes: plain("a", "b", "c", "d"),
			c:     Constraints{MaxNodes: 5, MaxHours: 40, Pins: map[string]int{"d": 2}},
			want:  [][]string{{"a", "b"}, {"c"}, {"d"}},
		},
		{
			name:  "split keeps pinned members",
			nodes: plain("a", "b", "c", "d", "e"),
			c:     Constraints{MaxNodes: 10, MaxHours: 40, Pins: map[string]int{"b": 0, "e": 3}},
			want:  [][]string{{"a", "b"}, {"c"}, {"d"}, {"e"}},
		},
		{
			name:  "pin overrides capacity",
			nodes: plain("a", "b", "c"),
			c:     Constraints{MaxNodes: 2, MaxHours: 40, Pins: map[string]int{"c": 0}},
			want:  [][]string{{"a", "b", "c"}},
			over:  []int{0},
		},
		{
			name:  "early pin pulls earlier nodes along",
			nodes: plain("A", "B", "C"),
			c:     Constraints{MaxNodes: 1, MaxHours: 40, Pins: map[string]int{"C": 0}},
			want:  [][]string{{"A", "B", "C"}},
			over:  []int{0},
		},
		{
			name:  "late pin re-cuts closed milestones",
			nodes: plain("A", "B", "C", "D", "E"),
			c:     Constraints{MaxNodes: 2, MaxHours: 100, Pins: map[string]int{"E": 4}},
			want:  [][]string{{"A"}, {"B"}, {"C"}, {"D"}, {"E"}},
		},
		{
			name:  "late pin keeps natural cuts ahead of it",
			nodes: plain("a", "b", "c", "d", "e", "f"),
			c:     Constraints{MaxNodes: 2, MaxHours: 100, Pins: map[string]int{"f": 4}},
			want:  [][]string{{"a", "b"}, {"c"}, {"d"}, {"e"}, {"f"}},
		},
		{
			name:  "pins on both sides",
			nodes: plain("a", "b", "c", "d", "e"),
			c:     Constraints{MaxNodes: 1, MaxHours: 100, Pins: map[string]int{"b": 0, "e": 2}},
			want:  [][]string{{"a", "b"}, {"c"}, {"d", "e"}},
			over:  []int{0, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, len(tt.nodes))
			for i, n := range tt.nodes {
				ids[i] = n.ID
			}
			ms, err := Group(store(t, tt.nodes), ids, tt.c)
			if err != nil {
				t.Fatalf("Group() error = %v", err)
			}
			if got := members(ms); !equalGroups(got, tt.want) {
				t.Errorf("Group() = %v, want %v", got, tt.want)
			}
			var over []int
			for i, m := range ms {
				if m.Index != i {
					t.Errorf("milestone %d has Index %d", i, m.Index)
				}
				if m.OverCapacity {
					over = append(over, i)
				}
			}
			if !slices.Equal(over, tt.over) {
				t.Errorf("over capacity = %v, want %v", over, tt.over)
			}
		})
	}
}

func TestGroup_InvalidPin(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []graph.Node
		edges    [][2]string
		c        Constraints
		node     string
		prereq   string
		prereqAt int
	}{
		{
			name:     "before pinned prerequisite",
			nodes:    plain("a", "b", "c"),
			edges:    [][2]string{{"b", "c"}},
			c:        Constraints{MaxNodes: 1, MaxHours: 40, Pins: map[string]int{"b": 1, "c": 0}},
			node:     "c",
			prereq:   "b",
			prereqAt: 1,
		},
		{
			name:  "before pinned earlier node",
			nodes: plain("a", "b", "c"),
			c:     Constraints{MaxNodes: 5, MaxHours: 40, Pins: map[string]int{"b": 1, "c": 0}},
			node:  "c",
		},
		{
			name:  "out of reach",
			nodes: plain("a", "b"),
			c:     Constraints{MaxNodes: 5, MaxHours: 40, Pins: map[string]int{"b": 3}},
			node:  "b",
		},
		{
			name:  "first node pinned late",
			nodes: plain("a", "b"),
			c:     Constraints{MaxNodes: 5, MaxHours: 40, Pins: map[string]int{"a": 1}},
			node:  "a",
		},
		{
			name:  "split blocked by pinned member",
			nodes: plain("a", "b", "c", "d", "e"),
			c:     Constraints{MaxNodes: 10, MaxHours: 40, Pins: map[string]int{"b": 0, "e": 4}},
			node:  "e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, len(tt.nodes))
			for i, n := range tt.nodes {
				ids[i] = n.ID
			}
			_, err := Group(store(t, tt.nodes, tt.edges...), ids, tt.c)

			var pinErr *InvalidPinError
			if !errors.As(err, &pinErr) {
				t.Fatalf("Group() error = %v, want *InvalidPinError", err)
			}
			if !errors.Is(err, ErrInvalidPin) {
				t.Error("errors.Is(err, ErrInvalidPin) = false")
			}
			if pinErr.Node != tt.node {
				t.Errorf("Node = %q, want %q", pinErr.Node, tt.node)
			}
			if pinErr.Prerequisite != tt.prereq {
				t.Errorf("Prerequisite = %q, want %q", pinErr.Prerequisite, tt.prereq)
			}
			if tt.prereq != "" && pinErr.PrerequisiteMilestone != tt.prereqAt {
				t.Errorf("PrerequisiteMilestone = %d, want %d", pinErr.PrerequisiteMilestone, tt.prereqAt)
			}
			if pinErr.Reason == "" {
				t.Error("Reason is empty")
			}
		})
	}
}

// cuttable reports whether some way of cutting n ordered nodes into
// consecutive milestones puts every pinned position on its milestone.
func cuttable(n int, pins map[int]int) bool {
	for mask := 0; mask < 1<<max(n-1, 0); mask++ {
		ok, idx := true, 0
		for i := 0; i < n && ok; i++ {
			if i > 0 && mask&(1<<(i-1)) != 0 {
				idx++
			}
			if pin, pinned := pins[i]; pinned && pin != idx {
				ok = false
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func TestGroup_PinsExhaustive(t *testing.T) {
	for n := 1; n <= 5; n++ {
		ids := []string{"a", "b", "c", "d", "e"}[:n]
		g := store(t, plain(ids...))

		var cases []map[int]int
		for i := 0; i < n; i++ {
			for pi := 0; pi <= n; pi++ {
				cases = append(cases, map[int]int{i: pi})
				for j := i + 1; j < n; j++ {
					for pj := 0; pj <= n; pj++ {
						cases = append(cases, map[int]int{i: pi, j: pj})
					}
				}
			}
		}

		for maxNodes := 1; maxNodes <= 3; maxNodes++ {
			for _, pins := range cases {
				c := Constraints{MaxNodes: maxNodes, MaxHours: 100, Pins: map[string]int{}}
				for i, pin := range pins {
					c.Pins[ids[i]] = pin
				}

				ms, err := Group(g, ids, c)
				want := cuttable(n, pins)
				if err != nil {
					if want || !errors.Is(err, ErrInvalidPin) {
						t.Errorf("n=%d max=%d pins=%v: Group() error = %v, want success", n, maxNodes, c.Pins, err)
					}
					continue
				}
				if !want {
					t.Errorf("n=%d max=%d pins=%v: Group() = %v, want InvalidPinError", n, maxNodes, c.Pins, members(ms))
					continue
				}

				var flat []string
				at := Assignment(ms)
				for _, m := range ms {
					flat = append(flat, m.Nodes...)
					if len(m.Nodes) > maxNodes && !m.OverCapacity {
						t.Errorf("n=%d max=%d pins=%v: milestone %d has %d nodes without OverCapacity",
							n, maxNodes, c.Pins, m.Index, len(m.Nodes))
					}
				}
				if !slices.Equal(flat, ids) {
					t.Errorf("n=%d max=%d pins=%v: Group() = %v reorders nodes", n, maxNodes, c.Pins, members(ms))
				}
				for id, pin := range c.Pins {
					if at[id] != pin {
						t.Errorf("n=%d max=%d pins=%v: %s on milestone %d", n, maxNodes, c.Pins, id, at[id])
					}
				}
			}
		}
	}
}

func TestGroup_InvalidConstraints(t *testing.T) {
	g := store(t, plain("a", "b"))

	tests := []struct {
		name    string
		ordered []string
		c       Constraints
	}{
		{"zero nodes", []string{"a"}, Constraints{MaxNodes: 0, MaxHours: 1}},
		{"zero hours", []string{"a"}, Constraints{MaxNodes: 1, MaxHours: 0}},
		{"nan hours", []string{"a"}, Constraints{MaxNodes: 1, MaxHours: math.NaN()}},
		{"negative pin", []string{"a"}, Constraints{MaxNodes: 1, MaxHours: 1, Pins: map[string]int{"a": -1}}},
		{"pin not in ordering", []string{"a"}, Constraints{MaxNodes: 1, MaxHours: 1, Pins: map[string]int{"b": 0}}},
		{"duplicate in ordering", []string{"a", "a"}, Constraints{MaxNodes: 1, MaxHours: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Group(g, tt.ordered, tt.c); !errors.Is(err, ErrInvalidConstraints) {
				t.Errorf("Group() error = %v, want ErrInvalidConstraints", err)
			}
		})
	}

	_, err := Group(g, []string{"ghost"}, Constraints{MaxNodes: 1, MaxHours: 1})
	if !errors.Is(err, graph.ErrUnknownNode) {
		t.Errorf("Group(unknown) error = %v, want ErrUnknownNode", err)
	}
}

func TestGroup_Aggregates(t *testing.T) {
	nodes := []graph.Node{
		{ID: "a", Level: graph.LevelBasic, Hours: 0.1},
		{ID: "b", Level: graph.LevelAdvanced, Hours: 0.2},
		{ID: "c", Level: graph.LevelBasic, Hours: 1},
		{ID: "d", Level: graph.LevelAdvanced, Hours: 1},
	}

	ms, err := Group(store(t, nodes), []string{"a", "b", "c", "d"}, Constraints{MaxNodes: 2, MaxHours: 40})
	if err != nil {
		t.Fatalf("Group() error = %v", err)
	}

	if ms[0].Hours != 0.3 {
		t.Errorf("Hours = %v, want 0.3", ms[0].Hours)
	}
	if ms[0].Level != graph.LevelAdvanced || ms[0].Phase != PhaseAdvancedSystems {
		t.Errorf("milestone 0 = (%v, %v), want (ADVANCED, ADVANCED_SYSTEMS)", ms[0].Level, ms[0].Phase)
	}
	if ms[1].Level != graph.LevelAdvanced {
		t.Errorf("milestone 1 Level = %v, want ADVANCED", ms[1].Level)
	}
}

func TestDominant(t *testing.T) {
	tests := []struct {
		levels []graph.Level
		want   graph.Level
	}{
		{[]graph.Level{graph.LevelBasic}, graph.LevelBasic},
		{[]graph.Level{graph.LevelBasic, graph.LevelBasic, graph.LevelExpert}, graph.LevelBasic},
		{[]graph.Level{graph.LevelBasic, graph.LevelExpert}, graph.LevelExpert},
		{[]graph.Level{graph.LevelIntermediate, graph.LevelAdvanced, graph.LevelAdvanced, graph.LevelIntermediate}, graph.LevelAdvanced},
	}
	for _, tt := range tests {
		if got := dominant(tt.levels); got != tt.want {
			t.Errorf("dominant(%v) = %v, want %v", tt.levels, got, tt.want)
		}
	}
}

func TestPhaseFor(t *testing.T) {
	want := map[graph.Level]Phase{
		graph.LevelBasic:        PhaseFoundations,
		graph.LevelIntermediate: PhaseCoreSkills,
		graph.LevelAdvanced:     PhaseAdvancedSystems,
		graph.LevelExpert:       PhaseSpecializedTopics,
	}
	for l, p := range want {
		if got := PhaseFor(l); got != p {
			t.Errorf("PhaseFor(%v) = %v, want %v", l, got, p)
		}
	}
}

func TestAssignment(t *testing.T) {
	ms := []Milestone{{Index: 0, Nodes: []string{"a", "b"}}, {Index: 1, Nodes: []string{"c"}}}
	got := Assignment(ms)
	if got["a"] != 0 || got["b"] != 0 || got["c"] != 1 || len(got) != 3 {
		t.Errorf("Assignment() = %v", got)
	}
	if !ms[0].Contains("b") || ms[1].Contains("b") {
		t.Error("Contains() mismatch")
	}
}
