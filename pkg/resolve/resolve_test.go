package resolve

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/learnpath/pkg/graph"
)

type edgeSpec struct {
	from, to   string
	strength   graph.Strength
	confidence float64
	origin     graph.Origin
}

func build(t *testing.T, nodes []string, edges []edgeSpec) *graph.Store {
	t.Helper()
	g := graph.New()
	for _, id := range nodes {
		if err := g.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		err := g.AddEdge(graph.Edge{
			From: e.from, To: e.to,
			Strength: e.strength, Confidence: e.confidence, Origin: e.origin,
		})
		if err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e.from, e.to, err)
		}
	}
	return g
}

func removedPairs(r Report) []string {
	var out []string
	for _, rm := range r.Removed {
		out = append(out, rm.Edge.From+"->"+rm.Edge.To)
	}
	return out
}

func TestResolve_Triangle(t *testing.T) {
	g := build(t, []string{"A", "B", "C"}, []edgeSpec{
		{"A", "B", graph.Strong, 0.9, graph.Inferred},
		{"B", "C", graph.Strong, 0.9, graph.Inferred},
		{"C", "A", graph.Weak, 0.2, graph.Inferred},
	})

	r := Resolve(g)

	if got, want := removedPairs(r), []string{"C->A"}; !slices.Equal(got, want) {
		t.Errorf("removed = %v, want %v", got, want)
	}
	if len(r.Cycles) != 1 || !slices.Equal(r.Cycles[0].Members, []string{"A", "B", "C"}) {
		t.Errorf("Cycles = %+v, want one cycle [A B C]", r.Cycles)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after Resolve = %v", err)
	}
	if len(r.Forced()) != 0 {
		t.Errorf("Forced() = %v, want none", r.Forced())
	}
}

func TestResolve_Acyclic(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, []edgeSpec{
		{"a", "b", graph.Weak, 0.1, graph.Inferred},
		{"a", "c", graph.Weak, 0.1, graph.Inferred},
	})

	r := Resolve(g)

	if r.HasCycles() || len(r.Removed) != 0 {
		t.Errorf("Resolve() on DAG = %+v, want empty report", r)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestResolve_PriorityOrder(t *testing.T) {
	tests := []struct {
		name  string
		edges []edgeSpec
		want  string
	}{
		{
			name: "inferred before manual",
			edges: []edgeSpec{
				{"a", "b", graph.Weak, 0.0, graph.ManualOverride},
				{"b", "a", graph.Critical, 1.0, graph.Inferred},
			},
			want: "b->a",
		},
		{
			name: "weaker strength first",
			edges: []edgeSpec{
				{"a", "b", graph.Moderate, 0.1, graph.Inferred},
				{"b", "a", graph.Weak, 0.9, graph.Inferred},
			},
			want: "b->a",
		},
		{
			name: "lower confidence first",
			edges: []edgeSpec{
				{"a", "b", graph.Strong, 0.4, graph.Inferred},
				{"b", "a", graph.Strong, 0.6, graph.Inferred},
			},
			want: "a->b",
		},
		{
			name: "lexicographic tie-break",
			edges: []edgeSpec{
				{"b", "a", graph.Strong, 0.5, graph.Inferred},
				{"a", "b", graph.Strong, 0.5, graph.Inferred},
			},
			want: "a->b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, []string{"a", "b"}, tt.edges)
			r := Resolve(g)
			if got := removedPairs(r); !slices.Equal(got, []string{tt.want}) {
				t.Errorf("removed = %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestResolve_ForcedOverrideRemoval(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, []edgeSpec{
		{"a", "b", graph.Critical, 1.0, graph.ManualOverride},
		{"b", "c", graph.Critical, 1.0, graph.ManualOverride},
		{"c", "a", graph.Critical, 1.0, graph.ManualOverride},
	})

	r := Resolve(g)

	forced := r.Forced()
	if len(forced) != 1 {
		t.Fatalf("Forced() = %v, want 1 removal", forced)
	}
	if got := forced[0].Edge.Key(); got != (graph.EdgeKey{From: "a", To: "b"}) {
		t.Errorf("forced removal = %v, want a->b", got)
	}
}

func TestResolve_OverridesKeptWhileInferredRemain(t *testing.T) {
	// Two overlapping cycles share b->c. Every inferred edge inside a cyclic
	// component must go before any override.
	g := build(t, []string{"a", "b", "c", "d"}, []edgeSpec{
		{"a", "b", graph.Weak, 0.1, graph.ManualOverride},
		{"b", "c", graph.Critical, 0.9, graph.Inferred},
		{"c", "a", graph.Weak, 0.1, graph.ManualOverride},
		{"c", "d", graph.Critical, 0.9, graph.Inferred},
		{"d", "b", graph.Critical, 0.9, graph.Inferred},
	})

	r := Resolve(g)

	if len(r.Forced()) != 0 {
		t.Errorf("Forced() = %v, want none", r.Forced())
	}
	if got, want := removedPairs(r), []string{"b->c"}; !slices.Equal(got, want) {
		t.Errorf("removed = %v, want %v", got, want)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestResolve_SubComponents(t *testing.T) {
	// A figure eight joined by one weak edge splits into two cycles once that
	// edge goes; each is then resolved on its own, smallest member first.
	g := build(t, []string{"a", "b", "c", "d"}, []edgeSpec{
		{"a", "b", graph.Strong, 0.8, graph.Inferred},
		{"b", "a", graph.Strong, 0.7, graph.Inferred},
		{"b", "c", graph.Weak, 0.1, graph.Inferred},
		{"c", "d", graph.Strong, 0.6, graph.Inferred},
		{"d", "c", graph.Strong, 0.5, graph.Inferred},
		{"d", "a", graph.Strong, 0.9, graph.Inferred},
	})

	r := Resolve(g)

	want := []string{"b->c", "b->a", "d->c"}
	if got := removedPairs(r); !slices.Equal(got, want) {
		t.Errorf("removed = %v, want %v", got, want)
	}
	for _, rm := range r.Removed {
		if rm.Cycle != 0 {
			t.Errorf("removal %v attributed to cycle %d, want 0", rm.Edge.Key(), rm.Cycle)
		}
	}
}

func TestResolve_ComponentOrder(t *testing.T) {
	g := build(t, []string{"m", "n", "a", "b"}, []edgeSpec{
		{"m", "n", graph.Weak, 0.1, graph.Inferred},
		{"n", "m", graph.Strong, 0.1, graph.Inferred},
		{"a", "b", graph.Weak, 0.1, graph.Inferred},
		{"b", "a", graph.Strong, 0.1, graph.Inferred},
	})

	r := Resolve(g)

	if got, want := removedPairs(r), []string{"a->b", "m->n"}; !slices.Equal(got, want) {
		t.Errorf("removed = %v, want %v", got, want)
	}
	if r.Removed[1].Cycle != 1 {
		t.Errorf("second removal cycle = %d, want 1", r.Removed[1].Cycle)
	}
}

func TestResolve_IgnoresAdvisoryEdges(t *testing.T) {
	g := build(t, []string{"a", "b"}, []edgeSpec{{"a", "b", graph.Weak, 0.1, graph.Inferred}})
	_ = g.AddEdge(graph.Edge{From: "b", To: "a", Type: graph.Related})

	if r := Resolve(g); r.HasCycles() {
		t.Errorf("Resolve() = %+v, want no cycles", r)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestResolve_LongCycle(t *testing.T) {
	const n = 50000
	g := graph.New()
	for i := 0; i < n; i++ {
		_ = g.AddNode(graph.Node{ID: fmt.Sprintf("n%05d", i)})
	}
	for i := 0; i < n; i++ {
		_ = g.AddEdge(graph.Edge{
			From:       fmt.Sprintf("n%05d", i),
			To:         fmt.Sprintf("n%05d", (i+1)%n),
			Strength:   graph.Strong,
			Confidence: 0.5,
		})
	}

	r := Resolve(g)

	if len(r.Removed) != 1 {
		t.Fatalf("len(Removed) = %d, want 1", len(r.Removed))
	}
	if got := r.Removed[0].Edge.Key(); got != (graph.EdgeKey{From: "n00000", To: "n00001"}) {
		t.Errorf("removed %v, want n00000->n00001", got)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDetect_DoesNotMutate(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, []edgeSpec{
		{"a", "b", graph.Weak, 0.1, graph.Inferred},
		{"b", "a", graph.Weak, 0.1, graph.Inferred},
		{"b", "c", graph.Weak, 0.1, graph.Inferred},
	})

	cycles := Detect(g)

	if len(cycles) != 1 || !slices.Equal(cycles[0].Members, []string{"a", "b"}) {
		t.Errorf("Detect() = %+v, want [[a b]]", cycles)
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
}

func TestCompareRemoval(t *testing.T) {
	base := graph.Edge{From: "a", To: "b", Strength: graph.Moderate, Confidence: 0.5}

	tests := []struct {
		name  string
		other graph.Edge
		want  int
	}{
		{"equal", base, 0},
		{"manual ranks higher", graph.Edge{From: "a", To: "b", Strength: graph.Weak, Origin: graph.ManualOverride}, -1},
		{"stronger ranks higher", graph.Edge{From: "a", To: "b", Strength: graph.Strong, Confidence: 0.1}, -1},
		{"weaker ranks lower", graph.Edge{From: "a", To: "b", Strength: graph.Weak, Confidence: 0.9}, 1},
		{"more confident ranks higher", graph.Edge{From: "a", To: "b", Strength: graph.Moderate, Confidence: 0.6}, -1},
		{"key breaks ties", graph.Edge{From: "a", To: "c", Strength: graph.Moderate, Confidence: 0.5}, -1},
		{"nan confidence sorts first", graph.Edge{From: "a", To: "b", Strength: graph.Moderate, Confidence: math.NaN()}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareRemoval(base, tt.other); got != tt.want {
				t.Errorf("CompareRemoval(base, %+v) = %d, want %d", tt.other, got, tt.want)
			}
			if got := CompareRemoval(tt.other, base); got != -tt.want {
				t.Errorf("CompareRemoval(%+v, base) = %d, want %d", tt.other, got, -tt.want)
			}
		})
	}
}

func TestComponents_Singletons(t *testing.T) {
	g := build(t, []string{"c", "a", "b"}, []edgeSpec{
		{"a", "b", graph.Weak, 0.1, graph.Inferred},
		{"b", "c", graph.Weak, 0.1, graph.Inferred},
	})

	sccs := components(g, g.NodeIDs())

	want := [][]string{{"a"}, {"b"}, {"c"}}
	if !slices.EqualFunc(sccs, want, slices.Equal[[]string]) {
		t.Errorf("components() = %v, want %v", sccs, want)
	}
}
