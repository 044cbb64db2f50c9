package graph

import (
	"reflect"
	"testing"

	"github.com/leapstack-labs/leaplineage/internal/model"
)

func mustNode(t *testing.T, id string) model.Node {
	t.Helper()
	n, err := model.NewNode(id, id, "", "", nil)
	if err != nil {
		t.Fatalf("failed to build node %s: %v", id, err)
	}
	return n
}

func conn(from, to string) model.Connection {
	return model.Connection{FromID: from, ToID: to, Type: model.DefaultConnectionType}
}

// buildGraph constructs a graph from node ids and from->to edge pairs.
func buildGraph(t *testing.T, ids []string, edges [][2]string) *Graph {
	t.Helper()
	nodes := make([]model.Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, mustNode(t, id))
	}
	conns := make([]model.Connection, 0, len(edges))
	for _, e := range edges {
		conns = append(conns, conn(e[0], e[1]))
	}
	g, err := New(nodes, conns)
	if err != nil {
		t.Fatalf("failed to build graph: %v", err)
	}
	return g
}

func TestNew_DuplicateNodeID(t *testing.T) {
	a := model.Node{ID: "a", Label: "a"}
	if _, err := New([]model.Node{a, a}, nil); err == nil {
		t.Error("expected error for duplicate node id")
	}
}

func TestGraph_Counts(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	if g.NodeCount() != 3 {
		t.Errorf("expected 3 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("expected 2 edges, got %d", g.EdgeCount())
	}
}

func TestGraph_DanglingEdgeCreatesVertex(t *testing.T) {
	// Edge references "ghost" which is never declared as a node.
	g := buildGraph(t, []string{"a"}, [][2]string{{"ghost", "a"}})

	if !g.HasNode("ghost") {
		t.Error("expected dangling endpoint to be a vertex")
	}
	if _, ok := g.Node("ghost"); ok {
		t.Error("dangling endpoint should carry no payload")
	}
	if got := g.Upstream("a", 0); !reflect.DeepEqual(got, []string{"ghost"}) {
		t.Errorf("expected upstream [ghost], got %v", got)
	}
}

func TestGraph_LinearChain(t *testing.T) {
	// A -> B -> C -> D
	g := buildGraph(t, []string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}})

	if got := g.Upstream("D", 0); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("unlimited upstream of D: got %v", got)
	}
	if got := g.Upstream("D", 1); !reflect.DeepEqual(got, []string{"C"}) {
		t.Errorf("upstream of D at depth 1: got %v", got)
	}
	if got := g.Downstream("A", 1); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("downstream of A at depth 1: got %v", got)
	}
	paths := g.AllSimplePaths("A", "D")
	want := [][]string{{"A", "B", "C", "D"}}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("expected single path %v, got %v", want, paths)
	}
}

func TestGraph_Diamond(t *testing.T) {
	// A -> B -> D, A -> C -> D
	g := buildGraph(t, []string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"B", "D"}, {"A", "C"}, {"C", "D"}})

	if got := g.Upstream("D", 0); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("unlimited upstream of D: got %v", got)
	}

	paths := g.AllSimplePaths("A", "D")
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d: %v", len(paths), paths)
	}
	for _, p := range paths {
		if p[0] != "A" || p[len(p)-1] != "D" {
			t.Errorf("path should start with A and end with D: %v", p)
		}
	}
}

func TestGraph_NoSelfInclusion(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	// Even in a cycle, a node never appears in its own up/downstream set.
	for _, id := range []string{"a", "b", "c"} {
		for _, depth := range []int{0, 1, 2, 5} {
			if contains(g.Upstream(id, depth), id) {
				t.Errorf("upstream(%s, %d) contains itself", id, depth)
			}
			if contains(g.Downstream(id, depth), id) {
				t.Errorf("downstream(%s, %d) contains itself", id, depth)
			}
		}
	}
}

func TestGraph_DepthMonotonicity(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"a", "e"}, {"e", "d"}})

	asSet := func(ids []string) map[string]bool {
		set := make(map[string]bool)
		for _, id := range ids {
			set[id] = true
		}
		return set
	}
	subset := func(small, big []string) bool {
		bigSet := asSet(big)
		for _, id := range small {
			if !bigSet[id] {
				return false
			}
		}
		return true
	}

	unlimited := g.Upstream("d", 0)
	for depth := 1; depth < 5; depth++ {
		shallow := g.Upstream("d", depth)
		deeper := g.Upstream("d", depth+1)
		if !subset(shallow, deeper) {
			t.Errorf("upstream(d, %d) = %v not a subset of upstream(d, %d) = %v",
				depth, shallow, depth+1, deeper)
		}
		if !subset(shallow, unlimited) {
			t.Errorf("upstream(d, %d) = %v not a subset of unlimited = %v",
				depth, shallow, unlimited)
		}
	}
}

func TestGraph_BFSDepthIsHopCount(t *testing.T) {
	// Two routes to "far": one hop via short, three hops via l1->l2->far.
	// Depth 2 must include far (shortest route wins).
	g := buildGraph(t, []string{"root", "short", "far", "l1", "l2"},
		[][2]string{{"short", "root"}, {"far", "short"}, {"l2", "l1"}, {"l1", "root"}, {"far", "l2"}})

	got := g.Upstream("root", 2)
	if !contains(got, "far") {
		t.Errorf("expected far within 2 hops, got %v", got)
	}
	if got := g.Upstream("root", 1); contains(got, "far") {
		t.Errorf("far should not be within 1 hop, got %v", got)
	}
}

func TestGraph_DirectNeighbors(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}})

	if got := g.DirectNeighbors("b"); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("expected [a c], got %v", got)
	}

	// direct_neighbors(n) = upstream(n, 1) ∪ downstream(n, 1)
	for _, id := range []string{"a", "b", "c", "d"} {
		union := map[string]bool{}
		for _, u := range g.Upstream(id, 1) {
			union[u] = true
		}
		for _, d := range g.Downstream(id, 1) {
			union[d] = true
		}
		if got := g.DirectNeighbors(id); !reflect.DeepEqual(got, sortedKeys(union)) {
			t.Errorf("direct neighbors of %s = %v, want %v", id, got, sortedKeys(union))
		}
	}
}

func TestGraph_AbsentNodeQueries(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}})

	if got := g.Upstream("zzz", 0); len(got) != 0 {
		t.Errorf("expected empty upstream for absent node, got %v", got)
	}
	if got := g.Downstream("zzz", 3); len(got) != 0 {
		t.Errorf("expected empty downstream for absent node, got %v", got)
	}
	if got := g.DirectNeighbors("zzz"); len(got) != 0 {
		t.Errorf("expected empty neighbors for absent node, got %v", got)
	}
	if got := g.AllSimplePaths("zzz", "b"); len(got) != 0 {
		t.Errorf("expected no paths from absent node, got %v", got)
	}
	if got := g.AllSimplePaths("a", "zzz"); len(got) != 0 {
		t.Errorf("expected no paths to absent node, got %v", got)
	}
}

func TestGraph_IsAcyclic(t *testing.T) {
	acyclic := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	if !acyclic.IsAcyclic() {
		t.Error("expected acyclic graph")
	}

	cyclic := buildGraph(t, []string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	if cyclic.IsAcyclic() {
		t.Error("expected cycle to be detected")
	}
}

func TestGraph_FindCycles_TwoNodeCycle(t *testing.T) {
	// X -> Y -> X
	g := buildGraph(t, []string{"X", "Y"}, [][2]string{{"X", "Y"}, {"Y", "X"}})

	if g.IsAcyclic() {
		t.Error("expected graph to be cyclic")
	}

	cycles := g.FindCycles()
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d: %v", len(cycles), cycles)
	}
	idSet := map[string]bool{}
	for _, id := range cycles[0] {
		idSet[id] = true
	}
	if !idSet["X"] || !idSet["Y"] || len(idSet) != 2 {
		t.Errorf("expected cycle over {X, Y}, got %v", cycles[0])
	}
}

func TestGraph_FindCycles_Acyclic(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	if cycles := g.FindCycles(); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}

func TestGraph_FindCycles_Overlapping(t *testing.T) {
	// Two elementary cycles sharing vertex b: a->b->a and b->c->b,
	// plus the self-loop d->d.
	g := buildGraph(t, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"b", "c"}, {"c", "b"}, {"d", "d"}})

	cycles := g.FindCycles()
	if len(cycles) != 3 {
		t.Fatalf("expected 3 elementary cycles, got %d: %v", len(cycles), cycles)
	}

	lengths := map[int]int{}
	for _, c := range cycles {
		lengths[len(c)]++
	}
	if lengths[1] != 1 || lengths[2] != 2 {
		t.Errorf("expected one self-loop and two 2-cycles, got %v", cycles)
	}
}

func TestGraph_AllSimplePaths_NoPath(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}})

	if got := g.AllSimplePaths("b", "a"); len(got) != 0 {
		t.Errorf("expected no path against edge direction, got %v", got)
	}
	if got := g.AllSimplePaths("a", "c"); len(got) != 0 {
		t.Errorf("expected no path to disconnected node, got %v", got)
	}
}

func TestGraph_AllSimplePaths_CycleSafe(t *testing.T) {
	// Cycle a->b->c->a with an exit c->d. Paths must not revisit vertices.
	g := buildGraph(t, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}})

	paths := g.AllSimplePaths("a", "d")
	want := [][]string{{"a", "b", "c", "d"}}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("expected %v, got %v", want, paths)
	}
}
