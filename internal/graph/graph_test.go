package graph

import (
	"testing"

	"github.com/pyimports/pyimports/pkg/types"
)

func sampleNodes() []types.Node {
	return []types.Node{
		{Name: "pkg", Kind: types.KindModule},
		{Name: "pkg.a", Kind: types.KindModule, Parent: "pkg"},
		{Name: "pkg.b", Kind: types.KindModule, Parent: "pkg"},
		{Name: "pkg.sub", Kind: types.KindNamespacePackage, Parent: "pkg"},
		{Name: "pkg.sub.c", Kind: types.KindModule, Parent: "pkg.sub"},
		{Name: "scripts.run", Kind: types.KindScript},
	}
}

func sampleEdges() []types.Edge {
	return []types.Edge{
		{Source: "pkg.a", Target: "pkg.b"},
		{Source: "pkg.sub.c", Target: "pkg.a"},
		{Source: "scripts.run", Target: "pkg.a"},
	}
}

func TestNew_CanonicalOrder(t *testing.T) {
	g, err := New(sampleNodes(), sampleEdges())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	names := make([]string, 0)
	for _, n := range g.Nodes() {
		names = append(names, n.Name)
	}
	want := []string{"pkg", "pkg.a", "pkg.b", "pkg.sub", "pkg.sub.c", "scripts.run"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i, n := range names {
		if n != want[i] {
			t.Errorf("Nodes()[%d] = %q, want %q", i, n, want[i])
		}
	}
}

func TestNew_RejectsUnknownEdgeEndpoint(t *testing.T) {
	_, err := New(sampleNodes(), []types.Edge{{Source: "pkg.a", Target: "nope"}})
	if err == nil {
		t.Fatal("expected error for edge referencing unknown node")
	}
}

func TestNew_DedupesEdges(t *testing.T) {
	g, err := New(sampleNodes(), []types.Edge{
		{Source: "pkg.a", Target: "pkg.b"},
		{Source: "pkg.a", Target: "pkg.b"},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if len(g.Edges()) != 1 {
		t.Fatalf("got %d edges, want 1", len(g.Edges()))
	}
}

func TestIsOrphan(t *testing.T) {
	g, err := New(sampleNodes(), sampleEdges())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if g.IsOrphan("pkg.a") {
		t.Error("pkg.a has edges, should not be an orphan")
	}
	if !g.IsOrphan("pkg") {
		t.Error("pkg has no edges, should be an orphan")
	}
}

func TestElideNamespaces_NoOpWhenNamespaceUntouched(t *testing.T) {
	g, err := New(sampleNodes(), sampleEdges())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	elided, err := ElideNamespaces(g)
	if err != nil {
		t.Fatalf("ElideNamespaces() error: %v", err)
	}
	for _, n := range elided.Nodes() {
		if n.Kind == types.KindNamespacePackage {
			t.Errorf("elided graph should not contain namespace nodes, found %q", n.Name)
		}
	}
	if len(elided.Edges()) != len(sampleEdges()) {
		t.Errorf("got %d edges, want %d (elision is a no-op here)", len(elided.Edges()), len(sampleEdges()))
	}
}

func TestElideNamespaces_CollapsesThroughChain(t *testing.T) {
	nodes := []types.Node{
		{Name: "outer", Kind: types.KindModule},
		{Name: "ns", Kind: types.KindNamespacePackage},
		{Name: "ns.inner", Kind: types.KindModule, Parent: "ns"},
	}
	edges := []types.Edge{
		{Source: "outer", Target: "ns"},
		{Source: "ns", Target: "ns.inner"},
	}
	g, err := New(nodes, edges)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	elided, err := ElideNamespaces(g)
	if err != nil {
		t.Fatalf("ElideNamespaces() error: %v", err)
	}
	got := elided.Edges()
	if len(got) != 1 || got[0].Source != "outer" || got[0].Target != "ns.inner" {
		t.Fatalf("got %+v, want single edge outer->ns.inner", got)
	}
}

func TestElideNamespaces_DropsIntroducedSelfLoop(t *testing.T) {
	nodes := []types.Node{
		{Name: "a", Kind: types.KindModule},
		{Name: "ns", Kind: types.KindNamespacePackage},
	}
	edges := []types.Edge{
		{Source: "a", Target: "ns"},
		{Source: "ns", Target: "a"},
	}
	g, err := New(nodes, edges)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	elided, err := ElideNamespaces(g)
	if err != nil {
		t.Fatalf("ElideNamespaces() error: %v", err)
	}
	if len(elided.Edges()) != 0 {
		t.Errorf("got %+v, want elision to drop the introduced self-loop", elided.Edges())
	}
}

func TestFilterOrphans(t *testing.T) {
	nodes := append(sampleNodes(), types.Node{Name: "zzz.lonely", Kind: types.KindModule})
	g, err := New(nodes, sampleEdges())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	filtered, err := FilterOrphans(g)
	if err != nil {
		t.Fatalf("FilterOrphans() error: %v", err)
	}
	for _, n := range filtered.Nodes() {
		if n.Name == "zzz.lonely" || n.Name == "pkg" || n.Name == "pkg.sub" {
			t.Errorf("orphan %q should have been filtered out", n.Name)
		}
	}
}

func TestDownstream_ListScenario(t *testing.T) {
	// S3: --downstream pkg.b --format list -> pkg.a, pkg.b, pkg.sub.c, scripts.run
	g, err := New(sampleNodes(), sampleEdges())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	dist, err := g.Downstream([]string{"pkg.b"}, Unbounded)
	if err != nil {
		t.Fatalf("Downstream() error: %v", err)
	}
	want := []string{"pkg.a", "pkg.b", "pkg.sub.c", "scripts.run"}
	got := Keys(dist)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, n := range got {
		if n != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestUpstream_MaxRankScenario(t *testing.T) {
	// S4: --upstream scripts.run --max-rank 1 -> {scripts.run, pkg.a}
	g, err := New(sampleNodes(), sampleEdges())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	dist, err := g.Upstream([]string{"scripts.run"}, 1)
	if err != nil {
		t.Fatalf("Upstream() error: %v", err)
	}
	got := Keys(dist)
	want := []string{"pkg.a", "scripts.run"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDownstreamUpstream_Intersection(t *testing.T) {
	// S5: --downstream pkg.b --upstream scripts.run -> {pkg.a, pkg.b, scripts.run}
	g, err := New(sampleNodes(), sampleEdges())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	down, err := g.Downstream([]string{"pkg.b"}, Unbounded)
	if err != nil {
		t.Fatalf("Downstream() error: %v", err)
	}
	up, err := g.Upstream([]string{"scripts.run"}, Unbounded)
	if err != nil {
		t.Fatalf("Upstream() error: %v", err)
	}
	got := Intersect(down, up)
	want := []string{"pkg.a", "pkg.b", "scripts.run"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, n := range got {
		if n != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestReach_UnknownRootIsBadInput(t *testing.T) {
	g, err := New(sampleNodes(), sampleEdges())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	_, err = g.Downstream([]string{"does.not.exist"}, Unbounded)
	if err == nil {
		t.Fatal("expected error for unknown root")
	}
	exitErr, ok := err.(*types.ExitError)
	if !ok || exitErr.Code != 2 {
		t.Fatalf("got %v, want *types.ExitError with code 2", err)
	}
}

func TestValidateMaxRank_Negative(t *testing.T) {
	if err := ValidateMaxRank(-1); err == nil {
		t.Fatal("expected error for negative max-rank")
	}
	if err := ValidateMaxRank(0); err != nil {
		t.Errorf("max-rank 0 should be valid, got %v", err)
	}
}

func TestInduced_SubgraphRestrictsEdges(t *testing.T) {
	g, err := New(sampleNodes(), sampleEdges())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	sub, err := g.Induced([]string{"pkg.a", "pkg.b"})
	if err != nil {
		t.Fatalf("Induced() error: %v", err)
	}
	if len(sub.Nodes()) != 2 {
		t.Fatalf("got %d nodes, want 2", len(sub.Nodes()))
	}
	if len(sub.Edges()) != 1 {
		t.Fatalf("got %d edges, want 1", len(sub.Edges()))
	}
}
