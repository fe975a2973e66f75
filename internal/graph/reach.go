package graph

import (
	"fmt"
	"sort"

	"github.com/pyimports/pyimports/pkg/types"
)

// Unbounded marks a reachability query with no maximum distance.
const Unbounded = -1

// bfsDistances runs a multi-source BFS over adj (an adjacency map from node
// to its neighbors), starting at roots with distance 0, and returns every
// reached node's distance. maxDist < 0 means unbounded.
func bfsDistances(adj map[string][]string, roots []string, maxDist int) map[string]int {
	dist := make(map[string]int, len(roots))
	queue := make([]string, 0, len(roots))
	for _, r := range roots {
		if _, seen := dist[r]; seen {
			continue
		}
		dist[r] = 0
		queue = append(queue, r)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[cur]
		if maxDist >= 0 && d >= maxDist {
			continue
		}
		for _, next := range adj[cur] {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = d + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// validateRoots checks that every root name is a known node, returning a
// BadInput exit error naming the first offender otherwise.
func (g *Graph) validateRoots(roots []string) error {
	for _, r := range roots {
		if !g.Has(r) {
			return &types.ExitError{Code: 2, Message: fmt.Sprintf("unknown root module %q", r)}
		}
	}
	return nil
}

// Downstream returns the distance, by edge count, from every node that
// transitively imports one of roots back to its nearest root. Roots are
// always included at distance 0. Any maxDist < 0 means unbounded; Downstream
// itself rejects no distance, so a negative user-supplied max-rank has to be
// rejected by the caller before it gets here.
func (g *Graph) Downstream(roots []string, maxDist int) (map[string]int, error) {
	if err := g.validateRoots(roots); err != nil {
		return nil, err
	}
	return bfsDistances(g.reverse, roots, maxDist), nil
}

// Upstream returns the distance, by edge count, from every root to each
// node it transitively imports. Roots are always included at distance 0.
func (g *Graph) Upstream(roots []string, maxDist int) (map[string]int, error) {
	if err := g.validateRoots(roots); err != nil {
		return nil, err
	}
	return bfsDistances(g.forward, roots, maxDist), nil
}

// ValidateMaxRank rejects a negative --max-rank as BadInput.
func ValidateMaxRank(maxRank int) error {
	if maxRank < 0 {
		return &types.ExitError{Code: 2, Message: fmt.Sprintf("max-rank must be >= 0, got %d", maxRank)}
	}
	return nil
}

// Intersect returns the set intersection of two distance maps' key sets, as
// a sorted slice of node names.
func Intersect(a, b map[string]int) []string {
	var out []string
	for name := range a {
		if _, ok := b[name]; ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Keys returns the sorted node-name keys of a distance map.
func Keys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Induced returns the induced subgraph on nodeNames: every node in the set
// and every original edge whose endpoints are both in the set.
func (g *Graph) Induced(nodeNames []string) (*Graph, error) {
	set := make(map[string]bool, len(nodeNames))
	nodes := make([]types.Node, 0, len(nodeNames))
	for _, name := range nodeNames {
		n, ok := g.Node(name)
		if !ok {
			return nil, fmt.Errorf("induced subgraph references unknown node %q", name)
		}
		if set[name] {
			continue
		}
		set[name] = true
		nodes = append(nodes, n)
	}

	var edges []types.Edge
	for _, e := range g.edges {
		if set[e.Source] && set[e.Target] {
			edges = append(edges, e)
		}
	}
	return New(nodes, edges)
}
