// Package graph is the in-memory dependency graph model: nodes with kind,
// deduplicated directed edges, adjacency in both directions, and the
// queries built on top of them (reachability, namespace elision, subgraph
// extraction). A Graph is immutable once constructed; every transform
// returns a new value.
package graph

import (
	"fmt"
	"sort"

	"github.com/pyimports/pyimports/pkg/types"
)

// Graph is an immutable, queryable dependency graph.
type Graph struct {
	nodes   map[string]types.Node
	order   []string // node names, canonical (lexicographic) order
	edges   []types.Edge
	forward map[string][]string // source -> sorted, deduped targets
	reverse map[string][]string // target -> sorted, deduped sources
}

// New builds a Graph from a node and edge set. Edges are deduplicated;
// nodes and edges are both stored in canonical order. It is an Internal
// error (invariant violation) for an edge to reference a name outside the
// node set, or for two nodes to share a canonical name.
func New(nodes []types.Node, edges []types.Edge) (*Graph, error) {
	byName := make(map[string]types.Node, len(nodes))
	order := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if _, dup := byName[n.Name]; dup {
			return nil, fmt.Errorf("duplicate canonical node name %q", n.Name)
		}
		byName[n.Name] = n
		order = append(order, n.Name)
	}
	sort.Strings(order)

	seen := make(map[types.Edge]bool, len(edges))
	forward := make(map[string][]string)
	reverse := make(map[string][]string)
	var dedup []types.Edge
	for _, e := range edges {
		if _, ok := byName[e.Source]; !ok {
			return nil, fmt.Errorf("edge references unknown node %q", e.Source)
		}
		if _, ok := byName[e.Target]; !ok {
			return nil, fmt.Errorf("edge references unknown node %q", e.Target)
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		dedup = append(dedup, e)
		forward[e.Source] = append(forward[e.Source], e.Target)
		reverse[e.Target] = append(reverse[e.Target], e.Source)
	}
	sort.Slice(dedup, func(i, j int) bool {
		if dedup[i].Source != dedup[j].Source {
			return dedup[i].Source < dedup[j].Source
		}
		return dedup[i].Target < dedup[j].Target
	})
	for _, adj := range forward {
		sort.Strings(adj)
	}
	for _, adj := range reverse {
		sort.Strings(adj)
	}

	return &Graph{nodes: byName, order: order, edges: dedup, forward: forward, reverse: reverse}, nil
}

// Nodes returns every node in canonical order.
func (g *Graph) Nodes() []types.Node {
	out := make([]types.Node, len(g.order))
	for i, name := range g.order {
		out[i] = g.nodes[name]
	}
	return out
}

// Edges returns every edge in canonical order.
func (g *Graph) Edges() []types.Edge {
	out := make([]types.Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Node looks up a single node by canonical name.
func (g *Graph) Node(name string) (types.Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Has reports whether name is a node in the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Successors returns the nodes name imports directly, in canonical order.
func (g *Graph) Successors(name string) []string {
	return append([]string(nil), g.forward[name]...)
}

// Predecessors returns the nodes that directly import name, in canonical
// order.
func (g *Graph) Predecessors(name string) []string {
	return append([]string(nil), g.reverse[name]...)
}

// IsOrphan reports whether name has neither incoming nor outgoing edges.
func (g *Graph) IsOrphan(name string) bool {
	return len(g.forward[name]) == 0 && len(g.reverse[name]) == 0
}

// AllPairsShortestPathLengths computes, for every node, the BFS distance to
// every node it can reach by following forward edges. Unreachable pairs are
// absent from the inner map.
func (g *Graph) AllPairsShortestPathLengths() map[string]map[string]int {
	out := make(map[string]map[string]int, len(g.order))
	for _, name := range g.order {
		out[name] = bfsDistances(g.forward, []string{name}, -1)
	}
	return out
}
