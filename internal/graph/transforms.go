package graph

import "github.com/pyimports/pyimports/pkg/types"

// ElideNamespaces returns a graph containing only Module and Script nodes.
// Every edge path u -> n1 -> n2 -> ... -> v whose intermediate nodes n1..n
// are all NamespacePackage nodes is replaced by a direct edge u -> v.
// Self-loops introduced by elision are discarded.
func ElideNamespaces(g *Graph) (*Graph, error) {
	isNamespace := make(map[string]bool)
	var kept []types.Node
	for _, n := range g.Nodes() {
		if n.Kind == types.KindNamespacePackage {
			isNamespace[n.Name] = true
			continue
		}
		kept = append(kept, n)
	}
	if len(isNamespace) == 0 {
		return New(g.Nodes(), g.Edges())
	}

	memo := make(map[string][]string)
	var expand func(name string) []string
	expand = func(name string) []string {
		if cached, ok := memo[name]; ok {
			return cached
		}
		if !isNamespace[name] {
			return []string{name}
		}
		memo[name] = nil // break cycles defensively; namespace cycles are pathological but not invariant-checked here
		seen := make(map[string]bool)
		var terminals []string
		for _, next := range g.forward[name] {
			for _, t := range expand(next) {
				if !seen[t] {
					seen[t] = true
					terminals = append(terminals, t)
				}
			}
		}
		memo[name] = terminals
		return terminals
	}

	var edges []types.Edge
	for _, e := range g.edges {
		if isNamespace[e.Source] {
			continue // only reachable as an intermediate hop from a retained source
		}
		for _, t := range expand(e.Target) {
			if t == e.Source {
				continue // self-loop introduced by elision
			}
			edges = append(edges, types.Edge{Source: e.Source, Target: t})
		}
	}

	return New(kept, edges)
}

// FilterOrphans removes every node with zero in-degree and out-degree in g.
func FilterOrphans(g *Graph) (*Graph, error) {
	var kept []types.Node
	for _, n := range g.Nodes() {
		if !g.IsOrphan(n.Name) {
			kept = append(kept, n)
		}
	}
	return New(kept, g.Edges())
}
