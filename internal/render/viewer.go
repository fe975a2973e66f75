package render

import (
	"sort"
	"strings"

	"github.com/pyimports/pyimports/internal/graph"
	"github.com/pyimports/pyimports/pkg/types"
)

// ViewerNode is one node entry in the viewer payload.
type ViewerNode struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	IsOrphan    bool   `json:"is_orphan"`
	Parent      string `json:"parent,omitempty"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

// ViewerEdge is one edge entry in the viewer payload.
type ViewerEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// ViewerConfigPayload mirrors types.ViewerConfig for JSON output.
type ViewerConfigPayload struct {
	IncludeOrphans     bool     `json:"include_orphans"`
	IncludeNamespaces  bool     `json:"include_namespaces"`
	HighlightedModules []string `json:"highlighted_modules,omitempty"`
}

// ViewerPayload is the full structured payload consumed by the interactive
// viewer.
type ViewerPayload struct {
	Nodes     []ViewerNode              `json:"nodes"`
	Edges     []ViewerEdge              `json:"edges"`
	Config    *ViewerConfigPayload      `json:"config,omitempty"`
	Distances map[string]map[string]int `json:"distances,omitempty"`
}

// Viewer builds the viewer payload for g. g has usually already gone
// through namespace elision, which can leave a node's Parent pointing at a
// namespace that no longer has a content node in g. For every such dangling
// parent (and its own ancestors, transitively), a synthetic NamespaceGroup
// entry is emitted so client layouts can still nest the node under a
// container reflecting its real package path, distinct from an actual
// NamespacePackage content node (which only appears when namespaces were
// not elided, and needs no synthetic stand-in).
//
// Distances carries every node's BFS distance to every node it can reach,
// so the viewer can compute its own reachability-based views client-side
// without re-deriving them from the edge list.
func Viewer(g *graph.Graph, cfg types.ViewerConfig, highlighted map[string]bool) ViewerPayload {
	payload := ViewerPayload{
		Config: &ViewerConfigPayload{
			IncludeOrphans:     cfg.IncludeOrphans,
			IncludeNamespaces:  cfg.IncludeNamespaces,
			HighlightedModules: cfg.HighlightedModules,
		},
		Distances: g.AllPairsShortestPathLengths(),
	}

	nodes := g.Nodes()
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.Name] = true
	}

	groupParent := make(map[string]string)
	visited := make(map[string]bool)
	var ensureGroup func(name string)
	ensureGroup = func(name string) {
		if name == "" || present[name] || visited[name] {
			return
		}
		visited[name] = true
		parent := ""
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			parent = name[:idx]
		}
		groupParent[name] = parent
		ensureGroup(parent)
	}

	for _, n := range nodes {
		if n.Parent != "" && !present[n.Parent] {
			ensureGroup(n.Parent)
		}
		payload.Nodes = append(payload.Nodes, ViewerNode{
			ID:          n.Name,
			Type:        n.Kind.String(),
			IsOrphan:    g.IsOrphan(n.Name),
			Parent:      n.Parent,
			Highlighted: highlighted[n.Name],
		})
	}

	groupNames := make([]string, 0, len(groupParent))
	for name := range groupParent {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)
	for _, name := range groupNames {
		payload.Nodes = append(payload.Nodes, ViewerNode{
			ID:     name,
			Type:   types.KindNamespaceGroup.String(),
			Parent: groupParent[name],
		})
	}

	for _, e := range g.Edges() {
		payload.Edges = append(payload.Edges, ViewerEdge{Source: e.Source, Target: e.Target})
	}

	return payload
}
