package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pyimports/pyimports/internal/graph"
	"github.com/pyimports/pyimports/pkg/types"
)

// Mermaid renders g as a "flowchart TD" diagram. When includeNamespaces is
// true, NamespacePackage nodes become nested subgraph containers reflecting
// parent chains instead of plain nodes. Highlighted nodes get a trailing
// style directive.
func Mermaid(g *graph.Graph, includeNamespaces bool, highlighted map[string]bool) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	// Subgraph nesting only follows namespace-to-namespace (and
	// namespace-to-leaf) parent chains: a module or script is a flat,
	// independent node unless its own direct parent is a namespace package.
	nodes := g.Nodes()
	byName := make(map[string]types.Node, len(nodes))
	namespaceChildren := make(map[string][]string)
	var topLevel []string

	for _, n := range nodes {
		byName[n.Name] = n
	}
	for _, n := range nodes {
		if parent, ok := byName[n.Parent]; n.Parent != "" && ok && parent.Kind == types.KindNamespacePackage {
			namespaceChildren[n.Parent] = append(namespaceChildren[n.Parent], n.Name)
			continue
		}
		topLevel = append(topLevel, n.Name)
	}
	sort.Strings(topLevel)
	for _, kids := range namespaceChildren {
		sort.Strings(kids)
	}

	for _, name := range topLevel {
		writeMermaidNode(&b, byName[name], namespaceChildren, byName, includeNamespaces, 1)
	}

	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "    %s --> %s\n", mermaidID(e.Source), mermaidID(e.Target))
	}

	var highlightedNames []string
	for name, on := range highlighted {
		if on {
			highlightedNames = append(highlightedNames, name)
		}
	}
	sort.Strings(highlightedNames)
	for _, name := range highlightedNames {
		fmt.Fprintf(&b, "    style %s fill:#bbdefb,stroke:#1976d2,stroke-width:2px\n", mermaidID(name))
	}

	return b.String()
}

// writeMermaidNode renders one node: a subgraph (recursing into children)
// for a namespace package when namespaces are included, or a single shaped
// node declaration otherwise.
func writeMermaidNode(b *strings.Builder, n types.Node, children map[string][]string, byName map[string]types.Node, includeNamespaces bool, depth int) {
	indent := strings.Repeat("    ", depth)

	if n.Kind == types.KindNamespacePackage && includeNamespaces {
		fmt.Fprintf(b, "%ssubgraph %s[\"%s\"]\n", indent, mermaidID(n.Name), n.Name)
		for _, childName := range children[n.Name] {
			writeMermaidNode(b, byName[childName], children, byName, includeNamespaces, depth+1)
		}
		fmt.Fprintf(b, "%send\n", indent)
		return
	}

	fmt.Fprintf(b, "%s%s\n", indent, mermaidNodeDecl(n))
}

// mermaidNodeDecl renders a single node's shape declaration by kind.
func mermaidNodeDecl(n types.Node) string {
	id := mermaidID(n.Name)
	switch n.Kind {
	case types.KindScript:
		return fmt.Sprintf("%s[%s]", id, n.Name)
	case types.KindNamespacePackage:
		return fmt.Sprintf("%s{{\"%s\"}}", id, n.Name)
	default:
		return fmt.Sprintf("%s(\"%s\")", id, n.Name)
	}
}

// mermaidID turns a dotted node name into a Mermaid-safe identifier. The
// label keeps the dots; only the identifier replaces them with underscores.
func mermaidID(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}
