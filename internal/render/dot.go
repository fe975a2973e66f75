// Package render implements the deterministic text and structured-payload
// serializers: DOT, Mermaid, plain list, and the interactive viewer's JSON
// payload. Every serializer consumes an already-transformed graph and
// visits nodes and edges in canonical order, so output is byte-identical
// across runs given identical inputs.
package render

import (
	"fmt"
	"strings"

	"github.com/pyimports/pyimports/internal/graph"
	"github.com/pyimports/pyimports/pkg/types"
)

// DOT renders g as a Graphviz directed graph. highlighted may be nil.
func DOT(g *graph.Graph, highlighted map[string]bool) string {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")

	for _, n := range g.Nodes() {
		attrs := dotNodeAttrs(n, highlighted[n.Name])
		if attrs == "" {
			fmt.Fprintf(&b, "    %q;\n", n.Name)
		} else {
			fmt.Fprintf(&b, "    %q [%s];\n", n.Name, attrs)
		}
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "    %q -> %q;\n", e.Source, e.Target)
	}

	b.WriteString("}\n")
	return b.String()
}

func dotNodeAttrs(n types.Node, highlighted bool) string {
	var parts []string
	switch n.Kind {
	case types.KindScript:
		parts = append(parts, "shape=box")
	case types.KindNamespacePackage:
		parts = append(parts, "shape=hexagon", "style=dashed")
	}
	if highlighted {
		parts = append(parts, "fillcolor=lightblue", "style=filled")
	}
	return strings.Join(parts, ",")
}
