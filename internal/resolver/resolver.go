// Package resolver turns the raw import records produced by pyast into
// edges between known internal nodes, honoring relative-import levels and
// script-vs-module rules. It never introduces a node: an import that does
// not resolve to an existing node is dropped.
package resolver

import (
	"sort"
	"strings"

	"github.com/pyimports/pyimports/internal/pyast"
	"github.com/pyimports/pyimports/pkg/types"
)

// Resolver resolves raw imports against a fixed set of known nodes.
type Resolver struct {
	nodes map[string]types.Node
}

// New creates a Resolver over nodes.
func New(nodes []types.Node) *Resolver {
	m := make(map[string]types.Node, len(nodes))
	for _, n := range nodes {
		m[n.Name] = n
	}
	return &Resolver{nodes: m}
}

func (r *Resolver) exists(name string) bool {
	_, ok := r.nodes[name]
	return ok
}

// isPackageInit reports whether n is a Module backed by a package's
// __init__.py, as opposed to a standalone module file.
func isPackageInit(n types.Node) bool {
	return n.Kind == types.KindModule && strings.HasSuffix(n.Origin, "__init__.py")
}

// packageOf returns the dotted name of the package a node's relative
// imports are resolved against: the node itself for a package init, its
// structural parent directory otherwise.
func packageOf(n types.Node) string {
	if isPackageInit(n) {
		return n.Name
	}
	idx := strings.LastIndex(n.Name, ".")
	if idx < 0 {
		return ""
	}
	return n.Name[:idx]
}

// dropComponents removes the last n dotted components of pkg. Dropping more
// components than pkg has is an underflow, reported via ok=false.
func dropComponents(pkg string, n int) (result string, ok bool) {
	if n <= 0 {
		return pkg, true
	}
	if pkg == "" {
		return "", false
	}
	parts := strings.Split(pkg, ".")
	if n > len(parts) {
		return "", false
	}
	return strings.Join(parts[:len(parts)-n], "."), true
}

// joinPrefix joins two dotted-name fragments, either of which may be empty.
func joinPrefix(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "." + b
	}
}

// Resolve turns one raw import from file "from" into a target node name.
func (r *Resolver) Resolve(from types.Node, imp pyast.RawImport) (string, bool) {
	switch imp.Kind {
	case pyast.Absolute:
		return r.pickCandidate(candidatesForAbsolute(imp.Prefix), from.Name)
	case pyast.FromImport:
		base := imp.Prefix
		if imp.Level > 0 {
			pkg := packageOf(from)
			dropped, ok := dropComponents(pkg, imp.Level-1)
			if !ok {
				return "", false
			}
			base = joinPrefix(dropped, imp.Prefix)
		}
		return r.pickCandidate(candidatesForFrom(base, imp.Name), from.Name)
	}
	return "", false
}

// candidatesForAbsolute lists "a.b.c", "a.b", "a" in that order for an
// "import a.b.c" statement.
func candidatesForAbsolute(prefix string) []string {
	if prefix == "" {
		return nil
	}
	parts := strings.Split(prefix, ".")
	out := make([]string, 0, len(parts))
	for i := len(parts); i > 0; i-- {
		out = append(out, strings.Join(parts[:i], "."))
	}
	return out
}

// candidatesForFrom lists the submodule candidate before the symbol-in-module
// candidate for "from <base> import <name>". A wildcard name only ever
// resolves to base itself.
func candidatesForFrom(base, name string) []string {
	if name == "*" {
		if base == "" {
			return nil
		}
		return []string{base}
	}
	out := []string{joinPrefix(base, name)}
	if base != "" {
		out = append(out, base)
	}
	return out
}

// pickCandidate returns the first candidate that exists as a node. A
// resolution that lands back on the importer itself is a self-import and is
// dropped rather than falling through to the next candidate.
func (r *Resolver) pickCandidate(candidates []string, fromName string) (string, bool) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if r.exists(c) {
			if c == fromName {
				return "", false
			}
			return c, true
		}
	}
	return "", false
}

// ResolveAll resolves every raw import for every file in imports (keyed by
// the importing node's canonical name) into a deduplicated edge set.
// Imports from a name with no matching node are skipped.
func ResolveAll(r *Resolver, imports map[string][]pyast.RawImport) []types.Edge {
	names := make([]string, 0, len(imports))
	for name := range imports {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[types.Edge]bool)
	var edges []types.Edge
	for _, name := range names {
		from, ok := r.nodes[name]
		if !ok {
			continue
		}
		for _, imp := range imports[name] {
			target, ok := r.Resolve(from, imp)
			if !ok {
				continue
			}
			e := types.Edge{Source: from.Name, Target: target}
			if seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}
	return edges
}
