package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pyimports/pyimports/pkg/types"
)

// ResolveRoots combines the three ways a reachability root set can be
// specified on the CLI -- a comma-separated list, repeatable single-name
// flags, and an optional on-disk file path -- into a sorted, deduplicated
// list of canonical node names. An empty return means no roots were
// requested through this trio.
func ResolveRoots(nodes []types.Node, csv string, modules []string, filePath string) ([]string, error) {
	set := make(map[string]bool)
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			set[part] = true
		}
	}
	for _, m := range modules {
		m = strings.TrimSpace(m)
		if m != "" {
			set[m] = true
		}
	}

	if filePath != "" {
		name, ok := nodeNameForPath(nodes, filePath)
		if !ok {
			return nil, &types.ExitError{Code: 2, Message: fmt.Sprintf("root file does not correspond to any discovered node: %s", filePath)}
		}
		set[name] = true
	}

	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// nodeNameForPath finds the node whose origin on disk is path. A module or
// script matches its own file path (a package init module: its __init__.py
// path, not the directory). A NamespacePackage, whose origin is its
// directory, matches either that directory or the __init__.py inside it.
func nodeNameForPath(nodes []types.Node, path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	for _, n := range nodes {
		if n.Origin == abs {
			return n.Name, true
		}
		if n.Kind == types.KindNamespacePackage && filepath.Join(n.Origin, "__init__.py") == abs {
			return n.Name, true
		}
	}
	return "", false
}
