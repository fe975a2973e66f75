// Package types holds domain types shared across pyimports packages:
// the graph data model, CLI-facing config, and the exit-code error type.
package types

import "fmt"

// NodeKind classifies a node in the dependency graph.
type NodeKind int

const (
	// KindModule is a regular source file under the source root, or a package init file.
	KindModule NodeKind = iota
	// KindScript is a source file under a script root.
	KindScript
	// KindNamespacePackage is a package directory without an init file, or a
	// package whose init uses a legacy namespace-extension idiom.
	KindNamespacePackage
	// KindNamespaceGroup is a synthetic container emitted only in a derived
	// view (the viewer payload); it never appears in the raw graph.
	KindNamespaceGroup
)

// String returns the human-readable, lowercase name used in serializer output.
func (k NodeKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindScript:
		return "script"
	case KindNamespacePackage:
		return "namespace"
	case KindNamespaceGroup:
		return "namespace_group"
	default:
		return "unknown"
	}
}

// Node is a single entry in the dependency graph: an internal module,
// script, or namespace package. Name is the canonical dotted identity.
type Node struct {
	Name   string   // canonical dotted name, unique key
	Kind   NodeKind // module, script, namespace package, or (derived-only) namespace group
	Parent string   // dotted name of the structural parent, if any; "" if unset
	Origin string   // absolute path on disk
}

// Edge is a directed "Source imports Target" relationship between two
// resolved internal node names.
type Edge struct {
	Source string
	Target string
}

// ViewerConfig travels alongside a graph so derived views (filters,
// upstream/downstream, namespace elision) can recall the CLI's original
// intent.
type ViewerConfig struct {
	IncludeOrphans     bool
	IncludeNamespaces  bool
	HighlightedModules []string // node names highlighted under --show-all; nil otherwise
}

// ExitError carries the process exit code a CLI failure should produce.
// Code 2 is reserved for BadInput, 1 for everything else (Internal).
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Message
}
