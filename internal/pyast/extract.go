package pyast

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// ImportKind distinguishes a plain "import a.b.c" from a
// "from a.b import c" statement.
type ImportKind int

const (
	// Absolute is a plain "import a.b.c" (or "import a.b.c as alias").
	Absolute ImportKind = iota
	// FromImport is a "from <prefix> import <name>" statement.
	FromImport
)

// RawImport is one raw import record as read off the syntax tree, before
// relative-import resolution. For Absolute, Prefix holds the full dotted
// path and Name is empty. For FromImport, Prefix is the "from" module
// (possibly empty for "from . import x") and Name is one imported symbol,
// or "*" for a wildcard import.
type RawImport struct {
	Kind   ImportKind
	Level  int // number of leading dots on a relative FromImport; 0 otherwise
	Prefix string
	Name   string
	Line   int // 1-based source line, for diagnostics
}

// Extract walks source's syntax tree and returns one RawImport per
// top-level or nested import name. path identifies the file being parsed
// for diagnostics; it has no bearing on the parse itself.
func Extract(provider Provider, path string, source []byte) ([]RawImport, error) {
	tree, err := provider.Parse(path, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var out []RawImport
	walk(tree.Root, func(node *tree_sitter.Node) {
		switch node.Kind() {
		case "import_statement":
			out = append(out, extractImportStatement(node, tree.Content)...)
		case "import_from_statement":
			out = append(out, extractImportFromStatement(node, tree.Content)...)
		}
	})
	return out, nil
}

// walk visits node and every descendant, depth-first.
func walk(node *tree_sitter.Node, fn func(*tree_sitter.Node)) {
	if node == nil {
		return
	}
	fn(node)
	for i := uint(0); i < node.ChildCount(); i++ {
		walk(node.Child(i), fn)
	}
}

// nodeText returns the source text spanned by node.
func nodeText(node *tree_sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

// extractImportStatement handles "import a.b.c", "import a.b.c as x",
// and comma-separated variants of either.
func extractImportStatement(node *tree_sitter.Node, content []byte) []RawImport {
	line := int(node.StartPosition().Row) + 1
	var out []RawImport

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "aliased_import":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				out = append(out, RawImport{Kind: Absolute, Prefix: nodeText(nameNode, content), Line: line})
			}
		case "dotted_name":
			out = append(out, RawImport{Kind: Absolute, Prefix: nodeText(child, content), Line: line})
		}
	}
	return out
}

// extractImportFromStatement handles "from <module> import a, b as c, *",
// including relative variants ("from . import x", "from ..pkg import y").
func extractImportFromStatement(node *tree_sitter.Node, content []byte) []RawImport {
	line := int(node.StartPosition().Row) + 1

	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child != nil && (child.Kind() == "dotted_name" || child.Kind() == "relative_import") {
				moduleNode = child
				break
			}
		}
	}

	level, prefix := 0, ""
	if moduleNode != nil {
		level, prefix = splitRelative(nodeText(moduleNode, content))
	}

	var out []RawImport
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		// Child returns a fresh *Node on every call, so the module node is
		// recognized by its byte span rather than by pointer identity.
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() && child.EndByte() == moduleNode.EndByte() {
			continue
		}
		switch child.Kind() {
		case "wildcard_import":
			out = append(out, RawImport{Kind: FromImport, Level: level, Prefix: prefix, Name: "*", Line: line})
		case "aliased_import":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				out = append(out, RawImport{Kind: FromImport, Level: level, Prefix: prefix, Name: nodeText(nameNode, content), Line: line})
			}
		case "dotted_name":
			out = append(out, RawImport{Kind: FromImport, Level: level, Prefix: prefix, Name: nodeText(child, content), Line: line})
		}
	}
	return out
}

// splitRelative splits a module_name's raw text into its leading-dot count
// and the dotted remainder, e.g. "..pkg.sub" -> (2, "pkg.sub"),
// "..." -> (3, ""), "pkg.sub" -> (0, "pkg.sub").
func splitRelative(text string) (level int, prefix string) {
	i := 0
	for i < len(text) && text[i] == '.' {
		i++
	}
	return i, strings.TrimPrefix(text[i:], ".")
}
