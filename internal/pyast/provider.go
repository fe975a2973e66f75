// Package pyast wraps tree-sitter's Python grammar behind a small interface
// and turns a parsed syntax tree into the raw import records the resolver
// consumes.
package pyast

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Provider parses Python source into a syntax tree. Implementations are not
// assumed to be safe for concurrent use; callers serialize their own calls.
type Provider interface {
	// Parse parses source and returns the resulting tree. path is the
	// originating file, carried through for diagnostics only -- it plays no
	// role in parsing itself. The caller must call Close on the returned
	// Tree once done with it.
	Parse(path string, source []byte) (*Tree, error)
}

// Tree pairs a parsed syntax tree with the source bytes it was parsed from,
// since tree-sitter nodes only carry byte offsets.
type Tree struct {
	Root    *tree_sitter.Node
	Content []byte

	raw *tree_sitter.Tree
}

// Close releases the underlying tree-sitter tree. Safe to call on a nil Tree.
func (t *Tree) Close() {
	if t == nil || t.raw == nil {
		return
	}
	t.raw.Close()
}

// TreeSitterProvider is a Provider backed by a pooled tree-sitter Python
// parser. Tree-sitter parsers are not thread-safe, so every Parse call is
// serialized behind a mutex; the resulting trees are safe to read
// concurrently afterward.
type TreeSitterProvider struct {
	mu     sync.Mutex
	parser *tree_sitter.Parser
}

// NewTreeSitterProvider creates a Provider configured for Python.
func NewTreeSitterProvider() (*TreeSitterProvider, error) {
	parser := tree_sitter.NewParser()
	lang := tree_sitter.NewLanguage(tree_sitter_python.Language())
	if err := parser.SetLanguage(lang); err != nil {
		parser.Close()
		return nil, fmt.Errorf("set python language: %w", err)
	}
	return &TreeSitterProvider{parser: parser}, nil
}

// Parse implements Provider.
func (p *TreeSitterProvider) Parse(path string, source []byte) (*Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter parse %s: parse returned nil", path)
	}
	return &Tree{Root: tree.RootNode(), Content: source, raw: tree}, nil
}

// Close releases the pooled parser. Must be called when the provider is no
// longer needed.
func (p *TreeSitterProvider) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}
