package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeProject materializes a small Python project: a package "pkg" with two
// modules and a cross-import, a namespace package "pkg.sub" with one module,
// and scripts/run.py importing into the package. The project has a flat
// layout, so scripts/ is walked as part of the source root and run.py is
// discovered as the module "scripts.run" rather than as a Script.
func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"pkg/__init__.py": "",
		"pkg/a.py":        "import pkg.b\n",
		"pkg/b.py":        "",
		"pkg/sub/c.py":    "from pkg import a\n",
		"scripts/run.py":  "import pkg.a\n",
	}
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func TestPipeline_DOT_ElidesNamespacesByDefault(t *testing.T) {
	root := writeProject(t)
	p := New(nil, nil)

	result, err := p.Run(root, Options{Format: "dot"})
	require.NoError(t, err)
	require.Contains(t, result.Output, `"pkg.a" -> "pkg.b"`)
	require.Contains(t, result.Output, `"scripts.run" -> "pkg.a"`)
	require.NotContains(t, result.Output, "pkg.sub\"")
}

func TestPipeline_List_RequiresReachabilityRoot(t *testing.T) {
	root := writeProject(t)
	p := New(nil, nil)

	_, err := p.Run(root, Options{Format: "list"})
	require.Error(t, err)
}

func TestPipeline_List_DownstreamOfB(t *testing.T) {
	root := writeProject(t)
	p := New(nil, nil)

	result, err := p.Run(root, Options{Format: "list", DownstreamCSV: "pkg.b"})
	require.NoError(t, err)
	require.Equal(t, "pkg.a\npkg.b\npkg.sub.c\nscripts.run\n", result.Output)
}

func TestPipeline_List_RejectsShowAll(t *testing.T) {
	root := writeProject(t)
	p := New(nil, nil)

	_, err := p.Run(root, Options{Format: "list", DownstreamCSV: "pkg.b", ShowAll: true})
	require.Error(t, err)
}

func TestPipeline_Mermaid_IncludeNamespacesNestsSubgraph(t *testing.T) {
	root := writeProject(t)
	p := New(nil, nil)

	result, err := p.Run(root, Options{Format: "mermaid", IncludeNamespaces: true})
	require.NoError(t, err)
	require.Contains(t, result.Output, "subgraph pkg_sub")
}

func TestPipeline_HTML_ContainsTitleAndNodeTable(t *testing.T) {
	root := writeProject(t)
	p := New(nil, nil)

	result, err := p.Run(root, Options{Format: "html"})
	require.NoError(t, err)
	require.Contains(t, result.Output, filepath.Base(root))
	require.Contains(t, result.Output, "pkg.a")
	require.Contains(t, result.Output, "JSON.parse(")
}

func TestPipeline_Cytoscape_ValidJSONWithConfig(t *testing.T) {
	root := writeProject(t)
	p := New(nil, nil)

	result, err := p.Run(root, Options{Format: "cytoscape"})
	require.NoError(t, err)
	require.Contains(t, result.Output, `"include_orphans":false`)
	require.Contains(t, result.Output, `"nodes"`)
}

func TestPipeline_NegativeMaxRankIsBadInput(t *testing.T) {
	root := writeProject(t)
	p := New(nil, nil)
	negative := -1

	_, err := p.Run(root, Options{Format: "dot", MaxRank: &negative})
	require.Error(t, err)
}

func TestPipeline_UnknownRootIsBadInput(t *testing.T) {
	root := writeProject(t)
	p := New(nil, nil)

	_, err := p.Run(root, Options{Format: "dot", DownstreamCSV: "does.not.exist"})
	require.Error(t, err)
}

func TestPipeline_ShowAllHighlightsWithoutRestricting(t *testing.T) {
	root := writeProject(t)
	p := New(nil, nil)

	result, err := p.Run(root, Options{Format: "dot", DownstreamCSV: "pkg.b", ShowAll: true})
	require.NoError(t, err)
	require.Contains(t, result.Output, "fillcolor=lightblue")
	require.Contains(t, result.Output, `"pkg.a"`)
	require.Contains(t, result.Output, `"pkg.b"`)
}
