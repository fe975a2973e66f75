// Package pipeline orchestrates the full analysis: detect the project
// layout, enumerate modules and scripts, extract imports, resolve them into
// edges, build the dependency graph, apply the requested transforms, and
// serialize the result. Every stage is a pure function over its input except
// file reads, which are recovered locally on failure.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pyimports/pyimports/internal/discovery"
	"github.com/pyimports/pyimports/internal/graph"
	"github.com/pyimports/pyimports/internal/layout"
	"github.com/pyimports/pyimports/internal/logging"
	"github.com/pyimports/pyimports/internal/pyast"
	"github.com/pyimports/pyimports/internal/render"
	"github.com/pyimports/pyimports/internal/resolver"
	"github.com/pyimports/pyimports/pkg/types"
)

// Options carries every CLI-facing input the pipeline needs. MaxRank is nil
// for an unbounded query; a non-nil negative value is BadInput.
type Options struct {
	SourceRoot        string
	ExcludeScripts    []string
	IncludeOrphans    bool
	IncludeNamespaces bool

	DownstreamCSV     string
	DownstreamModules []string
	DownstreamFile    string

	UpstreamCSV     string
	UpstreamModules []string
	UpstreamFile    string

	MaxRank *int
	ShowAll bool
	Format  string // "dot", "mermaid", "cytoscape", "list", "html"
}

// Result is the pipeline's final rendered output, ready to print.
type Result struct {
	Output string
}

// Pipeline holds the collaborators shared across a single run.
type Pipeline struct {
	logger     logging.Logger
	onProgress ProgressFunc
}

// New creates a Pipeline. A nil logger discards warnings; a nil onProgress
// is a no-op.
func New(logger logging.Logger, onProgress ProgressFunc) *Pipeline {
	if logger == nil {
		logger = logging.Discard{}
	}
	if onProgress == nil {
		onProgress = noopProgress
	}
	return &Pipeline{logger: logger, onProgress: onProgress}
}

var validFormats = map[string]bool{
	"dot":       true,
	"mermaid":   true,
	"cytoscape": true,
	"list":      true,
	"html":      true,
}

// Run executes the full pipeline against projectRoot and renders the
// requested format.
func (p *Pipeline) Run(projectRoot string, opts Options) (*Result, error) {
	if opts.MaxRank != nil && *opts.MaxRank < 0 {
		return nil, &types.ExitError{Code: 2, Message: fmt.Sprintf("max-rank must be >= 0, got %d", *opts.MaxRank)}
	}
	if !validFormats[opts.Format] {
		return nil, &types.ExitError{Code: 2, Message: fmt.Sprintf("unknown format %q", opts.Format)}
	}

	p.onProgress("layout", "detecting project layout")
	l, err := layout.Detect(projectRoot, opts.SourceRoot)
	if err != nil {
		return nil, err
	}

	p.onProgress("discover", "enumerating modules and scripts")
	nodes, err := discovery.NewEnumerator(p.logger, opts.ExcludeScripts).Enumerate(l)
	if err != nil {
		return nil, err
	}

	p.onProgress("extract", "extracting imports")
	imports, err := p.extractImports(nodes)
	if err != nil {
		return nil, err
	}

	p.onProgress("resolve", "resolving imports to edges")
	edges := resolver.ResolveAll(resolver.New(nodes), imports)

	p.onProgress("graph", "building dependency graph")
	g, err := graph.New(nodes, edges)
	if err != nil {
		return nil, &types.ExitError{Code: 1, Message: err.Error()}
	}

	downstreamRoots, err := ResolveRoots(nodes, opts.DownstreamCSV, opts.DownstreamModules, opts.DownstreamFile)
	if err != nil {
		return nil, err
	}
	upstreamRoots, err := ResolveRoots(nodes, opts.UpstreamCSV, opts.UpstreamModules, opts.UpstreamFile)
	if err != nil {
		return nil, err
	}
	hasReachability := len(downstreamRoots) > 0 || len(upstreamRoots) > 0

	if opts.Format == "list" {
		if !hasReachability {
			return nil, &types.ExitError{Code: 2, Message: "list format requires --downstream or --upstream"}
		}
		if opts.ShowAll {
			return nil, &types.ExitError{Code: 2, Message: "list format cannot be combined with --show-all"}
		}
	}

	// Transform order follows namespace elision, then orphan filtering, then
	// reachability and subgraph/highlight restriction -- reachability is
	// always computed against the already-transformed view.
	p.onProgress("transform", "applying graph transforms")
	view := g
	if !opts.IncludeNamespaces {
		view, err = graph.ElideNamespaces(view)
		if err != nil {
			return nil, &types.ExitError{Code: 1, Message: err.Error()}
		}
	}
	if !opts.IncludeOrphans {
		view, err = graph.FilterOrphans(view)
		if err != nil {
			return nil, &types.ExitError{Code: 1, Message: err.Error()}
		}
	}

	maxDist := graph.Unbounded
	if opts.MaxRank != nil {
		maxDist = *opts.MaxRank
	}

	var downstreamDist, upstreamDist map[string]int
	if len(downstreamRoots) > 0 {
		downstreamDist, err = view.Downstream(downstreamRoots, maxDist)
		if err != nil {
			return nil, err
		}
	}
	if len(upstreamRoots) > 0 {
		upstreamDist, err = view.Upstream(upstreamRoots, maxDist)
		if err != nil {
			return nil, err
		}
	}

	finalView := view
	var highlighted map[string]bool
	if hasReachability {
		effective := effectiveRootSet(downstreamDist, upstreamDist)
		if opts.ShowAll {
			highlighted = make(map[string]bool, len(effective))
			for _, name := range effective {
				highlighted[name] = true
			}
		} else {
			finalView, err = view.Induced(effective)
			if err != nil {
				return nil, &types.ExitError{Code: 1, Message: err.Error()}
			}
		}
	}

	p.onProgress("render", "serializing output")
	output, err := p.render(finalView, opts, highlighted, projectRoot)
	if err != nil {
		return nil, err
	}
	return &Result{Output: output}, nil
}

// effectiveRootSet returns the node names a subgraph/highlight pass should
// restrict to: the intersection when both directions were requested, or
// whichever single set was requested.
func effectiveRootSet(downstream, upstream map[string]int) []string {
	switch {
	case downstream != nil && upstream != nil:
		return graph.Intersect(downstream, upstream)
	case downstream != nil:
		return graph.Keys(downstream)
	default:
		return graph.Keys(upstream)
	}
}

// extractImports reads and parses every Module and Script node's source,
// collecting its raw import records keyed by canonical name. A file that
// fails to read or parse is logged and skipped -- it contributes no edges.
// NamespacePackage nodes have no single source file and are skipped.
func (p *Pipeline) extractImports(nodes []types.Node) (map[string][]pyast.RawImport, error) {
	provider, err := pyast.NewTreeSitterProvider()
	if err != nil {
		return nil, &types.ExitError{Code: 1, Message: fmt.Sprintf("initialize python parser: %v", err)}
	}
	defer provider.Close()

	imports := make(map[string][]pyast.RawImport, len(nodes))
	for _, n := range nodes {
		if n.Kind == types.KindNamespacePackage {
			continue
		}
		source, err := os.ReadFile(n.Origin)
		if err != nil {
			p.logger.Warnf("skipping %s: %v", n.Origin, err)
			continue
		}
		raw, err := pyast.Extract(provider, n.Origin, source)
		if err != nil {
			p.logger.Warnf("skipping %s: %v", n.Origin, err)
			continue
		}
		imports[n.Name] = raw
	}
	return imports, nil
}

// render dispatches to the serializer matching opts.Format.
func (p *Pipeline) render(g *graph.Graph, opts Options, highlighted map[string]bool, projectRoot string) (string, error) {
	switch opts.Format {
	case "dot":
		return render.DOT(g, highlighted), nil
	case "mermaid":
		return render.Mermaid(g, opts.IncludeNamespaces, highlighted), nil
	case "list":
		return render.List(namesOf(g)), nil
	case "cytoscape":
		payload := p.viewerPayload(g, opts, highlighted)
		data, err := json.Marshal(payload)
		if err != nil {
			return "", &types.ExitError{Code: 1, Message: fmt.Sprintf("marshal viewer payload: %v", err)}
		}
		return string(data), nil
	case "html":
		payload := p.viewerPayload(g, opts, highlighted)
		out, err := render.HTML(payload, filepath.Base(projectRoot), time.Now().Format("2006-01-02 15:04:05"))
		if err != nil {
			return "", &types.ExitError{Code: 1, Message: fmt.Sprintf("render html report: %v", err)}
		}
		return out, nil
	default:
		return "", &types.ExitError{Code: 2, Message: fmt.Sprintf("unknown format %q", opts.Format)}
	}
}

// viewerPayload builds the structured node/edge payload shared by the
// cytoscape and html formats.
func (p *Pipeline) viewerPayload(g *graph.Graph, opts Options, highlighted map[string]bool) render.ViewerPayload {
	cfg := types.ViewerConfig{
		IncludeOrphans:    opts.IncludeOrphans,
		IncludeNamespaces: opts.IncludeNamespaces,
	}
	if len(highlighted) > 0 {
		names := make([]string, 0, len(highlighted))
		for name := range highlighted {
			names = append(names, name)
		}
		sort.Strings(names)
		cfg.HighlightedModules = names
	}
	return render.Viewer(g, cfg, highlighted)
}

func namesOf(g *graph.Graph) []string {
	nodes := g.Nodes()
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	return names
}
