// Package discovery walks a project's source root and script roots,
// classifies every file and namespace-package directory, and assigns each a
// canonical dotted name.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/pyimports/pyimports/internal/layout"
	"github.com/pyimports/pyimports/internal/logging"
	"github.com/pyimports/pyimports/pkg/types"
)

// Enumerator walks a Layout and produces the graph's raw node set.
type Enumerator struct {
	logger         logging.Logger
	excludeScripts []string // user-supplied globs, script discovery only
}

// NewEnumerator creates an Enumerator. excludeScripts are glob patterns from
// repeatable --exclude-scripts flags; they extend the default exclusions but
// apply only to script-root discovery.
func NewEnumerator(logger logging.Logger, excludeScripts []string) *Enumerator {
	if logger == nil {
		logger = logging.Discard{}
	}
	return &Enumerator{logger: logger, excludeScripts: excludeScripts}
}

// Enumerate walks l.SourceRoot and every entry of l.ScriptRoots, returning
// every discovered Module, Script, and NamespacePackage node.
func (e *Enumerator) Enumerate(l *layout.Layout) ([]types.Node, error) {
	gi := loadGitignore(l.ProjectRoot)

	byName := make(map[string]types.Node)

	if err := e.walkSourceRoot(l.SourceRoot, gi, byName); err != nil {
		return nil, err
	}
	for _, root := range l.ScriptRoots {
		if err := e.walkScriptRoot(l.ProjectRoot, root, gi, byName); err != nil {
			return nil, err
		}
	}

	assignParents(byName)

	nodes := make([]types.Node, 0, len(byName))
	for _, n := range byName {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	return nodes, nil
}

// loadGitignore compiles a root-level .gitignore if present. Absence is not
// an error -- it simply means no additional exclusions apply.
func loadGitignore(projectRoot string) *ignore.GitIgnore {
	path := filepath.Join(projectRoot, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

// walkSourceRoot classifies every .py file and every package directory
// under sourceRoot.
func (e *Enumerator) walkSourceRoot(sourceRoot string, gi *ignore.GitIgnore, byName map[string]types.Node) error {
	info, err := os.Stat(sourceRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // nothing to discover under a source root that doesn't exist
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(sourceRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			e.logger.Warnf("skipping %s: %v", path, err)
			return nil
		}

		rel, relErr := filepath.Rel(sourceRoot, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if path == sourceRoot {
				return nil
			}
			name := d.Name()
			if layout.IsExcludedDirName(name) || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(rel) {
				return filepath.SkipDir
			}
			e.classifyPackageDir(path, rel, byName)
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if d.Name() == "__init__.py" {
			return nil // represented by its containing package directory
		}

		name := dottedFromRel(strings.TrimSuffix(rel, ".py"))
		byName[name] = types.Node{Name: name, Kind: types.KindModule, Origin: path}
		return nil
	})
}

// classifyPackageDir records dir as a Module (package init) or
// NamespacePackage depending on whether it has an __init__.py, and whether
// that init is a legacy namespace declaration.
func (e *Enumerator) classifyPackageDir(dir, rel string, byName map[string]types.Node) {
	name := dottedFromRel(rel)
	initPath := filepath.Join(dir, "__init__.py")

	if _, err := os.Stat(initPath); err == nil {
		if isLegacyNamespaceInit(initPath) {
			byName[name] = types.Node{Name: name, Kind: types.KindNamespacePackage, Origin: dir}
		} else {
			byName[name] = types.Node{Name: name, Kind: types.KindModule, Origin: initPath}
		}
		return
	}

	if hasPyDescendant(dir) {
		byName[name] = types.Node{Name: name, Kind: types.KindNamespacePackage, Origin: dir}
	}
}

// hasPyDescendant reports whether dir contains any .py file at any depth,
// without descending into excluded directories.
func hasPyDescendant(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || found {
			return nil
		}
		if d.IsDir() {
			if path != dir && (layout.IsExcludedDirName(d.Name()) || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".py") {
			found = true
		}
		return nil
	})
	return found
}

// walkScriptRoot classifies every .py file under a script root. Canonical
// names are dotted paths from the project root, so a script retains its
// directory prefix.
func (e *Enumerator) walkScriptRoot(projectRoot, scriptRoot string, gi *ignore.GitIgnore, byName map[string]types.Node) error {
	info, err := os.Stat(scriptRoot)
	if err != nil || !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(scriptRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			e.logger.Warnf("skipping %s: %v", path, err)
			return nil
		}

		relFromProject, relErr := filepath.Rel(projectRoot, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			name := d.Name()
			if layout.IsExcludedDirName(name) || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if gi != nil && gi.MatchesPath(relFromProject) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}
		if gi != nil && gi.MatchesPath(relFromProject) {
			return nil
		}
		if e.matchesExcludeGlob(d.Name(), relFromProject) {
			return nil
		}

		name := dottedFromRel(strings.TrimSuffix(relFromProject, ".py"))
		byName[name] = types.Node{Name: name, Kind: types.KindScript, Origin: path}
		return nil
	})
}

// matchesExcludeGlob reports whether name or relPath matches any
// user-supplied --exclude-scripts glob.
func (e *Enumerator) matchesExcludeGlob(name, relPath string) bool {
	for _, pattern := range e.excludeScripts {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}

// dottedFromRel converts a slash-separated relative path (no extension)
// into a canonical dotted module name.
func dottedFromRel(rel string) string {
	rel = filepath.ToSlash(rel)
	return strings.ReplaceAll(rel, "/", ".")
}

// assignParents sets Parent on every Module/NamespacePackage node whose
// name contains a dot and whose prefix exists as a node. Scripts never get
// a parent: their dotted name encodes a path prefix, not a package
// relationship.
func assignParents(byName map[string]types.Node) {
	for name, node := range byName {
		if node.Kind == types.KindScript {
			continue
		}
		idx := strings.LastIndex(name, ".")
		if idx < 0 {
			continue
		}
		prefix := name[:idx]
		if _, ok := byName[prefix]; ok {
			node.Parent = prefix
			byName[name] = node
		}
	}
}
