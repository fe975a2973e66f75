// Package layout determines the source root and script roots for a Python
// project rooted at a user-supplied path.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pyimports/pyimports/pkg/types"
)

// defaultExcludeDirs lists directory names never descended into, shared
// with internal/discovery.
var defaultExcludeDirs = map[string]bool{
	"venv":            true,
	".venv":           true,
	"__pycache__":     true,
	".pytest_cache":   true,
	".mypy_cache":     true,
	".tox":            true,
	".git":            true,
	"eggs":            true,
	"build":           true,
	"dist":            true,
	"node_modules":    true,
}

// IsExcludedDirName reports whether name matches a default exclusion,
// including the "venv*" and "*.egg-info"/"*.egg" glob-shaped defaults.
// Shared with internal/discovery.
func IsExcludedDirName(name string) bool {
	if defaultExcludeDirs[name] {
		return true
	}
	if strings.HasPrefix(name, "venv") {
		return true
	}
	if strings.HasSuffix(name, ".egg-info") || strings.HasSuffix(name, ".egg") {
		return true
	}
	return false
}

// Layout holds the resolved source root and script roots for a project.
type Layout struct {
	ProjectRoot string
	SourceRoot  string
	ScriptRoots []string
}

// Detect resolves a project's layout using a stop-at-first-success order:
// --source-root override, then pyproject.toml's [tool.setuptools]
// package-dir key, then src/, then lib/python/, else flat.
func Detect(projectRoot string, sourceRootOverride string) (*Layout, error) {
	info, err := os.Stat(projectRoot)
	if err != nil || !info.IsDir() {
		return nil, &types.ExitError{Code: 2, Message: fmt.Sprintf("%s is not a directory", projectRoot)}
	}
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, &types.ExitError{Code: 2, Message: fmt.Sprintf("cannot resolve %s: %v", projectRoot, err)}
	}

	var sourceRoot string

	switch {
	case sourceRootOverride != "":
		sourceRoot = sourceRootOverride
		if !filepath.IsAbs(sourceRoot) {
			sourceRoot = filepath.Join(absRoot, sourceRoot)
		}
	default:
		if dir, ok := packageDirFromMetadata(absRoot); ok {
			sourceRoot = filepath.Join(absRoot, dir)
		} else if qualifies(filepath.Join(absRoot, "src")) {
			sourceRoot = filepath.Join(absRoot, "src")
		} else if qualifies(filepath.Join(absRoot, "lib", "python")) {
			sourceRoot = filepath.Join(absRoot, "lib", "python")
		} else {
			sourceRoot = absRoot
		}
	}

	scriptRoots := siblingScriptRoots(absRoot, sourceRoot)

	return &Layout{
		ProjectRoot: absRoot,
		SourceRoot:  sourceRoot,
		ScriptRoots: scriptRoots,
	}, nil
}

// qualifies reports whether dir contains at least one Python package
// (a directory with an __init__.py, or a direct child .py file).
func qualifies(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if IsExcludedDirName(name) || strings.HasPrefix(name, ".") {
				continue
			}
			if _, err := os.Stat(filepath.Join(dir, name, "__init__.py")); err == nil {
				return true
			}
			continue
		}
		if strings.HasSuffix(name, ".py") {
			return true
		}
	}
	return false
}

// siblingScriptRoots returns every sibling of sourceRoot under projectRoot
// that is not itself the source root and not excluded.
// When sourceRoot equals projectRoot (flat layout), there are no siblings
// to scan separately -- the source root scan already covers everything.
func siblingScriptRoots(projectRoot, sourceRoot string) []string {
	if sourceRoot == projectRoot {
		return nil
	}

	entries, err := os.ReadDir(projectRoot)
	if err != nil {
		return nil
	}

	var roots []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if IsExcludedDirName(name) || strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(projectRoot, name)
		if full == sourceRoot {
			continue
		}
		roots = append(roots, full)
	}
	return roots
}
