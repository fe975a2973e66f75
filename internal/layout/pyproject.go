package layout

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// packageDirPattern matches a setuptools package-dir table entry mapping the
// root package ("") to a directory, e.g. `package-dir = {"" = "src"}`.
// This is deliberately not a general TOML parser -- it recognizes exactly
// one well-known key and falls through on anything else.
var packageDirPattern = regexp.MustCompile(`(?:^|[{,]\s*)["']{2}\s*=\s*["']([^"']+)["']`)

var sectionPattern = regexp.MustCompile(`^\[([^\]]+)\]$`)

// packageDirFromMetadata reads pyproject.toml at projectRoot and, if it
// declares a [tool.setuptools] package-dir entry for the root package,
// returns that directory (relative to projectRoot). Absence or malformed
// metadata returns ok=false so the caller falls through to step 3.
func packageDirFromMetadata(projectRoot string) (string, bool) {
	path := filepath.Join(projectRoot, "pyproject.toml")
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	inSection := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			inSection = m[1] == "tool.setuptools"
			continue
		}
		if !inSection {
			continue
		}
		if !strings.HasPrefix(line, "package-dir") {
			continue
		}
		if m := packageDirPattern.FindStringSubmatch(line); m != nil {
			dir := strings.TrimSpace(m[1])
			if dir != "" {
				return filepath.FromSlash(dir), true
			}
		}
		return "", false
	}
	return "", false
}
