package discovery

import (
	"bufio"
	"os"
	"strings"
)

// namespaceMarkers are the legacy namespace-package idioms: a
// pkgutil/pkg_resources call in __init__.py that declares the package as a
// namespace, including the __import__('pkg_resources').declare_namespace
// form. Detection is heuristic on source text and does not attempt to
// catch aliased-import variants of these calls.
var namespaceMarkers = []string{
	"pkgutil.extend_path",
	"pkg_resources.declare_namespace",
	"__import__('pkg_resources').declare_namespace",
	`__import__("pkg_resources").declare_namespace`,
}

// maxNamespaceInitLines bounds how many non-blank lines an __init__.py can
// have and still be considered "dominated by" a namespace declaration.
const maxNamespaceInitLines = 5

// isLegacyNamespaceInit reports whether the __init__.py at path is dominated
// by a pkgutil.extend_path/pkg_resources.declare_namespace call.
func isLegacyNamespaceInit(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	hasMarker := false
	nonBlank := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		nonBlank++
		for _, marker := range namespaceMarkers {
			if strings.Contains(line, marker) {
				hasMarker = true
			}
		}
	}

	return hasMarker && nonBlank <= maxNamespaceInitLines
}
