package render

import (
	"sort"
	"strings"
)

// List renders names as one sorted line per name, terminated by a newline.
// Callers are responsible for enforcing that list output is only requested
// for a reachability query, never the raw full graph.
func List(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	var b strings.Builder
	for _, n := range sorted {
		b.WriteString(n)
		b.WriteByte('\n')
	}
	return b.String()
}
