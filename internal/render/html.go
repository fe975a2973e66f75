package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/pyimports/pyimports/pkg/version"
)

//go:embed templates/report.html templates/styles.css
var htmlFS embed.FS

// htmlNodeRow is one row of the node table in the rendered report.
type htmlNodeRow struct {
	ID          string
	Type        string
	Parent      string
	IsOrphan    bool
	Highlighted bool
}

// htmlEdgeRow is one row of the edge table in the rendered report.
type htmlEdgeRow struct {
	Source string
	Target string
}

// htmlDocData is the data passed to templates/report.html.
type htmlDocData struct {
	Title       string
	GeneratedAt string
	Version     string
	Nodes       []htmlNodeRow
	Edges       []htmlEdgeRow
	PayloadJSON string // escaped by html/template for its JS string context
	CSS         template.CSS
}

// HTML renders payload as a self-contained HTML report: a sortable-by-eye
// table of nodes and edges plus the raw JSON payload embedded in a <script>
// tag for any client-side tooling that wants it. title labels the report,
// generatedAt is a caller-supplied RFC3339-ish timestamp string (the
// renderer does not read the clock itself). CSS and markup are bundled at
// compile time via go:embed; there is no runtime template lookup.
func HTML(payload ViewerPayload, title string, generatedAt string) (string, error) {
	tmpl, err := template.New("report.html").ParseFS(htmlFS, "templates/report.html")
	if err != nil {
		return "", fmt.Errorf("parse report template: %w", err)
	}

	css, err := htmlFS.ReadFile("templates/styles.css")
	if err != nil {
		return "", fmt.Errorf("read report stylesheet: %w", err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal viewer payload: %w", err)
	}

	data := htmlDocData{
		Title:       title,
		GeneratedAt: generatedAt,
		Version:     version.Version,
		Nodes:       htmlNodeRows(payload),
		Edges:       htmlEdgeRows(payload),
		PayloadJSON: string(raw),
		CSS:         template.CSS(css),
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("execute report template: %w", err)
	}
	return b.String(), nil
}

func htmlNodeRows(payload ViewerPayload) []htmlNodeRow {
	rows := make([]htmlNodeRow, 0, len(payload.Nodes))
	for _, n := range payload.Nodes {
		rows = append(rows, htmlNodeRow{
			ID:          n.ID,
			Type:        n.Type,
			Parent:      n.Parent,
			IsOrphan:    n.IsOrphan,
			Highlighted: n.Highlighted,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func htmlEdgeRows(payload ViewerPayload) []htmlEdgeRow {
	rows := make([]htmlEdgeRow, 0, len(payload.Edges))
	for _, e := range payload.Edges {
		rows = append(rows, htmlEdgeRow{Source: e.Source, Target: e.Target})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Source != rows[j].Source {
			return rows[i].Source < rows[j].Source
		}
		return rows[i].Target < rows[j].Target
	})
	return rows
}
