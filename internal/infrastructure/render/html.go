package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	reportapp "github.com/teakhata/backend/internal/application/report"
	"github.com/teakhata/backend/internal/domain/report"
)

// Ensure HTMLRenderer implements the Renderer interface
var _ reportapp.Renderer = (*HTMLRenderer)(nil)

// documentTemplate is the self-contained report layout shared by the
// HTML export and the Chrome PDF path. Styles are inline so the file
// looks the same opened from disk, attached to mail, or fed to the
// print pipeline.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, "Noto Sans", sans-serif; margin: 24px; color: #1a1a1a; }
  header h1 { margin: 0 0 2px; font-size: 22px; }
  header .business { font-size: 14px; color: #444; }
  header .stamp { font-size: 12px; color: #888; margin-bottom: 18px; }
  section { margin-bottom: 26px; page-break-inside: avoid; }
  h2 { font-size: 15px; border-bottom: 2px solid #2c5f8a; padding-bottom: 3px; margin: 0 0 6px; }
  .meta { font-size: 12px; color: #555; margin: 2px 0; }
  table { border-collapse: collapse; width: 100%; margin-top: 6px; font-size: 12px; }
  th { background: #eef2f7; text-align: left; padding: 5px 8px; border: 1px solid #c9d4e0; }
  td { padding: 4px 8px; border: 1px solid #d8dee6; }
  td.num { text-align: right; white-space: nowrap; }
  tr:nth-child(even) td { background: #fafbfc; }
</style>
</head>
<body>
<header>
  <h1>{{title .Title}}</h1>
  <div class="business">{{.BusinessName}}</div>
  <div class="stamp">Generated {{stamp .GeneratedAt}}</div>
</header>
{{range .Sections}}<section>
  <h2>{{.Title}}</h2>
  {{range .Meta}}<p class="meta">{{.}}</p>
  {{end}}{{if .Headers}}<table>
    <thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{range .Rows}}<tr>{{range .}}<td{{if figure .}} class="num"{{end}}>{{.}}</td>{{end}}</tr>
    {{end}}</tbody>
  </table>
  {{end}}</section>
{{end}}</body>
</html>
`

// HTMLRenderer executes the document template into a standalone HTML
// page.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded document template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	caser := cases.Title(language.English)
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"title": func(s string) string {
			return caser.String(s)
		},
		"stamp": func(t time.Time) string {
			return t.Format("02 Jan 2006 15:04")
		},
		"figure": isFigure,
	}).Parse(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("html: failed to parse document template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render executes the template with the document.
func (r *HTMLRenderer) Render(_ context.Context, doc *report.Document) (*reportapp.RenderOutput, error) {
	if doc == nil {
		return nil, fmt.Errorf("html: document is nil")
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("html: failed to execute document template: %w", err)
	}

	return &reportapp.RenderOutput{
		Data:        buf.Bytes(),
		ContentType: "text/html; charset=utf-8",
		Extension:   "html",
	}, nil
}
