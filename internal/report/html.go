package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/flowlens/flowlens/internal/analyzer"
	"github.com/flowlens/flowlens/internal/diagrams"
)

// pageTemplate wraps the rendered report body in a minimal standalone page.
// Mermaid is loaded from a CDN so the flowchart renders in place.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
  <style>
    body { font-family: -apple-system, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
    pre { background: #f6f8fa; padding: 1rem; border-radius: 6px; overflow-x: auto; }
    table { border-collapse: collapse; }
    th, td { border: 1px solid #d1d9e0; padding: 0.4rem 0.8rem; }
  </style>
</head>
<body>
{{.Header}}
{{if .Flowchart}}<h2>Flowchart</h2>
<div class="mermaid">
{{.Flowchart}}
</div>
{{end}}{{.Steps}}
<script>mermaid.initialize({ startOnLoad: true });</script>
</body>
</html>
`

// HTML renders the report to a standalone HTML page. The flowchart is
// emitted as a native mermaid block and the rest of the document goes
// through goldmark.
func HTML(result *analyzer.AnalysisResult) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var headerMD, stepsMD strings.Builder
	writeHeader(&headerMD, result)
	writeSteps(&stepsMD, result)

	header, err := convert(md, headerMD.String())
	if err != nil {
		return "", err
	}
	steps, err := convert(md, stepsMD.String())
	if err != nil {
		return "", err
	}

	var flowchart string
	if len(result.Nodes) > 0 {
		flowchart = diagrams.Flowchart(result)
	}

	tmpl, err := template.New("report").Parse(pageTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}

	var page bytes.Buffer
	err = tmpl.Execute(&page, struct {
		Title     string
		Header    template.HTML
		Flowchart string
		Steps     template.HTML
	}{
		Title:     "Flow Report: " + result.FileName,
		Header:    template.HTML(header),
		Flowchart: flowchart,
		Steps:     template.HTML(steps),
	})
	if err != nil {
		return "", fmt.Errorf("executing report template: %w", err)
	}

	return page.String(), nil
}

func convert(md goldmark.Markdown, source string) (string, error) {
	var out bytes.Buffer
	if err := md.Convert([]byte(source), &out); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out.String(), nil
}
