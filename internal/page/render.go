// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package page

import (
	"fmt"
	"html/template"
	"io"

	"github.com/pdiddy/linkresolver/internal/citation"
)

// TemplateName is the name gin renders the results page under.
const TemplateName = "results.html"

const resultsTemplate = `{{define "results.html"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Header}}</title>
</head>
<body>
<main>
<div class="jumbotron">
<div class="container text-center">
<h1>{{.Header}}</h1>
<p>{{.Note}}</p>
</div>
</div>
{{- if .Loading}}
<div class="loader" aria-label="Loading...">Loading...</div>
{{- end}}
{{- if .Error}}
<div class="i-am-centered error">{{.Error}}</div>
{{- end}}
<div class="container">
<div class="row">
<div class="col-md-8">
<div class="list-group">
<div class="list-group-item flex-column border-0">
{{template "citation" .Citation}}
</div>
{{- range .Links}}
<div class="list-group-item flex-column border-0 link">
<div class="row">
{{- if .Usable}}
<h3><a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.Label}}</a></h3>
{{- else}}
<h3>{{.Label}}</h3>
{{- end}}
<p class="coverage">{{.Coverage}}</p>
</div>
</div>
{{- end}}
{{- if .NoResults}}
<div class="list-group-item flex-column border-0 no-results">
<p>No results found</p>
</div>
{{- end}}
</div>
</div>
<div class="col-md-4">
<aside>
{{- with .Help}}
<div class="ask-librarian">
<h4>{{.Heading}}</h4>
<h5><a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.Text}}</a></h5>
</div>
{{- end}}
</aside>
</div>
</div>
</div>
</main>
</body>
</html>
{{end}}`

var tmpl = Template()

// Template parses the results page together with the citation fragment.
// The returned template is safe to hand to gin.
func Template() *template.Template {
	t := template.Must(template.New(TemplateName).Parse(citation.TemplateText))
	return template.Must(t.Parse(resultsTemplate))
}

// Render writes the full HTML document for v.
func Render(w io.Writer, v View) error {
	if err := tmpl.ExecuteTemplate(w, TemplateName, v); err != nil {
		return fmt.Errorf("rendering results page: %w", err)
	}
	return nil
}
