// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"html/template"
	"io"
)

// TemplateText defines the "citation" template. Other templates that embed
// the citation parse this text alongside their own.
const TemplateText = `{{define "citation"}}<div class="citation">
{{- with .ResourceType}}
<p class="resource-type">{{.Label}}</p>
{{- end}}
{{- with .Title}}
<h2 class="title">{{.Text}}</h2>
{{- end}}
{{- with .Byline}}
<p class="byline">{{.Author}} <span>•</span> {{.Date}}</p>
{{- end}}
{{- with .Journal}}
<p class="journal">
{{- range $i, $p := .Parts}}{{if $i}} {{end}}
{{- if $p.Italic}}<i class="{{$p.Kind}}">{{$p.Text}}</i>{{else}}<span class="{{$p.Kind}}">{{$p.Text}}</span>{{end}}
{{- end -}}
</p>
{{- end}}
{{- with .ISSN}}
<dl class="citation-info"><dt>ISSN:</dt><dd>{{.Value}}</dd></dl>
{{- end}}
</div>{{end}}`

var tmpl = template.Must(template.New("citation").Parse(TemplateText))

// Render writes the HTML fragment for v.
func Render(w io.Writer, v View) error {
	if err := tmpl.ExecuteTemplate(w, "citation", v); err != nil {
		return fmt.Errorf("rendering citation: %w", err)
	}
	return nil
}

// FormatText writes a plain-text rendering of v, one fragment per line.
func FormatText(v View, w io.Writer) {
	if v.ResourceType != nil {
		fmt.Fprintf(w, "[%s]\n", v.ResourceType.Label)
	}
	if v.Title != nil {
		fmt.Fprintln(w, v.Title.Text)
	}
	if v.Byline != nil {
		fmt.Fprintf(w, "%s • %s\n", v.Byline.Author, v.Byline.Date)
	}
	if v.Journal != nil {
		fmt.Fprintln(w, v.Journal.Text())
	}
	if v.ISSN != nil {
		fmt.Fprintf(w, "ISSN: %s\n", v.ISSN.Value)
	}
	if v.Empty() {
		fmt.Fprintln(w, "No citation details available.")
	}
}
