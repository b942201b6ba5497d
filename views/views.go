package views

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

type Views struct {
	templates *template.Template
}

func New() *Views {
	return &Views{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl")),
	}
}

func (v *Views) Render(w io.Writer, name string, data any) error {
	return v.templates.ExecuteTemplate(w, name, data)
}
