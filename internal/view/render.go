// Package view turns the session state into HTML.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates
var templatesFS embed.FS

// Renderer renders pages in one locale
type Renderer struct {
	tmpl   *template.Template
	locale *Locale
	css    []byte
}

// NewRenderer parses the embedded templates for loc.
func NewRenderer(loc *Locale) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"t": loc.T,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	css, err := templatesFS.ReadFile("templates/style.css")
	if err != nil {
		return nil, fmt.Errorf("failed to read stylesheet: %w", err)
	}

	return &Renderer{tmpl: tmpl, locale: loc, css: css}, nil
}

// Locale returns the renderer's locale.
func (r *Renderer) Locale() *Locale {
	return r.locale
}

// Stylesheet returns the page CSS.
func (r *Renderer) Stylesheet() []byte {
	return r.css
}

// Render writes the page. Output is buffered so a template error never
// leaves a half-written page behind.
func (r *Renderer) Render(w io.Writer, p Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "index", p); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
