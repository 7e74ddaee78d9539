// Package render adapts html/template to echo's Renderer interface.
// Page markup is an external collaborator of the core; the embedded
// templates here are deliberately minimal.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the embedded page templates.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates. Parse failures are programmer
// errors and surface at startup.
func New() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name+".html", data)
}
