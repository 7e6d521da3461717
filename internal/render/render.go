// Package render bridges Echo's renderer contract to html/template.
// Page markup itself is not part of this service's core; handlers only
// hand over named payloads.
package render

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// Renderer implements echo.Renderer over a parsed template set.
type Renderer struct {
	templates *template.Template
}

// New parses every .html template under dir.
func New(dir string) (*Renderer, error) {
	templates, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render executes the named template with the given data.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
