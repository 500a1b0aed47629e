// ABOUTME: TemplateEngine loads embedded HTML templates and renders them with Go's html/template.
// ABOUTME: Each page is parsed together with layout.html so the root layout wraps every page.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/allardvh/avh/site"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	pageHome     = "home.html"
	pageNotFound = "not_found.html"
)

// PageData holds all data passed to templates for rendering.
type PageData struct {
	Title    string
	Site     *site.Site
	Monogram template.HTML
	Bio      template.HTML
	Updated  string // display date, empty when the site has no updated date
}

// TemplateEngine loads and renders embedded HTML templates.
type TemplateEngine struct {
	templates map[string]*template.Template
}

// NewTemplateEngine parses all embedded templates and returns a ready-to-use engine.
func NewTemplateEngine() (*TemplateEngine, error) {
	pages := []string{
		pageHome,
		pageNotFound,
	}

	engine := &TemplateEngine{
		templates: make(map[string]*template.Template),
	}

	for _, page := range pages {
		t, err := template.New("layout.html").ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		engine.templates[page] = t
	}

	return engine, nil
}

// RenderTo executes the named page wrapped in the layout and writes the result to w.
func (e *TemplateEngine) RenderTo(w io.Writer, name string, data any) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return t.ExecuteTemplate(w, "layout.html", data)
}
