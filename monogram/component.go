// ABOUTME: Adapts the monogram renderer to templ.Component for page composition.
// ABOUTME: Validation happens when the component is built, not when it renders.
package monogram

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

// Component returns a templ.Component that writes the monogram markup. An
// invalid cfg is reported here so callers fail before rendering a page.
func Component(cfg Config) (templ.Component, error) {
	markup, err := Render(cfg)
	if err != nil {
		return nil, err
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	}), nil
}

// HTML renders cfg for embedding in an html/template page.
func HTML(ctx context.Context, cfg Config) (template.HTML, error) {
	c, err := Component(cfg)
	if err != nil {
		return "", err
	}
	return templ.ToGoHTML(ctx, c)
}
