// Package render produces the HTML body of the daily digest email from an
// assembled bundle.
package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"plannerx/internal/usecase/digest"
)

//go:embed templates/daily_digest.html.tmpl
var digestTemplate string

// HTMLRenderer renders digest bundles with the embedded email template.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded template. The template ships with
// the binary, so a parse failure is a programming error.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("daily_digest").Funcs(template.FuncMap{
		"clock": func(v any) string { return formatTime(v, "15:04") },
		"day":   func(v any) string { return formatTime(v, "02.01.2006") },
		"joinNames": func(names []string) string {
			return strings.Join(names, ", ")
		},
	}).Parse(digestTemplate)
	if err != nil {
		return nil, fmt.Errorf("NewHTMLRenderer: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// RenderDigest implements digest.Renderer.
func (r *HTMLRenderer) RenderDigest(bundle *digest.Bundle) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, bundle); err != nil {
		return "", fmt.Errorf("RenderDigest: %w", err)
	}
	return b.String(), nil
}

// formatTime renders both time.Time values and the optional *time.Time
// fields the entities carry; nil comes out empty.
func formatTime(v any, layout string) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format(layout)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(layout)
	default:
		return ""
	}
}
