package emailService

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer executes the embedded email templates. Execution is strict: a
// variable referenced by the template but absent from the data is an error.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	return newRendererFS(templatesFS, "templates/*.html")
}

func newRendererFS(fsys fs.FS, pattern string) (*Renderer, error) {
	tmpl, err := template.New("").Option("missingkey=error").ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Render(templateFileName string, data map[string]interface{}) (string, error) {
	tmpl := r.templates.Lookup(templateFileName)
	if tmpl == nil {
		return "", fmt.Errorf("template %q does not exist", templateFileName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("error executing template: %w", err)
	}
	return body.String(), nil
}
