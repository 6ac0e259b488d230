package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

// Page names.
const (
	// GroupsPage lists directory results and the group actions.
	GroupsPage = "Groups"
	// ErrorPage shows a failure message.
	ErrorPage = "Error"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFiles = map[string]string{
	GroupsPage: "templates/groups.html",
	ErrorPage:  "templates/error.html",
}

// Page is the data passed to every page template.
type Page struct {
	Title    string
	UserName string
	// Data is the page specific model, e.g. the results of a group operation.
	Data any
}

// Renderer executes the page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates. Each page is parsed together with the
// shared layout.
func New() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for name, file := range pageFiles {
		tmpl, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page with status. Output is buffered so a template
// failure never produces a partial page.
func (v *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return fmt.Errorf("failed to render %s page: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	// Write errors mean the client went away.
	_, _ = buf.WriteTo(w)
	return nil
}
