// Package templates renders the HTML fragments streamed to the asset panel.
package templates

import (
	"bytes"
	"html/template"
	"io/fs"
	"strings"
	"sync"
)

// FragmentGlob matches fragment templates inside a web filesystem.
const FragmentGlob = "templates/fragments/*.html"

var funcMap = template.FuncMap{
	// dict builds a map from key/value pairs for nested templates
	"dict": func(values ...any) map[string]any {
		if len(values)%2 != 0 {
			return nil
		}
		m := make(map[string]any, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				continue
			}
			m[key] = values[i+1]
		}
		return m
	},
	"lines": func(s string) []string {
		if s == "" {
			return nil
		}
		return strings.Split(s, "\n")
	},
}

// Renderer manages HTML fragment templates.
type Renderer struct {
	fsys      fs.FS
	templates *template.Template
	mu        sync.RWMutex
}

// New parses every fragment in fsys.
func New(fsys fs.FS) (*Renderer, error) {
	tmpl, err := parse(fsys)
	if err != nil {
		return nil, err
	}
	return &Renderer{fsys: fsys, templates: tmpl}, nil
}

func parse(fsys fs.FS) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(fsys, FragmentGlob)
}

// Render renders a named template to a string.
func (r *Renderer) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToBuffer(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToBuffer renders a named template to a buffer.
func (r *Renderer) RenderToBuffer(buf *bytes.Buffer, name string, data any) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.templates.ExecuteTemplate(buf, name, data)
}

// Reload re-parses the fragments, for editing templates on disk.
func (r *Renderer) Reload() error {
	tmpl, err := parse(r.fsys)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.templates = tmpl
	r.mu.Unlock()

	return nil
}
