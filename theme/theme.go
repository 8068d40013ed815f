// Package theme owns the template engine used to render pages. An Engine is
// constructed per build and passed to the site orchestrator; there is no
// package-level template state.
package theme

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/enioarz/ontology-server/display"
	"github.com/enioarz/ontology-server/errors"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

//go:embed static
var defaultStatic embed.FS

// DefaultStatic returns the built-in stylesheet tree, rooted at its files.
func DefaultStatic() fs.FS {
	sub, err := fs.Sub(defaultStatic, "static")
	if err != nil {
		panic(err) // embedded tree is fixed at compile time
	}
	return sub
}

// Linker maps an entity to the href its pages link to.
type Linker func(display.EntityDisplay) string

// Engine renders named templates.
type Engine struct {
	tmpl    *template.Template
	baseURL string
	linker  Linker
}

// Option configures an Engine.
type Option func(*Engine)

// WithBaseURL prefixes generated links and asset paths.
func WithBaseURL(base string) Option {
	return func(e *Engine) {
		if base != "" && !strings.HasSuffix(base, "/") {
			base += "/"
		}
		e.baseURL = base
	}
}

// WithLinker replaces the entity link rule.
func WithLinker(l Linker) Option {
	return func(e *Engine) {
		e.linker = l
	}
}

// New parses the built-in templates, then every *.html file under dir, so
// files in dir override built-in definitions of the same name. An empty dir
// uses the built-in templates alone.
func New(dir string, opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.linker == nil {
		e.linker = DefaultLinker(e.baseURL)
	}

	root := template.New("").Option("missingkey=zero").Funcs(e.funcs())
	if err := parseFS(root, defaultTemplates, "templates"); err != nil {
		return nil, errors.WrapFatal(err, "Engine", "New", "parse built-in templates")
	}
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, errors.WrapInvalid(fmt.Errorf("%w: template directory %q", errors.ErrConfigNotFound, dir),
				"Engine", "New", "locate templates")
		}
		if err := parseFS(root, os.DirFS(dir), "."); err != nil {
			return nil, errors.WrapInvalid(fmt.Errorf("%w: %w", errors.ErrTemplateRender, err),
				"Engine", "New", "parse templates")
		}
	}

	e.tmpl = root
	return e, nil
}

// parseFS adds every .html file below root, named by its slash path relative to root.
func parseFS(t *template.Template, fsys fs.FS, root string) error {
	return fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}
		src, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		name := strings.TrimPrefix(path, root+"/")
		if _, err := t.New(name).Parse(string(src)); err != nil {
			return err
		}
		return nil
	})
}

// Has reports whether a template called name is defined.
func (e *Engine) Has(name string) bool {
	return e.tmpl.Lookup(name) != nil
}

// Names returns the defined template names in lexical order.
func (e *Engine) Names() []string {
	var out []string
	for _, t := range e.tmpl.Templates() {
		if t.Name() != "" {
			out = append(out, t.Name())
		}
	}
	sort.Strings(out)
	return out
}

// Render executes template name with data. Failures unwrap to
// errors.ErrTemplateRender.
func (e *Engine) Render(name string, data any) ([]byte, error) {
	t := e.tmpl.Lookup(name)
	if t == nil {
		return nil, errors.TemplateRender(fmt.Errorf("template %q not defined", name), name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, errors.TemplateRender(err, name)
	}
	return buf.Bytes(), nil
}

func (e *Engine) funcs() template.FuncMap {
	return template.FuncMap{
		"href": func(v any) string {
			switch ed := v.(type) {
			case display.EntityDisplay:
				return e.linker(ed)
			case *display.EntityDisplay:
				if ed == nil {
					return ""
				}
				return e.linker(*ed)
			}
			return ""
		},
		"asset": func(name string) string {
			return e.baseURL + "static/" + name
		},
		"home": func() string {
			return e.baseURL + "index.html"
		},
	}
}

// DefaultLinker links single-segment identifiers to "<base><identifier>.html"
// and everything else to the entity IRI.
func DefaultLinker(base string) Linker {
	return func(ed display.EntityDisplay) string {
		if ed.Identifier != "" && !strings.ContainsAny(ed.Identifier, ":/#") {
			return base + ed.Identifier + ".html"
		}
		return string(ed.IRI)
	}
}
