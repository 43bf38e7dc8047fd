package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var templateFS embed.FS

const formTemplate = "form.html"

// TemplatesFS exposes the embedded templates rooted at their directory so
// callers can copy or extend them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return templateFS
	}
	return sub
}

// Renderer turns a View into HTML using pongo2 templates.
type Renderer struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	templates fs.FS
	baseDir   string
}

// WithTemplatesFS overrides the embedded templates. The FS must provide
// form.html.
func WithTemplatesFS(files fs.FS) RendererOption {
	return func(c *rendererConfig) {
		c.templates = files
	}
}

// WithTemplateDir loads templates from a directory on disk.
func WithTemplateDir(dir string) RendererOption {
	return func(c *rendererConfig) {
		c.baseDir = dir
	}
}

// NewRenderer builds a renderer over the embedded templates unless an
// override is given.
func NewRenderer(options ...RendererOption) (*Renderer, error) {
	cfg := rendererConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("view: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	if len(loaders) == 0 {
		loaders = append(loaders, pongo2.NewFSLoader(TemplatesFS()))
	}

	return &Renderer{
		set:       pongo2.NewSet("regform", loaders...),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Render writes the form HTML for v to out when given and returns it.
func (r *Renderer) Render(v View, out ...io.Writer) (string, error) {
	if r == nil || r.set == nil {
		return "", errors.New("view: renderer is nil")
	}
	tmpl, err := r.template(formTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context{"view": v}, &buf); err != nil {
		return "", fmt.Errorf("view: execute %s: %w", formTemplate, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.templates[name]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tmpl, ok := r.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("view: load template %q: %w", name, err)
	}
	r.templates[name] = tmpl
	return tmpl, nil
}
