package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"text/template"
)

// Renderer parses templates once and caches them by source.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with the built-in helper functions.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderFS renders a template read from fsys, typically an embed.FS.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	return r.render("fs:"+path, path, func() ([]byte, error) {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template from fs '%s': %w", path, err)
		}
		return b, nil
	}, data)
}

// RenderFile renders a template from a file on disk (user overrides).
func (r *Renderer) RenderFile(path string, data any) ([]byte, error) {
	return r.render("file:"+path, path, func() ([]byte, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template file '%s': %w", path, err)
		}
		return b, nil
	}, data)
}

// ClearCache drops every parsed template. Watch mode calls it so edits to
// an override file are picked up.
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

func (r *Renderer) render(key, name string, load func() ([]byte, error), data any) ([]byte, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[key]
	r.mu.RUnlock()

	if !ok {
		src, err := load()
		if err != nil {
			return nil, err
		}
		tmpl, err = template.New(name).Funcs(r.funcMap).Parse(string(src))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
		}
		r.mu.Lock()
		r.cache[key] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"trim":    strings.TrimSpace,
		"join":    strings.Join,
		"quote":   Quote,
		"comment": Comment,
		"default": Default,
	}
}

// Quote wraps a string in double quotes
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// Comment prefixes every line of s with "// ".
// Empty lines get a bare "//" so no trailing whitespace is produced.
func Comment(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = "//"
			continue
		}
		lines[i] = "// " + l
	}
	return strings.Join(lines, "\n")
}

// Default returns defaultVal if val is nil, an empty string or an empty slice.
// Numeric zero is a real value and is returned as is.
func Default(defaultVal, val any) any {
	switch v := val.(type) {
	case nil:
		return defaultVal
	case string:
		if v == "" {
			return defaultVal
		}
	case []string:
		if len(v) == 0 {
			return defaultVal
		}
	case []any:
		if len(v) == 0 {
			return defaultVal
		}
	}
	return val
}
