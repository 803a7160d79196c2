// Package label renders printable label documents from carrier response
// fields and named templates.
package label

import (
	"fmt"
	"io/fs"

	"github.com/cbroglie/mustache"
	"golang.org/x/text/encoding/charmap"
)

// Store resolves namespaced template paths of the form
// "<collection>/<relative path>" to template text.
type Store struct {
	collections map[string]fs.FS
}

// NewStore creates a template store. The built-in "gls" collection is
// always present; additional collections can be mounted over it.
func NewStore() *Store {
	return &Store{collections: map[string]fs.FS{
		DefaultCollection: builtinTemplates(),
	}}
}

// Mount registers a collection under the given name, replacing any
// existing collection with that name.
func (s *Store) Mount(name string, fsys fs.FS) {
	s.collections[name] = fsys
}

// Load returns the template text for a namespaced path.
func (s *Store) Load(path string) (string, error) {
	collection, rel, ok := splitPath(path)
	if !ok {
		return "", fmt.Errorf("template path %q is not of the form <collection>/<path>", path)
	}

	fsys, ok := s.collections[collection]
	if !ok {
		return "", fmt.Errorf("unknown template collection %q", collection)
	}

	data, err := fs.ReadFile(fsys, rel)
	if err != nil {
		return "", fmt.Errorf("loading template %s: %w", path, err)
	}
	return string(data), nil
}

func splitPath(path string) (collection, rel string, ok bool) {
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			return path[:i], path[i+1:], i > 0 && i < len(path)-1
		}
	}
	return "", "", false
}

// Renderer renders templates with carrier response context and produces
// Latin-1 encoded document bytes. The carrier's character data is not
// ASCII-safe and must round-trip exactly through storage, so the output is
// never UTF-8.
type Renderer struct {
	store *Store
}

// NewRenderer creates a renderer over the given template store.
func NewRenderer(store *Store) *Renderer {
	return &Renderer{store: store}
}

// Render loads the named template, substitutes context values and encodes
// the result to Latin-1 bytes.
func (r *Renderer) Render(templatePath string, context map[string]string) ([]byte, error) {
	tmpl, err := r.store.Load(templatePath)
	if err != nil {
		return nil, err
	}

	rendered, err := mustache.Render(tmpl, context)
	if err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", templatePath, err)
	}

	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(rendered))
	if err != nil {
		return nil, fmt.Errorf("encoding label to latin-1: %w", err)
	}
	return encoded, nil
}
