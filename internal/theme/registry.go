// Package theme holds the built-in blog themes. A theme is a directory with
// a yaml manifest, html/template page templates and static assets, embedded
// into the binary.
package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

//go:embed themes
var themesFS embed.FS

// Manifest describes a theme.
type Manifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Static      []string `yaml:"static,omitempty"` // asset files copied verbatim into the site root
}

// Theme is one resolved theme: its manifest plus a filesystem rooted at the
// theme directory (index.html.tmpl, post.html.tmpl, static assets).
type Theme struct {
	Manifest Manifest
	FS       fs.FS
}

// Template file names every theme must provide.
const (
	IndexTemplate = "index.html.tmpl"
	PostTemplate  = "post.html.tmpl"
)

// Lookup resolves a built-in theme by name.
func Lookup(name string) (*Theme, error) {
	sub, err := fs.Sub(themesFS, "themes/"+name)
	if err != nil {
		return nil, errors.New(errors.CategoryTheme, errors.SeverityFatal, fmt.Sprintf("unknown theme %q", name))
	}
	data, err := fs.ReadFile(sub, "theme.yaml")
	if err != nil {
		return nil, errors.New(errors.CategoryTheme, errors.SeverityFatal, fmt.Sprintf("unknown theme %q", name))
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, errors.CategoryTheme, errors.SeverityFatal, fmt.Sprintf("parse manifest for theme %q", name))
	}
	if manifest.Name == "" {
		manifest.Name = name
	}
	return &Theme{Manifest: manifest, FS: sub}, nil
}

// Names lists the built-in theme names, sorted.
func Names() []string {
	entries, err := themesFS.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
