// Package config provides the typed view over the blog's options table,
// with defaults applied at load and validation of the values this program
// actually interprets. Unrecognized options pass through untouched for the
// templates.
package config

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Default option values, written by `init` and applied at load when a row
// is missing or unset.
const (
	DefaultPageSize = 10
	DefaultTheme    = "eigenein"
)

// OptionReader is the slice of the store the config layer needs.
type OptionReader interface {
	Options(ctx context.Context) (map[string]any, error)
}

// Options is the typed configuration consumed by the build.
type Options struct {
	PageSize    int
	Theme       string
	Title       string
	URL         string
	AuthorName  string
	AuthorEmail string
	FaviconICO  []byte
	FaviconPNG  []byte

	// Raw holds every option row as stored, for template pass-through.
	Raw map[string]any
}

// Load reads all options and applies defaults for the ones the builder
// interprets. It does not validate; see Validate.
func Load(ctx context.Context, r OptionReader) (*Options, error) {
	raw, err := r.Options(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryStorage, errors.SeverityFatal, "load options")
	}

	opts := &Options{
		PageSize: DefaultPageSize,
		Theme:    DefaultTheme,
		Raw:      raw,
	}
	if v, ok := raw["blog.page_size"].(int64); ok {
		opts.PageSize = int(v)
	}
	if v, ok := raw["blog.theme"].(string); ok && v != "" {
		opts.Theme = v
	}
	opts.Title = stringOption(raw, "blog.title")
	opts.URL = stringOption(raw, "blog.url")
	opts.AuthorName = stringOption(raw, "author.name")
	opts.AuthorEmail = stringOption(raw, "author.email")
	opts.FaviconICO = blobOption(raw, "blog.favicon.ico")
	opts.FaviconPNG = blobOption(raw, "blog.favicon.png")
	return opts, nil
}

// Validate rejects option values the build cannot proceed with. A page size
// of zero or less is a configuration error, surfaced before any pagination.
func (o *Options) Validate() error {
	if o.PageSize <= 0 {
		return errors.InvalidConfiguration(fmt.Sprintf("blog.page_size must be positive, got %d", o.PageSize))
	}
	if o.Theme == "" {
		return errors.InvalidConfiguration("blog.theme must not be empty")
	}
	return nil
}

func stringOption(raw map[string]any, name string) string {
	v, _ := raw[name].(string)
	return v
}

func blobOption(raw map[string]any, name string) []byte {
	v, _ := raw[name].([]byte)
	return v
}
