package site

import (
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/blog"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
	"git.home.luguber.info/inful/blogbuilder/internal/theme"
)

// optionsView is the template-facing slice of the blog options.
type optionsView struct {
	Title         string
	URL           string
	AuthorName    string
	AuthorEmail   string
	HasFaviconICO bool
	HasFaviconPNG bool
}

// indexPageData is the context for one index page template execution.
type indexPageData struct {
	Options  optionsView
	Page     blog.Page
	Segments []string // the owning node's path, not the page's output path
}

// postPageData is the context for one permalink page template execution.
type postPageData struct {
	Options optionsView
	Post    blog.Post
}

// templateFuncs are the helpers every theme template can use.
var templateFuncs = template.FuncMap{
	"markdown": markdown.Render,
	"timestamp": func(ts int64) time.Time {
		return time.Unix(ts, 0).UTC()
	},
	"joinsegments": func(segments []string) string {
		var b strings.Builder
		for _, s := range segments {
			b.WriteByte('/')
			b.WriteString(s)
		}
		return b.String()
	},
	"prevpage": func(n int) int { return n - 1 },
	"nextpage": func(n int) int { return n + 1 },
}

// templateSet holds the parsed page templates of one theme.
type templateSet struct {
	index *template.Template
	post  *template.Template
}

func parseTemplates(th *theme.Theme) (*templateSet, error) {
	index, err := parseOne(th, theme.IndexTemplate)
	if err != nil {
		return nil, err
	}
	post, err := parseOne(th, theme.PostTemplate)
	if err != nil {
		return nil, err
	}
	return &templateSet{index: index, post: post}, nil
}

func parseOne(th *theme.Theme, name string) (*template.Template, error) {
	raw, err := fs.ReadFile(th.FS, name)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryTheme, errors.SeverityFatal,
			fmt.Sprintf("theme %q is missing %s", th.Manifest.Name, name))
	}
	tpl, err := template.New(name).Funcs(templateFuncs).Parse(string(raw))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryTheme, errors.SeverityFatal,
			fmt.Sprintf("parse %s of theme %q", name, th.Manifest.Name))
	}
	return tpl, nil
}
