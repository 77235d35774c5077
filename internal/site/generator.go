// Package site renders the whole static site: index pages for every node of
// the post index tree, one permalink page per post, theme assets and
// favicons.
package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogbuilder/internal/blog"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/theme"
)

// Repository supplies the posts to publish, newest first, tags populated.
type Repository interface {
	Posts(ctx context.Context) ([]blog.Post, error)
}

// Generator builds the static site into an output directory.
type Generator struct {
	repo     Repository
	opts     *config.Options
	theme    *theme.Theme
	outDir   string
	recorder metrics.Recorder
}

// NewGenerator creates a Generator. The options must already be loaded; they
// are validated at the start of Build.
func NewGenerator(repo Repository, opts *config.Options, th *theme.Theme, outDir string) *Generator {
	return &Generator{
		repo:     repo,
		opts:     opts,
		theme:    th,
		outDir:   outDir,
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	g.recorder = r
	return g
}

// Build renders the whole site. Options are validated and the index tree is
// built before the first file is written, so a bad page size or a malformed
// post produces no partial output.
func (g *Generator) Build(ctx context.Context) error {
	start := time.Now()
	buildID := uuid.NewString()
	log := slog.With("build_id", buildID)

	err := g.build(ctx, log)
	duration := time.Since(start)
	g.recorder.ObserveBuildDuration(duration)
	if err != nil {
		g.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		return err
	}
	g.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	log.Info("Site build finished", "output", g.outDir, "duration", duration)
	return nil
}

func (g *Generator) build(ctx context.Context, log *slog.Logger) error {
	if err := g.opts.Validate(); err != nil {
		return err
	}
	templates, err := parseTemplates(g.theme)
	if err != nil {
		return err
	}

	posts, err := g.repo.Posts(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryStorage, errors.SeverityFatal, "list posts")
	}
	log.Info("Building index", "posts", len(posts), "page_size", g.opts.PageSize)

	root, err := blog.Build(posts)
	if err != nil {
		return err
	}

	view := g.optionsView()

	indexPages := 0
	err = blog.Walk(root, g.opts.PageSize, func(segments []string, page blog.Page) error {
		path := filepath.Join(append([]string{g.outDir}, segments...)...)
		log.Debug("Building index page", "path", path, "page", page.Number, "posts", len(page.Posts))
		data := indexPageData{Options: view, Page: page, Segments: page.Segments}
		if err := g.writeTemplate(templates.index, filepath.Join(path, "index.html"), data); err != nil {
			return err
		}
		indexPages++
		return nil
	})
	if err != nil {
		return err
	}
	g.recorder.AddIndexPages(indexPages)

	for _, post := range posts {
		path := filepath.Join(g.outDir, post.Key, "index.html")
		log.Debug("Building post page", "path", path)
		data := postPageData{Options: view, Post: post}
		if err := g.writeTemplate(templates.post, path, data); err != nil {
			return err
		}
	}
	g.recorder.AddPostPages(len(posts))

	if err := g.copyStatic(); err != nil {
		return err
	}
	return g.writeFavicons()
}

func (g *Generator) optionsView() optionsView {
	return optionsView{
		Title:         g.opts.Title,
		URL:           g.opts.URL,
		AuthorName:    g.opts.AuthorName,
		AuthorEmail:   g.opts.AuthorEmail,
		HasFaviconICO: len(g.opts.FaviconICO) > 0,
		HasFaviconPNG: len(g.opts.FaviconPNG) > 0,
	}
}

func (g *Generator) writeTemplate(tpl *template.Template, path string, data any) error {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return errors.Wrap(err, errors.CategoryBuild, errors.SeverityFatal, fmt.Sprintf("render %s", path))
	}
	return g.writeFile(path, buf.Bytes())
}

func (g *Generator) writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrap(err, errors.CategoryBuild, errors.SeverityFatal, "create output directory")
	}
	// #nosec G306 -- generated pages are public content
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryBuild, errors.SeverityFatal, fmt.Sprintf("write %s", path))
	}
	return nil
}

// copyStatic copies the theme's declared static assets into the site root.
func (g *Generator) copyStatic() error {
	for _, name := range g.theme.Manifest.Static {
		data, err := fs.ReadFile(g.theme.FS, name)
		if err != nil {
			return errors.Wrap(err, errors.CategoryTheme, errors.SeverityFatal,
				fmt.Sprintf("theme %q declares missing asset %s", g.theme.Manifest.Name, name))
		}
		if err := g.writeFile(filepath.Join(g.outDir, name), data); err != nil {
			return err
		}
	}
	return nil
}

// writeFavicons dumps the favicon blob options into the site root, if set.
func (g *Generator) writeFavicons() error {
	if len(g.opts.FaviconICO) > 0 {
		if err := g.writeFile(filepath.Join(g.outDir, "favicon.ico"), g.opts.FaviconICO); err != nil {
			return err
		}
	}
	if len(g.opts.FaviconPNG) > 0 {
		if err := g.writeFile(filepath.Join(g.outDir, "favicon.png"), g.opts.FaviconPNG); err != nil {
			return err
		}
	}
	return nil
}
