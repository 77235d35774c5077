package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
	"git.home.luguber.info/inful/blogbuilder/internal/store"
	"git.home.luguber.info/inful/blogbuilder/internal/theme"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Database string `arg:"" help:"Path of the blog database"`
	Path     string `arg:"" help:"Output directory for the generated site"`
}

func (c *BuildCmd) Run(_ *Global) error {
	st, err := openExisting(c.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	slog.Info("Starting site build", "database", c.Database, "output", c.Path)
	return buildSite(context.Background(), st, c.Path, metrics.NoopRecorder{})
}

// buildSite runs one full site build; shared between build and preview.
func buildSite(ctx context.Context, st *store.Store, outDir string, recorder metrics.Recorder) error {
	opts, err := config.Load(ctx, st)
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	th, err := theme.Lookup(opts.Theme)
	if err != nil {
		return err
	}
	return site.NewGenerator(st, opts, th, outDir).WithRecorder(recorder).Build(ctx)
}
