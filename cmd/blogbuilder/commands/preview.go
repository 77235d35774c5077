package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/preview"
	"git.home.luguber.info/inful/blogbuilder/internal/store"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Database string `arg:"" help:"Path of the blog database"`
	Output   string `short:"o" help:"Output directory (a temp dir if omitted)"`
	Port     int    `short:"p" help:"HTTP port" default:"8080"`
}

func (c *PreviewCmd) Run(_ *Global) error {
	siteDir := c.Output
	if siteDir == "" {
		tmp, err := os.MkdirTemp("", "blogbuilder-preview-*")
		if err != nil {
			return err
		}
		defer func() { _ = os.RemoveAll(tmp) }()
		siteDir = tmp
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	recorder := metrics.NewPrometheusRecorder(nil)

	// Each rebuild opens a fresh store so the watcher never races a cached
	// connection against an external writer.
	rebuild := func(ctx context.Context) error {
		st, err := store.Open(c.Database)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		return buildSite(ctx, st, siteDir, recorder)
	}

	if _, err := os.Stat(c.Database); err != nil {
		return err
	}

	return preview.Serve(ctx, preview.Options{
		DBPath:  c.Database,
		SiteDir: siteDir,
		Port:    c.Port,
		Rebuild: rebuild,
		Metrics: recorder,
	})
}
