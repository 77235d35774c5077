package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/blogbuilder/internal/importer/tumblr"
)

// ImportCmd groups the import subcommands.
type ImportCmd struct {
	Tumblr ImportTumblrCmd `cmd:"" help:"Import a blog from Tumblr (text posts only)"`
}

// ImportTumblrCmd imports a Tumblr blog into a new database.
type ImportTumblrCmd struct {
	Database string `arg:"" help:"Path of the new database file"`
	Hostname string `arg:"" help:"Tumblr hostname, e.g. example.tumblr.com"`
	APIKey   string `help:"Tumblr API key (defaults to $TUMBLR_API_KEY)" env:"TUMBLR_API_KEY"`
}

func (c *ImportTumblrCmd) Run(_ *Global) error {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("TUMBLR_API_KEY")
	}
	if c.APIKey == "" {
		return fmt.Errorf("a Tumblr API key is required (--api-key or TUMBLR_API_KEY)")
	}

	st, err := openNew(c.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	if err := st.Init(ctx); err != nil {
		return err
	}

	client := tumblr.NewClient(c.APIKey)
	stats, err := client.Import(ctx, st, c.Hostname)
	if err != nil {
		return err
	}

	slog.Info("Import completed",
		"database", c.Database,
		"imported", stats.Imported,
		"skipped", stats.Skipped,
		"text", stats.ByType["text"])
	return nil
}
