// Package commands defines the blogbuilder CLI command tree.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/blogbuilder/internal/store"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init    InitCmd    `cmd:"" help:"Initialize a new blog database"`
	Compose ComposeCmd `cmd:"" help:"Compose a new post in your editor"`
	Edit    EditCmd    `cmd:"" help:"Edit an existing post in your editor"`
	List    ListCmd    `cmd:"" help:"List posts"`
	Build   BuildCmd   `cmd:"" help:"Build the static site"`
	Option  OptionCmd  `cmd:"" help:"Get or set blog options"`
	Import  ImportCmd  `cmd:"" help:"Import another blog into a new database"`
	Preview PreviewCmd `cmd:"" help:"Build, serve and rebuild the site on database changes"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Optional: .env for TUMBLR_API_KEY, EDITOR and friends.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env")
	}
	return nil
}

// openExisting opens a database that must already exist.
func openExisting(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("existing database is expected: %s", path)
	}
	return store.Open(path)
}

// openNew opens a database that must not exist yet.
func openNew(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("database already exists: %s", path)
	}
	return store.Open(path)
}
