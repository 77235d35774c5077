package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Database string `arg:"" help:"Path of the new database file"`
	Name     string `help:"Your name" required:""`
	Email    string `help:"Your email" required:""`
	Title    string `help:"Blog title" required:""`
	URL      string `help:"Blog URL" required:""`
	Theme    string `help:"Theme" default:"${default_theme}"`
}

func (c *InitCmd) Run(_ *Global) error {
	st, err := openNew(c.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	if err := st.Init(ctx); err != nil {
		return err
	}

	options := map[string]any{
		"author.name":  c.Name,
		"author.email": c.Email,
		"blog.title":   c.Title,
		"blog.url":     c.URL,
		"blog.theme":   c.Theme,
	}
	for name, value := range options {
		if err := st.SetOption(ctx, name, value); err != nil {
			return err
		}
	}

	slog.Info("Blog initialized", "database", c.Database, "theme", c.Theme)
	return nil
}

// DefaultThemeVar feeds the ${default_theme} interpolation in the help text.
func DefaultThemeVar() map[string]string {
	return map[string]string{"default_theme": config.DefaultTheme}
}
