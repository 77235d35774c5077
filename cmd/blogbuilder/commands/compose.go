package commands

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/blog"
	"git.home.luguber.info/inful/blogbuilder/internal/editor"
)

// ComposeCmd implements the 'compose' command.
type ComposeCmd struct {
	Database string   `arg:"" help:"Path of the blog database"`
	Title    string   `help:"Post title" required:""`
	Key      string   `help:"Post key, derived from the title if omitted. Example: my-first-post"`
	Tag      []string `help:"Post tag (repeatable)"`
	Editor   string   `short:"e" help:"Editor command (defaults to $EDITOR)"`
}

func (c *ComposeCmd) Run(_ *Global) error {
	key := c.Key
	if key == "" {
		key = blog.Slugify(c.Title)
	}

	body, err := editor.Compose(editor.DefaultCommand(c.Editor), key, "")
	if err != nil {
		return err
	}

	st, err := openExisting(c.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	post := blog.Post{
		Key:       key,
		Timestamp: time.Now().UTC().Unix(),
		Title:     c.Title,
		Body:      body,
		Tags:      c.Tag,
	}
	if err := st.InsertPost(context.Background(), post); err != nil {
		return err
	}

	slog.Info("Post composed", "key", key, "tags", len(c.Tag))
	return nil
}
