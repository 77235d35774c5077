package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/editor"
)

// EditCmd implements the 'edit' command.
type EditCmd struct {
	Database string `arg:"" help:"Path of the blog database"`
	Key      string `arg:"" help:"Key of the post to edit"`
	Editor   string `short:"e" help:"Editor command (defaults to $EDITOR)"`
}

func (c *EditCmd) Run(_ *Global) error {
	st, err := openExisting(c.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	post, err := st.Post(ctx, c.Key)
	if err != nil {
		return err
	}

	body, err := editor.Compose(editor.DefaultCommand(c.Editor), post.Key, post.Body)
	if err != nil {
		return err
	}
	if body == post.Body {
		slog.Info("Post unchanged", "key", post.Key)
		return nil
	}

	post.Body = body
	if err := st.UpdatePost(ctx, post); err != nil {
		return err
	}
	slog.Info("Post updated", "key", post.Key)
	return nil
}
