package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	Database string `arg:"" help:"Path of the blog database"`
}

func (c *ListCmd) Run(_ *Global) error {
	st, err := openExisting(c.Database)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	posts, err := st.Posts(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tDATE\tTITLE\tTAGS")
	for _, post := range posts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			post.Key,
			post.Time().Format("2006-01-02"),
			post.Title,
			strings.Join(post.Tags, ", "))
	}
	return w.Flush()
}
