package tumblr

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/blog"
)

// Target is the slice of the store the importer writes to.
type Target interface {
	SetOption(ctx context.Context, name string, value any) error
	UpsertPost(ctx context.Context, post blog.Post) error
}

// Stats summarizes an import run.
type Stats struct {
	Imported int
	Skipped  int
	ByType   map[string]int
}

// Import pulls blog metadata and all text posts from hostname into target.
// Non-text post types are skipped and counted.
func (c *Client) Import(ctx context.Context, target Target, hostname string) (Stats, error) {
	stats := Stats{ByType: make(map[string]int)}

	info, err := c.Info(ctx, hostname)
	if err != nil {
		return stats, err
	}
	if err := target.SetOption(ctx, "author.name", info.Name); err != nil {
		return stats, err
	}
	if err := target.SetOption(ctx, "blog.title", info.Title); err != nil {
		return stats, err
	}
	if err := target.SetOption(ctx, "blog.url", info.URL); err != nil {
		return stats, err
	}

	for offset := 0; ; offset += pageLimit {
		page, err := c.PostsPage(ctx, hostname, offset)
		if err != nil {
			return stats, err
		}
		if offset >= page.TotalPosts {
			break
		}
		for _, post := range page.Posts {
			stats.ByType[post.Type]++
			if post.Type != "text" {
				stats.Skipped++
				slog.Warn("Skipped post", "slug", post.Slug, "type", post.Type)
				continue
			}
			p := blog.Post{
				Key:       post.Slug,
				Timestamp: post.Timestamp,
				Title:     post.Title,
				Body:      post.Body,
				Tags:      post.Tags,
			}
			if err := target.UpsertPost(ctx, p); err != nil {
				return stats, err
			}
			stats.Imported++
			slog.Info("Imported post", "slug", post.Slug)
		}
	}

	slog.Info("Import finished", "imported", stats.Imported, "skipped", stats.Skipped)
	return stats, nil
}
