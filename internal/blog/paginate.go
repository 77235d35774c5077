package blog

import (
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Page is a bounded, ordered slice of a node's post list, corresponding to
// one output listing document.
type Page struct {
	// Number is 1-based and contiguous within a node.
	Number int

	// IsLast marks the final page of the node.
	IsLast bool

	// Posts is the page's slice of the node's posts, at most page-size long.
	// It aliases the node's list; it is never copied.
	Posts []Post

	// Segments is the owning node's path, used to derive the output address.
	Segments []string
}

// Paginate partitions posts into contiguous pages of at most size elements,
// preserving order. An empty input still yields exactly one empty page:
// index locations are structural, not post-count-gated, so even an empty
// tag materializes one output page.
//
// size must be at least 1; anything else is a configuration error, never a
// silent default.
func Paginate(posts []Post, size int) ([]Page, error) {
	if size <= 0 {
		return nil, errors.InvalidConfiguration(fmt.Sprintf("page size must be positive, got %d", size))
	}

	if len(posts) == 0 {
		return []Page{{Number: 1, IsLast: true}}, nil
	}

	count := (len(posts) + size - 1) / size
	pages := make([]Page, 0, count)
	for start := 0; start < len(posts); start += size {
		end := start + size
		if end > len(posts) {
			end = len(posts)
		}
		pages = append(pages, Page{
			Number: len(pages) + 1,
			IsLast: end == len(posts),
			Posts:  posts[start:end],
		})
	}
	return pages, nil
}
