// Package blog implements the index/pagination engine: it classifies posts
// into a tree of index nodes (root, year, year+month, tag) and splits each
// node's post list into fixed-size pages.
//
// The package is a pure in-memory transformation of (posts, page size); it
// performs no I/O and never mutates its input.
package blog

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Post is an immutable snapshot of a stored post. The engine only reads it;
// index nodes hold references to the same value, never copies.
type Post struct {
	Key       string
	Timestamp int64 // seconds since epoch, UTC
	Title     string
	Body      string
	Tags      []string
}

// Time returns the post's publication instant in UTC.
func (p Post) Time() time.Time {
	return time.Unix(p.Timestamp, 0).UTC()
}

// membershipKeys returns the path-segment tuples identifying every index
// node the post belongs to: the root, its year, its year+month, and one
// node per tag. At most 3+len(tags) keys.
func membershipKeys(p Post) ([][]string, error) {
	t := p.Time()
	year := t.Year()
	if year < 1 || year > 9999 {
		return nil, errors.MalformedPost(p.Key, fmt.Sprintf("timestamp %d is outside the representable range", p.Timestamp))
	}

	keys := make([][]string, 0, 3+len(p.Tags))
	yearSeg := fmt.Sprintf("%04d", year)
	monthSeg := fmt.Sprintf("%02d", int(t.Month()))

	keys = append(keys,
		[]string{},
		[]string{yearSeg},
		[]string{yearSeg, monthSeg},
	)
	for _, tag := range p.Tags {
		keys = append(keys, []string{tag})
	}
	return keys, nil
}
