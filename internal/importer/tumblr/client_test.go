package tumblr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/blog"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// fakeTarget records imported options and posts.
type fakeTarget struct {
	options map[string]any
	posts   []blog.Post
}

func (f *fakeTarget) SetOption(_ context.Context, name string, value any) error {
	if f.options == nil {
		f.options = make(map[string]any)
	}
	f.options[name] = value
	return nil
}

func (f *fakeTarget) UpsertPost(_ context.Context, post blog.Post) error {
	f.posts = append(f.posts, post)
	return nil
}

func envelope(payload any) map[string]any {
	return map[string]any{"response": payload}
}

func newFakeAPI(t *testing.T, totalPosts int, posts []map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/blog/example.tumblr.com/info", func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.URL.Query().Get("api_key"))
		require.NoError(t, json.NewEncoder(w).Encode(envelope(map[string]any{
			"blog": map[string]any{"name": "example", "title": "Example Blog", "url": "https://example.tumblr.com/"},
		})))
	})
	mux.HandleFunc("/v2/blog/example.tumblr.com/posts", func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		require.Equal(t, "raw", r.URL.Query().Get("filter"))

		end := offset + pageLimit
		if end > len(posts) {
			end = len(posts)
		}
		var page []map[string]any
		if offset < len(posts) {
			page = posts[offset:end]
		}
		require.NoError(t, json.NewEncoder(w).Encode(envelope(map[string]any{
			"total_posts": totalPosts,
			"posts":       page,
		})))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(baseURL string) *Client {
	c := NewClient("test-key")
	c.BaseURL = baseURL
	return c
}

func textPost(slug string, ts int64, tags ...string) map[string]any {
	return map[string]any{
		"type": "text", "slug": slug, "timestamp": ts,
		"title": "Title of " + slug, "body": "Body of " + slug, "tags": tags,
	}
}

func TestImport_TextPostsAndOptions(t *testing.T) {
	posts := []map[string]any{
		textPost("hello-world", 1408060800, "go", "blog"),
		{"type": "photo", "slug": "a-photo", "timestamp": 1408000000},
		textPost("second", 1407000000),
	}
	server := newFakeAPI(t, len(posts), posts)
	client := newTestClient(server.URL)

	target := &fakeTarget{}
	stats, err := client.Import(context.Background(), target, "example.tumblr.com")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 2, stats.ByType["text"])
	assert.Equal(t, 1, stats.ByType["photo"])

	assert.Equal(t, "example", target.options["author.name"])
	assert.Equal(t, "Example Blog", target.options["blog.title"])
	assert.Equal(t, "https://example.tumblr.com/", target.options["blog.url"])

	require.Len(t, target.posts, 2)
	assert.Equal(t, "hello-world", target.posts[0].Key)
	assert.Equal(t, int64(1408060800), target.posts[0].Timestamp)
	assert.Equal(t, "Title of hello-world", target.posts[0].Title)
	assert.Equal(t, []string{"go", "blog"}, target.posts[0].Tags)
	assert.Equal(t, "second", target.posts[1].Key)
}

func TestImport_PagesThroughOffsets(t *testing.T) {
	var posts []map[string]any
	for i := 0; i < 45; i++ {
		posts = append(posts, textPost(fmt.Sprintf("post-%02d", i), int64(1408060800-i)))
	}
	server := newFakeAPI(t, len(posts), posts)
	client := newTestClient(server.URL)

	target := &fakeTarget{}
	stats, err := client.Import(context.Background(), target, "example.tumblr.com")
	require.NoError(t, err)
	assert.Equal(t, 45, stats.Imported)
	assert.Len(t, target.posts, 45)
}

func TestImport_HTTPErrorSurfacesAsImportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)
	client := newTestClient(server.URL)

	_, err := client.Import(context.Background(), &fakeTarget{}, "example.tumblr.com")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryImport))
}
