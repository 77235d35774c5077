package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/blog"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/theme"
)

type fakeRepo []blog.Post

func (f fakeRepo) Posts(context.Context) ([]blog.Post, error) {
	return f, nil
}

func ts(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Unix()
}

func testOptions(pageSize int) *config.Options {
	return &config.Options{
		PageSize:   pageSize,
		Theme:      "eigenein",
		Title:      "Test Blog",
		URL:        "https://example.org",
		AuthorName: "Jane",
		Raw:        map[string]any{},
	}
}

func newTestGenerator(t *testing.T, repo Repository, opts *config.Options) (*Generator, string) {
	t.Helper()
	th, err := theme.Lookup("eigenein")
	require.NoError(t, err)
	outDir := t.TempDir()
	return NewGenerator(repo, opts, th, outDir), outDir
}

func TestBuild_FullSite(t *testing.T) {
	repo := fakeRepo{
		{Key: "second-post", Timestamp: ts(2014, time.August, 20), Title: "Second", Body: "# Two", Tags: []string{"octocat"}},
		{Key: "first-post", Timestamp: ts(2014, time.August, 10), Title: "First", Body: "*one*"},
	}
	g, outDir := newTestGenerator(t, repo, testOptions(1))

	require.NoError(t, g.Build(context.Background()))

	// Index pages: page 1 at the node path, page 2 nested under it.
	for _, rel := range []string{
		"index.html",
		"2/index.html",
		"2014/index.html",
		"2014/2/index.html",
		"2014/08/index.html",
		"2014/08/2/index.html",
		"octocat/index.html",
	} {
		assert.FileExists(t, filepath.Join(outDir, rel))
	}

	// Permalink pages.
	assert.FileExists(t, filepath.Join(outDir, "second-post", "index.html"))
	assert.FileExists(t, filepath.Join(outDir, "first-post", "index.html"))

	// Theme static assets.
	assert.FileExists(t, filepath.Join(outDir, "theme.css"))

	// Markdown rendered into the permalink page.
	html, err := os.ReadFile(filepath.Join(outDir, "second-post", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Two</h1>")
	assert.Contains(t, string(html), "Second")
}

func TestBuild_EmptyBlogStillHasRootIndex(t *testing.T) {
	g, outDir := newTestGenerator(t, fakeRepo{}, testOptions(10))

	require.NoError(t, g.Build(context.Background()))
	assert.FileExists(t, filepath.Join(outDir, "index.html"))

	html, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Nothing here yet.")
}

func TestBuild_InvalidPageSizeWritesNothing(t *testing.T) {
	repo := fakeRepo{{Key: "p", Timestamp: ts(2014, time.August, 10), Body: "x"}}
	g, outDir := newTestGenerator(t, repo, testOptions(0))

	err := g.Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial output on configuration errors")
}

func TestBuild_MalformedPostWritesNothing(t *testing.T) {
	repo := fakeRepo{{Key: "broken", Timestamp: 400000000000, Body: "x"}}
	g, outDir := newTestGenerator(t, repo, testOptions(10))

	err := g.Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryPost))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuild_WritesFavicons(t *testing.T) {
	opts := testOptions(10)
	opts.FaviconICO = []byte{0x00, 0x01}
	opts.FaviconPNG = []byte{0x89, 0x50}
	g, outDir := newTestGenerator(t, fakeRepo{}, opts)

	require.NoError(t, g.Build(context.Background()))

	ico, err := os.ReadFile(filepath.Join(outDir, "favicon.ico"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01}, ico)

	png, err := os.ReadFile(filepath.Join(outDir, "favicon.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50}, png)
}
