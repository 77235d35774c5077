package blog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

func makePosts(n int) []Post {
	posts := make([]Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, Post{
			Key:       fmt.Sprintf("post-%02d", i),
			Timestamp: int64(1408060800 - i*86400), // newest first
		})
	}
	return posts
}

func TestPaginate_Boundary(t *testing.T) {
	pages, err := Paginate(makePosts(25), 10)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Len(t, pages[0].Posts, 10)
	assert.Len(t, pages[1].Posts, 10)
	assert.Len(t, pages[2].Posts, 5)

	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, 3, pages[2].Number)

	assert.False(t, pages[0].IsLast)
	assert.False(t, pages[1].IsLast)
	assert.True(t, pages[2].IsLast)
}

func TestPaginate_ExactMultiple(t *testing.T) {
	pages, err := Paginate(makePosts(20), 10)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Len(t, pages[1].Posts, 10)
	assert.True(t, pages[1].IsLast)
}

func TestPaginate_Empty(t *testing.T) {
	pages, err := Paginate(nil, 10)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
	assert.True(t, pages[0].IsLast)
	assert.Empty(t, pages[0].Posts)
}

func TestPaginate_Completeness(t *testing.T) {
	posts := makePosts(23)
	pages, err := Paginate(posts, 7)
	require.NoError(t, err)
	require.Len(t, pages, 4)

	var got []Post
	for _, page := range pages {
		got = append(got, page.Posts...)
	}
	assert.Equal(t, posts, got, "concatenated pages must reproduce the input exactly")
}

func TestPaginate_InvalidPageSize(t *testing.T) {
	for _, size := range []int{0, -1, -10} {
		pages, err := Paginate(makePosts(3), size)
		require.Error(t, err)
		assert.Nil(t, pages)
		assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
	}
}
