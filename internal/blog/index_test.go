package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

func ts(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Unix()
}

func keysOf(t *testing.T, posts []Post) []string {
	t.Helper()
	keys := make([]string, 0, len(posts))
	for _, p := range posts {
		keys = append(keys, p.Key)
	}
	return keys
}

func TestBuild_Empty(t *testing.T) {
	root, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, root.Posts)
	assert.Empty(t, root.Children)
	assert.Empty(t, root.Segments)
}

func TestBuild_MembershipCompleteness(t *testing.T) {
	posts := []Post{
		{Key: "newer", Timestamp: ts(2014, time.August, 20), Tags: []string{"octocat", "go"}},
		{Key: "older", Timestamp: ts(2014, time.August, 10), Tags: []string{"go"}},
		{Key: "oldest", Timestamp: ts(2013, time.December, 31)},
	}

	root, err := Build(posts)
	require.NoError(t, err)

	// Root holds everything, newest first.
	assert.Equal(t, []string{"newer", "older", "oldest"}, keysOf(t, root.Posts))

	// Year and year+month branches.
	y2014 := root.Children["2014"]
	require.NotNil(t, y2014)
	assert.Equal(t, []string{"newer", "older"}, keysOf(t, y2014.Posts))
	assert.Equal(t, []string{"2014"}, y2014.Segments)

	aug := y2014.Children["08"]
	require.NotNil(t, aug)
	assert.Equal(t, []string{"newer", "older"}, keysOf(t, aug.Posts))
	assert.Equal(t, []string{"2014", "08"}, aug.Segments)

	y2013 := root.Children["2013"]
	require.NotNil(t, y2013)
	assert.Equal(t, []string{"oldest"}, keysOf(t, y2013.Posts))
	require.NotNil(t, y2013.Children["12"])

	// Tag branches: one node per tag, no extras.
	octocat := root.Children["octocat"]
	require.NotNil(t, octocat)
	assert.Equal(t, []string{"newer"}, keysOf(t, octocat.Posts))

	goTag := root.Children["go"]
	require.NotNil(t, goTag)
	assert.Equal(t, []string{"newer", "older"}, keysOf(t, goTag.Posts))

	// No node beyond the two years and the two tags.
	assert.Len(t, root.Children, 4)
	// Untagged post contributes no tag node.
	assert.NotContains(t, root.Children, "oldest")
}

func TestBuild_NoTagsOnlyDateNodes(t *testing.T) {
	root, err := Build([]Post{{Key: "plain", Timestamp: ts(2020, time.January, 1)}})
	require.NoError(t, err)
	assert.Len(t, root.Children, 1)
	assert.Contains(t, root.Children, "2020")
}

func TestBuild_OrderPreservation(t *testing.T) {
	// Two posts with the same timestamp: stable input order must survive.
	same := ts(2014, time.August, 15)
	posts := []Post{
		{Key: "first", Timestamp: same, Tags: []string{"tie"}},
		{Key: "second", Timestamp: same, Tags: []string{"tie"}},
	}
	root, err := Build(posts)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, keysOf(t, root.Posts))
	assert.Equal(t, []string{"first", "second"}, keysOf(t, root.Children["tie"].Posts))
}

func TestBuild_Idempotence(t *testing.T) {
	posts := []Post{
		{Key: "a", Timestamp: ts(2015, time.March, 3), Tags: []string{"x", "y"}},
		{Key: "b", Timestamp: ts(2014, time.February, 2), Tags: []string{"x"}},
	}
	first, err := Build(posts)
	require.NoError(t, err)
	second, err := Build(posts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	posts := []Post{
		{Key: "a", Timestamp: ts(2015, time.March, 3), Tags: []string{"x"}},
		{Key: "b", Timestamp: ts(2014, time.February, 2)},
	}
	snapshot := make([]Post, len(posts))
	copy(snapshot, posts)

	_, err := Build(posts)
	require.NoError(t, err)
	assert.Equal(t, snapshot, posts)
}

func TestBuild_MalformedTimestampAborts(t *testing.T) {
	posts := []Post{
		{Key: "fine", Timestamp: ts(2014, time.August, 15)},
		{Key: "broken", Timestamp: 400000000000}, // far beyond year 9999
	}
	root, err := Build(posts)
	require.Error(t, err)
	assert.Nil(t, root)
	assert.True(t, errors.IsCategory(err, errors.CategoryPost))

	var be *errors.BlogError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "broken", be.Context["post.key"])
}

func TestBuild_TagSharedWithYearNamespace(t *testing.T) {
	posts := []Post{
		{Key: "dated", Timestamp: ts(2014, time.May, 1)},
		{Key: "tagged", Timestamp: ts(2013, time.May, 1), Tags: []string{"2014"}},
	}
	root, err := Build(posts)
	require.NoError(t, err)
	// Single namespace at the root: the tag and the year share one node.
	assert.Equal(t, []string{"dated", "tagged"}, keysOf(t, root.Children["2014"].Posts))
}

func TestChildSegments_Sorted(t *testing.T) {
	root, err := Build([]Post{
		{Key: "p", Timestamp: ts(2014, time.May, 1), Tags: []string{"zebra", "alpha"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2014", "alpha", "zebra"}, root.ChildSegments())
}
