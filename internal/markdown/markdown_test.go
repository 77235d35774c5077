package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Basic(t *testing.T) {
	html, err := Render("# Hello\n\nSome *emphasis*.")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Hello</h1>")
	assert.Contains(t, string(html), "<em>emphasis</em>")
}

func TestRender_Empty(t *testing.T) {
	html, err := Render("")
	require.NoError(t, err)
	assert.Empty(t, string(html))
}
