package theme

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

func TestLookup_Eigenein(t *testing.T) {
	th, err := Lookup("eigenein")
	require.NoError(t, err)
	assert.Equal(t, "eigenein", th.Manifest.Name)
	assert.Contains(t, th.Manifest.Static, "theme.css")

	for _, name := range []string{IndexTemplate, PostTemplate, "theme.css"} {
		_, err := fs.Stat(th.FS, name)
		require.NoError(t, err, "theme must ship %s", name)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("no-such-theme")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryTheme))
}

func TestNames_IncludesBuiltins(t *testing.T) {
	assert.Contains(t, Names(), "eigenein")
}
