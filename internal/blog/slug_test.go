package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"My First Post", "my-first-post"},
		{"Hello,   World!", "hello-world"},
		{"Déjà Vu", "deja-vu"},
		{"  padded  ", "padded"},
		{"100% Go", "100-go"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}
