// Package markdown renders post bodies to HTML with Goldmark.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Render converts a CommonMark body to HTML. The result is marked safe for
// direct template injection; post bodies are the author's own content.
func Render(body string) (template.HTML, error) {
	md := goldmark.New()
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", errors.Wrap(err, errors.CategoryMarkdown, errors.SeverityFatal, "render markdown body")
	}
	// #nosec G203 -- rendered from the author's own stored markdown.
	return template.HTML(buf.String()), nil
}
