// Package editor runs the user's text editor for composing and editing post
// bodies through a temporary file.
package editor

import (
	"fmt"
	"os"
	"os/exec"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// DefaultCommand resolves the editor command: the explicit flag value if
// set, otherwise $EDITOR, otherwise vi.
func DefaultCommand(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "vi"
}

// Compose writes initial into a temp file, opens it in the editor attached
// to the terminal, and returns the edited content. The temp file is always
// removed.
func Compose(editorCmd, key, initial string) (string, error) {
	f, err := os.CreateTemp("", fmt.Sprintf("blogbuilder-%s-*.md", key))
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryEditor, errors.SeverityFatal, "create temp file")
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.WriteString(initial); err != nil {
		_ = f.Close()
		return "", errors.Wrap(err, errors.CategoryEditor, errors.SeverityFatal, "write temp file")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, errors.CategoryEditor, errors.SeverityFatal, "close temp file")
	}

	// #nosec G204 -- the editor command is the user's own choice.
	cmd := exec.Command(editorCmd, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrap(err, errors.CategoryEditor, errors.SeverityFatal, fmt.Sprintf("run editor %q", editorCmd))
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryEditor, errors.SeverityFatal, "read edited file")
	}
	return string(edited), nil
}
