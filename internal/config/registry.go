package config

import "fmt"

// OptionKind describes which value column an option uses.
type OptionKind string

const (
	KindInteger OptionKind = "integer"
	KindReal    OptionKind = "real"
	KindText    OptionKind = "text"
	KindBlob    OptionKind = "blob"
)

// knownOptions maps the option names this program interprets to their kinds.
// `option set` accepts arbitrary names; known ones get their kind enforced.
var knownOptions = map[string]OptionKind{
	"author.email":     KindText,
	"author.name":      KindText,
	"blog.favicon.ico": KindBlob,
	"blog.favicon.png": KindBlob,
	"blog.page_size":   KindInteger,
	"blog.theme":       KindText,
	"blog.title":       KindText,
	"blog.url":         KindText,
	"schema.version":   KindInteger,
}

// KindOf returns the registered kind for name, or false for free-form options.
func KindOf(name string) (OptionKind, bool) {
	kind, ok := knownOptions[name]
	return kind, ok
}

// CheckKind verifies that a value's type matches the registered kind of a
// known option. Free-form options accept any kind.
func CheckKind(name string, value any) error {
	kind, ok := knownOptions[name]
	if !ok || value == nil {
		return nil
	}
	var actual OptionKind
	switch value.(type) {
	case int, int64:
		actual = KindInteger
	case float64:
		actual = KindReal
	case string:
		actual = KindText
	case []byte:
		actual = KindBlob
	default:
		return fmt.Errorf("option %q: unsupported value type %T", name, value)
	}
	if actual != kind {
		return fmt.Errorf("option %q expects a %s value, got %s", name, kind, actual)
	}
	return nil
}

// FormatValue renders an option value for display. Blobs print as a size,
// matching how they are logged everywhere else.
func FormatValue(value any) string {
	if b, ok := value.([]byte); ok {
		return fmt.Sprintf("<%d bytes>", len(b))
	}
	if value == nil {
		return "<unset>"
	}
	return fmt.Sprintf("%v", value)
}
