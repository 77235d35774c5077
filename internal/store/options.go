package store

import (
	"context"
	"fmt"
	"strings"
)

// SetOption inserts or updates an option. Values are stored in the column
// matching their Go type: int64, float64, string or []byte. nil clears all
// value columns. blog.url is stored without a trailing slash.
func (s *Store) SetOption(ctx context.Context, name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setOptionLocked(ctx, name, value)
}

func (s *Store) setOptionLocked(ctx context.Context, name string, value any) error {
	if str, ok := value.(string); ok && name == "blog.url" {
		value = strings.TrimRight(str, "/")
	}

	var intV, realV, textV, blobV any
	switch v := value.(type) {
	case nil:
	case int:
		intV = int64(v)
	case int64:
		intV = v
	case float64:
		realV = v
	case string:
		textV = v
	case []byte:
		blobV = v
	default:
		return fmt.Errorf("option %q: unsupported value type %T", name, value)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO options (name, integer_value, real_value, text_value, blob_value) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			integer_value = excluded.integer_value,
			real_value = excluded.real_value,
			text_value = excluded.text_value,
			blob_value = excluded.blob_value`,
		name, intV, realV, textV, blobV,
	)
	if err != nil {
		return fmt.Errorf("set option %q: %w", name, err)
	}
	return nil
}

// Option returns the value of a single option, or nil if the option is
// unknown or unset. The concrete type is int64, float64, string or []byte.
func (s *Store) Option(ctx context.Context, name string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT coalesce(integer_value, real_value, text_value, blob_value)
		FROM options WHERE name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("query option %q: %w", name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var value any
	if err := rows.Scan(&value); err != nil {
		return nil, fmt.Errorf("scan option %q: %w", name, err)
	}
	return value, rows.Err()
}

// Options returns all option names and values.
func (s *Store) Options(ctx context.Context) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, coalesce(integer_value, real_value, text_value, blob_value)
		FROM options`)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer rows.Close()

	options := make(map[string]any)
	for rows.Next() {
		var name string
		var value any
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		options[name] = value
	}
	return options, rows.Err()
}
