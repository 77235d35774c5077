// Package store persists posts, tags and blog options in SQLite.
//
// The posts query is ordered newest-first; the index builder depends on that
// ordering contract to avoid re-sorting.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/blogbuilder/internal/blog"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// Store wraps the SQLite database holding posts, tags and options.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens the database at dbPath. Use ":memory:" for an in-memory
// database (tests). The schema is not created here; see Init.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Single connection: sqlite is single-writer, and a pooled second
	// connection to ":memory:" would see a different database entirely.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Init creates the schema and inserts the default option rows. Safe to call
// only on a fresh database.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schema := `
	CREATE TABLE options (
		name TEXT NOT NULL PRIMARY KEY,
		integer_value INTEGER,
		real_value REAL,
		text_value TEXT,
		blob_value BLOB
	);
	CREATE TABLE posts (
		key TEXT NOT NULL PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		title TEXT NULL,
		text TEXT NOT NULL
	);
	CREATE INDEX ix_posts_timestamp ON posts (timestamp);
	CREATE TABLE post_tags (
		key TEXT NOT NULL,
		tag TEXT NOT NULL,
		FOREIGN KEY(key) REFERENCES posts(key),
		UNIQUE(key, tag)
	);
	CREATE INDEX ix_post_tags_key ON post_tags (key);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}

	defaults := map[string]any{
		"author.email":     nil,
		"author.name":      nil,
		"blog.favicon.ico": nil,
		"blog.favicon.png": nil,
		"blog.page_size":   int64(config.DefaultPageSize),
		"blog.theme":       config.DefaultTheme,
		"blog.title":       nil,
		"blog.url":         nil,
		"schema.version":   int64(1),
	}
	for name, value := range defaults {
		if err := s.setOptionLocked(ctx, name, value); err != nil {
			return err
		}
	}
	return nil
}

// InsertPost inserts a new post. Fails if the key already exists.
func (s *Store) InsertPost(ctx context.Context, post blog.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO posts (key, timestamp, title, text) VALUES (?, ?, ?, ?)",
		post.Key, post.Timestamp, nullString(post.Title), post.Body,
	)
	if err != nil {
		return fmt.Errorf("insert post %q: %w", post.Key, err)
	}
	for _, tag := range post.Tags {
		if err := s.addTagLocked(ctx, post.Key, tag); err != nil {
			return err
		}
	}
	return nil
}

// UpdatePost updates an existing post's timestamp, title and body.
func (s *Store) UpdatePost(ctx context.Context, post blog.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE posts SET timestamp = ?, title = ?, text = ? WHERE key = ?",
		post.Timestamp, nullString(post.Title), post.Body, post.Key,
	)
	if err != nil {
		return fmt.Errorf("update post %q: %w", post.Key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update post %q: no such post", post.Key)
	}
	return nil
}

// UpsertPost inserts the post or updates it if the key exists. Tags are only
// written on insert; use AddTag to extend an existing post's tag set.
func (s *Store) UpsertPost(ctx context.Context, post blog.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (key, timestamp, title, text) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET timestamp = excluded.timestamp, title = excluded.title, text = excluded.text`,
		post.Key, post.Timestamp, nullString(post.Title), post.Body,
	)
	if err != nil {
		return fmt.Errorf("upsert post %q: %w", post.Key, err)
	}
	for _, tag := range post.Tags {
		if err := s.addTagLocked(ctx, post.Key, tag); err != nil {
			return err
		}
	}
	return nil
}

// Post fetches a single post with its tags. Returns sql.ErrNoRows wrapped if
// the key is unknown.
func (s *Store) Post(ctx context.Context, key string) (blog.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var post blog.Post
	var title sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT key, timestamp, title, text FROM posts WHERE key = ?", key,
	).Scan(&post.Key, &post.Timestamp, &title, &post.Body)
	if err != nil {
		return blog.Post{}, fmt.Errorf("query post %q: %w", key, err)
	}
	post.Title = title.String

	post.Tags, err = s.tagsForLocked(ctx, key)
	if err != nil {
		return blog.Post{}, err
	}
	return post, nil
}

// Posts returns all posts, newest first, with their tags populated.
func (s *Store) Posts(ctx context.Context) ([]blog.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT key, timestamp, title, text FROM posts ORDER BY timestamp DESC, key")
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []blog.Post
	for rows.Next() {
		var post blog.Post
		var title sql.NullString
		if err := rows.Scan(&post.Key, &post.Timestamp, &title, &post.Body); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		post.Title = title.String
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	tags, err := s.allTagsLocked(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Tags = tags[posts[i].Key]
	}
	return posts, nil
}

// TagsFor returns the tags assigned to a post, sorted.
func (s *Store) TagsFor(ctx context.Context, key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tagsForLocked(ctx, key)
}

// AddTag assigns a tag to a post. Adding the same tag twice is an error
// (unique pair constraint).
func (s *Store) AddTag(ctx context.Context, key, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addTagLocked(ctx, key, tag)
}

func (s *Store) addTagLocked(ctx context.Context, key, tag string) error {
	if _, err := s.db.ExecContext(ctx, "INSERT INTO post_tags (key, tag) VALUES (?, ?)", key, tag); err != nil {
		return fmt.Errorf("tag post %q with %q: %w", key, tag, err)
	}
	return nil
}

func (s *Store) tagsForLocked(ctx context.Context, key string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT tag FROM post_tags WHERE key = ? ORDER BY tag", key)
	if err != nil {
		return nil, fmt.Errorf("query tags for %q: %w", key, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (s *Store) allTagsLocked(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, tag FROM post_tags ORDER BY key, tag")
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var key, tag string
		if err := rows.Scan(&key, &tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags[key] = append(tags[key], tag)
	}
	return tags, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
