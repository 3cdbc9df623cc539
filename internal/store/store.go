// Package store persists fetched posts and summary completion records in
// a local SQLite database. Completion records are insert-only: a new
// generation attempt inserts a new row, it never updates an old one.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"yfetch/internal/core"
)

// Store represents the SQLite-backed record store.
type Store struct {
	db   *sql.DB
	path string
}

// SummaryRow is a completion record joined with its originating post's
// presentation fields, as returned by ListCompleted.
type SummaryRow struct {
	Record    core.CompletionRecord
	PostTitle string
	Subreddit string
	Source    string
	URL       string
}

// NewStore creates a new store instance backed by yfetch.db in dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "yfetch.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	postsTable := `
	CREATE TABLE IF NOT EXISTS fetched_posts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT,
		subreddit TEXT,
		author TEXT,
		url TEXT,
		source TEXT,
		created_at TIMESTAMP,
		metadata TEXT
	);`

	summariesTable := `
	CREATE TABLE IF NOT EXISTS summaries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		post_id TEXT NOT NULL,
		content TEXT,
		category TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`

	summariesIndex := `
	CREATE INDEX IF NOT EXISTS idx_summaries_user_status
	ON summaries (user_id, status, created_at DESC);`

	for _, stmt := range []string{postsTable, summariesTable, summariesIndex} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SavePost stores a normalized post, replacing any previous version with
// the same id.
func (s *Store) SavePost(ctx context.Context, post core.Post) error {
	metadata, err := json.Marshal(post.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal post metadata: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO fetched_posts
	(id, title, content, subreddit, author, url, source, created_at, metadata)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Subreddit, post.Author,
		post.URL, post.Source, post.CreatedAt, string(metadata))
	if err != nil {
		return fmt.Errorf("failed to save post %s: %w", post.ID, err)
	}
	return nil
}

// GetPost retrieves a stored post by id. Returns sql.ErrNoRows wrapped if
// the post does not exist.
func (s *Store) GetPost(ctx context.Context, id string) (*core.Post, error) {
	query := `
	SELECT id, title, content, subreddit, author, url, source, created_at, metadata
	FROM fetched_posts WHERE id = ?`

	var post core.Post
	var metadata string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.Subreddit, &post.Author,
		&post.URL, &post.Source, &post.CreatedAt, &metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}

	if metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &post.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal post metadata: %w", err)
		}
	}
	return &post, nil
}

// ListPosts returns stored posts, newest first, up to limit (or all when
// limit <= 0).
func (s *Store) ListPosts(ctx context.Context, limit int) ([]core.Post, error) {
	query := `
	SELECT id, title, content, subreddit, author, url, source, created_at, metadata
	FROM fetched_posts ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []core.Post
	for rows.Next() {
		var post core.Post
		var metadata string
		err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.Subreddit,
			&post.Author, &post.URL, &post.Source, &post.CreatedAt, &metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		if metadata != "" {
			if err := json.Unmarshal([]byte(metadata), &post.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal post metadata: %w", err)
			}
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read post rows: %w", err)
	}
	return posts, nil
}

// InsertRecord inserts a single completion record and returns the inserted
// row. The record id and creation timestamp are assigned here if unset;
// existing rows for the same post are left untouched.
func (s *Store) InsertRecord(ctx context.Context, record core.CompletionRecord) (core.CompletionRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt == 0 {
		record.CreatedAt = time.Now().UTC().UnixMilli()
	}

	query := `
	INSERT INTO summaries (id, user_id, post_id, content, category, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.PostID, record.Content,
		string(record.Category), string(record.Status), record.CreatedAt)
	if err != nil {
		return core.CompletionRecord{}, fmt.Errorf("failed to insert completion record for post %s: %w", record.PostID, err)
	}
	return record, nil
}

// ListCompleted returns the user's completed summaries joined with their
// originating posts, newest first. Duplicate records per post are the
// reader's problem; the store returns every completed row.
func (s *Store) ListCompleted(ctx context.Context, userID string) ([]SummaryRow, error) {
	query := `
	SELECT s.id, s.user_id, s.post_id, s.content, s.category, s.status, s.created_at,
	       p.title, p.subreddit, p.source, p.url
	FROM summaries s
	INNER JOIN fetched_posts p ON p.id = s.post_id
	WHERE s.user_id = ? AND s.status = ?
	ORDER BY s.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID, string(core.StatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("failed to query completed summaries: %w", err)
	}
	defer rows.Close()

	var results []SummaryRow
	for rows.Next() {
		var row SummaryRow
		var category, status string
		err := rows.Scan(
			&row.Record.ID, &row.Record.UserID, &row.Record.PostID, &row.Record.Content,
			&category, &status, &row.Record.CreatedAt,
			&row.PostTitle, &row.Subreddit, &row.Source, &row.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		row.Record.Category = core.Category(category)
		row.Record.Status = core.RecordStatus(status)
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summary rows: %w", err)
	}
	return results, nil
}
