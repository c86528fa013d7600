// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists generation sessions so an ebook can be listed,
// reloaded, re-rendered, and deleted after the run that produced it.
// Implements: prd004-history (R1-R4).
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ebook-engine/pkg/types"
)

const dbFile = "sessions.db"

// ErrNotFound is returned when no session matches the requested ID.
var ErrNotFound = errors.New("session not found")

// Session is one stored generation run. Chapters are stored as a single
// JSON document: sessions are always written and read whole, never queried
// by chapter.
type Session struct {
	ID          string
	Topic       string
	Title       string
	Type        types.EbookType
	TargetPages int
	CreatedAt   time.Time
	Chapters    []types.Chapter
}

// Summary is the list-view projection of a session.
type Summary struct {
	ID           string
	Topic        string
	Title        string
	Type         types.EbookType
	TargetPages  int
	ChapterCount int
	CreatedAt    time.Time
}

// Store manages the session SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the session database at dir/sessions.db,
// creating the schema if it does not exist (R1.1, R1.2).
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			target_pages INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			chapters TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores a finished run and returns its generated session ID (R2.1).
func (s *Store) Save(ctx context.Context, sess Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}

	chapters, err := json.Marshal(sess.Chapters)
	if err != nil {
		return "", fmt.Errorf("encoding chapters: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (id, topic, title, type, target_pages, created_at, chapters)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Topic, sess.Title, string(sess.Type), sess.TargetPages,
		sess.CreatedAt.UTC().Format(time.RFC3339Nano), string(chapters))
	if err != nil {
		return "", fmt.Errorf("saving session: %w", err)
	}
	return sess.ID, nil
}

// List returns summaries of all sessions, newest first (R3.1).
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, title, type, target_pages, created_at, chapters
		 FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var (
			sum       Summary
			ebookType string
			createdAt string
			chapters  string
		)
		if err := rows.Scan(&sum.ID, &sum.Topic, &sum.Title, &ebookType,
			&sum.TargetPages, &createdAt, &chapters); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sum.Type = types.EbookType(ebookType)
		sum.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing session timestamp: %w", err)
		}

		var chs []types.Chapter
		if err := json.Unmarshal([]byte(chapters), &chs); err != nil {
			return nil, fmt.Errorf("decoding chapters for %s: %w", sum.ID, err)
		}
		sum.ChapterCount = len(chs)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Load returns one full session by ID (R3.2).
func (s *Store) Load(ctx context.Context, id string) (Session, error) {
	var (
		sess      Session
		ebookType string
		createdAt string
		chapters  string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, topic, title, type, target_pages, created_at, chapters
		 FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Topic, &sess.Title, &ebookType,
		&sess.TargetPages, &createdAt, &chapters)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("loading session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("loading session %s: %w", id, err)
	}

	sess.Type = types.EbookType(ebookType)
	sess.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Session{}, fmt.Errorf("parsing session timestamp: %w", err)
	}
	if err := json.Unmarshal([]byte(chapters), &sess.Chapters); err != nil {
		return Session{}, fmt.Errorf("decoding chapters for %s: %w", id, err)
	}
	return sess, nil
}

// Delete removes one session by ID (R4.1). Deleting an unknown ID is an
// error so the caller can distinguish a typo from a removal.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("deleting session %s: %w", id, ErrNotFound)
	}
	return nil
}
