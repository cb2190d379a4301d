// Package store persists scrape sessions in SQLite so an analyst can
// revisit a dataset without re-spending scraper credits.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNoSessions is returned when the store holds no scrape sessions yet.
var ErrNoSessions = errors.New("store: no sessions")

// DB wraps the SQLite database holding scrape sessions.
type DB struct{ sql *sql.DB }

// Session describes one stored scrape.
type Session struct {
	ID        string
	Hashtag   string
	Limit     int
	FetchedAt time.Time
	RowCount  int
}

func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		return nil, err
	}
	db := &DB{sql: d}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS sessions (
	  id TEXT PRIMARY KEY,
	  hashtag TEXT NOT NULL,
	  fetch_limit INTEGER NOT NULL,
	  fetched_at INTEGER NOT NULL,
	  row_count INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_fetched ON sessions(fetched_at);
	CREATE TABLE IF NOT EXISTS raw_rows (
	  session_id TEXT NOT NULL REFERENCES sessions(id),
	  seq INTEGER NOT NULL,
	  payload TEXT NOT NULL,
	  PRIMARY KEY (session_id, seq)
	);
	`)
	return err
}

// SaveSession stores one scrape's raw rows under a fresh session id.
// Rows keep their source order via seq; a session is never merged with
// or appended to after this.
func (d *DB) SaveSession(ctx context.Context, hashtag string, limit int, fetchedAt time.Time, rows []map[string]any) (string, error) {
	id := uuid.NewString()
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions(id, hashtag, fetch_limit, fetched_at, row_count) VALUES(?,?,?,?,?)`,
		id, hashtag, limit, fetchedAt.Unix(), len(rows))
	if err != nil {
		return "", err
	}
	for i, row := range rows {
		payload, err := json.Marshal(row)
		if err != nil {
			return "", fmt.Errorf("store: encoding row %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO raw_rows(session_id, seq, payload) VALUES(?,?,?)`,
			id, i, string(payload)); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListSessions returns sessions newest first.
func (d *DB) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, hashtag, fetch_limit, fetched_at, row_count FROM sessions ORDER BY fetched_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Session
	for rows.Next() {
		var s Session
		var ts int64
		if err := rows.Scan(&s.ID, &s.Hashtag, &s.Limit, &ts, &s.RowCount); err != nil {
			return nil, err
		}
		s.FetchedAt = time.Unix(ts, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// LatestSession returns the most recently fetched session.
func (d *DB) LatestSession(ctx context.Context) (Session, error) {
	sessions, err := d.ListSessions(ctx)
	if err != nil {
		return Session{}, err
	}
	if len(sessions) == 0 {
		return Session{}, ErrNoSessions
	}
	return sessions[0], nil
}

// LoadRows returns a session's raw rows in their original order.
func (d *DB) LoadRows(ctx context.Context, sessionID string) ([]map[string]any, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT payload FROM raw_rows WHERE session_id=? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []map[string]any
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var row map[string]any
		if err := json.Unmarshal([]byte(payload), &row); err != nil {
			return nil, fmt.Errorf("store: decoding row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
