package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	rows := []map[string]any{
		{"authorMeta.name": "alice", "diggCount": float64(10)},
		{"authorMeta.name": "bob", "diggCount": float64(2)},
	}
	fetchedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	id, err := db.SaveSession(ctx, "kopi", 50, fetchedAt, rows)
	if err != nil {
		t.Fatal(err)
	}

	got, err := db.LoadRows(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0]["authorMeta.name"] != "alice" || got[1]["authorMeta.name"] != "bob" {
		t.Fatalf("row order not preserved: %v", got)
	}
	if got[0]["diggCount"] != float64(10) {
		t.Fatalf("numeric payload mangled: %v", got[0]["diggCount"])
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	t1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	if _, err := db.SaveSession(ctx, "old", 10, t1, nil); err != nil {
		t.Fatal(err)
	}
	id2, err := db.SaveSession(ctx, "new", 10, t2, nil)
	if err != nil {
		t.Fatal(err)
	}

	sessions, err := db.ListSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 || sessions[0].ID != id2 {
		t.Fatalf("expected newest first, got %+v", sessions)
	}
	if sessions[0].Hashtag != "new" || !sessions[0].FetchedAt.Equal(t2) {
		t.Fatalf("session metadata lost: %+v", sessions[0])
	}

	latest, err := db.LatestSession(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if latest.ID != id2 {
		t.Fatalf("expected latest %s, got %s", id2, latest.ID)
	}
}

func TestLatestSessionEmpty(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LatestSession(context.Background())
	if !errors.Is(err, ErrNoSessions) {
		t.Fatalf("expected ErrNoSessions, got %v", err)
	}
}

func TestLoadRowsUnknownSession(t *testing.T) {
	db := openTestDB(t)
	rows, err := db.LoadRows(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
}
