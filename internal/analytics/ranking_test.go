package analytics

import (
	"testing"
	"time"

	"clipsight/internal/model"
)

func video(author string, likes, plays int64, ts time.Time) model.Video {
	return model.Video{Author: author, Likes: likes, Plays: plays, CreatedAt: ts, URL: "u/" + author}
}

func TestTopBottomKWithTies(t *testing.T) {
	// Metric values [10, 0, 0, 5] with K=2: top = [10, 5], bottom = the
	// two zero entries in original relative order.
	now := time.Now().UTC()
	ds := model.Dataset{Videos: []model.Video{
		video("a", 10, 1, now),
		video("b", 0, 1, now),
		video("c", 0, 1, now),
		video("d", 5, 1, now),
	}}
	sel, _ := SelectorFor("likes")

	top := TopK(ds, sel, 2)
	if len(top) != 2 || top[0].Value != 10 || top[1].Value != 5 {
		t.Fatalf("unexpected top-2: %+v", top)
	}
	bottom := BottomK(ds, sel, 2)
	if len(bottom) != 2 || bottom[0].Value != 0 || bottom[1].Value != 0 {
		t.Fatalf("unexpected bottom-2: %+v", bottom)
	}
	if bottom[0].Video.Author != "b" || bottom[1].Video.Author != "c" {
		t.Fatalf("tie order not preserved: %+v", bottom)
	}
}

func TestTopKSmallDataset(t *testing.T) {
	now := time.Now().UTC()
	ds := model.Dataset{Videos: []model.Video{video("a", 3, 1, now)}}
	sel, _ := SelectorFor("likes")
	if got := TopK(ds, sel, 5); len(got) != 1 {
		t.Fatalf("expected min(K, size) entries, got %d", len(got))
	}
	if got := BottomK(ds, sel, 5); len(got) != 1 {
		t.Fatalf("expected min(K, size) entries, got %d", len(got))
	}
}

func TestRankMeanOverWholeDataset(t *testing.T) {
	now := time.Now().UTC()
	ds := model.Dataset{Videos: []model.Video{
		video("a", 10, 1, now),
		video("b", 0, 1, now),
		video("c", 0, 1, now),
		video("d", 5, 1, now),
	}}
	r, err := Rank(ds, "likes", 2)
	if err != nil {
		t.Fatal(err)
	}
	if r.Mean != 3.75 {
		t.Fatalf("expected mean 3.75, got %v", r.Mean)
	}
}

func TestRankUnknownMetric(t *testing.T) {
	if _, err := Rank(model.Dataset{}, "bogus", 5); err == nil {
		t.Fatal("expected error for unknown metric")
	}
}

func TestRateOfZeroPlays(t *testing.T) {
	v := model.Video{Likes: 100, Comments: 50, Plays: 0}
	if got := RateOf(v); got != 0 {
		t.Fatalf("expected rate 0 for zero plays, got %v", got)
	}
}

func TestRateOf(t *testing.T) {
	v := model.Video{Likes: 10, Comments: 5, Shares: 3, Saves: 2, Plays: 200}
	if got := RateOf(v); got != 10 {
		t.Fatalf("expected rate 10, got %v", got)
	}
}

func TestEngagementTableOrderAndClamp(t *testing.T) {
	now := time.Now().UTC()
	ds := model.Dataset{Videos: []model.Video{
		{Author: "low", Likes: 1, Plays: 100, CreatedAt: now},     // 1%
		{Author: "viral", Likes: 500, Plays: 100, CreatedAt: now}, // 500%, clamps to 100
		{Author: "dead", Likes: 9, Plays: 0, CreatedAt: now},      // 0 by policy
	}}
	rows := EngagementTable(ds)
	if len(rows) != 3 {
		t.Fatalf("expected full table, got %d rows", len(rows))
	}
	if rows[0].Author != "viral" || rows[1].Author != "low" || rows[2].Author != "dead" {
		t.Fatalf("unexpected order: %+v", rows)
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Fatalf("expected 1-based sequential ranks, got %+v", rows)
		}
	}
	if rows[0].Rate != 500 {
		t.Fatalf("unclamped rate must be retained, got %v", rows[0].Rate)
	}
	if rows[0].Display != 100 {
		t.Fatalf("display must clamp to 100, got %v", rows[0].Display)
	}
	if rows[2].Rate != 0 || rows[2].Display != 0 {
		t.Fatalf("zero plays must rank with rate 0, got %+v", rows[2])
	}
}

func TestEngagementDisplayRounding(t *testing.T) {
	ds := model.Dataset{Videos: []model.Video{
		{Author: "a", Likes: 1, Plays: 3}, // 33.333...%
	}}
	rows := EngagementTable(ds)
	if rows[0].Display != 33.33 {
		t.Fatalf("expected 33.33, got %v", rows[0].Display)
	}
}

func TestAuthorLeaderboard(t *testing.T) {
	now := time.Now().UTC()
	var videos []model.Video
	for i := 0; i < 3; i++ {
		videos = append(videos, video("alice", 0, 1, now))
	}
	videos = append(videos, video("bob", 0, 1, now))
	videos = append(videos, video("carol", 0, 1, now), video("carol", 0, 1, now))
	ds := model.Dataset{Videos: videos}

	lb := AuthorLeaderboard(ds, 2)
	if lb.Top[0].Author != "alice" || lb.Top[0].Count != 3 {
		t.Fatalf("unexpected top author: %+v", lb.Top)
	}
	if lb.Top[1].Author != "carol" || lb.Top[1].Count != 2 {
		t.Fatalf("unexpected second author: %+v", lb.Top)
	}
	if lb.Bottom[len(lb.Bottom)-1].Author != "bob" {
		t.Fatalf("unexpected bottom authors: %+v", lb.Bottom)
	}
	if lb.Mean != 2 {
		t.Fatalf("expected mean 2 videos per author, got %v", lb.Mean)
	}
}

func TestRankEmptyDataset(t *testing.T) {
	r, err := Rank(model.Dataset{}, "likes", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Top) != 0 || len(r.Bottom) != 0 || r.Mean != 0 {
		t.Fatalf("expected empty ranking, got %+v", r)
	}
}
