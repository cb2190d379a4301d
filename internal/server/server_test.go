package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clipsight/internal/graphlayout"
	"clipsight/internal/model"
)

func testDataset() model.Dataset {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return model.Dataset{Videos: []model.Video{
		{
			Author: "alice", Caption: "kopi enak #kopi #promo", Likes: 100, Comments: 10,
			Shares: 5, Saves: 2, Plays: 1000, Duration: 15, CreatedAt: base,
			URL: "u1", Hashtags: []string{"#kopi", "#promo"}, CleanCaption: "kopi enak",
		},
		{
			Author: "bob", Caption: "teh #kopi #teh", Likes: 5, Comments: 1,
			Shares: 0, Saves: 0, Plays: 50, Duration: 30, CreatedAt: base.Add(26 * time.Hour),
			URL: "u2", Hashtags: []string{"#kopi", "#teh"}, CleanCaption: "teh",
		},
	}}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(testDataset(), graphlayout.NewEades(), Options{TopK: 5, TopPairs: 30, LayoutSeed: 42})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode
}

func TestSummaryEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var sum model.Summary
	if code := get(t, ts.URL+"/api/summary", &sum); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if sum.TotalVideos != 2 || sum.TotalAuthors != 2 || sum.DaysCovered != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestRankingEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var ranking model.MetricRanking
	if code := get(t, ts.URL+"/api/rankings/likes", &ranking); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if ranking.Metric != "likes" || len(ranking.Top) != 2 || ranking.Top[0].Value != 100 {
		t.Fatalf("unexpected ranking: %+v", ranking)
	}
}

func TestRankingUnknownMetric(t *testing.T) {
	ts := newTestServer(t)
	if code := get(t, ts.URL+"/api/rankings/bogus", nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestRankingBadK(t *testing.T) {
	ts := newTestServer(t)
	if code := get(t, ts.URL+"/api/rankings/likes?k=zero", nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestEngagementEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var rows []model.EngagementRow
	if code := get(t, ts.URL+"/api/engagement", &rows); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(rows) != 2 || rows[0].Rank != 1 {
		t.Fatalf("unexpected table: %+v", rows)
	}
}

func TestTimeseriesEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var series model.BucketSeries
	if code := get(t, ts.URL+"/api/timeseries/volume?window=all", &series); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(series.Buckets) != 2 {
		t.Fatalf("expected 2 daily buckets, got %+v", series)
	}
	if code := get(t, ts.URL+"/api/timeseries/likes?window=7d", &series); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := get(t, ts.URL+"/api/timeseries/volume?window=2w", nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown window, got %d", code)
	}
}

func TestPairsAndGraphEndpoints(t *testing.T) {
	ts := newTestServer(t)
	var pairs []model.HashtagPair
	if code := get(t, ts.URL+"/api/pairs", &pairs); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %+v", pairs)
	}

	var graph model.CooccurrenceGraph
	if code := get(t, ts.URL+"/api/graph", &graph); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(graph.Nodes) != 3 || len(graph.Edges) != 2 {
		t.Fatalf("unexpected graph: %d nodes, %d edges", len(graph.Nodes), len(graph.Edges))
	}
}

func TestWordcloudEndpoints(t *testing.T) {
	ts := newTestServer(t)
	var words []model.WordCount
	if code := get(t, ts.URL+"/api/wordcloud/captions", &words); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(words) == 0 {
		t.Fatal("expected caption words")
	}
	if code := get(t, ts.URL+"/api/wordcloud/hashtags", &words); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := get(t, ts.URL+"/api/wordcloud/nope", nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	if code := get(t, ts.URL+"/healthz", nil); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}
