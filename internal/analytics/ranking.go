package analytics

import (
	"fmt"
	"math"
	"sort"

	"clipsight/internal/model"
)

// Metric names accepted by the ranking and time-series engines.
var Metrics = []string{"likes", "comments", "shares", "saves", "plays", "duration"}

// Selector extracts one metric value from a video.
type Selector func(model.Video) float64

// SelectorFor maps a metric name to its selector.
func SelectorFor(metric string) (Selector, bool) {
	switch metric {
	case "likes":
		return func(v model.Video) float64 { return float64(v.Likes) }, true
	case "comments":
		return func(v model.Video) float64 { return float64(v.Comments) }, true
	case "shares":
		return func(v model.Video) float64 { return float64(v.Shares) }, true
	case "saves":
		return func(v model.Video) float64 { return float64(v.Saves) }, true
	case "plays":
		return func(v model.Video) float64 { return float64(v.Plays) }, true
	case "duration":
		return func(v model.Video) float64 { return v.Duration }, true
	}
	return nil, false
}

// Rank computes the top-K and bottom-K videos for one metric plus the
// mean over the entire dataset. Ties keep original dataset order.
func Rank(ds model.Dataset, metric string, k int) (model.MetricRanking, error) {
	sel, ok := SelectorFor(metric)
	if !ok {
		return model.MetricRanking{}, fmt.Errorf("unknown metric %q", metric)
	}
	return model.MetricRanking{
		Metric: metric,
		Top:    TopK(ds, sel, k),
		Bottom: BottomK(ds, sel, k),
		Mean:   Mean(ds, sel),
	}, nil
}

// TopK returns the k largest videos by sel, stable under ties.
func TopK(ds model.Dataset, sel Selector, k int) []model.RankedVideo {
	return rankK(ds, sel, k, false)
}

// BottomK returns the k smallest videos by sel, stable under ties.
func BottomK(ds model.Dataset, sel Selector, k int) []model.RankedVideo {
	return rankK(ds, sel, k, true)
}

func rankK(ds model.Dataset, sel Selector, k int, ascending bool) []model.RankedVideo {
	if k <= 0 || ds.Len() == 0 {
		return nil
	}
	idx := make([]int, ds.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, vb := sel(ds.Videos[idx[a]]), sel(ds.Videos[idx[b]])
		if ascending {
			return va < vb
		}
		return va > vb
	})
	if k > len(idx) {
		k = len(idx)
	}
	out := make([]model.RankedVideo, 0, k)
	for _, i := range idx[:k] {
		out = append(out, model.RankedVideo{Video: ds.Videos[i], Value: sel(ds.Videos[i])})
	}
	return out
}

// Mean is the unweighted arithmetic mean of sel over the whole dataset.
func Mean(ds model.Dataset, sel Selector) float64 {
	if ds.Len() == 0 {
		return 0
	}
	var sum float64
	for _, v := range ds.Videos {
		sum += sel(v)
	}
	return sum / float64(ds.Len())
}

// RateOf is the composite engagement rate for one video:
// (likes + comments + shares + saves) / plays * 100.
// Zero plays resolves to 0 by policy, never Inf or NaN.
func RateOf(v model.Video) float64 {
	if v.Plays == 0 {
		return 0
	}
	return float64(v.Likes+v.Comments+v.Shares+v.Saves) / float64(v.Plays) * 100
}

// EngagementTable ranks the full dataset descending by unclamped rate.
// Ranks are 1-based and assigned after sorting; ties keep dataset order.
func EngagementTable(ds model.Dataset) []model.EngagementRow {
	idx := make([]int, ds.Len())
	rates := make([]float64, ds.Len())
	for i := range idx {
		idx[i] = i
		rates[i] = RateOf(ds.Videos[i])
	}
	sort.SliceStable(idx, func(a, b int) bool { return rates[idx[a]] > rates[idx[b]] })

	out := make([]model.EngagementRow, 0, ds.Len())
	for rank, i := range idx {
		v := ds.Videos[i]
		out = append(out, model.EngagementRow{
			Rank:     rank + 1,
			Author:   v.Author,
			URL:      v.URL,
			Likes:    v.Likes,
			Comments: v.Comments,
			Shares:   v.Shares,
			Saves:    v.Saves,
			Plays:    v.Plays,
			Rate:     rates[i],
			Display:  round2(clamp(rates[i], 0, 100)),
		})
	}
	return out
}

// AuthorLeaderboard counts videos per author and returns the k most and
// least prolific, with the mean videos-per-author. Counts sort descending;
// ties keep first-seen author order.
func AuthorLeaderboard(ds model.Dataset, k int) model.AuthorRanking {
	var order []string
	counts := make(map[string]int)
	for _, v := range ds.Videos {
		if _, ok := counts[v.Author]; !ok {
			order = append(order, v.Author)
		}
		counts[v.Author]++
	}
	rows := make([]model.AuthorCount, 0, len(order))
	for _, a := range order {
		rows = append(rows, model.AuthorCount{Author: a, Count: counts[a]})
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Count > rows[b].Count })

	var mean float64
	if len(rows) > 0 {
		mean = float64(ds.Len()) / float64(len(rows))
	}
	if k > len(rows) {
		k = len(rows)
	}
	top := append([]model.AuthorCount(nil), rows[:k]...)
	bottom := append([]model.AuthorCount(nil), rows[len(rows)-k:]...)
	return model.AuthorRanking{Top: top, Bottom: bottom, Mean: mean}
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
