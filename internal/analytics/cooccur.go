package analytics

import (
	"sort"

	"clipsight/internal/model"
)

// DefaultTopPairs is the number of hashtag pairs kept for the graph view.
const DefaultTopPairs = 30

// PairCounts aggregates unordered hashtag pairs across the dataset.
// Each record's hashtag list is deduplicated (case-sensitive) and sorted
// before pairing, so a pair is counted once per record regardless of how
// often or in what order the tags appear in the caption. Records with
// fewer than two distinct hashtags contribute nothing.
// Output sorts descending by count, ties by pair lexicographic order.
func PairCounts(ds model.Dataset) []model.HashtagPair {
	type key struct{ a, b string }
	counts := make(map[key]int)
	for _, v := range ds.Videos {
		tags := distinctSorted(v.Hashtags)
		for i := 0; i < len(tags); i++ {
			for j := i + 1; j < len(tags); j++ {
				counts[key{tags[i], tags[j]}]++
			}
		}
	}
	out := make([]model.HashtagPair, 0, len(counts))
	for k, c := range counts {
		out = append(out, model.HashtagPair{First: k.a, Second: k.b, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].First != out[j].First {
			return out[i].First < out[j].First
		}
		return out[i].Second < out[j].Second
	})
	return out
}

// TopPairs returns the n most frequent pairs. n <= 0 falls back to
// DefaultTopPairs. A dataset with no hashtags yields an empty slice.
func TopPairs(ds model.Dataset, n int) []model.HashtagPair {
	if n <= 0 {
		n = DefaultTopPairs
	}
	pairs := PairCounts(ds)
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

func distinctSorted(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
