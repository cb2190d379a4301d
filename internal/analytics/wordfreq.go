package analytics

import (
	"sort"
	"strings"

	"clipsight/internal/model"
)

// CaptionWordCounts builds the word-frequency table for the caption word
// cloud from the normalized, stemmed captions.
func CaptionWordCounts(ds model.Dataset) []model.WordCount {
	var words []string
	for _, v := range ds.Videos {
		if v.CleanCaption == "" {
			continue
		}
		words = append(words, strings.Fields(v.CleanCaption)...)
	}
	return countValues(words)
}

// HashtagCounts builds the frequency table over raw hashtag tokens,
// as-authored casing, duplicates within a caption counted.
func HashtagCounts(ds model.Dataset) []model.WordCount {
	var tags []string
	for _, v := range ds.Videos {
		tags = append(tags, v.Hashtags...)
	}
	return countValues(tags)
}

// EmojiCounts builds the frequency table over extracted emoji.
func EmojiCounts(ds model.Dataset) []model.WordCount {
	var emoji []string
	for _, v := range ds.Videos {
		emoji = append(emoji, v.Emoji...)
	}
	return countValues(emoji)
}

// countValues counts occurrences and ranks descending by count, ties by
// value, so output is deterministic.
func countValues(values []string) []model.WordCount {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	out := make([]model.WordCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, model.WordCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
