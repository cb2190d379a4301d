package textproc

import "github.com/forPelevin/gomoji"

// ExtractHashtags returns every maximal #word substring in original order
// and casing. Duplicates are kept: the co-occurrence engine deduplicates
// per record itself, and hashtag frequency tables want the raw counts.
func ExtractHashtags(text string) []string {
	return hashtagRe.FindAllString(text, -1)
}

// ExtractEmoji returns the sequence of individual runes classified as
// emoji, in original order, duplicates retained.
func ExtractEmoji(text string) []string {
	if !gomoji.ContainsEmoji(text) {
		return nil
	}
	var out []string
	for _, r := range text {
		if gomoji.ContainsEmoji(string(r)) {
			out = append(out, string(r))
		}
	}
	return out
}
