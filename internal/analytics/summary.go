package analytics

import "clipsight/internal/model"

// Summarize computes the headline figures: totals and the span of days
// the dataset covers (inclusive of both endpoints).
func Summarize(ds model.Dataset) model.Summary {
	s := model.Summary{TotalVideos: ds.Len()}
	if ds.Len() == 0 {
		return s
	}
	authors := make(map[string]struct{})
	s.From = ds.Videos[0].CreatedAt
	s.To = ds.Videos[0].CreatedAt
	for _, v := range ds.Videos {
		authors[v.Author] = struct{}{}
		if v.CreatedAt.Before(s.From) {
			s.From = v.CreatedAt
		}
		if v.CreatedAt.After(s.To) {
			s.To = v.CreatedAt
		}
	}
	s.TotalAuthors = len(authors)
	s.DaysCovered = int(s.To.Sub(s.From).Hours()/24) + 1
	return s
}
